package trigvk

import (
	"math"

	"github.com/pkg/errors"
)

// MaxFramesInFlight is the number of frames the CPU may queue ahead of the GPU.
const MaxFramesInFlight = 2

const vkNoTimeout uint64 = math.MaxUint64

// frameBackend is the set of GPU operations one frame goes through.
// GraphicsContext is the Vulkan implementation.
type frameBackend interface {
	// waitSlot blocks until the slot's in-flight fence signals.
	waitSlot(slot int, timeout uint64) error
	// acquire returns the next swap image index, signaling the slot's
	// image available semaphore. errSwapchainOutOfDate when unusable.
	acquire(slot int, timeout uint64) (uint32, error)
	upload(vertices []Vertex) error
	record(image uint32, count int) error
	// submit resets the slot fence and submits the image's command buffer.
	submit(slot int, image uint32) error
	// present returns errSwapchainOutOfDate when the swapchain should be rebuilt.
	present(slot int, image uint32) error
	rebuild() error
}

type frameLoop struct {
	backend  frameBackend
	capacity int
	timeout  uint64

	current int
	resized bool

	// counters
	rendered uint64
	rebuilds uint64
}

func newFrameLoop(backend frameBackend, capacity int, timeout uint64) *frameLoop {
	return &frameLoop{
		backend:  backend,
		capacity: capacity,
		timeout:  timeout,
	}
}

func (f *frameLoop) render(vertices []Vertex) error {
	if len(vertices) > f.capacity {
		return errors.Wrapf(ErrCapacityExceeded, "%d > %d", len(vertices), f.capacity)
	}
	slot := f.current

	if err := f.backend.waitSlot(slot, f.timeout); err != nil {
		return errors.Wrap(err, "wait for frame slot")
	}

	image, err := f.backend.acquire(slot, f.timeout)
	if errors.Is(err, errSwapchainOutOfDate) {
		// Nothing was submitted for this slot, the fence stays signaled.
		return f.rebuild()
	}
	if err != nil {
		return errors.Wrap(err, "acquire swapchain image")
	}

	if err := f.backend.upload(vertices); err != nil {
		return errors.Wrap(err, "upload vertices")
	}
	if err := f.backend.record(image, len(vertices)); err != nil {
		return errors.Wrap(err, "record command buffer")
	}
	if err := f.backend.submit(slot, image); err != nil {
		return errors.Wrap(err, "submit command buffer")
	}

	err = f.backend.present(slot, image)
	f.current = (f.current + 1) % MaxFramesInFlight
	f.rendered++

	switch {
	case errors.Is(err, errSwapchainOutOfDate):
		return f.rebuild()
	case err != nil:
		return errors.Wrap(err, "present swapchain image")
	case f.resized:
		return f.rebuild()
	}
	return nil
}

func (f *frameLoop) rebuild() error {
	f.resized = false
	f.rebuilds++
	return errors.Wrap(f.backend.rebuild(), "rebuild swapchain")
}
