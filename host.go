package trigvk

import (
	"github.com/loov/hrtime"
	"github.com/pkg/errors"
)

// Host is the window side of the render loop.
type Host interface {
	ShouldClose() bool
	PollEvents()
	// WaitEvents blocks until the next window event.
	WaitEvents()
	// Time is seconds since the host started.
	Time() float64
	FramebufferSize() (int, int)
}

// Renderer draws frames until it is destroyed.
type Renderer interface {
	RenderFrame(vertices []Vertex) error
	Destroy() error
}

type RunOptions struct {
	// StatsInterval is the number of frames between reports. Zero disables them.
	StatsInterval int
	// Report receives each frame time summary.
	Report func(stats *FrameStats)
}

// Run drives r until the host asks to close or a frame fails. The renderer is
// destroyed on every exit path; its error is returned when the loop had none.
func Run(host Host, r Renderer, wave Wave, opts RunOptions) (err error) {
	defer func() {
		if derr := r.Destroy(); derr != nil && err == nil {
			err = errors.Wrap(derr, "teardown")
		}
	}()

	var stats FrameStats
	for !host.ShouldClose() {
		// Each frame is timed over the whole iteration, event polling included.
		start := hrtime.Now()
		host.PollEvents()
		if width, height := host.FramebufferSize(); width == 0 || height == 0 {
			host.WaitEvents()
			continue
		}

		vertices := wave.Sample(float32(host.Time()))
		if err := r.RenderFrame(vertices); err != nil {
			return errors.Wrap(err, "render frame")
		}
		stats.Record(hrtime.Since(start))

		if opts.StatsInterval > 0 && stats.Frames() >= opts.StatsInterval {
			if opts.Report != nil {
				opts.Report(&stats)
			}
			stats.Reset()
		}
	}
	return nil
}
