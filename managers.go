package trigvk

import vk "github.com/vulkan-go/vulkan"

// FrameSlot is the synchronization for one in-flight frame. The fence is
// created signaled so the first wait on each slot returns immediately.
type FrameSlot struct {
	imageAvailable vk.Semaphore
	renderFinished vk.Semaphore
	inFlight       vk.Fence
}

func newFrameSlot(device vk.Device) (FrameSlot, error) {
	var slot FrameSlot

	ret := vk.CreateSemaphore(device, &vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
	}, nil, &slot.imageAvailable)
	if isError(ret) {
		return slot, NewError(ret)
	}

	ret = vk.CreateSemaphore(device, &vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
	}, nil, &slot.renderFinished)
	if isError(ret) {
		slot.destroy(device)
		return slot, NewError(ret)
	}

	ret = vk.CreateFence(device, &vk.FenceCreateInfo{
		SType: vk.StructureTypeFenceCreateInfo,
		Flags: vk.FenceCreateFlags(vk.FenceCreateSignaledBit),
	}, nil, &slot.inFlight)
	if isError(ret) {
		slot.destroy(device)
		return slot, NewError(ret)
	}
	return slot, nil
}

func (s *FrameSlot) destroy(device vk.Device) {
	if s.inFlight != vk.NullFence {
		vk.DestroyFence(device, s.inFlight, nil)
		s.inFlight = vk.NullFence
	}
	if s.renderFinished != vk.NullSemaphore {
		vk.DestroySemaphore(device, s.renderFinished, nil)
		s.renderFinished = vk.NullSemaphore
	}
	if s.imageAvailable != vk.NullSemaphore {
		vk.DestroySemaphore(device, s.imageAvailable, nil)
		s.imageAvailable = vk.NullSemaphore
	}
}

func (c *GraphicsContext) createFrameSlots() error {
	device := c.device.handle
	for i := range c.slots {
		slot, err := newFrameSlot(device)
		if err != nil {
			return err
		}
		c.slots[i] = slot
		s := &c.slots[i]
		c.release.push("frame slot", func() {
			s.destroy(device)
		})
	}
	return nil
}
