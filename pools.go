package trigvk

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

type CorePool struct {
	pool vk.CommandPool
}

// NewCorePool creates a pool whose command buffers can be reset one by one.
func NewCorePool(device vk.Device, familyIndex uint32) (*CorePool, error) {
	var pool vk.CommandPool
	ret := vk.CreateCommandPool(device, &vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		QueueFamilyIndex: familyIndex,
		Flags:            vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit),
	}, nil, &pool)
	if err := NewError(ret); err != nil {
		return nil, err
	}
	return &CorePool{pool: pool}, nil
}

func (p *CorePool) allocate(device vk.Device, count int) ([]vk.CommandBuffer, error) {
	buffers := make([]vk.CommandBuffer, count)
	ret := vk.AllocateCommandBuffers(device, &vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        p.pool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: uint32(count),
	}, buffers)
	if err := NewError(ret); err != nil {
		return nil, err
	}
	return buffers, nil
}

func (p *CorePool) free(device vk.Device, buffers []vk.CommandBuffer) {
	if len(buffers) == 0 {
		return
	}
	vk.FreeCommandBuffers(device, p.pool, uint32(len(buffers)), buffers)
}

// Destroy also frees every command buffer allocated from the pool.
func (p *CorePool) Destroy(device vk.Device) {
	vk.DestroyCommandPool(device, p.pool, nil)
}

func (c *GraphicsContext) createCommandPool() error {
	pool, err := NewCorePool(c.device.handle, c.device.families.Graphics)
	if err != nil {
		return err
	}
	c.pool = pool
	device := c.device.handle
	c.release.push("command pool", func() {
		pool.Destroy(device)
	})
	return c.allocateCommandBuffers()
}

// allocateCommandBuffers gives every swap image its own primary command buffer.
func (c *GraphicsContext) allocateCommandBuffers() error {
	buffers, err := c.pool.allocate(c.device.handle, len(c.swapchain.images))
	if err != nil {
		return errors.Wrap(err, "allocate command buffers")
	}
	for i := range c.swapchain.images {
		c.swapchain.images[i].command = buffers[i]
	}
	return nil
}

func (c *GraphicsContext) commandBuffers() []vk.CommandBuffer {
	var buffers []vk.CommandBuffer
	for _, img := range c.swapchain.images {
		if img.command != nil {
			buffers = append(buffers, img.command)
		}
	}
	return buffers
}
