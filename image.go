package trigvk

import vk "github.com/vulkan-go/vulkan"

// SwapImage is one presentable image and everything recorded against it.
type SwapImage struct {
	image       vk.Image
	view        vk.ImageView
	framebuffer vk.Framebuffer
	command     vk.CommandBuffer
}

func (c *GraphicsContext) createImageViews() error {
	sc := c.swapchain
	for i := range sc.images {
		var view vk.ImageView
		ret := vk.CreateImageView(c.device.handle, &vk.ImageViewCreateInfo{
			SType:    vk.StructureTypeImageViewCreateInfo,
			Image:    sc.images[i].image,
			ViewType: vk.ImageViewType2d,
			Format:   sc.format.Format,
			Components: vk.ComponentMapping{
				R: vk.ComponentSwizzleIdentity,
				G: vk.ComponentSwizzleIdentity,
				B: vk.ComponentSwizzleIdentity,
				A: vk.ComponentSwizzleIdentity,
			},
			SubresourceRange: vk.ImageSubresourceRange{
				AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
				LevelCount: 1,
				LayerCount: 1,
			},
		}, nil, &view)
		if err := NewError(ret); err != nil {
			return err
		}
		sc.images[i].view = view
	}
	return nil
}

func (c *GraphicsContext) destroyImageViews() {
	for i := range c.swapchain.images {
		if view := c.swapchain.images[i].view; view != vk.NullImageView {
			vk.DestroyImageView(c.device.handle, view, nil)
			c.swapchain.images[i].view = vk.NullImageView
		}
	}
}

func (c *GraphicsContext) createFramebuffers() error {
	sc := c.swapchain
	for i := range sc.images {
		var framebuffer vk.Framebuffer
		ret := vk.CreateFramebuffer(c.device.handle, &vk.FramebufferCreateInfo{
			SType:           vk.StructureTypeFramebufferCreateInfo,
			RenderPass:      c.render_pass,
			AttachmentCount: 1,
			PAttachments:    []vk.ImageView{sc.images[i].view},
			Width:           sc.extent.Width,
			Height:          sc.extent.Height,
			Layers:          1,
		}, nil, &framebuffer)
		if err := NewError(ret); err != nil {
			return err
		}
		sc.images[i].framebuffer = framebuffer
	}
	return nil
}

func (c *GraphicsContext) destroyFramebuffers() {
	for i := range c.swapchain.images {
		if fb := c.swapchain.images[i].framebuffer; fb != vk.NullFramebuffer {
			vk.DestroyFramebuffer(c.device.handle, fb, nil)
			c.swapchain.images[i].framebuffer = vk.NullFramebuffer
		}
	}
}
