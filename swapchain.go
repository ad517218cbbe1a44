package trigvk

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// CoreSwapchain is the swapchain and its images for the current surface size.
type CoreSwapchain struct {
	swapchain    vk.Swapchain
	format       vk.SurfaceFormat
	present_mode vk.PresentMode
	extent       vk.Extent2D
	images       []SwapImage
}

func (s *CoreSwapchain) Dimensions() SwapchainDimensions {
	return SwapchainDimensions{
		Width:       s.extent.Width,
		Height:      s.extent.Height,
		Format:      s.format.Format,
		ColorSpace:  s.format.ColorSpace,
		PresentMode: s.present_mode,
		Images:      len(s.images),
	}
}

// surfaceSupport is what the surface reports for swapchain creation.
type surfaceSupport struct {
	capabilities vk.SurfaceCapabilities
	formats      []vk.SurfaceFormat
	presentModes []vk.PresentMode
}

func querySurfaceSupport(gpu vk.PhysicalDevice, surface vk.Surface) (surfaceSupport, error) {
	var support surfaceSupport

	ret := vk.GetPhysicalDeviceSurfaceCapabilities(gpu, surface, &support.capabilities)
	if isError(ret) {
		return support, NewError(ret)
	}
	support.capabilities.Deref()
	support.capabilities.CurrentExtent.Deref()
	support.capabilities.MinImageExtent.Deref()
	support.capabilities.MaxImageExtent.Deref()

	var formatCount uint32
	vk.GetPhysicalDeviceSurfaceFormats(gpu, surface, &formatCount, nil)
	support.formats = make([]vk.SurfaceFormat, formatCount)
	vk.GetPhysicalDeviceSurfaceFormats(gpu, surface, &formatCount, support.formats)
	for i := range support.formats {
		support.formats[i].Deref()
	}

	var modeCount uint32
	vk.GetPhysicalDeviceSurfacePresentModes(gpu, surface, &modeCount, nil)
	support.presentModes = make([]vk.PresentMode, modeCount)
	vk.GetPhysicalDeviceSurfacePresentModes(gpu, surface, &modeCount, support.presentModes)

	if len(support.formats) == 0 {
		return support, errors.New("surface reports no color formats")
	}
	return support, nil
}

// chooseSurfaceFormat prefers B8G8R8A8_SRGB with the sRGB nonlinear color
// space, falling back to the first format offered.
func chooseSurfaceFormat(formats []vk.SurfaceFormat) vk.SurfaceFormat {
	for _, f := range formats {
		if f.Format == vk.FormatB8g8r8a8Srgb && f.ColorSpace == vk.ColorSpaceSrgbNonlinear {
			return f
		}
	}
	format := formats[0]
	// An undefined format means the surface has no preference.
	if format.Format == vk.FormatUndefined {
		format.Format = vk.FormatB8g8r8a8Srgb
		format.ColorSpace = vk.ColorSpaceSrgbNonlinear
	}
	return format
}

// choosePresentMode prefers mailbox and otherwise uses FIFO, which every
// implementation must support.
func choosePresentMode(modes []vk.PresentMode) vk.PresentMode {
	for _, mode := range modes {
		if mode == vk.PresentModeMailbox {
			return mode
		}
	}
	return vk.PresentModeFifo
}

// chooseExtent uses the surface extent, or the framebuffer size clamped to
// the surface limits when the surface leaves it to the application.
func chooseExtent(current, minExtent, maxExtent vk.Extent2D, width, height int) vk.Extent2D {
	if current.Width != vk.MaxUint32 {
		return current
	}
	return vk.Extent2D{
		Width:  clampUint32(uint32(nonNegative(width)), minExtent.Width, maxExtent.Width),
		Height: clampUint32(uint32(nonNegative(height)), minExtent.Height, maxExtent.Height),
	}
}

// chooseImageCount asks for one image above the minimum. A max of zero means
// no limit.
func chooseImageCount(minCount, maxCount uint32) uint32 {
	count := minCount + 1
	if maxCount > 0 && count > maxCount {
		count = maxCount
	}
	return count
}

func clampUint32(v, lo, hi uint32) uint32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// createSwapchain builds a swapchain for the current surface state. When a
// swapchain already exists it is handed over as the old swapchain and
// destroyed after the new one is created.
func (c *GraphicsContext) createSwapchain() error {
	support, err := querySurfaceSupport(c.device.gpu, c.surface)
	if err != nil {
		return errors.Wrap(err, "query surface support")
	}
	caps := support.capabilities

	format := chooseSurfaceFormat(support.formats)
	mode := choosePresentMode(support.presentModes)
	width, height := c.display.FramebufferSize()
	extent := chooseExtent(caps.CurrentExtent, caps.MinImageExtent, caps.MaxImageExtent, width, height)
	if extent.Width == 0 || extent.Height == 0 {
		return errors.Errorf("surface extent is %dx%d", extent.Width, extent.Height)
	}
	imageCount := chooseImageCount(caps.MinImageCount, caps.MaxImageCount)

	old := vk.NullSwapchain
	if c.swapchain != nil {
		old = c.swapchain.swapchain
		if format.Format != c.swapchain.format.Format {
			return errors.Errorf("surface format changed from %d to %d", c.swapchain.format.Format, format.Format)
		}
	}

	info := vk.SwapchainCreateInfo{
		SType:            vk.StructureTypeSwapchainCreateInfo,
		Surface:          c.surface,
		MinImageCount:    imageCount,
		ImageFormat:      format.Format,
		ImageColorSpace:  format.ColorSpace,
		ImageExtent:      extent,
		ImageArrayLayers: 1,
		ImageUsage:       vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		ImageSharingMode: vk.SharingModeExclusive,
		PreTransform:     caps.CurrentTransform,
		CompositeAlpha:   vk.CompositeAlphaOpaqueBit,
		PresentMode:      mode,
		Clipped:          vk.True,
		OldSwapchain:     old,
	}
	if families := c.device.families; families.Separate() {
		info.ImageSharingMode = vk.SharingModeConcurrent
		info.QueueFamilyIndexCount = 2
		info.PQueueFamilyIndices = families.Unique()
	}

	var swapchain vk.Swapchain
	ret := vk.CreateSwapchain(c.device.handle, &info, nil, &swapchain)
	if err := NewError(ret); err != nil {
		return err
	}
	var count uint32
	ret = vk.GetSwapchainImages(c.device.handle, swapchain, &count, nil)
	if isError(ret) {
		vk.DestroySwapchain(c.device.handle, swapchain, nil)
		return NewError(ret)
	}
	images := make([]vk.Image, count)
	ret = vk.GetSwapchainImages(c.device.handle, swapchain, &count, images)
	if isError(ret) {
		vk.DestroySwapchain(c.device.handle, swapchain, nil)
		return NewError(ret)
	}

	// The retired swapchain is released only once the new one is usable.
	if old != vk.NullSwapchain {
		vk.DestroySwapchain(c.device.handle, old, nil)
	}

	sc := &CoreSwapchain{
		swapchain:    swapchain,
		format:       format,
		present_mode: mode,
		extent:       extent,
		images:       make([]SwapImage, count),
	}
	for i := range images {
		sc.images[i].image = images[i]
	}
	if c.swapchain != nil {
		// Command buffers survive a rebuild when the image count is unchanged.
		for i := range sc.images {
			if i < len(c.swapchain.images) {
				sc.images[i].command = c.swapchain.images[i].command
			}
		}
	}
	first := c.swapchain == nil
	c.swapchain = sc
	if first {
		c.release.push("swapchain", func() {
			vk.DestroySwapchain(c.device.handle, c.swapchain.swapchain, nil)
		})
	}

	c.logs.Info.Printf("vulkan: swapchain %s", sc.Dimensions())
	return nil
}

// rebuild recreates the swapchain and everything sized by it. The render
// pass and pipeline are kept since viewport and scissor are dynamic.
func (c *GraphicsContext) rebuild() error {
	if width, height := c.display.FramebufferSize(); width == 0 || height == 0 {
		// Minimized; try again once the window has a size.
		c.frames.resized = true
		return nil
	}
	if err := NewError(vk.DeviceWaitIdle(c.device.handle)); err != nil {
		return errors.Wrap(err, "wait for device idle")
	}
	previous := len(c.swapchain.images)
	commands := c.commandBuffers()

	c.destroyFramebuffers()
	c.destroyImageViews()

	if err := c.createSwapchain(); err != nil {
		return errors.Wrap(err, "create swapchain")
	}
	if err := c.createImageViews(); err != nil {
		return errors.Wrap(err, "create image views")
	}
	if err := c.createFramebuffers(); err != nil {
		return errors.Wrap(err, "create framebuffers")
	}
	if len(c.swapchain.images) != previous {
		c.pool.free(c.device.handle, commands)
		if err := c.allocateCommandBuffers(); err != nil {
			return errors.Wrap(err, "allocate command buffers")
		}
	}
	return nil
}
