package trigvk

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

const engineName = "trigvk"

var (
	DefaultVulkanAppVersion = vk.MakeVersion(1, 0, 0)
	DefaultVulkanAPIVersion = vk.MakeVersion(1, 0, 0)
)

// SwapchainDimensions describes what was negotiated with the surface.
type SwapchainDimensions struct {
	// Width of the swapchain.
	Width uint32
	// Height of the swapchain.
	Height uint32
	// Format is the pixel format of the swapchain.
	Format vk.Format
	// ColorSpace of the swapchain images.
	ColorSpace vk.ColorSpace
	// PresentMode is the chosen presentation mode.
	PresentMode vk.PresentMode
	// Images is the number of swapchain images the driver returned.
	Images int
}

func (d SwapchainDimensions) String() string {
	return fmt.Sprintf("%dx%d format=%d colorspace=%d present=%s images=%d",
		d.Width, d.Height, d.Format, d.ColorSpace, presentModeName(d.PresentMode), d.Images)
}

func presentModeName(mode vk.PresentMode) string {
	switch mode {
	case vk.PresentModeImmediate:
		return "immediate"
	case vk.PresentModeMailbox:
		return "mailbox"
	case vk.PresentModeFifo:
		return "fifo"
	case vk.PresentModeFifoRelaxed:
		return "fifo-relaxed"
	}
	return fmt.Sprintf("mode(%d)", mode)
}
