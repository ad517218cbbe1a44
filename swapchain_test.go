package trigvk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	vk "github.com/vulkan-go/vulkan"
)

func TestChooseSurfaceFormat(t *testing.T) {
	srgb := vk.SurfaceFormat{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear}
	unorm := vk.SurfaceFormat{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear}

	assert.Equal(t, srgb, chooseSurfaceFormat([]vk.SurfaceFormat{unorm, srgb}))
	assert.Equal(t, unorm, chooseSurfaceFormat([]vk.SurfaceFormat{unorm}))

	undefined := vk.SurfaceFormat{Format: vk.FormatUndefined}
	assert.Equal(t, srgb, chooseSurfaceFormat([]vk.SurfaceFormat{undefined}))
}

func TestChoosePresentMode(t *testing.T) {
	assert.Equal(t, vk.PresentModeMailbox,
		choosePresentMode([]vk.PresentMode{vk.PresentModeFifo, vk.PresentModeMailbox}))
	assert.Equal(t, vk.PresentModeFifo,
		choosePresentMode([]vk.PresentMode{vk.PresentModeImmediate, vk.PresentModeFifo}))
	assert.Equal(t, vk.PresentModeFifo, choosePresentMode(nil))
}

func TestChooseExtent(t *testing.T) {
	minExtent := vk.Extent2D{Width: 100, Height: 100}
	maxExtent := vk.Extent2D{Width: 1920, Height: 1080}

	current := vk.Extent2D{Width: 640, Height: 480}
	assert.Equal(t, current, chooseExtent(current, minExtent, maxExtent, 800, 600))

	free := vk.Extent2D{Width: vk.MaxUint32, Height: vk.MaxUint32}
	assert.Equal(t, vk.Extent2D{Width: 800, Height: 600}, chooseExtent(free, minExtent, maxExtent, 800, 600))
	assert.Equal(t, vk.Extent2D{Width: 1920, Height: 100}, chooseExtent(free, minExtent, maxExtent, 4000, 10))
	assert.Equal(t, vk.Extent2D{Width: 100, Height: 100}, chooseExtent(free, minExtent, maxExtent, -5, 0))
}

func TestChooseImageCount(t *testing.T) {
	assert.EqualValues(t, 3, chooseImageCount(2, 0))
	assert.EqualValues(t, 3, chooseImageCount(2, 8))
	assert.EqualValues(t, 2, chooseImageCount(2, 2))
}

func TestSwapchainDimensionsString(t *testing.T) {
	s := &CoreSwapchain{
		format:       vk.SurfaceFormat{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		present_mode: vk.PresentModeMailbox,
		extent:       vk.Extent2D{Width: 800, Height: 600},
		images:       make([]SwapImage, 3),
	}
	d := s.Dimensions()
	assert.EqualValues(t, 800, d.Width)
	assert.Equal(t, 3, d.Images)
	assert.Contains(t, d.String(), "800x600")
	assert.Contains(t, d.String(), "present=mailbox")
}
