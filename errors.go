package trigvk

import (
	"fmt"

	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

var (
	// ErrCapacityExceeded is returned by RenderFrame when more vertices are
	// supplied than the vertex buffer was sized for.
	ErrCapacityExceeded = errors.New("vertex count exceeds vertex buffer capacity")
	// ErrDeviceTimeout is returned when a frame fence does not signal within
	// the configured timeout. The device is presumed lost.
	ErrDeviceTimeout = errors.New("timed out waiting for frame fence, device presumed lost")
	// ErrNoDevice is returned when no physical device can present to the surface.
	ErrNoDevice = errors.New("no physical device with graphics, present and swapchain support")
	// ErrBadShader is returned for missing or malformed SPIR-V binaries.
	ErrBadShader = errors.New("invalid SPIR-V shader binary")

	// errSwapchainOutOfDate signals the frame loop to rebuild the swapchain.
	errSwapchainOutOfDate = errors.New("swapchain out of date")
)

// VulkanError carries the raw result of a failed Vulkan call.
type VulkanError struct {
	Result vk.Result
}

func (e *VulkanError) Error() string {
	return fmt.Sprintf("vulkan error: %s (%d)", vk.Error(e.Result).Error(), e.Result)
}

func isError(ret vk.Result) bool {
	return ret != vk.Success
}

// NewError converts a Vulkan result into an error, nil on vk.Success.
func NewError(ret vk.Result) error {
	if !isError(ret) {
		return nil
	}
	return &VulkanError{Result: ret}
}

// Result extracts the Vulkan result code from err, if any.
func Result(err error) (vk.Result, bool) {
	var verr *VulkanError
	if errors.As(err, &verr) {
		return verr.Result, true
	}
	return vk.Success, false
}
