package trigvk

import (
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// InitVulkan loads the Vulkan entry points through GLFW. glfw.Init must have
// been called first.
func InitVulkan() error {
	if !glfw.VulkanSupported() {
		return errors.New("vulkan loader not found")
	}
	vk.SetGetInstanceProcAddr(glfw.GetVulkanGetInstanceProcAddress())
	return errors.Wrap(vk.Init(), "vulkan init")
}

func (c *GraphicsContext) createDebugCallback() error {
	var callback vk.DebugReportCallback
	ret := vk.CreateDebugReportCallback(c.instance, &vk.DebugReportCallbackCreateInfo{
		SType:       vk.StructureTypeDebugReportCallbackCreateInfo,
		Flags:       vk.DebugReportFlags(vk.DebugReportErrorBit | vk.DebugReportWarningBit | vk.DebugReportPerformanceWarningBit),
		PfnCallback: c.debugReport,
	}, nil, &callback)
	if err := NewError(ret); err != nil {
		return err
	}
	instance := c.instance
	c.release.push("debug report callback", func() {
		vk.DestroyDebugReportCallback(instance, callback, nil)
	})
	c.logs.Info.Println("vulkan: debug report callback enabled")
	return nil
}

func (c *GraphicsContext) debugReport(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType,
	object uint64, location uint, messageCode int32, pLayerPrefix string,
	pMessage string, pUserData unsafe.Pointer) vk.Bool32 {

	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		c.logs.Error.Printf("[%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit) != 0:
		c.logs.Warn.Printf("[%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportPerformanceWarningBit) != 0:
		c.logs.Warn.Printf("PERFORMANCE [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	default:
		c.logs.Info.Printf("[%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	}
	return vk.Bool32(vk.False)
}
