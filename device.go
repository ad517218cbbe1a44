package trigvk

import vk "github.com/vulkan-go/vulkan"

// CoreDevice is the selected physical device and the logical device created on it.
type CoreDevice struct {
	gpu               vk.PhysicalDevice
	properties        vk.PhysicalDeviceProperties
	memory_properties vk.PhysicalDeviceMemoryProperties
	families          QueueFamilies
	handle            vk.Device
	graphics_queue    vk.Queue
	present_queue     vk.Queue
	name              string
}

// Name of the selected GPU as reported by the driver.
func (d *CoreDevice) Name() string {
	return d.name
}

// memoryTypeFlags flattens the memory types into their property flags.
func (d *CoreDevice) memoryTypeFlags() []vk.MemoryPropertyFlags {
	count := int(d.memory_properties.MemoryTypeCount)
	flags := make([]vk.MemoryPropertyFlags, count)
	for i := 0; i < count; i++ {
		d.memory_properties.MemoryTypes[i].Deref()
		flags[i] = d.memory_properties.MemoryTypes[i].PropertyFlags
	}
	return flags
}
