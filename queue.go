package trigvk

import vk "github.com/vulkan-go/vulkan"

// QueueFamilies holds the family indices used for graphics and presentation.
type QueueFamilies struct {
	Graphics uint32
	Present  uint32
}

// Separate is true when presentation happens on a different family.
func (q QueueFamilies) Separate() bool {
	return q.Graphics != q.Present
}

// Unique returns the distinct family indices, graphics first.
func (q QueueFamilies) Unique() []uint32 {
	if q.Separate() {
		return []uint32{q.Graphics, q.Present}
	}
	return []uint32{q.Graphics}
}

// familySupport is what a queue family offers for this renderer.
type familySupport struct {
	graphics bool
	present  bool
}

// pickQueueFamilies prefers one family that does both graphics and present,
// otherwise the first graphics family and the first present family.
func pickQueueFamilies(families []familySupport) (QueueFamilies, bool) {
	graphics, present := -1, -1
	for i, f := range families {
		if f.graphics && f.present {
			return QueueFamilies{Graphics: uint32(i), Present: uint32(i)}, true
		}
		if f.graphics && graphics < 0 {
			graphics = i
		}
		if f.present && present < 0 {
			present = i
		}
	}
	if graphics < 0 || present < 0 {
		return QueueFamilies{}, false
	}
	return QueueFamilies{Graphics: uint32(graphics), Present: uint32(present)}, true
}

// queryFamilySupport lists graphics and surface present support per family.
func queryFamilySupport(gpu vk.PhysicalDevice, surface vk.Surface) []familySupport {
	var count uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(gpu, &count, nil)
	properties := make([]vk.QueueFamilyProperties, count)
	vk.GetPhysicalDeviceQueueFamilyProperties(gpu, &count, properties)

	support := make([]familySupport, count)
	for i := range properties {
		properties[i].Deref()
		var supportsPresent vk.Bool32
		vk.GetPhysicalDeviceSurfaceSupport(gpu, uint32(i), surface, &supportsPresent)
		support[i] = familySupport{
			graphics: properties[i].QueueFlags&vk.QueueFlags(vk.QueueGraphicsBit) != 0,
			present:  supportsPresent.B(),
		}
	}
	return support
}

// queueCreateInfos requests a single queue from each unique family.
func (q QueueFamilies) queueCreateInfos() []vk.DeviceQueueCreateInfo {
	families := q.Unique()
	infos := make([]vk.DeviceQueueCreateInfo, len(families))
	for i, family := range families {
		infos[i] = vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: family,
			QueueCount:       1,
			PQueuePriorities: []float32{1.0},
		}
	}
	return infos
}
