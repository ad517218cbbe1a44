package trigvk

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

func (c *GraphicsContext) createInstance() error {
	required := c.display.RequiredInstanceExtensions()
	wanted := append([]string{}, required...)
	var wantedLayers []string
	if c.cfg.Validation {
		wanted = append(wanted, debugReportExtension)
		wantedLayers = append(wantedLayers, validationLayer)
	}

	actual, err := InstanceExtensions()
	if err != nil {
		return errors.Wrap(err, "enumerate instance extensions")
	}
	extensions, missing := checkExisting(actual, wanted)
	for _, name := range missing {
		if name != debugReportExtension {
			return errors.Errorf("window system extension %s not available", name)
		}
		c.logs.Warn.Printf("vulkan: %s not available, debug report disabled", name)
	}
	c.debug_report = c.cfg.Validation && len(missing) == 0

	if len(wantedLayers) > 0 {
		layers, err := ValidationLayers()
		if err != nil {
			return errors.Wrap(err, "enumerate validation layers")
		}
		var missingLayers []string
		c.layers, missingLayers = checkExisting(layers, wantedLayers)
		for _, name := range missingLayers {
			c.logs.Warn.Printf("vulkan: validation layer %s not available", name)
		}
	}
	c.logs.Info.Printf("vulkan: enabling %d instance extensions, %d layers", len(extensions), len(c.layers))

	var instance vk.Instance
	ret := vk.CreateInstance(&vk.InstanceCreateInfo{
		SType: vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: &vk.ApplicationInfo{
			SType:              vk.StructureTypeApplicationInfo,
			ApiVersion:         uint32(DefaultVulkanAPIVersion),
			ApplicationVersion: uint32(DefaultVulkanAppVersion),
			PApplicationName:   safeString(c.cfg.Title),
			PEngineName:        safeString(engineName),
			EngineVersion:      uint32(DefaultVulkanAppVersion),
		},
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: extensions,
		EnabledLayerCount:       uint32(len(c.layers)),
		PpEnabledLayerNames:     c.layers,
	}, nil, &instance)
	if err := NewError(ret); err != nil {
		return err
	}
	c.instance = instance
	c.release.push("instance", func() {
		vk.DestroyInstance(instance, nil)
	})

	return errors.Wrap(vk.InitInstance(instance), "load instance functions")
}

func (c *GraphicsContext) createSurface() error {
	surface, err := c.display.createSurface(c.instance)
	if err != nil {
		return err
	}
	c.surface = surface
	instance := c.instance
	c.release.push("surface", func() {
		vk.DestroySurface(instance, surface, nil)
	})
	return nil
}

// pickPhysicalDevice takes the first GPU that has the swapchain extension and
// queue families for graphics and for presenting to the surface.
func (c *GraphicsContext) pickPhysicalDevice() error {
	var count uint32
	ret := vk.EnumeratePhysicalDevices(c.instance, &count, nil)
	if isError(ret) {
		return NewError(ret)
	}
	if count == 0 {
		return ErrNoDevice
	}
	gpus := make([]vk.PhysicalDevice, count)
	ret = vk.EnumeratePhysicalDevices(c.instance, &count, gpus)
	if isError(ret) {
		return NewError(ret)
	}

	for _, gpu := range gpus {
		extensions, err := DeviceExtensions(gpu)
		if err != nil {
			c.logs.Warn.Printf("vulkan: skipping device, %v", err)
			continue
		}
		if _, missing := checkExisting(extensions, []string{swapchainExtension}); len(missing) > 0 {
			continue
		}
		families, ok := pickQueueFamilies(queryFamilySupport(gpu, c.surface))
		if !ok {
			continue
		}

		c.device.gpu = gpu
		c.device.families = families
		vk.GetPhysicalDeviceProperties(gpu, &c.device.properties)
		c.device.properties.Deref()
		vk.GetPhysicalDeviceMemoryProperties(gpu, &c.device.memory_properties)
		c.device.memory_properties.Deref()
		c.device.name = vk.ToString(c.device.properties.DeviceName[:])

		c.logs.Info.Printf("vulkan: using %s (graphics family %d, present family %d)",
			c.device.name, families.Graphics, families.Present)
		return nil
	}
	return ErrNoDevice
}

func (c *GraphicsContext) createLogicalDevice() error {
	queueInfos := c.device.families.queueCreateInfos()
	extensions := safeStrings([]string{swapchainExtension})

	var device vk.Device
	ret := vk.CreateDevice(c.device.gpu, &vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueInfos)),
		PQueueCreateInfos:       queueInfos,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: extensions,
		EnabledLayerCount:       uint32(len(c.layers)),
		PpEnabledLayerNames:     c.layers,
	}, nil, &device)
	if err := NewError(ret); err != nil {
		return err
	}
	c.device.handle = device
	c.release.push("device", func() {
		vk.DestroyDevice(device, nil)
	})
	c.release.idle = func() error {
		return NewError(vk.DeviceWaitIdle(device))
	}

	vk.GetDeviceQueue(device, c.device.families.Graphics, 0, &c.device.graphics_queue)
	vk.GetDeviceQueue(device, c.device.families.Present, 0, &c.device.present_queue)
	return nil
}
