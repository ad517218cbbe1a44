package trigvk

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// GraphicsContext owns every Vulkan object used to draw the line strip.
// Create it with NewGraphicsContext and release it with Destroy.
type GraphicsContext struct {
	cfg     Config
	display *Display
	logs    *Loggers

	instance     vk.Instance
	layers       []string
	debug_report bool
	surface      vk.Surface
	device       CoreDevice
	swapchain    *CoreSwapchain
	render_pass  vk.RenderPass
	pipeline     *CorePipeline
	pool         *CorePool
	slots        [MaxFramesInFlight]FrameSlot
	vertices     *VertexBuffer

	frames  *frameLoop
	release releaser
}

// initStep is one stage of context creation. releases names the release
// steps the stage pushes when it succeeds, in push order.
type initStep struct {
	stage    string
	fn       func() error
	releases []string
}

// NewGraphicsContext creates all GPU resources in dependency order. If any
// step fails, the resources created so far are released before returning.
func NewGraphicsContext(cfg Config, display *Display, logs *Loggers) (*GraphicsContext, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logs == nil {
		logs = DiscardLoggers()
	}
	c := &GraphicsContext{
		cfg:     cfg,
		display: display,
		logs:    logs,
	}
	c.release.log = logs.Info.Printf

	if err := runInit(c.initSteps(), &c.release); err != nil {
		if derr := c.Destroy(); derr != nil {
			logs.Warn.Printf("cleanup after failed init: %v", derr)
		}
		return nil, err
	}

	c.frames = newFrameLoop(c, c.vertices.Capacity(), cfg.fenceTimeout())
	c.logs.Info.Printf("vulkan: context ready, %d point vertex buffer", c.vertices.Capacity())
	return c, nil
}

// initSteps lists creation in dependency order. Teardown runs the releases
// backwards, so the vertex buffer goes first and the instance last.
func (c *GraphicsContext) initSteps() []initStep {
	return []initStep{
		{"create instance", c.createInstance, []string{"instance"}},
		{"create debug report callback", c.maybeCreateDebugCallback, []string{"debug report callback"}},
		{"create surface", c.createSurface, []string{"surface"}},
		{"pick physical device", c.pickPhysicalDevice, nil},
		{"create logical device", c.createLogicalDevice, []string{"device"}},
		{"create swapchain", c.createSwapchain, []string{"swapchain"}},
		{"create image views", c.createImageViewsOnce, []string{"image views"}},
		{"create render pass", c.createRenderPass, []string{"render pass"}},
		{"create pipeline", c.createPipeline, []string{"pipeline layout", "pipeline"}},
		{"create framebuffers", c.createFramebuffersOnce, []string{"framebuffers"}},
		{"create command pool", c.createCommandPool, []string{"command pool"}},
		{"create sync objects", c.createFrameSlots, []string{"frame slot", "frame slot"}},
		{"create vertex buffer", c.createVertexBuffer, []string{"vertex buffer"}},
	}
}

// runInit runs steps in order and stops at the first failure. A successful
// step must have pushed its declared releases; optional ones may be skipped.
func runInit(steps []initStep, r *releaser) error {
	for _, step := range steps {
		before := r.pending()
		if err := step.fn(); err != nil {
			return errors.Wrap(err, step.stage)
		}
		if pushed := r.names()[before:]; !subsequence(pushed, step.releases) {
			return errors.Errorf("%s: pushed releases %v, declared %v", step.stage, pushed, step.releases)
		}
	}
	return nil
}

// subsequence reports whether every element of got appears in want in order.
func subsequence(got, want []string) bool {
	j := 0
	for _, name := range got {
		for j < len(want) && want[j] != name {
			j++
		}
		if j == len(want) {
			return false
		}
		j++
	}
	return true
}

func (c *GraphicsContext) maybeCreateDebugCallback() error {
	if !c.debug_report {
		return nil
	}
	return c.createDebugCallback()
}

// Image views and framebuffers are rebuilt with the swapchain, so their
// release steps read the current handles instead of capturing them.
func (c *GraphicsContext) createImageViewsOnce() error {
	c.release.push("image views", c.destroyImageViews)
	return c.createImageViews()
}

func (c *GraphicsContext) createFramebuffersOnce() error {
	c.release.push("framebuffers", c.destroyFramebuffers)
	return c.createFramebuffers()
}

// RenderFrame draws one line strip through the vertices. The slice must not
// be longer than the configured point count.
func (c *GraphicsContext) RenderFrame(vertices []Vertex) error {
	if c.frames == nil {
		return errors.New("render on a destroyed context")
	}
	return c.frames.render(vertices)
}

// Resize marks the swapchain stale. It is rebuilt after the next present.
func (c *GraphicsContext) Resize() {
	if c.frames != nil {
		c.frames.resized = true
	}
}

// FrameIndex is the frame slot the next RenderFrame will use.
func (c *GraphicsContext) FrameIndex() int {
	if c.frames == nil {
		return 0
	}
	return c.frames.current
}

func (c *GraphicsContext) Swapchain() SwapchainDimensions {
	if c.swapchain == nil {
		return SwapchainDimensions{}
	}
	return c.swapchain.Dimensions()
}

func (c *GraphicsContext) DeviceName() string {
	return c.device.Name()
}

// Destroy waits for the device to go idle and then releases every resource
// in reverse creation order. Calling it again is a no-op.
func (c *GraphicsContext) Destroy() error {
	if c.release.pending() > 0 {
		c.logs.Info.Printf("vulkan: releasing %d resources", c.release.pending())
	}
	err := c.release.release()
	c.frames = nil
	return err
}

func (c *GraphicsContext) waitSlot(slot int, timeout uint64) error {
	fences := []vk.Fence{c.slots[slot].inFlight}
	ret := vk.WaitForFences(c.device.handle, 1, fences, vk.True, timeout)
	if ret == vk.Timeout {
		return ErrDeviceTimeout
	}
	return NewError(ret)
}

func (c *GraphicsContext) acquire(slot int, timeout uint64) (uint32, error) {
	var image uint32
	ret := vk.AcquireNextImage(c.device.handle, c.swapchain.swapchain, timeout,
		c.slots[slot].imageAvailable, vk.NullFence, &image)
	switch ret {
	case vk.Success, vk.Suboptimal:
		return image, nil
	case vk.ErrorOutOfDate:
		return 0, errSwapchainOutOfDate
	case vk.Timeout, vk.NotReady:
		return 0, ErrDeviceTimeout
	}
	return 0, NewError(ret)
}

func (c *GraphicsContext) upload(vertices []Vertex) error {
	return c.vertices.Update(vertices)
}

func (c *GraphicsContext) record(image uint32, count int) error {
	img := c.swapchain.images[image]
	cmd := img.command

	ret := vk.ResetCommandBuffer(cmd, 0)
	if isError(ret) {
		return NewError(ret)
	}
	ret = vk.BeginCommandBuffer(cmd, &vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit),
	})
	if isError(ret) {
		return NewError(ret)
	}

	extent := c.swapchain.extent
	area := vk.Rect2D{Offset: vk.Offset2D{}, Extent: extent}
	clearValues := []vk.ClearValue{
		vk.NewClearValue(c.cfg.ClearColor[:]),
	}
	vk.CmdBeginRenderPass(cmd, &vk.RenderPassBeginInfo{
		SType:           vk.StructureTypeRenderPassBeginInfo,
		RenderPass:      c.render_pass,
		Framebuffer:     img.framebuffer,
		RenderArea:      area,
		ClearValueCount: uint32(len(clearValues)),
		PClearValues:    clearValues,
	}, vk.SubpassContentsInline)

	vk.CmdSetViewport(cmd, 0, 1, []vk.Viewport{{
		Width:    float32(extent.Width),
		Height:   float32(extent.Height),
		MinDepth: 0.0,
		MaxDepth: 1.0,
	}})
	vk.CmdSetScissor(cmd, 0, 1, []vk.Rect2D{area})

	vk.CmdBindPipeline(cmd, vk.PipelineBindPointGraphics, c.pipeline.pipeline)
	vk.CmdBindVertexBuffers(cmd, 0, 1, []vk.Buffer{c.vertices.buffer}, []vk.DeviceSize{0})
	vk.CmdDraw(cmd, uint32(count), 1, 0, 0)
	vk.CmdEndRenderPass(cmd)

	return NewError(vk.EndCommandBuffer(cmd))
}

func (c *GraphicsContext) submit(slot int, image uint32) error {
	s := c.slots[slot]
	fences := []vk.Fence{s.inFlight}
	if err := NewError(vk.ResetFences(c.device.handle, 1, fences)); err != nil {
		return errors.Wrap(err, "reset fence")
	}

	ret := vk.QueueSubmit(c.device.graphics_queue, 1, []vk.SubmitInfo{{
		SType:              vk.StructureTypeSubmitInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{s.imageAvailable},
		PWaitDstStageMask: []vk.PipelineStageFlags{
			vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		},
		CommandBufferCount:   1,
		PCommandBuffers:      []vk.CommandBuffer{c.swapchain.images[image].command},
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    []vk.Semaphore{s.renderFinished},
	}}, s.inFlight)
	return NewError(ret)
}

func (c *GraphicsContext) present(slot int, image uint32) error {
	ret := vk.QueuePresent(c.device.present_queue, &vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{c.slots[slot].renderFinished},
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{c.swapchain.swapchain},
		PImageIndices:      []uint32{image},
	})
	switch ret {
	case vk.Success:
		return nil
	case vk.ErrorOutOfDate, vk.Suboptimal:
		return errSwapchainOutOfDate
	}
	return NewError(ret)
}
