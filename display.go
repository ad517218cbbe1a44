package trigvk

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// Display is the GLFW window the context renders into. It also serves as the
// Host for Run.
type Display struct {
	window *glfw.Window
}

func NewDisplay(window *glfw.Window) *Display {
	return &Display{window: window}
}

// OnResize registers fn for framebuffer size changes.
func (d *Display) OnResize(fn func(width, height int)) {
	d.window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		fn(width, height)
	})
}

// RequiredInstanceExtensions lists what the window system needs from the instance.
func (d *Display) RequiredInstanceExtensions() []string {
	return d.window.GetRequiredInstanceExtensions()
}

func (d *Display) createSurface(instance vk.Instance) (vk.Surface, error) {
	ptr, err := d.window.CreateWindowSurface(instance, nil)
	if err != nil {
		return vk.NullSurface, errors.Wrap(err, "glfw")
	}
	return vk.SurfaceFromPointer(ptr), nil
}

func (d *Display) FramebufferSize() (int, int) {
	return d.window.GetFramebufferSize()
}

func (d *Display) ShouldClose() bool {
	return d.window.ShouldClose()
}

func (d *Display) PollEvents() {
	glfw.PollEvents()
}

func (d *Display) WaitEvents() {
	glfw.WaitEvents()
}

func (d *Display) Time() float64 {
	return glfw.GetTime()
}

func (d *Display) SetTitle(title string) {
	d.window.SetTitle(title)
}
