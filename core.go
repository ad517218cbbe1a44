package trigvk

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
)

// App owns the window, the loggers and the graphics context for one run.
// glfw.Init must have been called on the main OS thread before NewApp.
type App struct {
	cfg     Config
	logs    *Loggers
	window  *glfw.Window
	display *Display
	context *GraphicsContext
}

// NewApp opens the window and brings up Vulkan. On failure everything created
// so far is released.
func NewApp(cfg Config, logs *Loggers) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logs == nil {
		logs = DiscardLoggers()
	}
	app := &App{cfg: cfg, logs: logs}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create window")
	}
	app.window = window

	if err := InitVulkan(); err != nil {
		app.window.Destroy()
		return nil, err
	}

	app.display = NewDisplay(window)
	ctx, err := NewGraphicsContext(cfg, app.display, logs)
	if err != nil {
		app.window.Destroy()
		return nil, err
	}
	app.context = ctx
	app.display.OnResize(func(width, height int) {
		logs.Info.Printf("framebuffer resized to %dx%d", width, height)
		ctx.Resize()
	})

	logs.Info.Printf("%s: rendering on %s, %s", cfg.Title, ctx.DeviceName(), ctx.Swapchain())
	return app, nil
}

// Run renders the configured wave until the window closes. The graphics
// context is destroyed before Run returns.
func (app *App) Run() error {
	if app.context == nil {
		return errors.New("app already ran")
	}
	ctx := app.context
	app.context = nil

	return Run(app.display, ctx, WaveFromConfig(app.cfg), RunOptions{
		StatsInterval: app.cfg.StatsInterval,
		Report: func(stats *FrameStats) {
			app.logs.Info.Println(stats.Report())
			app.display.SetTitle(windowTitle(app.cfg.Title, stats))
		},
	})
}

// Close destroys the context if Run never did, then the window.
func (app *App) Close() error {
	var err error
	if app.context != nil {
		err = app.context.Destroy()
		app.context = nil
	}
	if app.window != nil {
		app.window.Destroy()
		app.window = nil
	}
	return err
}

// windowTitle shows the frame rate of the last stats window next to title.
func windowTitle(title string, stats *FrameStats) string {
	return fmt.Sprintf("%s (%.0f fps)", title, stats.FPS())
}
