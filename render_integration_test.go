//go:build gpu

package trigvk

import (
	"os"
	"runtime"
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

const (
	WIDTH  = 500
	HEIGHT = 500
)

// mainfunc carries work that GLFW needs on the main OS thread.
var mainfunc = make(chan func())

func init() {
	runtime.LockOSThread()
}

// TestMain keeps the main goroutine, locked to the main thread by init,
// serving mainfunc while the tests run on their own goroutines.
func TestMain(m *testing.M) {
	done := make(chan int)
	go func() {
		done <- m.Run()
	}()
	for {
		select {
		case f := <-mainfunc:
			f()
		case code := <-done:
			os.Exit(code)
		}
	}
}

// onMain runs f on the main thread and waits for it.
func onMain(f func()) {
	finished := make(chan struct{})
	mainfunc <- func() {
		defer close(finished)
		f()
	}
	<-finished
}

type renderResult struct {
	device    string
	images    int
	maxSlot   int
	overflow  error
	afterStop error
}

// renderSession opens a real window and renders a few hundred frames,
// resizing halfway through. It must run on the main thread.
func renderSession() (res renderResult, err error) {
	if err := glfw.Init(); err != nil {
		return res, err
	}
	defer glfw.Terminate()

	cfg := DefaultConfig()
	cfg.Width, cfg.Height = WIDTH, HEIGHT
	cfg.Validation = true
	cfg.StatsInterval = 100

	logs, err := NewLoggers("")
	if err != nil {
		return res, err
	}

	app, err := NewApp(cfg, logs)
	if err != nil {
		return res, err
	}
	defer app.Close()

	ctx := app.context
	res.device = ctx.DeviceName()
	res.images = ctx.Swapchain().Images

	wave := WaveFromConfig(cfg)
	for i := 0; i < 300; i++ {
		if err := ctx.RenderFrame(wave.Sample(float32(i) * 0.05)); err != nil {
			return res, errors.Wrapf(err, "frame %d", i)
		}
		if ctx.FrameIndex() > res.maxSlot {
			res.maxSlot = ctx.FrameIndex()
		}
		if i == 150 {
			app.window.SetSize(WIDTH+100, HEIGHT)
			glfw.PollEvents()
			ctx.Resize()
		}
	}

	res.overflow = ctx.RenderFrame(SineWave(1, 1, 0, cfg.Points+1))

	if err := app.Close(); err != nil {
		return res, err
	}
	if err := ctx.Destroy(); err != nil {
		return res, errors.Wrap(err, "second destroy")
	}
	res.afterStop = ctx.RenderFrame(nil)
	return res, nil
}

// Needs a Vulkan driver and compiled shaders:
//
//	go generate && go test -tags gpu -run TestRender
func TestRender(t *testing.T) {
	var (
		res renderResult
		err error
	)
	onMain(func() {
		res, err = renderSession()
	})
	require.NoError(t, err)

	require.NotEmpty(t, res.device)
	require.GreaterOrEqual(t, res.images, 2)
	require.Less(t, res.maxSlot, MaxFramesInFlight)
	require.ErrorIs(t, res.overflow, ErrCapacityExceeded)
	require.Error(t, res.afterStop)
}
