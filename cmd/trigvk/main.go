// Command trigvk animates a sine wave as a Vulkan line strip.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/andewx/trigvk"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// GLFW and the Vulkan surface must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file")
		debug      = flag.Bool("debug", false, "enable validation layers and the debug report callback")
		points     = flag.Int("points", 0, "vertices per frame")
		amplitude  = flag.Float64("amplitude", 0, "wave amplitude in NDC units")
		frequency  = flag.Float64("frequency", 0, "wave cycles across the window")
		shaders    = flag.String("shaders", "", "directory holding vert.spv and frag.spv")
		width      = flag.Int("width", 0, "window width")
		height     = flag.Int("height", 0, "window height")
	)
	flag.Parse()

	cfg := trigvk.DefaultConfig()
	if *configPath != "" {
		loaded, err := trigvk.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// Only flags given on the command line override the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "debug":
			cfg.Validation = *debug
		case "points":
			cfg.Points = *points
		case "amplitude":
			cfg.Amplitude = float32(*amplitude)
		case "frequency":
			cfg.Frequency = float32(*frequency)
		case "shaders":
			cfg.ShaderDir = *shaders
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		}
	})

	os.Exit(run(cfg))
}

func run(cfg trigvk.Config) int {
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logs, err := trigvk.NewLoggers(cfg.LogDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer logs.Close()

	if err := glfw.Init(); err != nil {
		logs.Error.Println(err)
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer glfw.Terminate()

	app, err := trigvk.NewApp(cfg, logs)
	if err != nil {
		logs.Error.Println(err)
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	err = app.Run()
	if cerr := app.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		logs.Error.Println(err)
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
