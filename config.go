package trigvk

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the window, wave and renderer settings. It maps onto a YAML
// document; any field left out keeps its DefaultConfig value.
type Config struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`

	Amplitude float32 `yaml:"amplitude"`
	Frequency float32 `yaml:"frequency"`
	// Points is the number of line strip vertices per frame and also the
	// vertex buffer capacity.
	Points int `yaml:"points"`

	ShaderDir  string `yaml:"shader_dir"`
	Validation bool   `yaml:"validation"`
	// FenceTimeout bounds the wait on a frame slot. Zero waits forever.
	FenceTimeout time.Duration `yaml:"fence_timeout"`
	ClearColor   [4]float32    `yaml:"clear_color"`

	// StatsInterval is the number of frames between frame time reports.
	// Zero disables reporting.
	StatsInterval int    `yaml:"stats_interval"`
	LogDir        string `yaml:"log_dir"`
}

func DefaultConfig() Config {
	return Config{
		Title:         "Trigonometricly",
		Width:         800,
		Height:        600,
		Amplitude:     0.5,
		Frequency:     1.0,
		Points:        200,
		ShaderDir:     "shaders",
		FenceTimeout:  5 * time.Second,
		ClearColor:    [4]float32{0.1, 0.1, 0.1, 1.0},
		StatsInterval: 600,
	}
}

// LoadConfig reads a YAML file on top of the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.Points < 2:
		return errors.Errorf("config: points must be at least 2, got %d", c.Points)
	case c.Width <= 0 || c.Height <= 0:
		return errors.Errorf("config: window size must be positive, got %dx%d", c.Width, c.Height)
	case c.FenceTimeout < 0:
		return errors.Errorf("config: fence_timeout must not be negative, got %s", c.FenceTimeout)
	case c.StatsInterval < 0:
		return errors.Errorf("config: stats_interval must not be negative, got %d", c.StatsInterval)
	case c.ShaderDir == "":
		return errors.New("config: shader_dir is empty")
	}
	return nil
}

// fenceTimeout converts FenceTimeout to the nanosecond count Vulkan expects.
func (c Config) fenceTimeout() uint64 {
	if c.FenceTimeout <= 0 {
		return vkNoTimeout
	}
	return uint64(c.FenceTimeout.Nanoseconds())
}
