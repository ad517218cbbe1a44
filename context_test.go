package trigvk

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitStepsOrder(t *testing.T) {
	steps := (&GraphicsContext{}).initSteps()

	var stages []string
	var pushed []string
	for _, step := range steps {
		stages = append(stages, step.stage)
		pushed = append(pushed, step.releases...)
	}
	assert.Equal(t, []string{
		"create instance",
		"create debug report callback",
		"create surface",
		"pick physical device",
		"create logical device",
		"create swapchain",
		"create image views",
		"create render pass",
		"create pipeline",
		"create framebuffers",
		"create command pool",
		"create sync objects",
		"create vertex buffer",
	}, stages)

	var destroyed []string
	for i := len(pushed) - 1; i >= 0; i-- {
		destroyed = append(destroyed, pushed[i])
	}
	assert.Equal(t, []string{
		"vertex buffer",
		"frame slot",
		"frame slot",
		"command pool",
		"framebuffers",
		"pipeline",
		"pipeline layout",
		"render pass",
		"image views",
		"swapchain",
		"device",
		"surface",
		"debug report callback",
		"instance",
	}, destroyed)
}

// fakeSteps replays the declared releases of the real steps without a GPU.
func fakeSteps(r *releaser, log *[]string, failAt string) []initStep {
	steps := (&GraphicsContext{}).initSteps()
	for i := range steps {
		step := steps[i]
		steps[i].fn = func() error {
			if step.stage == failAt {
				return errors.New("out of device memory")
			}
			for _, name := range step.releases {
				name := name
				r.push(name, func() { *log = append(*log, name) })
			}
			return nil
		}
	}
	return steps
}

func TestRunInitFullTeardown(t *testing.T) {
	var r releaser
	var destroyed []string
	require.NoError(t, runInit(fakeSteps(&r, &destroyed, ""), &r))
	require.NoError(t, r.release())

	assert.Equal(t, "vertex buffer", destroyed[0])
	assert.Equal(t, "instance", destroyed[len(destroyed)-1])
	assert.Len(t, destroyed, 14)
}

func TestRunInitPartialTeardown(t *testing.T) {
	var r releaser
	var destroyed []string
	err := runInit(fakeSteps(&r, &destroyed, "create pipeline"), &r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create pipeline: out of device memory")

	require.NoError(t, r.release())
	assert.Equal(t, []string{
		"render pass", "image views", "swapchain", "device", "surface", "debug report callback", "instance",
	}, destroyed)
}

func TestRunInitUndeclaredRelease(t *testing.T) {
	var r releaser
	steps := []initStep{{
		stage:    "create render pass",
		fn:       func() error { r.push("pipeline", func() {}); return nil },
		releases: []string{"render pass"},
	}}
	err := runInit(steps, &r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create render pass")
}

func TestRunInitOptionalRelease(t *testing.T) {
	var r releaser
	steps := []initStep{{
		stage:    "create debug report callback",
		fn:       func() error { return nil },
		releases: []string{"debug report callback"},
	}}
	assert.NoError(t, runInit(steps, &r))
}

func TestSubsequence(t *testing.T) {
	assert.True(t, subsequence(nil, nil))
	assert.True(t, subsequence([]string{"frame slot"}, []string{"frame slot", "frame slot"}))
	assert.True(t, subsequence([]string{"a", "c"}, []string{"a", "b", "c"}))
	assert.False(t, subsequence([]string{"c", "a"}, []string{"a", "b", "c"}))
	assert.False(t, subsequence([]string{"a", "a"}, []string{"a"}))
}
