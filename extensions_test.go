package trigvk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckExisting(t *testing.T) {
	actual := []string{"VK_KHR_surface", "VK_KHR_xcb_surface", debugReportExtension}
	wanted := []string{"VK_KHR_surface\x00", "VK_KHR_surface", "VK_KHR_wayland_surface", debugReportExtension}

	existing, missing := checkExisting(actual, wanted)
	assert.Equal(t, []string{"VK_KHR_surface\x00", debugReportExtension + "\x00"}, existing)
	assert.Equal(t, []string{"VK_KHR_wayland_surface"}, missing)
}

func TestSafeString(t *testing.T) {
	assert.Equal(t, "a\x00", safeString("a"))
	assert.Equal(t, "a\x00", safeString("a\x00"))
	assert.Equal(t, []string{"x\x00", "y\x00"}, safeStrings([]string{"x", "y\x00"}))
}
