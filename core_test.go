package trigvk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWindowTitle(t *testing.T) {
	var stats FrameStats
	assert.Equal(t, "Trigonometricly (0 fps)", windowTitle("Trigonometricly", &stats))

	stats.Record(16 * time.Millisecond)
	stats.Record(17 * time.Millisecond)
	assert.Equal(t, "Trigonometricly (61 fps)", windowTitle("Trigonometricly", &stats))
}
