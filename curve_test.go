package trigvk

import (
	"math"
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-5

func TestSineWaveZeroCrossings(t *testing.T) {
	v := SineWave(0.5, 1.0, 0, 5)
	require.Len(t, v, 5)

	xs := []float32{-1, -0.5, 0, 0.5, 1}
	for i, want := range xs {
		assert.InDelta(t, want, v[i].Pos.X(), eps)
		assert.InDelta(t, 0, v[i].Pos.Y(), eps, "x=%v", want)
	}
}

func TestSineWaveHalfFrequency(t *testing.T) {
	v := SineWave(1.0, 0.5, math32.Pi/2, 3)
	require.Len(t, v, 3)

	// cos(πx) at x = -1, 0, 1
	xs := []float32{-1, 0, 1}
	ys := []float32{-1, 1, -1}
	for i := range v {
		assert.InDelta(t, xs[i], v[i].Pos.X(), eps)
		assert.InDelta(t, ys[i], v[i].Pos.Y(), eps)
	}
}

// sineAt is the float64 closed form the sampler approximates.
func sineAt(amplitude, frequency, phase, x float64) float64 {
	return amplitude * math.Sin(frequency*x*2*math.Pi+phase)
}

func TestSineWaveClosedForm(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for n := 0; n < 2000; n++ {
		amplitude := rng.Float64()
		frequency := rng.Float64() * 2
		phase := rng.Float64() * 2 * math.Pi
		points := 2 + rng.Intn(300)

		v := SineWave(float32(amplitude), float32(frequency), float32(phase), points)
		require.Len(t, v, points)

		step := 2 / float64(points-1)
		for i := range v {
			x := float64(v[i].Pos.X())
			if !assert.InDelta(t, float64(i)*step-1, x, 1e-6, "x[%d] of %d", i, points) {
				return
			}
			want := sineAt(float64(float32(amplitude)), float64(float32(frequency)), float64(float32(phase)), x)
			if !assert.InDelta(t, want, float64(v[i].Pos.Y()), 1e-5,
				"a=%v f=%v p=%v n=%d i=%d", amplitude, frequency, phase, points, i) {
				return
			}
			if i > 0 {
				assert.InDelta(t, step, x-float64(v[i-1].Pos.X()), 1e-6)
			}
		}
		assert.InDelta(t, -1, v[0].Pos.X(), eps)
		assert.InDelta(t, 1, v[points-1].Pos.X(), eps)
	}
}

func TestSineWaveDeterministic(t *testing.T) {
	assert.Equal(t, SineWave(0.7, 2, 0.3, 50), SineWave(0.7, 2, 0.3, 50))
}

func TestSineWaveDegenerate(t *testing.T) {
	assert.Empty(t, SineWave(1, 1, 0, 0))
	assert.Empty(t, SineWave(1, 1, 0, -3))

	v := SineWave(1, 1, 0, 1)
	require.Len(t, v, 1)
	assert.InDelta(t, -1, v[0].Pos.X(), eps)
}

func TestWaveFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Points = 7
	w := WaveFromConfig(cfg)
	assert.Equal(t, Wave{Amplitude: 0.5, Frequency: 1, Points: 7}, w)
	assert.Equal(t, SineWave(0.5, 1, 2, 7), w.Sample(2))
}
