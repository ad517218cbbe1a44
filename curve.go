package trigvk

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is one line strip point in normalized device coordinates.
type Vertex struct {
	Pos mgl32.Vec2
}

// SineWave samples amplitude*sin(frequency*x*2π+phase) at points evenly
// spaced x values across [-1, 1]. A single point sits at x = -1.
func SineWave(amplitude, frequency, phase float32, points int) []Vertex {
	if points <= 0 {
		return []Vertex{}
	}
	vertices := make([]Vertex, points)
	for i := range vertices {
		x := float32(-1)
		if points > 1 {
			x = float32(i)/float32(points-1)*2 - 1
		}
		y := amplitude * math32.Sin(frequency*x*2*math32.Pi+phase)
		vertices[i] = Vertex{Pos: mgl32.Vec2{x, y}}
	}
	return vertices
}

// Wave is the fixed shape of the animated curve; only the phase changes
// between frames.
type Wave struct {
	Amplitude float32
	Frequency float32
	Points    int
}

func (w Wave) Sample(phase float32) []Vertex {
	return SineWave(w.Amplitude, w.Frequency, phase, w.Points)
}

// WaveFromConfig builds the wave described by cfg.
func WaveFromConfig(cfg Config) Wave {
	return Wave{Amplitude: cfg.Amplitude, Frequency: cfg.Frequency, Points: cfg.Points}
}
