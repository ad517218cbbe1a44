package trigvk

import (
	"fmt"
	"time"
)

// FrameStats accumulates frame times over a reporting window. A frame time
// spans one whole pass of the render loop, so FPS is the loop rate.
type FrameStats struct {
	frames int
	total  time.Duration
	min    time.Duration
	max    time.Duration
}

func (s *FrameStats) Record(d time.Duration) {
	if s.frames == 0 || d < s.min {
		s.min = d
	}
	if d > s.max {
		s.max = d
	}
	s.frames++
	s.total += d
}

func (s *FrameStats) Frames() int {
	return s.frames
}

// Average frame time, zero when nothing was recorded.
func (s *FrameStats) Average() time.Duration {
	if s.frames == 0 {
		return 0
	}
	return s.total / time.Duration(s.frames)
}

// FPS derived from the average frame time.
func (s *FrameStats) FPS() float64 {
	avg := s.Average()
	if avg <= 0 {
		return 0
	}
	return float64(time.Second) / float64(avg)
}

func (s *FrameStats) Report() string {
	return fmt.Sprintf("frames=%d avg=%.3fms min=%.3fms max=%.3fms fps=%.1f",
		s.frames, ms(s.Average()), ms(s.min), ms(s.max), s.FPS())
}

func (s *FrameStats) Reset() {
	*s = FrameStats{}
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
