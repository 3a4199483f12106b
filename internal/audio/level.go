package audio

import "math"

const (
	RingSize        = 8192
	LevelWindow     = 2048
	SmoothingFactor = 0.6
)

// rmsLevel returns the compressed RMS of the mono mix of samples, in [0,1].
func rmsLevel(samples [][2]float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sumSquares float64
	for _, s := range samples {
		mono := (s[0] + s[1]) * 0.5
		sumSquares += mono * mono
	}
	rms := math.Sqrt(sumSquares / float64(len(samples)))
	// More aggressive compression for visual effect
	return math.Min(1, math.Pow(rms, 0.3))
}

// smoother is an exponential moving average.
type smoother struct {
	factor float64
	value  float64
}

func (s *smoother) next(v float64) float64 {
	s.value = s.factor*s.value + (1-s.factor)*v
	return s.value
}
