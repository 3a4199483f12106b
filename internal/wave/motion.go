// Package wave holds the geometry of the animated line strips: per-kind motion profiles,
// line progress, the three-sinusoid height function and pointer influence.
//
// Everything here is pure and deterministic; the renderer supplies time and surface size.
package wave

// Kind names a wave layer. Unknown kinds are valid and use [DefaultMotion].
type Kind string

const (
	KindTop    Kind = "top"
	KindMiddle Kind = "middle"
	KindBottom Kind = "bottom"
)

// Motion is the fixed motion profile of a wave kind.
type Motion struct {
	Amplitude float64 // primary amplitude in CSS pixels
	Frequency float64 // spatial frequency, radians per pixel
	Speed     float64 // temporal speed, radians per second of elapsed time
	Offset    float64 // vertical offset as a fraction of surface height
}

// Motions is the read-only motion table keyed by wave kind.
var Motions = map[Kind]Motion{
	KindTop:    {Amplitude: 40, Frequency: 0.008, Speed: 0.6, Offset: 0.25},
	KindMiddle: {Amplitude: 60, Frequency: 0.006, Speed: 0.4, Offset: 0.5},
	KindBottom: {Amplitude: 45, Frequency: 0.010, Speed: 0.8, Offset: 0.75},
}

// DefaultMotion is used for kinds missing from [Motions].
var DefaultMotion = Motion{Amplitude: 50, Frequency: 0.007, Speed: 0.5, Offset: 0.5}

// MotionFor returns the motion profile for kind, or DefaultMotion.
func MotionFor(kind Kind) Motion {
	if m, ok := Motions[kind]; ok {
		return m
	}
	return DefaultMotion
}
