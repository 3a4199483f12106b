package wave

import (
	"math"

	"golang.org/x/image/math/f64"
)

const (
	// XStep is the horizontal distance between polyline vertices, in CSS pixels.
	XStep = 4.0

	// PhaseStep shifts each line's phase relative to the layer's centre line.
	PhaseStep = 0.35

	AlphaFloor = 0.2
	AlphaRange = 0.6
	WidthFloor = 1.0
	WidthRange = 1.5

	// Falloff is the distance, in CSS pixels, over which pointer influence drops by 1/e.
	Falloff = 120.0
	// PointerStrength is the peak pointer displacement in CSS pixels.
	PointerStrength   = 30.0
	RippleSpeed       = 3.0
	RippleFrequency   = 0.03
	secondaryFreqMul  = 1.7
	secondarySpeedMul = 0.6
	tertiaryFreqMul   = 0.45
	tertiarySpeedMul  = 1.4
)

// SentinelPointer stands for "no pointer". Its distance to any on-surface point is large
// enough that PointerInfluence underflows to zero.
var SentinelPointer = f64.Vec2{-1e5, -1e5}

// Progress is the [0,1] position of line i in a layer of count lines.
// A single-line layer has progress 0.
func Progress(i, count int) float64 {
	den := count - 1
	if den < 1 {
		den = 1
	}
	return float64(i) / float64(den)
}

// LineAlpha rises linearly with progress from AlphaFloor.
func LineAlpha(progress float64) float64 {
	return AlphaFloor + AlphaRange*progress
}

// LineWidth rises linearly with progress from WidthFloor.
func LineWidth(progress float64) float64 {
	return WidthFloor + WidthRange*progress
}

// Line identifies one polyline inside a layer.
type Line struct {
	Index   int
	Count   int
	Spacing float64
}

func (l Line) rel() float64 {
	return float64(l.Index) - float64(l.Count-1)/2
}

// Offset is the line's vertical distance from the layer offset. The centre line of an
// odd-count layer has offset 0.
func (l Line) Offset() float64 {
	return l.rel() * l.Spacing
}

// Phase is the line's phase shift relative to the centre line.
func (l Line) Phase() float64 {
	return l.rel() * PhaseStep
}

// Y returns the line height at x and elapsed time t, before pointer displacement.
func Y(m Motion, line Line, x, t, height float64) float64 {
	phase := line.Phase()
	base := m.Offset*height + line.Offset()

	primary := m.Amplitude * math.Sin(x*m.Frequency+t*m.Speed+phase)
	secondary := 0.5 * m.Amplitude * math.Cos(x*m.Frequency*secondaryFreqMul-t*m.Speed*secondarySpeedMul+phase*1.3+math.Pi/2)
	tertiary := 0.3 * m.Amplitude * math.Sin(x*m.Frequency*tertiaryFreqMul+t*m.Speed*tertiarySpeedMul+phase*0.7)

	return base + primary + secondary + tertiary
}

// PointerInfluence is exp(-distance/Falloff): 1 at the pointer, strictly decreasing, and
// approaching 0 with distance.
func PointerInfluence(distance float64) float64 {
	if distance < 0 {
		distance = 0
	}
	return math.Exp(-distance / Falloff)
}

// PointerDisplacement is the ripple added to a vertex distance away from the pointer.
// Its magnitude never exceeds PointerStrength*PointerInfluence(distance).
func PointerDisplacement(distance, t float64) float64 {
	return PointerStrength * PointerInfluence(distance) * math.Sin(t*RippleSpeed-distance*RippleFrequency)
}

// Trace appends the polyline of line across [0,width] to dst and returns it.
// When pointer is non-nil each vertex is displaced by its distance to *pointer.
func Trace(dst []f64.Vec2, m Motion, line Line, t, width, height float64, pointer *f64.Vec2) []f64.Vec2 {
	for x := 0.0; ; x += XStep {
		if x > width {
			x = width
		}
		dst = append(dst, PointAt(m, line, x, t, height, pointer))
		if x >= width {
			break
		}
	}
	return dst
}

// PointAt returns the wave point at horizontal position x, with the same pointer
// displacement Trace applies.
func PointAt(m Motion, line Line, x, t, height float64, pointer *f64.Vec2) f64.Vec2 {
	y := Y(m, line, x, t, height)
	if pointer != nil {
		d := math.Hypot(x-pointer[0], y-pointer[1])
		y += PointerDisplacement(d, t)
	}
	return f64.Vec2{x, y}
}
