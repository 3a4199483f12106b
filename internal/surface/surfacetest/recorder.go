// Package surfacetest provides a recording surface for renderer tests.
package surfacetest

import (
	"image/color"

	"golang.org/x/image/math/f64"
)

// Op is one recorded draw call.
type Op struct {
	Name     string
	Points   []f64.Vec2
	X, Y, R  float64
	Width    float64
	Color    color.NRGBA
	Outer    color.NRGBA
	Shadowed bool
}

// Recorder records every call made to it. It satisfies surface.Surface.
type Recorder struct {
	Ops []Op

	Width, Height float64
	DPR           float64
	Detached      bool

	BackingW, BackingH int
	Scale              float64
	Shadow             *color.NRGBA
	Resizes            int
}

// NewRecorder returns an attached recorder with the given display size and pixel ratio.
func NewRecorder(w, h, dpr float64) *Recorder {
	return &Recorder{Width: w, Height: h, DPR: dpr}
}

// Reset forgets recorded ops.
func (r *Recorder) Reset() { r.Ops = nil }

// Count returns the number of ops named name.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Name == name {
			n++
		}
	}
	return n
}

// Filter returns the ops named name, in order.
func (r *Recorder) Filter(name string) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Name == name {
			out = append(out, op)
		}
	}
	return out
}

func (r *Recorder) record(op Op) {
	op.Shadowed = r.Shadow != nil
	r.Ops = append(r.Ops, op)
}

func (r *Recorder) Clear() { r.record(Op{Name: "clear"}) }

func (r *Recorder) FillRect(x, y, w, h float64, c color.NRGBA) {
	r.record(Op{Name: "rect", X: x, Y: y, Width: w, R: h, Color: c})
}

func (r *Recorder) FillRadial(cx, cy, radius float64, inner, outer color.NRGBA) {
	r.record(Op{Name: "radial", X: cx, Y: cy, R: radius, Color: inner, Outer: outer})
}

func (r *Recorder) StrokePolyline(pts []f64.Vec2, width float64, c color.NRGBA) {
	cp := make([]f64.Vec2, len(pts))
	copy(cp, pts)
	r.record(Op{Name: "stroke", Points: cp, Width: width, Color: c})
}

func (r *Recorder) FillCircle(cx, cy, radius float64, c color.NRGBA) {
	r.record(Op{Name: "circle", X: cx, Y: cy, R: radius, Color: c})
}

func (r *Recorder) SetShadow(c color.NRGBA, blur float64) {
	r.Shadow = &c
	r.record(Op{Name: "shadow", Color: c, R: blur})
}

func (r *Recorder) ClearShadow() {
	r.Shadow = nil
	r.record(Op{Name: "clear-shadow"})
}

func (r *Recorder) Attached() bool { return !r.Detached }

func (r *Recorder) DisplaySize() (float64, float64) { return r.Width, r.Height }

func (r *Recorder) DevicePixelRatio() float64 { return r.DPR }

func (r *Recorder) SetBackingSize(w, h int) {
	r.BackingW, r.BackingH = w, h
	r.Resizes++
}

func (r *Recorder) BackingSize() (int, int) { return r.BackingW, r.BackingH }

func (r *Recorder) SetScale(s float64) { r.Scale = s }
