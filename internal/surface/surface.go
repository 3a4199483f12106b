// Package surface defines the drawing target of the renderer and two backends for it:
// an ebiten offscreen image for the window host and an in-memory RGBA raster for
// headless rendering.
//
// Coordinates passed to Canvas methods are CSS pixels. SetScale maps them onto the
// backing store, which is sized in device pixels.
package surface

import (
	"image/color"
	"math"

	"golang.org/x/image/math/f64"
)

// Canvas is the immediate-mode 2D drawing context.
type Canvas interface {
	Clear()
	FillRect(x, y, w, h float64, c color.NRGBA)
	// FillRadial fills a disc whose colour runs from inner at the centre to outer at radius.
	FillRadial(cx, cy, radius float64, inner, outer color.NRGBA)
	// StrokePolyline strokes pts with round caps.
	StrokePolyline(pts []f64.Vec2, width float64, c color.NRGBA)
	FillCircle(cx, cy, r float64, c color.NRGBA)
	// SetShadow makes following strokes and fills cast a soft glow until ClearShadow.
	SetShadow(c color.NRGBA, blur float64)
	ClearShadow()
}

// Surface is a Canvas with a display size, a device pixel ratio and a resizable backing store.
type Surface interface {
	Canvas
	// Attached reports whether the surface can still be drawn to.
	Attached() bool
	DisplaySize() (w, h float64)
	DevicePixelRatio() float64
	SetBackingSize(w, h int)
	BackingSize() (w, h int)
	SetScale(s float64)
}

// primitives are the device-space operations a backend provides to base.
type primitives interface {
	clear()
	fillRect(x, y, w, h float64, c color.NRGBA)
	fillCircle(cx, cy, r float64, c color.NRGBA)
	strokeLine(x0, y0, x1, y1, width float64, c color.NRGBA)
}

const (
	radialSteps  = 32
	shadowPasses = 3
)

// base implements Canvas on top of a backend's primitives.
type base struct {
	p      primitives
	scale  float64
	shadow *shadow
}

type shadow struct {
	c    color.NRGBA
	blur float64
}

func (b *base) s() float64 {
	if b.scale <= 0 {
		return 1
	}
	return b.scale
}

// SetScale sets the CSS-to-device pixel factor.
func (b *base) SetScale(s float64) { b.scale = s }

func (b *base) Clear() { b.p.clear() }

func (b *base) FillRect(x, y, w, h float64, c color.NRGBA) {
	s := b.s()
	b.p.fillRect(x*s, y*s, w*s, h*s, c)
}

func (b *base) FillCircle(cx, cy, r float64, c color.NRGBA) {
	s := b.s()
	if sh := b.shadow; sh != nil {
		for i := shadowPasses; i >= 1; i-- {
			spread := sh.blur * float64(i) / shadowPasses
			b.p.fillCircle(cx*s, cy*s, (r+spread)*s, shadowLayer(sh.c))
		}
	}
	b.p.fillCircle(cx*s, cy*s, r*s, c)
}

func (b *base) StrokePolyline(pts []f64.Vec2, width float64, c color.NRGBA) {
	if len(pts) == 0 {
		return
	}
	if sh := b.shadow; sh != nil {
		for i := shadowPasses; i >= 1; i-- {
			spread := sh.blur * float64(i) / shadowPasses
			b.polyline(pts, width+2*spread, shadowLayer(sh.c))
		}
	}
	b.polyline(pts, width, c)
}

func (b *base) polyline(pts []f64.Vec2, width float64, c color.NRGBA) {
	s := b.s()
	w := width * s
	for i := 1; i < len(pts); i++ {
		b.p.strokeLine(pts[i-1][0]*s, pts[i-1][1]*s, pts[i][0]*s, pts[i][1]*s, w, c)
	}
	first, last := pts[0], pts[len(pts)-1]
	b.p.fillCircle(first[0]*s, first[1]*s, w/2, c)
	if len(pts) > 1 {
		b.p.fillCircle(last[0]*s, last[1]*s, w/2, c)
	}
}

func (b *base) FillRadial(cx, cy, radius float64, inner, outer color.NRGBA) {
	if radius <= 0 {
		return
	}
	s := b.s()
	// Rings are painted outside-in. Each ring's alpha is chosen so that, composited over
	// the rings beneath it, the coverage matches the interpolated target alpha.
	acc := 0.0
	for k := 0; k < radialSteps; k++ {
		t := float64(k) / float64(radialSteps-1)
		c := lerpColor(outer, inner, t)
		target := float64(c.A) / 255
		a := target
		if acc < 1 {
			a = 1 - (1-target)/(1-acc)
		}
		acc = target
		if a <= 0 {
			continue
		}
		c.A = uint8(math.Round(math.Min(a, 1) * 255))
		r := radius * (1 - float64(k)/float64(radialSteps))
		b.p.fillCircle(cx*s, cy*s, r*s, c)
	}
}

func (b *base) SetShadow(c color.NRGBA, blur float64) {
	if blur <= 0 {
		b.shadow = nil
		return
	}
	b.shadow = &shadow{c: c, blur: blur}
}

func (b *base) ClearShadow() { b.shadow = nil }

func shadowLayer(c color.NRGBA) color.NRGBA {
	c.A /= shadowPasses
	return c
}

func lerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	l := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.NRGBA{R: l(a.R, b.R), G: l(a.G, b.G), B: l(a.B, b.B), A: l(a.A, b.A)}
}

// backing tracks the display metrics shared by both backends.
type backing struct {
	displayW, displayH float64
	dpr                float64
	attached           bool
}

// SetDisplay records the displayed size in CSS pixels and the device pixel ratio.
func (k *backing) SetDisplay(w, h, dpr float64) {
	k.displayW, k.displayH = w, h
	k.dpr = dpr
}

// Detach marks the surface as gone. Renderers drawing to it stop at their next frame.
func (k *backing) Detach() { k.attached = false }

func (k *backing) Attached() bool { return k.attached }

func (k *backing) DisplaySize() (float64, float64) { return k.displayW, k.displayH }

func (k *backing) DevicePixelRatio() float64 {
	if k.dpr <= 0 {
		return 1
	}
	return k.dpr
}
