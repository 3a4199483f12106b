package renderer

import (
	"image/color"
	"math"
	"time"

	"github.com/iburimskiy/wavebg/internal/palette"
	"github.com/iburimskiy/wavebg/internal/wave"
	"golang.org/x/image/math/f64"
)

var (
	backgroundInner = color.NRGBA{R: 0x1b, G: 0x10, B: 0x35, A: 0xff}
	backgroundOuter = color.NRGBA{R: 0x05, G: 0x03, B: 0x0c, A: 0xff}
)

const (
	// Visualization parameters
	ParticleCount   = 50
	SatelliteCount  = 3
	lineShadowAlpha = 0.5
	lineShadowBlur  = 8.0
	pointShadowBlur = 12.0
	glowPointSpeed  = 0.5
	glowRadiusFrac  = 0.35
	glowPulseSpeed  = 1.5
	levelGlowSwell  = 0.5
)

func (r *Renderer) draw(ts time.Duration) {
	r.OnResize()

	w, h := r.surface.DisplaySize()

	// Clear and paint the backdrop
	r.surface.Clear()
	r.drawBackground(w, h)

	r.elapsed = ts.Seconds() * r.cfg.Speed

	r.drawWaves(w, h)
	r.drawParticles(w, h)
	r.drawGlow(w, h)
}

func (r *Renderer) drawBackground(w, h float64) {
	r.surface.FillRect(0, 0, w, h, backgroundOuter)
	r.surface.FillRadial(w/2, h/2, math.Hypot(w, h)/2, backgroundInner, backgroundOuter)
}

func (r *Renderer) drawWaves(w, h float64) {
	t := r.elapsed
	pointer := r.pointerFor()

	for wi, kind := range r.cfg.WaveKinds {
		count := r.cfg.LineCountAt(wi)
		spacing := r.cfg.LineSpacingAt(wi)
		m := wave.MotionFor(wave.Kind(kind))

		for i := 0; i < count; i++ {
			progress := wave.Progress(i, count)
			c := r.grad.At(progress)
			alpha := wave.LineAlpha(progress) * r.cfg.BaseOpacity
			line := wave.Line{Index: i, Count: count, Spacing: spacing}

			r.pts = wave.Trace(r.pts[:0], m, line, t, w, h, pointer)

			r.surface.SetShadow(palette.WithAlpha(c, alpha*lineShadowAlpha), lineShadowBlur)
			r.surface.StrokePolyline(r.pts, wave.LineWidth(progress), r.lineColor(c, alpha))
			r.surface.ClearShadow()

			// Glowing point riding every other line
			if i%2 == 0 {
				gx := w * (0.5 + 0.5*math.Sin(t*glowPointSpeed+float64(i)*0.9+float64(wi)*1.3))
				p := wave.PointAt(m, line, gx, t, h, pointer)
				r.drawGlowPoint(p, 2+progress*1.5, c, alpha)
			}
		}
	}
}

func (r *Renderer) drawGlowPoint(p f64.Vec2, radius float64, c color.NRGBA, alpha float64) {
	r.surface.SetShadow(palette.WithAlpha(c, 0.8*r.cfg.BaseOpacity), pointShadowBlur)
	r.surface.FillCircle(p[0], p[1], radius, r.lineColor(c, math.Min(1, alpha+0.3)))
	r.surface.ClearShadow()
}

func (r *Renderer) drawParticles(w, h float64) {
	t := r.elapsed

	for k := 0; k < ParticleCount; k++ {
		fk := float64(k)
		x := w * (0.5 + 0.45*math.Sin(t*0.3+fk*1.7))
		y := h * (0.5 + 0.4*math.Cos(t*0.23+fk*2.3))

		c := r.grad.At(0.5 + 0.5*math.Sin(t*0.5+fk*0.4))
		alpha := (0.35 + 0.25*math.Sin(t*1.1+fk)) * r.cfg.BaseOpacity
		radius := 1.2 + float64(k%3)*0.6

		r.surface.FillCircle(x, y, radius, r.lineColor(c, alpha))

		// Satellites orbit at fixed angular offsets
		dist := radius*3 + float64(k%4)
		for j := 0; j < SatelliteCount; j++ {
			angle := t*0.8 + fk + float64(j)*2*math.Pi/SatelliteCount
			r.surface.FillCircle(x+dist*math.Cos(angle), y+dist*math.Sin(angle), radius*0.4, r.lineColor(c, alpha*0.6))
		}
	}
}

func (r *Renderer) drawGlow(w, h float64) {
	t := r.elapsed
	c := r.grad.At(0.5)

	radius := math.Min(w, h) * glowRadiusFrac
	if r.level != nil {
		radius *= 1 + levelGlowSwell*clamp01(r.level.Level())
	}
	alpha := (0.12 + 0.06*math.Sin(t*glowPulseSpeed)) * r.cfg.BaseOpacity

	r.surface.FillRadial(w/2, h/2, radius, palette.WithAlpha(c, alpha), palette.WithAlpha(c, 0))
}

// lineColor applies the brightness multiplier and the given alpha.
func (r *Renderer) lineColor(c color.NRGBA, alpha float64) color.NRGBA {
	return palette.WithAlpha(palette.Brighten(c, r.cfg.Brightness), alpha)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
