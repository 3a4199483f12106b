// Package palette resolves colour stops into a piecewise-linear gradient.
//
// Colour values are hex strings ("#rrggbb" or "#rgb"). A stop that fails to parse is
// replaced by [DefaultColor]; parsing never fails the caller.
package palette

import (
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultColor is used for empty gradients and for stops that do not parse.
var DefaultColor = color.NRGBA{R: 0x8b, G: 0x5c, B: 0xf6, A: 0xff}

var defaultColorful = colorful.Color{
	R: float64(DefaultColor.R) / 255,
	G: float64(DefaultColor.G) / 255,
	B: float64(DefaultColor.B) / 255,
}

// ParseHex parses a hex colour. The leading '#' is optional.
func ParseHex(s string) (color.NRGBA, bool) {
	c, ok := parse(s)
	if !ok {
		return DefaultColor, false
	}
	return toNRGBA(c), true
}

func parse(s string) (colorful.Color, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return colorful.Color{}, false
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return colorful.Color{}, false
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

// Gradient is an ordered list of colour stops, immutable once built.
type Gradient struct {
	stops []colorful.Color
}

// New builds a gradient from hex stops.
func New(stops []string) Gradient {
	g := Gradient{stops: make([]colorful.Color, 0, len(stops))}
	for _, s := range stops {
		c, ok := parse(s)
		if !ok {
			c = defaultColorful
		}
		g.stops = append(g.stops, c)
	}
	return g
}

// Len returns the number of stops.
func (g Gradient) Len() int { return len(g.stops) }

// At returns the colour at progress p in [0,1]. p is clamped.
func (g Gradient) At(p float64) color.NRGBA {
	switch len(g.stops) {
	case 0:
		return DefaultColor
	case 1:
		return toNRGBA(g.stops[0])
	}
	if math.IsNaN(p) {
		p = 0
	}
	p = math.Max(0, math.Min(1, p))

	scaled := p * float64(len(g.stops)-1)
	idx := int(math.Floor(scaled))
	if idx >= len(g.stops)-1 {
		return toNRGBA(g.stops[len(g.stops)-1])
	}
	frac := scaled - float64(idx)
	return toNRGBA(g.stops[idx].BlendRgb(g.stops[idx+1], frac))
}

// Brighten multiplies the RGB channels by factor, saturating at 255. Alpha is kept.
func Brighten(c color.NRGBA, factor float64) color.NRGBA {
	if factor < 0 {
		factor = 0
	}
	return color.NRGBA{
		R: scaleChannel(c.R, factor),
		G: scaleChannel(c.G, factor),
		B: scaleChannel(c.B, factor),
		A: c.A,
	}
}

// WithAlpha replaces the alpha channel with a in [0,1].
func WithAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(math.Round(clamp01(a) * 255))
	return c
}

func scaleChannel(v uint8, factor float64) uint8 {
	f := math.Round(float64(v) * factor)
	if f > 255 {
		return 255
	}
	return uint8(f)
}

func toNRGBA(c colorful.Color) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
