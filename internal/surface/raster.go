package surface

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// Raster draws into an in-memory RGBA image using an anti-aliasing scanline rasterizer.
type Raster struct {
	base
	backing
	img *image.RGBA
	z   vector.Rasterizer
}

// NewRaster returns an attached surface with no backing image yet.
func NewRaster(displayW, displayH, dpr float64) *Raster {
	r := &Raster{backing: backing{attached: true}}
	r.base.p = r
	r.SetDisplay(displayW, displayH, dpr)
	return r
}

// Image returns the backing image, or nil before the first resize.
func (r *Raster) Image() *image.RGBA { return r.img }

func (r *Raster) SetBackingSize(w, h int) {
	w, h = max(w, 1), max(h, 1)
	if r.img != nil {
		if b := r.img.Bounds(); b.Dx() == w && b.Dy() == h {
			return
		}
	}
	r.img = image.NewRGBA(image.Rect(0, 0, w, h))
}

func (r *Raster) BackingSize() (int, int) {
	if r.img == nil {
		return 0, 0
	}
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

func (r *Raster) clear() {
	if r.img != nil {
		draw.Draw(r.img, r.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
	}
}

func (r *Raster) fillRect(x, y, w, h float64, c color.NRGBA) {
	r.fillPolygon(c, x, y, x+w, y, x+w, y+h, x, y+h)
}

func (r *Raster) fillCircle(cx, cy, radius float64, c color.NRGBA) {
	if radius <= 0 {
		return
	}
	n := int(math.Max(12, math.Min(64, radius*2)))
	xy := make([]float64, 0, 2*n)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		xy = append(xy, cx+radius*math.Cos(a), cy+radius*math.Sin(a))
	}
	r.fillPolygon(c, xy...)
}

func (r *Raster) strokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 || width <= 0 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2
	r.fillPolygon(c, x0+nx, y0+ny, x1+nx, y1+ny, x1-nx, y1-ny, x0-nx, y0-ny)
}

// fillPolygon fills the closed polygon given as x,y pairs. The rasterizer clips to the
// image, so off-image vertices are passed through as is.
func (r *Raster) fillPolygon(c color.NRGBA, xy ...float64) {
	if r.img == nil || len(xy) < 6 {
		return
	}
	b := r.img.Bounds()
	pt := func(i int) (float32, float32) {
		return float32(xy[i]), float32(xy[i+1])
	}

	r.z.Reset(b.Dx(), b.Dy())
	r.z.DrawOp = draw.Over
	r.z.MoveTo(pt(0))
	for i := 2; i < len(xy); i += 2 {
		r.z.LineTo(pt(i))
	}
	r.z.ClosePath()
	r.z.Draw(r.img, b, image.NewUniform(c), image.Point{})
}
