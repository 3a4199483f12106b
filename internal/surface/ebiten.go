package surface

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Ebiten draws into an offscreen ebiten image sized to the backing store.
type Ebiten struct {
	base
	backing
	img *ebiten.Image
}

// NewEbiten returns an attached surface with no backing image yet.
func NewEbiten(displayW, displayH, dpr float64) *Ebiten {
	e := &Ebiten{backing: backing{attached: true}}
	e.base.p = e
	e.SetDisplay(displayW, displayH, dpr)
	return e
}

// Image returns the backing image, or nil before the first resize.
func (e *Ebiten) Image() *ebiten.Image { return e.img }

// SetBackingSize reallocates the backing image when the size changes.
func (e *Ebiten) SetBackingSize(w, h int) {
	w, h = max(w, 1), max(h, 1)
	if e.img != nil {
		if b := e.img.Bounds(); b.Dx() == w && b.Dy() == h {
			return
		}
		e.img.Deallocate()
	}
	e.img = ebiten.NewImage(w, h)
}

func (e *Ebiten) BackingSize() (int, int) {
	if e.img == nil {
		return 0, 0
	}
	b := e.img.Bounds()
	return b.Dx(), b.Dy()
}

// Detach releases the backing image.
func (e *Ebiten) Detach() {
	e.backing.Detach()
	if e.img != nil {
		e.img.Deallocate()
		e.img = nil
	}
}

func (e *Ebiten) clear() {
	if e.img != nil {
		e.img.Clear()
	}
}

func (e *Ebiten) fillRect(x, y, w, h float64, c color.NRGBA) {
	if e.img == nil {
		return
	}
	vector.DrawFilledRect(e.img, float32(x), float32(y), float32(w), float32(h), c, true)
}

func (e *Ebiten) fillCircle(cx, cy, r float64, c color.NRGBA) {
	if e.img == nil || r <= 0 {
		return
	}
	vector.DrawFilledCircle(e.img, float32(cx), float32(cy), float32(r), c, true)
}

func (e *Ebiten) strokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	if e.img == nil {
		return
	}
	vector.StrokeLine(e.img, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c, true)
}
