// Package renderer draws the animated background: a radial backdrop, layered sinusoidal
// line strips, ambient particles and a pulsing centre glow.
//
// A Renderer schedules itself one frame at a time through a Scheduler. Each frame runs to
// completion before the next is requested, and Stop cancels the pending frame so that no
// callback fires afterwards. A Renderer is driven from a single goroutine: the scheduler's
// callbacks and the pointer handlers must not run concurrently.
package renderer

import (
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/iburimskiy/wavebg/internal/config"
	"github.com/iburimskiy/wavebg/internal/frame"
	"github.com/iburimskiy/wavebg/internal/palette"
	"github.com/iburimskiy/wavebg/internal/shared"
	"github.com/iburimskiy/wavebg/internal/surface"
	"github.com/iburimskiy/wavebg/internal/wave"
	"golang.org/x/image/math/f64"
)

// Scheduler runs a callback before the next repaint. *frame.Queue implements it.
type Scheduler interface {
	Request(fn frame.Func) frame.Handle
	Cancel(h frame.Handle)
}

// LevelSource reports a 0..1 level, such as the loudness of the track being played.
type LevelSource interface {
	Level() float64
}

// State is the lifecycle state of a Renderer.
type State int

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

// WithLevelSource makes the centre glow swell with src's level.
func WithLevelSource(src LevelSource) Option {
	return func(r *Renderer) { r.level = src }
}

// Renderer owns one animation session at a time.
type Renderer struct {
	sched  Scheduler
	logger *log.Logger
	level  LevelSource
	tick   frame.Func

	state   State
	surface surface.Surface
	cfg     config.RenderConfig
	grad    palette.Gradient

	// sessionLog is logger tagged with the current session id.
	sessionLog *log.Logger

	elapsed float64
	pointer f64.Vec2
	handle  frame.Handle
	frames  uint64

	pts []f64.Vec2
}

// New returns a stopped renderer that schedules frames on sched.
func New(sched Scheduler, opts ...Option) *Renderer {
	r := &Renderer{
		sched:   sched,
		logger:  shared.DiscardLogger(),
		pointer: wave.SentinelPointer,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.sessionLog = r.logger
	r.tick = r.frame
	return r
}

// Start begins a session drawing to s with cfg. It fails with shared.ErrAlreadyRunning
// if a session is in progress; call Stop first.
func (r *Renderer) Start(s surface.Surface, cfg config.RenderConfig) error {
	if s == nil {
		return shared.ErrNoSurface
	}
	if r.state == Running {
		return shared.ErrAlreadyRunning
	}

	r.state = Running
	r.surface = s
	r.cfg = cfg
	r.grad = palette.New(cfg.ColorStops)
	r.elapsed = 0
	r.frames = 0
	r.pointer = wave.SentinelPointer
	r.sessionLog = shared.WithLogger(r.logger, "session", shared.GenerateID())
	r.handle = r.sched.Request(r.tick)

	r.sessionLog.Debug("renderer started", "waves", len(cfg.WaveKinds), "stops", r.grad.Len(), "pointer", cfg.PointerInteraction)
	return nil
}

// Stop cancels the pending frame and ends the session. It is a no-op when stopped.
func (r *Renderer) Stop() {
	if r.handle != 0 {
		r.sched.Cancel(r.handle)
		r.handle = 0
	}
	if r.state == Running {
		r.sessionLog.Debug("renderer stopped", "frames", r.frames)
	}
	r.state = Stopped
	r.surface = nil
}

// State returns the lifecycle state.
func (r *Renderer) State() State { return r.state }

// Running reports whether a session is in progress.
func (r *Renderer) Running() bool { return r.state == Running }

// Frames returns the number of frames drawn in the current or last session.
func (r *Renderer) Frames() uint64 { return r.frames }

// Elapsed returns the animation time of the last frame, in seconds.
func (r *Renderer) Elapsed() float64 { return r.elapsed }

// Pointer returns the pointer position used by the next frame.
func (r *Renderer) Pointer() f64.Vec2 { return r.pointer }

// OnPointerMove records the pointer position in surface CSS pixels.
// It does nothing unless the session enables pointer interaction.
func (r *Renderer) OnPointerMove(x, y float64) {
	if !r.cfg.PointerInteraction {
		return
	}
	r.pointer = f64.Vec2{x, y}
}

// OnPointerLeave forgets the pointer.
func (r *Renderer) OnPointerLeave() {
	r.pointer = wave.SentinelPointer
}

// OnResize sizes the backing store to the display size times the device pixel ratio and
// scales drawing so coordinates stay in CSS pixels.
func (r *Renderer) OnResize() {
	if r.surface == nil {
		return
	}
	w, h := r.surface.DisplaySize()
	dpr := r.surface.DevicePixelRatio()
	if dpr <= 0 {
		dpr = 1
	}
	r.surface.SetBackingSize(int(math.Round(w*dpr)), int(math.Round(h*dpr)))
	r.surface.SetScale(dpr)
}

func (r *Renderer) frame(ts time.Duration) {
	r.handle = 0
	if r.state != Running {
		return
	}
	if r.surface == nil || !r.surface.Attached() {
		r.sessionLog.Debug("surface detached, stopping", "frames", r.frames)
		r.state = Stopped
		r.surface = nil
		return
	}

	r.draw(ts)
	r.frames++
	r.handle = r.sched.Request(r.tick)
}

// pointerFor returns the pointer to displace lines with, or nil when it has no effect.
func (r *Renderer) pointerFor() *f64.Vec2 {
	if !r.cfg.PointerInteraction || r.pointer == wave.SentinelPointer {
		return nil
	}
	p := r.pointer
	return &p
}
