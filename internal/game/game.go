// Package game hosts the background renderer in an ebiten window.
//
// ebiten's Draw is the repaint signal: every Draw ticks the frame queue once, so the
// renderer draws at most one frame per repaint, and the result is copied to the screen.
package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/iburimskiy/wavebg/internal/audio"
	"github.com/iburimskiy/wavebg/internal/config"
	"github.com/iburimskiy/wavebg/internal/frame"
	"github.com/iburimskiy/wavebg/internal/renderer"
	"github.com/iburimskiy/wavebg/internal/shared"
	"github.com/iburimskiy/wavebg/internal/surface"
)

// Options configures a Game.
type Options struct {
	Window    config.WindowConfig
	Render    config.RenderConfig
	AudioPath string
	LevelGlow bool
	Logger    *log.Logger
}

// Game implements ebiten.Game.
type Game struct {
	window config.WindowConfig
	logger *log.Logger

	queue    *frame.Queue
	surface  *surface.Ebiten
	renderer *renderer.Renderer
	player   *audio.Player

	start         time.Time
	pointerInside bool
	hud           bool
	lastErr       error
}

// New builds the game and starts the renderer.
func New(opts Options) (*Game, error) {
	if opts.Logger == nil {
		opts.Logger = shared.DiscardLogger()
	}
	opts.Window = opts.Window.WithDefaults()

	g := &Game{
		window: opts.Window,
		logger: opts.Logger,
		queue:  frame.NewQueue(),
		player: audio.NewPlayer(opts.Logger),
		hud:    opts.Window.HUD,
		start:  time.Now(),
	}

	rendererOpts := []renderer.Option{renderer.WithLogger(opts.Logger)}
	if opts.LevelGlow {
		rendererOpts = append(rendererOpts, renderer.WithLevelSource(g.player))
	}
	g.renderer = renderer.New(g.queue, rendererOpts...)
	// Layout reports the real size and scale factor before the first frame.
	g.surface = surface.NewEbiten(float64(opts.Window.Width), float64(opts.Window.Height), 1)

	if err := g.renderer.Start(g.surface, opts.Render); err != nil {
		return nil, fmt.Errorf("failed to start renderer: %w", err)
	}

	if opts.AudioPath != "" {
		if err := g.player.Load(opts.AudioPath); err != nil {
			g.logger.Error("failed to load audio", "path", opts.AudioPath, "err", err)
			g.lastErr = err
		}
	}
	return g, nil
}

func (g *Game) Update() error {
	// Pointer tracking, in CSS pixels
	dpr := g.surface.DevicePixelRatio()
	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx)/dpr, float64(cy)/dpr
	w, h := g.surface.DisplaySize()

	if ebiten.IsFocused() && inside(x, y, w, h) {
		g.renderer.OnPointerMove(x, y)
		g.pointerInside = true
	} else if g.pointerInside {
		g.renderer.OnPointerLeave()
		g.pointerInside = false
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.player.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.hud = !g.hud
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		if err := g.openAudioDialog(); err != nil {
			g.lastErr = err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.Close()
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.queue.Tick(time.Since(g.start))

	if img := g.surface.Image(); img != nil {
		screen.DrawImage(img, nil)
	}

	if g.hud {
		g.drawHUD(screen)
	}
}

// Layout sizes the screen in device pixels so the backing image maps 1:1 onto it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	dpr := deviceScale()
	g.surface.SetDisplay(float64(outsideWidth), float64(outsideHeight), dpr)
	return int(float64(outsideWidth) * dpr), int(float64(outsideHeight) * dpr)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	status := fmt.Sprintf("FPS %.0f  frames %d", ebiten.ActualFPS(), g.renderer.Frames())
	if g.player.Loaded() {
		status += "  " + trackStatus(g.player)
	}
	status += "  | Space: pause  O: open audio  H: hud  Esc/Q: quit"
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}

func (g *Game) openAudioDialog() error {
	filename, err := audio.PickFile()
	if err != nil || filename == "" {
		return err
	}
	g.logger.Info("selected audio file", "file", filename)
	return g.player.Load(filename)
}

// Close stops the renderer before its surface goes away, then stops audio.
func (g *Game) Close() {
	g.renderer.Stop()
	g.surface.Detach()
	if err := g.player.Close(); err != nil {
		g.logger.Warn("failed to close audio", "err", err)
	}
}

// Run opens the window and blocks until it is closed.
func Run(g *Game) error {
	ebiten.SetWindowSize(g.window.Width, g.window.Height)
	ebiten.SetWindowTitle(g.window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err := ebiten.RunGame(g)
	g.Close()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func deviceScale() float64 {
	if m := ebiten.Monitor(); m != nil {
		if s := m.DeviceScaleFactor(); s > 0 {
			return s
		}
	}
	return 1
}
