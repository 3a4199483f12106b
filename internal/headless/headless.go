// Package headless renders frames without a window, writing each one to a PNG file.
package headless

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/iburimskiy/wavebg/internal/config"
	"github.com/iburimskiy/wavebg/internal/frame"
	"github.com/iburimskiy/wavebg/internal/renderer"
	"github.com/iburimskiy/wavebg/internal/shared"
	"github.com/iburimskiy/wavebg/internal/surface"
	"golang.org/x/image/math/f64"
)

// Options configures a headless run.
type Options struct {
	Width, Height int
	DPR           float64
	FPS           float64
	Frames        int
	OutDir        string
	Realtime      bool
	// Pointer, when set, is held at this CSS-pixel position for the whole run.
	Pointer *f64.Vec2
	Logger  *log.Logger
}

// FromConfig fills Options from the [headless] section.
func FromConfig(c config.HeadlessConfig) Options {
	return Options{
		Width:    c.Width,
		Height:   c.Height,
		DPR:      c.DPR,
		FPS:      c.FPS,
		Frames:   c.Frames,
		OutDir:   c.Out,
		Realtime: c.Realtime,
	}
}

// FrameName is the file name of frame n.
func FrameName(n int) string {
	return fmt.Sprintf("frame_%05d.png", n)
}

// Render draws opts.Frames frames of cfg and writes them to opts.OutDir.
// It returns the number of frames written.
func Render(ctx context.Context, cfg config.RenderConfig, opts Options) (int, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return 0, fmt.Errorf("%w: size must be positive, got %dx%d", shared.ErrInvalidFlag, opts.Width, opts.Height)
	}
	if opts.Frames <= 0 {
		return 0, fmt.Errorf("%w: frames must be positive, got %d", shared.ErrInvalidFlag, opts.Frames)
	}
	if opts.Logger == nil {
		opts.Logger = shared.DiscardLogger()
	}
	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	queue := frame.NewQueue()
	surf := surface.NewRaster(float64(opts.Width), float64(opts.Height), opts.DPR)
	r := renderer.New(queue, renderer.WithLogger(opts.Logger))
	if err := r.Start(surf, cfg); err != nil {
		return 0, err
	}
	defer r.Stop()

	if opts.Pointer != nil {
		r.OnPointerMove(opts.Pointer[0], opts.Pointer[1])
	}

	pacer := &frame.Pacer{Queue: queue, FPS: opts.FPS, Realtime: opts.Realtime}
	written := 0
	_, err := pacer.Run(ctx, opts.Frames, func(n int, ts time.Duration) error {
		path := filepath.Join(opts.OutDir, FrameName(n))
		if err := writePNG(path, surf); err != nil {
			return err
		}
		written++
		opts.Logger.Debug("wrote frame", "n", n, "ts", ts, "path", path)
		return nil
	})
	if err != nil {
		return written, err
	}
	return written, nil
}

func writePNG(path string, surf *surface.Raster) error {
	img := surf.Image()
	if img == nil {
		return fmt.Errorf("%w: nothing drawn", shared.ErrNoSurface)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
