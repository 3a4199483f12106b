package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/iburimskiy/wavebg/internal/audio"
	"github.com/iburimskiy/wavebg/internal/config"
	"github.com/iburimskiy/wavebg/internal/game"
	"github.com/iburimskiy/wavebg/internal/headless"
	"github.com/iburimskiy/wavebg/internal/palette"
	"github.com/iburimskiy/wavebg/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/image/math/f64"
)

// Runner holds the dependencies shared by the CLI commands.
type Runner struct {
	logger *log.Logger
	output io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner, filling in defaults for missing options.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	return &Runner{logger: opts.Logger, output: opts.Output}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		runCommand, snapshotCommand, themesCommand, initCommand,
	} {
		commands = append(commands, fn(r))
	}
	return commands
}

func runCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Open a window and animate the background",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "audio", Usage: "Audio file to play behind the animation"},
			&cli.BoolFlag{Name: "pick-audio", Usage: "Choose the audio file with a dialog"},
			&cli.BoolFlag{Name: "hud", Usage: "Show the status overlay"},
		},
		Action: r.Run,
	}
}

func snapshotCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "snapshot",
		Usage: "Render frames to PNG files without a window",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "frames", Aliases: []string{"n"}, Usage: "Number of frames"},
			&cli.FloatFlag{Name: "fps", Usage: "Frames per second of animation time"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Output directory"},
			&cli.IntFlag{Name: "width", Usage: "Surface width in CSS pixels"},
			&cli.IntFlag{Name: "height", Usage: "Surface height in CSS pixels"},
			&cli.FloatFlag{Name: "dpr", Usage: "Device pixel ratio"},
			&cli.StringFlag{Name: "pointer", Usage: "Hold the pointer at x,y"},
			&cli.BoolFlag{Name: "realtime", Usage: "Pace frames in wall-clock time"},
		},
		Action: r.Snapshot,
	}
}

func themesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "themes",
		Usage:  "List available themes",
		Action: r.Themes,
	}
}

func initCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write an example config.toml",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Usage: "Where to write the file", Value: "config.toml"},
		},
		Action: r.Init,
	}
}

// loadConfig reads the --config file, or the defaults when the file does not exist
// and the flag was not given explicitly.
func (r *Runner) loadConfig(cmd *cli.Command) (*config.Config, error) {
	path := cmd.String("config")
	cfg := config.DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else if cmd.IsSet("config") {
		return nil, fmt.Errorf("%w: %s", shared.ErrMissingConfig, path)
	}

	level := cfg.Log.Level
	if cmd.IsSet("log-level") {
		level = cmd.String("log-level")
	}
	if err := shared.SetLogLevel(r.logger, level); err != nil {
		return nil, fmt.Errorf("%w: log level: %v", shared.ErrInvalidFlag, err)
	}
	return cfg, nil
}

// Run opens the preview window.
func (r *Runner) Run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}
	rc, err := cfg.ResolveRender(cmd.String("theme"))
	if err != nil {
		return err
	}

	audioPath := cfg.Audio.Path
	if cmd.IsSet("audio") {
		audioPath = cmd.String("audio")
	}
	if cmd.Bool("pick-audio") {
		picked, err := audio.PickFile()
		if err != nil {
			return fmt.Errorf("failed to pick audio file: %w", err)
		}
		if picked != "" {
			audioPath = picked
		}
	}

	window := cfg.Window
	if cmd.IsSet("hud") {
		window.HUD = cmd.Bool("hud")
	}

	g, err := game.New(game.Options{
		Window:    window,
		Render:    rc,
		AudioPath: audioPath,
		LevelGlow: cfg.Audio.LevelGlow,
		Logger:    r.logger,
	})
	if err != nil {
		return err
	}
	r.logger.Info("opening window", "size", fmt.Sprintf("%dx%d", window.Width, window.Height))
	return game.Run(g)
}

// Snapshot renders PNG frames.
func (r *Runner) Snapshot(ctx context.Context, cmd *cli.Command) error {
	cfg, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}
	rc, err := cfg.ResolveRender(cmd.String("theme"))
	if err != nil {
		return err
	}

	opts := headless.FromConfig(cfg.Headless)
	opts.Logger = r.logger
	if cmd.IsSet("frames") {
		opts.Frames = int(cmd.Int("frames"))
	}
	if cmd.IsSet("fps") {
		opts.FPS = cmd.Float("fps")
	}
	if cmd.IsSet("out") {
		opts.OutDir = cmd.String("out")
	}
	if cmd.IsSet("width") {
		opts.Width = int(cmd.Int("width"))
	}
	if cmd.IsSet("height") {
		opts.Height = int(cmd.Int("height"))
	}
	if cmd.IsSet("dpr") {
		opts.DPR = cmd.Float("dpr")
	}
	if cmd.IsSet("realtime") {
		opts.Realtime = cmd.Bool("realtime")
	}
	if s := cmd.String("pointer"); s != "" {
		p, err := parsePointer(s)
		if err != nil {
			return err
		}
		opts.Pointer = &p
	}

	n, err := headless.Render(ctx, rc, opts)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	r.logger.Info("snapshot complete", "frames", n, "out", opts.OutDir)
	fmt.Fprintf(r.output, "wrote %d frames to %s\n", n, opts.OutDir)
	return nil
}

// Themes lists the built-in themes and those from [render].themes_path.
func (r *Runner) Themes(ctx context.Context, cmd *cli.Command) error {
	cfg, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}
	themes, err := cfg.Themes()
	if err != nil {
		return err
	}
	return writeThemes(r.output, themes)
}

// Init writes the example configuration.
func (r *Runner) Init(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")
	if err := config.CreateConfigFile(path); err != nil {
		return err
	}
	r.logger.Info("created config file", "path", path)
	return nil
}

func writeThemes(w io.Writer, themes config.Themes) error {
	for _, name := range themes.Names() {
		t := themes[name]
		_, err := fmt.Fprintf(w, "%-10s %s  waves=%s speed=%.2f pointer=%t\n",
			name, palette.Swatch(t.ColorStops), strings.Join(t.WaveKinds, ","), t.Speed, t.PointerInteraction)
		if err != nil {
			return err
		}
	}
	return nil
}

// parsePointer parses "x,y".
func parsePointer(s string) (f64.Vec2, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return f64.Vec2{}, fmt.Errorf("%w: pointer must be x,y, got %q", shared.ErrInvalidFlag, s)
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errX != nil || errY != nil {
		return f64.Vec2{}, fmt.Errorf("%w: pointer must be x,y, got %q", shared.ErrInvalidFlag, s)
	}
	return f64.Vec2{x, y}, nil
}
