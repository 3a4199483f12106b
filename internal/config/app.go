package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/iburimskiy/wavebg/internal/shared"
)

//go:embed config.example.toml
var exampleConf []byte

// CustomTheme is the theme name that selects [render.custom].
const CustomTheme = "custom"

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Window   WindowConfig   `toml:"window"`
	Render   RenderSection  `toml:"render"`
	Audio    AudioConfig    `toml:"audio"`
	Headless HeadlessConfig `toml:"headless"`
	Log      LogConfig      `toml:"log"`
}

// WindowConfig contains settings for the window host.
type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	HUD    bool   `toml:"hud"`
}

// RenderSection selects the render configuration.
type RenderSection struct {
	Theme      string       `toml:"theme"`
	ThemesPath string       `toml:"themes_path"`
	Custom     RenderConfig `toml:"custom"`
}

// WithDefaults fills a zero width, height or title from WindowWidth, WindowHeight and WindowTitle.
func (w WindowConfig) WithDefaults() WindowConfig {
	if w.Width == 0 {
		w.Width = WindowWidth
	}
	if w.Height == 0 {
		w.Height = WindowHeight
	}
	if w.Title == "" {
		w.Title = WindowTitle
	}
	return w
}

// AudioConfig contains settings for the optional backing track.
type AudioConfig struct {
	Path      string `toml:"path"`
	LevelGlow bool   `toml:"level_glow"`
}

// HeadlessConfig contains settings for PNG frame rendering.
type HeadlessConfig struct {
	Width    int     `toml:"width"`
	Height   int     `toml:"height"`
	DPR      float64 `toml:"dpr"`
	FPS      float64 `toml:"fps"`
	Frames   int     `toml:"frames"`
	Out      string  `toml:"out"`
	Realtime bool    `toml:"realtime"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// LoadConfig reads a TOML configuration file. Values missing from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	config.Window = config.Window.WithDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// DefaultConfig returns a Config loaded from the embedded example config.
func DefaultConfig() *Config {
	config := &Config{Render: RenderSection{Custom: DefaultRenderConfig()}}
	if err := toml.Unmarshal(exampleConf, config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	config.Window = config.Window.WithDefaults()
	return config
}

// CreateConfigFile writes the embedded example config to path. It refuses to overwrite.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the window, headless and custom render settings.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size must be positive, got %dx%d", shared.ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Headless.Width <= 0 || c.Headless.Height <= 0 {
		return fmt.Errorf("%w: headless size must be positive, got %dx%d", shared.ErrInvalidConfig, c.Headless.Width, c.Headless.Height)
	}
	if c.Headless.DPR < 0 || c.Headless.FPS < 0 {
		return fmt.Errorf("%w: headless dpr and fps must not be negative", shared.ErrInvalidConfig)
	}
	if err := c.Render.Custom.Validate(); err != nil {
		return fmt.Errorf("render.custom: %w", err)
	}
	return nil
}

// Themes returns the built-in themes plus those from Render.ThemesPath, if set.
func (c *Config) Themes() (Themes, error) {
	themes := BuiltinThemes()
	if c.Render.ThemesPath == "" {
		return themes, nil
	}
	extra, err := LoadThemes(c.Render.ThemesPath)
	if err != nil {
		return nil, err
	}
	return themes.Merge(extra), nil
}

// ResolveRender returns the render configuration for theme, falling back to Render.Theme
// when theme is empty.
func (c *Config) ResolveRender(theme string) (RenderConfig, error) {
	if theme == "" {
		theme = c.Render.Theme
	}
	if theme == CustomTheme {
		return c.Render.Custom, nil
	}
	themes, err := c.Themes()
	if err != nil {
		return RenderConfig{}, err
	}
	return themes.Get(theme)
}
