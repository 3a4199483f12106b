package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/iburimskiy/wavebg/internal/shared"
	"gopkg.in/yaml.v3"
)

func TestPerWaveAt(t *testing.T) {
	tests := []struct {
		name string
		p    PerWave
		i    int
		def  float64
		want float64
	}{
		{"scalar broadcast", Scalar(5), 3, 9, 5},
		{"list hit", List(1, 2, 3), 1, 9, 2},
		{"list miss", List(1, 2, 3), 3, 9, 9},
		{"negative index", List(1, 2, 3), -1, 9, 9},
		{"single element list is not broadcast", List(4), 2, 9, 9},
		{"zero value", PerWave{}, 0, 9, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.At(tt.i, tt.def); got != tt.want {
				t.Errorf("At(%d, %v) = %v, want %v", tt.i, tt.def, got, tt.want)
			}
		})
	}
}

func TestPerWaveYAML(t *testing.T) {
	var doc struct {
		A PerWave `yaml:"a"`
		B PerWave `yaml:"b"`
	}
	if err := yaml.Unmarshal([]byte("a: 4\nb: [1, 2.5]\n"), &doc); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if !doc.A.IsScalar() || doc.A.At(7, 0) != 4 {
		t.Errorf("a = %+v, want scalar 4", doc.A)
	}
	if doc.B.IsScalar() || doc.B.At(1, 0) != 2.5 || doc.B.At(2, -1) != -1 {
		t.Errorf("b = %+v, want list [1 2.5]", doc.B)
	}

	err := yaml.Unmarshal([]byte("a: {x: 1}\n"), &doc)
	if !errors.Is(err, shared.ErrInvalidConfig) {
		t.Errorf("mapping value error = %v, want ErrInvalidConfig", err)
	}
}

func TestPerWaveTOML(t *testing.T) {
	var doc struct {
		A PerWave `toml:"a"`
		B PerWave `toml:"b"`
	}
	if _, err := toml.Decode("a = 3\nb = [2, 4.5]\n", &doc); err != nil {
		t.Fatalf("toml.Decode() error = %v", err)
	}
	if !doc.A.IsScalar() || doc.A.At(5, 0) != 3 {
		t.Errorf("a = %+v, want scalar 3", doc.A)
	}
	if got := doc.B.Values(); len(got) != 2 || got[1] != 4.5 {
		t.Errorf("b = %v, want [2 4.5]", got)
	}

	if _, err := toml.Decode("a = \"three\"\n", &doc); err == nil {
		t.Error("string value should fail to decode")
	}
}

func TestRenderConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RenderConfig)
		wantErr bool
	}{
		{"defaults", func(*RenderConfig) {}, false},
		{"negative speed", func(c *RenderConfig) { c.Speed = -1 }, true},
		{"opacity above one", func(c *RenderConfig) { c.BaseOpacity = 1.5 }, true},
		{"negative brightness", func(c *RenderConfig) { c.Brightness = -0.1 }, true},
		{"negative line count", func(c *RenderConfig) { c.LineCount = List(3, -1) }, true},
		{"huge line count", func(c *RenderConfig) { c.LineCount = Scalar(1e9) }, true},
		{"infinite line count", func(c *RenderConfig) { c.LineCount = List(3, math.Inf(1)) }, true},
		{"max line count", func(c *RenderConfig) { c.LineCount = Scalar(MaxLineCount) }, false},
		{"infinite spacing", func(c *RenderConfig) { c.LineSpacing = Scalar(math.Inf(-1)) }, true},
		{"bad colour is fine", func(c *RenderConfig) { c.ColorStops = []string{"nope"} }, false},
		{"empty everything", func(c *RenderConfig) { c.ColorStops, c.WaveKinds = nil, nil }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultRenderConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, shared.ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLineCountAt(t *testing.T) {
	cfg := DefaultRenderConfig()
	cfg.LineCount = List(3, 7)

	if got := cfg.LineCountAt(1); got != 7 {
		t.Errorf("LineCountAt(1) = %d, want 7", got)
	}
	if got := cfg.LineCountAt(2); got != DefaultLineCount {
		t.Errorf("LineCountAt(2) = %d, want %d", got, DefaultLineCount)
	}
	if got := cfg.LineSpacingAt(9); got != DefaultLineSpacing {
		t.Errorf("LineSpacingAt(9) = %v, want %v", got, DefaultLineSpacing)
	}
}

func TestBuiltinThemes(t *testing.T) {
	themes := BuiltinThemes()

	want := []string{"aurora", "mono", "sunset"}
	got := themes.Names()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("Names() = %v, want %v", got, want)
	}

	aurora, err := themes.Get("aurora")
	if err != nil {
		t.Fatalf("Get(aurora) error = %v", err)
	}
	if aurora.LineCount.IsScalar() || aurora.LineCountAt(1) != 10 {
		t.Errorf("aurora lineCount = %v, want list with 10 at index 1", aurora.LineCount.Values())
	}

	mono, _ := themes.Get("mono")
	if mono.PointerInteraction {
		t.Error("mono should disable pointer interaction")
	}

	// sunset does not set these; they come from DefaultRenderConfig.
	sunset, _ := themes.Get("sunset")
	if !sunset.PointerInteraction || sunset.BaseOpacity != 1 {
		t.Errorf("sunset defaults not applied: %+v", sunset)
	}

	if _, err := themes.Get("nope"); !errors.Is(err, shared.ErrUnknownTheme) {
		t.Errorf("Get(nope) error = %v, want ErrUnknownTheme", err)
	}
}

func TestLoadThemes(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		validate    func(*testing.T, Themes)
	}{
		{
			name: "valid file",
			yamlContent: `
themes:
  neon:
    colorStops: ["#00ff00", "#ff00ff"]
    waveKinds: [top]
    lineCount: 4
`,
			validate: func(t *testing.T, themes Themes) {
				neon, err := themes.Get("neon")
				if err != nil {
					t.Fatalf("Get(neon) error = %v", err)
				}
				if neon.LineCountAt(0) != 4 || neon.Speed != 1 {
					t.Errorf("neon = %+v", neon)
				}
			},
		},
		{
			name: "invalid value",
			yamlContent: `
themes:
  broken:
    speed: -2
`,
			wantErr: true,
		},
		{
			name: "line count too large",
			yamlContent: `
themes:
  dense:
    lineCount: [4, 1e9]
`,
			wantErr: true,
		},
		{
			name:        "malformed yaml",
			yamlContent: "themes: [",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "themes.yaml")
			if err := os.WriteFile(path, []byte(tt.yamlContent), 0644); err != nil {
				t.Fatalf("failed to write themes file: %v", err)
			}

			themes, err := LoadThemes(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadThemes() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.validate != nil {
				tt.validate(t, themes)
			}
		})
	}

	if _, err := LoadThemes(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadThemes() on a missing file should fail")
	}
}

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Window.Width != 1024 || config.Window.Height != 512 {
			t.Errorf("expected window 1024x512, got %dx%d", config.Window.Width, config.Window.Height)
		}
		if config.Render.Theme != "aurora" {
			t.Errorf("expected theme aurora, got %s", config.Render.Theme)
		}
		if got := config.Render.Custom.LineCountAt(0); got != 3 {
			t.Errorf("expected custom line count 3, got %d", got)
		}
		if config.Headless.FPS != 30 {
			t.Errorf("expected headless fps 30, got %v", config.Headless.FPS)
		}
		if err := config.Validate(); err != nil {
			t.Errorf("default config should validate: %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}
		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}
		if config.Render.Theme != DefaultConfig().Render.Theme {
			t.Errorf("created config theme doesn't match default")
		}
		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		testConfig := `[window]
width = 800
height = 600

[render]
theme = "custom"

[render.custom]
wave_kinds = ["top", "bottom"]
line_count = [2, 5]

[log]
level = "debug"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}
		if config.Window.Width != 800 {
			t.Errorf("expected width 800, got %d", config.Window.Width)
		}
		if config.Headless.Width != 960 {
			t.Errorf("expected default headless width 960, got %d", config.Headless.Width)
		}
		if config.Log.Level != "debug" {
			t.Errorf("expected log level debug, got %s", config.Log.Level)
		}

		rc, err := config.ResolveRender("")
		if err != nil {
			t.Fatalf("ResolveRender() error = %v", err)
		}
		if len(rc.WaveKinds) != 2 || rc.LineCountAt(1) != 5 {
			t.Errorf("custom render = %+v", rc)
		}
	})

	t.Run("LoadConfigZeroWindow", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[window]\nwidth = 0\nheight = 300\ntitle = \"\"\n"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}
		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}
		if config.Window.Width != WindowWidth || config.Window.Height != 300 {
			t.Errorf("expected window %dx300, got %dx%d", WindowWidth, config.Window.Width, config.Window.Height)
		}
		if config.Window.Title != WindowTitle {
			t.Errorf("expected title %q, got %q", WindowTitle, config.Window.Title)
		}
	})

	t.Run("LoadConfigInvalid", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[window]\nwidth = -1\n"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}
		if _, err := LoadConfig(configPath); !errors.Is(err, shared.ErrInvalidConfig) {
			t.Errorf("LoadConfig() error = %v, want ErrInvalidConfig", err)
		}
	})

	t.Run("ResolveRenderThemesPath", func(t *testing.T) {
		dir := t.TempDir()
		themesPath := filepath.Join(dir, "themes.yaml")
		if err := os.WriteFile(themesPath, []byte("themes:\n  aurora:\n    lineCount: 1\n"), 0644); err != nil {
			t.Fatalf("failed to write themes: %v", err)
		}

		config := DefaultConfig()
		config.Render.ThemesPath = themesPath

		rc, err := config.ResolveRender("aurora")
		if err != nil {
			t.Fatalf("ResolveRender(aurora) error = %v", err)
		}
		if rc.LineCountAt(2) != 1 {
			t.Errorf("file theme should replace built-in aurora, got %v", rc.LineCount.Values())
		}
		if _, err := config.ResolveRender("sunset"); err != nil {
			t.Errorf("built-in sunset should still resolve: %v", err)
		}
	})
}
