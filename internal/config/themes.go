package config

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/iburimskiy/wavebg/internal/shared"
	"gopkg.in/yaml.v3"
)

//go:embed themes.yaml
var builtinThemes []byte

// Themes maps theme names to render configurations.
type Themes map[string]RenderConfig

type themesFile struct {
	Themes map[string]yaml.Node `yaml:"themes"`
}

// LoadThemes loads a YAML themes file.
//
// Each theme is decoded over DefaultRenderConfig, so a theme only needs the fields it changes.
func LoadThemes(path string) (Themes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read themes file: %w", err)
	}

	themes, err := ParseThemes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse themes file %s: %w", path, err)
	}
	return themes, nil
}

// ParseThemes decodes and validates themes from YAML.
func ParseThemes(data []byte) (Themes, error) {
	var file themesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	themes := make(Themes, len(file.Themes))
	for name, node := range file.Themes {
		cfg := DefaultRenderConfig()
		if err := node.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("theme %q: %w", name, err)
		}
		themes[name] = cfg
	}

	if err := themes.Validate(); err != nil {
		return nil, err
	}
	return themes, nil
}

// BuiltinThemes returns the themes shipped with the binary.
func BuiltinThemes() Themes {
	themes, err := ParseThemes(builtinThemes)
	if err != nil {
		panic(fmt.Sprintf("failed to parse embedded themes: %v", err))
	}
	return themes
}

// Validate checks every theme.
func (t Themes) Validate() error {
	for _, name := range t.Names() {
		if err := t[name].Validate(); err != nil {
			return fmt.Errorf("theme %q: %w", name, err)
		}
	}
	return nil
}

// Names returns the theme names in sorted order.
func (t Themes) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the named theme.
func (t Themes) Get(name string) (RenderConfig, error) {
	cfg, ok := t[name]
	if !ok {
		return RenderConfig{}, fmt.Errorf("%w: %q", shared.ErrUnknownTheme, name)
	}
	return cfg, nil
}

// Merge returns a copy of t with the themes of other added, replacing same-named ones.
func (t Themes) Merge(other Themes) Themes {
	out := make(Themes, len(t)+len(other))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}
