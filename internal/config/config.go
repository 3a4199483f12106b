package config

import (
	"fmt"
	"math"

	"github.com/iburimskiy/wavebg/internal/shared"
	"gopkg.in/yaml.v3"
)

const (
	// Window settings used when [window] leaves them zero.
	WindowWidth  = 1024
	WindowHeight = 512
	WindowTitle  = "wavebg"

	// Fallbacks for per-wave values missing from a list.
	DefaultLineCount   = 8
	DefaultLineSpacing = 6.0

	// MaxLineCount bounds the lines drawn per wave layer each frame.
	MaxLineCount = 256
)

// RenderConfig describes one animation session. It is not modified once the renderer starts.
type RenderConfig struct {
	// ColorStops are hex colours interpolated by line progress.
	ColorStops []string `yaml:"colorStops" toml:"color_stops"`
	// WaveKinds lists the wave layers, drawn in order.
	WaveKinds []string `yaml:"waveKinds" toml:"wave_kinds"`
	// LineCount and LineSpacing are either one value for every layer or one per layer.
	LineCount   PerWave `yaml:"lineCount" toml:"line_count"`
	LineSpacing PerWave `yaml:"lineSpacing" toml:"line_spacing"`
	// Speed scales elapsed time.
	Speed              float64 `yaml:"speed" toml:"speed"`
	PointerInteraction bool    `yaml:"pointerInteraction" toml:"pointer_interaction"`
	BaseOpacity        float64 `yaml:"baseOpacity" toml:"base_opacity"`
	Brightness         float64 `yaml:"brightness" toml:"brightness"`
}

// DefaultRenderConfig returns the configuration used when a theme leaves fields out.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		ColorStops:         []string{"#22d3ee", "#8b5cf6", "#ec4899"},
		WaveKinds:          []string{"top", "middle", "bottom"},
		LineCount:          Scalar(DefaultLineCount),
		LineSpacing:        Scalar(DefaultLineSpacing),
		Speed:              1,
		PointerInteraction: true,
		BaseOpacity:        1,
		Brightness:         1,
	}
}

// LineCountAt returns the number of lines in wave layer i.
func (c RenderConfig) LineCountAt(i int) int {
	n := int(math.Round(c.LineCount.At(i, DefaultLineCount)))
	return max(n, 0)
}

// LineSpacingAt returns the spacing between lines in wave layer i.
func (c RenderConfig) LineSpacingAt(i int) float64 {
	return c.LineSpacing.At(i, DefaultLineSpacing)
}

// Validate checks numeric ranges. Colour stops are not checked: unparsable stops are
// drawn with the default colour.
func (c RenderConfig) Validate() error {
	if c.Speed < 0 || math.IsNaN(c.Speed) {
		return fmt.Errorf("%w: speed must be >= 0, got %v", shared.ErrInvalidConfig, c.Speed)
	}
	if c.BaseOpacity < 0 || c.BaseOpacity > 1 {
		return fmt.Errorf("%w: baseOpacity must be in [0,1], got %v", shared.ErrInvalidConfig, c.BaseOpacity)
	}
	if c.Brightness < 0 {
		return fmt.Errorf("%w: brightness must be >= 0, got %v", shared.ErrInvalidConfig, c.Brightness)
	}
	for i, v := range c.LineCount.values {
		if v < 0 || v > MaxLineCount || math.IsNaN(v) {
			return fmt.Errorf("%w: lineCount[%d] must be in [0,%d], got %v", shared.ErrInvalidConfig, i, MaxLineCount, v)
		}
	}
	for i, v := range c.LineSpacing.values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: lineSpacing[%d] must be finite", shared.ErrInvalidConfig, i)
		}
	}
	return nil
}

// PerWave is a number that is either shared by every wave layer or given per layer.
type PerWave struct {
	values []float64
	scalar bool
}

// Scalar returns a PerWave applying v to every layer.
func Scalar(v float64) PerWave {
	return PerWave{values: []float64{v}, scalar: true}
}

// List returns a PerWave with one value per layer.
func List(vs ...float64) PerWave {
	return PerWave{values: append([]float64(nil), vs...)}
}

// At returns the value for layer i, or def when a list has no entry for i.
func (p PerWave) At(i int, def float64) float64 {
	if p.scalar && len(p.values) > 0 {
		return p.values[0]
	}
	if i < 0 || i >= len(p.values) {
		return def
	}
	return p.values[i]
}

// IsScalar reports whether one value is shared by every layer.
func (p PerWave) IsScalar() bool { return p.scalar }

// Values returns a copy of the underlying values.
func (p PerWave) Values() []float64 { return append([]float64(nil), p.values...) }

func (p *PerWave) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		var v float64
		if err := n.Decode(&v); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrInvalidConfig, err)
		}
		*p = Scalar(v)
	case yaml.SequenceNode:
		var vs []float64
		if err := n.Decode(&vs); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrInvalidConfig, err)
		}
		*p = List(vs...)
	default:
		return fmt.Errorf("%w: expected a number or a list of numbers at line %d", shared.ErrInvalidConfig, n.Line)
	}
	return nil
}

func (p PerWave) MarshalYAML() (any, error) {
	if p.scalar && len(p.values) > 0 {
		return p.values[0], nil
	}
	return p.values, nil
}

func (p *PerWave) UnmarshalTOML(data any) error {
	switch v := data.(type) {
	case int64:
		*p = Scalar(float64(v))
	case float64:
		*p = Scalar(v)
	case []any:
		vs := make([]float64, 0, len(v))
		for i, item := range v {
			f, ok := tomlNumber(item)
			if !ok {
				return fmt.Errorf("%w: element %d is %T, want a number", shared.ErrInvalidConfig, i, item)
			}
			vs = append(vs, f)
		}
		*p = List(vs...)
	default:
		return fmt.Errorf("%w: expected a number or an array of numbers, got %T", shared.ErrInvalidConfig, data)
	}
	return nil
}

func tomlNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
