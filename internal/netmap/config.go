package netmap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the full scene tuning surface. Everything has a sensible
// default (DefaultConfig) so a config file only needs to override what
// it cares about; the module list is the usual reason to have one.
type Config struct {
	Field     FieldConfig     `toml:"field"`
	Graph     GraphConfig     `toml:"graph"`
	Animation AnimationConfig `toml:"animation"`
	Modules   []ModuleConfig  `toml:"modules"`
}

// ClassConfig describes the placement band for one background node class.
type ClassConfig struct {
	Count       int     `toml:"count"`
	RadiusMin   float64 `toml:"radius_min"`
	RadiusMax   float64 `toml:"radius_max"`
	DepthJitter float64 `toml:"depth_jitter"`
	Clearance   float64 `toml:"clearance"`
}

type FieldConfig struct {
	Small         ClassConfig `toml:"small"`
	Medium        ClassConfig `toml:"medium"`
	FOV           float64     `toml:"fov"`
	FrustumMargin float64     `toml:"frustum_margin"`
}

type GraphConfig struct {
	ConnectThreshold float64 `toml:"connect_threshold"`
	MinBaseOpacity   float64 `toml:"min_base_opacity"`
	MinOpacity       float64 `toml:"min_opacity"`
	MaxOpacity       float64 `toml:"max_opacity"`
}

type AnimationConfig struct {
	SmallAmplitude  float64    `toml:"small_amplitude"`
	MediumAmplitude float64    `toml:"medium_amplitude"`
	ModuleAmplitude [3]float64 `toml:"module_amplitude"`
	ModuleFrequency [3]float64 `toml:"module_frequency"`
	HoverScale      float64    `toml:"hover_scale"`
	EaseRate        float64    `toml:"ease_rate"`
	GlowBase        float64    `toml:"glow_base"`
	GlowPulse       float64    `toml:"glow_pulse"`
	GlowHoverPulse  float64    `toml:"glow_hover_pulse"`
	GlowSpin        float64    `toml:"glow_spin"`
	EdgeFlowRate    float64    `toml:"edge_flow_rate"`
}

// ModuleConfig is the on-disk form of a Module; colour is a hex string.
type ModuleConfig struct {
	ID       string     `toml:"id"`
	Label    string     `toml:"label"`
	Position [3]float64 `toml:"position"`
	Color    string     `toml:"color"`
}

// DefaultConfig mirrors the production desktop scene: six modules in a
// loose ring, 40 small and 20 medium background nodes, a 4-unit
// connection threshold and 60° vertical FOV.
func DefaultConfig() Config {
	return Config{
		Field: FieldConfig{
			Small: ClassConfig{
				Count:       40,
				RadiusMin:   2.0,
				RadiusMax:   7.5,
				DepthJitter: 2.5,
				Clearance:   1.5,
			},
			Medium: ClassConfig{
				Count:       20,
				RadiusMin:   1.5,
				RadiusMax:   6.0,
				DepthJitter: 1.8,
				Clearance:   2.0,
			},
			FOV:           60,
			FrustumMargin: 0.88,
		},
		Graph: GraphConfig{
			ConnectThreshold: 4.0,
			MinBaseOpacity:   0.18,
			MinOpacity:       0.05,
			MaxOpacity:       0.85,
		},
		Animation: AnimationConfig{
			SmallAmplitude:  0.06,
			MediumAmplitude: 0.14,
			ModuleAmplitude: [3]float64{0.32, 0.24, 0.18},
			ModuleFrequency: [3]float64{0.51, 0.73, 0.34},
			HoverScale:      1.35,
			EaseRate:        7.0,
			GlowBase:        0.55,
			GlowPulse:       0.18,
			GlowHoverPulse:  0.38,
			GlowSpin:        0.8,
			EdgeFlowRate:    1.6,
		},
		Modules: []ModuleConfig{
			{ID: "operators", Label: "OPERATORS", Position: [3]float64{-3.4, 1.2, 0.4}, Color: "#e54b4b"},
			{ID: "arsenal", Label: "ARSENAL", Position: [3]float64{-1.2, -1.8, -0.3}, Color: "#f0a13a"},
			{ID: "maps", Label: "MAPS", Position: [3]float64{1.4, 1.9, 0.2}, Color: "#4bc97e"},
			{ID: "music", Label: "MUSIC", Position: [3]float64{3.3, -0.6, -0.5}, Color: "#5a8cf0"},
			{ID: "media", Label: "MEDIA", Position: [3]float64{0.2, 0.1, 0.8}, Color: "#b05af0"},
			{ID: "about", Label: "ABOUT", Position: [3]float64{-2.6, -0.4, 0.9}, Color: "#50cbe3"},
		},
	}
}

// LoadConfig reads a TOML config file on top of the defaults, so partial
// files are fine. Supplying any [[modules]] block replaces the default
// module set entirely.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	defaults := cfg.Modules
	cfg.Modules = nil
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if len(cfg.Modules) == 0 {
		cfg.Modules = defaults
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configs the generator cannot work with.
func (c Config) Validate() error {
	for _, cls := range []struct {
		name string
		cc   ClassConfig
	}{{"small", c.Field.Small}, {"medium", c.Field.Medium}} {
		if cls.cc.Count < 0 {
			return fmt.Errorf("field.%s: count must be >= 0", cls.name)
		}
		if cls.cc.RadiusMax < cls.cc.RadiusMin {
			return fmt.Errorf("field.%s: radius_max < radius_min", cls.name)
		}
		if cls.cc.Clearance < 0 {
			return fmt.Errorf("field.%s: clearance must be >= 0", cls.name)
		}
	}
	if c.Field.FOV <= 0 || c.Field.FOV >= 180 {
		return fmt.Errorf("field.fov: %v out of range (0, 180)", c.Field.FOV)
	}
	if c.Field.FrustumMargin <= 0 || c.Field.FrustumMargin > 1 {
		return fmt.Errorf("field.frustum_margin: %v out of range (0, 1]", c.Field.FrustumMargin)
	}
	if c.Graph.ConnectThreshold <= 0 {
		return fmt.Errorf("graph.connect_threshold must be > 0")
	}
	if c.Graph.MaxOpacity < c.Graph.MinOpacity {
		return fmt.Errorf("graph: max_opacity < min_opacity")
	}
	seen := make(map[string]bool, len(c.Modules))
	for i, m := range c.Modules {
		if m.ID == "" {
			return fmt.Errorf("modules[%d]: id is required", i)
		}
		if seen[m.ID] {
			return fmt.Errorf("modules[%d]: duplicate id %q", i, m.ID)
		}
		seen[m.ID] = true
		if _, err := ParseHexColor(m.Color); err != nil {
			return fmt.Errorf("modules[%d] (%s): %w", i, m.ID, err)
		}
	}
	return nil
}

// ModuleList converts the configured module blocks into engine modules.
// Call Validate first; invalid colours fall back to white here.
func (c Config) ModuleList() []Module {
	out := make([]Module, 0, len(c.Modules))
	for _, m := range c.Modules {
		col, err := ParseHexColor(m.Color)
		if err != nil {
			col = 0xffffff
		}
		out = append(out, Module{
			ID:    m.ID,
			Label: m.Label,
			Pos:   Vec3{m.Position[0], m.Position[1], m.Position[2]},
			Color: col,
		})
	}
	return out
}

// ParseHexColor parses "#rrggbb" (leading # optional) into a packed RGB.
func ParseHexColor(s string) (RGB, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return 0, fmt.Errorf("colour %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("colour %q: %w", s, err)
	}
	return RGB(v), nil
}
