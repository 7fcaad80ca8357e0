package torchlight

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every tunable effect parameter.
type Config struct {
	Trail    TrailConfig    `yaml:"trail"`
	Particle ParticleConfig `yaml:"particle"`
	Glow     GlowConfig     `yaml:"glow"`
	Debug    DebugConfig    `yaml:"debug"`
}

// TrailConfig controls pointer velocity estimation and the spawn decision.
type TrailConfig struct {
	Capacity       int     `yaml:"capacity"`
	VelocityScale  float64 `yaml:"velocity_scale"`
	ActivitySpeed  float64 `yaml:"activity_speed"`
	SpawnGateSpeed float64 `yaml:"spawn_gate_speed"`
	SpawnDensity   float64 `yaml:"spawn_density"`
}

// ParticleConfig controls spawn, physics, and retirement of trail particles.
type ParticleConfig struct {
	Friction        float64       `yaml:"friction"`
	PushForce       float64       `yaml:"push_force"`
	PushRadius      float64       `yaml:"push_radius"`
	InheritVelocity float64       `yaml:"inherit_velocity"`
	Jitter          float64       `yaml:"jitter"`
	Drift           float64       `yaml:"drift"`
	FadeAfter       time.Duration `yaml:"fade_after"`
	FadeDuration    time.Duration `yaml:"fade_duration"`
	StartOpacity    float64       `yaml:"start_opacity"`
	FadeOpacity     float64       `yaml:"fade_opacity"`
	FadeBlur        float64       `yaml:"fade_blur"`
	SizeSmall       float64       `yaml:"size_small"`
	SizeMedium      float64       `yaml:"size_medium"`
	Color           Color         `yaml:"color"`
}

// GlowConfig controls the torchlight overlay shown over interactive elements.
type GlowConfig struct {
	OffsetX   float64       `yaml:"offset_x"`
	FadeIn    time.Duration `yaml:"fade_in"`
	FadeOut   time.Duration `yaml:"fade_out"`
	LeaveBlur float64       `yaml:"leave_blur"`
	Radius    float64       `yaml:"radius"`
	Color     Color         `yaml:"color"`
}

// DebugConfig controls diagnostics emitted in debug mode.
type DebugConfig struct {
	Interval        int `yaml:"interval"`
	ResidencyWindow int `yaml:"residency_window"`
}

// DefaultConfig returns the embedded default parameters.
func DefaultConfig() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		panic("torchlight: embedded defaults are invalid: " + err.Error())
	}
	return cfg
}

// LoadConfig parses a YAML document over the defaults and validates the
// result. Keys absent from data keep their default values.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// LoadConfigFile reads and parses the YAML file at path.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return LoadConfig(data)
}

// Validate reports every out-of-range parameter, joined into one error.
func (c Config) Validate() error {
	var errs []error
	t, p, g := c.Trail, c.Particle, c.Glow

	if t.Capacity < 2 {
		errs = append(errs, fmt.Errorf("trail.capacity must be at least 2, got %d", t.Capacity))
	}
	if t.VelocityScale <= 0 {
		errs = append(errs, fmt.Errorf("trail.velocity_scale must be positive, got %v", t.VelocityScale))
	}
	if t.ActivitySpeed < 0 {
		errs = append(errs, fmt.Errorf("trail.activity_speed must not be negative, got %v", t.ActivitySpeed))
	}
	if t.SpawnGateSpeed < t.ActivitySpeed {
		errs = append(errs, fmt.Errorf("trail.spawn_gate_speed %v is below activity_speed %v",
			t.SpawnGateSpeed, t.ActivitySpeed))
	}
	if t.SpawnDensity < 0 || t.SpawnDensity > 1 {
		errs = append(errs, fmt.Errorf("trail.spawn_density must be in [0, 1], got %v", t.SpawnDensity))
	}

	if p.Friction <= 0 || p.Friction > 1 {
		errs = append(errs, fmt.Errorf("particle.friction must be in (0, 1], got %v", p.Friction))
	}
	if p.PushRadius < 0 {
		errs = append(errs, fmt.Errorf("particle.push_radius must not be negative, got %v", p.PushRadius))
	}
	if p.FadeAfter <= 0 || p.FadeDuration <= 0 {
		errs = append(errs, fmt.Errorf("particle.fade_after and fade_duration must be positive, got %v and %v",
			p.FadeAfter, p.FadeDuration))
	}
	if p.SizeSmall <= 0 || p.SizeMedium <= 0 || p.SizeSmall == p.SizeMedium {
		errs = append(errs, fmt.Errorf("particle.size_small and size_medium must be distinct positive sizes, got %v and %v",
			p.SizeSmall, p.SizeMedium))
	}

	if g.FadeIn <= 0 || g.FadeOut <= 0 {
		errs = append(errs, fmt.Errorf("glow.fade_in and fade_out must be positive, got %v and %v",
			g.FadeIn, g.FadeOut))
	}
	if g.Radius <= 0 {
		errs = append(errs, fmt.Errorf("glow.radius must be positive, got %v", g.Radius))
	}
	return errors.Join(errs...)
}
