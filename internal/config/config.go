package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/unitrack/internal/plan"
	"github.com/san-kum/unitrack/internal/rover"
)

const (
	DefaultDt              = 0.005
	DefaultDuration        = 20.0
	DefaultKp              = 10.0
	DefaultKTheta          = 1.0
	DefaultVMax            = 0.2
	DefaultOmegaMax        = 0.3
	DefaultSettleThreshold = 0.02
)

type Config struct {
	Integrator string        `yaml:"integrator"`
	Dt         float64       `yaml:"dt"`
	Gains      GainsConfig   `yaml:"gains"`
	Plan       plan.Spec     `yaml:"plan"`
	Offset     PoseConfig    `yaml:"offset"`
	Start      PoseConfig    `yaml:"start"`
	Session    SessionConfig `yaml:"session"`
}

type GainsConfig struct {
	Kp     float64 `yaml:"kp"`
	KTheta float64 `yaml:"ktheta"`
}

type PoseConfig struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Theta float64 `yaml:"theta"`
}

type SessionConfig struct {
	MaxTime         float64 `yaml:"max_time"`
	ValidatePose    bool    `yaml:"validate_pose"`
	SettleThreshold float64 `yaml:"settle_threshold"`
}

func DefaultConfig() *Config {
	return &Config{
		Integrator: "rk4",
		Dt:         DefaultDt,
		Gains: GainsConfig{
			Kp:     DefaultKp,
			KTheta: DefaultKTheta,
		},
		Plan: plan.Spec{
			Type:     "chicane",
			V:        DefaultVMax,
			Omega:    DefaultOmegaMax,
			Duration: DefaultDuration,
		},
		Session: SessionConfig{
			ValidatePose:    true,
			SettleThreshold: DefaultSettleThreshold,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (p PoseConfig) Pose() rover.Pose {
	return rover.Pose{X: p.X, Y: p.Y, Theta: p.Theta}
}

// BuildPlan expands the configured plan into per-step commands on the
// configured sample grid.
func (c *Config) BuildPlan() ([]rover.Command, error) {
	return plan.Build(c.Plan, c.Dt)
}
