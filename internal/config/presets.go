package config

import (
	"sort"

	"github.com/san-kum/unitrack/internal/plan"
)

var Presets = map[string]*Config{
	"chicane-lab": {
		Integrator: "rk4", Dt: 0.005,
		Gains: GainsConfig{Kp: 10.0, KTheta: 1.0},
		Plan:  plan.Spec{Type: "chicane", V: 0.2, Omega: 0.3, Duration: 20.0},
		Session: SessionConfig{
			ValidatePose:    true,
			SettleThreshold: DefaultSettleThreshold,
		},
	},
	"straight-line": {
		Integrator: "rk4", Dt: 0.01,
		Gains: GainsConfig{Kp: 10.0, KTheta: 1.0},
		Plan:  plan.Spec{Type: "straight", V: 0.2, Duration: 10.0},
		Start: PoseConfig{Y: 0.1},
		Session: SessionConfig{
			ValidatePose:    true,
			SettleThreshold: DefaultSettleThreshold,
		},
	},
	"loop": {
		Integrator: "rk4", Dt: 0.01,
		Gains: GainsConfig{Kp: 10.0, KTheta: 1.0},
		Plan:  plan.Spec{Type: "arc", V: 0.2, Omega: 0.2, Duration: 31.4},
		Session: SessionConfig{
			ValidatePose:    true,
			SettleThreshold: DefaultSettleThreshold,
		},
	},
	"dubins-bench": {
		Integrator: "rk4", Dt: 0.005,
		Gains: GainsConfig{Kp: 10.0, KTheta: 1.0},
		Plan: plan.Spec{
			Type:   "dubins",
			V:      0.15,
			Omegas: []float64{-0.2, 0, 0.2},
			Edges:  []float64{0, 5, 10, 15},
		},
		Session: SessionConfig{
			ValidatePose:    true,
			SettleThreshold: DefaultSettleThreshold,
		},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
