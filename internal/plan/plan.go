// Package plan builds open-loop command profiles. A plan is the list of
// body-frame commands the trajectory generator integrates into a reference
// trajectory before tracking starts.
package plan

import (
	"fmt"
	"sort"

	"github.com/san-kum/unitrack/internal/rover"
)

// Spec describes a plan in a form that can live in a config file. Which
// fields matter depends on Type: straight uses V and Duration, arc adds
// Omega, chicane reads V and Omega as the speed and turn-rate ceilings,
// and dubins uses V with the Omegas/Edges pair.
type Spec struct {
	Type     string    `yaml:"type"`
	V        float64   `yaml:"v,omitempty"`
	Omega    float64   `yaml:"omega,omitempty"`
	Duration float64   `yaml:"duration,omitempty"`
	Omegas   []float64 `yaml:"omegas,omitempty"`
	Edges    []float64 `yaml:"edges,omitempty"`
}

var builders = map[string]func(Spec, float64) ([]rover.Command, error){
	"straight": func(s Spec, dt float64) ([]rover.Command, error) {
		return Straight(s.V, s.Duration, dt)
	},
	"arc": func(s Spec, dt float64) ([]rover.Command, error) {
		return Arc(s.V, s.Omega, s.Duration, dt)
	},
	"chicane": func(s Spec, dt float64) ([]rover.Command, error) {
		return Chicane(s.V, s.Omega, s.Duration, dt)
	},
	"dubins": func(s Spec, dt float64) ([]rover.Command, error) {
		return Piecewise(s.V, s.Omegas, s.Edges, dt)
	},
}

// Build expands spec into per-step commands sampled every dt seconds.
func Build(spec Spec, dt float64) ([]rover.Command, error) {
	fn, ok := builders[spec.Type]
	if !ok {
		return nil, fmt.Errorf("unknown plan: %s", spec.Type)
	}
	return fn(spec, dt)
}

// Names returns the available plan types in sorted order.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
