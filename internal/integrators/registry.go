package integrators

import (
	"fmt"

	"github.com/san-kum/unitrack/internal/rover"
)

var factories = map[string]func() rover.Integrator{
	"euler": func() rover.Integrator { return NewEuler() },
	"rk4":   func() rover.Integrator { return NewRK4() },
}

// ByName returns a fresh integrator for a config or flag value.
func ByName(name string) (rover.Integrator, error) {
	factory, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return factory(), nil
}

// Names lists the registered integrator names.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	return names
}
