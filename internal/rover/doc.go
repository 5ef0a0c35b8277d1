// Package rover provides the core vocabulary for unicycle trajectory tracking.
//
// The package defines the fundamental types and interfaces shared by the
// trajectory, controller, and simulation layers:
//
//   - [Pose]: planar position and heading (x, y, theta)
//   - [Command]: unicycle velocity command (v, omega)
//   - [System]: interface for kinematic ODEs (dX/dt = f(X, u, t))
//   - [Integrator]: fixed-step numerical stepper interface
//   - [Model]: stateful one-step-at-a-time kinematic integrator
//   - [Tracker]: trajectory-tracking controller interface
//
// # Example
//
//	plant, _ := unicycle.NewModel(0.01, integrators.NewRK4())
//	ctrl, _ := lyapunov.New(10, 1, 0.01)
//	cmd, err := ctrl.Step(plant.Pose(), t)
//
// # Thread Safety
//
// None of the types in this package (or their implementations elsewhere in
// the module) are safe for concurrent use. A tracking session drives one
// plant and one tracker from a single goroutine.
package rover
