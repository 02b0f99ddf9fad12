// Package dynamo provides core simulation primitives for compartment models.
//
// The package defines the fundamental interfaces and types for numerical
// simulation of ordinary differential equations (ODEs):
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: fixed-step numerical integrator interface
//   - [AdaptiveIntegrator]: integrator with embedded error control
//   - [Metric]: scalar observed along a trajectory
//
// # Example
//
//	dyn := models.NewSIR(models.Params{N: 1, B: 0.3, K: 0.1})
//	integ := integrators.NewRK45()
//	s := sim.New(dyn, integ, dynamo.DefaultConfig())
//	traj, _ := s.Run(ctx, x0, grid)
//
// # Thread Safety
//
// Integrators keep scratch buffers and are NOT safe for concurrent use.
// Systems are pure and may be shared.
package dynamo
