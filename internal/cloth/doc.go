// Package cloth implements a position-based 2D cloth: a grid of point
// masses advanced with Verlet integration and held together by distance
// constraints that are relaxed a fixed number of times per frame.
//
// The package has two parts:
//
//   - [Grid]: owns every [Particle] of a width × height sheet
//   - [Solver]: stateless frame parameters plus the operations that mutate
//     a grid ([ApplyUniformAcceleration], [ApplyWind], [Integrate], [Relax])
//
// Constraints are never stored. A [Topology] regenerates them from grid
// coordinates on every relaxation pass, in row-major order, structural then
// shear then bend links for each cell.
//
// # Example
//
//	g := cloth.NewGrid(10, 10, cloth.Vec2{X: 100, Y: 100}, 50, cloth.PinTopCorners(10))
//	s := cloth.NewSolver(cloth.Structural, 50)
//	for running {
//		s.Step(g, frameTime)
//		draw(g.Particles())
//	}
//
// # Thread Safety
//
// Nothing here is safe for concurrent use. Read particle state between
// frames, never while [Solver.Step] or [Relax] is running.
package cloth
