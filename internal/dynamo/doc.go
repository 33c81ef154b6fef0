// Package dynamo provides the primitives shared by the circle arena engine.
//
// The package defines the value types every other package agrees on:
//
//   - [Vec2]: 2D vector used for positions and velocities
//   - [Config]: the immutable tunables of one simulation, owned by the driver
//   - [Snapshot]: read-only view of one body after a frame
//   - [Observer] and [Metric]: per-frame hooks used by the driver
//
// The arena bounds are fixed constants and are deliberately asymmetric:
//
//	left = -1.125, right = 1.25, bottom = -0.875, top = 0.75
//
// # Thread Safety
//
// Nothing in the engine is safe for concurrent use. A single driver goroutine
// owns the bodies and calls into the engine once per frame.
package dynamo
