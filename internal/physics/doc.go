// Package physics implements the circle arena: body state, the circle
// integrator with boundary handling, and pairwise circle-circle collision
// resolution.
//
// Every simulated entity implements [Shape]. The set of shape kinds is
// closed; today it holds only [KindCircle]. Drivers dispatch on [Shape.Kind]
// and a type switch, and only circles are ever paired for collision:
//
//	for i, a := range shapes {
//	    a.Render(r)
//	    if ca, ok := a.(*physics.Circle); ok {
//	        for _, b := range shapes[i+1:] {
//	            if cb, ok := b.(*physics.Circle); ok {
//	                physics.Collide(ca, cb, cfg)
//	            }
//	        }
//	    }
//	    a.Update(cfg, dt)
//	}
//
// # Mutation
//
// Body state is unexported. Only a body's own integrator and the pair
// resolver in this package write to it; everything else reads through the
// accessors or a [dynamo.Snapshot].
//
// # Collision Regimes
//
// An overlapping pair is classified on its signed per-axis momentum. Pairs
// where both bodies carry more than [dynamo.Config.HighEnergyMomentum] on
// the same axis collide elastically, pairs where both are at or below it on
// the same axis collide inelastically, and the remainder fall into a gap
// handled according to [dynamo.Config.GapPolicy].
package physics
