package physics

import (
	"math"

	"github.com/san-kum/bouncesim/internal/dynamo"
)

// Regime is the outcome of classifying a circle pair.
type Regime int

const (
	// RegimeNone means the pair was not touching.
	RegimeNone Regime = iota
	RegimeElastic
	RegimeInelastic
	// RegimeGap means the pair overlapped but matched neither momentum
	// predicate and was left unresolved.
	RegimeGap
)

func (r Regime) String() string {
	switch r {
	case RegimeNone:
		return "none"
	case RegimeElastic:
		return "elastic"
	case RegimeInelastic:
		return "inelastic"
	case RegimeGap:
		return "gap"
	default:
		return "unknown"
	}
}

// Contact reports what Collide did to a pair.
type Contact struct {
	Regime   Regime
	Distance float64
	Overlap  float64
	// DominantA is set for elastic contacts when a resolved as the dominant
	// body.
	DominantA bool
}

// Touching reports whether the pair was in contact.
func (c Contact) Touching() bool { return c.Regime != RegimeNone }

// Collide detects contact between a and b and, when they touch, resolves it
// in place. Passing the same circle twice is a no-op. Coincident centers
// produce a non-finite normal and are not guarded.
func Collide(a, b *Circle, cfg dynamo.Config) Contact {
	if a == b {
		return Contact{}
	}

	sa, sb := stateOf(a), stateOf(b)
	distance := sa.distance(sb)
	if distance > sa.radius+sb.radius {
		return Contact{Distance: distance}
	}

	contact := Contact{
		Regime:   classify(sa.momentum(), sb.momentum(), cfg.HighEnergyMomentum),
		Distance: distance,
		Overlap:  sa.radius + sb.radius - distance,
	}
	if contact.Regime == RegimeGap && cfg.GapPolicy == dynamo.GapInelastic {
		contact.Regime = RegimeInelastic
	}

	switch contact.Regime {
	case RegimeElastic:
		if dominantA(sa, sb) {
			contact.DominantA = true
			sa, sb = resolveElastic(sa, sb, cfg)
		} else {
			sb, sa = resolveElastic(sb, sa, cfg)
		}
	case RegimeInelastic:
		sa, sb = resolveInelastic(sa, sb, cfg)
	default:
		return contact
	}

	sa.apply(a)
	sb.apply(b)
	return contact
}

// CollideWith is Collide with c as the first body.
func (c *Circle) CollideWith(other *Circle, cfg dynamo.Config) Contact {
	return Collide(c, other, cfg)
}

// classify applies the momentum predicates to signed components. A negative
// component never counts as high energy.
func classify(pa, pb dynamo.Vec2, threshold float64) Regime {
	if (pa.X > threshold && pb.X > threshold) || (pa.Y > threshold && pb.Y > threshold) {
		return RegimeElastic
	}
	if (pa.X <= threshold && pb.X <= threshold) || (pa.Y <= threshold && pb.Y <= threshold) {
		return RegimeInelastic
	}
	return RegimeGap
}

// dominantA ranks by momentum magnitude, then restitution. Full ties go to a.
func dominantA(a, b pairState) bool {
	ma, mb := a.momentum().Length(), b.momentum().Length()
	switch {
	case ma > mb:
		return true
	case mb > ma:
		return false
	case a.restitution > b.restitution:
		return true
	case b.restitution > a.restitution:
		return false
	default:
		return true
	}
}

func (s pairState) distance(o pairState) float64 {
	return math.Hypot(o.position.X-s.position.X, o.position.Y-s.position.Y)
}
