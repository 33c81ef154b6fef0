package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/bouncesim/internal/dynamo"
	"github.com/san-kum/bouncesim/internal/physics"
)

const tol = 1e-9

func circle(mass float64, pos, vel dynamo.Vec2, opts ...physics.CircleOption) *physics.Circle {
	c, err := physics.NewCircle(mass, pos, vel, opts...)
	Expect(err).NotTo(HaveOccurred())
	return c
}

var _ = Describe("Collide", func() {
	var cfg dynamo.Config

	BeforeEach(func() {
		cfg = dynamo.DefaultConfig()
	})

	Context("when the circles do not overlap", func() {
		It("never mutates either body", func() {
			a := circle(1, dynamo.V(0, 0), dynamo.V(5, 5))
			b := circle(2, dynamo.V(0.21, 0), dynamo.V(-5, 3))
			sa, sb := a.Snapshot(), b.Snapshot()

			contact := physics.Collide(a, b, cfg)

			Expect(contact.Touching()).To(BeFalse())
			Expect(contact.Regime).To(Equal(physics.RegimeNone))
			Expect(a.Snapshot()).To(Equal(sa))
			Expect(b.Snapshot()).To(Equal(sb))
		})
	})

	Context("when a circle is paired with itself", func() {
		It("does nothing", func() {
			a := circle(1, dynamo.V(0, 0), dynamo.V(5, 0))
			before := a.Snapshot()

			Expect(a.CollideWith(a, cfg).Touching()).To(BeFalse())
			Expect(a.Snapshot()).To(Equal(before))
		})
	})

	Context("with two resting circles touching exactly", func() {
		It("only applies the separation impulse", func() {
			a := circle(1, dynamo.V(0, 0), dynamo.V(0, 0))
			b := circle(1, dynamo.V(0.2, 0), dynamo.V(0, 0))

			contact := physics.Collide(a, b, cfg)

			Expect(contact.Regime).To(Equal(physics.RegimeInelastic))
			Expect(contact.Overlap).To(BeNumerically("~", 0, tol))

			Expect(a.Velocity().X).To(BeNumerically("~", -0.1, tol))
			Expect(a.Velocity().Y).To(BeNumerically("~", 0, tol))
			Expect(b.Velocity().X).To(BeNumerically("~", 0.1, tol))
			Expect(b.Velocity().Y).To(BeNumerically("~", 0, tol))

			Expect(a.Position().X).To(BeNumerically("~", 0, tol))
			Expect(b.Position().X).To(BeNumerically("~", 0.2, tol))
		})
	})

	Context("with a slow overlapping pair", func() {
		It("shares the damped common velocity", func() {
			a := circle(2, dynamo.V(0, 0), dynamo.V(1, 0))
			b := circle(1, dynamo.V(0.15, 0), dynamo.V(-0.5, 0))

			contact := physics.Collide(a, b, cfg)
			Expect(contact.Regime).To(Equal(physics.RegimeInelastic))

			vf := (2*1.0 + 1*-0.5) / 3 * 0.95
			Expect(a.Velocity().X).To(BeNumerically("~", vf-0.1, tol))
			Expect(b.Velocity().X).To(BeNumerically("~", vf+0.1, tol))

			Expect(a.Position().X).To(BeNumerically("~", -0.025, tol))
			Expect(b.Position().X).To(BeNumerically("~", 0.175, tol))
		})
	})

	Context("with a high-energy pair", func() {
		var a, b *physics.Circle

		BeforeEach(func() {
			a = circle(10, dynamo.V(0, 0), dynamo.V(5, 0), physics.WithRestitution(80))
			b = circle(5, dynamo.V(0.18, 0), dynamo.V(1, 0))
		})

		It("lets the larger momentum dominate", func() {
			contact := physics.Collide(a, b, cfg)

			Expect(contact.Regime).To(Equal(physics.RegimeElastic))
			Expect(contact.DominantA).To(BeTrue())
			Expect(contact.Overlap).To(BeNumerically("~", 0.02, tol))

			Expect(a.Velocity().X).To(BeNumerically("~", 5*0.80*(10.0/5.0), tol))
			Expect(b.Velocity().X).To(BeNumerically("~", (50+5-10*8.0)/5, tol))
			Expect(a.Velocity().Y).To(BeNumerically("~", 0, tol))
			Expect(b.Velocity().Y).To(BeNumerically("~", 0, tol))
		})

		It("conserves total momentum", func() {
			before := a.Momentum().Add(b.Momentum())
			physics.Collide(a, b, cfg)
			after := a.Momentum().Add(b.Momentum())

			Expect(after.X).To(BeNumerically("~", before.X, tol))
			Expect(after.Y).To(BeNumerically("~", before.Y, tol))
		})

		It("pushes both bodies apart by half the overlap", func() {
			physics.Collide(a, b, cfg)

			Expect(a.Position().X).To(BeNumerically("~", -0.01, tol))
			Expect(b.Position().X).To(BeNumerically("~", 0.19, tol))
			Expect(b.Position().Sub(a.Position()).Length()).To(BeNumerically("~", 0.2, tol))
		})

		It("resolves the same way when b is passed first", func() {
			contact := physics.Collide(b, a, cfg)

			Expect(contact.DominantA).To(BeFalse())
			Expect(a.Velocity().X).To(BeNumerically("~", 8, tol))
			Expect(b.Velocity().X).To(BeNumerically("~", -5, tol))
		})

		It("zeroes the dominant velocity under integer truncation", func() {
			cfg.RestitutionMode = dynamo.RestitutionTruncate
			physics.Collide(a, b, cfg)

			Expect(a.Velocity().X).To(BeNumerically("~", 0, tol))
			Expect(b.Velocity().X).To(BeNumerically("~", 55.0/5, tol))
		})
	})

	Context("with equal momentum magnitudes", func() {
		It("prefers the higher restitution", func() {
			a := circle(1, dynamo.V(0, 0), dynamo.V(3, 0), physics.WithRestitution(50))
			b := circle(1, dynamo.V(0.15, 0), dynamo.V(3, 0), physics.WithRestitution(90))

			contact := physics.Collide(a, b, cfg)

			Expect(contact.Regime).To(Equal(physics.RegimeElastic))
			Expect(contact.DominantA).To(BeFalse())
			Expect(b.Velocity().X).To(BeNumerically("~", 3*0.9, tol))
			Expect(a.Velocity().X).To(BeNumerically("~", 6-2.7, tol))
		})

		It("defaults to the first body on a full tie", func() {
			a := circle(1, dynamo.V(0, 0), dynamo.V(3, 0))
			b := circle(1, dynamo.V(0.15, 0), dynamo.V(3, 0))

			Expect(physics.Collide(a, b, cfg).DominantA).To(BeTrue())
		})
	})

	Context("with a pair in the regime gap", func() {
		var a, b *physics.Circle

		BeforeEach(func() {
			a = circle(1, dynamo.V(0, 0), dynamo.V(3, 3))
			b = circle(1, dynamo.V(0.15, 0), dynamo.V(1, 1))
		})

		It("leaves the pair unresolved by default", func() {
			sa, sb := a.Snapshot(), b.Snapshot()

			contact := physics.Collide(a, b, cfg)

			Expect(contact.Regime).To(Equal(physics.RegimeGap))
			Expect(contact.Touching()).To(BeTrue())
			Expect(a.Snapshot()).To(Equal(sa))
			Expect(b.Snapshot()).To(Equal(sb))
		})

		It("falls back to inelastic when configured", func() {
			cfg.GapPolicy = dynamo.GapInelastic

			contact := physics.Collide(a, b, cfg)

			Expect(contact.Regime).To(Equal(physics.RegimeInelastic))
			Expect(a.Velocity().Y).To(BeNumerically("~", 2*0.95, tol))
			Expect(b.Velocity().Y).To(BeNumerically("~", 2*0.95, tol))
		})
	})

	Context("with coincident centers", func() {
		It("produces a non-finite state", func() {
			a := circle(1, dynamo.V(0, 0), dynamo.V(0, 0))
			b := circle(1, dynamo.V(0, 0), dynamo.V(0, 0))

			physics.Collide(a, b, cfg)

			Expect(math.IsNaN(a.Velocity().X)).To(BeTrue())
			Expect(a.Snapshot().IsValid()).To(BeFalse())
		})
	})
})
