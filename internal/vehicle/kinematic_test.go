package vehicle_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/emirelesg/ackersim/internal/vehicle"
)

func newTestModel(wheelbase float64, ref vehicle.Reference) *vehicle.Kinematic {
	geo, err := vehicle.NewGeometry(wheelbase, 1.5)
	Expect(err).NotTo(HaveOccurred())
	controls := vehicle.NewControls(vehicle.Limits{MaxSteer: 0.4, MinSpeed: -5, MaxSpeed: 5})
	return vehicle.NewKinematic(geo, controls, ref)
}

var _ = Describe("Kinematic", func() {
	Describe("Step", func() {
		It("moves in a straight line with zero steering", func() {
			k := newTestModel(2.5, vehicle.ReferenceRearAxle)
			k.Controls().SetSpeed(2.0)
			k.Controls().SetSteer(0)

			for i := 0; i < 50; i++ {
				k.Step(0.1)
			}

			p := k.Pose()
			Expect(p.Heading).To(BeZero())
			Expect(p.X).To(BeNumerically("~", 10.0, 1e-9))
			Expect(p.Y).To(BeZero())
		})

		It("leaves the pose unchanged at zero speed", func() {
			k := newTestModel(2.5, vehicle.ReferenceRearAxle)
			k.Controls().SetSpeed(0)
			k.Controls().SetSteer(0.3)

			for i := 0; i < 100; i++ {
				k.Step(0.1)
			}

			Expect(k.Pose()).To(Equal(vehicle.Origin()))
		})

		It("treats dt of zero as a no-op", func() {
			k := newTestModel(2.5, vehicle.ReferenceRearAxle)
			k.Controls().SetSpeed(3.0)
			k.Controls().SetSteer(0.2)
			before := k.Step(0.1)

			Expect(k.Step(0)).To(Equal(before))
		})

		It("uses the pre-step heading for the first Euler step", func() {
			// wheelbase 2.5, speed 1, steer 0.2, dt 1:
			// omega = tan(0.2)/2.5, translation along heading 0.
			k := newTestModel(2.5, vehicle.ReferenceRearAxle)
			k.Controls().SetSpeed(1.0)
			k.Controls().SetSteer(0.2)

			p := k.Step(1.0)

			omega := math.Tan(0.2) / 2.5
			Expect(omega).To(BeNumerically("~", 0.0811, 1e-4))
			Expect(p.Heading).To(BeNumerically("~", omega, 1e-12))
			Expect(p.X).To(BeNumerically("~", 1.0, 1e-12))
			Expect(p.Y).To(BeZero())
		})

		It("keeps the heading in (-pi, pi] over long turns", func() {
			k := newTestModel(1.0, vehicle.ReferenceRearAxle)
			k.Controls().SetSpeed(5.0)
			k.Controls().SetSteer(0.4)

			for i := 0; i < 2000; i++ {
				p := k.Step(0.05)
				Expect(p.Heading).To(BeNumerically(">", -math.Pi))
				Expect(p.Heading).To(BeNumerically("<=", math.Pi))
			}
		})

		It("is deterministic for a fixed input sequence", func() {
			run := func() vehicle.Pose {
				k := newTestModel(2.5, vehicle.ReferenceRearAxle)
				k.Controls().SetSpeed(1.5)
				for i := 0; i < 200; i++ {
					k.Controls().SetSteer(0.3 * math.Sin(float64(i)*0.05))
					k.Step(0.02)
				}
				return k.Pose()
			}

			Expect(run()).To(Equal(run()))
		})

		It("drives reverse along the heading for negative speed", func() {
			k := newTestModel(2.5, vehicle.ReferenceRearAxle)
			k.Controls().SetSpeed(-1.0)
			k.Controls().SetSteer(0)

			k.Step(2.0)

			Expect(k.Pose().X).To(BeNumerically("~", -2.0, 1e-12))
		})
	})

	Describe("Step with the center-of-mass reference", func() {
		It("translates along heading plus the slip angle", func() {
			k := newTestModel(3.0, vehicle.ReferenceCenterMass)
			k.Controls().SetSpeed(3.0)
			k.Controls().SetSteer(0.3)

			p := k.Step(0.1)

			beta := math.Atan(math.Tan(0.3) / 2)
			omega := 3.0 * math.Cos(beta) * math.Tan(0.3) / 3.0
			Expect(p.X).To(BeNumerically("~", 3.0*math.Cos(beta)*0.1, 1e-12))
			Expect(p.Y).To(BeNumerically("~", 3.0*math.Sin(beta)*0.1, 1e-12))
			Expect(p.Heading).To(BeNumerically("~", omega*0.1, 1e-12))
		})

		It("matches the rear-axle model when driving straight", func() {
			rear := newTestModel(3.0, vehicle.ReferenceRearAxle)
			mass := newTestModel(3.0, vehicle.ReferenceCenterMass)
			for _, k := range []*vehicle.Kinematic{rear, mass} {
				k.Controls().SetSpeed(2.0)
				for i := 0; i < 100; i++ {
					k.Step(0.1)
				}
			}

			Expect(mass.Pose()).To(Equal(rear.Pose()))
		})
	})

	Describe("Reset", func() {
		It("returns the vehicle to the origin", func() {
			k := newTestModel(2.5, vehicle.ReferenceRearAxle)
			k.Controls().SetSpeed(2.0)
			k.Controls().SetSteer(0.2)
			for i := 0; i < 30; i++ {
				k.Step(0.1)
			}

			k.Reset()

			Expect(k.Pose()).To(Equal(vehicle.Origin()))
		})
	})
})

var _ = Describe("Controls", func() {
	It("saturates the steering angle at the bound", func() {
		c := vehicle.NewControls(vehicle.Limits{MaxSteer: 0.4, MaxSpeed: 5})

		for i := 0; i < 10; i++ {
			c.AdjustSteer(0.05)
		}
		Expect(c.Steer()).To(Equal(0.4))

		for i := 0; i < 30; i++ {
			c.AdjustSteer(-0.05)
		}
		Expect(c.Steer()).To(Equal(-0.4))
	})

	It("clamps at assignment time", func() {
		c := vehicle.NewControls(vehicle.Limits{MaxSteer: 0.4, MaxSpeed: 5})

		c.SetSteer(1.2)
		Expect(c.Steer()).To(Equal(0.4))

		c.SetSpeed(9.0)
		Expect(c.Speed()).To(Equal(5.0))

		c.SetSpeed(-1.0)
		Expect(c.Speed()).To(Equal(0.0))
	})

	It("rejects steering limits at or beyond the tangent asymptote", func() {
		c := vehicle.NewControls(vehicle.Limits{MaxSteer: math.Pi / 2})
		Expect(c.Limits().MaxSteer).To(BeNumerically("<", math.Pi/2))
	})
})

var _ = Describe("NormalizeAngle", func() {
	It("wraps into (-pi, pi]", func() {
		Expect(vehicle.NormalizeAngle(0)).To(BeZero())
		Expect(vehicle.NormalizeAngle(math.Pi)).To(Equal(math.Pi))
		Expect(vehicle.NormalizeAngle(-math.Pi)).To(Equal(math.Pi))
		Expect(vehicle.NormalizeAngle(3.5 * math.Pi)).To(BeNumerically("~", -math.Pi/2, 1e-12))
		Expect(vehicle.NormalizeAngle(-5 * math.Pi / 2)).To(BeNumerically("~", -math.Pi/2, 1e-12))
		Expect(vehicle.NormalizeAngle(6.25 * math.Pi)).To(BeNumerically("~", math.Pi/4, 1e-9))
	})
})
