package vehicle_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/emirelesg/ackersim/internal/vehicle"
)

var _ = Describe("Geometry", func() {
	It("rejects non-positive dimensions", func() {
		_, err := vehicle.NewGeometry(0, 1.5)
		Expect(err).To(HaveOccurred())

		_, err = vehicle.NewGeometry(2.5, -1)
		Expect(err).To(HaveOccurred())
	})

	Describe("FrontAxleMidpoint", func() {
		It("sits one wheelbase ahead along the heading", func() {
			geo, _ := vehicle.NewGeometry(2.5, 1.5)

			front := geo.FrontAxleMidpoint(vehicle.Pose{X: 1, Y: 2, Heading: 0})
			Expect(front.X).To(BeNumerically("~", 3.5, 1e-12))
			Expect(front.Y).To(BeNumerically("~", 2.0, 1e-12))

			front = geo.FrontAxleMidpoint(vehicle.Pose{Heading: math.Pi / 2})
			Expect(front.X).To(BeNumerically("~", 0, 1e-12))
			Expect(front.Y).To(BeNumerically("~", 2.5, 1e-12))
		})
	})

	Describe("WheelOrientation", func() {
		It("adds the steering angle only for front wheels", func() {
			Expect(vehicle.WheelOrientation(0.5, 0.2, true)).To(BeNumerically("~", 0.7, 1e-12))
			Expect(vehicle.WheelOrientation(0.5, 0.2, false)).To(Equal(0.5))
		})
	})

	Describe("Wheels", func() {
		It("places the rear wheels across the rear axle", func() {
			geo, _ := vehicle.NewGeometry(2.5, 1.5)
			wheels := geo.Wheels(vehicle.Pose{}, 0.2)

			rl := wheels[vehicle.RearLeft]
			rr := wheels[vehicle.RearRight]
			Expect(rl.Y).To(BeNumerically("~", 0.75, 1e-12))
			Expect(rr.Y).To(BeNumerically("~", -0.75, 1e-12))
			Expect(rl.Angle).To(BeZero())

			fl := wheels[vehicle.FrontLeft]
			Expect(fl.X).To(BeNumerically("~", 2.5, 1e-12))
			Expect(fl.Angle).To(Equal(0.2))
		})
	})

	Describe("AckermannAngles", func() {
		It("turns the inner wheel sharper on a left turn", func() {
			geo, _ := vehicle.NewGeometry(2.5, 1.5)
			left, right := geo.AckermannAngles(0.3)

			Expect(left).To(BeNumerically(">", 0.3))
			Expect(right).To(BeNumerically("<", 0.3))
			Expect(right).To(BeNumerically(">", 0))
		})

		It("shares a single turning center on the rear-axle line", func() {
			geo, _ := vehicle.NewGeometry(2.5, 1.5)
			steer := 0.25
			left, right := geo.AckermannAngles(steer)

			// Distance from each front wheel to where its perpendicular
			// crosses the rear-axle line must agree with the bicycle
			// model's turning center.
			center := geo.Wheelbase / math.Tan(steer)
			fromLeft := geo.Wheelbase/math.Tan(left) + geo.TrackWidth/2
			fromRight := geo.Wheelbase/math.Tan(right) - geo.TrackWidth/2

			Expect(fromLeft).To(BeNumerically("~", center, 1e-9))
			Expect(fromRight).To(BeNumerically("~", center, 1e-9))
		})

		It("keeps both wheels straight with zero steering", func() {
			geo, _ := vehicle.NewGeometry(2.5, 1.5)
			left, right := geo.AckermannAngles(0)
			Expect(left).To(BeZero())
			Expect(right).To(BeZero())
		})
	})

	Describe("TurnRadius", func() {
		It("is infinite when driving straight", func() {
			geo, _ := vehicle.NewGeometry(2.5, 1.5)
			Expect(math.IsInf(geo.TurnRadius(0), 1)).To(BeTrue())
		})

		It("shrinks as the steering angle grows", func() {
			geo, _ := vehicle.NewGeometry(2.5, 1.5)
			Expect(geo.TurnRadius(0.4)).To(BeNumerically("<", geo.TurnRadius(0.2)))
			Expect(geo.TurnRadius(0.2)).To(BeNumerically("~", 2.5/math.Tan(0.2), 1e-12))
		})
	})
})
