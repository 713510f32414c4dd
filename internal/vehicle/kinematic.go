package vehicle

import "math"

// Reference selects which point of the vehicle the pose tracks.
type Reference int

const (
	// ReferenceRearAxle is the classic bicycle model: the pose tracks the
	// rear-axle midpoint and the heading rate is v*tan(steer)/wheelbase.
	ReferenceRearAxle Reference = iota

	// ReferenceCenterMass tracks the center of mass, halfway along the
	// wheelbase, introducing the slip angle beta between heading and the
	// velocity direction.
	ReferenceCenterMass
)

func (r Reference) String() string {
	if r == ReferenceCenterMass {
		return "center_mass"
	}
	return "rear_axle"
}

// Kinematic advances a vehicle pose under Ackermann steering, approximated
// by the bicycle model. It owns the pose; the controls are read-only from
// its point of view and must be mutated through their clamped setters, which
// keeps tan(steer) well away from its asymptote.
type Kinematic struct {
	geo       Geometry
	controls  *Controls
	reference Reference
	pose      Pose
}

func NewKinematic(geo Geometry, controls *Controls, ref Reference) *Kinematic {
	return &Kinematic{
		geo:       geo,
		controls:  controls,
		reference: ref,
		pose:      Origin(),
	}
}

func (k *Kinematic) Pose() Pose           { return k.pose }
func (k *Kinematic) Geometry() Geometry   { return k.geo }
func (k *Kinematic) Controls() *Controls  { return k.controls }
func (k *Kinematic) Reference() Reference { return k.reference }

// Reset puts the vehicle back at the origin with zero heading.
func (k *Kinematic) Reset() {
	k.pose = Origin()
}

// Step integrates the pose forward by dt with a single explicit Euler step
// using the pre-step heading. A zero steering angle collapses to
// straight-line motion, zero speed leaves the pose untouched. dt <= 0 is a
// no-op.
func (k *Kinematic) Step(dt float64) Pose {
	if dt <= 0 {
		return k.pose
	}

	v := k.controls.Speed()
	steer := k.controls.Steer()
	h := k.pose.Heading

	var omega, course float64
	switch k.reference {
	case ReferenceCenterMass:
		// The center of mass sits mid-wheelbase, so the slip angle is
		// beta = atan(tan(steer)/2) and the velocity points along
		// heading+beta.
		beta := math.Atan(math.Tan(steer) / 2)
		omega = v * math.Cos(beta) * math.Tan(steer) / k.geo.Wheelbase
		course = h + beta
	default:
		omega = v * math.Tan(steer) / k.geo.Wheelbase
		course = h
	}

	k.pose.X += v * math.Cos(course) * dt
	k.pose.Y += v * math.Sin(course) * dt
	k.pose.Heading = NormalizeAngle(h + omega*dt)

	return k.pose
}
