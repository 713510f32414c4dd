package vehicle

import (
	"fmt"
	"math"
)

// Wheel indices for Geometry.Wheels.
const (
	FrontLeft = iota
	FrontRight
	RearLeft
	RearRight
)

// Point is a position in the world frame.
type Point struct {
	X, Y float64
}

// WheelPose is a wheel's contact-patch position and orientation, used by
// renderers to draw each wheel as an oriented segment.
type WheelPose struct {
	X, Y  float64
	Angle float64
}

// Geometry holds the static dimensions of the vehicle. Immutable for the
// lifetime of a simulation.
type Geometry struct {
	Wheelbase  float64
	TrackWidth float64
}

// NewGeometry validates the dimensions. Both must be positive.
func NewGeometry(wheelbase, trackWidth float64) (Geometry, error) {
	if wheelbase <= 0 {
		return Geometry{}, fmt.Errorf("wheelbase must be positive, got %f", wheelbase)
	}
	if trackWidth <= 0 {
		return Geometry{}, fmt.Errorf("track width must be positive, got %f", trackWidth)
	}
	return Geometry{Wheelbase: wheelbase, TrackWidth: trackWidth}, nil
}

// FrontAxleMidpoint returns the point one wheelbase ahead of the rear axle
// along the heading.
func (g Geometry) FrontAxleMidpoint(p Pose) Point {
	return Point{
		X: p.X + g.Wheelbase*math.Cos(p.Heading),
		Y: p.Y + g.Wheelbase*math.Sin(p.Heading),
	}
}

// WheelOrientation returns the world-frame orientation of a wheel: front
// wheels point along heading+steer, rear wheels along the heading.
func WheelOrientation(heading, steer float64, front bool) float64 {
	if front {
		return heading + steer
	}
	return heading
}

// Wheels returns the four wheel poses for rendering, indexed by FrontLeft,
// FrontRight, RearLeft, RearRight.
func (g Geometry) Wheels(p Pose, steer float64) [4]WheelPose {
	sinH, cosH := math.Sincos(p.Heading)
	half := g.TrackWidth / 2

	// Lateral offset of the left side in the world frame.
	lx, ly := -half*sinH, half*cosH
	front := g.FrontAxleMidpoint(p)

	frontAngle := WheelOrientation(p.Heading, steer, true)
	rearAngle := WheelOrientation(p.Heading, steer, false)

	return [4]WheelPose{
		FrontLeft:  {X: front.X + lx, Y: front.Y + ly, Angle: frontAngle},
		FrontRight: {X: front.X - lx, Y: front.Y - ly, Angle: frontAngle},
		RearLeft:   {X: p.X + lx, Y: p.Y + ly, Angle: rearAngle},
		RearRight:  {X: p.X - lx, Y: p.Y - ly, Angle: rearAngle},
	}
}

// Outline returns the body corners in drawing order: rear-left, front-left,
// front-right, rear-right.
func (g Geometry) Outline(p Pose) [4]Point {
	sinH, cosH := math.Sincos(p.Heading)
	half := g.TrackWidth / 2
	lx, ly := -half*sinH, half*cosH
	fx, fy := g.Wheelbase*cosH, g.Wheelbase*sinH

	return [4]Point{
		{X: p.X + lx, Y: p.Y + ly},
		{X: p.X + fx + lx, Y: p.Y + fy + ly},
		{X: p.X + fx - lx, Y: p.Y + fy - ly},
		{X: p.X - lx, Y: p.Y - ly},
	}
}

// AckermannAngles splits an effective steering angle into the individual
// front-wheel angles so that both wheel perpendiculars meet the rear-axle
// line at the same turning center. For steer > 0 (left turn) the left wheel
// is the inner one and turns sharper. Returns (left, right); both equal
// steer when it is zero.
func (g Geometry) AckermannAngles(steer float64) (left, right float64) {
	t := math.Tan(steer)
	if t == 0 {
		return steer, steer
	}
	half := g.TrackWidth / 2
	left = math.Atan(g.Wheelbase * t / (g.Wheelbase - half*t))
	right = math.Atan(g.Wheelbase * t / (g.Wheelbase + half*t))
	return left, right
}

// TurnRadius returns the distance from the rear-axle midpoint to the turning
// center, or +Inf when driving straight. Sign follows the steering angle.
func (g Geometry) TurnRadius(steer float64) float64 {
	t := math.Tan(steer)
	if t == 0 {
		return math.Inf(1)
	}
	return g.Wheelbase / t
}
