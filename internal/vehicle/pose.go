package vehicle

import "math"

// Pose is the vehicle's position and heading at an instant. X and Y locate
// the kinematic reference point (rear-axle midpoint by default), heading is
// in radians and always kept in (-pi, pi].
type Pose struct {
	X       float64
	Y       float64
	Heading float64
}

// Origin returns the pose a simulation starts and resets to.
func Origin() Pose {
	return Pose{}
}

func (p Pose) IsValid() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0) &&
		!math.IsNaN(p.Heading) && !math.IsInf(p.Heading, 0)
}

// NormalizeAngle wraps an angle into (-pi, pi].
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a > math.Pi {
		a -= 2 * math.Pi
	} else if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
