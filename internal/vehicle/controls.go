package vehicle

import "math"

// Limits bounds the control inputs. MaxSteer must stay strictly below pi/2:
// the heading-rate equation takes tan of the steering angle.
type Limits struct {
	MaxSteer float64
	MinSpeed float64
	MaxSpeed float64
}

// DefaultLimits allows +/-45 degrees of steering and 0..5 m/s of forward
// speed.
func DefaultLimits() Limits {
	return Limits{
		MaxSteer: math.Pi / 4,
		MinSpeed: 0,
		MaxSpeed: 5,
	}
}

// Controls holds the live control inputs. All mutation goes through the
// clamped setters, which is what keeps the steering angle inside
// [-MaxSteer, MaxSteer] at all times; the kinematic model only reads.
type Controls struct {
	speed  float64
	steer  float64
	limits Limits
}

func NewControls(limits Limits) *Controls {
	if limits.MaxSteer <= 0 || limits.MaxSteer >= math.Pi/2 {
		limits.MaxSteer = DefaultLimits().MaxSteer
	}
	return &Controls{limits: limits}
}

func (c *Controls) Speed() float64 { return c.speed }
func (c *Controls) Steer() float64 { return c.steer }
func (c *Controls) Limits() Limits { return c.limits }

// SetSpeed clamps to [MinSpeed, MaxSpeed].
func (c *Controls) SetSpeed(v float64) {
	c.speed = clamp(v, c.limits.MinSpeed, c.limits.MaxSpeed)
}

// SetSteer clamps to [-MaxSteer, MaxSteer]. Repeated out-of-range writes
// saturate at the bound.
func (c *Controls) SetSteer(a float64) {
	c.steer = clamp(a, -c.limits.MaxSteer, c.limits.MaxSteer)
}

// AdjustSpeed shifts the speed by dv, clamped.
func (c *Controls) AdjustSpeed(dv float64) {
	c.SetSpeed(c.speed + dv)
}

// AdjustSteer shifts the steering angle by da, clamped.
func (c *Controls) AdjustSteer(da float64) {
	c.SetSteer(c.steer + da)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
