package sim

import (
	"context"

	"github.com/emirelesg/ackersim/internal/vehicle"
)

// Snapshot is the read-only view handed to renderers and observers after
// each tick.
type Snapshot struct {
	Pose     vehicle.Pose
	Geometry vehicle.Geometry
	Steer    float64
	Speed    float64
	Elapsed  float64
	State    RunState
}

// Observer receives a snapshot after every tick that advanced the vehicle.
type Observer interface {
	OnTick(s Snapshot)
}

// Options tune how commands translate into control changes.
type Options struct {
	// SteerStep is the per-command steering increment in radians.
	SteerStep float64
	// SpeedStep is the per-command speed increment.
	SpeedStep float64
	// InitialSpeed is applied at construction and on reset.
	InitialSpeed float64
	// Centering relaxes the steering angle toward zero on every running
	// tick when positive, at this rate in rad/s. Zero disables it and the
	// angle holds where the user left it.
	Centering float64
}

// Controller owns the run state and is the only gate through which the
// vehicle pose advances. All of its methods are meant to be called from a
// single goroutine, interleaved by the external run loop.
type Controller struct {
	model     *vehicle.Kinematic
	opts      Options
	state     RunState
	elapsed   float64
	observers []Observer
}

func NewController(model *vehicle.Kinematic, opts Options) *Controller {
	if opts.SteerStep == 0 {
		opts.SteerStep = 5 * degree
	}
	if opts.SpeedStep == 0 {
		opts.SpeedStep = 0.5
	}
	c := &Controller{model: model, opts: opts, state: Stopped}
	c.model.Controls().SetSpeed(opts.InitialSpeed)
	return c
}

const degree = 0.017453292519943295

func (c *Controller) State() RunState          { return c.state }
func (c *Controller) Elapsed() float64         { return c.elapsed }
func (c *Controller) Model() *vehicle.Kinematic { return c.model }

func (c *Controller) AddObserver(o Observer) {
	c.observers = append(c.observers, o)
}

// HandleCommand applies a discrete command. It reports whether the command
// asks the run loop to terminate; Quit is recognized and forwarded, never
// stored as a state.
func (c *Controller) HandleCommand(cmd Command) (quit bool) {
	switch cmd {
	case SteerLeft:
		c.model.Controls().AdjustSteer(c.opts.SteerStep)
	case SteerRight:
		c.model.Controls().AdjustSteer(-c.opts.SteerStep)
	case SpeedUp:
		c.model.Controls().AdjustSpeed(c.opts.SpeedStep)
	case SpeedDown:
		c.model.Controls().AdjustSpeed(-c.opts.SpeedStep)
	case ToggleRun:
		if c.state == Running {
			c.state = Stopped
		} else {
			c.state = Running
		}
	case Reset:
		c.reset()
	case Quit:
		return true
	}
	return false
}

// reset restores the origin pose and initial controls and always lands in
// Stopped, whatever the prior state.
func (c *Controller) reset() {
	c.model.Reset()
	c.model.Controls().SetSpeed(c.opts.InitialSpeed)
	c.model.Controls().SetSteer(0)
	c.elapsed = 0
	c.state = Stopped
}

// Tick advances the vehicle by dt when running; while stopped it is a
// no-op, which makes "stop" a pause rather than a cancellation.
func (c *Controller) Tick(dt float64) {
	if c.state != Running || dt <= 0 {
		return
	}
	if r := c.opts.Centering; r > 0 {
		c.center(r * dt)
	}
	c.model.Step(dt)
	c.elapsed += dt
	if len(c.observers) > 0 {
		snap := c.Snapshot()
		for _, o := range c.observers {
			o.OnTick(snap)
		}
	}
}

// center walks the steering angle toward zero by at most da.
func (c *Controller) center(da float64) {
	steer := c.model.Controls().Steer()
	switch {
	case steer > da:
		c.model.Controls().SetSteer(steer - da)
	case steer < -da:
		c.model.Controls().SetSteer(steer + da)
	default:
		c.model.Controls().SetSteer(0)
	}
}

func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Pose:     c.model.Pose(),
		Geometry: c.model.Geometry(),
		Steer:    c.model.Controls().Steer(),
		Speed:    c.model.Controls().Speed(),
		Elapsed:  c.elapsed,
		State:    c.state,
	}
}

// Run drives a headless fixed-step simulation for the given duration,
// recording every snapshot. The controller is switched to Running for the
// run and back to Stopped afterwards.
func (c *Controller) Run(ctx context.Context, dt, duration float64) (*Trace, error) {
	if dt <= 0 {
		return nil, ErrInvalidTimestep
	}
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}

	steps := int(duration / dt)
	trace := NewTrace(steps + 1)
	trace.Record(c.Snapshot())

	c.state = Running
	defer func() { c.state = Stopped }()

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return trace, ctx.Err()
		default:
		}

		c.Tick(dt)
		if !c.model.Pose().IsValid() {
			return trace, ErrDiverged
		}
		trace.Record(c.Snapshot())
	}

	return trace, nil
}
