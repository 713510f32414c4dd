package sim

// Command is a discrete control event from the input layer. The binding
// from physical keys to commands lives with the renderer; the controller
// only sees these.
type Command int

const (
	SteerLeft Command = iota
	SteerRight
	SpeedUp
	SpeedDown
	ToggleRun
	Reset
	Quit
)

func (c Command) String() string {
	switch c {
	case SteerLeft:
		return "steer_left"
	case SteerRight:
		return "steer_right"
	case SpeedUp:
		return "speed_up"
	case SpeedDown:
		return "speed_down"
	case ToggleRun:
		return "toggle_run"
	case Reset:
		return "reset"
	case Quit:
		return "quit"
	}
	return "unknown"
}

// RunState gates whether ticks advance the vehicle.
type RunState int

const (
	Stopped RunState = iota
	Running
)

func (s RunState) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}
