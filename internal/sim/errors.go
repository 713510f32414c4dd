package sim

import "errors"

var (
	// ErrInvalidTimestep indicates a non-positive dt for a headless run.
	ErrInvalidTimestep = errors.New("sim: timestep must be positive")

	// ErrInvalidDuration indicates a non-positive run duration.
	ErrInvalidDuration = errors.New("sim: duration must be positive")

	// ErrDiverged indicates the pose picked up a NaN or Inf component.
	ErrDiverged = errors.New("sim: pose diverged (NaN or Inf)")
)
