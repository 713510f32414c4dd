package sim

import "github.com/emirelesg/ackersim/internal/vehicle"

// Trace is the recorded history of a run: one sample per tick, parallel
// slices in tick order.
type Trace struct {
	Times []float64
	Poses []vehicle.Pose
	Steer []float64
	Speed []float64
}

func NewTrace(capacity int) *Trace {
	return &Trace{
		Times: make([]float64, 0, capacity),
		Poses: make([]vehicle.Pose, 0, capacity),
		Steer: make([]float64, 0, capacity),
		Speed: make([]float64, 0, capacity),
	}
}

func (t *Trace) Record(s Snapshot) {
	t.Times = append(t.Times, s.Elapsed)
	t.Poses = append(t.Poses, s.Pose)
	t.Steer = append(t.Steer, s.Steer)
	t.Speed = append(t.Speed, s.Speed)
}

func (t *Trace) Len() int { return len(t.Times) }

// Final returns the last recorded pose, or the origin for an empty trace.
func (t *Trace) Final() vehicle.Pose {
	if len(t.Poses) == 0 {
		return vehicle.Origin()
	}
	return t.Poses[len(t.Poses)-1]
}

// OnTick lets a Trace double as an Observer on a live controller.
func (t *Trace) OnTick(s Snapshot) { t.Record(s) }
