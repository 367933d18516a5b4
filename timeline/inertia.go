package timeline

import (
	"math"

	"github.com/vidscrub/vidscrub/util"
)

// Inertia coasts the scrubber after a fling. Velocity is carried as a fraction of the duration
// per second and decays multiplicatively on every tick of a fixed-rate task.
type Inertia struct {
	params    Params
	scheduler Scheduler
	task      Task

	velocity float64
	position float64
	duration float64

	onUpdate   func(timeChange float64)
	onComplete func()
}

// NewInertia creates an idle simulator. onUpdate receives every time delta in seconds and
// onComplete fires once when a run stops on its own.
func NewInertia(scheduler Scheduler, params Params, onUpdate func(timeChange float64), onComplete func()) *Inertia {
	return &Inertia{
		params:     params,
		scheduler:  scheduler,
		onUpdate:   onUpdate,
		onComplete: onComplete,
	}
}

// Start cancels any running coast and begins a new one from position.
func (in *Inertia) Start(velocity, position, duration float64) {
	in.Stop()

	if duration <= 0 || velocity == 0 || math.IsNaN(velocity) || math.IsInf(velocity, 0) {
		return
	}

	in.velocity = velocity
	in.duration = duration
	in.position = util.Clamp(position, 0, duration)
	in.task = in.scheduler.Every(in.params.TickInterval, in.step)
}

// Stop cancels the coast without completing it.
func (in *Inertia) Stop() {
	if in.task != nil {
		in.task.Stop()
		in.task = nil
	}
	in.velocity = 0
}

// Running reports whether a coast is in flight.
func (in *Inertia) Running() bool {
	return in.task != nil
}

// Velocity returns the carried velocity in fractions of the duration per second.
func (in *Inertia) Velocity() float64 {
	return in.velocity
}

func (in *Inertia) step() {
	if in.task == nil {
		return
	}

	in.velocity *= in.decayRate()

	fraction := in.velocity * in.params.TickInterval.Seconds()
	change := fraction * in.duration
	in.position = util.Clamp(in.position+change, 0, in.duration)

	if in.onUpdate != nil {
		in.onUpdate(change)
	}

	// onUpdate may have cancelled the run.
	if in.task == nil {
		return
	}

	if math.Abs(fraction) < in.params.StopThreshold || in.position <= 0 || in.position >= in.duration {
		in.Stop()
		if in.onComplete != nil {
			in.onComplete()
		}
	}
}

// decayRate speeds up the decay inside the boundary zone for a soft landing.
func (in *Inertia) decayRate() float64 {
	nearest := math.Min(in.position, in.duration-in.position)
	if nearest < in.params.BoundaryZone*in.duration {
		return in.params.DecayRate * in.params.BoundaryDecayFactor
	}
	return in.params.DecayRate
}
