package timeline

import (
	"errors"
	"fmt"
	"time"
)

// Params holds every tunable of the timeline. Build it with DefaultParams and override fields.
type Params struct {
	// PixelsPerSecond maps horizontal distance to content time.
	PixelsPerSecond float64
	// VelocityMultiplier is the drag-to-fling gain applied to measured pointer velocity.
	VelocityMultiplier float64
	// MinVelocityForInertia is the release speed (px/s) required to start a coast.
	MinVelocityForInertia float64
	// DecayRate is the per-tick multiplicative velocity decay, in (0, 1).
	DecayRate float64
	// BoundaryZone is the fraction of the duration near either end where decay speeds up.
	BoundaryZone float64
	// BoundaryDecayFactor scales DecayRate inside the boundary zone.
	BoundaryDecayFactor float64
	// StopThreshold is the per-tick movement, as a fraction of the duration, below which a coast ends.
	StopThreshold float64
	TickInterval  time.Duration
	// PeriodicFeedbackInterval is the content distance in seconds between periodic haptics.
	PeriodicFeedbackInterval float64
	PeriodicIntensity        float64
	// SpeedRate is the playback rate used while a long-press is held.
	SpeedRate float64
	// FlingGain scales the release velocity handed to the coast.
	FlingGain float64
	// DurationScaledGain boosts the fling for short clips by 5 × clamp(20/duration, 2, 5).
	DurationScaledGain bool
	// ReleaseWindow is how long a motionless pointer keeps its last velocity before release.
	ReleaseWindow time.Duration
	// AllowSpeedWhileInteracting lets a long-press interrupt a drag or a coast.
	AllowSpeedWhileInteracting bool
}

// DefaultParams returns the reference tuning.
func DefaultParams() Params {
	return Params{
		PixelsPerSecond:          50,
		VelocityMultiplier:       1.5,
		MinVelocityForInertia:    200,
		DecayRate:                0.85,
		BoundaryZone:             0.1,
		BoundaryDecayFactor:      0.8,
		StopThreshold:            0.001,
		TickInterval:             time.Second / 60,
		PeriodicFeedbackInterval: 5,
		PeriodicIntensity:        0.5,
		SpeedRate:                2,
		FlingGain:                1,
		ReleaseWindow:            100 * time.Millisecond,
	}
}

// MinPeriodicFeedbackInterval is the shortest accepted distance between periodic pulses.
const MinPeriodicFeedbackInterval = 0.01

// Validate reports the first parameter that would break the simulation.
func (p Params) Validate() error {
	switch {
	case p.PixelsPerSecond <= 0:
		return errors.New("pixels per second must be positive")
	case p.VelocityMultiplier <= 0:
		return errors.New("velocity multiplier must be positive")
	case p.MinVelocityForInertia < 0:
		return errors.New("minimum fling velocity must not be negative")
	case p.DecayRate <= 0 || p.DecayRate >= 1:
		return fmt.Errorf("decay rate must be in (0, 1), got %v", p.DecayRate)
	case p.BoundaryZone < 0 || p.BoundaryZone > 0.5:
		return fmt.Errorf("boundary zone must be in [0, 0.5], got %v", p.BoundaryZone)
	case p.BoundaryDecayFactor <= 0 || p.BoundaryDecayFactor > 1:
		return fmt.Errorf("boundary decay factor must be in (0, 1], got %v", p.BoundaryDecayFactor)
	case p.StopThreshold <= 0:
		return errors.New("stop threshold must be positive")
	case p.TickInterval <= 0:
		return errors.New("tick interval must be positive")
	case p.PeriodicFeedbackInterval < 0:
		return errors.New("periodic feedback interval must not be negative")
	case p.PeriodicFeedbackInterval > 0 && p.PeriodicFeedbackInterval < MinPeriodicFeedbackInterval:
		return fmt.Errorf("periodic feedback interval must be 0 or at least %v seconds, got %v", MinPeriodicFeedbackInterval, p.PeriodicFeedbackInterval)
	case p.SpeedRate <= 0:
		return errors.New("speed rate must be positive")
	case p.FlingGain < 0:
		return errors.New("fling gain must not be negative")
	case p.ReleaseWindow < 0:
		return errors.New("release window must not be negative")
	}
	return nil
}
