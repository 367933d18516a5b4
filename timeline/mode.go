// Package timeline implements the interactive scrub timeline: the playback state machine,
// the drag-velocity tracker and the inertial coast that follows a fling.
package timeline

import (
	"fmt"
	"strings"
)

// Mode is the authoritative interaction mode of the playback surface.
type Mode int

const (
	Paused Mode = iota
	Playing
	Interacting
	SpeedScrubbing
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Paused:
		return "Paused"
	case Playing:
		return "Playing"
	case Interacting:
		return "Interacting"
	case SpeedScrubbing:
		return "SpeedScrubbing"
	default:
		return "Unknown"
	}
}

// ParseMode resolves a resting mode by name, case-insensitively.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(name) {
	case "paused", "":
		return Paused, nil
	case "playing":
		return Playing, nil
	default:
		return Paused, fmt.Errorf("unknown initial mode %q, expected playing or paused", name)
	}
}

// IsPlayback reports whether the mode is one of the resting playback modes.
func (m Mode) IsPlayback() bool {
	return m == Playing || m == Paused
}

// Tolerance selects how precisely a seek must land.
type Tolerance int

const (
	// Exact is used for committed seeks.
	Exact Tolerance = iota
	// Loose lets the backend round to a nearby keyframe, used while previewing.
	Loose
)

func (t Tolerance) String() string {
	if t == Loose {
		return "loose"
	}
	return "exact"
}

// MediaClock owns the true playback position. Every call is fire-and-forget.
type MediaClock interface {
	Play()
	Pause()
	SetRate(multiplier float64)
	Seek(seconds float64, tolerance Tolerance)
}

// HapticSink receives best-effort feedback events.
type HapticSink interface {
	DragStart()
	DragEnd()
	BoundaryReached()
	PeriodicFeedback(intensity float64)
}
