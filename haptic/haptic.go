// Package haptic implements feedback sinks for the scrub timeline.
//
// A terminal has no actuator, so events become short system beeps, log lines or
// visual pulses. Every sink is fire-and-forget: no method blocks the caller.
package haptic

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/vidscrub/vidscrub/timeline"
)

// Kind names the feedback events the timeline emits.
type Kind int

const (
	DragStart Kind = iota
	DragEnd
	Boundary
	Periodic
)

func (k Kind) String() string {
	switch k {
	case DragStart:
		return "drag_start"
	case DragEnd:
		return "drag_end"
	case Boundary:
		return "boundary"
	case Periodic:
		return "periodic"
	default:
		return "unknown"
	}
}

// Event is a single feedback emission. Intensity is only meaningful for Periodic.
type Event struct {
	Kind      Kind    `json:"kind"`
	Intensity float64 `json:"intensity,omitempty"`
}

func (e Event) String() string {
	if e.Kind == Periodic {
		return fmt.Sprintf("%s(%.2f)", e.Kind, e.Intensity)
	}
	return e.Kind.String()
}

// Func adapts a plain function to timeline.HapticSink.
type Func func(Event)

func (f Func) DragStart()       { f(Event{Kind: DragStart}) }
func (f Func) DragEnd()         { f(Event{Kind: DragEnd}) }
func (f Func) BoundaryReached() { f(Event{Kind: Boundary}) }
func (f Func) PeriodicFeedback(intensity float64) {
	f(Event{Kind: Periodic, Intensity: intensity})
}

// Nop discards every event.
var Nop timeline.HapticSink = Func(func(Event) {})

// Multi fans every event out to all sinks in order.
func Multi(sinks ...timeline.HapticSink) timeline.HapticSink {
	sinks = lo.Filter(sinks, func(s timeline.HapticSink, _ int) bool { return s != nil })

	return Func(func(e Event) {
		lo.ForEach(sinks, func(s timeline.HapticSink, _ int) {
			Emit(s, e)
		})
	})
}

// Emit delivers e to sink through the matching HapticSink method.
func Emit(sink timeline.HapticSink, e Event) {
	switch e.Kind {
	case DragStart:
		sink.DragStart()
	case DragEnd:
		sink.DragEnd()
	case Boundary:
		sink.BoundaryReached()
	case Periodic:
		sink.PeriodicFeedback(e.Intensity)
	}
}

// Available lists the sink names accepted by New.
func Available() []string {
	return []string{"bell", "log", "none"}
}

// New builds the sink configured by name.
func New(name string) (timeline.HapticSink, error) {
	switch strings.ToLower(name) {
	case "bell":
		return NewBell(), nil
	case "log":
		return Log{}, nil
	case "none", "":
		return Nop, nil
	default:
		return nil, fmt.Errorf("unknown haptics sink %q, available: %s", name, strings.Join(Available(), ", "))
	}
}
