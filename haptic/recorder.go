package haptic

import "github.com/samber/lo"

// Recorder keeps every event in order. It is not safe for concurrent use, which matches the
// single loop the timeline runs on.
type Recorder struct {
	Events []Event
}

func (r *Recorder) DragStart()       { r.Events = append(r.Events, Event{Kind: DragStart}) }
func (r *Recorder) DragEnd()         { r.Events = append(r.Events, Event{Kind: DragEnd}) }
func (r *Recorder) BoundaryReached() { r.Events = append(r.Events, Event{Kind: Boundary}) }
func (r *Recorder) PeriodicFeedback(intensity float64) {
	r.Events = append(r.Events, Event{Kind: Periodic, Intensity: intensity})
}

// Count returns how many events of kind were recorded.
func (r *Recorder) Count(kind Kind) int {
	return lo.CountBy(r.Events, func(e Event) bool { return e.Kind == kind })
}

// Since returns the events recorded after the first n.
func (r *Recorder) Since(n int) []Event {
	if n >= len(r.Events) {
		return nil
	}
	return r.Events[n:]
}

// Reset forgets every recorded event.
func (r *Recorder) Reset() {
	r.Events = nil
}
