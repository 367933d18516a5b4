package timeline

import "fmt"

type seekCall struct {
	seconds   float64
	tolerance Tolerance
}

// fakeClock records every command the timeline sends to the media backend.
type fakeClock struct {
	calls   []string
	seeks   []seekCall
	playing bool
	rate    float64
}

func newFakeClock() *fakeClock {
	return &fakeClock{rate: 1}
}

func (c *fakeClock) Play() {
	c.playing = true
	c.calls = append(c.calls, "play")
}

func (c *fakeClock) Pause() {
	c.playing = false
	c.calls = append(c.calls, "pause")
}

func (c *fakeClock) SetRate(multiplier float64) {
	c.rate = multiplier
	c.calls = append(c.calls, fmt.Sprintf("rate %g", multiplier))
}

func (c *fakeClock) Seek(seconds float64, tolerance Tolerance) {
	c.seeks = append(c.seeks, seekCall{seconds: seconds, tolerance: tolerance})
}

func (c *fakeClock) lastSeek() seekCall {
	if len(c.seeks) == 0 {
		return seekCall{seconds: -1}
	}
	return c.seeks[len(c.seeks)-1]
}

func (c *fakeClock) reset() {
	c.calls = nil
	c.seeks = nil
}

// fakeHaptics counts feedback per kind.
type fakeHaptics struct {
	dragStarts, dragEnds, boundaries, periodic int
	intensities                                []float64
}

func (h *fakeHaptics) DragStart()       { h.dragStarts++ }
func (h *fakeHaptics) DragEnd()         { h.dragEnds++ }
func (h *fakeHaptics) BoundaryReached() { h.boundaries++ }
func (h *fakeHaptics) PeriodicFeedback(intensity float64) {
	h.periodic++
	h.intensities = append(h.intensities, intensity)
}
