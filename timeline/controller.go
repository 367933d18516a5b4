package timeline

import (
	"math"
	"time"

	"github.com/vidscrub/vidscrub/log"
	"github.com/vidscrub/vidscrub/util"
)

// periodicEpsilon absorbs float drift when a traversal lands exactly on a feedback interval.
const periodicEpsilon = 1e-9

// maxPeriodicPulses caps the periodic feedback emitted for a single position update.
const maxPeriodicPulses = 8

// DragSample tracks the pointer for the duration of one gesture.
type DragSample struct {
	LastPointerX        float64
	LastSampleAt        time.Time
	AccumulatedVelocity float64
}

// boundary identifies which end of the content the scrubber rests on.
type boundary int

const (
	noBoundary boundary = iota
	startBoundary
	endBoundary
)

// Controller owns the timeline model and the drag protocol. All methods must be called from a
// single execution context, the same one the scheduler delivers ticks on.
type Controller struct {
	params  Params
	clock   MediaClock
	haptics HapticSink
	machine *StateMachine
	inertia *Inertia

	currentTime float64
	duration    float64

	drag      *DragSample
	watermark float64
	landed    boundary
}

// NewController wires the state machine and the inertia simulator around the given collaborators.
func NewController(clock MediaClock, haptics HapticSink, scheduler Scheduler, params Params, initial Mode) *Controller {
	c := &Controller{
		params:  params,
		clock:   clock,
		haptics: haptics,
		machine: NewStateMachine(clock, initial, params),
	}
	c.inertia = NewInertia(scheduler, params, c.onInertiaUpdate, c.complete)
	c.landed = c.restingOn()
	return c
}

// Machine exposes the state machine, mainly to observe transitions.
func (c *Controller) Machine() *StateMachine {
	return c.machine
}

func (c *Controller) Mode() Mode {
	return c.machine.Mode()
}

func (c *Controller) CurrentTime() float64 {
	return c.currentTime
}

func (c *Controller) Duration() float64 {
	return c.duration
}

func (c *Controller) Params() Params {
	return c.params
}

// Dragging reports whether a drag gesture is in progress.
func (c *Controller) Dragging() bool {
	return c.drag != nil
}

// Coasting reports whether an inertial coast is in flight.
func (c *Controller) Coasting() bool {
	return c.inertia.Running()
}

// Scrubbing reports whether the model is locked against media clock updates.
func (c *Controller) Scrubbing() bool {
	return c.drag != nil || c.inertia.Running() || c.machine.Mode() == Interacting
}

// Progress returns the played fraction in [0, 1].
func (c *Controller) Progress() float64 {
	if c.duration <= 0 {
		return 0
	}
	return c.currentTime / c.duration
}

// TimelineWidth returns the length of the whole track in pixels.
func (c *Controller) TimelineWidth() float64 {
	return c.duration * c.params.PixelsPerSecond
}

// Offset returns the horizontal translation of the track that keeps the playhead centred in a
// view of the given width.
func (c *Controller) Offset(viewWidth float64) float64 {
	if c.duration <= 0 {
		return 0
	}
	return viewWidth/2 - c.currentTime*c.params.PixelsPerSecond
}

// OnDragStart begins a drag. A second start while a drag is active is ignored.
func (c *Controller) OnDragStart(pointerX float64, now time.Time) {
	if c.drag != nil {
		return
	}

	c.inertia.Stop()

	// A coast keeps the machine in Interacting, so a new drag continues the same session.
	if c.machine.Mode() != Interacting && !c.machine.EnterInteracting() {
		return
	}

	c.drag = &DragSample{LastPointerX: pointerX, LastSampleAt: now}
	c.landed = c.restingOn()
	c.haptics.DragStart()
}

// OnDragMove scrubs by the pointer motion since the previous sample.
func (c *Controller) OnDragMove(pointerX float64, now time.Time) {
	if c.drag == nil {
		log.Debug("timeline: drag move without start")
		c.OnDragStart(pointerX, now)
		return
	}

	dx := c.sample(pointerX, now)
	c.advance(c.secondsFor(dx), Loose)
}

// OnDragEnd finishes the gesture and either coasts or restores the prior mode.
func (c *Controller) OnDragEnd(pointerX float64, now time.Time) {
	drag := c.drag
	if drag == nil {
		return
	}

	elapsed := now.Sub(drag.LastSampleAt)
	dx := c.sample(pointerX, now)
	if dx == 0 && elapsed > c.params.ReleaseWindow {
		drag.AccumulatedVelocity = 0
	}
	c.advance(c.secondsFor(dx), Loose)

	c.drag = nil
	c.haptics.DragEnd()

	if c.machine.Mode() == SpeedScrubbing {
		c.machine.ExitInteracting()
		return
	}

	velocity := drag.AccumulatedVelocity
	if fling := c.flingVelocity(velocity); math.Abs(velocity) >= c.params.MinVelocityForInertia && fling != 0 {
		log.Debugf("timeline: fling at %.1f px/s", velocity)
		c.inertia.Start(fling, c.currentTime, c.duration)
		if c.inertia.Running() {
			return
		}
	}

	c.complete()
}

// OnLongPressStart enters speed preview when the current mode allows it.
func (c *Controller) OnLongPressStart() {
	if !c.machine.BeginSpeed() {
		return
	}

	// Speed preview cut a coast short.
	if c.inertia.Running() {
		c.inertia.Stop()
		c.clock.Seek(c.currentTime, Exact)
		c.machine.ExitInteracting()
	}
}

// OnLongPressEnd leaves speed preview.
func (c *Controller) OnLongPressEnd() {
	c.machine.EndSpeed()
}

// TogglePlayback flips between playing and paused.
func (c *Controller) TogglePlayback() {
	c.machine.TogglePlayback()
}

// Restart seeks back to the beginning of the content.
func (c *Controller) Restart() {
	if c.Scrubbing() {
		return
	}

	c.currentTime = 0
	c.watermark = 0
	c.landed = c.restingOn()
	c.clock.Seek(0, Exact)
}

// Close cancels a coast in flight. The controller must not be used afterwards.
func (c *Controller) Close() {
	c.inertia.Stop()
}

// SyncTime mirrors the media clock position unless the user holds the timeline.
func (c *Controller) SyncTime(seconds float64) {
	if c.Scrubbing() || math.IsNaN(seconds) {
		return
	}

	c.currentTime = c.clamp(seconds)
	c.watermark = c.currentTime
	c.landed = c.restingOn()
}

// SyncDuration records a new content length. Non-finite or negative values mean unknown.
func (c *Controller) SyncDuration(seconds float64) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		seconds = 0
	}

	c.duration = seconds
	c.currentTime = c.clamp(c.currentTime)
	c.watermark = c.clamp(c.watermark)
	if !c.Scrubbing() {
		c.landed = c.restingOn()
	}
}

// PlaybackEnded parks playback at the start of the content. An end reported while paused, such as
// after a scrub onto the last frame, keeps the position.
func (c *Controller) PlaybackEnded() {
	if c.Scrubbing() || !c.machine.PlaybackEnded() {
		return
	}

	c.currentTime = 0
	c.watermark = 0
	c.landed = c.restingOn()
	c.clock.Seek(0, Exact)
}

// sample records the pointer position and returns the horizontal delta. The velocity is only
// refreshed when wall-clock time moved forward.
func (c *Controller) sample(pointerX float64, now time.Time) float64 {
	drag := c.drag
	dx := drag.LastPointerX - pointerX

	if dt := now.Sub(drag.LastSampleAt).Seconds(); dt > 0 {
		if dx != 0 {
			drag.AccumulatedVelocity = dx * c.params.VelocityMultiplier / dt
		}
		drag.LastSampleAt = now
	}
	drag.LastPointerX = pointerX

	return dx
}

func (c *Controller) secondsFor(dx float64) float64 {
	if c.duration <= 0 {
		return 0
	}
	return dx / c.params.PixelsPerSecond
}

// flingVelocity converts a release velocity in px/s to fractions of the duration per second.
func (c *Controller) flingVelocity(velocity float64) float64 {
	width := c.TimelineWidth()
	if width <= 0 {
		return 0
	}

	gain := c.params.FlingGain
	if c.params.DurationScaledGain {
		gain *= 5 * util.Clamp(20/c.duration, 2, 5)
	}

	return velocity * gain / width
}

func (c *Controller) onInertiaUpdate(timeChange float64) {
	c.advance(timeChange, Loose)
}

// advance moves the model, previews the new position and runs the haptic checks.
func (c *Controller) advance(timeChange float64, tolerance Tolerance) {
	if c.duration <= 0 || timeChange == 0 {
		return
	}

	previous := c.currentTime
	c.currentTime = c.clamp(previous + timeChange)

	if c.currentTime != previous {
		c.clock.Seek(c.currentTime, tolerance)
	}

	c.checkBoundary()
	c.checkPeriodic()
}

// restingOn reports the bound the scrubber currently sits on.
func (c *Controller) restingOn() boundary {
	if c.duration <= 0 {
		return noBoundary
	}

	switch c.currentTime {
	case 0:
		return startBoundary
	case c.duration:
		return endBoundary
	}
	return noBoundary
}

func (c *Controller) checkBoundary() {
	landed := c.restingOn()
	if landed != noBoundary && landed != c.landed {
		c.haptics.BoundaryReached()
	}
	c.landed = landed
}

func (c *Controller) checkPeriodic() {
	interval := c.params.PeriodicFeedbackInterval
	if interval <= 0 {
		return
	}

	distance := c.currentTime - c.watermark
	crossed := math.Floor((math.Abs(distance) + periodicEpsilon) / interval)
	if crossed < 1 {
		return
	}

	c.watermark += math.Copysign(crossed*interval, distance)
	for range int(math.Min(crossed, maxPeriodicPulses)) {
		c.haptics.PeriodicFeedback(c.params.PeriodicIntensity)
	}
}

// complete ends the interaction: the final position is committed and the prior mode restored.
func (c *Controller) complete() {
	c.inertia.Stop()
	c.clock.Seek(c.currentTime, Exact)
	c.machine.ExitInteracting()
}

func (c *Controller) clamp(seconds float64) float64 {
	return util.Clamp(seconds, 0, c.duration)
}
