package timeline

import (
	"math"
	"math/rand"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return epoch.Add(time.Duration(ms) * time.Millisecond)
}

type rig struct {
	c         *Controller
	clock     *fakeClock
	haptics   *fakeHaptics
	scheduler *ManualScheduler
	params    Params
}

func newRig(initial Mode, duration float64, tune func(*Params)) *rig {
	params := DefaultParams()
	if tune != nil {
		tune(&params)
	}

	r := &rig{
		clock:     newFakeClock(),
		haptics:   &fakeHaptics{},
		scheduler: &ManualScheduler{},
		params:    params,
	}
	r.c = NewController(r.clock, r.haptics, r.scheduler, params, initial)
	r.c.SyncDuration(duration)
	return r
}

// fling drags 500 px to the left in half a second and releases at 1000 px/s.
func (r *rig) fling() {
	r.c.OnDragStart(500, at(0))
	r.c.OnDragMove(250, at(250))
	r.c.OnDragEnd(0, at(500))
}

func unitMultiplier(p *Params) {
	p.VelocityMultiplier = 1
}

func TestControllerScenario(t *testing.T) {
	Convey("Given a paused 60 second clip at 50 px/s", t, func() {
		r := newRig(Paused, 60, unitMultiplier)

		Convey("Dragging 500 px left over half a second should scrub to 10 s and coast", func() {
			r.c.OnDragStart(500, at(0))
			So(r.c.Mode(), ShouldEqual, Interacting)
			So(r.c.Dragging(), ShouldBeTrue)
			So(r.clock.playing, ShouldBeFalse)

			r.c.OnDragMove(250, at(250))
			So(r.c.CurrentTime(), ShouldEqual, 5)
			So(r.clock.lastSeek(), ShouldResemble, seekCall{seconds: 5, tolerance: Loose})

			r.c.OnDragEnd(0, at(500))
			So(r.c.CurrentTime(), ShouldEqual, 10)
			So(r.c.Dragging(), ShouldBeFalse)
			So(r.c.Coasting(), ShouldBeTrue)
			So(r.c.Mode(), ShouldEqual, Interacting)
			So(r.c.inertia.Velocity(), ShouldAlmostEqual, 1000.0/r.c.TimelineWidth(), 1e-12)

			So(r.haptics.dragStarts, ShouldEqual, 1)
			So(r.haptics.dragEnds, ShouldEqual, 1)
			So(r.haptics.periodic, ShouldEqual, 2)
			So(r.haptics.intensities, ShouldResemble, []float64{0.5, 0.5})

			Convey("and the coast should settle inside the clip and restore Paused", func() {
				So(r.scheduler.Drain(r.params.TickInterval, 10*time.Second), ShouldBeTrue)

				bound := (1000.0 / r.c.TimelineWidth()) / (1 - r.params.DecayRate) * r.params.TickInterval.Seconds() * 60
				So(r.c.CurrentTime(), ShouldBeGreaterThan, 10)
				So(r.c.CurrentTime(), ShouldBeLessThanOrEqualTo, 10+bound)
				So(r.c.Coasting(), ShouldBeFalse)
				So(r.c.Mode(), ShouldEqual, Paused)
				So(r.clock.lastSeek(), ShouldResemble, seekCall{seconds: r.c.CurrentTime(), tolerance: Exact})
			})
		})
	})
}

func TestControllerModes(t *testing.T) {
	Convey("Given a playing clip", t, func() {
		r := newRig(Playing, 60, nil)

		Convey("A slow drag should pause and then resume playback", func() {
			r.c.OnDragStart(100, at(0))
			r.c.OnDragMove(95, at(1000))
			r.c.OnDragEnd(95, at(2000))

			So(r.c.Coasting(), ShouldBeFalse)
			So(r.c.Mode(), ShouldEqual, Playing)
			So(r.clock.calls, ShouldResemble, []string{"pause", "play"})
			So(r.c.CurrentTime(), ShouldAlmostEqual, 0.1, 1e-12)
			So(r.clock.lastSeek(), ShouldResemble, seekCall{seconds: r.c.CurrentTime(), tolerance: Exact})
		})

		Convey("A fling should resume playback only after the coast", func() {
			r.fling()
			So(r.clock.playing, ShouldBeFalse)
			r.scheduler.Drain(r.params.TickInterval, 10*time.Second)
			So(r.c.Mode(), ShouldEqual, Playing)
			So(r.clock.playing, ShouldBeTrue)
		})

		Convey("A second drag start should be ignored", func() {
			r.c.OnDragStart(100, at(0))
			r.c.OnDragStart(300, at(10))
			So(r.haptics.dragStarts, ShouldEqual, 1)
			r.c.OnDragMove(50, at(20))
			So(r.c.CurrentTime(), ShouldEqual, 1)
		})

		Convey("A move without a start should begin a drag without moving", func() {
			r.c.OnDragMove(100, at(0))
			So(r.c.Dragging(), ShouldBeTrue)
			So(r.c.CurrentTime(), ShouldEqual, 0)
			So(r.c.Mode(), ShouldEqual, Interacting)
		})

		Convey("An end without a start should be ignored", func() {
			r.c.OnDragEnd(100, at(0))
			So(r.haptics.dragEnds, ShouldEqual, 0)
			So(r.c.Mode(), ShouldEqual, Playing)
		})

		Convey("Toggling should pause", func() {
			r.c.TogglePlayback()
			So(r.c.Mode(), ShouldEqual, Paused)
			So(r.clock.playing, ShouldBeFalse)
		})

		Convey("Playback ending should rewind and pause", func() {
			r.c.SyncTime(59.9)
			r.c.PlaybackEnded()
			So(r.c.Mode(), ShouldEqual, Paused)
			So(r.c.CurrentTime(), ShouldEqual, 0)
			So(r.clock.lastSeek(), ShouldResemble, seekCall{seconds: 0, tolerance: Exact})
		})
	})
}

func TestControllerRelease(t *testing.T) {
	Convey("Given a paused clip with the default multiplier", t, func() {
		r := newRig(Paused, 60, nil)
		r.c.OnDragStart(500, at(0))
		r.c.OnDragMove(250, at(250))

		Convey("Holding still past the release window should drop the velocity", func() {
			r.c.OnDragEnd(250, at(400))
			So(r.c.Coasting(), ShouldBeFalse)
			So(r.c.Mode(), ShouldEqual, Paused)
		})

		Convey("Releasing inside the release window should keep the last velocity", func() {
			r.c.OnDragEnd(250, at(300))
			So(r.c.Coasting(), ShouldBeTrue)
			So(r.c.inertia.Velocity(), ShouldAlmostEqual, 1500.0/r.c.TimelineWidth(), 1e-12)
		})

		Convey("Releasing with no elapsed time should keep the last velocity and apply the motion", func() {
			r.c.OnDragEnd(200, at(250))
			So(r.c.CurrentTime(), ShouldEqual, 6)
			So(r.c.Coasting(), ShouldBeTrue)
			So(r.c.inertia.Velocity(), ShouldAlmostEqual, 1500.0/r.c.TimelineWidth(), 1e-12)
		})
	})

	Convey("Given a short clip with duration-scaled gain", t, func() {
		r := newRig(Paused, 10, func(p *Params) {
			p.VelocityMultiplier = 1
			p.DurationScaledGain = true
		})

		Convey("The fling should be boosted", func() {
			r.c.OnDragStart(100, at(0))
			r.c.OnDragMove(50, at(50))
			r.c.OnDragEnd(50, at(60))
			So(r.c.inertia.Velocity(), ShouldAlmostEqual, 1000.0*10/r.c.TimelineWidth(), 1e-9)
		})
	})
}

func TestControllerClamp(t *testing.T) {
	Convey("Random drags and flings should never leave the clip", t, func() {
		r := newRig(Paused, 60, nil)
		rnd := rand.New(rand.NewSource(7))
		inside := func() bool {
			return r.c.CurrentTime() >= 0 && r.c.CurrentTime() <= r.c.Duration()
		}

		now := 0
		for gesture := 0; gesture < 20; gesture++ {
			r.c.OnDragStart(rnd.Float64()*2000, at(now))
			for move := 0; move < 25; move++ {
				now += 16
				r.c.OnDragMove(rnd.Float64()*10000-5000, at(now))
				So(inside(), ShouldBeTrue)
			}
			now += 16
			r.c.OnDragEnd(rnd.Float64()*10000-5000, at(now))
			So(inside(), ShouldBeTrue)

			for ticks := 0; r.c.Coasting() && ticks < 1000; ticks++ {
				r.scheduler.Advance(r.params.TickInterval)
				So(inside(), ShouldBeTrue)
			}
			So(r.c.Coasting(), ShouldBeFalse)
			So(r.c.Mode(), ShouldEqual, Paused)
		}
	})
}

func TestControllerBoundary(t *testing.T) {
	Convey("Given a 10 second clip", t, func() {
		r := newRig(Paused, 10, nil)
		r.c.OnDragStart(1000, at(0))

		Convey("Pushing against a bound should report it once per crossing", func() {
			r.c.OnDragMove(0, at(100))
			So(r.c.CurrentTime(), ShouldEqual, 10)
			So(r.haptics.boundaries, ShouldEqual, 1)

			r.c.OnDragMove(-100, at(200))
			So(r.haptics.boundaries, ShouldEqual, 1)

			r.c.OnDragMove(100, at(300))
			So(r.c.CurrentTime(), ShouldEqual, 6)

			r.c.OnDragMove(-500, at(400))
			So(r.c.CurrentTime(), ShouldEqual, 10)
			So(r.haptics.boundaries, ShouldEqual, 2)

			r.c.OnDragMove(1000, at(500))
			So(r.c.CurrentTime(), ShouldEqual, 0)
			So(r.haptics.boundaries, ShouldEqual, 3)
		})
	})
}

func TestControllerPeriodicFeedback(t *testing.T) {
	Convey("A monotonic traversal should pulse once per interval regardless of step size", t, func() {
		for _, step := range []float64{6.25, 12.5, 25, 100} {
			for _, seconds := range []float64{23, 25} {
				r := newRig(Paused, 100, nil)
				x := seconds * r.params.PixelsPerSecond
				now := 0

				r.c.OnDragStart(x, at(now))
				for x > 0 {
					x = math.Max(x-step, 0)
					now += 16
					r.c.OnDragMove(x, at(now))
				}

				So(r.c.CurrentTime(), ShouldEqual, seconds)
				So(r.haptics.periodic, ShouldEqual, int(math.Floor(seconds/5)))
			}
		}
	})

	Convey("Given a clip scrubbed across several drags", t, func() {
		r := newRig(Paused, 100, nil)

		Convey("The watermark should survive drag boundaries", func() {
			r.c.OnDragStart(200, at(0))
			r.c.OnDragMove(0, at(1000))
			r.c.OnDragEnd(0, at(2000))
			So(r.haptics.periodic, ShouldEqual, 0)

			r.c.OnDragStart(200, at(3000))
			r.c.OnDragMove(0, at(4000))
			So(r.c.CurrentTime(), ShouldEqual, 8)
			So(r.haptics.periodic, ShouldEqual, 1)
		})

		Convey("Traversing backwards should pulse as well", func() {
			r.c.OnDragStart(1250, at(0))
			r.c.OnDragMove(0, at(1000))
			So(r.haptics.periodic, ShouldEqual, 5)

			r.c.OnDragMove(500, at(2000))
			So(r.c.CurrentTime(), ShouldEqual, 15)
			So(r.haptics.periodic, ShouldEqual, 7)
		})
	})
}

func TestControllerCancellation(t *testing.T) {
	Convey("Given a playing clip that is coasting", t, func() {
		r := newRig(Playing, 60, unitMultiplier)
		r.fling()
		r.scheduler.Advance(3 * r.params.TickInterval)
		So(r.c.Coasting(), ShouldBeTrue)

		Convey("A new drag should stop the coast and continue the interaction", func() {
			r.c.OnDragStart(300, at(600))
			So(r.c.Coasting(), ShouldBeFalse)
			So(r.c.Dragging(), ShouldBeTrue)
			So(r.c.Mode(), ShouldEqual, Interacting)
			So(r.c.Machine().PriorMode(), ShouldEqual, Playing)
			So(r.haptics.dragStarts, ShouldEqual, 2)

			frozen := r.c.CurrentTime()
			r.scheduler.Advance(time.Second)
			So(r.c.CurrentTime(), ShouldEqual, frozen)
			So(r.scheduler.Active(), ShouldEqual, 0)
			So(r.clock.calls, ShouldResemble, []string{"pause"})

			r.c.OnDragEnd(300, at(2000))
			So(r.c.Mode(), ShouldEqual, Playing)
			So(r.clock.calls, ShouldResemble, []string{"pause", "play"})
		})

		Convey("Clock updates should be ignored until the coast ends", func() {
			r.c.SyncTime(42)
			So(r.c.CurrentTime(), ShouldBeLessThan, 42)

			r.scheduler.Drain(r.params.TickInterval, 10*time.Second)
			r.c.SyncTime(42)
			So(r.c.CurrentTime(), ShouldEqual, 42)
		})

		Convey("Restart should be ignored while coasting", func() {
			before := r.c.CurrentTime()
			r.c.Restart()
			So(r.c.CurrentTime(), ShouldEqual, before)
		})

		Convey("A long-press should be rejected and the coast should continue", func() {
			r.c.OnLongPressStart()
			So(r.c.Mode(), ShouldEqual, Interacting)
			So(r.c.Coasting(), ShouldBeTrue)
		})
	})
}

func TestControllerSpeed(t *testing.T) {
	Convey("Given a playing clip", t, func() {
		r := newRig(Playing, 60, nil)

		Convey("A long-press should preview at double speed", func() {
			r.c.OnLongPressStart()
			So(r.c.Mode(), ShouldEqual, SpeedScrubbing)
			So(r.clock.rate, ShouldEqual, 2)

			Convey("and drags should be rejected meanwhile", func() {
				r.c.OnDragStart(100, at(0))
				So(r.c.Dragging(), ShouldBeFalse)
				So(r.haptics.dragStarts, ShouldEqual, 0)
			})

			Convey("and releasing should restore normal playback", func() {
				r.c.OnLongPressEnd()
				So(r.c.Mode(), ShouldEqual, Playing)
				So(r.clock.rate, ShouldEqual, 1)
			})
		})

		Convey("A long-press during a drag should be rejected", func() {
			r.c.OnDragStart(100, at(0))
			r.c.OnLongPressStart()
			So(r.c.Mode(), ShouldEqual, Interacting)
			So(r.clock.rate, ShouldEqual, 1)
		})
	})

	Convey("Given a paused clip that allows speed preview while interacting", t, func() {
		r := newRig(Paused, 60, func(p *Params) {
			p.VelocityMultiplier = 1
			p.AllowSpeedWhileInteracting = true
		})

		Convey("A long-press during a drag should take over without coasting", func() {
			r.c.OnDragStart(500, at(0))
			r.c.OnDragMove(250, at(250))
			r.c.OnLongPressStart()
			So(r.c.Mode(), ShouldEqual, SpeedScrubbing)

			r.c.OnDragEnd(0, at(500))
			So(r.c.Coasting(), ShouldBeFalse)
			So(r.c.Mode(), ShouldEqual, SpeedScrubbing)

			r.c.OnLongPressEnd()
			So(r.c.Mode(), ShouldEqual, Paused)
			So(r.clock.rate, ShouldEqual, 1)
		})

		Convey("A long-press during a coast should commit the position", func() {
			r.fling()
			r.scheduler.Advance(2 * r.params.TickInterval)
			r.c.OnLongPressStart()

			So(r.c.Coasting(), ShouldBeFalse)
			So(r.c.Mode(), ShouldEqual, SpeedScrubbing)
			So(r.clock.lastSeek(), ShouldResemble, seekCall{seconds: r.c.CurrentTime(), tolerance: Exact})

			snapshot, _ := r.c.Machine().PreSpeedMode()
			So(snapshot, ShouldEqual, Paused)
		})
	})
}

func TestControllerClockSync(t *testing.T) {
	Convey("Given a paused clip", t, func() {
		r := newRig(Paused, 60, nil)

		Convey("SyncTime should clamp into the clip", func() {
			r.c.SyncTime(100)
			So(r.c.CurrentTime(), ShouldEqual, 60)
			r.c.SyncTime(-1)
			So(r.c.CurrentTime(), ShouldEqual, 0)
			r.c.SyncTime(math.NaN())
			So(r.c.CurrentTime(), ShouldEqual, 0)
		})

		Convey("SyncTime should be ignored during a drag", func() {
			r.c.OnDragStart(100, at(0))
			r.c.SyncTime(30)
			So(r.c.CurrentTime(), ShouldEqual, 0)
		})

		Convey("A shorter duration should pull the position in", func() {
			r.c.SyncTime(45)
			r.c.SyncDuration(30)
			So(r.c.CurrentTime(), ShouldEqual, 30)
		})

		Convey("A non-finite duration should mean unknown", func() {
			r.c.SyncTime(45)
			r.c.SyncDuration(math.Inf(1))
			So(r.c.Duration(), ShouldEqual, 0)
			So(r.c.CurrentTime(), ShouldEqual, 0)
		})

		Convey("Restart should seek back to zero", func() {
			r.c.SyncTime(10)
			r.clock.reset()
			r.c.Restart()
			So(r.c.CurrentTime(), ShouldEqual, 0)
			So(r.clock.seeks, ShouldResemble, []seekCall{{seconds: 0, tolerance: Exact}})
		})

		Convey("Offset should keep the playhead centred", func() {
			r.c.SyncTime(10)
			So(r.c.Offset(400), ShouldEqual, -300)
			So(r.c.Progress(), ShouldAlmostEqual, 1.0/6, 1e-12)
		})
	})
}

func TestControllerUnknownDuration(t *testing.T) {
	Convey("Given a clip whose duration is unknown", t, func() {
		r := newRig(Paused, 0, nil)

		Convey("Dragging should be inert", func() {
			r.c.OnDragStart(500, at(0))
			r.c.OnDragMove(0, at(100))
			r.c.OnDragEnd(-500, at(200))

			So(r.c.CurrentTime(), ShouldEqual, 0)
			So(r.c.Coasting(), ShouldBeFalse)
			So(r.c.Mode(), ShouldEqual, Paused)
			So(r.haptics.boundaries, ShouldEqual, 0)
			So(r.haptics.periodic, ShouldEqual, 0)
			for _, seek := range r.clock.seeks {
				So(seek.tolerance, ShouldEqual, Exact)
			}
		})

		Convey("Geometry should collapse to zero", func() {
			So(r.c.Offset(400), ShouldEqual, 0)
			So(r.c.Progress(), ShouldEqual, 0)
			So(r.c.TimelineWidth(), ShouldEqual, 0)
		})
	})
}

func TestControllerEndOfContent(t *testing.T) {
	Convey("Given a paused 10 second clip scrubbed onto its last frame", t, func() {
		r := newRig(Paused, 10, nil)
		r.c.OnDragStart(1000, at(0))
		r.c.OnDragMove(0, at(1000))
		r.c.OnDragEnd(0, at(2000))

		So(r.c.Coasting(), ShouldBeFalse)
		So(r.c.CurrentTime(), ShouldEqual, 10)

		Convey("An end of file report should keep the scrub position", func() {
			r.c.PlaybackEnded()
			So(r.c.Mode(), ShouldEqual, Paused)
			So(r.c.CurrentTime(), ShouldEqual, 10)
			So(r.clock.lastSeek(), ShouldResemble, seekCall{seconds: 10, tolerance: Exact})
		})
	})
}

func TestControllerRestingBoundary(t *testing.T) {
	Convey("Given a paused 10 second clip resting on its start", t, func() {
		r := newRig(Paused, 10, nil)

		Convey("Drags pushing past the start should not report a boundary", func() {
			for i := range 2 {
				start := i * 2000
				r.c.OnDragStart(0, at(start))
				r.c.OnDragMove(100, at(start+100))
				r.c.OnDragEnd(100, at(start+1000))
			}

			So(r.c.CurrentTime(), ShouldEqual, 0)
			So(r.haptics.boundaries, ShouldEqual, 0)
		})

		Convey("Once synced onto the end", func() {
			r.c.SyncTime(10)

			Convey("pushing past the end should stay silent until it leaves and returns", func() {
				r.c.OnDragStart(100, at(0))
				r.c.OnDragMove(0, at(100))
				So(r.haptics.boundaries, ShouldEqual, 0)

				r.c.OnDragMove(100, at(200))
				So(r.c.CurrentTime(), ShouldBeLessThan, 10)
				r.c.OnDragMove(0, at(300))
				So(r.c.CurrentTime(), ShouldEqual, 10)
				So(r.haptics.boundaries, ShouldEqual, 1)
			})
		})
	})
}

func TestControllerPeriodicBurst(t *testing.T) {
	Convey("Given a periodic interval far below the drag step", t, func() {
		r := newRig(Paused, 4000, func(p *Params) {
			p.PeriodicFeedbackInterval = 1e-14
		})
		r.c.SyncTime(2000)

		Convey("One move should emit a bounded number of pulses", func() {
			r.c.OnDragStart(101, at(0))
			r.c.OnDragMove(100, at(16))
			So(r.haptics.periodic, ShouldEqual, maxPeriodicPulses)
		})
	})

	Convey("Given a one second interval", t, func() {
		r := newRig(Paused, 100, func(p *Params) {
			p.PeriodicFeedbackInterval = 1
		})

		Convey("A long jump should be capped and leave the watermark caught up", func() {
			r.c.OnDragStart(1000, at(0))
			r.c.OnDragMove(0, at(16))
			So(r.c.CurrentTime(), ShouldEqual, 20)
			So(r.haptics.periodic, ShouldEqual, maxPeriodicPulses)

			r.c.OnDragMove(-10, at(32))
			So(r.haptics.periodic, ShouldEqual, maxPeriodicPulses)
		})
	})
}

func TestControllerClose(t *testing.T) {
	Convey("Given a clip coasting after a fling", t, func() {
		r := newRig(Paused, 60, nil)
		r.fling()
		So(r.c.Coasting(), ShouldBeTrue)

		Convey("Closing should cancel the coast", func() {
			r.c.Close()
			So(r.c.Coasting(), ShouldBeFalse)
			So(r.scheduler.Active(), ShouldEqual, 0)
		})
	})
}

func TestParamsValidate(t *testing.T) {
	Convey("The defaults should be valid", t, func() {
		So(DefaultParams().Validate(), ShouldBeNil)
	})

	Convey("The periodic interval should be 0 or above the floor", t, func() {
		for interval, valid := range map[float64]bool{0: true, MinPeriodicFeedbackInterval: true, 1e-14: false, 0.001: false, -1: false} {
			params := DefaultParams()
			params.PeriodicFeedbackInterval = interval
			if valid {
				So(params.Validate(), ShouldBeNil)
			} else {
				So(params.Validate(), ShouldNotBeNil)
			}
		}
	})
}
