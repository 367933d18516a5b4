package timeline

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestStateMachine(t *testing.T) {
	Convey("Given a paused machine", t, func() {
		clock := newFakeClock()
		m := NewStateMachine(clock, Paused, DefaultParams())

		var transitions [][2]Mode
		m.OnTransition = func(from, to Mode) {
			transitions = append(transitions, [2]Mode{from, to})
		}

		Convey("Entering and exiting Interacting should round-trip", func() {
			So(m.EnterInteracting(), ShouldBeTrue)
			So(m.Mode(), ShouldEqual, Interacting)
			So(m.PriorMode(), ShouldEqual, Paused)
			So(clock.playing, ShouldBeFalse)

			So(m.ExitInteracting(), ShouldBeTrue)
			So(m.Mode(), ShouldEqual, Paused)
			So(transitions, ShouldResemble, [][2]Mode{{Paused, Interacting}, {Interacting, Paused}})
		})

		Convey("Entering Interacting twice should be rejected", func() {
			So(m.EnterInteracting(), ShouldBeTrue)
			So(m.EnterInteracting(), ShouldBeFalse)
			So(m.PriorMode(), ShouldEqual, Paused)
		})

		Convey("Exiting without interacting should be rejected", func() {
			So(m.ExitInteracting(), ShouldBeFalse)
			So(m.Mode(), ShouldEqual, Paused)
			So(transitions, ShouldBeEmpty)
		})

		Convey("Speed preview should play at the speed rate and return to Paused", func() {
			So(m.BeginSpeed(), ShouldBeTrue)
			So(m.Mode(), ShouldEqual, SpeedScrubbing)
			So(clock.rate, ShouldEqual, 2)
			So(clock.playing, ShouldBeTrue)
			snapshot, ok := m.PreSpeedMode()
			So(ok, ShouldBeTrue)
			So(snapshot, ShouldEqual, Paused)

			So(m.EndSpeed(), ShouldBeTrue)
			So(m.Mode(), ShouldEqual, Paused)
			So(clock.rate, ShouldEqual, 1)
			So(clock.playing, ShouldBeFalse)
			_, ok = m.PreSpeedMode()
			So(ok, ShouldBeFalse)
		})

		Convey("Ending speed preview that never began should be rejected", func() {
			So(m.EndSpeed(), ShouldBeFalse)
			So(clock.calls, ShouldBeEmpty)
		})

		Convey("Toggling should flip between Paused and Playing", func() {
			So(m.TogglePlayback(), ShouldBeTrue)
			So(m.Mode(), ShouldEqual, Playing)
			So(m.IsPlaying(), ShouldBeTrue)
			So(m.TogglePlayback(), ShouldBeTrue)
			So(m.Mode(), ShouldEqual, Paused)
		})

		Convey("Toggling while interacting should be rejected", func() {
			m.EnterInteracting()
			So(m.TogglePlayback(), ShouldBeFalse)
			So(m.Mode(), ShouldEqual, Interacting)
		})
	})

	Convey("Given a playing machine", t, func() {
		clock := newFakeClock()
		m := NewStateMachine(clock, Playing, DefaultParams())

		Convey("A drag should pause and then resume playback", func() {
			m.EnterInteracting()
			So(clock.playing, ShouldBeFalse)
			m.ExitInteracting()
			So(m.Mode(), ShouldEqual, Playing)
			So(clock.playing, ShouldBeTrue)
		})

		Convey("Speed preview should reset the rate on release", func() {
			m.BeginSpeed()
			m.EndSpeed()
			So(m.Mode(), ShouldEqual, Playing)
			So(clock.calls, ShouldResemble, []string{"rate 2", "play", "rate 1", "play"})
		})

		Convey("Speed preview should be rejected while interacting", func() {
			m.EnterInteracting()
			So(m.BeginSpeed(), ShouldBeFalse)
			So(m.Mode(), ShouldEqual, Interacting)
		})

		Convey("Playback ending should park the machine in Paused", func() {
			So(m.PlaybackEnded(), ShouldBeTrue)
			So(m.Mode(), ShouldEqual, Paused)
		})

		Convey("Playback ending during speed preview should re-target the snapshot", func() {
			m.BeginSpeed()
			So(m.PlaybackEnded(), ShouldBeTrue)
			So(m.Mode(), ShouldEqual, SpeedScrubbing)
			m.EndSpeed()
			So(m.Mode(), ShouldEqual, Paused)
		})
	})

	Convey("Given a machine that allows speed preview while interacting", t, func() {
		params := DefaultParams()
		params.AllowSpeedWhileInteracting = true
		clock := newFakeClock()
		m := NewStateMachine(clock, Playing, params)

		m.EnterInteracting()

		Convey("A long-press should take over the interaction", func() {
			So(m.BeginSpeed(), ShouldBeTrue)
			snapshot, _ := m.PreSpeedMode()
			So(snapshot, ShouldEqual, Interacting)

			Convey("and finishing the drag should re-target the snapshot", func() {
				So(m.ExitInteracting(), ShouldBeTrue)
				So(m.Mode(), ShouldEqual, SpeedScrubbing)
				snapshot, _ := m.PreSpeedMode()
				So(snapshot, ShouldEqual, Playing)

				m.EndSpeed()
				So(m.Mode(), ShouldEqual, Playing)
			})
		})
	})

	Convey("A machine created in a transient mode should rest in Paused", t, func() {
		m := NewStateMachine(newFakeClock(), SpeedScrubbing, DefaultParams())
		So(m.Mode(), ShouldEqual, Paused)
	})
}

func TestParseMode(t *testing.T) {
	Convey("ParseMode", t, func() {
		mode, err := ParseMode("Playing")
		So(err, ShouldBeNil)
		So(mode, ShouldEqual, Playing)

		mode, err = ParseMode("")
		So(err, ShouldBeNil)
		So(mode, ShouldEqual, Paused)

		_, err = ParseMode("interacting")
		So(err, ShouldNotBeNil)
	})
}
