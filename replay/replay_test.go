package replay

import (
	"bytes"
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidscrub/vidscrub/filesystem"
	"github.com/vidscrub/vidscrub/timeline"
)

const boundaryScript = `
duration = 30
initial = "paused"

[params]
pixels_per_second = 10
velocity_multiplier = 1

[[events]]
at = 1000
kind = "drag_end"
x = 200

[[events]]
at = 0
kind = "sync_time"
seconds = 5

[[events]]
at = 0
kind = "drag_start"
x = 0

[[events]]
at = 100
kind = "drag_move"
x = 100

[[events]]
at = 200
kind = "drag_move"
x = 200
`

func TestDefaultScenario(t *testing.T) {
	Convey("Given the reference scenario", t, func() {
		trace, err := Simulate(Default(), timeline.DefaultParams())
		So(err, ShouldBeNil)

		Convey("Every event gets a row and the coast gets the last one", func() {
			So(trace.Rows, ShouldHaveLength, 5)
			So(trace.Rows[0].Event, ShouldEqual, "drag_start")
			So(trace.Rows[0].Commands, ShouldResemble, []string{"pause"})
			So(trace.Rows[0].Haptics, ShouldResemble, []string{"drag_start"})
			So(trace.Rows[0].Mode, ShouldEqual, "Interacting")
		})

		Convey("The drag moves ten seconds with a pulse every five", func() {
			So(trace.Rows[1].Time, ShouldAlmostEqual, 5, 1e-9)
			So(trace.Rows[1].Commands, ShouldResemble, []string{"seek 5.000 loose"})
			So(trace.Rows[1].Haptics, ShouldResemble, []string{"periodic(0.50)"})
			So(trace.Rows[2].Time, ShouldAlmostEqual, 10, 1e-9)
		})

		Convey("The release starts a coast that settles paused", func() {
			release := trace.Rows[3]
			So(release.Event, ShouldEqual, "drag_end")
			So(release.Mode, ShouldEqual, "Interacting")

			coast := trace.Rows[4]
			So(coast.Event, ShouldEqual, "coast")
			So(coast.Mode, ShouldEqual, "Paused")
			So(coast.Commands[len(coast.Commands)-1], ShouldEqual, "pause")

			So(trace.Summary.Settled, ShouldBeTrue)
			So(trace.Summary.Mode, ShouldEqual, "Paused")
			So(trace.Summary.Time, ShouldBeGreaterThan, 10)
			So(trace.Summary.Time, ShouldBeLessThan, 15)
			So(trace.Summary.Haptics, ShouldResemble, map[string]int{"drag_start": 1, "periodic": 2, "drag_end": 1})
		})
	})
}

func TestBoundaryScenario(t *testing.T) {
	Convey("Given a drag that pushes past the start", t, func() {
		script, err := Parse([]byte(boundaryScript))
		So(err, ShouldBeNil)

		Convey("Events are ordered by time", func() {
			So(script.Events[0].Kind, ShouldEqual, SyncTime)
			So(script.Events[1].Kind, ShouldEqual, DragStart)
			So(script.Events[4].Kind, ShouldEqual, DragEnd)
		})

		trace, err := Simulate(script, timeline.DefaultParams())
		So(err, ShouldBeNil)

		Convey("The boundary fires once and a stale release does not coast", func() {
			So(trace.Summary.Haptics["boundary"], ShouldEqual, 1)
			So(trace.Summary.Time, ShouldEqual, 0)
			So(trace.Summary.Mode, ShouldEqual, "Paused")
			So(trace.Rows, ShouldHaveLength, 5)
		})
	})
}

func TestScriptValidation(t *testing.T) {
	Convey("Scripts are rejected when", t, func() {
		Convey("the TOML is malformed", func() {
			_, err := Parse([]byte("duration = ["))
			So(err, ShouldNotBeNil)
		})

		Convey("the duration is negative", func() {
			_, err := Parse([]byte("duration = -1"))
			So(err, ShouldNotBeNil)
		})

		Convey("the initial mode is not a resting mode", func() {
			_, err := Parse([]byte("duration = 1\ninitial = \"Interacting\""))
			So(err, ShouldNotBeNil)
		})

		Convey("an event kind is unknown", func() {
			_, err := Parse([]byte("duration = 1\n[[events]]\nat = 0\nkind = \"wiggle\""))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "wiggle")
		})

		Convey("an event is scheduled before the start", func() {
			_, err := Parse([]byte("duration = 1\n[[events]]\nat = -5\nkind = \"toggle\""))
			So(err, ShouldNotBeNil)
		})

		Convey("the tick rate is not positive", func() {
			_, err := Parse([]byte("duration = 1\n[params]\ntick_rate = 0"))
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Overrides that break the simulation fail the run", t, func() {
		script, err := Parse([]byte("duration = 1\n[params]\ndecay_rate = 1.5"))
		So(err, ShouldBeNil)

		_, err = Simulate(script, timeline.DefaultParams())
		So(err, ShouldNotBeNil)
	})
}

func TestOverrides(t *testing.T) {
	Convey("Given a script with overrides", t, func() {
		script, err := Parse([]byte(`
duration = 10
[params]
decay_rate = 0.9
tick_rate = 120
release_window_ms = 50
allow_speed_while_interacting = true
`))
		So(err, ShouldBeNil)

		params := script.Params.Apply(timeline.DefaultParams())

		Convey("Set keys replace the base and the rest is kept", func() {
			So(params.DecayRate, ShouldEqual, 0.9)
			So(params.TickInterval.Seconds(), ShouldAlmostEqual, 1.0/120, 1e-9)
			So(params.ReleaseWindow.Milliseconds(), ShouldEqual, 50)
			So(params.AllowSpeedWhileInteracting, ShouldBeTrue)
			So(params.PixelsPerSecond, ShouldEqual, timeline.DefaultParams().PixelsPerSecond)
		})
	})
}

func TestClockEvents(t *testing.T) {
	Convey("Given a paused clip", t, func() {
		script, err := Parse([]byte(`
duration = 60

[[events]]
at = 0
kind = "sync_time"
seconds = 30

[[events]]
at = 10
kind = "toggle"

[[events]]
at = 20
kind = "playback_ended"
`))
		So(err, ShouldBeNil)

		trace, err := Simulate(script, timeline.DefaultParams())
		So(err, ShouldBeNil)

		Convey("The clock drives the timeline while nothing is held", func() {
			So(trace.Rows[0].Time, ShouldEqual, 30)
			So(trace.Rows[1].Mode, ShouldEqual, "Playing")
			So(trace.Rows[2].Mode, ShouldEqual, "Paused")
			So(trace.Rows[2].Time, ShouldEqual, 0)
			So(trace.Rows[2].Commands, ShouldResemble, []string{"pause", "seek 0.000 exact"})
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given the reference scenario", t, func() {
		var buf bytes.Buffer
		options := &Options{Out: &buf, Script: Default(), Params: timeline.DefaultParams()}

		Convey("A table is written by default", func() {
			So(Run(options), ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, "drag_start")
			So(buf.String(), ShouldContainSubstring, "settled")
		})

		Convey("JSON output decodes back into a trace", func() {
			options.Json = true
			So(Run(options), ShouldBeNil)

			var trace Trace
			So(json.Unmarshal(buf.Bytes(), &trace), ShouldBeNil)
			So(trace.Script, ShouldEqual, "default")
			So(trace.Rows, ShouldHaveLength, 5)
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("Given a script file without a name", t, func() {
		filesystem.SetMemMapFs()
		So(filesystem.API().WriteFile("/scripts/edge.toml", []byte(boundaryScript), 0o644), ShouldBeNil)

		script, err := Load("/scripts/edge.toml")

		Convey("The file stem names it", func() {
			So(err, ShouldBeNil)
			So(script.Name, ShouldEqual, "edge")
		})
	})

	Convey("A missing file is reported", t, func() {
		filesystem.SetMemMapFs()
		_, err := Load("/nope.toml")
		So(err, ShouldNotBeNil)
	})
}

func TestSchema(t *testing.T) {
	Convey("Schemas describe both formats", t, func() {
		trace, err := json.Marshal(Schema(false))
		So(err, ShouldBeNil)
		So(string(trace), ShouldContainSubstring, "at_ms")

		script, err := json.Marshal(Schema(true))
		So(err, ShouldBeNil)
		So(string(script), ShouldContainSubstring, "drag_start")
	})
}

func TestAbbreviate(t *testing.T) {
	Convey("Long command runs keep their ends", t, func() {
		So(abbreviate([]string{"a", "b"}), ShouldEqual, "a, b")
		So(abbreviate([]string{"a", "b", "c", "d", "e"}), ShouldEqual, "a, … 3 more, e")
	})
}
