package replay

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/samber/lo"
	"github.com/vidscrub/vidscrub/haptic"
	"github.com/vidscrub/vidscrub/log"
	"github.com/vidscrub/vidscrub/timeline"
)

// settleLimit bounds the coast that may follow the last event.
const settleLimit = 5 * time.Minute

// Options configures a replay run.
type Options struct {
	Out    io.Writer
	Script *Script
	// Params is the base tuning the script overrides are applied to.
	Params timeline.Params
	Json   bool
	// Width caps table rows, 0 leaves them unbounded.
	Width int
}

// Run replays the script and writes the trace.
func Run(options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	trace, err := Simulate(options.Script, options.Params)
	if err != nil {
		return err
	}

	if options.Json {
		return writeJson(options.Out, trace)
	}
	return writeTable(options.Out, trace, options.Width)
}

// commandLog is a media clock that only remembers what it was told.
type commandLog struct {
	commands []string
	seeks    int
}

func (c *commandLog) Play()  { c.commands = append(c.commands, "play") }
func (c *commandLog) Pause() { c.commands = append(c.commands, "pause") }
func (c *commandLog) SetRate(multiplier float64) {
	c.commands = append(c.commands, fmt.Sprintf("rate %g", multiplier))
}
func (c *commandLog) Seek(seconds float64, tolerance timeline.Tolerance) {
	c.seeks++
	c.commands = append(c.commands, fmt.Sprintf("seek %.3f %s", seconds, tolerance))
}

type runner struct {
	controller *timeline.Controller
	scheduler  *timeline.ManualScheduler
	clock      *commandLog
	haptics    *haptic.Recorder
	trace      *Trace

	seenCommands, seenHaptics int
}

// Simulate replays script on virtual time against base tuning.
func Simulate(script *Script, base timeline.Params) (*Trace, error) {
	if err := script.Validate(); err != nil {
		return nil, err
	}

	params := script.Params.Apply(base)
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid timeline parameters: %w", err)
	}

	initial := lo.Must(timeline.ParseMode(script.Initial))

	r := &runner{
		scheduler: &timeline.ManualScheduler{},
		clock:     &commandLog{},
		haptics:   &haptic.Recorder{},
		trace:     &Trace{Script: script.Name, Duration: script.Duration},
	}
	r.controller = timeline.NewController(r.clock, r.haptics, r.scheduler, params, initial)
	r.controller.SyncDuration(script.Duration)

	origin := time.Unix(0, 0)
	for _, event := range script.Events {
		at := time.Duration(event.At) * time.Millisecond
		if at > r.scheduler.Now() {
			r.scheduler.Advance(at - r.scheduler.Now())
			r.recordChanges("coast")
		}

		r.apply(event, origin.Add(at))
		r.record(string(event.Kind))
	}

	settled := true
	if r.controller.Coasting() {
		settled = r.scheduler.Drain(params.TickInterval, settleLimit)
		r.recordChanges("coast")
	}

	if !settled {
		log.Warnf("replay %s: coast still running after %s", script.Name, settleLimit)
	}

	r.trace.Summary = Summary{
		Mode:     r.controller.Mode().String(),
		Time:     r.controller.CurrentTime(),
		Settled:  settled,
		Seeks:    r.clock.seeks,
		Elapsed:  r.scheduler.Now().Milliseconds(),
		Haptics:  lo.CountValuesBy(r.haptics.Events, func(e haptic.Event) string { return e.Kind.String() }),
		Commands: len(r.clock.commands),
	}

	return r.trace, nil
}

func (r *runner) apply(event Event, now time.Time) {
	c := r.controller

	switch event.Kind {
	case DragStart:
		c.OnDragStart(event.X, now)
	case DragMove:
		c.OnDragMove(event.X, now)
	case DragEnd:
		c.OnDragEnd(event.X, now)
	case LongPressStart:
		c.OnLongPressStart()
	case LongPressEnd:
		c.OnLongPressEnd()
	case Toggle:
		c.TogglePlayback()
	case Restart:
		c.Restart()
	case SyncTime:
		c.SyncTime(event.Seconds)
	case SyncDuration:
		c.SyncDuration(event.Seconds)
	case PlaybackEnded:
		c.PlaybackEnded()
	}
}

// recordChanges adds a row only when something observable happened since the last row.
func (r *runner) recordChanges(label string) {
	if len(r.clock.commands) == r.seenCommands && len(r.haptics.Events) == r.seenHaptics {
		return
	}
	r.record(label)
}

func (r *runner) record(label string) {
	row := Row{
		AtMs:     r.scheduler.Now().Milliseconds(),
		Event:    label,
		Mode:     r.controller.Mode().String(),
		Time:     r.controller.CurrentTime(),
		Commands: append([]string(nil), r.clock.commands[r.seenCommands:]...),
		Haptics: lo.Map(r.haptics.Since(r.seenHaptics), func(e haptic.Event, _ int) string {
			return e.String()
		}),
	}

	r.seenCommands = len(r.clock.commands)
	r.seenHaptics = len(r.haptics.Events)
	r.trace.Rows = append(r.trace.Rows, row)
}
