// Package replay drives the scrub timeline headlessly from a gesture script. Virtual time replaces
// the wall clock, so a script always produces the same trace.
package replay

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/samber/lo"
	"github.com/vidscrub/vidscrub/filesystem"
	"github.com/vidscrub/vidscrub/timeline"
	"github.com/vidscrub/vidscrub/util"
)

// Kind is a gesture or player notification a script can issue.
type Kind string

const (
	DragStart      Kind = "drag_start"
	DragMove       Kind = "drag_move"
	DragEnd        Kind = "drag_end"
	LongPressStart Kind = "long_press_start"
	LongPressEnd   Kind = "long_press_end"
	Toggle         Kind = "toggle"
	Restart        Kind = "restart"
	SyncTime       Kind = "sync_time"
	SyncDuration   Kind = "sync_duration"
	PlaybackEnded  Kind = "playback_ended"
)

// Kinds lists every accepted event kind.
func Kinds() []Kind {
	return []Kind{DragStart, DragMove, DragEnd, LongPressStart, LongPressEnd, Toggle, Restart, SyncTime, SyncDuration, PlaybackEnded}
}

// Event is one scripted input.
type Event struct {
	// At is the offset from the start of the run in milliseconds.
	At   int64 `toml:"at" json:"at" jsonschema:"description=Offset from the start of the run in milliseconds,minimum=0"`
	Kind Kind  `toml:"kind" json:"kind" jsonschema:"enum=drag_start,enum=drag_move,enum=drag_end,enum=long_press_start,enum=long_press_end,enum=toggle,enum=restart,enum=sync_time,enum=sync_duration,enum=playback_ended"`
	// X is the pointer position in pixels for drag events.
	X float64 `toml:"x,omitempty" json:"x,omitempty" jsonschema:"description=Pointer position in pixels"`
	// Seconds is the reported position or duration for sync events.
	Seconds float64 `toml:"seconds,omitempty" json:"seconds,omitempty" jsonschema:"description=Clock position or duration in seconds"`
}

// Overrides replaces selected timeline tunables for one script.
type Overrides struct {
	PixelsPerSecond            *float64 `toml:"pixels_per_second" json:"pixels_per_second,omitempty"`
	VelocityMultiplier         *float64 `toml:"velocity_multiplier" json:"velocity_multiplier,omitempty"`
	ReleaseWindowMs            *int64   `toml:"release_window_ms" json:"release_window_ms,omitempty"`
	SpeedRate                  *float64 `toml:"speed_rate" json:"speed_rate,omitempty"`
	AllowSpeedWhileInteracting *bool    `toml:"allow_speed_while_interacting" json:"allow_speed_while_interacting,omitempty"`
	MinVelocity                *float64 `toml:"min_velocity" json:"min_velocity,omitempty"`
	DecayRate                  *float64 `toml:"decay_rate" json:"decay_rate,omitempty"`
	BoundaryZone               *float64 `toml:"boundary_zone" json:"boundary_zone,omitempty"`
	BoundaryDecayFactor        *float64 `toml:"boundary_decay_factor" json:"boundary_decay_factor,omitempty"`
	StopThreshold              *float64 `toml:"stop_threshold" json:"stop_threshold,omitempty"`
	TickRate                   *int     `toml:"tick_rate" json:"tick_rate,omitempty"`
	FlingGain                  *float64 `toml:"fling_gain" json:"fling_gain,omitempty"`
	DurationScaledGain         *bool    `toml:"duration_scaled_gain" json:"duration_scaled_gain,omitempty"`
	PeriodicInterval           *float64 `toml:"periodic_interval" json:"periodic_interval,omitempty"`
	PeriodicIntensity          *float64 `toml:"periodic_intensity" json:"periodic_intensity,omitempty"`
}

// Script is a complete replay scenario.
type Script struct {
	Name     string    `toml:"name" json:"name,omitempty"`
	Duration float64   `toml:"duration" json:"duration" jsonschema:"description=Length of the simulated clip in seconds,minimum=0"`
	Initial  string    `toml:"initial" json:"initial,omitempty" jsonschema:"enum=playing,enum=paused"`
	Params   Overrides `toml:"params" json:"params"`
	Events   []Event   `toml:"events" json:"events"`
}

// Default is the reference scenario: a one minute clip dragged 500 px left in half a second.
func Default() *Script {
	pps, multiplier := 50.0, 1.0

	return &Script{
		Name:     "default",
		Duration: 60,
		Initial:  "paused",
		Params: Overrides{
			PixelsPerSecond:    &pps,
			VelocityMultiplier: &multiplier,
		},
		Events: []Event{
			{At: 0, Kind: DragStart, X: 500},
			{At: 250, Kind: DragMove, X: 250},
			{At: 500, Kind: DragMove, X: 0},
			{At: 500, Kind: DragEnd, X: 0},
		},
	}
}

// Parse decodes a TOML script. Events are ordered by time, keeping the file order for ties.
func Parse(data []byte) (*Script, error) {
	var script Script
	if err := toml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}

	if err := script.Validate(); err != nil {
		return nil, err
	}

	sort.SliceStable(script.Events, func(i, j int) bool {
		return script.Events[i].At < script.Events[j].At
	})

	return &script, nil
}

// Load reads and parses the script at path. A missing name defaults to the file stem.
func Load(path string) (*Script, error) {
	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}

	script, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	if script.Name == "" {
		script.Name = util.FileStem(path)
	}

	return script, nil
}

// Validate checks the script header and every event.
func (s *Script) Validate() error {
	if s.Duration < 0 {
		return errors.New("duration must not be negative")
	}

	if _, err := timeline.ParseMode(s.Initial); err != nil {
		return err
	}

	if s.Params.TickRate != nil && *s.Params.TickRate <= 0 {
		return fmt.Errorf("tick_rate must be positive, got %d", *s.Params.TickRate)
	}

	for i, e := range s.Events {
		if e.At < 0 {
			return fmt.Errorf("event %d: negative offset %d", i+1, e.At)
		}
		if !lo.Contains(Kinds(), e.Kind) {
			names := lo.Map(Kinds(), func(k Kind, _ int) string { return string(k) })
			return fmt.Errorf("event %d: unknown kind %q, expected one of %s", i+1, e.Kind, strings.Join(names, ", "))
		}
	}

	return nil
}

// Apply overlays the overrides on base.
func (o Overrides) Apply(base timeline.Params) timeline.Params {
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}

	set(&base.PixelsPerSecond, o.PixelsPerSecond)
	set(&base.VelocityMultiplier, o.VelocityMultiplier)
	set(&base.SpeedRate, o.SpeedRate)
	set(&base.MinVelocityForInertia, o.MinVelocity)
	set(&base.DecayRate, o.DecayRate)
	set(&base.BoundaryZone, o.BoundaryZone)
	set(&base.BoundaryDecayFactor, o.BoundaryDecayFactor)
	set(&base.StopThreshold, o.StopThreshold)
	set(&base.FlingGain, o.FlingGain)
	set(&base.PeriodicFeedbackInterval, o.PeriodicInterval)
	set(&base.PeriodicIntensity, o.PeriodicIntensity)

	if o.ReleaseWindowMs != nil {
		base.ReleaseWindow = time.Duration(*o.ReleaseWindowMs) * time.Millisecond
	}
	if o.TickRate != nil && *o.TickRate > 0 {
		base.TickInterval = time.Second / time.Duration(*o.TickRate)
	}
	if o.AllowSpeedWhileInteracting != nil {
		base.AllowSpeedWhileInteracting = *o.AllowSpeedWhileInteracting
	}
	if o.DurationScaledGain != nil {
		base.DurationScaledGain = *o.DurationScaledGain
	}

	return base
}
