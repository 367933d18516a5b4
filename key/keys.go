// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// DefinedFieldsCount is the number of registered configuration fields.
const DefinedFieldsCount = 29

// Timeline geometry and gesture handling.
const (
	TimelinePixelsPerSecond            = "timeline.pixels_per_second"
	TimelineVelocityMultiplier         = "timeline.velocity_multiplier"
	TimelineReleaseWindow              = "timeline.release_window_ms"
	TimelineSpeedRate                  = "timeline.speed_rate"
	TimelineAllowSpeedWhileInteracting = "timeline.allow_speed_while_interacting"
	TimelineLongPress                  = "timeline.long_press_ms"
)

// Inertial coasting after a fling.
const (
	InertiaMinVelocity         = "inertia.min_velocity"
	InertiaDecayRate           = "inertia.decay_rate"
	InertiaBoundaryZone        = "inertia.boundary_zone"
	InertiaBoundaryDecayFactor = "inertia.boundary_decay_factor"
	InertiaStopThreshold       = "inertia.stop_threshold"
	InertiaTickRate            = "inertia.tick_rate"
	InertiaFlingGain           = "inertia.fling_gain"
	InertiaDurationScaledGain  = "inertia.duration_scaled_gain"
)

// Feedback emitted while scrubbing.
const (
	HapticsSink              = "haptics.sink"
	HapticsPeriodicInterval  = "haptics.periodic_interval"
	HapticsPeriodicIntensity = "haptics.periodic_intensity"
)

// Media playback through mpv.
const (
	PlayerBinary          = "player.binary"
	PlayerArgs            = "player.args"
	PlayerObserveInterval = "player.observe_interval_ms"
	PlayerProbeLifetime   = "player.probe_lifetime_hours"
)

// Terminal user interface.
const (
	TUICellWidth = "tui.cell_width"
	TUIShowTicks = "tui.show_ticks"
	TUIShowHelp  = "tui.show_help"
)

// Iconography.
const (
	IconsVariant = "icons.variant"
)

// Logging infrastructure.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI execution environment.
const (
	CliColored = "cli.colored"
)
