package constant

// ScriptTemplate is a Go text/template for scaffolding new gesture scripts.
const ScriptTemplate = `{{ $divider := repeat "#" (plus (max (len .Name) (len .Author) 3) 12) }}{{ $divider }}
# @name    {{ .Name }}
# @author  {{ .Author }}
{{ $divider }}

# Length of the simulated clip in seconds.
duration = {{ .Duration }}
# Mode the player rests in before the first gesture: "playing" or "paused".
initial = "paused"

# Timeline tunables. Keys left out fall back to the configuration.
[params]
pixels_per_second = 50
velocity_multiplier = 1

# Gestures are replayed in order. "at" is the offset in milliseconds from the start of the run.
# kinds: drag_start, drag_move, drag_end, long_press_start, long_press_end, toggle, restart,
# sync_time, sync_duration, playback_ended. Drags carry "x" in pixels, syncs carry "seconds".

[[events]]
at = 0
kind = "drag_start"
x = 500

[[events]]
at = 250
kind = "drag_move"
x = 250

[[events]]
at = 500
kind = "drag_end"
x = 0
`
