// Package config registers every setting with its default and builds runtime tuning from viper.
package config

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/vidscrub/vidscrub/color"
	"github.com/vidscrub/vidscrub/constant"
	"github.com/vidscrub/vidscrub/key"
	"github.com/vidscrub/vidscrub/style"
)

// Field is a registered setting.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Section is the part of the key before the first dot, e.g. "inertia".
func (f *Field) Section() string {
	section, _, _ := strings.Cut(f.Key, ".")
	return section
}

// Pretty renders the field with its current and default values.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env is the environment variable overriding the field.
func (f *Field) Env() string {
	return strings.ToUpper(constant.Vidscrub + "_" + EnvKeyReplacer.Replace(f.Key))
}

// Parse converts command line values to the type of the default value.
func (f *Field) Parse(values []string) (any, error) {
	if _, ok := f.Value.([]string); ok {
		return values, nil
	}

	if len(values) != 1 {
		return nil, fmt.Errorf("%s takes a single %s value, got %d", f.Key, f.TypeName(), len(values))
	}

	raw := strings.TrimSpace(values[0])
	switch f.Value.(type) {
	case string:
		return raw, nil
	case int:
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid integer value %q for %s", raw, f.Key)
		}
		return parsed, nil
	case float64:
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number value %q for %s", raw, f.Key)
		}
		return parsed, nil
	case bool:
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid boolean value %q for %s", raw, f.Key)
		}
		return parsed, nil
	default:
		return nil, fmt.Errorf("%s has an unsupported type", f.Key)
	}
}

// MarshalJSON includes the current value next to the default.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
		Env         string `json:"env"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.TypeName(),
		Env:         f.Env(),
	})
}

// TypeName names the type of the default value.
func (f *Field) TypeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case float64:
		return "float"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	default:
		return "unknown"
	}
}

// Default holds every registered field by key.
var Default = make(map[string]Field)

// EnvExposed lists the keys bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("duplicate config key: " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc}
		EnvExposed = append(EnvExposed, k)
	}

	register(key.TimelinePixelsPerSecond, 50.0, "Horizontal pixels that represent one second of content")
	register(key.TimelineVelocityMultiplier, 1.5, "Gain applied to the measured drag velocity")
	register(key.TimelineReleaseWindow, 100, "Milliseconds a motionless pointer keeps its last velocity before release")
	register(key.TimelineSpeedRate, 2.0, "Playback rate used while a long-press is held")
	register(key.TimelineAllowSpeedWhileInteracting, false, "Allow a long-press to start speed preview during a drag or a coast")
	register(key.TimelineLongPress, 300, "Milliseconds a press must be held on the player to start speed preview")
	register(key.InertiaMinVelocity, 200.0, "Release velocity in px/s required to start coasting")
	register(key.InertiaDecayRate, 0.85, "Per-tick velocity decay while coasting. From 0 to 1 (exclusive)")
	register(key.InertiaBoundaryZone, 0.1, "Fraction of the duration near either end where coasting brakes harder")
	register(key.InertiaBoundaryDecayFactor, 0.8, "Decay multiplier applied inside the boundary zone")
	register(key.InertiaStopThreshold, 0.001, "Per-tick movement, as a fraction of the duration, below which coasting stops")
	register(key.InertiaTickRate, 60, "Coasting ticks per second")
	register(key.InertiaFlingGain, 1.0, "Gain applied to the release velocity handed to the coast")
	register(key.InertiaDurationScaledGain, false, "Boost flings on short clips by 5 × clamp(20/duration, 2, 5)")
	register(key.HapticsSink, "bell", "Where scrub feedback goes.\nAvailable options are: bell, log, none")
	register(key.HapticsPeriodicInterval, 5.0, "Seconds of content traversed between periodic feedback pulses. 0 disables them, otherwise at least 0.01")
	register(key.HapticsPeriodicIntensity, 0.5, "Intensity of periodic feedback pulses. From 0 to 1")
	register(key.PlayerBinary, "mpv", "mpv executable to launch")
	register(key.PlayerArgs, []string{}, "Extra arguments passed to mpv")
	register(key.PlayerObserveInterval, 50, "Milliseconds between playback position polls")
	register(key.PlayerProbeLifetime, 24, "Hours the result of the mpv dependency check is cached")
	register(key.TUICellWidth, 8, "Pixels represented by one terminal column")
	register(key.TUIShowTicks, true, "Draw tick marks on the timeline")
	register(key.TUIShowHelp, true, "Show key bindings under the timeline")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")

	if len(Default) != key.DefinedFieldsCount {
		panic(fmt.Sprintf("expected %d config fields, registered %d", key.DefinedFieldsCount, len(Default)))
	}
}

// highlight colours a value by its type.
func highlight(v any) string {
	switch value := v.(type) {
	case bool:
		return lo.Ternary(value, style.Fg(color.Green), style.Fg(color.Red))(strconv.FormatBool(value))
	case string:
		return style.Fg(color.Yellow)(strconv.Quote(value))
	case []string:
		return style.Fg(color.Yellow)("[" + strings.Join(value, ", ") + "]")
	default:
		return style.Fg(color.Cyan)(fmt.Sprint(value))
	}
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":  style.Faint,
	"bold":   style.Bold,
	"purple": style.Fg(color.Purple),
	"value":  func(k string) any { return viper.Get(k) },
	"hl":     highlight,
	"differs": func(f *Field) bool {
		return fmt.Sprint(viper.Get(f.Key)) != fmt.Sprint(f.Value)
	},
}).Parse(`{{ purple .Key }} {{ faint (printf "(%s)" .TypeName) }}
{{ faint .Description }}
  {{ bold "value" }}   {{ hl (value .Key) }}{{ if differs . }} {{ faint "default" }} {{ hl .Value }}{{ end }}
  {{ bold "env" }}     {{ .Env }}`))
