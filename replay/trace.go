package replay

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
	"github.com/vidscrub/vidscrub/util"
)

// Row is the observable state after one scripted event or coast.
type Row struct {
	AtMs     int64    `json:"at_ms" jsonschema:"description=Virtual time of the row in milliseconds"`
	Event    string   `json:"event" jsonschema:"description=Script event kind, or coast for inertia ticks"`
	Mode     string   `json:"mode" jsonschema:"enum=Paused,enum=Playing,enum=Interacting,enum=SpeedScrubbing"`
	Time     float64  `json:"time" jsonschema:"description=Timeline position in seconds"`
	Haptics  []string `json:"haptics,omitempty" jsonschema:"description=Feedback emitted since the previous row"`
	Commands []string `json:"commands,omitempty" jsonschema:"description=Media clock commands issued since the previous row"`
}

// Summary describes where the run ended.
type Summary struct {
	Mode     string         `json:"mode"`
	Time     float64        `json:"time"`
	Settled  bool           `json:"settled" jsonschema:"description=False when a coast was still running at the end"`
	Elapsed  int64          `json:"elapsed_ms"`
	Seeks    int            `json:"seeks"`
	Commands int            `json:"commands"`
	Haptics  map[string]int `json:"haptics"`
}

// Trace is the complete output of a replay.
type Trace struct {
	Script   string  `json:"script"`
	Duration float64 `json:"duration"`
	Rows     []Row   `json:"rows"`
	Summary  Summary `json:"summary"`
}

// Schema returns the JSON schema of the trace, or of the script format when script is set.
func Schema(script bool) *jsonschema.Schema {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	reflector.Namer = func(t reflect.Type) string {
		return filepath.Base(t.PkgPath()) + "." + t.Name()
	}

	if script {
		return reflector.Reflect(&Script{})
	}
	return reflector.Reflect(&Trace{})
}

func writeJson(out io.Writer, trace *Trace) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(trace)
}

func writeTable(out io.Writer, trace *Trace, width int) error {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	if width > 0 {
		t.SetAllowedRowLength(width)
	}
	t.SetStyle(table.StyleLight)
	t.Style().Format.Footer = text.FormatDefault
	t.SetTitle("%s (%s)", trace.Script, util.FormatTime(trace.Duration))

	t.AppendHeader(table.Row{"At", "Event", "Mode", "Time", "Haptics", "Clock"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})

	for _, row := range trace.Rows {
		t.AppendRow(table.Row{
			fmt.Sprintf("%.3fs", float64(row.AtMs)/1000),
			row.Event,
			row.Mode,
			fmt.Sprintf("%.3f", row.Time),
			strings.Join(row.Haptics, " "),
			abbreviate(row.Commands),
		})
	}

	summary := trace.Summary
	t.AppendFooter(table.Row{
		fmt.Sprintf("%.3fs", float64(summary.Elapsed)/1000),
		lo.Ternary(summary.Settled, "settled", "coasting"),
		summary.Mode,
		fmt.Sprintf("%.3f", summary.Time),
		countsOf(summary.Haptics),
		util.Quantify(summary.Seeks, "seek", "seeks"),
	})

	t.Render()
	return nil
}

// abbreviate keeps the first and last command of long runs such as a coast.
func abbreviate(commands []string) string {
	if len(commands) <= 3 {
		return strings.Join(commands, ", ")
	}
	return fmt.Sprintf("%s, … %d more, %s", commands[0], len(commands)-2, commands[len(commands)-1])
}

func countsOf(counts map[string]int) string {
	keys := lo.Keys(counts)
	sort.Strings(keys)

	return strings.Join(lo.Map(keys, func(k string, _ int) string {
		return fmt.Sprintf("%s×%d", k, counts[k])
	}), " ")
}
