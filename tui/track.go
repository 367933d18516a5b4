package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vidscrub/vidscrub/style"
)

const (
	// tickSpacing is the distance in pixels between two tick marks.
	tickSpacing = 15
	// majorTickEvery makes every n-th tick a major one.
	majorTickEvery = 5
)

type cell int

const (
	emptyCell cell = iota
	minorTickCell
	majorTickCell
	trackCell
	playedCell
	playheadCell
)

var cellGlyphs = map[cell]string{
	emptyCell:     " ",
	minorTickCell: "╷",
	majorTickCell: "│",
	trackCell:     "─",
	playedCell:    "━",
	playheadCell:  "◆",
}

var cellStyles = map[cell]lipgloss.Style{
	emptyCell:     style.New(),
	minorTickCell: style.New().Foreground(style.TrackColor),
	majorTickCell: style.New().Foreground(style.TickColor),
	trackCell:     style.New().Foreground(style.TrackColor),
	playedCell:    style.New().Foreground(style.PlayedColor),
	playheadCell:  style.New().Foreground(style.PlayheadColor).Bold(true),
}

// trackView lays the timeline out on terminal cells. Every cell covers cellWidth pixels and the
// track is translated by offset pixels so that the playhead stays in the middle column.
type trackView struct {
	columns   int
	cellWidth float64
	offset    float64
	played    float64
	total     float64
}

// span returns the pixel range of column c in track coordinates.
func (t trackView) span(c int) (left, right float64) {
	left = float64(c)*t.cellWidth - t.offset
	return left, left + t.cellWidth
}

func (t trackView) inside(left, right float64) bool {
	return t.total > 0 && right > 0 && left <= t.total
}

// ticks lays out the tick row.
func (t trackView) ticks() []cell {
	cells := make([]cell, t.columns)

	for c := range cells {
		left, right := t.span(c)
		if !t.inside(left, right) {
			continue
		}

		k := math.Ceil(math.Max(left, 0) / tickSpacing)
		if at := k * tickSpacing; at >= right || at > t.total {
			continue
		}

		if int(k)%majorTickEvery == 0 {
			cells[c] = majorTickCell
		} else {
			cells[c] = minorTickCell
		}
	}

	return cells
}

// bar lays out the progress row with the playhead in the middle column.
func (t trackView) bar() []cell {
	cells := make([]cell, t.columns)

	for c := range cells {
		left, right := t.span(c)
		switch {
		case !t.inside(left, right):
		case left < t.played:
			cells[c] = playedCell
		default:
			cells[c] = trackCell
		}
	}

	if t.columns > 0 && t.total > 0 {
		cells[t.columns/2] = playheadCell
	}

	return cells
}

// paint renders cells, styling runs of equal cells at once.
func paint(cells []cell) string {
	var (
		b   strings.Builder
		run strings.Builder
	)

	flush := func(kind cell) {
		if run.Len() == 0 {
			return
		}
		b.WriteString(cellStyles[kind].Render(run.String()))
		run.Reset()
	}

	for i, kind := range cells {
		if i > 0 && cells[i-1] != kind {
			flush(cells[i-1])
		}
		run.WriteString(cellGlyphs[kind])
	}
	if len(cells) > 0 {
		flush(cells[len(cells)-1])
	}

	return b.String()
}

// plain renders cells without styling.
func plain(cells []cell) string {
	var b strings.Builder
	for _, kind := range cells {
		b.WriteString(cellGlyphs[kind])
	}
	return b.String()
}
