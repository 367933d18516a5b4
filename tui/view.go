package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vidscrub/vidscrub/color"
	"github.com/vidscrub/vidscrub/haptic"
	"github.com/vidscrub/vidscrub/icon"
	"github.com/vidscrub/vidscrub/style"
	"github.com/vidscrub/vidscrub/timeline"
	"github.com/vidscrub/vidscrub/util"
)

var paddingStyle = lipgloss.NewStyle().Padding(padTop, padLeft)

func (b *statefulBubble) View() string {
	lines := []string{b.viewHeader(), ""}
	lines = append(lines, b.viewSurface()...)
	lines = append(lines, b.viewTrack()...)
	lines = append(lines, b.viewLabel(), "")

	if b.showHelp {
		lines = append(lines, b.helpC.View(b.keymap))
	}

	return b.notifier.View(paddingStyle.Render(strings.Join(lines, "\n")))
}

func (b *statefulBubble) viewHeader() string {
	title := style.Title("vidscrub")
	if b.title == "" {
		return title
	}

	name := style.Fg(color.Purple)(icon.Get(icon.Film) + " " + b.title)
	return title + " " + style.Truncate(util.Max(b.columns()-lipgloss.Width(title)-1, 0))(name)
}

// viewSurface draws the player area: the mode in the middle and the last haptic pulse below it.
func (b *statefulBubble) viewSurface() []string {
	rows := make([]string, b.surfaceRows())
	columns := b.columns()
	middle := len(rows) / 2

	rows[middle] = b.viewMode()
	if pulse, ok := b.pulse.Get(); ok && middle+1 < len(rows) {
		rows[middle+1] = viewPulse(pulse)
	}

	for i, row := range rows {
		rows[i] = lipgloss.PlaceHorizontal(columns, lipgloss.Center, row)
	}
	return rows
}

func (b *statefulBubble) viewMode() string {
	if b.controller.Duration() <= 0 {
		return b.spinnerC.View() + " Waiting for the media duration"
	}

	switch mode := b.controller.Mode(); mode {
	case timeline.Playing:
		return icon.Get(icon.Play) + " Playing"
	case timeline.Paused:
		return icon.Get(icon.Pause) + " Paused"
	case timeline.Interacting:
		if b.controller.Coasting() {
			return icon.Get(icon.Scrub) + " Coasting"
		}
		return icon.Get(icon.Scrub) + " Scrubbing"
	case timeline.SpeedScrubbing:
		return icon.Get(icon.Speed) + " " + b.speedBadge()
	default:
		return mode.String()
	}
}

func (b *statefulBubble) speedBadge() string {
	return style.Tag(color.Black, color.Orange)(fmt.Sprintf("%gx", b.controller.Params().SpeedRate))
}

func viewPulse(e haptic.Event) string {
	switch e.Kind {
	case haptic.Boundary:
		return style.Fg(color.Red)(icon.Get(icon.Boundary))
	case haptic.Periodic:
		return style.Fg(color.Orange)(icon.Get(icon.Pulse))
	default:
		return style.Faint(icon.Get(icon.Pulse))
	}
}

func (b *statefulBubble) viewTrack() []string {
	track := b.track()

	ticks := strings.Repeat(" ", track.columns)
	if b.showTicks {
		ticks = paint(track.ticks())
	}

	return []string{ticks, paint(track.bar())}
}

// viewLabel renders "current | duration", with the speed badge while the preview runs.
func (b *statefulBubble) viewLabel() string {
	label := fmt.Sprintf("%s | %s", util.FormatTime(b.controller.CurrentTime()), util.FormatTime(b.controller.Duration()))
	if b.controller.Mode() == timeline.SpeedScrubbing {
		label += " " + b.speedBadge()
	}
	return lipgloss.PlaceHorizontal(b.columns(), lipgloss.Center, label)
}
