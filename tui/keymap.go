package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/vidscrub/vidscrub/color"
	"github.com/vidscrub/vidscrub/style"
)

// scrubKeymap holds the keyboard shortcuts of the playback surface. Mouse gestures carry the
// scrubbing itself, the keys only mirror the buttons.
type scrubKeymap struct {
	playPause, restart,
	speed,
	quit, forceQuit,
	showHelp key.Binding
}

func newScrubKeymap() *scrubKeymap {
	return &scrubKeymap{
		playPause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp(style.Fg(color.Orange)("space"), style.Fg(color.Orange)("play/pause")),
		),
		restart: key.NewBinding(
			key.WithKeys("r", "home"),
			key.WithHelp("r", "restart"),
		),
		speed: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "toggle 2x"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k *scrubKeymap) ShortHelp() []key.Binding {
	return []key.Binding{k.playPause, k.restart, k.showHelp, k.quit}
}

// FullHelp implements help.KeyMap.
func (k *scrubKeymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.playPause, k.restart, k.speed},
		{k.showHelp, k.quit, k.forceQuit},
	}
}
