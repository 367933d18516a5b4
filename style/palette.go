package style

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha tones used by the timeline and the error boxes.
var (
	Text    = lipgloss.Color("#cdd6f4")
	Subtext = lipgloss.Color("#a6adc8")
	Overlay = lipgloss.Color("#6c7086")
	Mauve   = lipgloss.Color("#cba6f7")
	Red     = lipgloss.Color("#f38ba8")
	Peach   = lipgloss.Color("#fab387")
)

// Roles.
var (
	AccentColor = Mauve
	ErrorColor  = Red

	TrackColor    = Overlay
	TickColor     = Subtext
	PlayedColor   = Peach
	PlayheadColor = Peach
)
