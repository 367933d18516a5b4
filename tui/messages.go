package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vidscrub/vidscrub/player"
)

// runMsg carries a scheduler tick onto the UI loop.
type runMsg func()

// timePosMsg is a position sample from the media clock.
type timePosMsg float64

// playerEventMsg is a property change reported by the media backend.
type playerEventMsg player.Event

// clockErrMsg reports a failed media clock command.
type clockErrMsg struct {
	err error
}

// playerExitMsg signals that the media backend went away.
type playerExitMsg struct{}

// longPressMsg fires when a press on the player surface was held long enough.
type longPressMsg struct {
	token int
}

// pulseExpiredMsg hides the haptic pulse raised with the same token.
type pulseExpiredMsg struct {
	token int
}

func (b *statefulBubble) waitForLongPress(token int) tea.Cmd {
	return tea.Tick(b.longPress, func(time.Time) tea.Msg {
		return longPressMsg{token: token}
	})
}

func expirePulse(token int) tea.Cmd {
	return tea.Tick(pulseLifetime, func(time.Time) tea.Msg {
		return pulseExpiredMsg{token: token}
	})
}

func (b *statefulBubble) waitForExit() tea.Cmd {
	if b.exited == nil {
		return nil
	}

	exited := b.exited
	return func() tea.Msg {
		<-exited
		return playerExitMsg{}
	}
}
