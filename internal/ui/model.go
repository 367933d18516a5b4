// Package ui holds small reusable pieces of the terminal interface.
package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"
	"github.com/vidscrub/vidscrub/style"
)

// NotificationLifetime is how long a notification stays on screen.
const NotificationLifetime = 3 * time.Second

// Model shows one ephemeral notification next to the last line of the view.
type Model struct {
	notification string
	notifiedAt   time.Time

	// Width bounds the notification text, zero means unbounded.
	Width int
}

// ClearNotificationMsg resets the notification once it expired.
type ClearNotificationMsg struct {
	At time.Time
}

// Notify returns a command that raises text as a notification.
func Notify(text string) tea.Cmd {
	return func() tea.Msg {
		return text
	}
}

// ClearNotification clears the notification raised at the given instant after NotificationLifetime.
func ClearNotification(raisedAt time.Time) tea.Cmd {
	return tea.Tick(NotificationLifetime, func(time.Time) tea.Msg {
		return ClearNotificationMsg{At: raisedAt}
	})
}

// Notification returns the text on screen, if any.
func (m *Model) Notification() string {
	return m.notification
}

// Update consumes notification messages. Plain strings raise a notification.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case string:
		m.notification = msg
		m.notifiedAt = time.Now()
		return ClearNotification(m.notifiedAt)
	case ClearNotificationMsg:
		// A newer notification keeps its own timer.
		if msg.At.Equal(m.notifiedAt) {
			m.notification = ""
		}
	}
	return nil
}

// View appends the notification to the last line of mainContent.
func (m *Model) View(mainContent string) string {
	if m.notification == "" {
		return mainContent
	}

	text := m.notification
	if m.Width > 0 {
		text = truncate.StringWithTail(text, uint(m.Width), "…")
	}

	lines := strings.Split(mainContent, "\n")
	lines[len(lines)-1] += "  " + style.Faint(text)
	return strings.Join(lines, "\n")
}
