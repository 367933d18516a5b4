package tui

import (
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/mo"
	"github.com/vidscrub/vidscrub/haptic"
	"github.com/vidscrub/vidscrub/internal/ui"
	"github.com/vidscrub/vidscrub/log"
	"github.com/vidscrub/vidscrub/player"
	"github.com/vidscrub/vidscrub/timeline"
)

func (b *statefulBubble) Init() tea.Cmd {
	return tea.Batch(b.spinnerC.Tick, b.waitForExit())
}

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{b.notifier.Update(msg)}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		cmds = append(cmds, b.handleKey(msg))
	case tea.MouseMsg:
		cmds = append(cmds, b.handleMouse(msg))
	case runMsg:
		msg()
	case timePosMsg:
		b.controller.SyncTime(float64(msg))
	case playerEventMsg:
		b.handlePlayerEvent(player.Event(msg))
	case clockErrMsg:
		cmds = append(cmds, ui.Notify(msg.err.Error()))
	case longPressMsg:
		if msg.token == b.pressToken && b.gesture == surfaceGesture {
			b.longPressed = true
			b.controller.OnLongPressStart()
		}
	case pulseExpiredMsg:
		if msg.token == b.pulseToken {
			b.pulse = mo.None[haptic.Event]()
		}
	case playerExitMsg:
		log.Info("media backend exited")
		b.controller.Close()
		return b, tea.Quit
	case spinner.TickMsg:
		// The spinner only runs until the duration is known.
		if b.controller.Duration() <= 0 {
			var cmd tea.Cmd
			b.spinnerC, cmd = b.spinnerC.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if b.pulseArmed {
		b.pulseArmed = false
		cmds = append(cmds, expirePulse(b.pulseToken))
	}

	return b, tea.Batch(cmds...)
}

func (b *statefulBubble) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case bubblesKey.Matches(msg, b.keymap.quit), bubblesKey.Matches(msg, b.keymap.forceQuit):
		b.controller.Close()
		return tea.Quit
	case bubblesKey.Matches(msg, b.keymap.playPause):
		b.controller.TogglePlayback()
	case bubblesKey.Matches(msg, b.keymap.restart):
		b.controller.Restart()
	case bubblesKey.Matches(msg, b.keymap.speed):
		// Terminals report no key release, so the key toggles the preview.
		if b.controller.Mode() == timeline.SpeedScrubbing {
			b.controller.OnLongPressEnd()
		} else {
			b.controller.OnLongPressStart()
		}
	case bubblesKey.Matches(msg, b.keymap.showHelp):
		b.helpC.ShowAll = !b.helpC.ShowAll
	}
	return nil
}

func (b *statefulBubble) handleMouse(msg tea.MouseMsg) tea.Cmd {
	x, now := b.pointerX(msg.X), b.now()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || b.gesture != noGesture {
			return nil
		}

		switch b.regionAt(msg.Y) {
		case trackRegion:
			b.gesture = trackGesture
			b.controller.OnDragStart(x, now)
		case surfaceRegion:
			b.gesture = surfaceGesture
			b.pressToken++
			b.longPressed = false
			return b.waitForLongPress(b.pressToken)
		}
	case tea.MouseActionMotion:
		if b.gesture == trackGesture {
			b.controller.OnDragMove(x, now)
		}
	case tea.MouseActionRelease:
		switch b.gesture {
		case trackGesture:
			b.controller.OnDragEnd(x, now)
		case surfaceGesture:
			// Invalidate the pending long-press timer.
			b.pressToken++
			if b.longPressed {
				b.controller.OnLongPressEnd()
			} else {
				b.controller.TogglePlayback()
			}
		}
		b.gesture = noGesture
	}

	return nil
}

func (b *statefulBubble) handlePlayerEvent(e player.Event) {
	switch e.Name {
	case "duration":
		if d, ok := e.Float(); ok {
			b.controller.SyncDuration(d)
		}
	case "eof-reached":
		if ended, ok := e.Bool(); ok && ended {
			b.controller.PlaybackEnded()
		}
	default:
		log.Tracef("player event %s: %v", e.Name, e.Data)
	}
}
