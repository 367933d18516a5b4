package timeline

import (
	"github.com/samber/mo"
	"github.com/vidscrub/vidscrub/log"
)

// StateMachine arbitrates between playback, scrubbing and speed preview, and mirrors every
// accepted transition onto the media clock. Requests that are invalid for the current mode are
// rejected and reported as false.
type StateMachine struct {
	clock MediaClock
	mode  Mode

	// prior is the resting mode a drag interrupted.
	prior    Mode
	preSpeed mo.Option[Mode]

	speedRate                  float64
	allowSpeedWhileInteracting bool

	// OnTransition, when set, observes every accepted transition.
	OnTransition func(from, to Mode)
}

// NewStateMachine returns a machine resting in initial, which must be Playing or Paused.
func NewStateMachine(clock MediaClock, initial Mode, params Params) *StateMachine {
	if !initial.IsPlayback() {
		initial = Paused
	}

	return &StateMachine{
		clock:                      clock,
		mode:                       initial,
		prior:                      initial,
		preSpeed:                   mo.None[Mode](),
		speedRate:                  params.SpeedRate,
		allowSpeedWhileInteracting: params.AllowSpeedWhileInteracting,
	}
}

// Mode returns the active mode.
func (m *StateMachine) Mode() Mode {
	return m.mode
}

// PriorMode returns the resting mode the current interaction will return to.
func (m *StateMachine) PriorMode() Mode {
	return m.prior
}

// PreSpeedMode returns the snapshot taken when speed preview began.
func (m *StateMachine) PreSpeedMode() (Mode, bool) {
	return m.preSpeed.Get()
}

// IsPlaying reports whether the clock is expected to be advancing.
func (m *StateMachine) IsPlaying() bool {
	return m.mode == Playing || m.mode == SpeedScrubbing
}

// EnterInteracting pauses the clock and remembers the resting mode.
func (m *StateMachine) EnterInteracting() bool {
	if !m.mode.IsPlayback() {
		return m.reject("enter interacting")
	}

	m.prior = m.mode
	m.transition(Interacting)
	return true
}

// ExitInteracting returns to the mode the drag interrupted. When speed preview took over the
// interaction, only the snapshot is re-targeted so that releasing the long-press lands there.
func (m *StateMachine) ExitInteracting() bool {
	switch m.mode {
	case Interacting:
		m.transition(m.prior)
		return true
	case SpeedScrubbing:
		if snapshot, ok := m.preSpeed.Get(); ok && snapshot == Interacting {
			m.preSpeed = mo.Some(m.prior)
			log.Debugf("timeline: speed preview will return to %s", m.prior)
			return true
		}
	}
	return m.reject("exit interacting")
}

// BeginSpeed starts the double-speed preview.
func (m *StateMachine) BeginSpeed() bool {
	switch {
	case m.mode.IsPlayback():
	case m.mode == Interacting && m.allowSpeedWhileInteracting:
	default:
		return m.reject("begin speed preview")
	}

	m.preSpeed = mo.Some(m.mode)
	m.clock.SetRate(m.speedRate)
	m.transition(SpeedScrubbing)
	return true
}

// EndSpeed resets the rate and re-enters the snapshotted mode.
func (m *StateMachine) EndSpeed() bool {
	if m.mode != SpeedScrubbing {
		return m.reject("end speed preview")
	}

	target := m.preSpeed.OrElse(Paused)
	m.preSpeed = mo.None[Mode]()
	m.clock.SetRate(1)
	m.transition(target)
	return true
}

// TogglePlayback flips between Playing and Paused.
func (m *StateMachine) TogglePlayback() bool {
	switch m.mode {
	case Playing:
		m.transition(Paused)
	case Paused:
		m.transition(Playing)
	default:
		return m.reject("toggle playback")
	}
	return true
}

// PlaybackEnded parks the machine in Paused after the clock reached the end of the content.
func (m *StateMachine) PlaybackEnded() bool {
	switch m.mode {
	case Playing:
		m.transition(Paused)
		return true
	case SpeedScrubbing:
		m.preSpeed = mo.Some(Paused)
		return true
	}
	return false
}

func (m *StateMachine) transition(to Mode) {
	from := m.mode
	m.mode = to

	switch to {
	case Playing, SpeedScrubbing:
		m.clock.Play()
	case Paused, Interacting:
		m.clock.Pause()
	}

	log.Debugf("timeline: %s -> %s", from, to)
	if m.OnTransition != nil {
		m.OnTransition(from, to)
	}
}

func (m *StateMachine) reject(request string) bool {
	log.Debugf("timeline: rejected %s while %s", request, m.mode)
	return false
}
