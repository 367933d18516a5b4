// Package player drives an external mpv process over its JSON-IPC socket and exposes it to the
// timeline as a media clock.
package player

import "time"

// Player encapsulates the capabilities the playback surface needs from a media backend.
type Player interface {
	Controls

	// Play launches the backend paused on the given file or URL.
	Play(target string, title string) error

	// GetTimePos retrieves the current playback position in seconds.
	GetTimePos() (float64, error)

	// GetDuration retrieves the length of the loaded media in seconds.
	GetDuration() (float64, error)

	// Close terminates the backend and releases its resources.
	Close() error

	// Socket returns the IPC channel identifier.
	Socket() string

	// StartTimeObserver polls the playback position every interval.
	StartTimeObserver(interval time.Duration, callback func(timePos float64))

	// StopTimeObserver stops the poller started by StartTimeObserver.
	StopTimeObserver()

	// Wait returns a channel that is closed when the backend process exits.
	Wait() <-chan struct{}
}

// Controls is the minimal command surface the media clock drives.
type Controls interface {
	SetPaused(paused bool) error
	SetSpeed(rate float64) error
	Seek(seconds float64, exact bool) error
}
