package player

import (
	"crypto/rand"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/vidscrub/vidscrub/log"
	"github.com/vidscrub/vidscrub/where"
)

const (
	socketWaitRetries = 20
	socketWaitDelay   = 150 * time.Millisecond
)

var _ Player = (*MPV)(nil)

// MPV implements Player using mpv's JSON-IPC protocol.
type MPV struct {
	binary     string
	extraArgs  []string
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{}

	observerMu   sync.Mutex
	observerStop chan struct{}

	// mu serializes command round trips.
	mu sync.Mutex
}

// NewMPV creates a player that will launch binary with the given extra arguments.
func NewMPV(binary string, extraArgs []string) *MPV {
	if binary == "" {
		binary = "mpv"
	}

	return &MPV{
		binary:    binary,
		extraArgs: extraArgs,
		exited:    make(chan struct{}),
	}
}

// Play launches mpv paused on target. The window stays open at the end of the file so that the
// timeline can keep scrubbing.
func (m *MPV) Play(target string, title string) error {
	safeTarget, err := sanitizeMediaTarget(target)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	if m.socketPath == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(where.Temp(), fmt.Sprintf("mpv-%x.sock", randomBytes))
	}

	m.cmd = exec.Command(m.binary, m.buildArgs(safeTarget, sanitizeTitle(title))...)
	m.cmd.SysProcAttr = sysProcAttr()
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	m.exited = make(chan struct{})
	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	if err := m.waitForSocket(); err != nil {
		select {
		case <-m.exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(m.cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	log.Infof("mpv started on %s", m.socketPath)
	return nil
}

// buildArgs keeps the user's mpv.conf in charge of rendering; only IPC and the scrub-friendly
// lifecycle are forced.
func (m *MPV) buildArgs(target, title string) []string {
	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
		fmt.Sprintf("--force-media-title=%s", title),
		fmt.Sprintf("--title=%s", title),
		"--force-window=yes",
		"--idle=yes",
		"--keep-open=always",
		"--pause=yes",
		"--hr-seek-framedrop=yes",
	}

	args = append(args, m.extraArgs...)
	return append(args, "--", target)
}

// Wait returns a channel that is closed when the mpv process exits.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

func (m *MPV) GetTimePos() (float64, error) {
	return m.getFloatProperty("time-pos")
}

func (m *MPV) GetDuration() (float64, error) {
	return m.getFloatProperty("duration")
}

// Seek moves playback to an absolute position. Inexact seeks snap to keyframes, which keeps
// previews responsive while dragging.
func (m *MPV) Seek(seconds float64, exact bool) error {
	flags := "absolute+keyframes"
	if exact {
		flags = "absolute+exact"
	}

	_, err := m.sendCommand("seek", seconds, flags)
	return err
}

func (m *MPV) SetPaused(paused bool) error {
	return m.Set("pause", paused)
}

func (m *MPV) SetSpeed(rate float64) error {
	return m.Set("speed", rate)
}

// StartTimeObserver polls time-pos every interval until stopped or until mpv exits.
// Polling errors are expected while nothing is loaded and are skipped.
func (m *MPV) StartTimeObserver(interval time.Duration, callback func(timePos float64)) {
	m.observerMu.Lock()
	defer m.observerMu.Unlock()

	if m.observerStop != nil {
		return
	}

	stop := make(chan struct{})
	m.observerStop = stop
	exited := m.exited

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-exited:
				return
			case <-ticker.C:
				pos, err := m.GetTimePos()
				if err != nil {
					log.Tracef("time observer: %v", err)
					continue
				}
				callback(pos)
			}
		}
	}()
}

func (m *MPV) StopTimeObserver() {
	m.observerMu.Lock()
	defer m.observerMu.Unlock()

	if m.observerStop != nil {
		close(m.observerStop)
		m.observerStop = nil
	}
}

// Close shuts down the mpv process and removes its socket.
func (m *MPV) Close() error {
	m.StopTimeObserver()

	if m.socketPath == "" {
		return nil
	}

	_, _ = m.sendCommand("quit")

	select {
	case <-m.exited:
	case <-time.After(3 * time.Second):
		_ = killProcess(m.cmd)
	}

	_ = os.Remove(m.socketPath)
	return nil
}

func (m *MPV) Socket() string {
	return m.socketPath
}

// Set writes a property.
func (m *MPV) Set(property string, value any) error {
	_, err := m.sendCommand("set_property", property, value)
	return err
}

func (m *MPV) getFloatProperty(name string) (float64, error) {
	data, err := m.sendCommand("get_property", name)
	if err != nil {
		return 0, err
	}

	if data == nil {
		return 0, fmt.Errorf("property %s: nil response", name)
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}

	return val, nil
}

// sanitizeMediaTarget accepts local paths and http(s) URLs and rejects anything mpv could take
// for an option.
func sanitizeMediaTarget(target string) (string, error) {
	t := strings.TrimSpace(target)
	if t == "" {
		return "", fmt.Errorf("empty target")
	}

	if strings.ContainsAny(t, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in target")
	}

	if strings.HasPrefix(t, "-") {
		return "", fmt.Errorf("target must not start with '-'")
	}

	if strings.Contains(t, "://") {
		u, err := url.Parse(t)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return t, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(t), nil
}

func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
