package player

import (
	"fmt"
	"sync"

	"github.com/vidscrub/vidscrub/log"
	"github.com/vidscrub/vidscrub/timeline"
)

type commandKind int

const (
	commandPlay commandKind = iota
	commandPause
	commandRate
	commandSeek
)

type command struct {
	kind      commandKind
	value     float64
	tolerance timeline.Tolerance
}

func (c command) String() string {
	switch c.kind {
	case commandPlay:
		return "play"
	case commandPause:
		return "pause"
	case commandRate:
		return fmt.Sprintf("speed %g", c.value)
	default:
		return fmt.Sprintf("seek %.3f (%s)", c.value, c.tolerance)
	}
}

// Clock adapts Controls to timeline.MediaClock. Commands are queued and executed in order by a
// single worker so the UI loop never waits on IPC. Consecutive loose seeks collapse into the
// latest one.
type Clock struct {
	controls Controls
	onError  func(error)

	mu      sync.Mutex
	queue   []command
	closed  bool
	wake    chan struct{}
	stopped chan struct{}
}

// NewClock starts the command worker. onError, if set, receives every failed command from the
// worker goroutine.
func NewClock(controls Controls, onError func(error)) *Clock {
	c := &Clock{
		controls: controls,
		onError:  onError,
		wake:     make(chan struct{}, 1),
		stopped:  make(chan struct{}),
	}
	go c.run()
	return c
}

func (c *Clock) Play()  { c.enqueue(command{kind: commandPlay}) }
func (c *Clock) Pause() { c.enqueue(command{kind: commandPause}) }

func (c *Clock) SetRate(multiplier float64) {
	c.enqueue(command{kind: commandRate, value: multiplier})
}

func (c *Clock) Seek(seconds float64, tolerance timeline.Tolerance) {
	c.enqueue(command{kind: commandSeek, value: seconds, tolerance: tolerance})
}

// Pending returns the number of queued commands.
func (c *Clock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// Close executes what is already queued and stops the worker.
func (c *Clock) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		<-c.stopped
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.signal()
	<-c.stopped
}

func (c *Clock) enqueue(cmd command) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	if n := len(c.queue); n > 0 && isPreview(cmd) && isPreview(c.queue[n-1]) {
		c.queue[n-1] = cmd
	} else {
		c.queue = append(c.queue, cmd)
	}
	c.mu.Unlock()

	c.signal()
}

func (c *Clock) signal() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

func (c *Clock) run() {
	defer close(c.stopped)

	for range c.wake {
		for {
			cmd, ok, done := c.next()
			if done {
				return
			}
			if !ok {
				break
			}
			c.execute(cmd)
		}
	}
}

// next pops the head of the queue and reports whether the worker should exit.
func (c *Clock) next() (cmd command, ok bool, done bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.queue) == 0 {
		return command{}, false, c.closed
	}

	cmd = c.queue[0]
	c.queue = c.queue[1:]
	return cmd, true, false
}

func (c *Clock) execute(cmd command) {
	var err error

	switch cmd.kind {
	case commandPlay:
		err = c.controls.SetPaused(false)
	case commandPause:
		err = c.controls.SetPaused(true)
	case commandRate:
		err = c.controls.SetSpeed(cmd.value)
	case commandSeek:
		err = c.controls.Seek(cmd.value, cmd.tolerance == timeline.Exact)
	}

	if err == nil {
		return
	}

	err = fmt.Errorf("%s: %w", cmd, err)
	log.Warnf("media clock: %s", err)
	if c.onError != nil {
		c.onError(err)
	}
}

func isPreview(cmd command) bool {
	return cmd.kind == commandSeek && cmd.tolerance == timeline.Loose
}
