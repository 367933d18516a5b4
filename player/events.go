package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/vidscrub/vidscrub/log"
)

// Event is a property change or a plain mpv event.
type Event struct {
	Name string
	Data any
}

// Float returns the payload as a number.
func (e Event) Float() (float64, bool) {
	f, ok := e.Data.(float64)
	return f, ok
}

// Bool returns the payload as a flag.
func (e Event) Bool() (bool, bool) {
	b, ok := e.Data.(bool)
	return b, ok
}

// observed lists the properties the listener subscribes to.
var observed = []string{"duration", "pause", "eof-reached", "speed"}

// EventListener streams mpv property changes over a dedicated IPC connection. Observers are
// registered on that same connection since mpv scopes them to the client that asked.
type EventListener struct {
	socketPath string
	callback   func(Event)

	mu        sync.Mutex
	conn      net.Conn
	listening bool
	done      chan struct{}
}

// NewEventListener creates a listener that reports every event to callback from its own goroutine.
func NewEventListener(socketPath string, callback func(Event)) *EventListener {
	return &EventListener{
		socketPath: socketPath,
		callback:   callback,
	}
}

// Start connects, subscribes and starts the read loop.
func (el *EventListener) Start() error {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.listening {
		return nil
	}

	conn, err := net.Dial("unix", el.socketPath)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}

	for id, name := range observed {
		if err := writeCommand(conn, []any{"observe_property", id + 1, name}); err != nil {
			conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}
	}

	el.conn = conn
	el.listening = true
	el.done = make(chan struct{})

	go el.readLoop(conn, el.done)

	log.Infof("mpv event listener started on %s", el.socketPath)
	return nil
}

// Stop closes the connection and waits for the read loop to exit.
func (el *EventListener) Stop() {
	el.mu.Lock()
	if !el.listening {
		el.mu.Unlock()
		return
	}
	el.listening = false
	conn, done := el.conn, el.done
	el.mu.Unlock()

	_ = conn.Close()
	<-done
}

func (el *EventListener) readLoop(conn net.Conn, done chan struct{}) {
	defer close(done)

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 4096), maxLineSize)

	for scanner.Scan() {
		event, ok := ParseEvent(scanner.Bytes())
		if ok && el.callback != nil {
			el.callback(event)
		}
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, net.ErrClosed) {
		log.Warnf("event listener read error: %v", err)
	}
}

// ParseEvent decodes one IPC line. Command replies and malformed lines are skipped.
func ParseEvent(line []byte) (Event, bool) {
	var raw struct {
		Event string `json:"event"`
		Name  string `json:"name"`
		Data  any    `json:"data"`
	}

	if err := json.Unmarshal(line, &raw); err != nil || raw.Event == "" {
		return Event{}, false
	}

	if raw.Event == "property-change" {
		if raw.Name == "" {
			return Event{}, false
		}
		return Event{Name: raw.Name, Data: raw.Data}, true
	}

	return Event{Name: raw.Event}, true
}
