package haptic

import (
	"github.com/gen2brain/beeep"
	"github.com/vidscrub/vidscrub/log"
)

// tone describes the beep played for an event kind.
type tone struct {
	freq     float64
	duration int
}

var tones = map[Kind]tone{
	DragStart: {freq: 660, duration: 15},
	DragEnd:   {freq: 440, duration: 15},
	Boundary:  {freq: 220, duration: 40},
	Periodic:  {freq: 880, duration: 10},
}

// Bell turns events into short system beeps. A single worker plays them so that a burst of
// events never piles up goroutines; events arriving while the queue is full are dropped.
type Bell struct {
	queue chan tone
	beep  func(freq float64, duration int) error
}

// NewBell starts the beep worker.
func NewBell() *Bell {
	return newBell(beeep.Beep)
}

func newBell(beep func(freq float64, duration int) error) *Bell {
	b := &Bell{
		queue: make(chan tone, 4),
		beep:  beep,
	}
	go b.run()
	return b
}

func (b *Bell) run() {
	for t := range b.queue {
		if err := b.beep(t.freq, t.duration); err != nil {
			log.Warnf("haptic: beep failed: %s", err)
		}
	}
}

// Close stops the worker. The bell must not be used afterwards.
func (b *Bell) Close() {
	close(b.queue)
}

func (b *Bell) emit(e Event) {
	t := tones[e.Kind]
	if e.Kind == Periodic {
		t.duration = max(1, int(float64(t.duration)*2*e.Intensity))
	}

	select {
	case b.queue <- t:
	default:
		log.Tracef("haptic: dropped %s", e)
	}
}

func (b *Bell) DragStart()       { b.emit(Event{Kind: DragStart}) }
func (b *Bell) DragEnd()         { b.emit(Event{Kind: DragEnd}) }
func (b *Bell) BoundaryReached() { b.emit(Event{Kind: Boundary}) }
func (b *Bell) PeriodicFeedback(intensity float64) {
	b.emit(Event{Kind: Periodic, Intensity: intensity})
}
