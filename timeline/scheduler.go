package timeline

import (
	"sync"
	"sync/atomic"
	"time"
)

// Task is an owned handle to a periodic callback. Stop is idempotent and takes effect immediately:
// no callback runs after Stop returns.
type Task interface {
	Stop()
}

// Scheduler runs periodic callbacks on the caller's execution context.
type Scheduler interface {
	Every(interval time.Duration, fn func()) Task
}

// TickerScheduler drives callbacks from a time.Ticker and hands every tick to dispatch, which must
// run the given function on the UI loop.
type TickerScheduler struct {
	dispatch func(func())
}

// NewTickerScheduler creates a scheduler that routes ticks through dispatch.
func NewTickerScheduler(dispatch func(func())) *TickerScheduler {
	return &TickerScheduler{dispatch: dispatch}
}

type tickerTask struct {
	stopped atomic.Bool
	stopCh  chan struct{}
	once    sync.Once
}

func (t *tickerTask) Stop() {
	t.once.Do(func() {
		t.stopped.Store(true)
		close(t.stopCh)
	})
}

// Every starts a ticker goroutine. Ticks already queued on the UI loop are dropped once the task is stopped.
func (s *TickerScheduler) Every(interval time.Duration, fn func()) Task {
	task := &tickerTask{stopCh: make(chan struct{})}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-task.stopCh:
				return
			case <-ticker.C:
				s.dispatch(func() {
					if task.stopped.Load() {
						return
					}
					fn()
				})
			}
		}
	}()

	return task
}

// ManualScheduler advances virtual time on demand. It backs deterministic replays and tests.
type ManualScheduler struct {
	now   time.Duration
	tasks []*manualTask
}

type manualTask struct {
	interval time.Duration
	next     time.Duration
	fn       func()
	stopped  bool
}

func (t *manualTask) Stop() {
	t.stopped = true
}

// Every registers a task whose first tick is one interval from the current virtual time.
func (s *ManualScheduler) Every(interval time.Duration, fn func()) Task {
	task := &manualTask{interval: interval, next: s.now + interval, fn: fn}
	s.tasks = append(s.tasks, task)
	return task
}

// Now returns the virtual time elapsed since the scheduler was created.
func (s *ManualScheduler) Now() time.Duration {
	return s.now
}

// Active returns the number of live tasks.
func (s *ManualScheduler) Active() int {
	s.prune()
	return len(s.tasks)
}

// Tick fires every live task once, regardless of its interval.
func (s *ManualScheduler) Tick() {
	s.prune()
	for _, task := range append([]*manualTask(nil), s.tasks...) {
		if !task.stopped {
			task.fn()
		}
	}
}

// Advance moves virtual time forward by d, firing due tasks in order.
func (s *ManualScheduler) Advance(d time.Duration) {
	target := s.now + d

	for {
		task := s.earliest(target)
		if task == nil {
			break
		}
		s.now = task.next
		task.next += task.interval
		task.fn()
	}

	s.now = target
	s.prune()
}

// Drain advances until no task is left or limit elapses, and reports whether everything stopped.
func (s *ManualScheduler) Drain(step, limit time.Duration) bool {
	for elapsed := time.Duration(0); elapsed < limit; elapsed += step {
		if s.Active() == 0 {
			return true
		}
		s.Advance(step)
	}
	return s.Active() == 0
}

func (s *ManualScheduler) earliest(target time.Duration) *manualTask {
	var found *manualTask
	for _, task := range s.tasks {
		if task.stopped || task.next > target {
			continue
		}
		if found == nil || task.next < found.next {
			found = task
		}
	}
	return found
}

func (s *ManualScheduler) prune() {
	live := s.tasks[:0]
	for _, task := range s.tasks {
		if !task.stopped {
			live = append(live, task)
		}
	}
	s.tasks = live
}
