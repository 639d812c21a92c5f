package player

import (
	"sort"
	"sync"
	"time"
)

// CancelFunc cancels a scheduled callback. Calling it after the callback ran,
// or more than once, is a no-op.
type CancelFunc func()

// Scheduler runs a callback after a delay.
type Scheduler interface {
	After(d time.Duration, fn func()) CancelFunc
}

// TimerScheduler schedules callbacks on runtime timers. Callbacks run on
// their own goroutine; Session serialises them with its mutex.
type TimerScheduler struct{}

func (TimerScheduler) After(d time.Duration, fn func()) CancelFunc {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// Task is a callback queued on a ManualScheduler.
type Task struct {
	ID    int
	Delay time.Duration
}

// ManualScheduler queues callbacks until the host fires them. Event-loop
// hosts (the TUI) turn each queued Task into their own timer message and
// call Fire on delivery, so callbacks run on the host's thread.
type ManualScheduler struct {
	mu      sync.Mutex
	nextID  int
	pending map[int]func()
	fresh   []Task
}

// NewManualScheduler creates an empty ManualScheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{pending: make(map[int]func())}
}

func (m *ManualScheduler) After(d time.Duration, fn func()) CancelFunc {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := m.nextID
	m.pending[id] = fn
	m.fresh = append(m.fresh, Task{ID: id, Delay: d})
	return func() {
		m.mu.Lock()
		delete(m.pending, id)
		m.mu.Unlock()
	}
}

// TakeNew returns tasks scheduled since the previous call.
func (m *ManualScheduler) TakeNew() []Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.fresh
	m.fresh = nil
	return out
}

// Fire runs the task's callback if it is still pending. It reports whether
// the callback ran.
func (m *ManualScheduler) Fire(id int) bool {
	m.mu.Lock()
	fn, ok := m.pending[id]
	delete(m.pending, id)
	m.mu.Unlock()
	if !ok {
		return false
	}
	fn()
	return true
}

// FireAll runs every pending callback in scheduling order, including ones
// scheduled by the callbacks themselves. It returns the number run.
func (m *ManualScheduler) FireAll() int {
	n := 0
	for {
		m.mu.Lock()
		ids := make([]int, 0, len(m.pending))
		for id := range m.pending {
			ids = append(ids, id)
		}
		m.fresh = nil
		m.mu.Unlock()
		if len(ids) == 0 {
			return n
		}
		sort.Ints(ids)
		for _, id := range ids {
			if m.Fire(id) {
				n++
			}
		}
	}
}

// Len returns the number of pending callbacks.
func (m *ManualScheduler) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}
