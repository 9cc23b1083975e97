package timeline

import (
	"sync"
	"time"
)

// CancelFunc stops a scheduled task. Calling it more than once is safe.
type CancelFunc func()

// Scheduler runs fn repeatedly every period until cancelled
type Scheduler interface {
	Every(period time.Duration, fn func()) CancelFunc
}

// TickerScheduler drives tasks from a time.Ticker on its own goroutine.
// Each task calls fn sequentially, so one tick never overlaps the next.
type TickerScheduler struct{}

// Every starts a ticker goroutine for fn
func (TickerScheduler) Every(period time.Duration, fn func()) CancelFunc {
	done := make(chan struct{})
	var once sync.Once

	go func() {
		ticker := time.NewTicker(period)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				// Cancel may race with a tick that already fired
				select {
				case <-done:
					return
				default:
				}
				fn()
			}
		}
	}()

	return func() {
		once.Do(func() { close(done) })
	}
}

// ManualScheduler fires ticks only when told to, for deterministic tests
// and single-stepping
type ManualScheduler struct {
	mu     sync.Mutex
	nextID int
	tasks  map[int]func()
	order  []int
}

// NewManualScheduler creates an empty manual scheduler
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{
		tasks: make(map[int]func()),
	}
}

// Every registers fn; period is ignored
func (m *ManualScheduler) Every(_ time.Duration, fn func()) CancelFunc {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.tasks[id] = fn
	m.order = append(m.order, id)

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.tasks, id)
	}
}

// Tick fires every active task once, in registration order
func (m *ManualScheduler) Tick() {
	m.mu.Lock()
	fns := make([]func(), 0, len(m.tasks))
	live := m.order[:0]
	for _, id := range m.order {
		if fn, ok := m.tasks[id]; ok {
			fns = append(fns, fn)
			live = append(live, id)
		}
	}
	m.order = live
	m.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Active returns the number of tasks that have not been cancelled
func (m *ManualScheduler) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}
