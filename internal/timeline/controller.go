package timeline

import (
	"fmt"
	"sync"
	"time"

	"tradedeadline/internal/trade"
)

// DefaultCadence is how long each movement stays current while playing
const DefaultCadence = 2 * time.Second

// State is the playback state of a Controller
type State int

const (
	Idle State = iota
	Playing
	Paused
	Finished
)

// String returns a string representation of the state
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	case Finished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// Snapshot is a consistent copy of the controller state
type Snapshot struct {
	State State
	Index int
	Total int
	// Active is movements[0..Index], or empty while Idle
	Active []trade.Movement
	// Since is when the current index (or playback) began
	Since time.Time
}

// IsPlaying reports whether ticks are advancing the index
func (s Snapshot) IsPlaying() bool {
	return s.State == Playing
}

// Current returns the last active movement, the one being animated
func (s Snapshot) Current() (trade.Movement, bool) {
	if len(s.Active) == 0 {
		return trade.Movement{}, false
	}
	return s.Active[len(s.Active)-1], true
}

// Progress formats the position as "X/N"
func (s Snapshot) Progress() string {
	return fmt.Sprintf("%d/%d", len(s.Active), s.Total)
}

// Option configures a Controller
type Option func(*Controller)

// WithClock overrides time.Now, used to stamp index changes
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// WithOnChange registers a callback invoked after every transition.
// It runs outside the controller lock and may call back into the controller.
func WithOnChange(fn func(Snapshot)) Option {
	return func(c *Controller) {
		c.onChange = fn
	}
}

// Controller plays a movement sequence one entry per tick.
// At most one scheduled task exists at a time; every transition out of
// Playing cancels it before returning.
type Controller struct {
	mu        sync.Mutex
	sched     Scheduler
	cadence   time.Duration
	now       func() time.Time
	onChange  func(Snapshot)
	movements []trade.Movement
	state     State
	index     int
	since     time.Time
	gen       uint64
	cancel    CancelFunc
}

// NewController creates an idle controller with no movements
func NewController(sched Scheduler, cadence time.Duration, opts ...Option) *Controller {
	if cadence <= 0 {
		cadence = DefaultCadence
	}

	c := &Controller{
		sched:   sched,
		cadence: cadence,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.since = c.now()

	return c
}

// SetMovements replaces the sequence and returns to Idle.
// The index is not carried over since the list identity changed.
func (c *Controller) SetMovements(movements []trade.Movement) {
	c.mu.Lock()
	c.stopLocked()
	c.movements = movements
	c.state = Idle
	c.index = 0
	c.markLocked()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
}

// Play starts or resumes playback. Playing from Finished replays from the start.
// It does nothing when already playing or when there is nothing to play.
func (c *Controller) Play() {
	c.mu.Lock()
	changed := c.playLocked()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if changed {
		c.notify(snap)
	}
}

// Pause stops advancing without moving the index
func (c *Controller) Pause() {
	c.mu.Lock()
	changed := c.pauseLocked()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if changed {
		c.notify(snap)
	}
}

// Toggle pauses when playing and plays otherwise. The state is read and
// changed under one lock so a concurrent tick cannot swallow the toggle.
func (c *Controller) Toggle() {
	c.mu.Lock()
	var changed bool
	if c.state == Playing {
		changed = c.pauseLocked()
	} else {
		changed = c.playLocked()
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if changed {
		c.notify(snap)
	}
}

func (c *Controller) playLocked() bool {
	if len(c.movements) == 0 || c.state == Playing {
		return false
	}

	if c.state == Finished {
		c.index = 0
	}
	c.state = Playing
	c.markLocked()
	c.startLocked()
	return true
}

func (c *Controller) pauseLocked() bool {
	if c.state != Playing {
		return false
	}

	c.stopLocked()
	c.state = Paused
	return true
}

// Reset returns to Idle at index 0 with no active movements
func (c *Controller) Reset() {
	c.mu.Lock()
	c.stopLocked()
	c.state = Idle
	c.index = 0
	c.markLocked()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
}

// SkipToEnd jumps to the last movement and stops
func (c *Controller) SkipToEnd() {
	c.mu.Lock()
	if len(c.movements) == 0 {
		c.mu.Unlock()
		return
	}

	c.stopLocked()
	c.state = Finished
	c.index = len(c.movements) - 1
	c.markLocked()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
}

// Seek moves the index to i, clamped to the sequence. A running playback
// keeps playing from the new position; Idle becomes Paused.
func (c *Controller) Seek(i int) {
	c.mu.Lock()
	changed := c.seekLocked(i)
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if changed {
		c.notify(snap)
	}
}

// Step moves the index by delta, see Seek
func (c *Controller) Step(delta int) {
	c.mu.Lock()
	changed := c.seekLocked(c.index + delta)
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if changed {
		c.notify(snap)
	}
}

func (c *Controller) seekLocked(i int) bool {
	if len(c.movements) == 0 {
		return false
	}

	c.index = clamp(i, 0, len(c.movements)-1)
	switch c.state {
	case Idle, Finished:
		c.state = Paused
	}
	c.markLocked()
	return true
}

// Close cancels any pending tick
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

// Snapshot returns the current state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// tick advances one movement. Ticks from a task that has since been
// replaced or cancelled are ignored.
func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || c.state != Playing {
		c.mu.Unlock()
		return
	}

	last := len(c.movements) - 1
	if c.index+1 > last {
		c.index = last
		c.state = Finished
		c.stopLocked()
	} else {
		c.index++
		c.markLocked()
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
}

func (c *Controller) startLocked() {
	c.stopLocked()
	gen := c.gen
	c.cancel = c.sched.Every(c.cadence, func() { c.tick(gen) })
}

func (c *Controller) stopLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.gen++
}

func (c *Controller) markLocked() {
	c.since = c.now()
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		State: c.state,
		Index: c.index,
		Total: len(c.movements),
		Since: c.since,
	}
	if c.state != Idle && len(c.movements) > 0 {
		snap.Active = c.movements[: c.index+1 : c.index+1]
	}
	return snap
}

func (c *Controller) notify(snap Snapshot) {
	if c.onChange != nil {
		c.onChange(snap)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
