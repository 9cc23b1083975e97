package ui

import (
	"sort"
	"sync"

	"github.com/gdamore/tcell/v2"

	"tradedeadline/internal/calibrate"
	"tradedeadline/internal/geo"
)

// MouseAction is what a raw mouse event means to the app
type MouseAction int

const (
	MousePress MouseAction = iota
	MouseDrag
	MouseRelease
	MouseHover
)

// MouseSource turns tcell mouse events into pointer events for calibration
// drags. Subscribers are only called from Feed.
type MouseSource struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(calibrate.PointerEvent)

	pressed bool
}

// NewMouseSource creates a source with no subscribers
func NewMouseSource() *MouseSource {
	return &MouseSource{
		subs: make(map[int]func(calibrate.PointerEvent)),
	}
}

// Subscribe registers fn until the returned function is called
func (m *MouseSource) Subscribe(fn func(calibrate.PointerEvent)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.subs[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

// Subscribers returns how many handlers are registered
func (m *MouseSource) Subscribers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs)
}

// Publish delivers ev to every subscriber in subscription order. Handlers
// may unsubscribe while being called.
func (m *MouseSource) Publish(ev calibrate.PointerEvent) {
	m.mu.Lock()
	ids := make([]int, 0, len(m.subs))
	for id := range m.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	handlers := make([]func(calibrate.PointerEvent), 0, len(ids))
	for _, id := range ids {
		handlers = append(handlers, m.subs[id])
	}
	m.mu.Unlock()

	for _, fn := range handlers {
		fn(ev)
	}
}

// Feed classifies a tcell mouse event. Moves with the primary button held
// and the release that ends them are published to subscribers; the press
// itself is left to the caller so it can decide what is being dragged.
func (m *MouseSource) Feed(ev *tcell.EventMouse) (MouseAction, geo.Point) {
	x, y := ev.Position()
	pos := geo.Point{X: float64(x), Y: float64(y)}
	down := ev.Buttons()&tcell.Button1 != 0

	switch {
	case down && !m.pressed:
		m.pressed = true
		return MousePress, pos
	case down:
		m.Publish(calibrate.PointerEvent{Kind: calibrate.PointerMove, Pos: pos})
		return MouseDrag, pos
	case m.pressed:
		m.pressed = false
		m.Publish(calibrate.PointerEvent{Kind: calibrate.PointerRelease, Pos: pos})
		return MouseRelease, pos
	default:
		return MouseHover, pos
	}
}
