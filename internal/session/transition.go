package session

import (
	"time"

	"tradedeadline/internal/geo"
	"tradedeadline/internal/trade"
)

// DefaultTransitionDuration is how long a player marker takes to cross the map
const DefaultTransitionDuration = 2 * time.Second

// Transition animates the current movement between two resolved team positions
type Transition struct {
	Movement trade.Movement
	From     geo.Point
	To       geo.Point
	Start    time.Time
	Duration time.Duration
}

// Progress returns the linear completion in [0, 1]
func (t Transition) Progress(now time.Time) float64 {
	if t.Duration <= 0 {
		return 1
	}
	p := float64(now.Sub(t.Start)) / float64(t.Duration)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Done reports whether the marker has arrived
func (t Transition) Done(now time.Time) bool {
	return t.Progress(now) >= 1
}

// PositionAt returns the eased marker position at now
func (t Transition) PositionAt(now time.Time) geo.Point {
	e := easeInOut(t.Progress(now))
	return geo.Point{
		X: t.From.X + (t.To.X-t.From.X)*e,
		Y: t.From.Y + (t.To.Y-t.From.Y)*e,
	}
}

// easeInOut is a cubic ease: slow start, fast middle, slow arrival
func easeInOut(p float64) float64 {
	if p < 0.5 {
		return 4 * p * p * p
	}
	q := -2*p + 2
	return 1 - q*q*q/2
}
