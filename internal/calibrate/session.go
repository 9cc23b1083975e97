package calibrate

import (
	"tradedeadline/internal/debug"
	"tradedeadline/internal/geo"
)

// Session captures drag gestures into position overrides and probes
// coordinates under the pointer. Only one drag is active at a time.
type Session struct {
	source    PointerInputSource
	origin    geo.Point
	overrides *Overrides

	dragging    bool
	dragTeam    int
	dragStart   geo.Point
	unsubscribe func()

	probe    geo.LatLon
	hasProbe bool
}

// NewSession creates a calibration session reading pointer events from source.
// origin is the projection surface's top-left corner in the source's coordinates.
func NewSession(source PointerInputSource, origin geo.Point) *Session {
	return &Session{
		source:    source,
		origin:    origin,
		overrides: NewOverrides(),
	}
}

// Overrides returns the live override set
func (s *Session) Overrides() *Overrides {
	return s.overrides
}

// BeginDrag starts moving teamID with the pointer. A drag already in
// progress is cancelled and replaced; its last override is kept.
func (s *Session) BeginDrag(teamID int, pos geo.Point) {
	if s.dragging {
		debug.Log("Drag of team %d replaced by team %d", s.dragTeam, teamID)
		s.EndDrag()
	}

	s.dragging = true
	s.dragTeam = teamID
	s.dragStart = pos.Sub(s.origin)
	s.unsubscribe = s.source.Subscribe(func(ev PointerEvent) {
		s.handle(teamID, ev)
	})
}

// handle is bound to the team that owned the drag when it was subscribed
func (s *Session) handle(teamID int, ev PointerEvent) {
	if !s.dragging || s.dragTeam != teamID {
		return
	}

	switch ev.Kind {
	case PointerMove:
		s.overrides.Set(teamID, ev.Pos.Sub(s.origin))
	case PointerRelease:
		s.EndDrag()
	}
}

// EndDrag stops capturing pointer events. The last override stays in place.
func (s *Session) EndDrag() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	if s.dragging {
		if pt, ok := s.overrides.Get(s.dragTeam); ok {
			debug.Log("Team %d dragged from %.1f, %.1f to %.1f, %.1f",
				s.dragTeam, s.dragStart.X, s.dragStart.Y, pt.X, pt.Y)
		}
	}
	s.dragging = false
}

// Dragging returns the team being dragged, if any
func (s *Session) Dragging() (int, bool) {
	return s.dragTeam, s.dragging
}

// ResetOverrides clears every override; positions fall back to the registry
func (s *Session) ResetOverrides() {
	s.overrides.Clear()
}

// MapClick converts a pointer position to a geographic coordinate without
// touching the overrides, and remembers it as the last probe
func (s *Session) MapClick(pos geo.Point, proj geo.Projection) geo.LatLon {
	ll := proj.Unproject(pos.Sub(s.origin))
	s.probe = ll
	s.hasProbe = true
	return ll
}

// LastProbe returns the coordinate of the last MapClick
func (s *Session) LastProbe() (geo.LatLon, bool) {
	return s.probe, s.hasProbe
}
