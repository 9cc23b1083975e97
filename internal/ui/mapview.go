package ui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"tradedeadline/internal/geo"
	"tradedeadline/internal/render"
	"tradedeadline/internal/session"
	"tradedeadline/internal/trade"
)

// gridStep is the graticule spacing in degrees for the debug overlay
const gridStep = 5.0

// MapView displays the backdrop, team markers and movement animation
type MapView struct {
	renderer *render.MapRenderer
	canvas   *render.Canvas
	width    int
	height   int
}

// MapState is the per-frame input to Draw beyond the session itself
type MapState struct {
	Debug    bool
	Hovered  int
	Selected *trade.Movement
	Now      time.Time
}

// NewMapView creates a new map view
func NewMapView(width, height int, proj geo.Projection, features map[geo.FeatureType][]*geo.Feature) *MapView {
	canvas := render.NewCanvas(width, height)
	renderer := render.NewMapRenderer(proj, features, canvas)

	return &MapView{
		renderer: renderer,
		canvas:   canvas,
		width:    width,
		height:   height,
	}
}

// Draw renders the map view to the screen
func (m *MapView) Draw(screen tcell.Screen, s *session.Session, state MapState) {
	m.canvas.Clear()
	m.renderer.UpdateProjection(s.Projection())

	m.renderer.RenderBackdrop()
	if state.Debug {
		m.renderer.RenderGrid(gridStep)
	}

	active := s.ActiveMovements()
	m.renderer.RenderTrails(trails(s, active))
	m.renderer.RenderTeams(m.markers(s, active, state))

	if tr, ok := s.CurrentTransition(); ok && !tr.Done(state.Now) {
		m.renderer.RenderPlayer(tr.PositionAt(state.Now), tr.Movement.PlayerName, render.StylePlayer)
	}

	if state.Debug {
		if ll, ok := s.Calibration().LastProbe(); ok {
			m.renderer.RenderProbe(s.Projection().Project(ll.Lat, ll.Lon))
		}
	}

	m.canvas.Blit(screen, 0, 0)
}

// trails converts revealed, mappable movements into faded lines, newest first
func trails(s *session.Session, active []trade.Movement) []render.Trail {
	out := make([]render.Trail, 0, len(active))
	for i := len(active) - 1; i >= 0; i-- {
		mv := active[i]
		if !mv.Mappable() {
			continue
		}
		out = append(out, render.Trail{
			From: s.ResolvedPosition(*mv.From),
			To:   s.ResolvedPosition(*mv.To),
			Age:  len(active) - 1 - i,
		})
	}
	for i := range out {
		out[i].Total = len(active)
	}
	return out
}

func (m *MapView) markers(s *session.Session, active []trade.Movement, state MapState) []render.TeamMarker {
	overrides := s.Calibration().Overrides()
	teams := s.Teams()
	out := make([]render.TeamMarker, 0, len(teams))

	for _, team := range teams {
		pos := s.ResolvedPosition(team)
		label := team.Label()
		if state.Debug {
			label = fmt.Sprintf("%s %.0f,%.0f", label, pos.X, pos.Y)
		}

		style := tcell.StyleDefault.Foreground(render.TeamColor(team.ID))
		if trade.Involves(active, team.ID) {
			style = render.StyleTeamActive
		}
		if _, ok := overrides.Get(team.ID); ok && state.Debug {
			style = render.StyleTeamOverride
		}
		if team.ID == state.Hovered || selectedTouches(state.Selected, team.ID) {
			style = render.StyleSelected
		}

		out = append(out, render.TeamMarker{Label: label, Pos: pos, Style: style})
	}

	return out
}

func selectedTouches(m *trade.Movement, teamID int) bool {
	if m == nil {
		return false
	}
	return (m.From != nil && m.From.ID == teamID) || (m.To != nil && m.To.ID == teamID)
}

// UpdateDimensions updates the view dimensions when the screen is resized
func (m *MapView) UpdateDimensions(width, height int) {
	m.width = width
	m.height = height

	m.canvas = render.NewCanvas(width, height)
	m.renderer.UpdateCanvas(m.canvas)
}

// FitProjection sizes p to fill the view, keeping its offset as a margin
func (m *MapView) FitProjection(p geo.Projection) geo.Projection {
	p.Size = geo.Size{
		Width:  float64(m.width) - 2*p.Offset.X - 1,
		Height: float64(m.height) - 2*p.Offset.Y - 1,
	}
	return p
}
