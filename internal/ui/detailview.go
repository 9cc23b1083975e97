package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"tradedeadline/internal/render"
	"tradedeadline/internal/session"
	"tradedeadline/internal/trade"
)

// DetailView is a boxed panel of text lines: team detail on hover, or
// calibration state in debug mode
type DetailView struct {
	title         string
	lines         []string
	x, y          int
	width, height int
}

// NewDetailView creates a new detail view
func NewDetailView(x, y, width, height int) *DetailView {
	return &DetailView{
		x:      x,
		y:      y,
		width:  width,
		height: height,
	}
}

// SetContent replaces the panel text
func (d *DetailView) SetContent(title string, lines []string) {
	d.title = title
	d.lines = lines
}

// Draw renders the detail view to the screen
func (d *DetailView) Draw(screen tcell.Screen) {
	if d.width < 3 || d.height < 3 {
		return
	}

	c := render.NewCanvas(d.width, d.height)
	c.DrawBox(0, 0, d.width, d.height, render.StyleLabel)

	title := " " + d.title + " "
	c.DrawText((d.width-render.TextWidth(title))/2, 0, title, render.StyleLabel)

	for i, line := range d.lines {
		if i+1 >= d.height-1 {
			break
		}
		c.DrawTextClipped(2, i+1, d.width-4, line, render.StyleLabel)
	}

	c.Blit(screen, d.x, d.y)
}

// UpdateDimensions updates the view dimensions
func (d *DetailView) UpdateDimensions(x, y, width, height int) {
	d.x = x
	d.y = y
	d.width = width
	d.height = height
}

// teamDetail lists a team's stadium, drawn position and the players who
// have arrived there so far
func teamDetail(s *session.Session, team trade.Team) []string {
	lines := []string{fmt.Sprintf("Team:      %s (%s)", team.Name, team.Label())}

	st, ok := s.Registry().StadiumOf(team.Name)
	switch {
	case !ok:
		lines = append(lines, "Stadium:   unknown")
	case st.Name == "":
		lines = append(lines, fmt.Sprintf("Location:  %.4f, %.4f", st.Location.Lat, st.Location.Lon))
	default:
		lines = append(lines,
			fmt.Sprintf("Stadium:   %s", st.Name),
			fmt.Sprintf("City:      %s, %s", st.City, st.State),
		)
	}

	pos := s.ResolvedPosition(team)
	suffix := ""
	if _, ok := s.Calibration().Overrides().Get(team.ID); ok {
		suffix = " (override)"
	}
	lines = append(lines, fmt.Sprintf("Position:  %.1f, %.1f%s", pos.X, pos.Y, suffix))

	arrivals := trade.ArrivalsAt(s.ActiveMovements(), team.ID)
	lines = append(lines, fmt.Sprintf("Arrivals:  %d", len(arrivals)))
	for _, m := range arrivals {
		lines = append(lines, fmt.Sprintf("  %s from %s", m.PlayerName, m.From.Label()))
	}

	return lines
}

// debugDetail shows the projection and calibration state
func debugDetail(s *session.Session) []string {
	p := s.Projection()
	calib := s.Calibration()

	lines := []string{
		fmt.Sprintf("Lat:       %.2f .. %.2f", p.Bounds.MinLat, p.Bounds.MaxLat),
		fmt.Sprintf("Lon:       %.2f .. %.2f", p.Bounds.MinLon, p.Bounds.MaxLon),
		fmt.Sprintf("Size:      %.0f x %.0f", p.Size.Width, p.Size.Height),
		fmt.Sprintf("Offset:    %.0f, %.0f", p.Offset.X, p.Offset.Y),
		fmt.Sprintf("Rotation:  %.1f°", p.Rotation),
		fmt.Sprintf("Overrides: %d", calib.Overrides().Len()),
	}

	if id, ok := calib.Dragging(); ok {
		name := "Unknown"
		if team, found := s.TeamByID(id); found {
			name = team.Name
		}
		lines = append(lines, fmt.Sprintf("Dragging:  %s", name))
	}

	if ll, ok := calib.LastProbe(); ok {
		lines = append(lines, fmt.Sprintf("Probe:     %.4f, %.4f", ll.Lat, ll.Lon))
	}

	lines = append(lines, "", "drag team  click probe", "arrows/+-/<> adjust  x c l")
	return lines
}
