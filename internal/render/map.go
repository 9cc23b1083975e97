package render

import (
	"math"

	"tradedeadline/internal/debug"
	"tradedeadline/internal/geo"

	"github.com/gdamore/tcell/v2"
)

// TeamMarker is a team drawn at its resolved position
type TeamMarker struct {
	Label string
	Pos   geo.Point
	Style tcell.Style
}

// Trail is a revealed movement drawn as a faded line between two teams.
// Age 0 is the newest of Total trails.
type Trail struct {
	From  geo.Point
	To    geo.Point
	Age   int
	Total int
}

// MapRenderer renders the backdrop, team markers and movements to a canvas
type MapRenderer struct {
	projection geo.Projection
	features   map[geo.FeatureType][]*geo.Feature
	canvas     *Canvas
}

// NewMapRenderer creates a new map renderer
func NewMapRenderer(projection geo.Projection, features map[geo.FeatureType][]*geo.Feature, canvas *Canvas) *MapRenderer {
	return &MapRenderer{
		projection: projection,
		features:   features,
		canvas:     canvas,
	}
}

// RenderBackdrop draws coastlines then state borders. Only the backdrop
// honours the projection's rotation.
func (m *MapRenderer) RenderBackdrop() {
	m.renderFeatureType(geo.FeatureCoastline)
	m.renderFeatureType(geo.FeatureStateBorder)
}

// renderFeatureType renders all features of a specific type
func (m *MapRenderer) renderFeatureType(ftype geo.FeatureType) {
	features, exists := m.features[ftype]
	if !exists {
		return
	}

	visible := geo.FilterByBounds(features, m.projection.Bounds)
	if debug.Enabled() {
		debug.Log("Rendering %d %s features (of %d total)", len(visible), ftype, len(features))
	}

	for _, feature := range visible {
		m.RenderFeature(feature)
	}
}

// RenderFeature draws a single backdrop polyline
func (m *MapRenderer) RenderFeature(feature *geo.Feature) {
	style := GetStyleForFeature(feature.Type)
	char := GetCharForFeature(feature.Type)

	for i := 0; i < len(feature.Points)-1; i++ {
		p1 := m.backdropPoint(feature.Points[i])
		p2 := m.backdropPoint(feature.Points[i+1])
		x0, y0 := p1.Cell()
		x1, y1 := p2.Cell()
		m.DrawLine(x0, y0, x1, y1, char, style)
	}
}

func (m *MapRenderer) backdropPoint(ll geo.LatLon) geo.Point {
	return m.projection.RotateBackdrop(m.projection.Project(ll.Lat, ll.Lon))
}

// RenderGrid outlines the projected rectangle and marks a graticule every
// step degrees. Used while calibrating.
func (m *MapRenderer) RenderGrid(step float64) {
	p := m.projection
	x, y := p.Offset.Cell()
	w := int(math.Round(p.Size.Width))
	h := int(math.Round(p.Size.Height))
	m.canvas.DrawBox(x, y, w+1, h+1, StyleGrid)

	if step <= 0 {
		return
	}
	b := p.Bounds
	for lat := math.Ceil(b.MinLat/step) * step; lat <= b.MaxLat; lat += step {
		for lon := math.Ceil(b.MinLon/step) * step; lon <= b.MaxLon; lon += step {
			cx, cy := p.Project(lat, lon).Cell()
			m.canvas.Set(cx, cy, '+', StyleGrid)
		}
	}
}

// RenderTrails draws revealed movements oldest first so newer trails win
func (m *MapRenderer) RenderTrails(trails []Trail) {
	for i := len(trails) - 1; i >= 0; i-- {
		t := trails[i]
		style := tcell.StyleDefault.Foreground(TrailColor(t.Age, t.Total))
		x0, y0 := t.From.Cell()
		x1, y1 := t.To.Cell()
		m.DrawLine(x0, y0, x1, y1, '.', style)
	}
}

// RenderTeams draws a dot and label for every marker. Labels that would run
// off the right edge are drawn to the left of the dot.
func (m *MapRenderer) RenderTeams(markers []TeamMarker) {
	for _, mk := range markers {
		x, y := mk.Pos.Cell()
		m.canvas.Set(x, y, '●', mk.Style)

		if mk.Label == "" {
			continue
		}
		w := TextWidth(mk.Label)
		if x+1+w < m.canvas.Width() {
			m.canvas.DrawText(x+1, y, mk.Label, mk.Style)
		} else {
			m.canvas.DrawText(x-w, y, mk.Label, mk.Style)
		}
	}
}

// RenderPlayer draws the animated player marker with a short name
func (m *MapRenderer) RenderPlayer(pos geo.Point, label string, style tcell.Style) {
	x, y := pos.Cell()
	m.canvas.Set(x, y, '◆', style)
	if label != "" {
		m.canvas.DrawTextClipped(x+1, y-1, m.canvas.Width()-x-1, label, style)
	}
}

// RenderProbe marks the last calibration click
func (m *MapRenderer) RenderProbe(pos geo.Point) {
	x, y := pos.Cell()
	m.canvas.Set(x, y, 'X', StyleProbe)
}

// DrawLine implements Bresenham's line algorithm for drawing lines on the canvas
func (m *MapRenderer) DrawLine(x0, y0, x1, y1 int, char rune, style tcell.Style) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)

	sx := -1
	if x0 < x1 {
		sx = 1
	}

	sy := -1
	if y0 < y1 {
		sy = 1
	}

	err := dx - dy

	for {
		m.canvas.Set(x0, y0, char, style)

		if x0 == x1 && y0 == y1 {
			break
		}

		e2 := 2 * err

		if e2 > -dy {
			err -= dy
			x0 += sx
		}

		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// abs returns the absolute value of an integer
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// UpdateProjection updates the renderer's projection
func (m *MapRenderer) UpdateProjection(projection geo.Projection) {
	m.projection = projection
}

// UpdateCanvas updates the renderer's canvas
func (m *MapRenderer) UpdateCanvas(canvas *Canvas) {
	m.canvas = canvas
}
