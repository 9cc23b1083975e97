package calibrate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradedeadline/internal/geo"
)

// fakeSource records subscriptions and lets tests emit events
type fakeSource struct {
	next int
	subs map[int]func(PointerEvent)
}

func newFakeSource() *fakeSource {
	return &fakeSource{subs: make(map[int]func(PointerEvent))}
}

func (f *fakeSource) Subscribe(fn func(PointerEvent)) func() {
	id := f.next
	f.next++
	f.subs[id] = fn
	return func() { delete(f.subs, id) }
}

func (f *fakeSource) emit(ev PointerEvent) {
	fns := make([]func(PointerEvent), 0, len(f.subs))
	for _, fn := range f.subs {
		fns = append(fns, fn)
	}
	for _, fn := range fns {
		fn(ev)
	}
}

func move(x, y float64) PointerEvent {
	return PointerEvent{Kind: PointerMove, Pos: geo.Point{X: x, Y: y}}
}

func TestDragCreatesOverrideRelativeToOrigin(t *testing.T) {
	src := newFakeSource()
	s := NewSession(src, geo.Point{X: 10, Y: 5})

	s.BeginDrag(111, geo.Point{X: 20, Y: 20})
	require.Len(t, src.subs, 1)

	src.emit(move(30, 25))
	src.emit(move(40, 35))

	pt, ok := s.Overrides().Get(111)
	require.True(t, ok)
	assert.Equal(t, geo.Point{X: 30, Y: 30}, pt)

	s.EndDrag()
	assert.Empty(t, src.subs, "drag end detaches the listener")

	src.emit(move(0, 0))
	pt, _ = s.Overrides().Get(111)
	assert.Equal(t, geo.Point{X: 30, Y: 30}, pt, "override persists after the drag")
}

func TestReleaseEndsDrag(t *testing.T) {
	src := newFakeSource()
	s := NewSession(src, geo.Point{})

	s.BeginDrag(7, geo.Point{})
	src.emit(move(1, 2))
	src.emit(PointerEvent{Kind: PointerRelease, Pos: geo.Point{X: 1, Y: 2}})

	_, dragging := s.Dragging()
	assert.False(t, dragging)
	assert.Empty(t, src.subs)
	assert.Equal(t, 1, s.Overrides().Len())
}

func TestNewDragReplacesActiveDrag(t *testing.T) {
	src := newFakeSource()
	s := NewSession(src, geo.Point{})

	s.BeginDrag(1, geo.Point{})
	src.emit(move(5, 5))

	s.BeginDrag(2, geo.Point{})
	assert.Len(t, src.subs, 1, "previous listener detached")

	src.emit(move(9, 9))

	p1, _ := s.Overrides().Get(1)
	p2, _ := s.Overrides().Get(2)
	assert.Equal(t, geo.Point{X: 5, Y: 5}, p1)
	assert.Equal(t, geo.Point{X: 9, Y: 9}, p2)

	team, dragging := s.Dragging()
	assert.True(t, dragging)
	assert.Equal(t, 2, team)
}

func TestEndDragWithoutDragIsHarmless(t *testing.T) {
	src := newFakeSource()
	s := NewSession(src, geo.Point{})
	s.EndDrag()
	assert.Empty(t, src.subs)
}

func TestOverrideWinsUntilReset(t *testing.T) {
	src := newFakeSource()
	s := NewSession(src, geo.Point{})
	reg := geo.NewRegistry()
	proj := geo.DefaultProjection()

	projected := reg.ResolvedPosition(111, "Boston Red Sox", proj, s.Overrides())

	s.BeginDrag(111, geo.Point{})
	src.emit(move(3, 4))
	s.EndDrag()
	assert.Equal(t, geo.Point{X: 3, Y: 4}, reg.ResolvedPosition(111, "Boston Red Sox", proj, s.Overrides()))

	s.ResetOverrides()
	assert.Equal(t, projected, reg.ResolvedPosition(111, "Boston Red Sox", proj, s.Overrides()))
}

func TestMapClick(t *testing.T) {
	s := NewSession(newFakeSource(), geo.Point{X: 2, Y: 1})
	proj := geo.DefaultProjection()

	want := geo.LatLon{Lat: 40, Lon: -90}
	screen := proj.Project(want.Lat, want.Lon)

	got := s.MapClick(geo.Point{X: screen.X + 2, Y: screen.Y + 1}, proj)
	assert.InDelta(t, want.Lat, got.Lat, 1e-9)
	assert.InDelta(t, want.Lon, got.Lon, 1e-9)
	assert.Equal(t, 0, s.Overrides().Len())

	probe, ok := s.LastProbe()
	assert.True(t, ok)
	assert.Equal(t, got, probe)
}

func TestExportOverrides(t *testing.T) {
	src := newFakeSource()
	s := NewSession(src, geo.Point{})
	proj := geo.DefaultProjection()

	target := proj.Project(42.0, -71.0)
	s.Overrides().Set(111, target)
	s.Overrides().Set(5, geo.Point{X: 50, Y: 50})

	names := func(id int) (string, bool) {
		if id == 111 {
			return "Boston Red Sox", true
		}
		return "", false
	}

	exports := s.ExportOverrides(proj, names)
	require.Len(t, exports, 2)
	assert.Equal(t, 5, exports[0].TeamID)
	assert.Equal(t, "Unknown", exports[0].TeamName)
	assert.InDelta(t, geo.DefaultProjection().Bounds.MaxLat, exports[0].Coordinates.Lat, 1e-9)

	assert.Equal(t, "Boston Red Sox", exports[1].TeamName)
	assert.InDelta(t, 42.0, exports[1].Coordinates.Lat, 1e-6)
	assert.InDelta(t, -71.0, exports[1].Coordinates.Lon, 1e-6)
	assert.Equal(t, target, exports[1].ScreenPosition)

	assert.Equal(t, 2, s.Overrides().Len(), "export is read-only")
}

func TestGeoJSON(t *testing.T) {
	out, err := GeoJSON([]Export{{
		TeamID:         111,
		TeamName:       "Boston Red Sox",
		Coordinates:    geo.LatLon{Lat: 42.5, Lon: -71.25},
		ScreenPosition: geo.Point{X: 1, Y: 2},
	}})
	require.NoError(t, err)

	var doc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type        string    `json:"type"`
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]interface{} `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(out, &doc))

	assert.Equal(t, "FeatureCollection", doc.Type)
	require.Len(t, doc.Features, 1)
	assert.Equal(t, "Point", doc.Features[0].Geometry.Type)
	assert.Equal(t, []float64{-71.25, 42.5}, doc.Features[0].Geometry.Coordinates)
	assert.Equal(t, "Boston Red Sox", doc.Features[0].Properties["teamName"])
}
