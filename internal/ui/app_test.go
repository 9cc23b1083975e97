package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradedeadline/internal/geo"
	"tradedeadline/internal/timeline"
	"tradedeadline/internal/trade"
)

var (
	testTeams = []trade.Team{
		{ID: 147, Name: "New York Yankees", Abbreviation: "NYY"},
		{ID: 111, Name: "Boston Red Sox", Abbreviation: "BOS"},
		{ID: 119, Name: "Los Angeles Dodgers", Abbreviation: "LAD"},
	}
	testTransactions = []trade.Transaction{
		{ID: "2-2", Date: "2025-07-25", FromTeam: "New York Yankees", ToTeam: "Los Angeles Dodgers", PlayerID: "2", PlayerName: "Second Player"},
		{ID: "1-1", Date: "2025-07-20", FromTeam: "Boston Red Sox", ToTeam: "New York Yankees", PlayerID: "1", PlayerName: "First Player"},
	}
)

func newTestApp(t *testing.T, exportPath string) (*App, tcell.SimulationScreen) {
	t.Helper()

	sim := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, sim.Init())
	sim.SetSize(120, 40)

	now := time.Date(2025, 7, 20, 12, 0, 0, 0, time.UTC)
	app, err := newApp(sim, Options{
		Registry:    geo.NewRegistry(),
		Projection:  geo.Projection{Bounds: geo.DefaultProjection().Bounds, Offset: geo.Point{X: 2, Y: 1}},
		FitToScreen: true,
		Cadence:     time.Second,
		Scheduler:   timeline.NewManualScheduler(),
		Clock:       func() time.Time { return now },
		ExportPath:  exportPath,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		app.session.Close()
		sim.Fini()
	})

	app.SetData(testTeams, testTransactions)
	return app, sim
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func press(pt geo.Point) *tcell.EventMouse {
	x, y := pt.Cell()
	return tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone)
}

func release(pt geo.Point) *tcell.EventMouse {
	x, y := pt.Cell()
	return tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone)
}

func teamByAbbr(t *testing.T, app *App, abbr string) trade.Team {
	t.Helper()
	for _, team := range app.session.Teams() {
		if team.Abbreviation == abbr {
			return team
		}
	}
	t.Fatalf("no team %s", abbr)
	return trade.Team{}
}

func screenRow(sim tcell.SimulationScreen, y int) string {
	cells, w, _ := sim.GetContents()
	var b strings.Builder
	for _, c := range cells[y*w : (y+1)*w] {
		if len(c.Runes) > 0 {
			b.WriteRune(c.Runes[0])
		}
	}
	return b.String()
}

func TestNewAppFitsProjection(t *testing.T) {
	app, _ := newTestApp(t, "")

	p := app.session.Projection()
	assert.Equal(t, geo.Size{Width: 115, Height: 36}, p.Size)
	assert.True(t, app.fit)
}

func TestPlaybackKeys(t *testing.T) {
	app, _ := newTestApp(t, "")

	snap := app.session.Snapshot()
	require.Equal(t, timeline.Playing, snap.State)
	require.Len(t, snap.Active, 1)
	assert.Equal(t, "First Player", snap.Active[0].PlayerName)

	assert.True(t, app.handleEvent(key(' ')))
	assert.Equal(t, timeline.Paused, app.session.Snapshot().State)

	app.handleEvent(key('e'))
	snap = app.session.Snapshot()
	assert.Equal(t, timeline.Finished, snap.State)
	assert.Equal(t, "2/2", snap.Progress())

	app.handleEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	snap = app.session.Snapshot()
	assert.Equal(t, timeline.Paused, snap.State)
	assert.Len(t, snap.Active, 1)

	app.handleEvent(key('r'))
	snap = app.session.Snapshot()
	assert.Equal(t, timeline.Idle, snap.State)
	assert.Empty(t, snap.Active)
}

func TestQuitKeys(t *testing.T) {
	app, _ := newTestApp(t, "")
	assert.False(t, app.handleEvent(key('q')))

	app, _ = newTestApp(t, "")
	assert.False(t, app.handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestCycleFilter(t *testing.T) {
	app, _ := newTestApp(t, "")

	want := []string{"Boston Red Sox", "Los Angeles Dodgers", "New York Yankees", ""}
	for _, name := range want {
		app.handleEvent(key('t'))
		assert.Equal(t, name, app.session.TeamFilter())
	}

	app.handleEvent(key('t'))
	app.handleEvent(key('e'))
	assert.Equal(t, 1, app.session.Snapshot().Total, "only the Boston trade touches Boston")
}

func TestClickTeamTogglesFilter(t *testing.T) {
	app, _ := newTestApp(t, "")
	bos := teamByAbbr(t, app, "BOS")
	pos := app.session.ResolvedPosition(bos)

	app.handleEvent(press(pos))
	app.handleEvent(release(pos))
	assert.Equal(t, "Boston Red Sox", app.session.TeamFilter())
	assert.Equal(t, bos.ID, app.hovered)

	app.handleEvent(press(pos))
	app.handleEvent(release(pos))
	assert.Equal(t, "", app.session.TeamFilter())
	assert.Zero(t, app.session.Calibration().Overrides().Len(), "no drags outside debug mode")
}

func TestDebugDragOverridesTeam(t *testing.T) {
	app, _ := newTestApp(t, "")
	nyy := teamByAbbr(t, app, "NYY")

	app.handleEvent(key('d'))
	require.True(t, app.debugMode)

	app.handleEvent(press(app.session.ResolvedPosition(nyy)))
	id, dragging := app.session.Calibration().Dragging()
	require.True(t, dragging)
	assert.Equal(t, nyy.ID, id)
	assert.Equal(t, 1, app.mouse.Subscribers())

	target := geo.Point{X: 10, Y: 10}
	app.handleEvent(tcell.NewEventMouse(10, 10, tcell.Button1, tcell.ModNone))
	app.handleEvent(release(target))

	assert.Equal(t, 0, app.mouse.Subscribers())
	_, dragging = app.session.Calibration().Dragging()
	assert.False(t, dragging)
	assert.Equal(t, target, app.session.ResolvedPosition(nyy))

	app.handleEvent(key('c'))
	assert.NotEqual(t, target, app.session.ResolvedPosition(nyy))
}

func TestDebugMapClickProbes(t *testing.T) {
	app, _ := newTestApp(t, "")
	app.handleEvent(key('d'))

	// Clicks outside the projected frame are ignored
	outside := geo.Point{X: 119, Y: 0}
	app.handleEvent(press(outside))
	app.handleEvent(release(outside))
	_, ok := app.session.Calibration().LastProbe()
	require.False(t, ok)

	pt := geo.Point{X: 60, Y: 30}
	app.handleEvent(press(pt))
	app.handleEvent(release(pt))

	ll, ok := app.session.Calibration().LastProbe()
	require.True(t, ok)
	want := app.session.Projection().Unproject(pt)
	assert.InDelta(t, want.Lat, ll.Lat, 1e-9)
	assert.InDelta(t, want.Lon, ll.Lon, 1e-9)
	assert.Zero(t, app.session.Calibration().Overrides().Len())
}

func TestDebugProjectionKeys(t *testing.T) {
	app, _ := newTestApp(t, "")
	before := app.session.Projection()

	// Outside debug mode these keys do not touch the projection
	app.handleEvent(key('+'))
	assert.Equal(t, before, app.session.Projection())

	app.handleEvent(key('d'))
	app.handleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	app.handleEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	app.handleEvent(key('>'))
	app.handleEvent(key('+'))

	p := app.session.Projection()
	assert.Equal(t, before.Offset.X+1, p.Offset.X)
	assert.Equal(t, before.Offset.Y+1, p.Offset.Y)
	assert.Equal(t, 1.0, p.Rotation)
	assert.InDelta(t, before.Size.Width*1.1, p.Size.Width, 1e-9)
	assert.False(t, app.fit, "manual sizing stops fitting to the terminal")
}

func TestExportWritesGeoJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.geojson")
	app, _ := newTestApp(t, path)
	nyy := teamByAbbr(t, app, "NYY")

	app.handleEvent(key('d'))
	app.handleEvent(press(app.session.ResolvedPosition(nyy)))
	app.handleEvent(tcell.NewEventMouse(20, 12, tcell.Button1, tcell.ModNone))
	app.handleEvent(release(geo.Point{X: 20, Y: 12}))
	app.handleEvent(key('x'))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "FeatureCollection")
	assert.Contains(t, string(data), "New York Yankees")
	assert.Contains(t, app.message, "Exported 1 overrides")
}

func TestRenderStatusBar(t *testing.T) {
	app, sim := newTestApp(t, "")

	app.render()
	status := screenRow(sim, 39)
	assert.Contains(t, status, "Playing 1/2")
	assert.Contains(t, status, "First Player BOS → NYY")

	app.handleEvent(key('d'))
	app.render()
	assert.Contains(t, screenRow(sim, 39), "DEBUG")
}
