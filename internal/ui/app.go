package ui

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/gdamore/tcell/v2"

	"tradedeadline/internal/calibrate"
	"tradedeadline/internal/config"
	"tradedeadline/internal/debug"
	"tradedeadline/internal/geo"
	"tradedeadline/internal/render"
	"tradedeadline/internal/session"
	"tradedeadline/internal/timeline"
	"tradedeadline/internal/trade"
)

const (
	listWidth    = 44
	listHeight   = 12
	detailWidth  = 42
	detailHeight = 14

	// hitRadius is how close, in cells, a click must land to grab a team
	hitRadius = 1.5
)

// Options configures the application
type Options struct {
	Registry           *geo.Registry
	Features           map[geo.FeatureType][]*geo.Feature
	Projection         geo.Projection
	FitToScreen        bool
	Cadence            time.Duration
	TransitionDuration time.Duration
	// ExportPath receives a GeoJSON file on export; empty logs only
	ExportPath string
	Scheduler  timeline.Scheduler
	Clock      func() time.Time
}

// App is the main application controller
type App struct {
	screen     tcell.Screen
	session    *session.Session
	mouse      *MouseSource
	mapView    *MapView
	listView   *ListView
	detailView *DetailView

	debugMode  bool
	fit        bool
	hovered    int
	message    string
	exportPath string
	clock      func() time.Time
	quit       chan struct{}
}

// NewApp creates a new application on the terminal
func NewApp(opts Options) (*App, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}

	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize screen: %w", err)
	}

	app, err := newApp(screen, opts)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return app, nil
}

// newApp wires the session and views onto an initialized screen
func newApp(screen tcell.Screen, opts Options) (*App, error) {
	screen.SetStyle(tcell.StyleDefault)
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.Clear()

	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	width, height := screen.Size()
	mapView := NewMapView(width, height-1, opts.Projection, opts.Features)

	proj := opts.Projection
	if opts.FitToScreen {
		proj = mapView.FitProjection(proj)
	}

	mouse := NewMouseSource()
	sess, err := session.New(opts.Registry, proj, session.Options{
		Cadence:            opts.Cadence,
		TransitionDuration: opts.TransitionDuration,
		Scheduler:          opts.Scheduler,
		Clock:              opts.Clock,
		Pointer:            mouse,
		OnChange: func(snap timeline.Snapshot) {
			// Called from the timer goroutine; the event loop does the drawing
			_ = screen.PostEvent(tcell.NewEventInterrupt(snap))
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &App{
		screen:     screen,
		session:    sess,
		mouse:      mouse,
		mapView:    mapView,
		listView:   NewListView(0, height-1-listHeight, listWidth, listHeight),
		detailView: NewDetailView(width-detailWidth, height-1-detailHeight, detailWidth, detailHeight),
		fit:        opts.FitToScreen,
		exportPath: opts.ExportPath,
		clock:      opts.Clock,
		quit:       make(chan struct{}),
	}, nil
}

// Session exposes the visualization state
func (a *App) Session() *session.Session {
	return a.session
}

// SetData loads the roster and transactions and starts playback
func (a *App) SetData(teams []trade.Team, transactions []trade.Transaction) {
	a.session.SetData(teams, transactions)
	a.session.Play()
}

// Run starts the application main loop
func (a *App) Run() error {
	defer a.cleanup()

	events := make(chan tcell.Event, 16)
	go a.readEvents(events)

	ticker := time.NewTicker(100 * time.Millisecond) // 10 FPS for the marker animation
	defer ticker.Stop()

	a.render()

	for {
		select {
		case <-a.quit:
			return nil

		case <-ticker.C:
			a.render()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !a.handleEvent(ev) {
				return nil // Quit requested
			}
			a.render()
		}
	}
}

// readEvents forwards terminal events until the screen is finalized
func (a *App) readEvents(events chan<- tcell.Event) {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-a.quit:
			return
		}
	}
}

// update refreshes the panels from the session
func (a *App) update() {
	snap := a.session.Snapshot()
	a.listView.Update(snap.Active, snap.Total)

	switch {
	case a.hovered != 0:
		if team, ok := a.session.TeamByID(a.hovered); ok {
			a.detailView.SetContent(team.Name, teamDetail(a.session, team))
		}
	case a.debugMode:
		a.detailView.SetContent("Calibration", debugDetail(a.session))
	case a.session.TeamFilter() != "":
		if team, ok := a.filterTeam(); ok {
			a.detailView.SetContent(team.Name, teamDetail(a.session, team))
		}
	}
}

// render renders the current view to the screen
func (a *App) render() {
	a.update()
	a.screen.Clear()

	state := MapState{Debug: a.debugMode, Hovered: a.hovered, Now: a.clock()}
	if m, ok := a.listView.GetSelected(); ok && !a.listView.follow {
		state.Selected = &m
	}
	a.mapView.Draw(a.screen, a.session, state)

	a.listView.Draw(a.screen)
	if a.showDetail() {
		a.detailView.Draw(a.screen)
	}
	a.drawStatus()

	a.screen.Show()
}

func (a *App) showDetail() bool {
	return a.hovered != 0 || a.debugMode || a.session.TeamFilter() != ""
}

// drawStatus draws playback state and key hints on the bottom row
func (a *App) drawStatus() {
	width, height := a.screen.Size()
	c := render.NewCanvas(width, 1)
	c.FillRect(0, 0, width, 1, ' ', render.StyleStatus)

	snap := a.session.Snapshot()
	text := fmt.Sprintf(" %s %s", snap.State, snap.Progress())
	if m, ok := snap.Current(); ok {
		text += fmt.Sprintf(" | %s %s", m.PlayerName, m.Route())
	}
	if f := a.session.TeamFilter(); f != "" {
		text += " | " + f
	}
	if a.debugMode {
		text += " | DEBUG"
	}
	if a.message != "" {
		text += " | " + a.message
	} else {
		text += " | [space] play [r] reset [e] end [t] team [d] debug [q] quit"
	}

	c.DrawTextClipped(0, 0, width, text, render.StyleStatus)
	c.Blit(a.screen, 0, height-1)
}

// handleEvent processes keyboard and mouse events
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		a.message = ""
		return a.handleKey(ev)

	case *tcell.EventMouse:
		a.handleMouse(ev)

	case *tcell.EventResize:
		a.handleResize()
	}

	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		close(a.quit)
		return false

	case tcell.KeyUp:
		if a.debugMode {
			a.adjustProjection(func(p *geo.Projection) { p.Offset.Y-- })
		} else {
			a.listView.SelectPrev()
		}

	case tcell.KeyDown:
		if a.debugMode {
			a.adjustProjection(func(p *geo.Projection) { p.Offset.Y++ })
		} else {
			a.listView.SelectNext()
		}

	case tcell.KeyLeft:
		if a.debugMode {
			a.adjustProjection(func(p *geo.Projection) { p.Offset.X-- })
		} else {
			a.session.Step(-1)
		}

	case tcell.KeyRight:
		if a.debugMode {
			a.adjustProjection(func(p *geo.Projection) { p.Offset.X++ })
		} else {
			a.session.Step(1)
		}

	case tcell.KeyRune:
		return a.handleRune(ev.Rune())
	}

	return true
}

func (a *App) handleRune(r rune) bool {
	switch r {
	case 'q', 'Q':
		close(a.quit)
		return false

	case ' ':
		a.session.Toggle()

	case 'r', 'R':
		a.session.Reset()

	case 'e', 'E':
		a.session.SkipToEnd()

	case 't', 'T':
		a.cycleFilter()

	case 'd', 'D':
		a.debugMode = !a.debugMode
		if !a.debugMode {
			a.session.Calibration().EndDrag()
		}
		debug.Log("Debug mode: %v", a.debugMode)

	case 'x', 'X':
		a.exportOverrides()

	case 'c', 'C':
		a.session.Calibration().ResetOverrides()
		a.message = "Overrides cleared"

	case 'l', 'L':
		a.logSettings()

	case '+', '=':
		if a.debugMode {
			a.adjustProjection(func(p *geo.Projection) {
				p.Size.Width *= 1.1
				p.Size.Height *= 1.1
			})
		}

	case '-', '_':
		if a.debugMode {
			a.adjustProjection(func(p *geo.Projection) {
				p.Size.Width /= 1.1
				p.Size.Height /= 1.1
			})
		}

	case '<', ',':
		if a.debugMode {
			a.adjustProjection(func(p *geo.Projection) { p.Rotation-- })
		}

	case '>', '.':
		if a.debugMode {
			a.adjustProjection(func(p *geo.Projection) { p.Rotation++ })
		}
	}

	return true
}

// handleMouse routes presses to drag/probe in debug mode and to the team
// filter otherwise. Moves and releases reach an active drag via the source.
func (a *App) handleMouse(ev *tcell.EventMouse) {
	action, pos := a.mouse.Feed(ev)

	team, onTeam := a.session.TeamAt(pos, hitRadius)
	a.hovered = 0
	if onTeam {
		a.hovered = team.ID
	}

	if action != MousePress {
		return
	}

	calib := a.session.Calibration()
	switch {
	case a.debugMode && onTeam:
		calib.BeginDrag(team.ID, pos)
	case a.debugMode && a.session.Projection().Contains(pos):
		ll := calib.MapClick(pos, a.session.Projection())
		debug.Info("map click", "x", pos.X, "y", pos.Y, "lat", ll.Lat, "lon", ll.Lon)
		a.message = fmt.Sprintf("%.4f, %.4f", ll.Lat, ll.Lon)
	case onTeam:
		if a.session.TeamFilter() == team.Name {
			a.session.SetTeamFilter("")
		} else {
			a.session.SetTeamFilter(team.Name)
		}
		a.session.Play()
	}
}

// adjustProjection applies fn to a copy of the projection and keeps it only
// if it still validates
func (a *App) adjustProjection(fn func(p *geo.Projection)) {
	p := a.session.Projection()
	before := p.Size
	fn(&p)

	if err := a.session.SetProjection(p); err != nil {
		debug.Warn("projection change rejected", "error", err)
		a.message = err.Error()
		return
	}
	if p.Size != before {
		a.fit = false
	}
}

// cycleFilter steps through all teams by name, then back to no filter
func (a *App) cycleFilter() {
	teams := a.session.Teams()
	names := make([]string, 0, len(teams))
	for _, t := range teams {
		names = append(names, t.Name)
	}
	sort.Strings(names)

	next := ""
	current := a.session.TeamFilter()
	if current == "" {
		if len(names) > 0 {
			next = names[0]
		}
	} else {
		i := sort.SearchStrings(names, current)
		if i+1 < len(names) {
			next = names[i+1]
		}
	}

	a.session.SetTeamFilter(next)
	a.session.Play()
}

func (a *App) filterTeam() (trade.Team, bool) {
	name := a.session.TeamFilter()
	for _, t := range a.session.Teams() {
		if t.Name == name {
			return t, true
		}
	}
	return trade.Team{}, false
}

// exportOverrides logs every calibrated position and writes GeoJSON when
// an export path is set
func (a *App) exportOverrides() {
	exports := a.session.ExportOverrides()
	for _, e := range exports {
		debug.Info("override",
			"team", e.TeamName,
			"lat", e.Coordinates.Lat,
			"lon", e.Coordinates.Lon,
			"x", e.ScreenPosition.X,
			"y", e.ScreenPosition.Y)
	}

	if a.exportPath == "" {
		a.message = fmt.Sprintf("Logged %d overrides", len(exports))
		return
	}

	data, err := calibrate.GeoJSON(exports)
	if err == nil {
		err = os.WriteFile(a.exportPath, data, 0644)
	}
	if err != nil {
		debug.Warn("export failed", "path", a.exportPath, "error", err)
		a.message = fmt.Sprintf("Export failed: %v", err)
		return
	}
	a.message = fmt.Sprintf("Exported %d overrides to %s", len(exports), a.exportPath)
}

// logSettings writes the live projection to the debug log as YAML
func (a *App) logSettings() {
	out, err := config.DumpProjection(a.session.Projection())
	if err != nil {
		debug.Warn("settings dump failed", "error", err)
		a.message = err.Error()
		return
	}
	debug.Info("settings", "yaml", string(out))
	a.message = "Settings logged"
}

// handleResize handles terminal resize events
func (a *App) handleResize() {
	a.screen.Sync()
	width, height := a.screen.Size()

	a.mapView.UpdateDimensions(width, height-1)
	if a.fit {
		if err := a.session.SetProjection(a.mapView.FitProjection(a.session.Projection())); err != nil {
			debug.Warn("terminal too small for map", "width", width, "height", height)
		}
	}

	a.listView.UpdateDimensions(0, height-1-listHeight, listWidth, listHeight)
	a.detailView.UpdateDimensions(width-detailWidth, height-1-detailHeight, detailWidth, detailHeight)
}

// cleanup performs cleanup before exit
func (a *App) cleanup() {
	if a.session != nil {
		a.session.Close()
	}

	if a.screen != nil {
		a.screen.Fini()
	}
}
