package session

import (
	"errors"
	"math"
	"time"

	"tradedeadline/internal/calibrate"
	"tradedeadline/internal/debug"
	"tradedeadline/internal/geo"
	"tradedeadline/internal/timeline"
	"tradedeadline/internal/trade"
)

// Options configures a visualization session
type Options struct {
	Cadence            time.Duration
	TransitionDuration time.Duration
	Scheduler          timeline.Scheduler
	Clock              func() time.Time
	OnChange           func(timeline.Snapshot)
	Pointer            calibrate.PointerInputSource
	// Origin is the projection surface's corner in pointer coordinates
	Origin geo.Point
}

// Session owns the projection, team locations, calibration overrides and
// playback for one view. Nothing here is global, so independent sessions
// can coexist.
type Session struct {
	projection geo.Projection
	registry   *geo.Registry
	calib      *calibrate.Session
	timeline   *timeline.Controller

	teams        []trade.Team
	transactions []trade.Transaction
	filter       string

	transitionDuration time.Duration
}

// New creates a session. The projection must be valid.
func New(registry *geo.Registry, proj geo.Projection, opts Options) (*Session, error) {
	if err := proj.Validate(); err != nil {
		return nil, err
	}
	if registry == nil {
		registry = geo.NewRegistry()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = timeline.TickerScheduler{}
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.TransitionDuration <= 0 {
		opts.TransitionDuration = DefaultTransitionDuration
	}
	if opts.Pointer == nil {
		return nil, errors.New("session requires a pointer input source")
	}

	tlOpts := []timeline.Option{timeline.WithClock(opts.Clock)}
	if opts.OnChange != nil {
		tlOpts = append(tlOpts, timeline.WithOnChange(opts.OnChange))
	}

	return &Session{
		projection:         proj,
		registry:           registry,
		calib:              calibrate.NewSession(opts.Pointer, opts.Origin),
		timeline:           timeline.NewController(opts.Scheduler, opts.Cadence, tlOpts...),
		transitionDuration: opts.TransitionDuration,
	}, nil
}

// SetData replaces the roster and transactions and recomputes every movement.
// Playback returns to Idle.
func (s *Session) SetData(teams []trade.Team, transactions []trade.Transaction) {
	s.teams = teams
	s.transactions = transactions
	s.rebuild()
}

// SetTeamFilter restricts playback to transactions touching teamName.
// An empty name shows everything.
func (s *Session) SetTeamFilter(teamName string) {
	s.filter = teamName
	s.rebuild()
}

// TeamFilter returns the current filter
func (s *Session) TeamFilter() string {
	return s.filter
}

func (s *Session) rebuild() {
	txs := trade.FilterByTeam(s.transactions, s.filter)
	movements := trade.DeriveMovements(txs, s.teams)
	s.timeline.SetMovements(movements)
	debug.Log("Derived %d movements from %d transactions (filter %q)", len(movements), len(s.transactions), s.filter)
}

// Teams returns the roster
func (s *Session) Teams() []trade.Team {
	return s.teams
}

// TeamByID looks up a roster entry
func (s *Session) TeamByID(id int) (trade.Team, bool) {
	for _, t := range s.teams {
		if t.ID == id {
			return t, true
		}
	}
	return trade.Team{}, false
}

// Projection returns the current projection
func (s *Session) Projection() geo.Projection {
	return s.projection
}

// SetProjection replaces the projection if it is valid
func (s *Session) SetProjection(p geo.Projection) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.projection = p
	return nil
}

// Registry returns the location registry
func (s *Session) Registry() *geo.Registry {
	return s.registry
}

// Calibration returns the calibration session
func (s *Session) Calibration() *calibrate.Session {
	return s.calib
}

// ResolvedPosition returns where team is drawn this frame
func (s *Session) ResolvedPosition(team trade.Team) geo.Point {
	return s.registry.ResolvedPosition(team.ID, team.Name, s.projection, s.calib.Overrides())
}

// TeamAt returns the team whose marker is nearest pt within radius
func (s *Session) TeamAt(pt geo.Point, radius float64) (trade.Team, bool) {
	best := math.Inf(1)
	var found trade.Team
	ok := false

	for _, team := range s.teams {
		pos := s.ResolvedPosition(team)
		d := math.Hypot(pos.X-pt.X, pos.Y-pt.Y)
		if d <= radius && d < best {
			best = d
			found = team
			ok = true
		}
	}

	return found, ok
}

// Snapshot returns the playback state
func (s *Session) Snapshot() timeline.Snapshot {
	return s.timeline.Snapshot()
}

// ActiveMovements returns the movements revealed so far
func (s *Session) ActiveMovements() []trade.Movement {
	return s.timeline.Snapshot().Active
}

// Progress formats playback position as "X/N"
func (s *Session) Progress() string {
	return s.timeline.Snapshot().Progress()
}

// CurrentTransition returns the animation for the newest active movement.
// Movements with an unmatched team produce no transition; they still count
// toward progress and history.
func (s *Session) CurrentTransition() (Transition, bool) {
	snap := s.timeline.Snapshot()
	m, ok := snap.Current()
	if !ok || !m.Mappable() {
		return Transition{}, false
	}

	return Transition{
		Movement: m,
		From:     s.ResolvedPosition(*m.From),
		To:       s.ResolvedPosition(*m.To),
		Start:    snap.Since,
		Duration: s.transitionDuration,
	}, true
}

// Play starts or resumes playback
func (s *Session) Play() { s.timeline.Play() }

// Pause stops playback in place
func (s *Session) Pause() { s.timeline.Pause() }

// Toggle switches between playing and paused
func (s *Session) Toggle() { s.timeline.Toggle() }

// Reset returns playback to the start with nothing revealed
func (s *Session) Reset() { s.timeline.Reset() }

// SkipToEnd reveals every movement at once
func (s *Session) SkipToEnd() { s.timeline.SkipToEnd() }

// Step scrubs the timeline by delta movements
func (s *Session) Step(delta int) { s.timeline.Step(delta) }

// ExportOverrides unprojects every calibrated team position
func (s *Session) ExportOverrides() []calibrate.Export {
	return s.calib.ExportOverrides(s.projection, func(id int) (string, bool) {
		team, ok := s.TeamByID(id)
		return team.Name, ok
	})
}

// Close stops the playback timer and any drag in progress
func (s *Session) Close() {
	s.timeline.Close()
	s.calib.EndDrag()
}
