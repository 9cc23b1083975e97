package trade

import (
	"fmt"
	"sort"
	"time"

	"tradedeadline/internal/debug"
)

// UnknownPlayer is shown when a transaction carries no player name
const UnknownPlayer = "Unknown Player"

// Movement is a transaction resolved against the team roster
type Movement struct {
	ID          string
	PlayerName  string
	PlayerID    string
	HeadshotURL string
	From        *Team // nil when the origin name has no roster match
	To          *Team // nil when the destination name has no roster match
	Date        time.Time
	RawDate     string
	Description string
}

// Mappable reports whether both endpoints resolved, i.e. whether the
// movement can be drawn as an edge between two teams
func (m Movement) Mappable() bool {
	return m.From != nil && m.To != nil
}

// Route returns "FROM → TO" using abbreviations
func (m Movement) Route() string {
	return fmt.Sprintf("%s → %s", m.From.Label(), m.To.Label())
}

// ListDisplay returns the formatted string for the history list
// Format: "07/30 Jane Doe BOS → NYY"
func (m Movement) ListDisplay() string {
	date := "??/??"
	if !m.Date.IsZero() {
		date = m.Date.Format("01/02")
	}
	return fmt.Sprintf("%s %s %s", date, m.PlayerName, m.Route())
}

// DeriveMovements resolves each transaction's team names against teams and
// returns one Movement per transaction, sorted ascending by date. Equal dates
// keep their input order. The inputs are not modified.
func DeriveMovements(transactions []Transaction, teams []Team) []Movement {
	byName := TeamByName(teams)

	movements := make([]Movement, 0, len(transactions))
	for _, tx := range transactions {
		date, err := ParseDate(tx.Date)
		if err != nil {
			debug.Warn("transaction date not parseable", "id", tx.ID, "err", err)
		}

		name := tx.PlayerName
		if name == "" {
			name = UnknownPlayer
		}

		movements = append(movements, Movement{
			ID:          tx.ID,
			PlayerName:  name,
			PlayerID:    tx.PlayerID,
			HeadshotURL: tx.HeadshotURL,
			From:        resolveTeam(byName, tx.FromTeam, tx.ID),
			To:          resolveTeam(byName, tx.ToTeam, tx.ID),
			Date:        date,
			RawDate:     tx.Date,
			Description: tx.Description,
		})
	}

	sort.SliceStable(movements, func(i, j int) bool {
		return movements[i].Date.Before(movements[j].Date)
	})

	return movements
}

func resolveTeam(byName map[string]*Team, name, txID string) *Team {
	if name == "" {
		return nil
	}
	team, ok := byName[name]
	if !ok {
		debug.Warn("team name has no roster match", "team", name, "transaction", txID)
		return nil
	}
	// Copy so movements never alias the caller's roster slice
	t := *team
	return &t
}

// ArrivalsAt returns the movements whose destination is teamID
func ArrivalsAt(movements []Movement, teamID int) []Movement {
	var arrivals []Movement
	for _, m := range movements {
		if m.To != nil && m.To.ID == teamID {
			arrivals = append(arrivals, m)
		}
	}
	return arrivals
}

// Involves reports whether teamID is on either side of any movement
func Involves(movements []Movement, teamID int) bool {
	for _, m := range movements {
		if (m.From != nil && m.From.ID == teamID) || (m.To != nil && m.To.ID == teamID) {
			return true
		}
	}
	return false
}
