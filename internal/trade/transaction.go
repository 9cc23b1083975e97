package trade

import (
	"fmt"
	"time"
)

// Transaction is a single player transfer record, already normalized
type Transaction struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description"`
	FromTeam    string `json:"fromTeam,omitempty"`
	ToTeam      string `json:"toTeam,omitempty"`
	PlayerID    string `json:"playerId,omitempty"`
	PlayerName  string `json:"playerName,omitempty"`
	HeadshotURL string `json:"headshotUrl,omitempty"`
}

// HeadshotURL returns the player spot image location for a person id
func HeadshotURL(personID string) string {
	return fmt.Sprintf("https://midfield.mlbstatic.com/v1/people/%s/spots/120", personID)
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses the ISO-8601 forms the stats API emits
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// Touches reports whether the transaction involves the named team on either side
func (t Transaction) Touches(teamName string) bool {
	return t.FromTeam == teamName || t.ToTeam == teamName
}

// FilterByTeam keeps transactions involving teamName. An empty name keeps everything.
func FilterByTeam(transactions []Transaction, teamName string) []Transaction {
	if teamName == "" {
		return transactions
	}

	filtered := make([]Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if tx.Touches(teamName) {
			filtered = append(filtered, tx)
		}
	}
	return filtered
}
