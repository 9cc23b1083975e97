package trade

import "fmt"

// Team is an MLB club as returned by the stats API
type Team struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Logo         string `json:"logo"`
}

// LogoURL returns the cap logo location for a team id
func LogoURL(teamID int) string {
	return fmt.Sprintf("https://www.mlbstatic.com/team-logos/team-cap-on-dark/%d.svg", teamID)
}

// Label returns the abbreviation if available, otherwise the full name
func (t *Team) Label() string {
	if t == nil {
		return "---"
	}
	if t.Abbreviation != "" {
		return t.Abbreviation
	}
	return t.Name
}

// TeamByName indexes teams by exact display name. Later duplicates lose.
func TeamByName(teams []Team) map[string]*Team {
	byName := make(map[string]*Team, len(teams))
	for i := range teams {
		if _, exists := byName[teams[i].Name]; !exists {
			byName[teams[i].Name] = &teams[i]
		}
	}
	return byName
}
