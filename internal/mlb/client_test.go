package mlb

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapFetcher struct {
	bodies map[string]string
	urls   []string
}

func (m *mapFetcher) Fetch(_ context.Context, name, url string) ([]byte, error) {
	m.urls = append(m.urls, url)
	body, ok := m.bodies[name]
	if !ok {
		return nil, errors.New("not found")
	}
	return []byte(body), nil
}

const teamsJSON = `{"teams":[
 {"id":111,"name":"Boston Red Sox","abbreviation":"BOS"},
 {"id":147,"name":"New York Yankees","abbreviation":"NYY"}
]}`

const transactionsJSON = `{"transactions":[
 {"id":1,"date":"2025-07-30","typeCode":"TR","description":"Red Sox traded A to Yankees.",
  "person":{"id":10,"fullName":"Player A"},
  "fromTeam":{"id":111,"name":"Boston Red Sox"},"toTeam":{"id":147,"name":"New York Yankees"}},
 {"id":2,"date":"2025-07-30","typeCode":"SFA","description":"signed",
  "person":{"id":11,"fullName":"Player B"},
  "fromTeam":{"id":111,"name":"Boston Red Sox"},"toTeam":{"id":147,"name":"New York Yankees"}},
 {"id":3,"date":"2025-07-29","typeCode":"TR",
  "person":{"id":12,"fullName":"Player C"},
  "fromTeam":{"id":111,"name":"Boston Red Sox"},"toTeam":{"id":111,"name":"Boston Red Sox"}},
 {"id":4,"date":"2025-07-29","typeCode":"TR",
  "person":{"id":13,"fullName":"Player D"},
  "fromTeam":{"id":430,"name":"Worcester Red Sox"},"toTeam":{"id":531,"name":"Durham Bulls"}},
 {"id":5,"date":"2025-07-28","typeCode":"TR",
  "person":{"id":14,"fullName":"Player E"},
  "fromTeam":{"id":147,"name":"New York Yankees"},"toTeam":{"id":531,"name":"Durham Bulls"}},
 {"id":6,"date":"2025-07-28","typeCode":"TR",
  "fromTeam":{"id":147,"name":"New York Yankees"},"toTeam":{"id":111,"name":"Boston Red Sox"}}
]}`

func TestParseTeams(t *testing.T) {
	teams, err := ParseTeams([]byte(teamsJSON))
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, "BOS", teams[0].Abbreviation)
	assert.Equal(t, "https://www.mlbstatic.com/team-logos/team-cap-on-dark/111.svg", teams[0].Logo)
}

func TestParseTransactionsKeepsClubTrades(t *testing.T) {
	txs, err := ParseTransactions([]byte(transactionsJSON))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, "1-10", txs[0].ID)
	assert.Equal(t, "Boston Red Sox", txs[0].FromTeam)
	assert.Equal(t, "New York Yankees", txs[0].ToTeam)
	assert.Equal(t, "10", txs[0].PlayerID)
	assert.Equal(t, "https://midfield.mlbstatic.com/v1/people/10/spots/120", txs[0].HeadshotURL)

	// Minor league destination is kept when the origin is a club
	assert.Equal(t, "5-14", txs[1].ID)
	assert.Equal(t, "Player E traded", txs[1].Description)
}

func TestParseTransactionsBadJSON(t *testing.T) {
	_, err := ParseTransactions([]byte("{"))
	assert.ErrorContains(t, err, "decode transactions")
}

func TestFetchDataset(t *testing.T) {
	f := &mapFetcher{bodies: map[string]string{
		"teams":                              teamsJSON,
		"transactions_2025-07-15_2025-08-01": transactionsJSON,
	}}

	c := NewClient(f, "http://stats.test/api/v1")
	ds, err := c.FetchDataset(context.Background(), "2025-07-15", "2025-08-01")
	require.NoError(t, err)
	assert.Len(t, ds.Teams, 2)
	assert.Len(t, ds.Transactions, 2)

	require.Len(t, f.urls, 2)
	assert.Equal(t, "http://stats.test/api/v1/teams?sportId=1", f.urls[0])
	assert.True(t, strings.HasPrefix(f.urls[1], "http://stats.test/api/v1/transactions?"))
	assert.Contains(t, f.urls[1], "startDate=2025-07-15")
	assert.Contains(t, f.urls[1], "endDate=2025-08-01")
}

func TestFetchDatasetPropagatesErrors(t *testing.T) {
	c := NewClient(&mapFetcher{bodies: map[string]string{}}, "")
	_, err := c.FetchDataset(context.Background(), "2025-07-15", "2025-08-01")
	assert.ErrorContains(t, err, "failed to fetch teams")
}

func TestLoadDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"teams":[{"id":111,"name":"Boston Red Sox","abbreviation":"BOS","logo":""}],
		"transactions":[{"id":"1-10","date":"2025-07-30","description":"x","fromTeam":"Boston Red Sox"}]
	}`), 0644))

	ds, err := LoadDataset(path)
	require.NoError(t, err)
	assert.Len(t, ds.Teams, 1)
	require.Len(t, ds.Transactions, 1)
	assert.Equal(t, "", ds.Transactions[0].ToTeam)

	_, err = LoadDataset(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
