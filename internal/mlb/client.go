package mlb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"tradedeadline/internal/debug"
	"tradedeadline/internal/trade"
)

// DefaultBaseURL is the public stats API
const DefaultBaseURL = "https://statsapi.mlb.com/api/v1"

// tradeTypeCode marks an actual trade in the transactions feed
const tradeTypeCode = "TR"

// clubIDs are the 30 major league franchises
var clubIDs = map[int]bool{
	108: true, 109: true, 110: true, 111: true, 112: true, 113: true,
	114: true, 115: true, 116: true, 117: true, 118: true, 119: true,
	120: true, 121: true, 133: true, 134: true, 135: true, 136: true,
	137: true, 138: true, 139: true, 140: true, 141: true, 142: true,
	143: true, 144: true, 145: true, 146: true, 147: true, 158: true,
}

// Fetcher returns the body behind a URL, possibly from a cache keyed by name
type Fetcher interface {
	Fetch(ctx context.Context, name, url string) ([]byte, error)
}

// Client reads teams and trades from the stats API
type Client struct {
	baseURL string
	fetcher Fetcher
}

// NewClient creates a stats API client. An empty baseURL uses DefaultBaseURL.
func NewClient(fetcher Fetcher, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		fetcher: fetcher,
	}
}

type apiTeam struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

type apiRef struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	FullName string `json:"fullName"`
}

type apiTransaction struct {
	ID          int     `json:"id"`
	Date        string  `json:"date"`
	TypeCode    string  `json:"typeCode"`
	Description string  `json:"description"`
	Person      *apiRef `json:"person"`
	FromTeam    *apiRef `json:"fromTeam"`
	ToTeam      *apiRef `json:"toTeam"`
}

// FetchTeams returns the major league clubs
func (c *Client) FetchTeams(ctx context.Context) ([]trade.Team, error) {
	data, err := c.fetcher.Fetch(ctx, "teams", c.baseURL+"/teams?sportId=1")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch teams: %w", err)
	}
	return ParseTeams(data)
}

// FetchTransactions returns the trades between start and end (YYYY-MM-DD)
func (c *Client) FetchTransactions(ctx context.Context, start, end string) ([]trade.Transaction, error) {
	q := url.Values{}
	q.Set("startDate", start)
	q.Set("endDate", end)

	name := fmt.Sprintf("transactions_%s_%s", start, end)
	data, err := c.fetcher.Fetch(ctx, name, c.baseURL+"/transactions?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	return ParseTransactions(data)
}

// ParseTeams decodes a /teams response
func ParseTeams(data []byte) ([]trade.Team, error) {
	var body struct {
		Teams []apiTeam `json:"teams"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("failed to decode teams: %w", err)
	}

	teams := make([]trade.Team, 0, len(body.Teams))
	for _, t := range body.Teams {
		teams = append(teams, trade.Team{
			ID:           t.ID,
			Name:         t.Name,
			Abbreviation: t.Abbreviation,
			Logo:         trade.LogoURL(t.ID),
		})
	}

	return teams, nil
}

// ParseTransactions decodes a /transactions response, keeping only trades
// between two different clubs where at least one is a major league club
func ParseTransactions(data []byte) ([]trade.Transaction, error) {
	var body struct {
		Transactions []apiTransaction `json:"transactions"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}

	txs := make([]trade.Transaction, 0)
	skipped := 0

	for _, t := range body.Transactions {
		if !isClubTrade(t) {
			skipped++
			continue
		}

		personID := strconv.Itoa(t.Person.ID)
		description := t.Description
		if description == "" {
			description = t.Person.FullName + " traded"
		}

		txs = append(txs, trade.Transaction{
			ID:          fmt.Sprintf("%d-%d", t.ID, t.Person.ID),
			Date:        t.Date,
			Description: description,
			FromTeam:    t.FromTeam.Name,
			ToTeam:      t.ToTeam.Name,
			PlayerID:    personID,
			PlayerName:  t.Person.FullName,
			HeadshotURL: trade.HeadshotURL(personID),
		})
	}

	debug.Log("Parsed %d trades, skipped %d other transactions", len(txs), skipped)
	return txs, nil
}

func isClubTrade(t apiTransaction) bool {
	if t.TypeCode != tradeTypeCode || t.FromTeam == nil || t.ToTeam == nil || t.Person == nil {
		return false
	}
	if t.FromTeam.ID == t.ToTeam.ID {
		return false
	}
	return clubIDs[t.FromTeam.ID] || clubIDs[t.ToTeam.ID]
}
