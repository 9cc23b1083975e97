package mlb

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"tradedeadline/internal/trade"
)

// Dataset is everything the map needs, fetched once
type Dataset struct {
	Teams        []trade.Team        `json:"teams"`
	Transactions []trade.Transaction `json:"transactions"`
}

// FetchDataset loads teams and the trades in [start, end]
func (c *Client) FetchDataset(ctx context.Context, start, end string) (*Dataset, error) {
	teams, err := c.FetchTeams(ctx)
	if err != nil {
		return nil, err
	}

	txs, err := c.FetchTransactions(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return &Dataset{Teams: teams, Transactions: txs}, nil
}

// LoadDataset reads a dataset from a JSON file with "teams" and "transactions"
func LoadDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to decode dataset %s: %w", path, err)
	}

	return &ds, nil
}
