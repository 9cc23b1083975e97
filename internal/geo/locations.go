package geo

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LocationLoader loads per-team coordinate overrides from a CSV file
// with the columns team, latitude, longitude
type LocationLoader struct {
	csvPath string
}

// NewLocationLoader creates a new location loader
func NewLocationLoader(csvPath string) *LocationLoader {
	return &LocationLoader{
		csvPath: csvPath,
	}
}

// Load opens the CSV file and parses it
func (l *LocationLoader) Load() (map[string]LatLon, error) {
	file, err := os.Open(l.csvPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open locations CSV: %w", err)
	}
	defer file.Close()

	return ParseLocations(file)
}

// ParseLocations reads team locations from CSV.
// Rows with unparseable coordinates are skipped.
func ParseLocations(r io.Reader) (map[string]LatLon, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colIndices := make(map[string]int)
	for i, col := range header {
		colIndices[strings.ToLower(strings.TrimSpace(col))] = i
	}

	for _, col := range []string{"team", "latitude", "longitude"} {
		if _, ok := colIndices[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	locations := make(map[string]LatLon)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		name := strings.TrimSpace(record[colIndices["team"]])
		if name == "" {
			continue
		}

		lat, err := strconv.ParseFloat(strings.TrimSpace(record[colIndices["latitude"]]), 64)
		if err != nil {
			continue
		}

		lon, err := strconv.ParseFloat(strings.TrimSpace(record[colIndices["longitude"]]), 64)
		if err != nil {
			continue
		}

		locations[name] = LatLon{Lat: lat, Lon: lon}
	}

	return locations, nil
}
