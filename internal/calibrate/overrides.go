package calibrate

import (
	"sort"

	"tradedeadline/internal/geo"
)

// Overrides holds manually calibrated screen positions by team id
type Overrides struct {
	positions map[int]geo.Point
}

// NewOverrides creates an empty override set
func NewOverrides() *Overrides {
	return &Overrides{positions: make(map[int]geo.Point)}
}

// Get returns the override for teamID
func (o *Overrides) Get(teamID int) (geo.Point, bool) {
	pt, ok := o.positions[teamID]
	return pt, ok
}

// Set stores an override, replacing any previous one
func (o *Overrides) Set(teamID int, pt geo.Point) {
	o.positions[teamID] = pt
}

// Len returns the number of overrides
func (o *Overrides) Len() int {
	return len(o.positions)
}

// IDs returns the overridden team ids in ascending order
func (o *Overrides) IDs() []int {
	ids := make([]int, 0, len(o.positions))
	for id := range o.positions {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Clear removes every override
func (o *Overrides) Clear() {
	o.positions = make(map[int]geo.Point)
}
