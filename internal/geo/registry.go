package geo

import (
	"tradedeadline/internal/debug"
)

// DefaultLocation is used for teams with no stadium entry: the geographic
// center of the contiguous United States
var DefaultLocation = LatLon{Lat: 39.8283, Lon: -98.5795}

// Stadium is a fixed ballpark location keyed by team display name
type Stadium struct {
	Team     string
	Name     string
	City     string
	State    string
	Location LatLon
}

// Stadiums lists one ballpark per franchise
var Stadiums = []Stadium{
	{"Arizona Diamondbacks", "Chase Field", "Phoenix", "AZ", LatLon{33.44527778, -112.0669444}},
	{"Atlanta Braves", "Truist Park", "Cumberland", "GA", LatLon{33.8906, -84.4678}},
	{"Baltimore Orioles", "Oriole Park at Camden Yards", "Baltimore", "MD", LatLon{39.28388889, -76.62166667}},
	{"Boston Red Sox", "Fenway Park", "Boston", "MA", LatLon{42.34638889, -71.0975}},
	{"Chicago Cubs", "Wrigley Field", "Chicago", "IL", LatLon{41.94833333, -87.65555556}},
	{"Chicago White Sox", "Guaranteed Rate Field", "Chicago", "IL", LatLon{41.83, -87.63388889}},
	{"Cincinnati Reds", "Great American Ball Park", "Cincinnati", "OH", LatLon{39.0975, -84.50666667}},
	{"Cleveland Guardians", "Progressive Field", "Cleveland", "OH", LatLon{41.49583333, -81.68527778}},
	{"Colorado Rockies", "Coors Field", "Denver", "CO", LatLon{39.75611111, -104.9941667}},
	{"Detroit Tigers", "Comerica Park", "Detroit", "MI", LatLon{42.33916667, -83.04861111}},
	{"Houston Astros", "Minute Maid Park", "Houston", "TX", LatLon{29.75694444, -95.35555556}},
	{"Kansas City Royals", "Kauffman Stadium", "Kansas City", "MO", LatLon{39.05138889, -94.48055556}},
	{"Los Angeles Angels", "Angel Stadium of Anaheim", "Anaheim", "CA", LatLon{33.80027778, -117.8827778}},
	{"Los Angeles Dodgers", "Dodger Stadium", "Los Angeles", "CA", LatLon{34.07361111, -118.24}},
	{"Miami Marlins", "LoanDepot Park", "Miami", "FL", LatLon{25.77805556, -80.21972222}},
	{"Milwaukee Brewers", "American Family Field", "Milwaukee", "WI", LatLon{43.02833333, -87.97111111}},
	{"Minnesota Twins", "Target Field", "Minneapolis", "MN", LatLon{44.98166667, -93.27833333}},
	{"New York Mets", "Citi Field", "Queens", "NY", LatLon{40.75694444, -73.84583333}},
	{"New York Yankees", "Yankee Stadium", "Bronx", "NY", LatLon{40.82916667, -73.92638889}},
	{"Oakland Athletics", "Oakland Coliseum", "Oakland", "CA", LatLon{37.75166667, -122.2005556}},
	{"Philadelphia Phillies", "Citizens Bank Park", "Philadelphia", "PA", LatLon{39.90583333, -75.16638889}},
	{"Pittsburgh Pirates", "PNC Park", "Pittsburgh", "PA", LatLon{40.44694444, -80.00583333}},
	{"San Diego Padres", "Petco Park", "San Diego", "CA", LatLon{32.70729983, -117.1565998}},
	{"San Francisco Giants", "Oracle Park", "San Francisco", "CA", LatLon{37.77833333, -122.3894444}},
	{"Seattle Mariners", "T-Mobile Park", "Seattle", "WA", LatLon{47.59138889, -122.3325}},
	{"St. Louis Cardinals", "Busch Stadium", "St. Louis", "MO", LatLon{38.6225, -90.19305556}},
	{"Tampa Bay Rays", "Tropicana Field", "St. Petersburg", "FL", LatLon{27.76833333, -82.65333333}},
	{"Texas Rangers", "Globe Life Field", "Arlington", "TX", LatLon{32.7475, -97.08277778}},
	{"Toronto Blue Jays", "Rogers Centre", "Toronto", "ON", LatLon{43.64138889, -79.38916667}},
	{"Washington Nationals", "Nationals Park", "Washington", "DC", LatLon{38.87277778, -77.0075}},
}

// OverrideLookup supplies calibrated screen positions by team id
type OverrideLookup interface {
	Get(teamID int) (Point, bool)
}

// Registry resolves team display names to stadium coordinates
type Registry struct {
	stadiums map[string]Stadium
	warned   map[string]bool
}

// NewRegistry creates a registry seeded with the stadium table
func NewRegistry() *Registry {
	r := &Registry{
		stadiums: make(map[string]Stadium, len(Stadiums)),
		warned:   make(map[string]bool),
	}
	for _, s := range Stadiums {
		r.stadiums[s.Team] = s
	}
	return r
}

// LocationOf looks a team up by exact display name
func (r *Registry) LocationOf(name string) (LatLon, bool) {
	st, ok := r.stadiums[name]
	return st.Location, ok
}

// StadiumOf returns the stadium entry for a team. Teams added only through
// Apply have a location but no ballpark name or city.
func (r *Registry) StadiumOf(name string) (Stadium, bool) {
	st, ok := r.stadiums[name]
	return st, ok
}

// Apply replaces or adds locations, e.g. from a CSV override file
func (r *Registry) Apply(locations map[string]LatLon) {
	for name, loc := range locations {
		st, ok := r.stadiums[name]
		if !ok {
			st = Stadium{Team: name}
		}
		st.Location = loc
		r.stadiums[name] = st
	}
}

// ResolvedPosition returns the override for teamID verbatim when one exists,
// otherwise the projected stadium location (or DefaultLocation on a miss)
func (r *Registry) ResolvedPosition(teamID int, name string, proj Projection, overrides OverrideLookup) Point {
	if overrides != nil {
		if pt, ok := overrides.Get(teamID); ok {
			return pt
		}
	}

	loc, ok := r.LocationOf(name)
	if !ok {
		// Only report each missing team once; this runs every frame
		if !r.warned[name] {
			r.warned[name] = true
			debug.Warn("no stadium data for team", "team", name, "id", teamID)
		}
		loc = DefaultLocation
	}

	return proj.Project(loc.Lat, loc.Lon)
}
