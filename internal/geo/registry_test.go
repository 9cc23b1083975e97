package geo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedOverrides map[int]Point

func (f fixedOverrides) Get(teamID int) (Point, bool) {
	pt, ok := f[teamID]
	return pt, ok
}

func TestRegistryHasEveryFranchise(t *testing.T) {
	r := NewRegistry()
	require.Len(t, Stadiums, 30)
	for _, st := range Stadiums {
		got, ok := r.StadiumOf(st.Team)
		require.True(t, ok, st.Team)
		assert.Equal(t, st, got)
	}

	loc, ok := r.LocationOf("Boston Red Sox")
	require.True(t, ok)
	assert.InDelta(t, 42.34638889, loc.Lat, 1e-9)

	_, ok = r.LocationOf("boston red sox")
	assert.False(t, ok, "lookup is by exact display name")
}

func TestResolvedPosition(t *testing.T) {
	r := NewRegistry()
	proj := DefaultProjection()

	loc, _ := r.LocationOf("Seattle Mariners")
	assert.Equal(t, proj.Project(loc.Lat, loc.Lon), r.ResolvedPosition(136, "Seattle Mariners", proj, nil))

	overrides := fixedOverrides{136: {X: 12, Y: 34}}
	assert.Equal(t, Point{X: 12, Y: 34}, r.ResolvedPosition(136, "Seattle Mariners", proj, overrides))

	// Unknown names fall back to the default coordinate instead of failing
	missing := r.ResolvedPosition(999, "Springfield Isotopes", proj, overrides)
	assert.Equal(t, proj.Project(DefaultLocation.Lat, DefaultLocation.Lon), missing)
}

func TestParseLocations(t *testing.T) {
	csv := `team,latitude,longitude
Athletics,38.5803,-121.5135
Broken Row,north,-1
,10,10
`
	locs, err := ParseLocations(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Len(t, locs, 1)
	assert.Equal(t, LatLon{Lat: 38.5803, Lon: -121.5135}, locs["Athletics"])

	r := NewRegistry()
	r.Apply(locs)
	loc, ok := r.LocationOf("Athletics")
	require.True(t, ok)
	assert.Equal(t, 38.5803, loc.Lat)

	st, ok := r.StadiumOf("Athletics")
	require.True(t, ok)
	assert.Equal(t, Stadium{Team: "Athletics", Location: LatLon{Lat: 38.5803, Lon: -121.5135}}, st)
}

func TestApplyKeepsStadiumDetails(t *testing.T) {
	r := NewRegistry()
	r.Apply(map[string]LatLon{"Boston Red Sox": {Lat: 42, Lon: -71}})

	st, ok := r.StadiumOf("Boston Red Sox")
	require.True(t, ok)
	assert.Equal(t, "Fenway Park", st.Name)
	assert.Equal(t, LatLon{Lat: 42, Lon: -71}, st.Location)
}

func TestParseLocationsMissingColumn(t *testing.T) {
	_, err := ParseLocations(strings.NewReader("team,latitude\nA,1\n"))
	assert.ErrorContains(t, err, "missing required column: longitude")

	_, err = ParseLocations(strings.NewReader("team,lat,longitude\nA,1,2\n"))
	assert.ErrorContains(t, err, "missing required column: latitude")
}

func TestFilterByBounds(t *testing.T) {
	inside := NewLineFeature(FeatureStateBorder, []LatLon{{Lat: 0, Lon: 0}, {Lat: 40, Lon: -100}})
	outside := NewLineFeature(FeatureStateBorder, []LatLon{{Lat: 0, Lon: 0}, {Lat: 1, Lon: 1}})

	got := FilterByBounds([]*Feature{inside, outside}, DefaultProjection().Bounds)
	assert.Equal(t, []*Feature{inside}, got)
}
