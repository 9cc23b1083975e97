package calibrate

import (
	"encoding/json"
	"fmt"

	"github.com/peterstace/simplefeatures/geom"

	"tradedeadline/internal/geo"
)

// Export is one calibrated team with the coordinate its override implies
type Export struct {
	TeamID         int        `json:"teamId"`
	TeamName       string     `json:"teamName"`
	Coordinates    geo.LatLon `json:"coordinates"`
	ScreenPosition geo.Point  `json:"screenPosition"`
}

// ExportOverrides unprojects every override for inspection. names maps a
// team id to its display name; unknown ids are reported as "Unknown".
func (s *Session) ExportOverrides(proj geo.Projection, names func(teamID int) (string, bool)) []Export {
	exports := make([]Export, 0, s.overrides.Len())

	for _, id := range s.overrides.IDs() {
		pt, _ := s.overrides.Get(id)

		name := "Unknown"
		if names != nil {
			if n, ok := names(id); ok {
				name = n
			}
		}

		exports = append(exports, Export{
			TeamID:         id,
			TeamName:       name,
			Coordinates:    proj.Unproject(pt),
			ScreenPosition: pt,
		})
	}

	return exports
}

// GeoJSON renders exports as a FeatureCollection of points
func GeoJSON(exports []Export) ([]byte, error) {
	fc := make(geom.GeoJSONFeatureCollection, 0, len(exports))

	for _, e := range exports {
		pt, err := geom.NewPoint(geom.Coordinates{
			XY:   geom.XY{X: e.Coordinates.Lon, Y: e.Coordinates.Lat},
			Type: geom.DimXY,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build point for team %d: %w", e.TeamID, err)
		}

		fc = append(fc, geom.GeoJSONFeature{
			Geometry: pt.AsGeometry(),
			ID:       e.TeamID,
			Properties: map[string]interface{}{
				"teamName": e.TeamName,
				"screenX":  e.ScreenPosition.X,
				"screenY":  e.ScreenPosition.Y,
			},
		})
	}

	out, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode overrides: %w", err)
	}
	return out, nil
}
