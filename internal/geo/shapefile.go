package geo

import (
	"fmt"
	"path/filepath"

	"github.com/jonas-p/go-shp"

	"tradedeadline/internal/debug"
)

// Natural Earth datasets drawn behind the teams
const (
	StatesBase    = "ne_50m_admin_1_states_provinces"
	CoastlineBase = "ne_50m_coastline"
)

// ShapefileLoader loads and parses ESRI shapefiles
type ShapefileLoader struct {
	dataDir string
}

// NewShapefileLoader creates a new shapefile loader
func NewShapefileLoader(dataDir string) *ShapefileLoader {
	return &ShapefileLoader{
		dataDir: dataDir,
	}
}

// LoadBackdrop loads state borders and coastlines clipped to bounds.
// Missing files are skipped; the map works without a backdrop.
func (s *ShapefileLoader) LoadBackdrop(bounds Bounds) map[FeatureType][]*Feature {
	features := make(map[FeatureType][]*Feature)

	sources := []struct {
		base  string
		ftype FeatureType
	}{
		{StatesBase, FeatureStateBorder},
		{CoastlineBase, FeatureCoastline},
	}

	for _, src := range sources {
		loaded, err := s.LoadShapefile(filepath.Join(s.dataDir, src.base+".shp"), src.ftype)
		if err != nil {
			debug.Warn("backdrop layer unavailable", "layer", src.ftype.String(), "err", err)
			features[src.ftype] = []*Feature{}
			continue
		}
		features[src.ftype] = FilterByBounds(loaded, bounds)
	}

	debug.Log("Loaded backdrop: %d borders, %d coastlines",
		len(features[FeatureStateBorder]), len(features[FeatureCoastline]))

	return features
}

// LoadShapefile loads a shapefile and converts each polyline or polygon part to a Feature
func (s *ShapefileLoader) LoadShapefile(path string, ftype FeatureType) ([]*Feature, error) {
	shape, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open shapefile %s: %w", filepath.Base(path), err)
	}
	defer shape.Close()

	features := make([]*Feature, 0)

	for shape.Next() {
		_, p := shape.Shape()

		switch geom := p.(type) {
		case *shp.PolyLine:
			features = append(features, splitParts(ftype, geom.Parts, geom.Points)...)
		case *shp.Polygon:
			// Polygons are drawn as their outlines
			features = append(features, splitParts(ftype, geom.Parts, geom.Points)...)
		}
	}

	return features, nil
}

// splitParts breaks a multi-part shape into one feature per part so that
// unrelated rings are not joined by a stray line
func splitParts(ftype FeatureType, parts []int32, points []shp.Point) []*Feature {
	var features []*Feature

	for i, start := range parts {
		end := int32(len(points))
		if i+1 < len(parts) {
			end = parts[i+1]
		}
		if start < 0 || end > int32(len(points)) || end-start < 2 {
			continue
		}

		line := make([]LatLon, 0, end-start)
		for _, pt := range points[start:end] {
			line = append(line, LatLon{Lat: pt.Y, Lon: pt.X})
		}
		features = append(features, NewLineFeature(ftype, line))
	}

	return features
}
