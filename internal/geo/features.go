package geo

// FeatureType represents the type of backdrop feature
type FeatureType int

const (
	FeatureStateBorder FeatureType = iota
	FeatureCoastline
)

// String returns a string representation of the feature type
func (f FeatureType) String() string {
	switch f {
	case FeatureStateBorder:
		return "StateBorder"
	case FeatureCoastline:
		return "Coastline"
	default:
		return "Unknown"
	}
}

// LatLon represents a geographic coordinate
type LatLon struct {
	Lat float64 `json:"latitude" yaml:"latitude"`
	Lon float64 `json:"longitude" yaml:"longitude"`
}

// Feature is a polyline read from a shapefile
type Feature struct {
	Type   FeatureType
	Points []LatLon
}

// NewLineFeature creates a new line/polyline feature
func NewLineFeature(ftype FeatureType, points []LatLon) *Feature {
	return &Feature{
		Type:   ftype,
		Points: points,
	}
}

// Bounds represents a geographic bounding box
type Bounds struct {
	MinLat float64 `mapstructure:"minLat" yaml:"minLat"`
	MaxLat float64 `mapstructure:"maxLat" yaml:"maxLat"`
	MinLon float64 `mapstructure:"minLon" yaml:"minLon"`
	MaxLon float64 `mapstructure:"maxLon" yaml:"maxLon"`
}

// Contains checks if a point is within the bounds
func (b Bounds) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat &&
		lon >= b.MinLon && lon <= b.MaxLon
}

// FilterByBounds keeps features with at least one point inside bounds
func FilterByBounds(features []*Feature, bounds Bounds) []*Feature {
	filtered := make([]*Feature, 0, len(features))

	for _, feature := range features {
		for _, point := range feature.Points {
			if bounds.Contains(point.Lat, point.Lon) {
				filtered = append(filtered, feature)
				break
			}
		}
	}

	return filtered
}
