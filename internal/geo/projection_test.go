package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectCorners(t *testing.T) {
	p := Projection{
		Bounds: Bounds{MinLat: 20, MaxLat: 50, MinLon: -120, MaxLon: -60},
		Size:   Size{Width: 600, Height: 300},
		Offset: Point{X: 10, Y: 5},
	}

	topLeft := p.Project(50, -120)
	assert.InDelta(t, 10.0, topLeft.X, 1e-9)
	assert.InDelta(t, 5.0, topLeft.Y, 1e-9)

	bottomRight := p.Project(20, -60)
	assert.InDelta(t, 610.0, bottomRight.X, 1e-9)
	assert.InDelta(t, 305.0, bottomRight.Y, 1e-9)

	// Higher latitude means smaller y
	north := p.Project(45, -90)
	south := p.Project(25, -90)
	assert.Less(t, north.Y, south.Y)
}

func TestRoundTrip(t *testing.T) {
	configs := []Projection{
		DefaultProjection(),
		{
			Bounds: Bounds{MinLat: -10, MaxLat: 10, MinLon: 100, MaxLon: 140},
			Size:   Size{Width: 80, Height: 24},
			Offset: Point{X: -3.5, Y: 7.25},
		},
		{
			Bounds:   Bounds{MinLat: 24, MaxLat: 49, MinLon: -125, MaxLon: -67},
			Size:     Size{Width: 213, Height: 61},
			Rotation: 12,
		},
	}

	for _, cfg := range configs {
		require.NoError(t, cfg.Validate())
		for lat := -60.0; lat <= 60; lat += 7.3 {
			for lon := -170.0; lon <= 170; lon += 11.9 {
				ll := cfg.Unproject(cfg.Project(lat, lon))
				assert.InDelta(t, lat, ll.Lat, 1e-6)
				assert.InDelta(t, lon, ll.Lon, 1e-6)
			}
		}
	}
}

func TestRotationDoesNotMoveProjectedPoints(t *testing.T) {
	flat := DefaultProjection()
	rotated := DefaultProjection()
	rotated.Rotation = 30

	assert.Equal(t, flat.Project(40, -100), rotated.Project(40, -100))
	assert.NotEqual(t, rotated.Project(40, -100), rotated.RotateBackdrop(rotated.Project(40, -100)))

	center := rotated.Center()
	assert.InDelta(t, center.X, rotated.RotateBackdrop(center).X, 1e-9)
	assert.InDelta(t, center.Y, rotated.RotateBackdrop(center).Y, 1e-9)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Projection)
	}{
		{"zero width", func(p *Projection) { p.Size.Width = 0 }},
		{"negative height", func(p *Projection) { p.Size.Height = -1 }},
		{"equal latitudes", func(p *Projection) { p.Bounds.MaxLat = p.Bounds.MinLat }},
		{"inverted longitudes", func(p *Projection) { p.Bounds.MinLon, p.Bounds.MaxLon = p.Bounds.MaxLon, p.Bounds.MinLon }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultProjection()
			tt.mutate(&p)
			assert.ErrorIs(t, p.Validate(), ErrDegenerateConfig)
		})
	}

	assert.NoError(t, DefaultProjection().Validate())
}

func TestPointCell(t *testing.T) {
	x, y := Point{X: 3.49, Y: 7.5}.Cell()
	assert.Equal(t, 3, x)
	assert.Equal(t, 8, y)
}
