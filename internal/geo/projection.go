package geo

import (
	"errors"
	"math"
)

// ErrDegenerateConfig is returned by Validate when the projection would divide by zero
var ErrDegenerateConfig = errors.New("degenerate projection: bounds and size must be non-empty")

// Point represents a screen coordinate
type Point struct {
	X float64 `mapstructure:"x" yaml:"x" json:"x"`
	Y float64 `mapstructure:"y" yaml:"y" json:"y"`
}

// Cell rounds the point to the nearest terminal cell
func (p Point) Cell() (int, int) {
	return int(math.Round(p.X)), int(math.Round(p.Y))
}

// Sub returns p - q
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Size is the output size of the projected map area
type Size struct {
	Width  float64 `mapstructure:"width" yaml:"width"`
	Height float64 `mapstructure:"height" yaml:"height"`
}

// Projection maps lat/lon linearly into a rectangle of Size placed at Offset.
// Rotation only turns the backdrop drawing; projected coordinates ignore it.
type Projection struct {
	Bounds   Bounds  `mapstructure:"bounds" yaml:"bounds"`
	Size     Size    `mapstructure:"size" yaml:"size"`
	Offset   Point   `mapstructure:"offset" yaml:"offset"`
	Rotation float64 `mapstructure:"rotation" yaml:"rotation"`
}

// DefaultProjection returns the contiguous-US framing used for the trade map
func DefaultProjection() Projection {
	return Projection{
		Bounds: Bounds{MinLat: 22, MaxLat: 51.9, MinLon: -124.3, MaxLon: -66},
		Size:   Size{Width: 1100, Height: 700},
		Offset: Point{X: 50, Y: 50},
	}
}

// Validate reports whether Project and Unproject are safe to call.
// Callers validate before mutating a live projection; Project itself does not check.
func (p Projection) Validate() error {
	if p.Size.Width <= 0 || p.Size.Height <= 0 ||
		p.Bounds.MaxLat <= p.Bounds.MinLat || p.Bounds.MaxLon <= p.Bounds.MinLon {
		return ErrDegenerateConfig
	}
	return nil
}

// Project converts lat/lon to screen coordinates
// Returns screen coordinates with (0, 0) at top-left
func (p Projection) Project(lat, lon float64) Point {
	b := p.Bounds
	x := (lon - b.MinLon) / (b.MaxLon - b.MinLon) * p.Size.Width
	// Y is inverted: higher latitude is further up the screen
	y := (b.MaxLat - lat) / (b.MaxLat - b.MinLat) * p.Size.Height

	return Point{X: x + p.Offset.X, Y: y + p.Offset.Y}
}

// Unproject converts screen coordinates back to lat/lon
func (p Projection) Unproject(pt Point) LatLon {
	b := p.Bounds
	x := pt.X - p.Offset.X
	y := pt.Y - p.Offset.Y

	lon := x/p.Size.Width*(b.MaxLon-b.MinLon) + b.MinLon
	lat := b.MaxLat - y/p.Size.Height*(b.MaxLat-b.MinLat)

	return LatLon{Lat: lat, Lon: lon}
}

// Center returns the screen-space center of the projected rectangle
func (p Projection) Center() Point {
	return Point{X: p.Offset.X + p.Size.Width/2, Y: p.Offset.Y + p.Size.Height/2}
}

// RotateBackdrop turns a projected backdrop point clockwise around the map center.
// Team positions and Unproject are deliberately left unrotated, so markers drift
// away from the backdrop whenever Rotation is non-zero.
func (p Projection) RotateBackdrop(pt Point) Point {
	if p.Rotation == 0 {
		return pt
	}

	rad := p.Rotation * math.Pi / 180.0
	sin, cos := math.Sincos(rad)
	c := p.Center()
	dx, dy := pt.X-c.X, pt.Y-c.Y

	return Point{
		X: c.X + dx*cos - dy*sin,
		Y: c.Y + dx*sin + dy*cos,
	}
}

// Contains checks if a screen point falls inside the projected rectangle
func (p Projection) Contains(pt Point) bool {
	return pt.X >= p.Offset.X && pt.X <= p.Offset.X+p.Size.Width &&
		pt.Y >= p.Offset.Y && pt.Y <= p.Offset.Y+p.Size.Height
}
