package domain

import "fmt"

// GeoPoint represents a geographic coordinate (WGS 84) in degrees.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("(%v, %v)", p.Lat, p.Lon)
}

// MercatorPoint is a point on the spherical Mercator plane, in meters from the map center.
type MercatorPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (m MercatorPoint) String() string {
	return fmt.Sprintf("[%v, %v]", m.X, m.Y)
}

// PixelPoint is a continuous position on the tiled raster of a zoom level.
// The pixel origin is the south-west corner of the map.
type PixelPoint struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom int     `json:"zoom"`
}

func (p PixelPoint) String() string {
	return fmt.Sprintf("[%v, %v (%d)]", p.X, p.Y, p.Zoom)
}

// Tile addresses one square cell of the map at a zoom level.
// X counts columns from the antimeridian eastwards, Y counts rows from the
// south edge northwards. Both are in [0, 2^Zoom).
type Tile struct {
	X    int `json:"x"`
	Y    int `json:"y"`
	Zoom int `json:"zoom"`
}

func (t Tile) String() string {
	return fmt.Sprintf("<%d, %d (%d)>", t.X, t.Y, t.Zoom)
}

// Corners holds the four geographic corners of a tile.
// "Upper" refers to the tile's first pixel row, which lies on its southern edge.
type Corners struct {
	UpperLeft  GeoPoint `json:"upper_left"`
	UpperRight GeoPoint `json:"upper_right"`
	LowerRight GeoPoint `json:"lower_right"`
	LowerLeft  GeoPoint `json:"lower_left"`
}

// Points returns the corners in ring order: upper-left, upper-right, lower-right, lower-left.
func (c Corners) Points() [4]GeoPoint {
	return [4]GeoPoint{c.UpperLeft, c.UpperRight, c.LowerRight, c.LowerLeft}
}

// Bounds returns the bounding box spanned by the corners.
func (c Corners) Bounds() Bounds {
	pts := c.Points()
	b := Bounds{
		MinLat: pts[0].Lat, MaxLat: pts[0].Lat,
		MinLon: pts[0].Lon, MaxLon: pts[0].Lon,
	}
	for _, p := range pts[1:] {
		b.MinLat = min(b.MinLat, p.Lat)
		b.MaxLat = max(b.MaxLat, p.Lat)
		b.MinLon = min(b.MinLon, p.Lon)
		b.MaxLon = max(b.MaxLon, p.Lon)
	}
	return b
}

// Bounds represents a geographic bounding box.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// Contains reports whether p lies inside b, edges included.
func (b Bounds) Contains(p GeoPoint) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat && p.Lon >= b.MinLon && p.Lon <= b.MaxLon
}
