package geospatial

import (
	"fmt"
	"math"

	"github.com/samirrijal/quadroute/internal/core/domain"
)

const (
	// DefaultEarthRadius is the WGS 84 equatorial radius in meters.
	DefaultEarthRadius = 6378137.0
	// DefaultTileSize is the edge length of a tile in pixels.
	DefaultTileSize = 256
)

// ProjectionConfig parameterises the spherical Mercator projection and the tile grid.
type ProjectionConfig struct {
	EarthRadius float64 `mapstructure:"earth_radius"`
	TileSize    int     `mapstructure:"tile_size"`
}

// DefaultProjectionConfig returns the WGS 84 sphere with 256 px tiles.
func DefaultProjectionConfig() ProjectionConfig {
	return ProjectionConfig{EarthRadius: DefaultEarthRadius, TileSize: DefaultTileSize}
}

// Projection converts between geodetic, Mercator, pixel and tile coordinates.
// It is immutable and safe for concurrent use.
type Projection struct {
	cfg    ProjectionConfig
	size   float64 // map width and height in meters
	origin float64 // left and bottom edge of the map in meters
}

var defaultProjection = mustProjection(DefaultProjectionConfig())

// Default returns the projection for DefaultProjectionConfig.
func Default() *Projection { return defaultProjection }

// NewProjection validates cfg and builds a Projection.
func NewProjection(cfg ProjectionConfig) (*Projection, error) {
	if !(cfg.EarthRadius > 0) || math.IsInf(cfg.EarthRadius, 0) {
		return nil, fmt.Errorf("projection: earth radius must be positive, got %v", cfg.EarthRadius)
	}
	if cfg.TileSize <= 0 {
		return nil, fmt.Errorf("projection: tile size must be positive, got %d", cfg.TileSize)
	}
	size := 2 * math.Pi * cfg.EarthRadius
	return &Projection{cfg: cfg, size: size, origin: -0.5 * size}, nil
}

func mustProjection(cfg ProjectionConfig) *Projection {
	p, err := NewProjection(cfg)
	if err != nil {
		panic(err)
	}
	return p
}

// Config returns the configuration p was built with.
func (p *Projection) Config() ProjectionConfig { return p.cfg }

// Circumference returns the width of the Mercator map in meters.
func (p *Projection) Circumference() float64 { return p.size }

// Origin returns the Mercator coordinate of the map's left and bottom edges.
func (p *Projection) Origin() float64 { return p.origin }

// CheckLatitude rejects NaN and latitudes beyond the square Mercator map.
func CheckLatitude(lat float64) error {
	if math.IsNaN(lat) || math.Abs(lat) > domain.MaxLatitude {
		return &domain.LatitudeError{Lat: lat}
	}
	return nil
}

// ToMercator projects g onto the Mercator plane.
func (p *Projection) ToMercator(g domain.GeoPoint) (domain.MercatorPoint, error) {
	if err := CheckLatitude(g.Lat); err != nil {
		return domain.MercatorPoint{}, err
	}
	if math.IsNaN(g.Lon) || math.IsInf(g.Lon, 0) {
		return domain.MercatorPoint{}, fmt.Errorf("%w: %v", domain.ErrInvalidLongitude, g.Lon)
	}
	x := g.Lon * p.size / 360
	y := math.Log(math.Tan(math.Pi/4+g.Lat/180*math.Pi/2)) * p.size / (2 * math.Pi)
	return domain.MercatorPoint{X: x, Y: y}, nil
}

// ToGeoPoint is the inverse of ToMercator.
func (p *Projection) ToGeoPoint(m domain.MercatorPoint) domain.GeoPoint {
	lon := m.X / (p.size / 360)
	lat := (2*math.Atan(math.Exp(m.Y*2*math.Pi/p.size)) - math.Pi/2) * 180 / math.Pi
	return domain.GeoPoint{Lat: lat, Lon: lon}
}

// normalizeZoom maps negative zoom levels to the world tile and rejects levels above MaxZoom.
func normalizeZoom(zoom int) (int, error) {
	if zoom < 0 {
		return 0, nil
	}
	if zoom > domain.MaxZoom {
		return 0, &domain.ZoomError{Zoom: zoom}
	}
	return zoom, nil
}

// Resolution returns the size of one pixel in Mercator meters at zoom.
func (p *Projection) Resolution(zoom int) float64 {
	if zoom < 0 {
		zoom = 0
	}
	return p.size / (float64(p.cfg.TileSize) * float64(uint64(1)<<uint(zoom)))
}

// ToPixel converts m to continuous pixel coordinates at zoom.
func (p *Projection) ToPixel(m domain.MercatorPoint, zoom int) (domain.PixelPoint, error) {
	zoom, err := normalizeZoom(zoom)
	if err != nil {
		return domain.PixelPoint{}, err
	}
	res := p.Resolution(zoom)
	return domain.PixelPoint{
		X:    (m.X - p.origin) / res,
		Y:    (m.Y - p.origin) / res,
		Zoom: zoom,
	}, nil
}

// PixelToMercator is the inverse of ToPixel.
func (p *Projection) PixelToMercator(px domain.PixelPoint) domain.MercatorPoint {
	res := p.Resolution(px.Zoom)
	return domain.MercatorPoint{
		X: px.X*res + p.origin,
		Y: px.Y*res + p.origin,
	}
}

// ContainingTile returns the tile px falls in. A pixel exactly on a tile edge belongs
// to the lower-indexed tile. Columns wrap around the antimeridian; rows are clamped
// to the grid so the map's south edge lands in row 0.
func (p *Projection) ContainingTile(px domain.PixelPoint) domain.Tile {
	ts := float64(p.cfg.TileSize)
	tx := int(math.Ceil(px.X/ts)) - 1
	ty := int(math.Ceil(px.Y/ts)) - 1

	if n := domain.NumTiles(px.Zoom); n > 0 {
		tx %= n
		if tx < 0 {
			tx += n
		}
		ty = min(max(ty, 0), n-1)
	}
	return domain.Tile{X: tx, Y: ty, Zoom: px.Zoom}
}

// TilePixelCorners returns the pixel corners of t as upper-left, upper-right,
// lower-right, lower-left. They enclose exactly the pixels ContainingTile maps to t.
func (p *Projection) TilePixelCorners(t domain.Tile) [4]domain.PixelPoint {
	ts := float64(p.cfg.TileSize)
	x0, y0 := float64(t.X)*ts, float64(t.Y)*ts
	x1, y1 := x0+ts, y0+ts
	return [4]domain.PixelPoint{
		{X: x0, Y: y0, Zoom: t.Zoom},
		{X: x1, Y: y0, Zoom: t.Zoom},
		{X: x1, Y: y1, Zoom: t.Zoom},
		{X: x0, Y: y1, Zoom: t.Zoom},
	}
}

// Corners returns the geographic corners of t.
func (p *Projection) Corners(t domain.Tile) domain.Corners {
	var pts [4]domain.GeoPoint
	for i, px := range p.TilePixelCorners(t) {
		pts[i] = p.ToGeoPoint(p.PixelToMercator(px))
	}
	return domain.Corners{
		UpperLeft:  pts[0],
		UpperRight: pts[1],
		LowerRight: pts[2],
		LowerLeft:  pts[3],
	}
}

// Bounds returns the bounding box of t.
func (p *Projection) Bounds(t domain.Tile) domain.Bounds {
	return p.Corners(t).Bounds()
}

// Tile returns the tile containing g at zoom.
func (p *Projection) Tile(zoom int, g domain.GeoPoint) (domain.Tile, error) {
	m, err := p.ToMercator(g)
	if err != nil {
		return domain.Tile{}, err
	}
	px, err := p.ToPixel(m, zoom)
	if err != nil {
		return domain.Tile{}, err
	}
	return p.ContainingTile(px), nil
}

// QuadtreePath returns the path of the tile containing g at zoom, with sep before every digit.
func (p *Projection) QuadtreePath(zoom int, g domain.GeoPoint, sep string) (string, error) {
	if err := domain.ValidateSeparator(sep); err != nil {
		return "", err
	}
	t, err := p.Tile(zoom, g)
	if err != nil {
		return "", err
	}
	return t.Path(sep)
}
