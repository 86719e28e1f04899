package geojsonadapter

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/samirrijal/quadroute/internal/core/domain"
)

// CornerSource resolves the corners of a tile, e.g. usecases.QuadtreeService.
type CornerSource interface {
	Corners(t domain.Tile) domain.Corners
}

// Point converts a GeoPoint to an orb point (lon, lat order).
func Point(p domain.GeoPoint) orb.Point {
	return orb.Point{p.Lon, p.Lat}
}

// Polygon returns the closed, counter-clockwise outline of a tile.
func Polygon(c domain.Corners) orb.Polygon {
	pts := c.Points()
	ring := make(orb.Ring, 0, len(pts)+1)
	for _, p := range pts {
		ring = append(ring, Point(p))
	}
	ring = append(ring, ring[0])
	return orb.Polygon{ring}
}

// Bound converts domain bounds to an orb.Bound.
func Bound(b domain.Bounds) orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.MinLon, b.MinLat},
		Max: orb.Point{b.MaxLon, b.MaxLat},
	}
}

// Feature renders a tile as a polygon feature identified by its quadkey.
func Feature(t domain.Tile, c domain.Corners) *geojson.Feature {
	f := geojson.NewFeature(Polygon(c))
	quadkey := t.Quadkey()
	f.ID = quadkey
	f.Properties["x"] = t.X
	f.Properties["y"] = t.Y
	f.Properties["zoom"] = t.Zoom
	f.Properties["quadkey"] = quadkey
	return f
}

// PointFeature renders an encoded position.
func PointFeature(p domain.GeoPoint) *geojson.Feature {
	f := geojson.NewFeature(Point(p))
	f.Properties["lat"] = p.Lat
	f.Properties["lon"] = p.Lon
	return f
}

// FeatureCollection renders tiles, in order, with their corners resolved by src.
func FeatureCollection(src CornerSource, tiles ...domain.Tile) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, t := range tiles {
		fc.Append(Feature(t, src.Corners(t)))
	}
	return fc
}
