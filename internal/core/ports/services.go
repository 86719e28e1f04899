package ports

import (
	"github.com/samirrijal/quadroute/internal/core/domain"
)

// TileCodec converts coordinates to tiles and quadtree paths, and paths back to tiles.
type TileCodec interface {
	QuadtreePath(zoom int, lat, lon float64, sep string) (string, error)
	Tile(zoom int, lat, lon float64) (domain.Tile, error)
	Corners(t domain.Tile) domain.Corners
	ParseQuadtreePath(path, sep string) (domain.Tile, error)
}

// RoutingKeyBuilder composes and parses the routing keys messages are published under.
type RoutingKeyBuilder interface {
	RoutingKey(d domain.Datum) (string, error)
	ParseRoutingKey(key string) (domain.RoutingKey, error)
}
