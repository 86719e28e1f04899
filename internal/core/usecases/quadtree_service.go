package usecases

import (
	"errors"
	"log/slog"

	"github.com/samirrijal/quadroute/internal/core/domain"
	"github.com/samirrijal/quadroute/internal/core/ports"
	"github.com/samirrijal/quadroute/internal/pkg/geospatial"
	"github.com/samirrijal/quadroute/internal/pkg/metrics"
)

var _ ports.TileCodec = (*QuadtreeService)(nil)

// QuadtreeService implements ports.TileCodec on top of a projection.
// It holds no mutable state and is safe for concurrent use.
type QuadtreeService struct {
	proj *geospatial.Projection
	log  *slog.Logger
}

// NewQuadtreeService creates a QuadtreeService. A nil projection selects the
// default WGS 84 / 256 px projection, a nil logger the slog default.
func NewQuadtreeService(proj *geospatial.Projection, logger *slog.Logger) *QuadtreeService {
	if proj == nil {
		proj = geospatial.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &QuadtreeService{proj: proj, log: logger}
}

// Projection returns the projection the service converts with.
func (s *QuadtreeService) Projection() *geospatial.Projection { return s.proj }

// QuadtreePath returns the path of the tile containing (lat, lon) at zoom,
// exactly zoom digits long with sep written before each digit.
func (s *QuadtreeService) QuadtreePath(zoom int, lat, lon float64, sep string) (string, error) {
	path, err := s.proj.QuadtreePath(zoom, domain.GeoPoint{Lat: lat, Lon: lon}, sep)
	if err != nil {
		s.fail("encode", err, slog.Int("zoom", zoom), slog.Float64("lat", lat), slog.Float64("lon", lon), slog.String("sep", sep))
		return "", err
	}
	metrics.QuadtreeEncodes.WithLabelValues(metrics.ZoomLabel(max(zoom, 0))).Inc()
	s.log.Debug("quadtree path", "zoom", zoom, "lat", lat, "lon", lon, "path", path)
	return path, nil
}

// Tile returns the tile containing (lat, lon) at zoom.
func (s *QuadtreeService) Tile(zoom int, lat, lon float64) (domain.Tile, error) {
	t, err := s.proj.Tile(zoom, domain.GeoPoint{Lat: lat, Lon: lon})
	if err != nil {
		s.fail("tile", err, slog.Int("zoom", zoom), slog.Float64("lat", lat), slog.Float64("lon", lon))
		return domain.Tile{}, err
	}
	return t, nil
}

// Corners returns the geographic corners of t.
func (s *QuadtreeService) Corners(t domain.Tile) domain.Corners {
	return s.proj.Corners(t)
}

// ParseQuadtreePath decodes path, written with sep, back into its tile.
func (s *QuadtreeService) ParseQuadtreePath(path, sep string) (domain.Tile, error) {
	t, err := domain.ParseQuadtreePath(path, sep)
	if err != nil {
		s.fail("decode", err, slog.String("path", path), slog.String("sep", sep))
		return domain.Tile{}, err
	}
	metrics.QuadtreeDecodes.WithLabelValues(metrics.ZoomLabel(t.Zoom)).Inc()
	s.log.Debug("quadtree tile", "path", path, "tile", t.String())
	return t, nil
}

func (s *QuadtreeService) fail(op string, err error, attrs ...slog.Attr) {
	metrics.QuadtreeErrors.WithLabelValues(op, errorReason(err)).Inc()
	args := make([]any, 0, len(attrs)+1)
	for _, a := range attrs {
		args = append(args, a)
	}
	args = append(args, slog.String("error", err.Error()))
	s.log.Warn("quadtree "+op+" failed", args...)
}

// errorReason maps codec errors to a bounded metric label.
func errorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidQuadtreePath):
		return "invalid_path"
	case errors.Is(err, domain.ErrOutOfRangeLatitude):
		return "latitude"
	case errors.Is(err, domain.ErrInvalidLongitude):
		return "longitude"
	case errors.Is(err, domain.ErrInvalidSeparator):
		return "separator"
	case errors.Is(err, domain.ErrZoomOutOfRange):
		return "zoom"
	case errors.Is(err, domain.ErrInvalidRoutingToken), errors.Is(err, domain.ErrInvalidRoutingKey):
		return "routing_key"
	default:
		return "other"
	}
}
