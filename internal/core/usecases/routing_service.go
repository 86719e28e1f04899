package usecases

import (
	"log/slog"

	"github.com/samirrijal/quadroute/internal/core/domain"
	"github.com/samirrijal/quadroute/internal/core/ports"
	"github.com/samirrijal/quadroute/internal/pkg/metrics"
	"github.com/samirrijal/quadroute/internal/pkg/topic"
)

var _ ports.RoutingKeyBuilder = (*RoutingService)(nil)

// RoutingService composes routing keys for outgoing messages and the binding
// patterns consumers subscribe with.
type RoutingService struct {
	codec ports.TileCodec
	log   *slog.Logger
}

// NewRoutingService creates a new RoutingService.
func NewRoutingService(codec ports.TileCodec, logger *slog.Logger) *RoutingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RoutingService{codec: codec, log: logger}
}

// RoutingKey returns `type.version.provider.subtype` followed by the quadtree path of
// the datum's position at its zoom, each digit preceded by ".".
func (s *RoutingService) RoutingKey(d domain.Datum) (string, error) {
	header, err := domain.RoutingKey{
		MessageType:    d.MessageType,
		MessageVersion: d.MessageVersion,
		Provider:       d.Provider,
		Subtype:        d.Subtype,
	}.Header()
	if err != nil {
		metrics.QuadtreeErrors.WithLabelValues("routing_key", errorReason(err)).Inc()
		s.log.Warn("routing key rejected", "error", err)
		return "", err
	}

	path, err := s.codec.QuadtreePath(d.Zoom, d.Point.Lat, d.Point.Lon, domain.RoutingSeparator)
	if err != nil {
		return "", err
	}

	metrics.RoutingKeysBuilt.WithLabelValues(d.MessageType).Inc()
	return header + path, nil
}

// ParseRoutingKey splits a received key and reconstructs its tile.
func (s *RoutingService) ParseRoutingKey(key string) (domain.RoutingKey, error) {
	k, err := domain.ParseRoutingKey(key)
	if err != nil {
		metrics.QuadtreeErrors.WithLabelValues("parse_routing_key", errorReason(err)).Inc()
		s.log.Warn("routing key parse failed", "key", key, "error", err)
		return domain.RoutingKey{}, err
	}
	return k, nil
}

// AreaFilter returns the binding pattern selecting every message located inside the
// tile addressed by path (written with sep), whatever its header or deeper zoom.
// The world tile selects everything with "#" rather than an empty path selector.
func (s *RoutingService) AreaFilter(path, sep string) (string, error) {
	t, err := s.codec.ParseQuadtreePath(path, sep)
	if err != nil {
		return "", err
	}
	if t.Zoom == 0 {
		return "#", nil
	}
	dotted, err := t.Path(domain.RoutingSeparator)
	if err != nil {
		return "", err
	}
	return "*.*.*.*" + dotted + ".#", nil
}

// HeaderFilter returns a binding pattern on the key header. Empty fields match any word.
func (s *RoutingService) HeaderFilter(messageType, version, provider, subtype string) string {
	words := []string{messageType, version, provider, subtype}
	for i, w := range words {
		if w == "" {
			words[i] = "*"
		}
	}
	return topic.Join(append(words, "#")...)
}

// Matches reports whether a routing key is selected by a binding pattern.
func (s *RoutingService) Matches(pattern, key string) bool {
	ok := topic.Match(pattern, key)
	metrics.RoutingMatches.WithLabelValues(metrics.MatchLabel(ok)).Inc()
	return ok
}
