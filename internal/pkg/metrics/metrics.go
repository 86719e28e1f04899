package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Quadtree codec metrics
	QuadtreeEncodes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quadroute",
		Subsystem: "quadtree",
		Name:      "encodes_total",
		Help:      "Total quadtree paths produced from coordinates",
	}, []string{"zoom"})

	QuadtreeDecodes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quadroute",
		Subsystem: "quadtree",
		Name:      "decodes_total",
		Help:      "Total quadtree paths decoded into tiles",
	}, []string{"zoom"})

	QuadtreeErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quadroute",
		Subsystem: "quadtree",
		Name:      "errors_total",
		Help:      "Total failed codec operations",
	}, []string{"operation", "reason"})

	// Routing-key metrics
	RoutingKeysBuilt = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quadroute",
		Subsystem: "routing",
		Name:      "keys_built_total",
		Help:      "Total routing keys composed for outgoing messages",
	}, []string{"message_type"})

	RoutingMatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quadroute",
		Subsystem: "routing",
		Name:      "matches_total",
		Help:      "Total routing keys checked against binding patterns",
	}, []string{"result"})
)

// ZoomLabel keeps zoom label values short and bounded.
func ZoomLabel(zoom int) string {
	return strconv.Itoa(zoom)
}

// MatchLabel maps a match outcome to its label value.
func MatchLabel(matched bool) string {
	if matched {
		return "match"
	}
	return "miss"
}
