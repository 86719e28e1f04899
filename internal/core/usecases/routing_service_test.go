package usecases_test

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/samirrijal/quadroute/internal/core/domain"
	"github.com/samirrijal/quadroute/internal/core/usecases"
	"github.com/samirrijal/quadroute/internal/pkg/metrics"
)

// --- Mock TileCodec ---

type mockCodec struct {
	quadtreePathFn      func(zoom int, lat, lon float64, sep string) (string, error)
	parseQuadtreePathFn func(path, sep string) (domain.Tile, error)
}

func (m *mockCodec) QuadtreePath(zoom int, lat, lon float64, sep string) (string, error) {
	if m.quadtreePathFn != nil {
		return m.quadtreePathFn(zoom, lat, lon, sep)
	}
	return "", nil
}

func (m *mockCodec) Tile(zoom int, lat, lon float64) (domain.Tile, error) {
	return domain.Tile{}, nil
}

func (m *mockCodec) Corners(t domain.Tile) domain.Corners { return domain.Corners{} }

func (m *mockCodec) ParseQuadtreePath(path, sep string) (domain.Tile, error) {
	if m.parseQuadtreePathFn != nil {
		return m.parseQuadtreePathFn(path, sep)
	}
	return domain.Tile{}, nil
}

// --- Fixtures ---

var fakeData = []domain.Datum{
	{Point: domain.GeoPoint{Lat: 51.481939, Lon: 5.640488}, Zoom: 18, MessageType: "DENM", MessageVersion: "1_2_2", Provider: "RWS", Subtype: "3"},
	{Point: domain.GeoPoint{Lat: 51.467641, Lon: 5.667863}, Zoom: 18, MessageType: "DENM", MessageVersion: "1_2_2", Provider: "NL_NB", Subtype: "26"},
	{Point: domain.GeoPoint{Lat: 51.437941, Lon: 5.472308}, Zoom: 18, MessageType: "DENM", MessageVersion: "1_1_1", Provider: "RWS", Subtype: "3"},
}

func routingKeys(t *testing.T, svc *usecases.RoutingService) []string {
	t.Helper()
	keys := make([]string, 0, len(fakeData))
	for _, d := range fakeData {
		key, err := svc.RoutingKey(d)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		keys = append(keys, key)
	}
	return keys
}

func countMatches(svc *usecases.RoutingService, pattern string, keys []string) int {
	n := 0
	for _, k := range keys {
		if svc.Matches(pattern, k) {
			n++
		}
	}
	return n
}

// --- Tests ---

func TestRoutingService_RoutingKey(t *testing.T) {
	svc := usecases.NewRoutingService(usecases.NewQuadtreeService(nil, nil), nil)
	before := testutil.ToFloat64(metrics.RoutingKeysBuilt.WithLabelValues("DENM"))

	want := []string{
		"DENM.1_2_2.RWS.3.1.2.0.2.0.3.0.2.0.0.2.0.0.2.3.2.3.3",
		"DENM.1_2_2.NL_NB.26.1.2.0.2.0.3.0.2.0.0.2.0.2.3.1.1.1.1",
		"DENM.1_1_1.RWS.3.1.2.0.2.0.2.1.3.1.1.3.2.0.3.0.0.2.0",
	}
	got := routingKeys(t, svc)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("datum %d: expected %s, got %s", i, want[i], got[i])
		}
	}

	after := testutil.ToFloat64(metrics.RoutingKeysBuilt.WithLabelValues("DENM"))
	if after-before != 3 {
		t.Errorf("expected keys counter to grow by 3, got %v", after-before)
	}
}

func TestRoutingService_RoutingKey_ParseBack(t *testing.T) {
	svc := usecases.NewRoutingService(usecases.NewQuadtreeService(nil, nil), nil)
	for i, key := range routingKeys(t, svc) {
		k, err := svc.ParseRoutingKey(key)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		d := fakeData[i]
		if k.Provider != d.Provider || k.Subtype != d.Subtype || k.MessageVersion != d.MessageVersion {
			t.Errorf("datum %d: header mismatch, got %+v", i, k)
		}
		if k.Tile.Zoom != d.Zoom {
			t.Errorf("datum %d: expected zoom %d, got %d", i, d.Zoom, k.Tile.Zoom)
		}
	}
}

func TestRoutingService_RoutingKey_InvalidHeader(t *testing.T) {
	called := false
	codec := &mockCodec{
		quadtreePathFn: func(zoom int, lat, lon float64, sep string) (string, error) {
			called = true
			return "", nil
		},
	}
	svc := usecases.NewRoutingService(codec, nil)

	d := fakeData[0]
	d.MessageVersion = "1.2.2"
	if _, err := svc.RoutingKey(d); !errors.Is(err, domain.ErrInvalidRoutingToken) {
		t.Fatalf("expected ErrInvalidRoutingToken, got %v", err)
	}
	if called {
		t.Error("expected codec not to be called for an invalid header")
	}
}

func TestRoutingService_RoutingKey_CodecError(t *testing.T) {
	codec := &mockCodec{
		quadtreePathFn: func(zoom int, lat, lon float64, sep string) (string, error) {
			if sep != domain.RoutingSeparator {
				t.Errorf("expected separator %q, got %q", domain.RoutingSeparator, sep)
			}
			return "", domain.ErrOutOfRangeLatitude
		},
	}
	svc := usecases.NewRoutingService(codec, nil)

	if _, err := svc.RoutingKey(fakeData[0]); !errors.Is(err, domain.ErrOutOfRangeLatitude) {
		t.Fatalf("expected ErrOutOfRangeLatitude, got %v", err)
	}
}

func TestRoutingService_AreaFilter(t *testing.T) {
	svc := usecases.NewRoutingService(usecases.NewQuadtreeService(nil, nil), nil)
	keys := routingKeys(t, svc)

	tests := []struct {
		name        string
		path        string
		sep         string
		wantPattern string
		wantMatches int
	}{
		{"helmond", "1.2.0.2.0.3.0.2.0.0", ".", "*.*.*.*.1.2.0.2.0.3.0.2.0.0.#", 2},
		{"eindhoven", "1.2.0.2.0.2.1.3.1.1", ".", "*.*.*.*.1.2.0.2.0.2.1.3.1.1.#", 1},
		{"unseparated", "1202020", "", "*.*.*.*.1.2.0.2.0.2.0.#", 0},
		{"world", "", "", "#", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pattern, err := svc.AreaFilter(tt.path, tt.sep)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if pattern != tt.wantPattern {
				t.Errorf("expected %s, got %s", tt.wantPattern, pattern)
			}
			if got := countMatches(svc, pattern, keys); got != tt.wantMatches {
				t.Errorf("expected %d matches, got %d", tt.wantMatches, got)
			}
		})
	}

	if _, err := svc.AreaFilter("1.2.4", "."); !errors.Is(err, domain.ErrInvalidQuadtreePath) {
		t.Errorf("expected ErrInvalidQuadtreePath, got %v", err)
	}
}

func TestRoutingService_HeaderFilter(t *testing.T) {
	svc := usecases.NewRoutingService(usecases.NewQuadtreeService(nil, nil), nil)
	keys := routingKeys(t, svc)

	tests := []struct {
		name        string
		fields      [4]string
		wantPattern string
		wantMatches int
	}{
		{"version", [4]string{"", "1_2_2", "", ""}, "*.1_2_2.*.*.#", 2},
		{"provider", [4]string{"", "", "RWS", ""}, "*.*.RWS.*.#", 2},
		{"subtype", [4]string{"", "", "", "3"}, "*.*.*.3.#", 2},
		{"everything", [4]string{}, "*.*.*.*.#", 3},
		{"no cause", [4]string{"DENM", "", "", "99"}, "DENM.*.*.99.#", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.fields
			pattern := svc.HeaderFilter(f[0], f[1], f[2], f[3])
			if pattern != tt.wantPattern {
				t.Errorf("expected %s, got %s", tt.wantPattern, pattern)
			}
			if got := countMatches(svc, pattern, keys); got != tt.wantMatches {
				t.Errorf("expected %d matches, got %d", tt.wantMatches, got)
			}
		})
	}
}

func TestRoutingService_Matches_Metrics(t *testing.T) {
	svc := usecases.NewRoutingService(&mockCodec{}, nil)
	hit := metrics.RoutingMatches.WithLabelValues("match")
	miss := metrics.RoutingMatches.WithLabelValues("miss")
	hitBefore, missBefore := testutil.ToFloat64(hit), testutil.ToFloat64(miss)

	if !svc.Matches("#", "DENM.1_2_1.RWS.0") {
		t.Error("expected # to match")
	}
	if svc.Matches("CAM.#", "DENM.1_2_1.RWS.0") {
		t.Error("expected CAM.# not to match")
	}

	if got := testutil.ToFloat64(hit) - hitBefore; got != 1 {
		t.Errorf("expected 1 match recorded, got %v", got)
	}
	if got := testutil.ToFloat64(miss) - missBefore; got != 1 {
		t.Errorf("expected 1 miss recorded, got %v", got)
	}
}
