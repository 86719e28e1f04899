// Quadroute converts coordinates to quadtree paths and routing keys, and back.
//
//	quadroute encode   --lat 51.4677 --lon 5.625 [--zoom 16] [--sep /] [--format text|json|geojson]
//	quadroute decode   <path> [--sep /] [--format text|json|geojson]
//	quadroute routekey --lat 51.4819 --lon 5.6405 [--routing-zoom 18] [--type DENM] [--version 1_2_2] [--provider RWS] [--subtype 3]
//	quadroute match    <pattern> <key>
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	geojsonadapter "github.com/samirrijal/quadroute/internal/adapters/geojson"
	"github.com/samirrijal/quadroute/internal/core/domain"
	"github.com/samirrijal/quadroute/internal/core/usecases"
	"github.com/samirrijal/quadroute/internal/pkg/config"
	"github.com/samirrijal/quadroute/internal/pkg/geospatial"
	"github.com/samirrijal/quadroute/internal/pkg/logging"
)

var errNoMatch = errors.New("no match")

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	err := run(os.Args[1], os.Args[2:], os.Stdout)
	switch {
	case err == nil:
	case errors.Is(err, errNoMatch):
		os.Exit(1)
	case errors.Is(err, pflag.ErrHelp):
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "quadroute %s: %v\n", os.Args[1], err)
		os.Exit(2)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: quadroute <encode|decode|routekey|match> [flags]")
}

// app holds what every subcommand needs once flags and configuration are parsed.
type app struct {
	cfg     *config.Config
	codec   *usecases.QuadtreeService
	routing *usecases.RoutingService
	out     io.Writer
}

func newApp(flags *pflag.FlagSet, out io.Writer) (*app, error) {
	cfg, err := config.Load("quadroute", flags)
	if err != nil {
		return nil, err
	}
	logger := logging.Setup(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	proj, err := geospatial.NewProjection(cfg.Projection)
	if err != nil {
		return nil, err
	}
	codec := usecases.NewQuadtreeService(proj, logger)
	return &app{
		cfg:     cfg,
		codec:   codec,
		routing: usecases.NewRoutingService(codec, logger),
		out:     out,
	}, nil
}

func commonFlags(name string) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.String("log-format", "json", "log format: json or text")
	flags.Float64("earth-radius", geospatial.DefaultEarthRadius, "sphere radius in meters")
	flags.Int("tile-size", geospatial.DefaultTileSize, "tile edge length in pixels")
	return flags
}

func run(cmd string, args []string, out io.Writer) error {
	switch cmd {
	case "encode":
		return runEncode(args, out)
	case "decode":
		return runDecode(args, out)
	case "routekey":
		return runRouteKey(args, out)
	case "match":
		return runMatch(args, out)
	default:
		usage(out)
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func runEncode(args []string, out io.Writer) error {
	flags := commonFlags("encode")
	lat := flags.Float64("lat", 0, "latitude (degree)")
	lon := flags.Float64("lon", 0, "longitude (degree)")
	flags.Int("zoom", 16, "zoom level")
	flags.String("sep", "", "separator written before every digit")
	format := flags.String("format", "text", "output format: text, json or geojson")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if !flags.Changed("lat") || !flags.Changed("lon") {
		return errors.New("--lat and --lon are required")
	}

	a, err := newApp(flags, out)
	if err != nil {
		return err
	}
	zoom, sep := a.cfg.Quadtree.Zoom, a.cfg.Quadtree.Separator

	path, err := a.codec.QuadtreePath(zoom, *lat, *lon, sep)
	if err != nil {
		return err
	}
	t, err := a.codec.Tile(zoom, *lat, *lon)
	if err != nil {
		return err
	}
	point := domain.GeoPoint{Lat: *lat, Lon: *lon}

	switch *format {
	case "text":
		fmt.Fprintf(out, "[%8.8f, %8.8f] at %d: %s\n", *lat, *lon, zoom, path)
		return a.printTile(t)
	case "json":
		return a.writeJSON(struct {
			Point   domain.GeoPoint `json:"point"`
			Path    string          `json:"path"`
			Tile    domain.Tile     `json:"tile"`
			Corners domain.Corners  `json:"corners"`
		}{point, path, t, a.codec.Corners(t)})
	case "geojson":
		fc := geojsonadapter.FeatureCollection(a.codec, t)
		fc.Append(geojsonadapter.PointFeature(point))
		return a.writeGeoJSON(fc)
	default:
		return fmt.Errorf("unknown format: %s", *format)
	}
}

func runDecode(args []string, out io.Writer) error {
	flags := commonFlags("decode")
	flags.String("sep", "", "separator the path was written with")
	format := flags.String("format", "text", "output format: text, json or geojson")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() > 1 {
		return errors.New("usage: quadroute decode <path>")
	}

	a, err := newApp(flags, out)
	if err != nil {
		return err
	}
	// A missing argument is the empty path, i.e. the world tile.
	t, err := a.codec.ParseQuadtreePath(flags.Arg(0), a.cfg.Quadtree.Separator)
	if err != nil {
		return err
	}

	switch *format {
	case "text":
		fmt.Fprintf(out, "%q: %s\n", flags.Arg(0), t)
		return a.printTile(t)
	case "json":
		return a.writeJSON(struct {
			Tile    domain.Tile    `json:"tile"`
			Quadkey string         `json:"quadkey"`
			Corners domain.Corners `json:"corners"`
		}{t, t.Quadkey(), a.codec.Corners(t)})
	case "geojson":
		return a.writeGeoJSON(geojsonadapter.FeatureCollection(a.codec, t))
	default:
		return fmt.Errorf("unknown format: %s", *format)
	}
}

func runRouteKey(args []string, out io.Writer) error {
	flags := commonFlags("routekey")
	lat := flags.Float64("lat", 0, "latitude (degree)")
	lon := flags.Float64("lon", 0, "longitude (degree)")
	flags.Int("routing-zoom", 18, "zoom level of the quadtree part")
	flags.String("type", "DENM", "message type")
	flags.String("version", "1_2_1", "message version, dots replaced by underscores")
	flags.String("provider", "", "publishing organisation")
	flags.String("subtype", "0", "message subtype")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if !flags.Changed("lat") || !flags.Changed("lon") {
		return errors.New("--lat and --lon are required")
	}

	a, err := newApp(flags, out)
	if err != nil {
		return err
	}
	r := a.cfg.Routing
	key, err := a.routing.RoutingKey(domain.Datum{
		Point:          domain.GeoPoint{Lat: *lat, Lon: *lon},
		Zoom:           r.Zoom,
		MessageType:    r.MessageType,
		MessageVersion: r.MessageVersion,
		Provider:       r.Provider,
		Subtype:        r.Subtype,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(out, key)
	return nil
}

func runMatch(args []string, out io.Writer) error {
	flags := commonFlags("match")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 2 {
		return errors.New("usage: quadroute match <pattern> <key>")
	}

	a, err := newApp(flags, out)
	if err != nil {
		return err
	}
	pattern, key := flags.Arg(0), flags.Arg(1)
	if !a.routing.Matches(pattern, key) {
		fmt.Fprintln(out, "no match")
		slog.Debug("routing key not selected", "pattern", pattern, "key", key)
		return errNoMatch
	}
	fmt.Fprintln(out, "match")
	return nil
}

func (a *app) printTile(t domain.Tile) error {
	c := a.codec.Corners(t)
	width, height := geospatial.EdgeLengths(c)
	fmt.Fprintf(a.out, "tile: %s quadkey %q\n", t, t.Quadkey())
	fmt.Fprintf(a.out, "corners: %s, %s\n", c.LowerLeft, c.UpperRight)
	fmt.Fprintf(a.out, "size: %.1fm x %.1fm\n", width, height)
	return nil
}

func (a *app) writeJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) writeGeoJSON(v json.Marshaler) error {
	data, err := v.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal geojson: %w", err)
	}
	_, err = fmt.Fprintf(a.out, "%s\n", data)
	return err
}
