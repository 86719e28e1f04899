package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidQuadtreePath is returned when a path contains characters other than 0-3
	// once the separator has been removed, or is deeper than MaxZoom.
	ErrInvalidQuadtreePath = errors.New("invalid quadtree path")

	// ErrOutOfRangeLatitude is returned for latitudes the Mercator projection cannot represent.
	ErrOutOfRangeLatitude = errors.New("latitude out of Mercator range")

	// ErrInvalidLongitude is returned for NaN or infinite longitudes.
	ErrInvalidLongitude = errors.New("longitude is not a finite number")

	// ErrInvalidSeparator is returned when a separator contains a quadtree digit.
	ErrInvalidSeparator = errors.New("separator must not contain quadtree digits 0-3")

	// ErrZoomOutOfRange is returned for zoom levels above MaxZoom.
	ErrZoomOutOfRange = errors.New("zoom level out of range")

	// ErrInvalidRoutingToken is returned when a routing key header token is empty or
	// contains a word separator or wildcard.
	ErrInvalidRoutingToken = errors.New("invalid routing key token")

	// ErrInvalidRoutingKey is returned when a routing key cannot be split into its parts.
	ErrInvalidRoutingKey = errors.New("invalid routing key")
)

// InvalidQuadtreePathError names the offending input of a failed decode.
type InvalidQuadtreePathError struct {
	Path  string // input as received, separators included
	Index int    // byte offset in the cleaned path, -1 if the path is too deep
	Char  byte
}

func (e *InvalidQuadtreePathError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid quadtree path %q: deeper than zoom %d", e.Path, MaxZoom)
	}
	return fmt.Sprintf("invalid quadtree path %q: character %q at %d is not a digit 0-3", e.Path, e.Char, e.Index)
}

func (e *InvalidQuadtreePathError) Unwrap() error { return ErrInvalidQuadtreePath }

// LatitudeError reports a latitude outside the representable Mercator band.
type LatitudeError struct {
	Lat float64
}

func (e *LatitudeError) Error() string {
	return fmt.Sprintf("latitude %v outside ±%v", e.Lat, MaxLatitude)
}

func (e *LatitudeError) Unwrap() error { return ErrOutOfRangeLatitude }

// ZoomError reports a zoom level above MaxZoom.
type ZoomError struct {
	Zoom int
}

func (e *ZoomError) Error() string {
	return fmt.Sprintf("zoom %d out of range [0, %d]", e.Zoom, MaxZoom)
}

func (e *ZoomError) Unwrap() error { return ErrZoomOutOfRange }
