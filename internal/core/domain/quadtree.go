package domain

import (
	"fmt"
	"strings"
)

const (
	// MaxZoom is the deepest supported zoom level. A path of MaxZoom digits still
	// fits tile indices into 32 bits.
	MaxZoom = 30

	// MaxLatitude is the northern (and, negated, southern) edge of the square Mercator map.
	MaxLatitude = 85.05112877980659
)

// NumTiles returns the number of tiles per axis at zoom, 0 if zoom is out of range.
func NumTiles(zoom int) int {
	if zoom < 0 || zoom > MaxZoom {
		return 0
	}
	return 1 << zoom
}

// Valid checks that the zoom is supported and the indices lie on its grid.
func (t Tile) Valid() error {
	if t.Zoom < 0 || t.Zoom > MaxZoom {
		return &ZoomError{Zoom: t.Zoom}
	}
	n := NumTiles(t.Zoom)
	if t.X < 0 || t.X >= n || t.Y < 0 || t.Y >= n {
		return fmt.Errorf("tile %s outside the %dx%d grid", t, n, n)
	}
	return nil
}

// ValidateSeparator rejects separators that would be confused with path digits.
func ValidateSeparator(sep string) error {
	if strings.ContainsAny(sep, "0123") {
		return fmt.Errorf("%w: %q", ErrInvalidSeparator, sep)
	}
	return nil
}

// Quadkey returns the quadtree path of t without separators.
// Index bits above the zoom level are ignored.
func (t Tile) Quadkey() string {
	return t.encode("")
}

// Path returns the quadtree path of t with sep written before every digit,
// so the result is Zoom*(len(sep)+1) bytes long.
func (t Tile) Path(sep string) (string, error) {
	if err := ValidateSeparator(sep); err != nil {
		return "", err
	}
	if err := t.Valid(); err != nil {
		return "", err
	}
	return t.encode(sep), nil
}

func (t Tile) encode(sep string) string {
	if t.Zoom <= 0 {
		return ""
	}
	// Digits count rows from the north edge.
	flipped := (1<<t.Zoom - 1) - t.Y

	var b strings.Builder
	b.Grow(t.Zoom * (len(sep) + 1))
	for i := t.Zoom; i > 0; i-- {
		mask := 1 << (i - 1)
		digit := byte('0')
		if t.X&mask != 0 {
			digit++
		}
		if flipped&mask != 0 {
			digit += 2
		}
		b.WriteString(sep)
		b.WriteByte(digit)
	}
	return b.String()
}

// ParseQuadtreePath decodes a path produced by Tile.Path with the same separator.
// The zoom level is the number of digits left after removing every occurrence of sep;
// an empty path is the single world tile.
func ParseQuadtreePath(path, sep string) (Tile, error) {
	if err := ValidateSeparator(sep); err != nil {
		return Tile{}, err
	}
	digits := path
	if sep != "" {
		digits = strings.ReplaceAll(path, sep, "")
	}
	for i := 0; i < len(digits); i++ {
		if c := digits[i]; c < '0' || c > '3' {
			return Tile{}, &InvalidQuadtreePathError{Path: path, Index: i, Char: c}
		}
	}
	if len(digits) > MaxZoom {
		return Tile{}, &InvalidQuadtreePathError{Path: path, Index: -1}
	}

	var x, y int
	for i := 0; i < len(digits); i++ {
		x <<= 1
		y <<= 1
		switch digits[i] {
		case '0':
			y++
		case '1':
			x++
			y++
		case '2':
		case '3':
			x++
		}
	}
	return Tile{X: x, Y: y, Zoom: len(digits)}, nil
}

// Parent returns the tile one zoom level up that contains t.
// The world tile has no parent and is returned unchanged with ok == false.
func (t Tile) Parent() (parent Tile, ok bool) {
	if t.Zoom <= 0 {
		return t, false
	}
	return Tile{X: t.X >> 1, Y: t.Y >> 1, Zoom: t.Zoom - 1}, true
}

// Children returns the four tiles one zoom level down, indexed by the digit
// that extends t's quadkey to theirs.
func (t Tile) Children() [4]Tile {
	x, y, z := t.X<<1, t.Y<<1, t.Zoom+1
	return [4]Tile{
		{X: x, Y: y + 1, Zoom: z},
		{X: x + 1, Y: y + 1, Zoom: z},
		{X: x, Y: y, Zoom: z},
		{X: x + 1, Y: y, Zoom: z},
	}
}

// Contains reports whether other is t or lies inside t at a deeper zoom level,
// i.e. whether t's quadkey is a prefix of other's.
func (t Tile) Contains(other Tile) bool {
	dz := other.Zoom - t.Zoom
	if dz < 0 {
		return false
	}
	return other.X>>dz == t.X && other.Y>>dz == t.Y
}
