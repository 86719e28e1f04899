package domain

import (
	"fmt"
	"strings"
)

// RoutingSeparator separates the words of a routing key. It doubles as the quadtree
// separator inside the key, which is safe because path digits are single characters 0-3.
const RoutingSeparator = "."

// Datum is the metadata of a message published on the broker.
type Datum struct {
	Point          GeoPoint `json:"point"`
	Zoom           int      `json:"zoom"`            // zoom level the message is published at
	MessageType    string   `json:"message_type"`    // e.g. DENM
	MessageVersion string   `json:"message_version"` // e.g. 1_2_1 for version 1.2.1
	Provider       string   `json:"provider"`        // organisation publishing the message
	Subtype        string   `json:"subtype"`         // e.g. the DENM cause code
}

// RoutingKey is a parsed `type.version.provider.subtype.q.q.q...` key.
type RoutingKey struct {
	MessageType    string `json:"message_type"`
	MessageVersion string `json:"message_version"`
	Provider       string `json:"provider"`
	Subtype        string `json:"subtype"`
	Tile           Tile   `json:"tile"`
}

// ValidateRoutingToken checks a header word: it must be non-empty and must not contain
// the word separator or a topic wildcard.
func ValidateRoutingToken(name, token string) error {
	if token == "" {
		return fmt.Errorf("%w: %s is empty", ErrInvalidRoutingToken, name)
	}
	if strings.ContainsAny(token, ".*#") {
		return fmt.Errorf("%w: %s %q contains '.', '*' or '#'", ErrInvalidRoutingToken, name, token)
	}
	return nil
}

// Header returns the four header words joined by the routing separator.
func (k RoutingKey) Header() (string, error) {
	fields := [...]struct{ name, value string }{
		{"message type", k.MessageType},
		{"message version", k.MessageVersion},
		{"provider", k.Provider},
		{"subtype", k.Subtype},
	}
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		if err := ValidateRoutingToken(f.name, f.value); err != nil {
			return "", err
		}
		words = append(words, f.value)
	}
	return strings.Join(words, RoutingSeparator), nil
}

// Format renders the full key. No separator is added between the subtype and the
// path, because the path already starts with one.
func (k RoutingKey) Format() (string, error) {
	header, err := k.Header()
	if err != nil {
		return "", err
	}
	path, err := k.Tile.Path(RoutingSeparator)
	if err != nil {
		return "", err
	}
	return header + path, nil
}

// ParseRoutingKey splits a key produced by RoutingKey.Format and decodes its tile.
func ParseRoutingKey(key string) (RoutingKey, error) {
	words := strings.Split(key, RoutingSeparator)
	if len(words) < 4 {
		return RoutingKey{}, fmt.Errorf("%w %q: need at least 4 words, got %d", ErrInvalidRoutingKey, key, len(words))
	}
	k := RoutingKey{
		MessageType:    words[0],
		MessageVersion: words[1],
		Provider:       words[2],
		Subtype:        words[3],
	}
	if _, err := k.Header(); err != nil {
		return RoutingKey{}, fmt.Errorf("%w %q: %w", ErrInvalidRoutingKey, key, err)
	}

	digits := words[4:]
	for i, w := range digits {
		if len(w) != 1 {
			return RoutingKey{}, fmt.Errorf("%w %q: path word %d is %q, want one digit", ErrInvalidRoutingKey, key, i, w)
		}
	}
	tile, err := ParseQuadtreePath(strings.Join(digits, ""), "")
	if err != nil {
		return RoutingKey{}, fmt.Errorf("%w %q: %w", ErrInvalidRoutingKey, key, err)
	}
	k.Tile = tile
	return k, nil
}
