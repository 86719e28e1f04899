// Package topic matches routing keys against topic-exchange binding patterns.
//
// Keys and patterns are words separated by ".". In a pattern "*" stands for exactly
// one word and "#" for zero or more words.
package topic

import "strings"

const (
	separator = "."
	anyWord   = "*"
	anyWords  = "#"
)

// Match reports whether key matches the binding pattern.
func Match(pattern, key string) bool {
	return match(strings.Split(pattern, separator), strings.Split(key, separator))
}

func match(pattern, key []string) bool {
	for len(pattern) > 0 {
		switch pattern[0] {
		case anyWords:
			rest := pattern[1:]
			// Collapse runs of "#".
			for len(rest) > 0 && rest[0] == anyWords {
				rest = rest[1:]
			}
			if len(rest) == 0 {
				return true
			}
			for i := 0; i <= len(key); i++ {
				if match(rest, key[i:]) {
					return true
				}
			}
			return false
		case anyWord:
			if len(key) == 0 {
				return false
			}
		default:
			if len(key) == 0 || key[0] != pattern[0] {
				return false
			}
		}
		pattern, key = pattern[1:], key[1:]
	}
	return len(key) == 0
}

// Join builds a pattern or key from words.
func Join(words ...string) string {
	return strings.Join(words, separator)
}
