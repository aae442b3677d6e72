package lib

import (
	"regexp"
	"strings"
)

// Serial codes are trimmed and uppercased before any comparison or storage;
// the canonical form must be strictly alphanumeric.
var serialPattern = regexp.MustCompile(`^[A-Z0-9]+$`)

// NormalizeSerial returns the canonical form of a raw serial code.
// Normalization is idempotent: normalizing an already-canonical code is a
// no-op.
func NormalizeSerial(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// ValidSerial reports whether a normalized code matches the canonical
// pattern. Callers must normalize first.
func ValidSerial(code string) bool {
	return serialPattern.MatchString(code)
}

// NormalizeSerialBatch normalizes every raw code and partitions the batch
// into its failure sets. invalid holds codes that fail the format check;
// duplicates holds codes that appear more than once after normalization
// (each listed once). A batch is usable only when both sets are empty.
func NormalizeSerialBatch(raw []string) (normalized, invalid, duplicates []string) {
	normalized = make([]string, 0, len(raw))
	seen := make(map[string]int, len(raw))
	dupSeen := make(map[string]bool)

	for _, r := range raw {
		code := NormalizeSerial(r)
		normalized = append(normalized, code)
		if !ValidSerial(code) {
			invalid = append(invalid, code)
		}
		seen[code]++
		if seen[code] == 2 && !dupSeen[code] {
			duplicates = append(duplicates, code)
			dupSeen[code] = true
		}
	}
	return normalized, invalid, duplicates
}

// SplitSerialCSV splits free-form CSV/line-separated serial input into raw
// codes, dropping empty entries. Used by the bulk import endpoint.
func SplitSerialCSV(data string) []string {
	parts := strings.FieldsFunc(data, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ',' || r == ';'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
