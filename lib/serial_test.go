package lib

import (
	"reflect"
	"testing"
)

func TestNormalizeSerial(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "abc123", "ABC123"},
		{"whitespace padded", "  sn0001 \t", "SN0001"},
		{"already canonical", "ABC123", "ABC123"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeSerial(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeSerial(%q) = %q, want %q", tt.in, got, tt.want)
			}
			// Normalization must be idempotent.
			if again := NormalizeSerial(got); again != got {
				t.Errorf("NormalizeSerial not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestValidSerial(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"ABC123", true},
		{"0", true},
		{"XYZ-1", false},
		{"SN 001", false},
		{"", false},
		{"sn001", false}, // not normalized
	}

	for _, tt := range tests {
		if got := ValidSerial(tt.code); got != tt.want {
			t.Errorf("ValidSerial(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestNormalizeSerialBatch(t *testing.T) {
	t.Run("case-insensitive duplicate", func(t *testing.T) {
		_, invalid, duplicates := NormalizeSerialBatch([]string{"ABC123", "abc123"})
		if len(invalid) != 0 {
			t.Fatalf("unexpected invalid codes: %v", invalid)
		}
		if !reflect.DeepEqual(duplicates, []string{"ABC123"}) {
			t.Errorf("duplicates = %v, want [ABC123]", duplicates)
		}
	})

	t.Run("invalid format enumerated", func(t *testing.T) {
		_, invalid, _ := NormalizeSerialBatch([]string{"XYZ-1", "OK1", "BAD CODE"})
		if !reflect.DeepEqual(invalid, []string{"XYZ-1", "BAD CODE"}) {
			t.Errorf("invalid = %v, want [XYZ-1, BAD CODE]", invalid)
		}
	})

	t.Run("triplicate listed once", func(t *testing.T) {
		_, _, duplicates := NormalizeSerialBatch([]string{"A1", "a1", " A1 "})
		if !reflect.DeepEqual(duplicates, []string{"A1"}) {
			t.Errorf("duplicates = %v, want [A1]", duplicates)
		}
	})

	t.Run("clean batch", func(t *testing.T) {
		normalized, invalid, duplicates := NormalizeSerialBatch([]string{"sn1", "SN2"})
		if !reflect.DeepEqual(normalized, []string{"SN1", "SN2"}) {
			t.Errorf("normalized = %v", normalized)
		}
		if invalid != nil || duplicates != nil {
			t.Errorf("expected no failures, got invalid=%v duplicates=%v", invalid, duplicates)
		}
	})
}

func TestSplitSerialCSV(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"commas", "A1,B2,C3", []string{"A1", "B2", "C3"}},
		{"newlines", "A1\nB2\r\nC3", []string{"A1", "B2", "C3"}},
		{"mixed with blanks", "A1, ,B2;\n\nC3", []string{"A1", "B2", "C3"}},
		{"empty", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSerialCSV(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitSerialCSV(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
