package config

import (
	"testing"
	"time"
)

func TestGetEnvAsTimeDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"duration string", "90s", 90 * time.Second},
		{"compound duration", "1h30m", 90 * time.Minute},
		{"bare int is seconds", "45", 45 * time.Second},
		{"garbage falls back", "soon", 10 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)
			if got := getEnvAsTimeDuration("TEST_DURATION", 10*time.Second); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestGetEnvAsTimeDurationUnset(t *testing.T) {
	if got := getEnvAsTimeDuration("TEST_DURATION_UNSET", 7*time.Second); got != 7*time.Second {
		t.Errorf("got %s, want default", got)
	}
}

func TestGetEnvAsSlice(t *testing.T) {
	t.Setenv("TEST_SLICE", "a, b ,, c")
	got := getEnvAsSlice("TEST_SLICE", nil)
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}
