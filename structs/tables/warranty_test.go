package tables

import "testing"

func TestIsValidWarrantyStatus(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{WarrantyStatusAccepted, true},
		{WarrantyStatusRejected, true},
		{WarrantyStatusPending, false}, // admins cannot move a registration back to pending
		{"ACCEPTED", false},
		{"approved", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidWarrantyStatus(tt.status); got != tt.want {
			t.Errorf("IsValidWarrantyStatus(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}
