package middleware

import (
	"net/http/httptest"
	"testing"
)

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/products", "/api/products"},
		{"/api/products/", "/api/products"},
		{"/api/products/8e9a7f2c-1111-2222-3333-444455556666", "/api/products/:id"},
		{"/api/admin/products/8e9a7f2c-1111-2222-3333-444455556666", "/api/admin/products/:id"},
		{"/api/admin/warranty/8e9a7f2c-1111-2222-3333-444455556666", "/api/admin/warranty/:id"},
		{"/api/admin/contact/8e9a7f2c-1111-2222-3333-444455556666", "/api/admin/contact/:id"},
		{"/api/serials/check/SN001ABC", "/api/serials/check/:id"},
		{"/api/warranty/validate/SN001ABC", "/api/warranty/validate/:id"},
		{"/api/health/server", "/api/health/server"},
	}

	for _, tt := range tests {
		if got := normalizeEndpoint(tt.path); got != tt.want {
			t.Errorf("normalizeEndpoint(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestGetClientIP(t *testing.T) {
	mw := &Middleware{}

	r := httptest.NewRequest("GET", "/api/products", nil)
	r.RemoteAddr = "198.51.100.7:51234"
	if got := mw.getClientIP(r); got != "198.51.100.7" {
		t.Errorf("RemoteAddr: got %q", got)
	}

	r.Header.Set("X-Real-IP", "203.0.113.9")
	if got := mw.getClientIP(r); got != "203.0.113.9" {
		t.Errorf("X-Real-IP: got %q", got)
	}

	// Forwarded-for wins over everything and only the first hop counts.
	r.Header.Set("X-Forwarded-For", "192.0.2.44, 203.0.113.9")
	if got := mw.getClientIP(r); got != "192.0.2.44" {
		t.Errorf("X-Forwarded-For: got %q", got)
	}
}
