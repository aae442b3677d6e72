package lib

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/anritvox/backend-anritvox/structs"
)

const testSecret = "unit-test-signing-secret"

func testClaims(exp time.Time) *structs.AuthClaims {
	now := time.Now().Truncate(time.Second)
	return &structs.AuthClaims{
		Sub:   uuid.New(),
		Email: "admin@anritvox.com",
		Role:  "admin",
		Iat:   now,
		Exp:   exp.Truncate(time.Second),
		Jti:   uuid.New(),
	}
}

func TestSignAndParseToken(t *testing.T) {
	claims := testClaims(time.Now().Add(time.Hour))

	token, err := SignToken(claims, testSecret)
	if err != nil {
		t.Fatalf("SignToken failed: %v", err)
	}

	parsed, err := ParseToken(token, testSecret)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}

	if parsed.Sub != claims.Sub {
		t.Errorf("sub = %s, want %s", parsed.Sub, claims.Sub)
	}
	if parsed.Email != claims.Email {
		t.Errorf("email = %s, want %s", parsed.Email, claims.Email)
	}
	if parsed.Role != claims.Role {
		t.Errorf("role = %s, want %s", parsed.Role, claims.Role)
	}
	if parsed.Jti != claims.Jti {
		t.Errorf("jti = %s, want %s", parsed.Jti, claims.Jti)
	}
	if !parsed.Exp.Equal(claims.Exp) {
		t.Errorf("exp = %s, want %s", parsed.Exp, claims.Exp)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := SignToken(testClaims(time.Now().Add(time.Hour)), testSecret)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseToken(token, "a different secret"); err == nil {
		t.Error("token signed with another secret should not parse")
	}
}

func TestParseTokenRejectsMalformed(t *testing.T) {
	if _, err := ParseToken("not.a.token", testSecret); err == nil {
		t.Error("malformed token should not parse")
	}
}

func TestExtractBearerToken(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/admin/products", nil)
	r.Header.Set("Authorization", "Bearer abc123")

	token, err := ExtractBearerToken(r)
	if err != nil {
		t.Fatalf("ExtractBearerToken failed: %v", err)
	}
	if token != "abc123" {
		t.Errorf("token = %q, want %q", token, "abc123")
	}

	for _, header := range []string{"", "abc123", "Basic abc123"} {
		r := httptest.NewRequest("GET", "/", nil)
		if header != "" {
			r.Header.Set("Authorization", header)
		}
		if _, err := ExtractBearerToken(r); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("header %q: err = %v, want ErrInvalidToken", header, err)
		}
	}
}

func TestExtractClaimsExpired(t *testing.T) {
	token, err := SignToken(testClaims(time.Now().Add(-time.Minute)), testSecret)
	if err != nil {
		t.Fatal(err)
	}

	r := httptest.NewRequest("GET", "/api/admin/products", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	if _, err := ExtractClaims(r, testSecret); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("err = %v, want ErrExpiredToken", err)
	}
}
