package lib

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestDomainErrorMessage(t *testing.T) {
	err := Conflict("serials already exist", "SN1", "SN2")
	want := "serials already exist: SN1, SN2"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	plain := NotFound("product not found")
	if plain.Error() != "product not found" {
		t.Errorf("Error() = %q", plain.Error())
	}
}

func TestIsKindThroughWrapping(t *testing.T) {
	base := DuplicateInBatch("duplicate serials in request", []string{"A1"})
	wrapped := fmt.Errorf("add serials: %w", base)

	if !IsKind(wrapped, KindDuplicateInBatch) {
		t.Error("IsKind should see through fmt.Errorf wrapping")
	}
	if IsKind(wrapped, KindConflict) {
		t.Error("IsKind matched the wrong kind")
	}

	de, ok := AsDomain(wrapped)
	if !ok {
		t.Fatal("AsDomain failed on wrapped error")
	}
	if len(de.Codes) != 1 || de.Codes[0] != "A1" {
		t.Errorf("Codes = %v, want [A1]", de.Codes)
	}
}

func TestMapDBError(t *testing.T) {
	t.Run("no rows", func(t *testing.T) {
		mapped := MapDBError(sql.ErrNoRows)
		if !IsKind(mapped, KindNotFound) {
			t.Errorf("sql.ErrNoRows should map to NotFound, got %v", mapped)
		}
	})

	t.Run("unique violation", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23505"}
		mapped := MapDBError(fmt.Errorf("insert: %w", pgErr))
		if !IsKind(mapped, KindConflict) {
			t.Errorf("23505 should map to Conflict, got %v", mapped)
		}
	})

	t.Run("unrelated error passes through", func(t *testing.T) {
		orig := errors.New("connection refused")
		if mapped := MapDBError(orig); mapped != orig {
			t.Errorf("unrelated error should pass through, got %v", mapped)
		}
	})

	t.Run("nil", func(t *testing.T) {
		if MapDBError(nil) != nil {
			t.Error("MapDBError(nil) should be nil")
		}
	})
}

func TestIsUniqueViolation(t *testing.T) {
	if !IsUniqueViolation(&pgconn.PgError{Code: "23505"}) {
		t.Error("raw 23505 should be a unique violation")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Error("23503 is not a unique violation")
	}
	if !IsUniqueViolation(Conflict("already exists")) {
		t.Error("mapped Conflict should count as a unique violation")
	}
}
