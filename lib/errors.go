package lib

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorKind classifies a domain failure so handlers can pick a status code
// without string matching.
type ErrorKind string

const (
	KindNotFound          ErrorKind = "not_found"
	KindInvalidFormat     ErrorKind = "invalid_format"
	KindDuplicateInBatch  ErrorKind = "duplicate_in_batch"
	KindConflict          ErrorKind = "conflict"
	KindAlreadyRegistered ErrorKind = "already_registered"
	KindInvalidStatus     ErrorKind = "invalid_status"
	KindServer            ErrorKind = "server_error"
)

// DomainError is a classified failure with an optional payload of the
// serial codes that caused it, so callers get the full offending set in
// one round trip instead of a bare boolean.
type DomainError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Codes   []string  `json:"codes,omitempty"`
}

func (e *DomainError) Error() string {
	if len(e.Codes) > 0 {
		return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Codes, ", "))
	}
	return e.Message
}

func NotFound(msg string) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: msg}
}

func InvalidFormat(msg string, codes []string) *DomainError {
	return &DomainError{Kind: KindInvalidFormat, Message: msg, Codes: codes}
}

func DuplicateInBatch(msg string, codes []string) *DomainError {
	return &DomainError{Kind: KindDuplicateInBatch, Message: msg, Codes: codes}
}

func Conflict(msg string, codes ...string) *DomainError {
	return &DomainError{Kind: KindConflict, Message: msg, Codes: codes}
}

// AlreadyRegistered marks a serial whose code exists but is already
// claimed. Distinct from Conflict so the public validate endpoint can
// answer it as a bad request rather than a 409.
func AlreadyRegistered(msg string, codes ...string) *DomainError {
	return &DomainError{Kind: KindAlreadyRegistered, Message: msg, Codes: codes}
}

func InvalidStatus(msg string) *DomainError {
	return &DomainError{Kind: KindInvalidStatus, Message: msg}
}

// AsDomain unwraps err into a DomainError if one is in the chain.
func AsDomain(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

func IsKind(err error, kind ErrorKind) bool {
	if de, ok := AsDomain(err); ok {
		return de.Kind == kind
	}
	return false
}

// Auth errors
var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("expired token")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// MapDBError translates driver-level failures into domain errors. The
// unique index on serial_numbers.serial surfaces as SQLSTATE 23505 when two
// concurrent inserts race past the application pre-check; the loser must
// see a Conflict, not a ServerError.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return NotFound("record not found")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return Conflict("already exists")
		case "23503": // foreign_key_violation
			return Conflict("still referenced by other records")
		}
	}
	return err
}

// IsUniqueViolation reports whether err is a raw unique-index violation,
// before or after MapDBError.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return IsKind(err, KindConflict)
}
