package handling

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anritvox/backend-anritvox/lib"
)

func TestWriteErrorStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", lib.NotFound("serial not found"), http.StatusNotFound},
		{"invalid format", lib.InvalidFormat("bad codes", []string{"X-1"}), http.StatusBadRequest},
		{"invalid status", lib.InvalidStatus("status must be accepted or rejected"), http.StatusBadRequest},
		// A claimed serial is a client error on the public validate
		// endpoint, not a conflict.
		{"already registered", lib.AlreadyRegistered("serial already registered", "SN1"), http.StatusBadRequest},
		{"conflict", lib.Conflict("serials already exist", "SN1"), http.StatusConflict},
		{"duplicate in batch", lib.DuplicateInBatch("duplicate serials", []string{"SN1"}), http.StatusConflict},
		{"invalid credentials", lib.ErrInvalidCredentials, http.StatusUnauthorized},
		{"expired token", lib.ErrExpiredToken, http.StatusUnauthorized},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.err)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
