// Package handling maps service errors onto HTTP responses so handlers
// stay free of status-code bookkeeping.
package handling

import (
	"errors"
	"net/http"

	"github.com/MonkyMars/gecho"

	"github.com/anritvox/backend-anritvox/lib"
)

// WriteError writes the HTTP response for a service-layer error.
// Domain errors carry their own kind and offending codes; anything
// else is treated as an internal failure with a generic message.
func WriteError(w http.ResponseWriter, err error) {
	var domainErr *lib.DomainError
	if errors.As(err, &domainErr) {
		data := map[string]any{}
		if len(domainErr.Codes) > 0 {
			data["codes"] = domainErr.Codes
		}

		switch domainErr.Kind {
		case lib.KindNotFound:
			gecho.NotFound(w, gecho.WithMessage(domainErr.Message), gecho.WithData(data), gecho.Send())
		case lib.KindInvalidFormat, lib.KindInvalidStatus, lib.KindAlreadyRegistered:
			gecho.BadRequest(w, gecho.WithMessage(domainErr.Message), gecho.WithData(data), gecho.Send())
		case lib.KindDuplicateInBatch, lib.KindConflict:
			gecho.Conflict(w, gecho.WithMessage(domainErr.Message), gecho.WithData(data), gecho.Send())
		default:
			gecho.InternalServerError(w, gecho.WithMessage(domainErr.Message), gecho.Send())
		}
		return
	}

	switch {
	case errors.Is(err, lib.ErrInvalidCredentials):
		gecho.Unauthorized(w, gecho.WithMessage("error.auth.invalidCredentials"), gecho.Send())
	case errors.Is(err, lib.ErrInvalidToken), errors.Is(err, lib.ErrExpiredToken):
		gecho.Unauthorized(w, gecho.WithMessage("error.auth.invalidToken"), gecho.Send())
	default:
		gecho.InternalServerError(w, gecho.WithMessage("error.server.internal"), gecho.Send())
	}
}

// WriteValidationError writes a 400 with per-field validation details.
func WriteValidationError(w http.ResponseWriter, err error) {
	var validationErr *lib.ValidationError
	if errors.As(err, &validationErr) {
		gecho.BadRequest(w,
			gecho.WithMessage("error.request.validationFailed"),
			gecho.WithData(validationErr.Errors),
			gecho.Send(),
		)
		return
	}

	gecho.BadRequest(w, gecho.WithMessage("error.request.malformedBody"), gecho.Send())
}
