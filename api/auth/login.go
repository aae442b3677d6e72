package auth

import (
	"net/http"

	"github.com/MonkyMars/gecho"

	"github.com/anritvox/backend-anritvox/handling"
	"github.com/anritvox/backend-anritvox/lib"
	"github.com/anritvox/backend-anritvox/structs"
)

func (ar *AuthRoutesManager) HandleLogin(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.AuthRequest](r)
	if err != nil {
		ar.logger.Warn("Failed to extract and validate request body", gecho.Field("error", err))
		handling.WriteValidationError(w, err)
		return
	}

	response, err := ar.authService.Login(r.Context(), body)
	if err != nil {
		handling.WriteError(w, err)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.auth.loggedIn"),
		gecho.WithData(response),
		gecho.Send(),
	)
}
