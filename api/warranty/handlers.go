package warranty

import (
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/anritvox/backend-anritvox/handling"
	"github.com/anritvox/backend-anritvox/lib"
	"github.com/anritvox/backend-anritvox/structs"
)

// ValidateSerial handles GET /warranty/validate/{code}. A known,
// unclaimed code comes back with the product context needed to pre-fill
// the registration form.
func (wrm *WarrantyRoutesManager) ValidateSerial(w http.ResponseWriter, r *http.Request) {
	details, err := wrm.warrantyService.ValidateSerial(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		handling.WriteError(w, err)
		return
	}

	gecho.Success(w,
		gecho.WithData(details),
		gecho.Send(),
	)
}

// Register handles POST /warranty/register.
func (wrm *WarrantyRoutesManager) Register(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.WarrantyRegisterRequest](r)
	if err != nil {
		wrm.logger.Warn("Failed to extract and validate request body", gecho.Field("error", err))
		handling.WriteValidationError(w, err)
		return
	}

	result, err := wrm.warrantyService.Register(r.Context(), body)
	if err != nil {
		handling.WriteError(w, err)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.warranty.registered"),
		gecho.WithData(result),
		gecho.Send(),
	)
}

func (wrm *WarrantyRoutesManager) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	registrations, err := wrm.warrantyService.ListAll(r.Context())
	if err != nil {
		handling.WriteError(w, err)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"registrations": registrations,
			"count":         len(registrations),
		}),
		gecho.Send(),
	)
}

func (wrm *WarrantyRoutesManager) SetStatus(w http.ResponseWriter, r *http.Request) {
	registrationID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.warranty.invalidRegistrationId"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.WarrantyStatusRequest](r)
	if err != nil {
		wrm.logger.Warn("Failed to extract and validate request body", gecho.Field("error", err))
		handling.WriteValidationError(w, err)
		return
	}

	result, err := wrm.warrantyService.SetStatus(r.Context(), registrationID, body.Status)
	if err != nil {
		handling.WriteError(w, err)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.warranty.statusUpdated"),
		gecho.WithData(result),
		gecho.Send(),
	)
}

func (wrm *WarrantyRoutesManager) DeleteRegistration(w http.ResponseWriter, r *http.Request) {
	registrationID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.warranty.invalidRegistrationId"), gecho.Send())
		return
	}

	if err := wrm.warrantyService.Delete(r.Context(), registrationID); err != nil {
		handling.WriteError(w, err)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.warranty.deleted"),
		gecho.Send(),
	)
}
