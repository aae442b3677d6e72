package serials

import (
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/anritvox/backend-anritvox/handling"
	"github.com/anritvox/backend-anritvox/lib"
	"github.com/anritvox/backend-anritvox/structs"
)

// Bulk uploads are capped so a pasted CSV cannot lock the serial table
// for the duration of a huge insert.
const maxBulkSerials = 1000

// CheckAvailability handles GET /serials/check/{code}. Public endpoint
// used by forms to probe whether a code can still be minted.
func (srm *SerialRoutesManager) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	availability, err := srm.serialService.CheckAvailability(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		handling.WriteError(w, err)
		return
	}

	gecho.Success(w,
		gecho.WithData(availability),
		gecho.Send(),
	)
}

func (srm *SerialRoutesManager) ListProductSerials(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.products.invalidProductId"), gecho.Send())
		return
	}

	serials, err := srm.serialService.ListProductSerials(r.Context(), productID)
	if err != nil {
		handling.WriteError(w, err)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"serials": serials,
			"count":   len(serials),
		}),
		gecho.Send(),
	)
}

func (srm *SerialRoutesManager) GetStats(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.products.invalidProductId"), gecho.Send())
		return
	}

	stats, err := srm.serialService.Stats(r.Context(), productID)
	if err != nil {
		handling.WriteError(w, err)
		return
	}

	gecho.Success(w,
		gecho.WithData(stats),
		gecho.Send(),
	)
}

// AddSerials handles POST /products/{id}/serials with an explicit list.
func (srm *SerialRoutesManager) AddSerials(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.products.invalidProductId"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.AddSerialsRequest](r)
	if err != nil {
		srm.logger.Warn("Failed to extract and validate request body", gecho.Field("error", err))
		handling.WriteValidationError(w, err)
		return
	}

	result, err := srm.serialService.AddSerials(r.Context(), productID, body.Serials)
	if err != nil {
		handling.WriteError(w, err)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.serials.added"),
		gecho.WithData(result),
		gecho.Send(),
	)
}

// AddSerialsBulk handles POST /products/{id}/serials/bulk, accepting
// either a serial list or a pasted CSV blob.
func (srm *SerialRoutesManager) AddSerialsBulk(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.products.invalidProductId"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.BulkSerialsRequest](r)
	if err != nil {
		srm.logger.Warn("Failed to extract and validate request body", gecho.Field("error", err))
		handling.WriteValidationError(w, err)
		return
	}

	codes := body.Serials
	if len(codes) == 0 && body.CSVData != "" {
		codes = lib.SplitSerialCSV(body.CSVData)
	}
	if len(codes) == 0 {
		gecho.BadRequest(w, gecho.WithMessage("error.serials.emptyBatch"), gecho.Send())
		return
	}
	if len(codes) > maxBulkSerials {
		gecho.BadRequest(w, gecho.WithMessage("error.serials.batchTooLarge"), gecho.Send())
		return
	}

	result, err := srm.serialService.AddSerials(r.Context(), productID, codes)
	if err != nil {
		handling.WriteError(w, err)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.serials.added"),
		gecho.WithData(result),
		gecho.Send(),
	)
}

func (srm *SerialRoutesManager) UpdateSerial(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.products.invalidProductId"), gecho.Send())
		return
	}
	serialID, err := uuid.Parse(chi.URLParam(r, "serialId"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.serials.invalidSerialId"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.UpdateSerialRequest](r)
	if err != nil {
		srm.logger.Warn("Failed to extract and validate request body", gecho.Field("error", err))
		handling.WriteValidationError(w, err)
		return
	}

	result, err := srm.serialService.UpdateSerialCode(r.Context(), productID, serialID, body.Serial)
	if err != nil {
		handling.WriteError(w, err)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.serials.updated"),
		gecho.WithData(result),
		gecho.Send(),
	)
}

func (srm *SerialRoutesManager) DeleteSerial(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.products.invalidProductId"), gecho.Send())
		return
	}
	serialID, err := uuid.Parse(chi.URLParam(r, "serialId"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.serials.invalidSerialId"), gecho.Send())
		return
	}

	deletedCode, err := srm.serialService.DeleteSerial(r.Context(), productID, serialID)
	if err != nil {
		handling.WriteError(w, err)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.serials.deleted"),
		gecho.WithData(map[string]any{"deleted_code": deletedCode}),
		gecho.Send(),
	)
}
