package catalog

import (
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/anritvox/backend-anritvox/handling"
	"github.com/anritvox/backend-anritvox/lib"
	"github.com/anritvox/backend-anritvox/structs"
)

func (crm *CatalogRoutesManager) ListSubcategories(w http.ResponseWriter, r *http.Request) {
	var categoryID *uuid.UUID
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			gecho.BadRequest(w, gecho.WithMessage("Invalid category id"), gecho.Send())
			return
		}
		categoryID = &parsed
	}

	subcategories, err := crm.catalogService.ListSubcategories(r.Context(), categoryID)
	if err != nil {
		handling.WriteError(w, err)
		return
	}

	gecho.Success(w,
		gecho.WithData(subcategories),
		gecho.Send(),
	)
}

func (crm *CatalogRoutesManager) GetSubcategory(w http.ResponseWriter, r *http.Request) {
	subcategoryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid subcategory id"), gecho.Send())
		return
	}

	subcategory, err := crm.catalogService.GetSubcategory(r.Context(), subcategoryID)
	if err != nil {
		handling.WriteError(w, err)
		return
	}

	gecho.Success(w,
		gecho.WithData(subcategory),
		gecho.Send(),
	)
}

func (crm *CatalogRoutesManager) CreateSubcategory(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.SubcategoryRequest](r)
	if err != nil {
		crm.logger.Warn("Failed to extract and validate request body", gecho.Field("error", err))
		handling.WriteValidationError(w, err)
		return
	}

	subcategory, err := crm.catalogService.CreateSubcategory(r.Context(), body)
	if err != nil {
		handling.WriteError(w, err)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.catalog.subcategoryCreated"),
		gecho.WithData(subcategory),
		gecho.Send(),
	)
}

func (crm *CatalogRoutesManager) UpdateSubcategory(w http.ResponseWriter, r *http.Request) {
	subcategoryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid subcategory id"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.SubcategoryRequest](r)
	if err != nil {
		crm.logger.Warn("Failed to extract and validate request body", gecho.Field("error", err))
		handling.WriteValidationError(w, err)
		return
	}

	subcategory, err := crm.catalogService.UpdateSubcategory(r.Context(), subcategoryID, body)
	if err != nil {
		handling.WriteError(w, err)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.catalog.subcategoryUpdated"),
		gecho.WithData(subcategory),
		gecho.Send(),
	)
}

func (crm *CatalogRoutesManager) DeleteSubcategory(w http.ResponseWriter, r *http.Request) {
	subcategoryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid subcategory id"), gecho.Send())
		return
	}

	if err := crm.catalogService.DeleteSubcategory(r.Context(), subcategoryID); err != nil {
		handling.WriteError(w, err)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.catalog.subcategoryDeleted"),
		gecho.Send(),
	)
}
