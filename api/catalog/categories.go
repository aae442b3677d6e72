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

func (crm *CatalogRoutesManager) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := crm.catalogService.ListCategories(r.Context())
	if err != nil {
		handling.WriteError(w, err)
		return
	}

	gecho.Success(w,
		gecho.WithData(categories),
		gecho.Send(),
	)
}

func (crm *CatalogRoutesManager) GetCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid category id"), gecho.Send())
		return
	}

	category, err := crm.catalogService.GetCategory(r.Context(), categoryID)
	if err != nil {
		handling.WriteError(w, err)
		return
	}

	gecho.Success(w,
		gecho.WithData(category),
		gecho.Send(),
	)
}

func (crm *CatalogRoutesManager) CreateCategory(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CategoryRequest](r)
	if err != nil {
		crm.logger.Warn("Failed to extract and validate request body", gecho.Field("error", err))
		handling.WriteValidationError(w, err)
		return
	}

	category, err := crm.catalogService.CreateCategory(r.Context(), body)
	if err != nil {
		handling.WriteError(w, err)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.catalog.categoryCreated"),
		gecho.WithData(category),
		gecho.Send(),
	)
}

func (crm *CatalogRoutesManager) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid category id"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.CategoryRequest](r)
	if err != nil {
		crm.logger.Warn("Failed to extract and validate request body", gecho.Field("error", err))
		handling.WriteValidationError(w, err)
		return
	}

	category, err := crm.catalogService.UpdateCategory(r.Context(), categoryID, body)
	if err != nil {
		handling.WriteError(w, err)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.catalog.categoryUpdated"),
		gecho.WithData(category),
		gecho.Send(),
	)
}

func (crm *CatalogRoutesManager) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid category id"), gecho.Send())
		return
	}

	if err := crm.catalogService.DeleteCategory(r.Context(), categoryID); err != nil {
		handling.WriteError(w, err)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.catalog.categoryDeleted"),
		gecho.Send(),
	)
}
