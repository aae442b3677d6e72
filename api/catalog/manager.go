package catalog

import (
	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"

	"github.com/anritvox/backend-anritvox/services"
)

type CatalogRoutesManager struct {
	logger         *gecho.Logger
	catalogService *services.CatalogService
}

func NewCatalogRoutesManager(logger *gecho.Logger, catalogService *services.CatalogService) *CatalogRoutesManager {
	return &CatalogRoutesManager{
		logger:         logger,
		catalogService: catalogService,
	}
}

// RegisterRoutes mounts the public read endpoints.
func (crm *CatalogRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/categories", crm.ListCategories)
	r.Get("/categories/{id}", crm.GetCategory)
	r.Get("/subcategories", crm.ListSubcategories)
	r.Get("/subcategories/{id}", crm.GetSubcategory)
}

// RegisterAdminRoutes mounts the mutation endpoints on the
// authenticated admin subrouter.
func (crm *CatalogRoutesManager) RegisterAdminRoutes(r chi.Router) {
	r.Post("/categories", crm.CreateCategory)
	r.Put("/categories/{id}", crm.UpdateCategory)
	r.Delete("/categories/{id}", crm.DeleteCategory)

	r.Post("/subcategories", crm.CreateSubcategory)
	r.Put("/subcategories/{id}", crm.UpdateSubcategory)
	r.Delete("/subcategories/{id}", crm.DeleteSubcategory)
}
