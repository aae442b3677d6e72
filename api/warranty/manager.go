package warranty

import (
	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"

	"github.com/anritvox/backend-anritvox/services"
)

type WarrantyRoutesManager struct {
	logger          *gecho.Logger
	warrantyService *services.WarrantyService
}

func NewWarrantyRoutesManager(logger *gecho.Logger, warrantyService *services.WarrantyService) *WarrantyRoutesManager {
	return &WarrantyRoutesManager{
		logger:          logger,
		warrantyService: warrantyService,
	}
}

// RegisterRoutes mounts the public validation and registration flow.
func (wrm *WarrantyRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/warranty/validate/{code}", wrm.ValidateSerial)
	r.Post("/warranty/register", wrm.Register)
}

// RegisterAdminRoutes mounts registration management on the
// authenticated admin subrouter.
func (wrm *WarrantyRoutesManager) RegisterAdminRoutes(r chi.Router) {
	r.Get("/warranty", wrm.ListRegistrations)
	r.Put("/warranty/{id}/status", wrm.SetStatus)
	r.Delete("/warranty/{id}", wrm.DeleteRegistration)
}
