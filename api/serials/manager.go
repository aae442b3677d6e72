package serials

import (
	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"

	"github.com/anritvox/backend-anritvox/services"
)

type SerialRoutesManager struct {
	logger        *gecho.Logger
	serialService *services.SerialService
}

func NewSerialRoutesManager(logger *gecho.Logger, serialService *services.SerialService) *SerialRoutesManager {
	return &SerialRoutesManager{
		logger:        logger,
		serialService: serialService,
	}
}

// RegisterRoutes mounts the public availability check.
func (srm *SerialRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/serials/check/{code}", srm.CheckAvailability)
}

// RegisterAdminRoutes mounts serial management on the authenticated
// admin subrouter.
func (srm *SerialRoutesManager) RegisterAdminRoutes(r chi.Router) {
	r.Get("/products/{id}/serials", srm.ListProductSerials)
	r.Get("/products/{id}/serials/stats", srm.GetStats)
	r.Post("/products/{id}/serials", srm.AddSerials)
	r.Post("/products/{id}/serials/bulk", srm.AddSerialsBulk)
	r.Put("/products/{id}/serials/{serialId}", srm.UpdateSerial)
	r.Delete("/products/{id}/serials/{serialId}", srm.DeleteSerial)
}
