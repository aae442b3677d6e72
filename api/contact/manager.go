package contact

import (
	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"

	"github.com/anritvox/backend-anritvox/services"
)

type ContactRoutesManager struct {
	logger         *gecho.Logger
	contactService *services.ContactService
}

func NewContactRoutesManager(logger *gecho.Logger, contactService *services.ContactService) *ContactRoutesManager {
	return &ContactRoutesManager{
		logger:         logger,
		contactService: contactService,
	}
}

// RegisterRoutes mounts the public submission endpoint.
func (crm *ContactRoutesManager) RegisterRoutes(r chi.Router) {
	r.Post("/contact", crm.Submit)
}

// RegisterAdminRoutes mounts message management on the authenticated
// admin subrouter.
func (crm *ContactRoutesManager) RegisterAdminRoutes(r chi.Router) {
	r.Get("/contact", crm.ListMessages)
	r.Delete("/contact/{id}", crm.DeleteMessage)
}
