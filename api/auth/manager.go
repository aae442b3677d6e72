package auth

import (
	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"

	"github.com/anritvox/backend-anritvox/services"
)

type AuthRoutesManager struct {
	logger      *gecho.Logger
	authService *services.AuthService
}

func NewAuthRoutesManager(logger *gecho.Logger, authService *services.AuthService) *AuthRoutesManager {
	return &AuthRoutesManager{
		logger:      logger,
		authService: authService,
	}
}

func (ar *AuthRoutesManager) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", ar.HandleLogin)
}
