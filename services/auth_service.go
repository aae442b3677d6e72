package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"

	"github.com/anritvox/backend-anritvox/database"
	"github.com/anritvox/backend-anritvox/lib"
	"github.com/anritvox/backend-anritvox/structs"
	"github.com/anritvox/backend-anritvox/structs/tables"
)

// AuthService verifies admin credentials and issues bearer tokens for
// the admin API.
type AuthService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	db     *database.DB
}

func NewAuthService(logger *gecho.Logger, cfg *structs.Config, db *database.DB) *AuthService {
	return &AuthService{
		logger: logger,
		cfg:    cfg,
		db:     db,
	}
}

// Login checks the credentials against the stored argon2id hash and
// returns a signed token. Unknown email and wrong password are
// indistinguishable to the caller.
func (as *AuthService) Login(ctx context.Context, req *structs.AuthRequest) (*structs.AuthResponse, error) {
	admin := new(tables.AdminUser)
	err := as.db.NewSelect().
		Model(admin).
		Where("au.email = ?", req.Email).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lib.ErrInvalidCredentials
		}
		as.logger.Error("Failed to fetch admin user", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to fetch admin user: %w", err)
	}

	match, err := lib.VerifyPassword(req.Password, admin.PasswordHash)
	if err != nil {
		as.logger.Error("Failed to verify password hash", gecho.Field("error", err), gecho.Field("admin_id", admin.ID))
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !match {
		as.logger.Warn("Failed admin login attempt", gecho.Field("email", req.Email))
		return nil, lib.ErrInvalidCredentials
	}

	now := time.Now()
	claims := &structs.AuthClaims{
		Sub:   admin.ID,
		Email: admin.Email,
		Role:  "admin",
		Iat:   now,
		Exp:   now.Add(as.cfg.Auth.TokenExpiry),
		Jti:   uuid.New(),
	}

	token, err := lib.SignToken(claims, as.cfg.Auth.TokenSecret)
	if err != nil {
		as.logger.Error("Failed to sign token", gecho.Field("error", err), gecho.Field("admin_id", admin.ID))
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &structs.AuthResponse{Token: token}, nil
}

// Verify parses and validates a bearer token, returning its claims.
func (as *AuthService) Verify(tokenStr string) (*structs.AuthClaims, error) {
	return lib.ParseToken(tokenStr, as.cfg.Auth.TokenSecret)
}
