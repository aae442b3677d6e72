package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/anritvox/backend-anritvox/database"
	"github.com/anritvox/backend-anritvox/lib"
	"github.com/anritvox/backend-anritvox/structs"
	"github.com/anritvox/backend-anritvox/structs/tables"
)

// WarrantyService enforces the claim lifecycle over serials. A pending
// registration moves to accepted or rejected, never back; rejection and
// deletion free the serial for a new claim.
type WarrantyService struct {
	logger        *gecho.Logger
	db            *database.DB
	serialService *SerialService
	emailService  *EmailService
}

func NewWarrantyService(logger *gecho.Logger, db *database.DB, serialService *SerialService, emailService *EmailService) *WarrantyService {
	return &WarrantyService{
		logger:        logger,
		db:            db,
		serialService: serialService,
		emailService:  emailService,
	}
}

// ValidateSerial checks that a code exists and is still claimable, and
// returns the product context the registration form needs.
func (ws *WarrantyService) ValidateSerial(ctx context.Context, rawCode string) (*structs.SerialContext, error) {
	normalized := lib.NormalizeSerial(rawCode)
	if !lib.ValidSerial(normalized) {
		return nil, lib.NotFound("serial not found")
	}

	details, err := ws.serialService.SerialContext(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if details.IsUsed {
		return nil, lib.AlreadyRegistered("serial already registered", normalized)
	}
	return details, nil
}

// Register creates a pending registration and claims the serial in one
// transaction. The serial is re-validated here; a code that was claimed
// between the client-side check and submission must fail, not be assumed
// still free.
func (ws *WarrantyService) Register(ctx context.Context, req *structs.WarrantyRegisterRequest) (*structs.WarrantyRegisterResult, error) {
	details, err := ws.ValidateSerial(ctx, req.Serial)
	if err != nil {
		return nil, err
	}

	if details.ProductID != req.ProductID {
		return nil, lib.Conflict("serial does not belong to the selected product", details.Serial)
	}

	registration := &tables.WarrantyRegistration{
		SerialNumberID: details.SerialNumberID,
		ProductID:      details.ProductID,
		UserName:       req.UserName,
		UserEmail:      req.UserEmail,
		UserPhone:      req.UserPhone,
		Status:         tables.WarrantyStatusPending,
	}

	err = database.Transaction(ctx, func(tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(registration).Returning("id").Exec(ctx); err != nil {
			return err
		}

		res, err := tx.NewUpdate().
			Model((*tables.SerialNumber)(nil)).
			Set("is_used = TRUE").
			Where("id = ?", details.SerialNumberID).
			Where("is_used = FALSE").
			Exec(ctx)
		if err != nil {
			return err
		}

		// A concurrent registration claimed the serial first; roll back
		// our row instead of double-claiming.
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return lib.Conflict("serial already registered", details.Serial)
		}
		return nil
	})
	if err != nil {
		if _, ok := lib.AsDomain(err); ok {
			return nil, err
		}
		ws.logger.Error("Failed to create warranty registration",
			gecho.Field("error", err),
			gecho.Field("serial", details.Serial))
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}

	go ws.emailService.SendWarrantyReceived(registration, details)

	return &structs.WarrantyRegisterResult{RegistrationID: registration.ID}, nil
}

// ListAll returns every registration with its serial, product and
// category context, newest first.
func (ws *WarrantyService) ListAll(ctx context.Context) ([]tables.WarrantyRegistration, error) {
	var registrations []tables.WarrantyRegistration
	err := database.WithRetry(ctx, func() error {
		registrations = nil
		return ws.db.NewSelect().
			Model(&registrations).
			ColumnExpr("wr.*").
			ColumnExpr("sn.serial AS serial").
			ColumnExpr("p.name AS product_name").
			ColumnExpr("c.id AS category_id").
			ColumnExpr("c.name AS category_name").
			Join("JOIN serial_numbers AS sn ON sn.id = wr.serial_number_id").
			Join("JOIN products AS p ON p.id = wr.product_id").
			Join("JOIN categories AS c ON c.id = p.category_id").
			Order("wr.registered_at DESC").
			Scan(ctx)
	})
	if err != nil {
		ws.logger.Error("Failed to list registrations", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}

	if registrations == nil {
		registrations = []tables.WarrantyRegistration{}
	}
	return registrations, nil
}

// SetStatus moves a registration to accepted or rejected. Rejection also
// clears the serial's used flag in the same transaction; acceptance has
// no side effect beyond the status write.
func (ws *WarrantyService) SetStatus(ctx context.Context, registrationID uuid.UUID, status string) (*structs.WarrantyStatusResult, error) {
	if !tables.IsValidWarrantyStatus(status) {
		return nil, lib.InvalidStatus("status must be accepted or rejected")
	}

	registration, err := ws.fetchRegistration(ctx, registrationID)
	if err != nil {
		return nil, err
	}

	err = database.Transaction(ctx, func(tx bun.Tx) error {
		if _, err := tx.NewUpdate().
			Model((*tables.WarrantyRegistration)(nil)).
			Set("status = ?", status).
			Where("id = ?", registrationID).
			Exec(ctx); err != nil {
			return err
		}

		if status == tables.WarrantyStatusRejected {
			if _, err := tx.NewUpdate().
				Model((*tables.SerialNumber)(nil)).
				Set("is_used = FALSE").
				Where("id = ?", registration.SerialNumberID).
				Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		ws.logger.Error("Failed to update registration status",
			gecho.Field("error", err),
			gecho.Field("registration_id", registrationID),
			gecho.Field("status", status))
		return nil, fmt.Errorf("failed to update registration: %w", err)
	}

	registration.Status = status
	go ws.emailService.SendWarrantyStatusChanged(registration)

	return &structs.WarrantyStatusResult{ID: registrationID, Status: status}, nil
}

// Delete removes a registration and unconditionally frees its serial,
// even when the registration was accepted. Deleting is the admin's
// escape hatch to un-claim a serial without the rejected status.
func (ws *WarrantyService) Delete(ctx context.Context, registrationID uuid.UUID) error {
	registration, err := ws.fetchRegistration(ctx, registrationID)
	if err != nil {
		return err
	}

	err = database.Transaction(ctx, func(tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*tables.WarrantyRegistration)(nil)).
			Where("id = ?", registrationID).
			Exec(ctx); err != nil {
			return err
		}

		_, err := tx.NewUpdate().
			Model((*tables.SerialNumber)(nil)).
			Set("is_used = FALSE").
			Where("id = ?", registration.SerialNumberID).
			Exec(ctx)
		return err
	})
	if err != nil {
		ws.logger.Error("Failed to delete registration",
			gecho.Field("error", err),
			gecho.Field("registration_id", registrationID))
		return fmt.Errorf("failed to delete registration: %w", err)
	}

	return nil
}

func (ws *WarrantyService) fetchRegistration(ctx context.Context, registrationID uuid.UUID) (*tables.WarrantyRegistration, error) {
	registration := new(tables.WarrantyRegistration)
	err := ws.db.NewSelect().
		Model(registration).
		Where("wr.id = ?", registrationID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lib.NotFound("registration not found")
		}
		ws.logger.Error("Failed to fetch registration", gecho.Field("error", err), gecho.Field("registration_id", registrationID))
		return nil, fmt.Errorf("failed to fetch registration: %w", err)
	}
	return registration, nil
}
