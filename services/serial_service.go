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

// SerialService owns the serial-number pool: creation, format and
// uniqueness enforcement, and keeping product quantity in sync with the
// live serial count.
type SerialService struct {
	logger *gecho.Logger
	db     *database.DB
}

func NewSerialService(logger *gecho.Logger, db *database.DB) *SerialService {
	return &SerialService{
		logger: logger,
		db:     db,
	}
}

// AddSerials normalizes and inserts new serials for a product, then
// recomputes the product quantity inside the same transaction.
//
// Validation order is fixed: unknown product, then malformed codes, then
// in-batch duplicates, then codes already present in the store. Each
// failure enumerates every offending code rather than the first one hit.
func (ss *SerialService) AddSerials(ctx context.Context, productID uuid.UUID, rawCodes []string) (*structs.AddSerialsResult, error) {
	exists, err := ss.db.NewSelect().
		Model((*tables.Product)(nil)).
		Where("p.id = ?", productID).
		Exists(ctx)
	if err != nil {
		ss.logger.Error("Failed to check product existence", gecho.Field("error", err), gecho.Field("product_id", productID))
		return nil, fmt.Errorf("failed to check product: %w", err)
	}
	if !exists {
		return nil, lib.NotFound("product not found")
	}

	normalized, invalid, duplicates := lib.NormalizeSerialBatch(rawCodes)
	if len(invalid) > 0 {
		return nil, lib.InvalidFormat("serials must contain only letters and digits", invalid)
	}
	if len(duplicates) > 0 {
		return nil, lib.DuplicateInBatch("duplicate serials in request", duplicates)
	}
	if len(normalized) == 0 {
		return &structs.AddSerialsResult{Added: 0, Serials: []string{}}, nil
	}

	// Pre-check for existing codes to report the full conflicting set.
	// The unique index remains the arbiter under concurrent inserts.
	var existing []string
	err = ss.db.NewSelect().
		Model((*tables.SerialNumber)(nil)).
		Column("sn.serial").
		Where("sn.serial IN (?)", bun.In(normalized)).
		Scan(ctx, &existing)
	if err != nil {
		ss.logger.Error("Failed to check existing serials", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to check existing serials: %w", err)
	}
	if len(existing) > 0 {
		return nil, lib.Conflict("serials already exist", existing...)
	}

	err = database.Transaction(ctx, func(tx bun.Tx) error {
		if err := ss.insertSerials(ctx, tx, productID, normalized); err != nil {
			return err
		}
		return ss.RecomputeQuantity(ctx, tx, productID)
	})
	if err != nil {
		if lib.IsUniqueViolation(err) {
			// Lost the race against a concurrent insert of the same code.
			ss.logger.Warn("Serial insert lost uniqueness race", gecho.Field("product_id", productID))
			return nil, lib.Conflict("serials already exist")
		}
		ss.logger.Error("Failed to insert serials", gecho.Field("error", err), gecho.Field("product_id", productID))
		return nil, fmt.Errorf("failed to insert serials: %w", err)
	}

	return &structs.AddSerialsResult{Added: len(normalized), Serials: normalized}, nil
}

// insertSerials inserts one row per normalized code with used=false.
// Shared with the product create/update paths so they can run it inside
// their own transactions.
func (ss *SerialService) insertSerials(ctx context.Context, idb bun.IDB, productID uuid.UUID, codes []string) error {
	rows := make([]tables.SerialNumber, 0, len(codes))
	for _, code := range codes {
		rows = append(rows, tables.SerialNumber{
			ProductID: productID,
			Serial:    code,
			IsUsed:    false,
		})
	}

	_, err := idb.NewInsert().Model(&rows).Exec(ctx)
	return err
}

// InsertSerialsTx validates and inserts a fresh serial set as part of an
// enclosing transaction. Used by the product lifecycle when it creates or
// replaces a product's serials atomically with the product row itself.
func (ss *SerialService) InsertSerialsTx(ctx context.Context, tx bun.Tx, productID uuid.UUID, rawCodes []string) ([]string, error) {
	normalized, invalid, duplicates := lib.NormalizeSerialBatch(rawCodes)
	if len(invalid) > 0 {
		return nil, lib.InvalidFormat("serials must contain only letters and digits", invalid)
	}
	if len(duplicates) > 0 {
		return nil, lib.DuplicateInBatch("duplicate serials in request", duplicates)
	}
	if len(normalized) == 0 {
		return normalized, nil
	}

	var existing []string
	err := tx.NewSelect().
		Model((*tables.SerialNumber)(nil)).
		Column("sn.serial").
		Where("sn.serial IN (?)", bun.In(normalized)).
		Scan(ctx, &existing)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing serials: %w", err)
	}
	if len(existing) > 0 {
		return nil, lib.Conflict("serials already exist", existing...)
	}

	if err := ss.insertSerials(ctx, tx, productID, normalized); err != nil {
		return nil, err
	}
	return normalized, nil
}

// RecomputeQuantity persists product quantity as the live serial count.
// Must run after every serial mutation, inside the same transaction.
func (ss *SerialService) RecomputeQuantity(ctx context.Context, idb bun.IDB, productID uuid.UUID) error {
	count, err := idb.NewSelect().
		Model((*tables.SerialNumber)(nil)).
		Where("sn.product_id = ?", productID).
		Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count serials: %w", err)
	}

	_, err = idb.NewUpdate().
		Model((*tables.Product)(nil)).
		Set("quantity = ?", count).
		Where("id = ?", productID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update product quantity: %w", err)
	}
	return nil
}

// ListProductSerials returns a product's serials with their registration
// context for the admin view.
func (ss *SerialService) ListProductSerials(ctx context.Context, productID uuid.UUID) ([]tables.SerialNumber, error) {
	var serials []tables.SerialNumber
	err := ss.db.NewSelect().
		Model(&serials).
		ColumnExpr("sn.*").
		ColumnExpr("wr.status AS status").
		ColumnExpr("wr.user_name AS user_name").
		ColumnExpr("wr.registered_at AS registered_at").
		Join("LEFT JOIN warranty_registrations AS wr ON wr.serial_number_id = sn.id").
		Where("sn.product_id = ?", productID).
		Order("sn.created_at DESC").
		Scan(ctx)
	if err != nil {
		ss.logger.Error("Failed to list serials", gecho.Field("error", err), gecho.Field("product_id", productID))
		return nil, fmt.Errorf("failed to list serials: %w", err)
	}

	if serials == nil {
		serials = []tables.SerialNumber{}
	}
	return serials, nil
}

// DeleteSerial removes one serial and recomputes the product quantity.
// Refused while any warranty registration still references the serial.
func (ss *SerialService) DeleteSerial(ctx context.Context, productID, serialID uuid.UUID) (string, error) {
	serial := new(tables.SerialNumber)
	err := ss.db.NewSelect().
		Model(serial).
		Where("sn.id = ?", serialID).
		Where("sn.product_id = ?", productID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", lib.NotFound("serial not found for this product")
		}
		ss.logger.Error("Failed to fetch serial", gecho.Field("error", err), gecho.Field("serial_id", serialID))
		return "", fmt.Errorf("failed to fetch serial: %w", err)
	}

	referenced, err := ss.db.NewSelect().
		Model((*tables.WarrantyRegistration)(nil)).
		Where("wr.serial_number_id = ?", serialID).
		Exists(ctx)
	if err != nil {
		ss.logger.Error("Failed to check serial registrations", gecho.Field("error", err), gecho.Field("serial_id", serialID))
		return "", fmt.Errorf("failed to check registrations: %w", err)
	}
	if referenced {
		return "", lib.Conflict("serial has an active warranty registration", serial.Serial)
	}

	err = database.Transaction(ctx, func(tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*tables.SerialNumber)(nil)).
			Where("id = ?", serialID).
			Exec(ctx); err != nil {
			return err
		}
		return ss.RecomputeQuantity(ctx, tx, productID)
	})
	if err != nil {
		ss.logger.Error("Failed to delete serial", gecho.Field("error", err), gecho.Field("serial_id", serialID))
		return "", fmt.Errorf("failed to delete serial: %w", err)
	}

	return serial.Serial, nil
}

// UpdateSerialCode rewrites a serial's code in place. An active
// registration does not block the edit; the registration keeps pointing
// at the same serial row under its new code.
func (ss *SerialService) UpdateSerialCode(ctx context.Context, productID, serialID uuid.UUID, rawCode string) (*structs.UpdateSerialResult, error) {
	normalized := lib.NormalizeSerial(rawCode)
	if !lib.ValidSerial(normalized) {
		return nil, lib.InvalidFormat("serials must contain only letters and digits", []string{normalized})
	}

	serial := new(tables.SerialNumber)
	err := ss.db.NewSelect().
		Model(serial).
		Where("sn.id = ?", serialID).
		Where("sn.product_id = ?", productID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lib.NotFound("serial not found for this product")
		}
		ss.logger.Error("Failed to fetch serial", gecho.Field("error", err), gecho.Field("serial_id", serialID))
		return nil, fmt.Errorf("failed to fetch serial: %w", err)
	}

	if serial.Serial == normalized {
		return &structs.UpdateSerialResult{ID: serial.ID, OldSerial: serial.Serial, NewSerial: normalized}, nil
	}

	taken, err := ss.db.NewSelect().
		Model((*tables.SerialNumber)(nil)).
		Where("sn.serial = ?", normalized).
		Where("sn.id != ?", serialID).
		Exists(ctx)
	if err != nil {
		ss.logger.Error("Failed to check serial uniqueness", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to check serial uniqueness: %w", err)
	}
	if taken {
		return nil, lib.Conflict("serial already exists", normalized)
	}

	_, err = ss.db.NewUpdate().
		Model((*tables.SerialNumber)(nil)).
		Set("serial = ?", normalized).
		Where("id = ?", serialID).
		Exec(ctx)
	if err != nil {
		if lib.IsUniqueViolation(err) {
			return nil, lib.Conflict("serial already exists", normalized)
		}
		ss.logger.Error("Failed to update serial", gecho.Field("error", err), gecho.Field("serial_id", serialID))
		return nil, fmt.Errorf("failed to update serial: %w", err)
	}

	return &structs.UpdateSerialResult{ID: serial.ID, OldSerial: serial.Serial, NewSerial: normalized}, nil
}

// CheckAvailability reports whether a code could be minted as a new
// serial. Available means the code is absent from the store entirely;
// an existing serial comes back with its product context regardless of
// the used flag.
func (ss *SerialService) CheckAvailability(ctx context.Context, rawCode string) (*structs.SerialAvailability, error) {
	normalized := lib.NormalizeSerial(rawCode)
	if !lib.ValidSerial(normalized) {
		return &structs.SerialAvailability{Available: false, Exists: false}, nil
	}

	details, err := ss.SerialContext(ctx, normalized)
	if err != nil {
		if lib.IsKind(err, lib.KindNotFound) {
			return &structs.SerialAvailability{Available: true, Exists: false}, nil
		}
		return nil, err
	}

	return &structs.SerialAvailability{Available: false, Exists: true, Details: details}, nil
}

// SerialContext looks up a normalized code and returns its product and
// category context. Fails NotFound for unknown codes.
func (ss *SerialService) SerialContext(ctx context.Context, normalized string) (*structs.SerialContext, error) {
	out := new(structs.SerialContext)
	err := database.WithRetry(ctx, func() error {
		return ss.db.NewSelect().
			Model((*tables.SerialNumber)(nil)).
			ColumnExpr("sn.id AS serial_number_id").
			ColumnExpr("sn.serial AS serial").
			ColumnExpr("sn.is_used AS is_used").
			ColumnExpr("p.id AS product_id").
			ColumnExpr("p.name AS product_name").
			ColumnExpr("c.id AS category_id").
			ColumnExpr("c.name AS category_name").
			Join("JOIN products AS p ON p.id = sn.product_id").
			Join("JOIN categories AS c ON c.id = p.category_id").
			Where("sn.serial = ?", normalized).
			Scan(ctx, out)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lib.NotFound("serial not found")
		}
		ss.logger.Error("Failed to look up serial", gecho.Field("error", err), gecho.Field("serial", normalized))
		return nil, fmt.Errorf("failed to look up serial: %w", err)
	}
	return out, nil
}

// Stats returns the total/used/available counts for a product's serials.
func (ss *SerialService) Stats(ctx context.Context, productID uuid.UUID) (*structs.SerialStats, error) {
	total, err := ss.db.NewSelect().
		Model((*tables.SerialNumber)(nil)).
		Where("sn.product_id = ?", productID).
		Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count serials: %w", err)
	}

	used, err := ss.db.NewSelect().
		Model((*tables.SerialNumber)(nil)).
		Where("sn.product_id = ?", productID).
		Where("sn.is_used = TRUE").
		Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count used serials: %w", err)
	}

	return &structs.SerialStats{
		Total:     total,
		Used:      used,
		Available: total - used,
	}, nil
}
