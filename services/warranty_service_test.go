package services

import (
	"context"
	"testing"

	"github.com/anritvox/backend-anritvox/lib"
	"github.com/anritvox/backend-anritvox/structs/tables"
)

// Deleting a registration frees its serial even from accepted. This is
// deliberate admin behavior, not an oversight; see the Delete doc comment.
func TestDeleteFreesAcceptedSerial(t *testing.T) {
	db := setupTestDB(t)
	fx := seedRegistration(t, db, tables.WarrantyStatusAccepted)
	ws := newWarrantyService(db)
	ctx := context.Background()

	if err := ws.Delete(ctx, fx.regID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	remaining, err := db.NewSelect().
		Model((*tables.WarrantyRegistration)(nil)).
		Where("wr.id = ?", fx.regID).
		Count(ctx)
	if err != nil {
		t.Fatalf("failed to count registrations: %v", err)
	}
	if remaining != 0 {
		t.Error("registration row should be gone")
	}

	if fetchSerialUsed(t, db, fx.serialID) {
		t.Error("serial should be freed after deleting an accepted registration")
	}
}

func TestRejectClearsSerialFlag(t *testing.T) {
	db := setupTestDB(t)
	fx := seedRegistration(t, db, tables.WarrantyStatusPending)
	ws := newWarrantyService(db)

	result, err := ws.SetStatus(context.Background(), fx.regID, tables.WarrantyStatusRejected)
	if err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if result.Status != tables.WarrantyStatusRejected {
		t.Errorf("status = %s, want rejected", result.Status)
	}

	if fetchSerialUsed(t, db, fx.serialID) {
		t.Error("rejection should free the serial")
	}
}

func TestAcceptKeepsSerialClaimed(t *testing.T) {
	db := setupTestDB(t)
	fx := seedRegistration(t, db, tables.WarrantyStatusPending)
	ws := newWarrantyService(db)

	if _, err := ws.SetStatus(context.Background(), fx.regID, tables.WarrantyStatusAccepted); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}

	if !fetchSerialUsed(t, db, fx.serialID) {
		t.Error("acceptance must not free the serial")
	}
}

func TestSetStatusRejectsPending(t *testing.T) {
	db := setupTestDB(t)
	fx := seedRegistration(t, db, tables.WarrantyStatusPending)
	ws := newWarrantyService(db)

	_, err := ws.SetStatus(context.Background(), fx.regID, tables.WarrantyStatusPending)
	if !lib.IsKind(err, lib.KindInvalidStatus) {
		t.Errorf("err = %v, want invalid status", err)
	}
}

func TestValidateSerialAlreadyRegistered(t *testing.T) {
	db := setupTestDB(t)
	fx := seedRegistration(t, db, tables.WarrantyStatusPending)
	ws := newWarrantyService(db)

	_, err := ws.ValidateSerial(context.Background(), fx.code)
	if !lib.IsKind(err, lib.KindAlreadyRegistered) {
		t.Errorf("err = %v, want already registered", err)
	}
}

func TestValidateSerialUnknownCode(t *testing.T) {
	db := setupTestDB(t)
	seedRegistration(t, db, tables.WarrantyStatusPending)
	ws := newWarrantyService(db)

	_, err := ws.ValidateSerial(context.Background(), "NOSUCHCODE1")
	if !lib.IsKind(err, lib.KindNotFound) {
		t.Errorf("err = %v, want not found", err)
	}
}
