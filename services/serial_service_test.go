package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/anritvox/backend-anritvox/config"
	"github.com/anritvox/backend-anritvox/database"
	"github.com/anritvox/backend-anritvox/lib"
	"github.com/anritvox/backend-anritvox/structs/tables"
)

func seedProductWithSerials(t *testing.T, db *database.DB, codes []string) (uuid.UUID, []uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	now := time.Now()

	category := tables.Category{ID: uuid.New(), Name: "Audio " + t.Name(), CreatedAt: now}
	if _, err := db.NewInsert().Model(&category).Exec(ctx); err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}

	product := tables.Product{
		ID:         uuid.New(),
		Name:       "Field Mixer",
		Price:      44900,
		Quantity:   len(codes),
		CategoryID: category.ID,
		CreatedAt:  now,
	}
	if _, err := db.NewInsert().Model(&product).Exec(ctx); err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}

	serialIDs := make([]uuid.UUID, 0, len(codes))
	for _, code := range codes {
		serial := tables.SerialNumber{
			ID:        uuid.New(),
			ProductID: product.ID,
			Serial:    code,
			CreatedAt: now,
		}
		if _, err := db.NewInsert().Model(&serial).Exec(ctx); err != nil {
			t.Fatalf("failed to seed serial: %v", err)
		}
		serialIDs = append(serialIDs, serial.ID)
	}

	return product.ID, serialIDs
}

func fetchQuantity(t *testing.T, db *database.DB, productID uuid.UUID) int {
	t.Helper()
	product := new(tables.Product)
	err := db.NewSelect().
		Model(product).
		Where("p.id = ?", productID).
		Scan(context.Background())
	if err != nil {
		t.Fatalf("failed to fetch product: %v", err)
	}
	return product.Quantity
}

func TestDeleteSerialRecomputesQuantity(t *testing.T) {
	db := setupTestDB(t)
	productID, serialIDs := seedProductWithSerials(t, db, []string{"MIX001", "MIX002"})
	ss := NewSerialService(config.InitializeLogger(), db)

	code, err := ss.DeleteSerial(context.Background(), productID, serialIDs[0])
	if err != nil {
		t.Fatalf("DeleteSerial failed: %v", err)
	}
	if code != "MIX001" {
		t.Errorf("deleted code = %s, want MIX001", code)
	}

	if got := fetchQuantity(t, db, productID); got != 1 {
		t.Errorf("quantity = %d, want 1", got)
	}
}

func TestDeleteSerialBlockedByRegistration(t *testing.T) {
	db := setupTestDB(t)
	fx := seedRegistration(t, db, tables.WarrantyStatusPending)
	ss := NewSerialService(config.InitializeLogger(), db)

	_, err := ss.DeleteSerial(context.Background(), fx.productID, fx.serialID)
	if !lib.IsKind(err, lib.KindConflict) {
		t.Errorf("err = %v, want conflict", err)
	}
}

func TestAddSerialsRecomputesQuantity(t *testing.T) {
	db := setupTestDB(t)
	productID, _ := seedProductWithSerials(t, db, nil)
	ss := NewSerialService(config.InitializeLogger(), db)

	// One code; generated-key behavior differs between the test dialect
	// and Postgres for multi-row inserts.
	result, err := ss.AddSerials(context.Background(), productID, []string{"mix010"})
	if err != nil {
		t.Fatalf("AddSerials failed: %v", err)
	}
	if result.Added != 1 {
		t.Errorf("added = %d, want 1", result.Added)
	}
	if len(result.Serials) != 1 || result.Serials[0] != "MIX010" {
		t.Errorf("serials = %v, want [MIX010]", result.Serials)
	}

	if got := fetchQuantity(t, db, productID); got != 1 {
		t.Errorf("quantity = %d, want 1", got)
	}
}
