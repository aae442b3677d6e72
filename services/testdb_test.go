package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/anritvox/backend-anritvox/config"
	"github.com/anritvox/backend-anritvox/database"
	"github.com/anritvox/backend-anritvox/structs"
	"github.com/anritvox/backend-anritvox/structs/tables"
)

// The service layer only depends on bun.IDB semantics, so an in-memory
// SQLite database stands in for Postgres. Anything Postgres-only (the
// unique-index race, SQLSTATE mapping) stays out of these tests.
var testSchema = []string{
	`CREATE TABLE categories (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE subcategories (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category_id TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE products (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		price INTEGER NOT NULL,
		quantity INTEGER NOT NULL,
		category_id TEXT NOT NULL,
		subcategory_id TEXT,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE serial_numbers (
		id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(16)))),
		product_id TEXT NOT NULL,
		serial TEXT NOT NULL UNIQUE,
		is_used BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE warranty_registrations (
		id TEXT PRIMARY KEY,
		serial_number_id TEXT NOT NULL,
		product_id TEXT NOT NULL,
		user_name TEXT NOT NULL,
		user_email TEXT NOT NULL,
		user_phone TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		registered_at TIMESTAMP NOT NULL
	)`,
}

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	// A single connection keeps the in-memory database alive for the
	// whole test.
	sqldb.SetMaxOpenConns(1)

	bdb := bun.NewDB(sqldb, sqlitedialect.New())
	for _, ddl := range testSchema {
		if _, err := bdb.ExecContext(context.Background(), ddl); err != nil {
			t.Fatalf("failed to create test schema: %v", err)
		}
	}

	db := &database.DB{DB: bdb}
	database.SetInstance(db)
	t.Cleanup(func() {
		database.SetInstance(nil)
		bdb.Close()
	})
	return db
}

type warrantyFixture struct {
	productID uuid.UUID
	serialID  uuid.UUID
	regID     uuid.UUID
	code      string
}

// seedRegistration creates a category, product, claimed serial, and a
// registration in the given status.
func seedRegistration(t *testing.T, db *database.DB, status string) warrantyFixture {
	t.Helper()
	ctx := context.Background()
	now := time.Now()

	category := tables.Category{ID: uuid.New(), Name: "Audio " + t.Name(), CreatedAt: now}
	if _, err := db.NewInsert().Model(&category).Exec(ctx); err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}

	product := tables.Product{
		ID:         uuid.New(),
		Name:       "Handheld Recorder",
		Price:      19900,
		Quantity:   1,
		CategoryID: category.ID,
		CreatedAt:  now,
	}
	if _, err := db.NewInsert().Model(&product).Exec(ctx); err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}

	serial := tables.SerialNumber{
		ID:        uuid.New(),
		ProductID: product.ID,
		Serial:    "REC" + strings.ToUpper(uuid.NewString()[:8]),
		IsUsed:    true,
		CreatedAt: now,
	}
	if _, err := db.NewInsert().Model(&serial).Exec(ctx); err != nil {
		t.Fatalf("failed to seed serial: %v", err)
	}

	registration := tables.WarrantyRegistration{
		ID:             uuid.New(),
		SerialNumberID: serial.ID,
		ProductID:      product.ID,
		UserName:       "Jamie Doe",
		UserEmail:      "jamie@example.com",
		UserPhone:      "+31600000000",
		Status:         status,
		RegisteredAt:   now,
	}
	if _, err := db.NewInsert().Model(&registration).Exec(ctx); err != nil {
		t.Fatalf("failed to seed registration: %v", err)
	}

	return warrantyFixture{
		productID: product.ID,
		serialID:  serial.ID,
		regID:     registration.ID,
		code:      serial.Serial,
	}
}

func newWarrantyService(db *database.DB) *WarrantyService {
	logger := config.InitializeLogger()
	// Empty email config; sends are a no-op without an API key.
	cfg := &structs.Config{Email: &structs.EmailConfig{}}
	return NewWarrantyService(logger, db, NewSerialService(logger, db), NewEmailService(logger, cfg))
}

func fetchSerialUsed(t *testing.T, db *database.DB, serialID uuid.UUID) bool {
	t.Helper()
	serial := new(tables.SerialNumber)
	err := db.NewSelect().
		Model(serial).
		Where("sn.id = ?", serialID).
		Scan(context.Background())
	if err != nil {
		t.Fatalf("failed to fetch serial: %v", err)
	}
	return serial.IsUsed
}
