package tables

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const (
	WarrantyStatusPending  = "pending"
	WarrantyStatusAccepted = "accepted"
	WarrantyStatusRejected = "rejected"
)

type WarrantyRegistration struct {
	bun.BaseModel  `bun:"table:warranty_registrations,alias:wr"`
	ID             uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	SerialNumberID uuid.UUID `bun:"serial_number_id,type:uuid,notnull" json:"serial_number_id"`
	ProductID      uuid.UUID `bun:"product_id,type:uuid,notnull" json:"product_id"`
	UserName       string    `bun:"user_name,notnull" json:"user_name"`
	UserEmail      string    `bun:"user_email,notnull" json:"user_email"`
	UserPhone      string    `bun:"user_phone,notnull" json:"user_phone"`
	Status         string    `bun:"status,notnull,default:'pending'" json:"status"`
	RegisteredAt   time.Time `bun:"registered_at,notnull,default:now()" json:"registered_at"`

	// Populated by the admin list query joins.
	Serial       string    `bun:"serial,scanonly" json:"serial,omitempty"`
	ProductName  string    `bun:"product_name,scanonly" json:"product_name,omitempty"`
	CategoryID   uuid.UUID `bun:"category_id,scanonly" json:"category_id,omitempty"`
	CategoryName string    `bun:"category_name,scanonly" json:"category_name,omitempty"`
}

// IsValidWarrantyStatus reports whether s is a status an admin may set.
// Registrations are created as pending; only the two terminal states are
// reachable through the API.
func IsValidWarrantyStatus(s string) bool {
	return s == WarrantyStatusAccepted || s == WarrantyStatusRejected
}
