package tables

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// SerialNumber is one physical unit of a product. The unique index on
// serial is the arbiter of code uniqueness under concurrent inserts;
// application-level checks only exist to produce better error payloads.
type SerialNumber struct {
	bun.BaseModel `bun:"table:serial_numbers,alias:sn"`
	ID            uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	ProductID     uuid.UUID `bun:"product_id,type:uuid,notnull" json:"product_id"`
	Serial        string    `bun:"serial,notnull,unique" json:"serial"`
	IsUsed        bool      `bun:"is_used,notnull,default:false" json:"is_used"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`

	// Populated by admin list queries that join the registration.
	Status       string     `bun:"status,scanonly" json:"status,omitempty"`
	UserName     string     `bun:"user_name,scanonly" json:"user_name,omitempty"`
	RegisteredAt *time.Time `bun:"registered_at,scanonly" json:"registered_at,omitempty"`
}
