package tables

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type ContactMessage struct {
	bun.BaseModel `bun:"table:contact_messages,alias:cm"`
	ID            uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Name          string    `bun:"name,notnull" json:"name"`
	Email         string    `bun:"email,notnull" json:"email"`
	Phone         string    `bun:"phone,notnull" json:"phone"`
	Message       string    `bun:"message,notnull" json:"message"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`
}
