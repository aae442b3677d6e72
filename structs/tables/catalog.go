package tables

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Category struct {
	bun.BaseModel `bun:"table:categories,alias:c"`
	ID            uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Name          string    `bun:"name,notnull,unique" json:"name"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`
}

type Subcategory struct {
	bun.BaseModel `bun:"table:subcategories,alias:sc"`
	ID            uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Name          string    `bun:"name,notnull" json:"name"`
	CategoryID    uuid.UUID `bun:"category_id,type:uuid,notnull" json:"category_id"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`
	Category      *Category `bun:"rel:belongs-to,join:category_id=id" json:"-"`

	// Populated by list queries that join the parent category.
	CategoryName string `bun:"category_name,scanonly" json:"category_name,omitempty"`
}
