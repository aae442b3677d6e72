package tables

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Product struct {
	bun.BaseModel `bun:"table:products,alias:p"`
	ID            uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Name          string    `bun:"name,notnull" json:"name"`
	Description   string    `bun:"description" json:"description"`
	Price         uint64    `bun:"price,notnull" json:"price"` // stored in cents
	Quantity      int       `bun:"quantity,notnull" json:"quantity"`
	CategoryID    uuid.UUID `bun:"category_id,type:uuid,notnull" json:"category_id"`
	// Nullable; products may live directly under a category.
	SubcategoryID *uuid.UUID     `bun:"subcategory_id,type:uuid" json:"subcategory_id,omitempty"`
	CreatedAt     time.Time      `bun:"created_at,notnull,default:now()" json:"created_at"`
	Images        []ProductImage `bun:"rel:has-many,join:id=product_id" json:"-"`

	// Populated by list queries that join the catalog tables.
	CategoryName    string `bun:"category_name,scanonly" json:"category_name,omitempty"`
	SubcategoryName string `bun:"subcategory_name,scanonly" json:"subcategory_name,omitempty"`
}

// ProductImage stores the object key under which the image lives in the
// bucket. Signed URLs are generated at read time and never persisted.
type ProductImage struct {
	bun.BaseModel `bun:"table:product_images,alias:pi"`
	ID            uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	ProductID     uuid.UUID `bun:"product_id,type:uuid,notnull" json:"product_id"`
	FilePath      string    `bun:"file_path,notnull" json:"file_path"`
}
