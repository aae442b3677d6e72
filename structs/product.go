package structs

import (
	"time"

	"github.com/google/uuid"
)

// ProductFields are the scalar columns an admin can set directly. Quantity
// is only honored when the product has no explicitly managed serials; once
// serials exist it is derived from the live serial count.
type ProductFields struct {
	Name          string     `json:"name" validate:"required,max=200"`
	Description   string     `json:"description"`
	Price         uint64     `json:"price"` // cents
	Quantity      int        `json:"quantity" validate:"gte=0"`
	CategoryID    uuid.UUID  `json:"category_id" validate:"required"`
	SubcategoryID *uuid.UUID `json:"subcategory_id,omitempty"`
}

// ProductResponse is a product hydrated with signed image URLs and catalog
// names, the shape both public read endpoints return.
type ProductResponse struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Price           uint64     `json:"price"`
	Quantity        int        `json:"quantity"`
	CategoryID      uuid.UUID  `json:"category_id"`
	CategoryName    string     `json:"category_name,omitempty"`
	SubcategoryID   *uuid.UUID `json:"subcategory_id,omitempty"`
	SubcategoryName string     `json:"subcategory_name,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	Images          []string   `json:"images"`
}

type DeleteProductResult struct {
	ProductName string `json:"product_name"`
}
