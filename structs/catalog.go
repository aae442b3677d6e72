package structs

import "github.com/google/uuid"

type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

type SubcategoryRequest struct {
	Name       string    `json:"name" validate:"required,max=200"`
	CategoryID uuid.UUID `json:"category_id" validate:"required"`
}
