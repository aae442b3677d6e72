package structs

import (
	"github.com/google/uuid"
)

type WarrantyRegisterRequest struct {
	Serial    string    `json:"serial" validate:"required"`
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	UserName  string    `json:"user_name" validate:"required,max=200"`
	UserEmail string    `json:"user_email" validate:"required,email"`
	UserPhone string    `json:"user_phone" validate:"required,max=50"`
}

type WarrantyRegisterResult struct {
	RegistrationID uuid.UUID `json:"registration_id"`
}

type WarrantyStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type WarrantyStatusResult struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}
