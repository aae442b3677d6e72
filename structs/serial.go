package structs

import (
	"github.com/google/uuid"
)

type AddSerialsRequest struct {
	Serials []string `json:"serials" validate:"required,min=1,max=100,dive,required"`
}

type BulkSerialsRequest struct {
	Serials []string `json:"serials,omitempty"`
	CSVData string   `json:"csv_data,omitempty"`
}

type UpdateSerialRequest struct {
	Serial string `json:"serial" validate:"required"`
}

type AddSerialsResult struct {
	Added   int      `json:"added"`
	Serials []string `json:"serials"`
}

type UpdateSerialResult struct {
	ID        uuid.UUID `json:"id"`
	OldSerial string    `json:"old_serial"`
	NewSerial string    `json:"new_serial"`
}

// SerialAvailability answers "may a NEW serial be created with this code".
// Available means the code is absent from the store entirely; a present but
// unclaimed serial is exists=true, available=false. Whether an existing
// serial can still be claimed for warranty is the used flag on Details.
type SerialAvailability struct {
	Available bool           `json:"available"`
	Exists    bool           `json:"exists"`
	Details   *SerialContext `json:"details,omitempty"`
}

// SerialContext is the product/category context of one serial, used to
// pre-fill warranty registration forms and availability lookups.
type SerialContext struct {
	SerialNumberID uuid.UUID `json:"serial_number_id"`
	Serial         string    `json:"serial"`
	ProductID      uuid.UUID `json:"product_id"`
	ProductName    string    `json:"product_name"`
	CategoryID     uuid.UUID `json:"category_id"`
	CategoryName   string    `json:"category_name"`
	IsUsed         bool      `json:"is_used"`
}

type SerialStats struct {
	Total     int `json:"total_serials"`
	Used      int `json:"used_serials"`
	Available int `json:"available_serials"`
}
