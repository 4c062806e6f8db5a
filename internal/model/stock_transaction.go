package model

import "github.com/google/uuid"

// StockTransactionType classifies a ledger entry.
type StockTransactionType string

const (
	StockIn         StockTransactionType = "in"
	StockOut        StockTransactionType = "out"
	StockAdjustment StockTransactionType = "adjustment"
)

// Valid reports whether the type is one of the known ledger entry kinds.
func (t StockTransactionType) Valid() bool {
	switch t {
	case StockIn, StockOut, StockAdjustment:
		return true
	}
	return false
}

// StockTransaction is one immutable ledger entry. Rows are append-only:
// nothing in the system updates or deletes them after commit.
//
// Quantity is the absolute delta applied, so for every entry
// NewQuantity == PreviousQuantity + Quantity (in) or - Quantity (out),
// and for adjustments the sign follows the direction of the recount.
type StockTransaction struct {
	BaseModel
	ProductID        uuid.UUID            `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product          *Product             `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`
	Type             StockTransactionType `gorm:"type:varchar(10);not null;index" json:"type" validate:"required,oneof=in out adjustment"`
	Quantity         int                  `gorm:"not null" json:"quantity"`
	PreviousQuantity int                  `gorm:"not null" json:"previous_quantity"`
	NewQuantity      int                  `gorm:"not null" json:"new_quantity"`
	Note             string               `gorm:"type:text" json:"note"`

	// Reference back to the sale that produced this entry, when any.
	SaleID *uuid.UUID `gorm:"type:uuid;index" json:"sale_id,omitempty"`
}
