package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	SaleStatusCompleted = "completed"
	SaleStatusVoided    = "voided"
)

// Payment methods accepted at the counter.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
)

// Sale is a completed point-of-sale transaction. Unlike an Order it debits
// inventory: every line has a matching "out" ledger entry written in the
// same atomic unit.
type Sale struct {
	BaseModel
	Number        string          `gorm:"type:varchar(10);uniqueIndex;not null" json:"number"`
	CustomerName  string          `gorm:"type:varchar(255)" json:"customer_name"`
	CustomerPhone string          `gorm:"type:varchar(20)" json:"customer_phone"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	Discount      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"discount"`
	Tax           decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"tax"`
	FinalAmount   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"final_amount"`
	PaymentMethod string          `gorm:"type:varchar(20)" json:"payment_method"`
	Status        string          `gorm:"type:varchar(20);not null;default:'completed'" json:"status"`
	Notes         string          `gorm:"type:text" json:"notes"`

	Items []SaleItem `gorm:"foreignKey:SaleID" json:"items"`
}

type SaleItem struct {
	BaseModel
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null" json:"product_id"`
	Product   *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	LineTotal decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"line_total"`
}
