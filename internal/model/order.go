package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order lifecycle states. This backend only creates orders as pending;
// later transitions belong to the (separate) fulfilment flow.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Order is the header row owning one or more line items.
// Orders record demand only; they never move stock.
type Order struct {
	BaseModel
	Number          string          `gorm:"type:varchar(10);uniqueIndex;not null" json:"number"`
	CustomerName    string          `gorm:"type:varchar(255);not null" json:"customer_name" validate:"required"`
	CustomerPhone   string          `gorm:"type:varchar(20)" json:"customer_phone"`
	CustomerEmail   string          `gorm:"type:varchar(255)" json:"customer_email" validate:"omitempty,email"`
	CustomerAddress string          `gorm:"type:text" json:"customer_address"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	Status          string          `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Notes           string          `gorm:"type:text" json:"notes"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

// OrderItem captures the unit price at submission time, decoupled from
// later catalog price changes.
type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null" json:"product_id"`
	Product   *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	LineTotal decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"line_total"`
}
