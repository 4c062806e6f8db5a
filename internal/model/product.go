package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductStatus is the lifecycle state of a catalog product.
// Products are never physically deleted; retiring one sets it inactive.
type ProductStatus string

const (
	ProductActive   ProductStatus = "active"
	ProductInactive ProductStatus = "inactive"
)

type Product struct {
	BaseModel
	SKU      string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Name     string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Unit     string          `gorm:"type:varchar(20)" json:"unit"`
	Price    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"price"`
	Quantity int             `gorm:"not null;default:0" json:"quantity"`
	MinStock int             `gorm:"not null;default:0" json:"min_stock"`
	Status   ProductStatus   `gorm:"type:varchar(10);not null;default:'active'" json:"status"`
	Image    string          `gorm:"type:varchar(255)" json:"image,omitempty"`

	CategoryID *uuid.UUID `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Category   *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	SupplierID *uuid.UUID `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	Supplier   *Supplier  `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
}

// IsActive reports whether the product can appear on new orders and sales.
func (p *Product) IsActive() bool {
	return p.Status == ProductActive
}

// IsLowStock reports whether quantity has fallen under the reorder threshold.
func (p *Product) IsLowStock() bool {
	return p.Quantity < p.MinStock
}
