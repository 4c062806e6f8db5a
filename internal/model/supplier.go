package model

// SupplierStatus mirrors ProductStatus: suppliers are retired, not deleted.
type SupplierStatus string

const (
	SupplierActive   SupplierStatus = "active"
	SupplierInactive SupplierStatus = "inactive"
)

type Supplier struct {
	BaseModel
	Name          string         `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	ContactPerson string         `gorm:"type:varchar(255)" json:"contact_person"`
	Phone         string         `gorm:"type:varchar(20)" json:"phone"`
	Email         string         `gorm:"type:varchar(255)" json:"email" validate:"omitempty,email"`
	Address       string         `gorm:"type:text" json:"address"`
	Status        SupplierStatus `gorm:"type:varchar(10);not null;default:'active'" json:"status"`
}
