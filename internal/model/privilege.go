package model

// Privilege represents a permission that can be assigned to users
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "sale:create"
	Name string `gorm:"type:varchar(100)" json:"name"`
}

// Default privileges for the system
var DefaultPrivileges = []Privilege{
	// User management
	{Code: "user:view", Name: "View User"},
	{Code: "user:create", Name: "Create User"},
	{Code: "user:update", Name: "Update User"},
	{Code: "user:delete", Name: "Delete User"},
	{Code: "user:update_privilege", Name: "Update User Privileges"},
	// Catalog management
	{Code: "product:view", Name: "View Product"},
	{Code: "product:create", Name: "Create Product"},
	{Code: "product:update", Name: "Update Product"},
	{Code: "product:delete", Name: "Retire Product"},
	{Code: "category:manage", Name: "Manage Categories"},
	{Code: "supplier:manage", Name: "Manage Suppliers"},
	// Orders and point of sale
	{Code: "order:view", Name: "View Order"},
	{Code: "order:create", Name: "Create Order"},
	{Code: "sale:view", Name: "View Sale"},
	{Code: "sale:create", Name: "Create Sale"},
	// Stock ledger
	{Code: "stock:view", Name: "View Stock History"},
	{Code: "stock:adjust", Name: "Adjust Stock"},
	{Code: "stock:export", Name: "Export Stock History"},
	// Reporting
	{Code: "dashboard:view", Name: "View Dashboard"},
	{Code: "audit:view", Name: "View Audit Log"},
}
