package service

import (
	"encoding/json"
	"fmt"

	"go-inventory-pos/internal/model"
	"go-inventory-pos/internal/repository"
	"go-inventory-pos/internal/ws"
	"go-inventory-pos/pkg/validator"

	"github.com/google/uuid"
)

// CatalogService manages catalog master data: products, categories and
// suppliers. It never touches product quantity; that column belongs to the
// ledger writer alone.
type CatalogService interface {
	CreateProduct(req *model.Product, actor Actor) error
	UpdateProduct(id uuid.UUID, req *model.Product, actor Actor) (*model.Product, error)
	RetireProduct(id uuid.UUID, actor Actor) error
	SetProductImage(id uuid.UUID, imagePath string, actor Actor) error
	GetAllProducts() ([]model.Product, error)
	GetProductByID(id uuid.UUID) (*model.Product, error)
	GetLowStockProducts() ([]model.Product, error)

	CreateCategory(req *model.Category, actor Actor) error
	UpdateCategory(id uuid.UUID, req *model.Category, actor Actor) (*model.Category, error)
	DeleteCategory(id uuid.UUID) error
	GetAllCategories() ([]model.Category, error)

	CreateSupplier(req *model.Supplier, actor Actor) error
	UpdateSupplier(id uuid.UUID, req *model.Supplier, actor Actor) (*model.Supplier, error)
	RetireSupplier(id uuid.UUID, actor Actor) error
	GetAllSuppliers() ([]model.Supplier, error)
}

type catalogService struct {
	store repository.Store
	audit AuditSink
	wsHub *ws.Hub
}

func NewCatalogService(store repository.Store, audit AuditSink, hub *ws.Hub) CatalogService {
	return &catalogService{store: store, audit: audit, wsHub: hub}
}

// ── Products ──

func (s *catalogService) CreateProduct(req *model.Product, actor Actor) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return &ValidationError{Field: first.FailedField, Reason: "failed on tag '" + first.Tag + "'"}
	}
	if req.Price.IsNegative() {
		return &ValidationError{Field: "price", Reason: "cannot be negative"}
	}
	if req.Quantity < 0 {
		return &ValidationError{Field: "quantity", Reason: "cannot be negative"}
	}

	existing, _ := s.store.Products().FindBySKU(req.SKU)
	if existing != nil && existing.ID != uuid.Nil {
		return &ValidationError{Field: "sku", Reason: "already exists"}
	}

	if req.Status == "" {
		req.Status = model.ProductActive
	}
	req.CreatedBy = actor.ID
	req.UpdatedBy = actor.ID

	if err := s.store.Products().Create(req); err != nil {
		return wrapStoreErr("create product", err)
	}

	s.audit.Record(actor.ID, "product:create", "product", req.ID.String(), req.SKU)
	s.broadcastProduct("product_created", req, actor)
	return nil
}

func (s *catalogService) UpdateProduct(id uuid.UUID, req *model.Product, actor Actor) (*model.Product, error) {
	existing, err := s.store.Products().FindByID(id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, &NotFoundError{Resource: "product", ID: id.String()}
		}
		return nil, wrapStoreErr("update product", err)
	}
	if req.Price.IsNegative() {
		return nil, &ValidationError{Field: "price", Reason: "cannot be negative"}
	}

	// Quantity is deliberately not copied; stock moves only via the ledger.
	existing.Name = req.Name
	existing.SKU = req.SKU
	existing.Unit = req.Unit
	existing.Price = req.Price
	existing.MinStock = req.MinStock
	existing.CategoryID = req.CategoryID
	existing.SupplierID = req.SupplierID
	existing.UpdatedBy = actor.ID

	if err := s.store.Products().Update(existing); err != nil {
		return nil, wrapStoreErr("update product", err)
	}

	s.audit.Record(actor.ID, "product:update", "product", existing.ID.String(), existing.SKU)
	s.broadcastProduct("product_updated", existing, actor)
	return existing, nil
}

func (s *catalogService) RetireProduct(id uuid.UUID, actor Actor) error {
	if _, err := s.GetProductByID(id); err != nil {
		return err
	}
	if err := s.store.Products().SetStatus(id, model.ProductInactive, actor.ID); err != nil {
		return wrapStoreErr("retire product", err)
	}
	s.audit.Record(actor.ID, "product:retire", "product", id.String(), "")
	return nil
}

func (s *catalogService) SetProductImage(id uuid.UUID, imagePath string, actor Actor) error {
	product, err := s.GetProductByID(id)
	if err != nil {
		return err
	}
	product.Image = imagePath
	product.UpdatedBy = actor.ID
	if err := s.store.Products().Update(product); err != nil {
		return wrapStoreErr("set product image", err)
	}
	return nil
}

func (s *catalogService) GetAllProducts() ([]model.Product, error) {
	return s.store.Products().FindAll()
}

func (s *catalogService) GetProductByID(id uuid.UUID) (*model.Product, error) {
	product, err := s.store.Products().FindByID(id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, &NotFoundError{Resource: "product", ID: id.String()}
		}
		return nil, wrapStoreErr("get product", err)
	}
	return product, nil
}

func (s *catalogService) GetLowStockProducts() ([]model.Product, error) {
	return s.store.Products().FindLowStock()
}

// ── Categories ──

func (s *catalogService) CreateCategory(req *model.Category, actor Actor) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return &ValidationError{Field: first.FailedField, Reason: "failed on tag '" + first.Tag + "'"}
	}
	existing, _ := s.store.Categories().FindByName(req.Name)
	if existing != nil && existing.ID != uuid.Nil {
		return &ValidationError{Field: "name", Reason: "already exists"}
	}
	req.CreatedBy = actor.ID
	req.UpdatedBy = actor.ID
	if err := s.store.Categories().Create(req); err != nil {
		return wrapStoreErr("create category", err)
	}
	s.audit.Record(actor.ID, "category:create", "category", req.ID.String(), req.Name)
	return nil
}

func (s *catalogService) UpdateCategory(id uuid.UUID, req *model.Category, actor Actor) (*model.Category, error) {
	existing, err := s.store.Categories().FindByID(id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, &NotFoundError{Resource: "category", ID: id.String()}
		}
		return nil, wrapStoreErr("update category", err)
	}
	existing.Name = req.Name
	existing.Description = req.Description
	existing.UpdatedBy = actor.ID
	if err := s.store.Categories().Update(existing); err != nil {
		return nil, wrapStoreErr("update category", err)
	}
	return existing, nil
}

func (s *catalogService) DeleteCategory(id uuid.UUID) error {
	if err := s.store.Categories().Delete(id); err != nil {
		return wrapStoreErr("delete category", err)
	}
	return nil
}

func (s *catalogService) GetAllCategories() ([]model.Category, error) {
	return s.store.Categories().FindAll()
}

// ── Suppliers ──

func (s *catalogService) CreateSupplier(req *model.Supplier, actor Actor) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return &ValidationError{Field: first.FailedField, Reason: "failed on tag '" + first.Tag + "'"}
	}
	if req.Status == "" {
		req.Status = model.SupplierActive
	}
	req.CreatedBy = actor.ID
	req.UpdatedBy = actor.ID
	if err := s.store.Suppliers().Create(req); err != nil {
		return wrapStoreErr("create supplier", err)
	}
	s.audit.Record(actor.ID, "supplier:create", "supplier", req.ID.String(), req.Name)
	return nil
}

func (s *catalogService) UpdateSupplier(id uuid.UUID, req *model.Supplier, actor Actor) (*model.Supplier, error) {
	existing, err := s.store.Suppliers().FindByID(id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, &NotFoundError{Resource: "supplier", ID: id.String()}
		}
		return nil, wrapStoreErr("update supplier", err)
	}
	existing.Name = req.Name
	existing.ContactPerson = req.ContactPerson
	existing.Phone = req.Phone
	existing.Email = req.Email
	existing.Address = req.Address
	existing.UpdatedBy = actor.ID
	if err := s.store.Suppliers().Update(existing); err != nil {
		return nil, wrapStoreErr("update supplier", err)
	}
	return existing, nil
}

func (s *catalogService) RetireSupplier(id uuid.UUID, actor Actor) error {
	if err := s.store.Suppliers().SetStatus(id, model.SupplierInactive, actor.ID); err != nil {
		return wrapStoreErr("retire supplier", err)
	}
	s.audit.Record(actor.ID, "supplier:retire", "supplier", id.String(), "")
	return nil
}

func (s *catalogService) GetAllSuppliers() ([]model.Supplier, error) {
	return s.store.Suppliers().FindAll()
}

func (s *catalogService) broadcastProduct(action string, product *model.Product, actor Actor) {
	if s.wsHub == nil {
		return
	}
	go func() {
		payload := map[string]interface{}{
			"type":   "stock_update",
			"action": action,
			"product": map[string]interface{}{
				"id":       product.ID,
				"sku":      product.SKU,
				"name":     product.Name,
				"quantity": product.Quantity,
				"price":    product.Price,
			},
			"user": map[string]interface{}{
				"id":    actor.ID,
				"name":  actor.Name,
				"email": actor.Email,
			},
			"message": fmt.Sprintf("%s updated catalog entry '%s'", actor.Name, product.Name),
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}
