package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"go-inventory-pos/internal/model"
	"go-inventory-pos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// memStore is an in-memory repository.Store for service tests. Atomic holds
// a single transaction mutex, so concurrent units serialize the same way
// row locks serialize them against Postgres, and rolls the data back from a
// snapshot when fn fails.
type memStore struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	products     map[uuid.UUID]*model.Product
	transactions []*model.StockTransaction
	orders       []*model.Order
	sales        []*model.Sale
	categories   map[uuid.UUID]*model.Category
	suppliers    map[uuid.UUID]*model.Supplier
	auditLogs    []*model.AuditLog

	// when set, the next Sales().Create fails with this error once
	failNextSaleCreate error
}

func newMemStore() *memStore {
	return &memStore{
		products:   make(map[uuid.UUID]*model.Product),
		categories: make(map[uuid.UUID]*model.Category),
		suppliers:  make(map[uuid.UUID]*model.Supplier),
	}
}

type memSnapshot struct {
	products     map[uuid.UUID]*model.Product
	transactions []*model.StockTransaction
	orders       []*model.Order
	sales        []*model.Sale
}

func (s *memStore) snapshot() memSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make(map[uuid.UUID]*model.Product, len(s.products))
	for id, p := range s.products {
		cp := *p
		products[id] = &cp
	}
	return memSnapshot{
		products:     products,
		transactions: append([]*model.StockTransaction(nil), s.transactions...),
		orders:       append([]*model.Order(nil), s.orders...),
		sales:        append([]*model.Sale(nil), s.sales...),
	}
}

func (s *memStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = snap.products
	s.transactions = snap.transactions
	s.orders = snap.orders
	s.sales = snap.sales
}

func (s *memStore) Atomic(_ context.Context, fn func(repository.Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(s); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *memStore) Products() repository.ProductRepository { return (*memProductRepo)(s) }

func (s *memStore) Categories() repository.CategoryRepository { return (*memCategoryRepo)(s) }

func (s *memStore) Suppliers() repository.SupplierRepository { return (*memSupplierRepo)(s) }

func (s *memStore) StockTransactions() repository.StockTransactionRepository {
	return (*memStockRepo)(s)
}

func (s *memStore) Orders() repository.OrderRepository { return (*memOrderRepo)(s) }

func (s *memStore) Sales() repository.SaleRepository { return (*memSaleRepo)(s) }

func (s *memStore) AuditLogs() repository.AuditLogRepository { return (*memAuditRepo)(s) }

// seedProduct inserts a product directly, bypassing the service layer.
func (s *memStore) seedProduct(p model.Product) *model.Product {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = model.ProductActive
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = &p
	return &p
}

func (s *memStore) productQuantity(id uuid.UUID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.products[id]; ok {
		return p.Quantity
	}
	return -1
}

func (s *memStore) ledgerEntries() []*model.StockTransaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*model.StockTransaction(nil), s.transactions...)
}

// ── products ──

type memProductRepo memStore

func (r *memProductRepo) Create(product *model.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *memProductRepo) FindAll() ([]model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *memProductRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) FindBySKU(sku string) (*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memProductRepo) FindByIDForUpdate(id uuid.UUID) (*model.Product, error) {
	// Atomic already holds the transaction mutex, which is this store's
	// equivalent of the row lock.
	return r.FindByID(id)
}

func (r *memProductRepo) FindLowStock() ([]model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []model.Product
	for _, p := range r.products {
		if p.IsActive() && p.IsLowStock() {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memProductRepo) Update(product *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *memProductRepo) UpdateQuantity(id uuid.UUID, newQuantity int, updatedBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Quantity = newQuantity
	p.UpdatedBy = updatedBy
	return nil
}

func (r *memProductRepo) SetStatus(id uuid.UUID, status model.ProductStatus, updatedBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Status = status
	p.UpdatedBy = updatedBy
	return nil
}

// ── stock transactions ──

type memStockRepo memStore

func (r *memStockRepo) Create(tx *model.StockTransaction) error {
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *tx
	r.transactions = append(r.transactions, &cp)
	return nil
}

func (r *memStockRepo) Find(filter repository.StockTransactionFilter) ([]model.StockTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []model.StockTransaction
	for _, tx := range r.transactions {
		if filter.ProductID != nil && tx.ProductID != *filter.ProductID {
			continue
		}
		if filter.Type != "" && tx.Type != filter.Type {
			continue
		}
		if filter.From != nil && tx.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && tx.CreatedAt.After(*filter.To) {
			continue
		}
		out = append(out, *tx)
	}
	return out, nil
}

func (r *memStockRepo) FindByID(id uuid.UUID) (*model.StockTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, tx := range r.transactions {
		if tx.ID == id {
			cp := *tx
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memStockRepo) FindBySaleID(saleID uuid.UUID) ([]model.StockTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []model.StockTransaction
	for _, tx := range r.transactions {
		if tx.SaleID != nil && *tx.SaleID == saleID {
			out = append(out, *tx)
		}
	}
	return out, nil
}

// ── orders ──

type memOrderRepo memStore

func (r *memOrderRepo) Create(order *model.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	for i := range order.Items {
		if order.Items[i].ID == uuid.Nil {
			order.Items[i].ID = uuid.New()
		}
		order.Items[i].OrderID = order.ID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, order)
	return nil
}

func (r *memOrderRepo) ExistsByNumber(number string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.orders {
		if o.Number == number {
			return true, nil
		}
	}
	return false, nil
}

func (r *memOrderRepo) FindAll() ([]model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *memOrderRepo) FindByID(id uuid.UUID) (*model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.orders {
		if o.ID == id {
			cp := *o
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memOrderRepo) FindByNumber(number string) (*model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.orders {
		if strings.EqualFold(o.Number, number) {
			cp := *o
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── sales ──

type memSaleRepo memStore

func (r *memSaleRepo) Create(sale *model.Sale) error {
	r.mu.Lock()
	if err := r.failNextSaleCreate; err != nil {
		r.failNextSaleCreate = nil
		r.mu.Unlock()
		return err
	}
	r.mu.Unlock()

	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	for i := range sale.Items {
		if sale.Items[i].ID == uuid.Nil {
			sale.Items[i].ID = uuid.New()
		}
		sale.Items[i].SaleID = sale.ID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sales = append(r.sales, sale)
	return nil
}

func (r *memSaleRepo) ExistsByNumber(number string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.sales {
		if s.Number == number {
			return true, nil
		}
	}
	return false, nil
}

func (r *memSaleRepo) FindAll() ([]model.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, nil
}

func (r *memSaleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.sales {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memSaleRepo) FindByNumber(number string) (*model.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.sales {
		if strings.EqualFold(s.Number, number) {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── categories ──

type memCategoryRepo memStore

func (r *memCategoryRepo) Create(category *model.Category) error {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *category
	r.categories[category.ID] = &cp
	return nil
}

func (r *memCategoryRepo) FindAll() ([]model.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (r *memCategoryRepo) FindByID(id uuid.UUID) (*model.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memCategoryRepo) FindByName(name string) (*model.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.categories {
		if strings.EqualFold(c.Name, name) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memCategoryRepo) Update(category *model.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[category.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *category
	r.categories[category.ID] = &cp
	return nil
}

func (r *memCategoryRepo) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.categories, id)
	return nil
}

// ── suppliers ──

type memSupplierRepo memStore

func (r *memSupplierRepo) Create(supplier *model.Supplier) error {
	if supplier.ID == uuid.Nil {
		supplier.ID = uuid.New()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *supplier
	r.suppliers[supplier.ID] = &cp
	return nil
}

func (r *memSupplierRepo) FindAll() ([]model.Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Supplier, 0, len(r.suppliers))
	for _, s := range r.suppliers {
		out = append(out, *s)
	}
	return out, nil
}

func (r *memSupplierRepo) FindByID(id uuid.UUID) (*model.Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.suppliers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *memSupplierRepo) Update(supplier *model.Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.suppliers[supplier.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *supplier
	r.suppliers[supplier.ID] = &cp
	return nil
}

func (r *memSupplierRepo) SetStatus(id uuid.UUID, status model.SupplierStatus, updatedBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.suppliers[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.Status = status
	s.UpdatedBy = updatedBy
	return nil
}

// ── audit logs ──

type memAuditRepo memStore

func (r *memAuditRepo) Create(entry *model.AuditLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *entry
	r.auditLogs = append(r.auditLogs, &cp)
	return nil
}

func (r *memAuditRepo) FindRecent(limit int) ([]model.AuditLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.AuditLog, 0, len(r.auditLogs))
	for i := len(r.auditLogs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, *r.auditLogs[i])
	}
	return out, nil
}

func (r *memAuditRepo) FindByActor(actor string, limit int) ([]model.AuditLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []model.AuditLog
	for i := len(r.auditLogs) - 1; i >= 0 && len(out) < limit; i-- {
		if r.auditLogs[i].Actor == actor {
			out = append(out, *r.auditLogs[i])
		}
	}
	return out, nil
}

// recordingAudit captures audit records for assertions.
type recordingAudit struct {
	mu      sync.Mutex
	records []auditRecord
}

type auditRecord struct {
	Actor, Action, SubjectType, SubjectID, Details string
}

func (a *recordingAudit) Record(actor, action, subjectType, subjectID, details string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.records = append(a.records, auditRecord{actor, action, subjectType, subjectID, details})
}

func (a *recordingAudit) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.records))
	for i, r := range a.records {
		out[i] = r.Action
	}
	return out
}
