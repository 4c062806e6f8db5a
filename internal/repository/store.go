package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store bundles the repositories that take part in multi-row business
// writes and exposes the atomic unit of work they must share.
//
// Atomic runs fn against a Store bound to a single database transaction:
// every write made through it either commits as a whole or is discarded.
// The inner Store must not escape fn.
type Store interface {
	Products() ProductRepository
	Categories() CategoryRepository
	Suppliers() SupplierRepository
	StockTransactions() StockTransactionRepository
	Orders() OrderRepository
	Sales() SaleRepository
	AuditLogs() AuditLogRepository

	Atomic(ctx context.Context, fn func(Store) error) error
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Products() ProductRepository { return NewProductRepo(s.db) }

func (s *gormStore) Categories() CategoryRepository { return NewCategoryRepo(s.db) }

func (s *gormStore) Suppliers() SupplierRepository { return NewSupplierRepo(s.db) }

func (s *gormStore) StockTransactions() StockTransactionRepository {
	return NewStockTransactionRepo(s.db)
}

func (s *gormStore) Orders() OrderRepository { return NewOrderRepo(s.db) }

func (s *gormStore) Sales() SaleRepository { return NewSaleRepo(s.db) }

func (s *gormStore) AuditLogs() AuditLogRepository { return NewAuditLogRepo(s.db) }

func (s *gormStore) Atomic(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
