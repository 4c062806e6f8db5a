package service

import (
	"context"
	"fmt"
	"strings"

	"go-inventory-pos/internal/model"
	"go-inventory-pos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineInput is one (product, quantity) pair from the caller's cart.
// Prices are never client-supplied; they are read from the catalog at
// submission time.
type LineInput struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

type CreateOrderRequest struct {
	CustomerName    string      `json:"customer_name"`
	CustomerPhone   string      `json:"customer_phone"`
	CustomerEmail   string      `json:"customer_email"`
	CustomerAddress string      `json:"customer_address"`
	Notes           string      `json:"notes"`
	Lines           []LineInput `json:"lines"`
}

type OrderService interface {
	CreateOrder(ctx context.Context, req *CreateOrderRequest, actor Actor) (*model.Order, error)
	GetAllOrders() ([]model.Order, error)
	GetOrderByID(id uuid.UUID) (*model.Order, error)
	GetOrderByNumber(number string) (*model.Order, error)
}

type orderService struct {
	store repository.Store
	audit AuditSink
}

func NewOrderService(store repository.Store, audit AuditSink) OrderService {
	return &orderService{store: store, audit: audit}
}

func (s *orderService) CreateOrder(ctx context.Context, req *CreateOrderRequest, actor Actor) (*model.Order, error) {
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, &ValidationError{Field: "customer_name", Reason: "is required"}
	}

	// Validate and price the cart before any write.
	lines, err := resolveLines(s.store.Products(), req.Lines)
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		CustomerName:    strings.TrimSpace(req.CustomerName),
		CustomerPhone:   req.CustomerPhone,
		CustomerEmail:   req.CustomerEmail,
		CustomerAddress: req.CustomerAddress,
		Status:          model.OrderStatusPending,
		Notes:           req.Notes,
	}
	order.CreatedBy = actor.ID
	order.UpdatedBy = actor.ID

	total := decimal.Zero
	for _, line := range lines {
		item := model.OrderItem{
			ProductID: line.product.ID,
			Quantity:  line.quantity,
			UnitPrice: line.unitPrice,
			LineTotal: line.lineTotal,
		}
		item.CreatedBy = actor.ID
		item.UpdatedBy = actor.ID
		order.Items = append(order.Items, item)
		total = total.Add(line.lineTotal)
	}
	order.TotalAmount = total.Round(2)

	err = s.store.Atomic(ctx, func(tx repository.Store) error {
		number, err := generateNumber(orderNumberPrefix, tx.Orders().ExistsByNumber)
		if err != nil {
			return err
		}
		order.Number = number
		return tx.Orders().Create(order)
	})
	if err != nil {
		return nil, wrapStoreErr("create order", err)
	}

	s.audit.Record(actor.ID, "order:create", "order", order.ID.String(),
		fmt.Sprintf("%s total %s (%d lines)", order.Number, order.TotalAmount.StringFixed(2), len(order.Items)))

	return order, nil
}

func (s *orderService) GetAllOrders() ([]model.Order, error) {
	return s.store.Orders().FindAll()
}

func (s *orderService) GetOrderByID(id uuid.UUID) (*model.Order, error) {
	order, err := s.store.Orders().FindByID(id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, &NotFoundError{Resource: "order", ID: id.String()}
		}
		return nil, wrapStoreErr("get order", err)
	}
	return order, nil
}

func (s *orderService) GetOrderByNumber(number string) (*model.Order, error) {
	order, err := s.store.Orders().FindByNumber(number)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, &NotFoundError{Resource: "order", ID: number}
		}
		return nil, wrapStoreErr("get order", err)
	}
	return order, nil
}

// pricedLine is a cart line validated against the catalog with its price
// captured at submission time.
type pricedLine struct {
	product   *model.Product
	quantity  int
	unitPrice decimal.Decimal
	lineTotal decimal.Decimal
}

// resolveLines checks every cart line against the catalog: the cart must be
// non-empty, quantities positive, products existing and active. A line that
// fails is an error for the whole request, never silently dropped.
func resolveLines(products repository.ProductRepository, lines []LineInput) ([]pricedLine, error) {
	if len(lines) == 0 {
		return nil, &ValidationError{Field: "lines", Reason: "cart is empty"}
	}

	resolved := make([]pricedLine, 0, len(lines))
	for i, line := range lines {
		if line.Quantity <= 0 {
			return nil, &ValidationError{
				Field:  fmt.Sprintf("lines[%d].quantity", i),
				Reason: "must be a positive integer",
			}
		}
		if line.ProductID == uuid.Nil {
			return nil, &ValidationError{
				Field:  fmt.Sprintf("lines[%d].product_id", i),
				Reason: "is required",
			}
		}

		product, err := products.FindByID(line.ProductID)
		if err != nil {
			if isRecordNotFound(err) {
				return nil, &NotFoundError{Resource: "product", ID: line.ProductID.String()}
			}
			return nil, wrapStoreErr("resolve cart line", err)
		}
		if !product.IsActive() {
			return nil, &ValidationError{
				Field:  fmt.Sprintf("lines[%d].product_id", i),
				Reason: fmt.Sprintf("product %s is inactive", product.SKU),
			}
		}

		qty := decimal.NewFromInt(int64(line.Quantity))
		resolved = append(resolved, pricedLine{
			product:   product,
			quantity:  line.Quantity,
			unitPrice: product.Price,
			lineTotal: product.Price.Mul(qty).Round(2),
		})
	}
	return resolved, nil
}
