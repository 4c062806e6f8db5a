package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go-inventory-pos/internal/model"
	"go-inventory-pos/internal/repository"
	"go-inventory-pos/internal/ws"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateSaleRequest struct {
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	Discount      decimal.Decimal `json:"discount"`
	Tax           decimal.Decimal `json:"tax"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes"`
	Lines         []LineInput     `json:"lines"`
}

// SaleService is the point-of-sale processor. A sale is an order that also
// debits inventory: header, line items, per-line ledger entries and the
// quantity decrements commit or roll back as one unit.
type SaleService interface {
	CreateSale(ctx context.Context, req *CreateSaleRequest, actor Actor) (*model.Sale, error)
	GetAllSales() ([]model.Sale, error)
	GetSaleByID(id uuid.UUID) (*model.Sale, error)
	GetSaleByNumber(number string) (*model.Sale, error)
}

type saleService struct {
	store  repository.Store
	ledger LedgerService
	audit  AuditSink
	wsHub  *ws.Hub
}

func NewSaleService(store repository.Store, ledger LedgerService, audit AuditSink, hub *ws.Hub) SaleService {
	return &saleService{store: store, ledger: ledger, audit: audit, wsHub: hub}
}

func (s *saleService) CreateSale(ctx context.Context, req *CreateSaleRequest, actor Actor) (*model.Sale, error) {
	if req.Discount.IsNegative() {
		return nil, &ValidationError{Field: "discount", Reason: "cannot be negative"}
	}
	if req.Tax.IsNegative() {
		return nil, &ValidationError{Field: "tax", Reason: "cannot be negative"}
	}

	lines, err := resolveLines(s.store.Products(), req.Lines)
	if err != nil {
		return nil, err
	}

	// Pre-transaction sufficiency check so obviously doomed requests fail
	// before any write. The ledger writer re-checks under lock inside the
	// atomic unit; this read alone cannot be trusted under concurrency.
	for _, line := range lines {
		if line.quantity > line.product.Quantity {
			return nil, &InsufficientStockError{
				ProductID:   line.product.ID,
				ProductName: line.product.Name,
				Requested:   line.quantity,
				Available:   line.product.Quantity,
			}
		}
	}

	sale := &model.Sale{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Discount:      req.Discount.Round(2),
		Tax:           req.Tax.Round(2),
		PaymentMethod: req.PaymentMethod,
		Status:        model.SaleStatusCompleted,
		Notes:         req.Notes,
	}
	sale.CreatedBy = actor.ID
	sale.UpdatedBy = actor.ID

	subtotal := decimal.Zero
	for _, line := range lines {
		item := model.SaleItem{
			ProductID: line.product.ID,
			Quantity:  line.quantity,
			UnitPrice: line.unitPrice,
			LineTotal: line.lineTotal,
		}
		item.CreatedBy = actor.ID
		item.UpdatedBy = actor.ID
		sale.Items = append(sale.Items, item)
		subtotal = subtotal.Add(line.lineTotal)
	}
	sale.TotalAmount = subtotal.Round(2)
	// Discount is deliberately not capped at the subtotal; the recorded
	// final amount is whatever the caller's figures produce.
	sale.FinalAmount = subtotal.Sub(sale.Discount).Add(sale.Tax).Round(2)

	err = s.store.Atomic(ctx, func(tx repository.Store) error {
		number, err := generateNumber(saleNumberPrefix, tx.Sales().ExistsByNumber)
		if err != nil {
			return err
		}
		sale.Number = number

		if err := tx.Sales().Create(sale); err != nil {
			return err
		}

		// One "out" ledger entry and quantity decrement per line, inside
		// this same unit. Any failure rolls back the header and items too.
		for _, line := range lines {
			change := &StockChangeRequest{
				ProductID: line.product.ID,
				Type:      model.StockOut,
				Quantity:  line.quantity,
				Note:      "sale " + sale.Number,
			}
			if _, err := s.ledger.ApplyStockChangeTx(tx, change, actor, &sale.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, wrapStoreErr("create sale", err)
	}

	s.audit.Record(actor.ID, "sale:create", "sale", sale.ID.String(),
		fmt.Sprintf("%s final %s (%d lines)", sale.Number, sale.FinalAmount.StringFixed(2), len(sale.Items)))
	s.broadcastSale(sale, actor)

	return sale, nil
}

func (s *saleService) GetAllSales() ([]model.Sale, error) {
	return s.store.Sales().FindAll()
}

func (s *saleService) GetSaleByID(id uuid.UUID) (*model.Sale, error) {
	sale, err := s.store.Sales().FindByID(id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, &NotFoundError{Resource: "sale", ID: id.String()}
		}
		return nil, wrapStoreErr("get sale", err)
	}
	return sale, nil
}

func (s *saleService) GetSaleByNumber(number string) (*model.Sale, error) {
	sale, err := s.store.Sales().FindByNumber(number)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, &NotFoundError{Resource: "sale", ID: number}
		}
		return nil, wrapStoreErr("get sale", err)
	}
	return sale, nil
}

func (s *saleService) broadcastSale(sale *model.Sale, actor Actor) {
	if s.wsHub == nil {
		return
	}
	go func() {
		payload := map[string]interface{}{
			"type":   "stock_update",
			"action": "sale_created",
			"sale": map[string]interface{}{
				"id":           sale.ID,
				"number":       sale.Number,
				"final_amount": sale.FinalAmount,
				"lines":        len(sale.Items),
			},
			"user": map[string]interface{}{
				"id":    actor.ID,
				"name":  actor.Name,
				"email": actor.Email,
			},
			"message": fmt.Sprintf("%s completed sale %s", actor.Name, sale.Number),
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}
