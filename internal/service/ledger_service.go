package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go-inventory-pos/internal/model"
	"go-inventory-pos/internal/repository"
	"go-inventory-pos/internal/ws"

	"github.com/google/uuid"
)

// StockChangeRequest describes one inventory quantity change.
//
// For "in" and "out" Quantity is the delta and must be positive. For
// "adjustment" Quantity is the counted absolute quantity (a recount may
// legitimately land on zero); the ledger entry stores the resulting delta.
type StockChangeRequest struct {
	ProductID uuid.UUID                  `json:"product_id"`
	Type      model.StockTransactionType `json:"type"`
	Quantity  int                        `json:"quantity"`
	Note      string                     `json:"note"`
}

// LedgerService is the only component allowed to mutate product quantity.
// Every change goes through a locked read-modify-write paired with an
// append-only StockTransaction row, all inside one atomic unit.
type LedgerService interface {
	// ApplyStockChange runs in its own atomic unit.
	ApplyStockChange(ctx context.Context, req *StockChangeRequest, actor Actor) (*model.StockTransaction, error)
	// ApplyStockChangeTx joins a caller-owned atomic unit. Used by the sale
	// processor so stock debits commit or roll back with the sale itself.
	// saleID, when non-nil, links the ledger entry to the sale that caused it.
	ApplyStockChangeTx(tx repository.Store, req *StockChangeRequest, actor Actor, saleID *uuid.UUID) (*model.StockTransaction, error)

	GetHistory(filter repository.StockTransactionFilter) ([]model.StockTransaction, error)
	GetTransactionByID(id uuid.UUID) (*model.StockTransaction, error)
}

type ledgerService struct {
	store repository.Store
	audit AuditSink
	wsHub *ws.Hub
}

func NewLedgerService(store repository.Store, audit AuditSink, hub *ws.Hub) LedgerService {
	return &ledgerService{store: store, audit: audit, wsHub: hub}
}

func (s *ledgerService) ApplyStockChange(ctx context.Context, req *StockChangeRequest, actor Actor) (*model.StockTransaction, error) {
	if err := validateStockChange(req); err != nil {
		return nil, err
	}

	var entry *model.StockTransaction
	err := s.store.Atomic(ctx, func(tx repository.Store) error {
		var err error
		entry, err = s.ApplyStockChangeTx(tx, req, actor, nil)
		return err
	})
	if err != nil {
		return nil, wrapStoreErr("apply stock change", err)
	}

	s.audit.Record(actor.ID, "stock:"+string(req.Type), "product", req.ProductID.String(),
		fmt.Sprintf("%d -> %d (%s)", entry.PreviousQuantity, entry.NewQuantity, req.Note))
	s.broadcastStockUpdate(entry, actor)

	return entry, nil
}

func (s *ledgerService) ApplyStockChangeTx(tx repository.Store, req *StockChangeRequest, actor Actor, saleID *uuid.UUID) (*model.StockTransaction, error) {
	if err := validateStockChange(req); err != nil {
		return nil, err
	}

	// Locked read: concurrent debits against the same product serialize here.
	product, err := tx.Products().FindByIDForUpdate(req.ProductID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, &NotFoundError{Resource: "product", ID: req.ProductID.String()}
		}
		return nil, err
	}

	previous := product.Quantity
	var newQuantity, delta int

	switch req.Type {
	case model.StockIn:
		newQuantity = previous + req.Quantity
		delta = req.Quantity
	case model.StockOut:
		if previous-req.Quantity < 0 {
			return nil, &InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Requested:   req.Quantity,
				Available:   previous,
			}
		}
		newQuantity = previous - req.Quantity
		delta = req.Quantity
	case model.StockAdjustment:
		// Recount: req.Quantity is the counted quantity, the entry stores
		// the absolute delta so new = previous ± quantity still holds.
		newQuantity = req.Quantity
		delta = newQuantity - previous
		if delta < 0 {
			delta = -delta
		}
	}

	if err := tx.Products().UpdateQuantity(product.ID, newQuantity, actor.ID); err != nil {
		return nil, err
	}

	entry := &model.StockTransaction{
		ProductID:        product.ID,
		Type:             req.Type,
		Quantity:         delta,
		PreviousQuantity: previous,
		NewQuantity:      newQuantity,
		Note:             req.Note,
		SaleID:           saleID,
	}
	entry.CreatedBy = actor.ID
	entry.UpdatedBy = actor.ID

	if err := tx.StockTransactions().Create(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *ledgerService) GetHistory(filter repository.StockTransactionFilter) ([]model.StockTransaction, error) {
	return s.store.StockTransactions().Find(filter)
}

func (s *ledgerService) GetTransactionByID(id uuid.UUID) (*model.StockTransaction, error) {
	entry, err := s.store.StockTransactions().FindByID(id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, &NotFoundError{Resource: "stock transaction", ID: id.String()}
		}
		return nil, wrapStoreErr("get stock transaction", err)
	}
	return entry, nil
}

func validateStockChange(req *StockChangeRequest) error {
	if !req.Type.Valid() {
		return &ValidationError{Field: "type", Reason: "must be one of in, out, adjustment"}
	}
	if req.ProductID == uuid.Nil {
		return &ValidationError{Field: "product_id", Reason: "is required"}
	}
	switch req.Type {
	case model.StockAdjustment:
		if req.Quantity < 0 {
			return &ValidationError{Field: "quantity", Reason: "counted quantity cannot be negative"}
		}
	default:
		if req.Quantity <= 0 {
			return &ValidationError{Field: "quantity", Reason: "must be a positive integer"}
		}
	}
	return nil
}

func (s *ledgerService) broadcastStockUpdate(entry *model.StockTransaction, actor Actor) {
	if s.wsHub == nil {
		return
	}
	go func() {
		payload := map[string]interface{}{
			"type":   "stock_update",
			"action": "ledger_entry",
			"transaction": map[string]interface{}{
				"id":           entry.ID,
				"product_id":   entry.ProductID,
				"entry_type":   entry.Type,
				"quantity":     entry.Quantity,
				"new_quantity": entry.NewQuantity,
			},
			"user": map[string]interface{}{
				"id":    actor.ID,
				"name":  actor.Name,
				"email": actor.Email,
			},
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}
