package service

import (
	"context"
	"testing"

	"go-inventory-pos/internal/model"
	"go-inventory-pos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testActor = Actor{ID: "user-1", Name: "Test User", Email: "test@example.com"}

func newLedgerFixture() (*memStore, *recordingAudit, LedgerService) {
	store := newMemStore()
	audit := &recordingAudit{}
	return store, audit, NewLedgerService(store, audit, nil)
}

func TestApplyStockChange_In(t *testing.T) {
	store, audit, ledger := newLedgerFixture()
	product := store.seedProduct(model.Product{SKU: "WID-1", Name: "Widget", Quantity: 10})

	entry, err := ledger.ApplyStockChange(context.Background(), &StockChangeRequest{
		ProductID: product.ID,
		Type:      model.StockIn,
		Quantity:  5,
		Note:      "restock",
	}, testActor)
	require.NoError(t, err)

	assert.Equal(t, 10, entry.PreviousQuantity)
	assert.Equal(t, 15, entry.NewQuantity)
	assert.Equal(t, 5, entry.Quantity)
	assert.Equal(t, testActor.ID, entry.CreatedBy)
	assert.Equal(t, 15, store.productQuantity(product.ID))
	assert.Contains(t, audit.actions(), "stock:in")
}

func TestApplyStockChange_Out(t *testing.T) {
	store, _, ledger := newLedgerFixture()
	product := store.seedProduct(model.Product{SKU: "WID-1", Name: "Widget", Quantity: 10})

	entry, err := ledger.ApplyStockChange(context.Background(), &StockChangeRequest{
		ProductID: product.ID,
		Type:      model.StockOut,
		Quantity:  4,
	}, testActor)
	require.NoError(t, err)

	assert.Equal(t, 10, entry.PreviousQuantity)
	assert.Equal(t, 6, entry.NewQuantity)
	assert.Equal(t, 4, entry.Quantity)
	assert.Equal(t, 6, store.productQuantity(product.ID))
}

func TestApplyStockChange_OutInsufficient(t *testing.T) {
	store, audit, ledger := newLedgerFixture()
	product := store.seedProduct(model.Product{SKU: "WID-1", Name: "Widget", Quantity: 3})

	_, err := ledger.ApplyStockChange(context.Background(), &StockChangeRequest{
		ProductID: product.ID,
		Type:      model.StockOut,
		Quantity:  5,
	}, testActor)

	var insufficient *InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 5, insufficient.Requested)
	assert.Equal(t, 3, insufficient.Available)
	assert.Equal(t, "Widget", insufficient.ProductName)

	// nothing committed
	assert.Equal(t, 3, store.productQuantity(product.ID))
	assert.Empty(t, store.ledgerEntries())
	assert.Empty(t, audit.actions())
}

func TestApplyStockChange_OutToExactlyZero(t *testing.T) {
	store, _, ledger := newLedgerFixture()
	product := store.seedProduct(model.Product{SKU: "WID-1", Name: "Widget", Quantity: 5})

	entry, err := ledger.ApplyStockChange(context.Background(), &StockChangeRequest{
		ProductID: product.ID,
		Type:      model.StockOut,
		Quantity:  5,
	}, testActor)
	require.NoError(t, err)
	assert.Equal(t, 0, entry.NewQuantity)
	assert.Equal(t, 0, store.productQuantity(product.ID))
}

func TestApplyStockChange_AdjustmentRecount(t *testing.T) {
	tests := []struct {
		name      string
		starting  int
		counted   int
		wantDelta int
	}{
		{"count up", 10, 14, 4},
		{"count down", 10, 7, 3},
		{"count to zero", 10, 0, 10},
		{"no change", 10, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _, ledger := newLedgerFixture()
			product := store.seedProduct(model.Product{SKU: "WID-1", Name: "Widget", Quantity: tt.starting})

			entry, err := ledger.ApplyStockChange(context.Background(), &StockChangeRequest{
				ProductID: product.ID,
				Type:      model.StockAdjustment,
				Quantity:  tt.counted,
				Note:      "cycle count",
			}, testActor)
			require.NoError(t, err)

			assert.Equal(t, tt.starting, entry.PreviousQuantity)
			assert.Equal(t, tt.counted, entry.NewQuantity)
			assert.Equal(t, tt.wantDelta, entry.Quantity)
			assert.Equal(t, tt.counted, store.productQuantity(product.ID))
		})
	}
}

func TestApplyStockChange_Validation(t *testing.T) {
	_, _, ledger := newLedgerFixture()

	tests := []struct {
		name string
		req  StockChangeRequest
	}{
		{"unknown type", StockChangeRequest{ProductID: uuid.New(), Type: "transfer", Quantity: 1}},
		{"missing product", StockChangeRequest{Type: model.StockIn, Quantity: 1}},
		{"zero quantity in", StockChangeRequest{ProductID: uuid.New(), Type: model.StockIn, Quantity: 0}},
		{"negative quantity out", StockChangeRequest{ProductID: uuid.New(), Type: model.StockOut, Quantity: -2}},
		{"negative recount", StockChangeRequest{ProductID: uuid.New(), Type: model.StockAdjustment, Quantity: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ledger.ApplyStockChange(context.Background(), &tt.req, testActor)
			var ve *ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}
}

func TestApplyStockChange_AdjustmentToZeroAllowed(t *testing.T) {
	store, _, ledger := newLedgerFixture()
	product := store.seedProduct(model.Product{SKU: "WID-1", Name: "Widget", Quantity: 2})

	_, err := ledger.ApplyStockChange(context.Background(), &StockChangeRequest{
		ProductID: product.ID,
		Type:      model.StockAdjustment,
		Quantity:  0,
	}, testActor)
	require.NoError(t, err)
	assert.Equal(t, 0, store.productQuantity(product.ID))
}

func TestApplyStockChange_UnknownProduct(t *testing.T) {
	_, _, ledger := newLedgerFixture()

	_, err := ledger.ApplyStockChange(context.Background(), &StockChangeRequest{
		ProductID: uuid.New(),
		Type:      model.StockIn,
		Quantity:  1,
	}, testActor)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "product", nf.Resource)
}

func TestGetHistory_Filter(t *testing.T) {
	store, _, ledger := newLedgerFixture()
	a := store.seedProduct(model.Product{SKU: "A", Name: "A", Quantity: 10, Price: decimal.NewFromInt(1)})
	b := store.seedProduct(model.Product{SKU: "B", Name: "B", Quantity: 10, Price: decimal.NewFromInt(1)})

	ctx := context.Background()
	_, err := ledger.ApplyStockChange(ctx, &StockChangeRequest{ProductID: a.ID, Type: model.StockIn, Quantity: 2}, testActor)
	require.NoError(t, err)
	_, err = ledger.ApplyStockChange(ctx, &StockChangeRequest{ProductID: a.ID, Type: model.StockOut, Quantity: 1}, testActor)
	require.NoError(t, err)
	_, err = ledger.ApplyStockChange(ctx, &StockChangeRequest{ProductID: b.ID, Type: model.StockIn, Quantity: 3}, testActor)
	require.NoError(t, err)

	all, err := ledger.GetHistory(repository.StockTransactionFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	onlyA, err := ledger.GetHistory(repository.StockTransactionFilter{ProductID: &a.ID})
	require.NoError(t, err)
	assert.Len(t, onlyA, 2)

	onlyIn, err := ledger.GetHistory(repository.StockTransactionFilter{Type: model.StockIn})
	require.NoError(t, err)
	assert.Len(t, onlyIn, 2)
}

func TestGetTransactionByID_NotFound(t *testing.T) {
	_, _, ledger := newLedgerFixture()

	_, err := ledger.GetTransactionByID(uuid.New())
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}
