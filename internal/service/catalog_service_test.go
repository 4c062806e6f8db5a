package service

import (
	"testing"

	"go-inventory-pos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogFixture() (*memStore, *recordingAudit, CatalogService) {
	store := newMemStore()
	audit := &recordingAudit{}
	return store, audit, NewCatalogService(store, audit, nil)
}

func TestCreateProduct(t *testing.T) {
	store, audit, catalog := newCatalogFixture()

	product := &model.Product{
		SKU:      "WID-1",
		Name:     "Widget",
		Unit:     "pcs",
		Price:    decimal.RequireFromString("10.00"),
		Quantity: 5,
		MinStock: 2,
	}
	require.NoError(t, catalog.CreateProduct(product, testActor))

	assert.Equal(t, model.ProductActive, product.Status)
	assert.Equal(t, testActor.ID, product.CreatedBy)
	assert.Contains(t, audit.actions(), "product:create")

	stored, err := catalog.GetProductByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "WID-1", stored.SKU)
	assert.Equal(t, 5, store.productQuantity(product.ID))
}

func TestCreateProduct_DuplicateSKU(t *testing.T) {
	store, _, catalog := newCatalogFixture()
	store.seedProduct(model.Product{SKU: "WID-1", Name: "Widget"})

	err := catalog.CreateProduct(&model.Product{SKU: "WID-1", Name: "Another"}, testActor)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "sku", ve.Field)
}

func TestCreateProduct_InvalidInput(t *testing.T) {
	_, _, catalog := newCatalogFixture()

	tests := []struct {
		name    string
		product model.Product
	}{
		{"missing sku", model.Product{Name: "Widget"}},
		{"missing name", model.Product{SKU: "WID-1"}},
		{"negative price", model.Product{SKU: "WID-1", Name: "Widget", Price: decimal.RequireFromString("-1.00")}},
		{"negative quantity", model.Product{SKU: "WID-1", Name: "Widget", Quantity: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := catalog.CreateProduct(&tt.product, testActor)
			var ve *ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}
}

func TestUpdateProduct_QuantityIsNeverCopied(t *testing.T) {
	store, _, catalog := newCatalogFixture()
	product := store.seedProduct(model.Product{SKU: "WID-1", Name: "Widget", Quantity: 7, Price: decimal.NewFromInt(1)})

	updated, err := catalog.UpdateProduct(product.ID, &model.Product{
		SKU:      "WID-1",
		Name:     "Widget v2",
		Price:    decimal.RequireFromString("12.00"),
		Quantity: 999, // must be ignored; only the ledger moves stock
	}, testActor)
	require.NoError(t, err)

	assert.Equal(t, "Widget v2", updated.Name)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("12.00")))
	assert.Equal(t, 7, updated.Quantity)
	assert.Equal(t, 7, store.productQuantity(product.ID))
}

func TestRetireProduct(t *testing.T) {
	store, audit, catalog := newCatalogFixture()
	product := store.seedProduct(model.Product{SKU: "WID-1", Name: "Widget", Quantity: 3})

	require.NoError(t, catalog.RetireProduct(product.ID, testActor))

	stored, err := catalog.GetProductByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ProductInactive, stored.Status)
	// the row and its stock survive retirement
	assert.Equal(t, 3, stored.Quantity)
	assert.Contains(t, audit.actions(), "product:retire")
}

func TestRetireProduct_NotFound(t *testing.T) {
	_, _, catalog := newCatalogFixture()

	err := catalog.RetireProduct(uuid.New(), testActor)
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestGetLowStockProducts(t *testing.T) {
	store, _, catalog := newCatalogFixture()
	low := store.seedProduct(model.Product{SKU: "LOW-1", Name: "Low", Quantity: 1, MinStock: 5})
	store.seedProduct(model.Product{SKU: "OK-1", Name: "Ok", Quantity: 10, MinStock: 5})
	store.seedProduct(model.Product{SKU: "OLD-1", Name: "Old", Quantity: 0, MinStock: 5, Status: model.ProductInactive})

	products, err := catalog.GetLowStockProducts()
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, low.ID, products[0].ID)
}

func TestCreateCategory_DuplicateName(t *testing.T) {
	_, _, catalog := newCatalogFixture()

	require.NoError(t, catalog.CreateCategory(&model.Category{Name: "Beverages"}, testActor))

	err := catalog.CreateCategory(&model.Category{Name: "Beverages"}, testActor)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Field)
}

func TestRetireSupplier(t *testing.T) {
	_, _, catalog := newCatalogFixture()
	supplier := &model.Supplier{Name: "Acme"}
	require.NoError(t, catalog.CreateSupplier(supplier, testActor))

	require.NoError(t, catalog.RetireSupplier(supplier.ID, testActor))

	suppliers, err := catalog.GetAllSuppliers()
	require.NoError(t, err)
	require.Len(t, suppliers, 1)
	assert.Equal(t, model.SupplierInactive, suppliers[0].Status)
}
