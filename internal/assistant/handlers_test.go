package assistant

import (
	"context"
	"testing"

	"taller-go/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlersPropagateTenant(t *testing.T) {
	deps := testDeps()
	deps.Products = &stubProducts{
		findByBarcode: func(ctx context.Context, companyID uint, barcode string) (*model.Product, error) {
			assert.Equal(t, uint(42), companyID)
			return &model.Product{Barcode: barcode, Name: "Spark plug"}, nil
		},
	}
	reg := newTestRegistry(t, deps)

	ctx := WithTenant(context.Background(), 42)
	out, err := reg.Invoke(ctx, ToolProductByBarcode, map[string]interface{}{"barcode": "00001146"})
	require.NoError(t, err)
	assert.Contains(t, out.Content, "Spark plug")
}

func TestLookupHandlersDeclareFinalOutput(t *testing.T) {
	deps := testDeps()
	deps.Products = &stubProducts{
		findByBarcode: func(ctx context.Context, companyID uint, barcode string) (*model.Product, error) {
			return &model.Product{Barcode: barcode, Name: "Spark plug"}, nil
		},
	}
	deps.Orders = &stubOrders{
		statusByNumber: func(ctx context.Context, companyID uint, number string) (string, error) {
			return model.OrderStatusReady, nil
		},
	}
	reg := newTestRegistry(t, deps)
	ctx := WithTenant(context.Background(), 1)

	// an HTML table lookup is final: a second model pass would only
	// paraphrase it
	out, err := reg.Invoke(ctx, ToolProductByBarcode, map[string]interface{}{"barcode": "00001146"})
	require.NoError(t, err)
	assert.True(t, out.Final)
	assert.Contains(t, out.Content, "<table")

	// the status answer is plain text and wants model phrasing
	out, err = reg.Invoke(ctx, ToolOrderStatus, map[string]interface{}{"number": "001-001-001"})
	require.NoError(t, err)
	assert.False(t, out.Final)
	assert.Contains(t, out.Content, "READY")
}

func TestSalesSummaryDefaultsToCurrentMonth(t *testing.T) {
	reg := newTestRegistry(t, testDeps())
	ctx := WithTenant(context.Background(), 1)

	out, err := reg.Invoke(ctx, "get_sales_summary", map[string]interface{}{})
	require.NoError(t, err)
	assert.Contains(t, out.Content, "2 invoices")
}

func TestCreateWorkshopOrderReportsNumber(t *testing.T) {
	reg := newTestRegistry(t, testDeps())
	ctx := WithTenant(context.Background(), 1)

	out, err := reg.Invoke(ctx, "create_workshop_order", map[string]interface{}{
		"customer_name": "García",
		"description":   "cambio de aceite",
	})
	require.NoError(t, err)
	assert.Contains(t, out.Content, "001-001-001")
	assert.Contains(t, out.Content, "García")
	assert.False(t, out.Final, "mutation confirmations want model phrasing")
}

func TestUpdateProductPriceValidatesArguments(t *testing.T) {
	reg := newTestRegistry(t, testDeps())
	ctx := WithTenant(context.Background(), 1)

	_, err := reg.Invoke(ctx, "update_product_price", map[string]interface{}{"sku": "ABC-1"})
	assert.Error(t, err)

	_, err = reg.Invoke(ctx, "update_product_price", map[string]interface{}{"sku": "ABC-1", "price": -2.0})
	assert.Error(t, err)
}

func TestUpdateProductPriceAcceptsQuotedNumber(t *testing.T) {
	deps := testDeps()
	deps.Products = &stubProducts{
		updatePrice: func(ctx context.Context, companyID uint, sku string, price float64) (*model.Product, error) {
			require.Equal(t, 49.9, price)
			return &model.Product{SKU: sku, Name: "Oil filter", Price: price}, nil
		},
	}
	reg := newTestRegistry(t, deps)
	ctx := WithTenant(context.Background(), 1)

	out, err := reg.Invoke(ctx, "update_product_price", map[string]interface{}{"sku": "FIL-01", "price": "49.9"})
	require.NoError(t, err)
	assert.Contains(t, out.Content, "FIL-01")
}
