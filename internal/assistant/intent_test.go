package assistant

import (
	"context"
	"testing"

	"taller-go/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyProductToken(t *testing.T) {
	tests := []struct {
		token    string
		wantTool string
		wantKey  string
	}{
		{"00001146", ToolProductByBarcode, "barcode"},
		{"7861042710015", ToolProductByBarcode, "barcode"},
		{"ABC-123.1", ToolProductBySKU, "sku"},
		{"B42", ToolProductBySKU, "sku"},
		// seven digits is too short for a barcode but still a valid code
		{"1234567", ToolProductBySKU, "sku"},
		{"aceite§motor", ToolProductsByName, "names"},
		// plain words are not code-shaped, they go to the name search
		{"aceite", ToolProductsByName, "names"},
		{"filtro", ToolProductsByName, "names"},
	}
	for _, tc := range tests {
		tool, args := classifyProductToken(tc.token)
		assert.Equal(t, tc.wantTool, tool, "token %q", tc.token)
		assert.Contains(t, args, tc.wantKey, "token %q", tc.token)
	}
}

func TestExtractProductToken(t *testing.T) {
	tests := []struct {
		text  string
		want  string
		found bool
	}{
		{"producto 00001146", "00001146", true},
		{"dame el producto ABC-123.1 por favor", "ABC-123.1", true},
		{"¿Producto \"00001146\"?", "00001146", true},
		{"productos B42", "B42", true},
		{"cuantos productos hay", "hay", true},
		{"producto", "", false},
		{"hola buenas tardes", "", false},
		{"", "", false},
	}
	for _, tc := range tests {
		got, ok := extractProductToken(tc.text)
		assert.Equal(t, tc.found, ok, "text %q", tc.text)
		if tc.found {
			assert.Equal(t, tc.want, got, "text %q", tc.text)
		}
	}
}

func TestMatchDirectIntentBarcodeHit(t *testing.T) {
	deps := testDeps()
	deps.Products = &stubProducts{
		findByBarcode: func(ctx context.Context, companyID uint, barcode string) (*model.Product, error) {
			require.Equal(t, "00001146", barcode)
			return &model.Product{SKU: "FIL-01", Barcode: barcode, Name: "Oil filter", Price: 9.5, Stock: 4}, nil
		},
	}
	reg := newTestRegistry(t, deps)

	content, ok := MatchDirectIntent(context.Background(), reg, "producto 00001146")
	require.True(t, ok)
	assert.Contains(t, content, "<table")
	assert.Contains(t, content, "Oil filter")
}

func TestMatchDirectIntentMissesFallThrough(t *testing.T) {
	reg := newTestRegistry(t, testDeps())

	// lookup fails inside the handler: the matcher must report no match so
	// the caller falls through to the model path
	content, ok := MatchDirectIntent(context.Background(), reg, "producto 00001146")
	assert.False(t, ok)
	assert.Empty(t, content)

	// no cue word at all
	_, ok = MatchDirectIntent(context.Background(), reg, "resumen de ventas del mes")
	assert.False(t, ok)
}

func TestMatchDirectIntentIsIdempotent(t *testing.T) {
	calls := 0
	deps := testDeps()
	deps.Products = &stubProducts{
		findBySKU: func(ctx context.Context, companyID uint, sku string) (*model.Product, error) {
			calls++
			return &model.Product{SKU: sku, Name: "Brake pad"}, nil
		},
	}
	reg := newTestRegistry(t, deps)

	first, ok1 := MatchDirectIntent(context.Background(), reg, "producto ABC-123.1")
	second, ok2 := MatchDirectIntent(context.Background(), reg, "producto ABC-123.1")
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, calls)
}
