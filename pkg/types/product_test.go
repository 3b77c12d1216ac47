package domain_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/jet-merchant-client/pkg/types"
)

func validProduct() domain.Product {
	return domain.Product{
		SKU:               "SKU-1",
		Title:             "Widget Deluxe",
		MultipackQuantity: 1,
		Brand:             "Acme",
		ProductCodes: []domain.ProductCode{
			{Code: "012345678905", Type: domain.CodeUPC},
		},
	}
}

func TestProduct_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*domain.Product)
		wantErr error
	}{
		{name: "valid", mutate: func(*domain.Product) {}},
		{
			name:    "title too short",
			mutate:  func(p *domain.Product) { p.Title = "Tiny" },
			wantErr: domain.ErrOutOfRange,
		},
		{
			name:    "title too long",
			mutate:  func(p *domain.Product) { p.Title = strings.Repeat("x", 501) },
			wantErr: domain.ErrOutOfRange,
		},
		{
			name:    "brand too long",
			mutate:  func(p *domain.Product) { p.Brand = strings.Repeat("b", 51) },
			wantErr: domain.ErrOutOfRange,
		},
		{
			name:    "empty bullet",
			mutate:  func(p *domain.Product) { p.Bullets = []string{"ok", ""} },
			wantErr: domain.ErrOutOfRange,
		},
		{
			name: "bad product code",
			mutate: func(p *domain.Product) {
				p.ProductCodes = append(p.ProductCodes, domain.ProductCode{Code: "123", Type: domain.CodeEAN})
			},
			wantErr: domain.ErrInvalidProductCode,
		},
		{
			name:    "negative multipack",
			mutate:  func(p *domain.Product) { p.MultipackQuantity = -1 },
			wantErr: domain.ErrOutOfRange,
		},
		{
			name:    "unknown map type",
			mutate:  func(p *domain.Product) { p.MAPImplementation = "999" },
			wantErr: domain.ErrInvalidEnum,
		},
		{
			name:    "unknown tax code",
			mutate:  func(p *domain.Product) { p.TaxCode = "Yachts" },
			wantErr: domain.ErrInvalidEnum,
		},
		{
			name:   "multibyte title counts runes",
			mutate: func(p *domain.Product) { p.Title = "ÜÜÜÜÜ" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := validProduct()
			tt.mutate(&p)

			err := p.Validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestProduct_ValidateReportsAllViolations(t *testing.T) {
	t.Parallel()

	p := validProduct()
	p.Title = ""
	p.MultipackQuantity = -2
	p.TaxCode = "Yachts"

	err := p.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrOutOfRange)
	assert.ErrorIs(t, err, domain.ErrInvalidEnum)
	assert.Contains(t, err.Error(), "product_title")
	assert.Contains(t, err.Error(), "multipack_quantity")
}

func TestProduct_MarshalJSON(t *testing.T) {
	t.Parallel()

	p := validProduct()
	p.MSRP = 19.999
	p.ShippingWeightPounds = 1.234
	p.FulfillmentTime = -3
	p.Bullets = []string{"1", "2", "3", "4", "5", "6"}
	p.CPSIAStatements = []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	p.Status = domain.StatusAvailable
	p.JetRetailSKU = "JET-1"
	p.SKULastUpdate = domain.NewTimestamp(time.Now())

	b, err := json.Marshal(p)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))

	assert.InDelta(t, 20.0, out["msrp"], 1e-9)
	assert.InDelta(t, 1.23, out["shipping_weight_pounds"], 1e-9)
	assert.NotContains(t, out, "fulfillment_time")
	assert.Equal(t, "101", out["map_implementation"])
	assert.Len(t, out["bullets"], 5)
	assert.Len(t, out["cpsia_cautionary_statements"], 7)

	for _, readOnly := range []string{"merchant_sku", "jet_retail_sku", "status", "sku_last_update"} {
		assert.NotContains(t, out, readOnly)
	}

	// The caller's value is untouched.
	assert.Len(t, p.Bullets, 6)
	assert.Equal(t, "SKU-1", p.SKU)
}

func TestProduct_UnmarshalReadOnlyFields(t *testing.T) {
	t.Parallel()

	var p domain.Product
	err := json.Unmarshal([]byte(`{
		"product_title": "Widget Deluxe",
		"merchant_sku": "SKU-1",
		"jet_retail_sku": "JET-1",
		"status": "Archived",
		"sub_status": ["Missing Image"],
		"sku_last_update": "2024-03-05T14:30:00.0000000-0500"
	}`), &p)
	require.NoError(t, err)

	assert.Equal(t, "SKU-1", p.SKU)
	assert.Equal(t, "JET-1", p.JetRetailSKU)
	assert.Equal(t, domain.StatusArchived, p.Status)
	assert.Equal(t, []string{"Missing Image"}, p.SubStatus)
	require.NotNil(t, p.SKULastUpdate)
	assert.Equal(t, 2024, p.SKULastUpdate.Year())
}

func TestProduct_ResolveSKU(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		product domain.Product
		want    string
		wantErr bool
	}{
		{
			name:    "explicit sku",
			product: domain.Product{SKU: "SKU-1"},
			want:    "SKU-1",
		},
		{
			name: "prefers upc over isbn",
			product: domain.Product{ProductCodes: []domain.ProductCode{
				{Code: "0306406152", Type: domain.CodeISBN10},
				{Code: "012345678905", Type: domain.CodeUPC},
			}},
			want: "012345678905",
		},
		{
			name:    "nothing to use",
			product: domain.Product{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.product.ResolveSKU()
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrNoSKUFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
