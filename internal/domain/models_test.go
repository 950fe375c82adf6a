package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductDecodesSupplierIDVariants(t *testing.T) {
	tests := []struct {
		name string
		body string
		want SupplierID
	}{
		{name: "string", body: `{"code":"F-1","supplier_id":"S1"}`, want: "S1"},
		{name: "number", body: `{"code":"F-1","supplier_id":12}`, want: "12"},
		{name: "null", body: `{"code":"F-1","supplier_id":null}`, want: ""},
		{name: "missing", body: `{"code":"F-1"}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Product
			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))
			assert.Equal(t, tt.want, p.SupplierID)
		})
	}
}

func TestProductRejectsInvalidSupplierID(t *testing.T) {
	var p Product
	err := json.Unmarshal([]byte(`{"code":"F-1","supplier_id":{"id":1}}`), &p)
	require.Error(t, err)
}

func TestProductPriceIsOptional(t *testing.T) {
	var items []Product
	body := `[{"code":"A","supplier_id":"1","price_eur":12.5},{"code":"B","supplier_id":"1"},{"code":"C","supplier_id":"1","price_eur":null}]`
	require.NoError(t, json.Unmarshal([]byte(body), &items))
	require.Len(t, items, 3)

	require.True(t, items[0].HasPrice())
	assert.InDelta(t, 12.5, *items[0].PriceEUR, 0.0001)
	assert.False(t, items[1].HasPrice())
	assert.False(t, items[2].HasPrice())
}

func TestProductKeyCombinesCodeAndSupplier(t *testing.T) {
	a := Product{Code: "F-123", SupplierID: "S1"}
	b := Product{Code: "F-123", SupplierID: "S2"}

	assert.Equal(t, ProductKey{Code: "F-123", SupplierID: "S1"}, a.Key())
	assert.Equal(t, "F-123-S1", a.Key().String())
	assert.NotEqual(t, a.Key(), b.Key())
}

func TestProductKeyKeepsHyphenatedPairsApart(t *testing.T) {
	a := Product{Code: "A-1", SupplierID: "2"}
	b := Product{Code: "A", SupplierID: "1-2"}

	assert.Equal(t, a.Key().String(), b.Key().String())
	assert.NotEqual(t, a.Key(), b.Key())
}
