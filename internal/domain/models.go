package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SupplierID identifies the vendor supplying a product. The catalog service
// sends it either as a JSON string or as a number; both are kept as text.
type SupplierID string

// UnmarshalJSON accepts "S1", 12 and null
func (id *SupplierID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("supplier_id: %w", err)
		}
		*id = SupplierID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("supplier_id: %w", err)
	}
	*id = SupplierID(n.String())
	return nil
}

func (id SupplierID) String() string { return string(id) }

// Product is one catalog line item
type Product struct {
	Code       string     `json:"code"`
	SupplierID SupplierID `json:"supplier_id"`
	Brand      string     `json:"brand"`
	Name       string     `json:"name"`
	Stock      float64    `json:"stock"`
	PriceEUR   *float64   `json:"price_eur,omitempty"` // nil when the supplier has no price
}

// ProductKey identifies a product within a result set. Several suppliers can
// carry the same code, so the code alone is not unique.
type ProductKey struct {
	Code       string
	SupplierID SupplierID
}

// String joins the pair as "code-supplier" for display. Compare keys as
// values, not by this text: ("A-1", "2") and ("A", "1-2") print alike.
func (k ProductKey) String() string {
	return k.Code + "-" + string(k.SupplierID)
}

// Key returns the list key of the product
func (p Product) Key() ProductKey {
	return ProductKey{Code: p.Code, SupplierID: p.SupplierID}
}

// HasPrice reports whether the product carries a price
func (p Product) HasPrice() bool {
	return p.PriceEUR != nil
}

// Price is a convenience constructor for PriceEUR values
func Price(v float64) *float64 {
	return &v
}
