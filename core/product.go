package core

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Price is a product price as supplied by the backend. Rows arrive with the
// price either as a JSON number or as a quoted string, so the raw text is kept
// and parsed on demand. Unparsable prices evaluate to zero rather than error.
type Price string

// UnmarshalJSON accepts both `"15.88"` and `15.88`.
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Price(s)
		return nil
	}
	*p = Price(data)
	return nil
}

// MarshalJSON writes the price back as a string to keep the representation
// stable across round trips.
func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(p))
}

// Decimal parses the price as a non-locale-specific decimal.
// Invalid price data is treated as zero (documented fallback, never an error).
func (p Price) Decimal() decimal.Decimal {
	d, err := decimal.NewFromString(string(p))
	if err != nil {
		return decimal.Zero
	}
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Product is a read-only catalog row supplied by the remote collection
// accessor. Optional fields default to their zero value: an empty CategoryID
// means uncategorized, an empty QuantityLabel means single units.
type Product struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Price         Price  `json:"price"`
	CategoryID    string `json:"category_id,omitempty"`
	QuantityLabel string `json:"quantity_label,omitempty"`
	Description   string `json:"description,omitempty"`
	ImageURL      string `json:"image_url,omitempty"`
	Available     bool   `json:"is_available"`
	Featured      bool   `json:"featured,omitempty"`
	StockQuantity int    `json:"stock_quantity,omitempty"`
}

// Category is a display grouping for products. Icon is an opaque display
// token the UI resolves to an asset.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

// StaticCategories returns the built-in category set used when the remote
// category collection is unavailable or not configured. Callers get a fresh
// slice each time; mutating it does not affect later calls.
func StaticCategories() []Category {
	return []Category{
		{ID: "1", Name: "Grocery", Icon: "cart"},
		{ID: "2", Name: "Restaurants", Icon: "cutlery"},
		{ID: "3", Name: "Alcohol", Icon: "wine"},
		{ID: "4", Name: "Express", Icon: "truck"},
		{ID: "5", Name: "Retail", Icon: "store"},
	}
}

// ProductIndex builds an id lookup over a product collection.
func ProductIndex(products []Product) map[string]Product {
	idx := make(map[string]Product, len(products))
	for _, p := range products {
		idx[p.ID] = p
	}
	return idx
}
