package products

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

func init() {
	// Catalog consumers expect prices as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Rating is the aggregate review score the catalog reports for a product.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product is a catalog item as served by the remote product API.
type Product struct {
	ID          int             `json:"id"`
	Title       string          `json:"title,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	Image       string          `json:"image,omitempty"`
	Rating      *Rating         `json:"rating,omitempty"`

	// priceNotNumber is set when the decoded price token was not a JSON number.
	priceNotNumber bool
}

// UnmarshalJSON decodes a product. A price token that is not a JSON number
// never counts as positive; a quoted numeric string keeps its value.
func (p *Product) UnmarshalJSON(data []byte) error {
	type plain Product
	aux := struct {
		*plain
		Price json.RawMessage `json:"price"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.Price = decimal.Decimal{}
	p.priceNotNumber = false

	raw := bytes.TrimSpace(aux.Price)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9') {
		price, err := decimal.NewFromString(string(raw))
		if err != nil {
			return err
		}
		p.Price = price
		return nil
	}
	p.priceNotNumber = true
	var quoted string
	if json.Unmarshal(raw, &quoted) == nil {
		if price, err := decimal.NewFromString(quoted); err == nil {
			p.Price = price
		}
	}
	return nil
}

// HasID reports whether the product carries a non-zero identifier.
func (p *Product) HasID() bool {
	return p != nil && p.ID != 0
}

// HasPositivePrice reports whether the product price is a number strictly
// greater than zero.
func (p *Product) HasPositivePrice() bool {
	return p != nil && !p.priceNotNumber && p.Price.GreaterThan(decimal.Zero)
}
