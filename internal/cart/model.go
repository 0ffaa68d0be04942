package cart

import "github.com/shopspring/decimal"

// Item is one cart line. Price is kept as a string to avoid rounding errors
// (NUMERIC in Postgres); display fields are optional and only carried so the
// storefront can render a guest cart without refetching the catalog.
type Item struct {
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Name      string `json:"name,omitempty"`
	Price     string `json:"price,omitempty"`
	Image     string `json:"image,omitempty"`
}

// Response is the cart payload returned by every cart endpoint.
type Response struct {
	Items     []Item `json:"items"`
	Subtotal  string `json:"subtotal"`
	ItemCount int    `json:"item_count"`
}

// BuildResponse computes subtotal and item count over the given lines.
// Lines without a parseable price contribute zero to the subtotal.
func BuildResponse(items []Item) *Response {
	sub := decimal.Zero
	count := 0
	for _, it := range items {
		count += it.Quantity
		p, err := decimal.NewFromString(it.Price)
		if err != nil {
			continue
		}
		sub = sub.Add(p.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	if items == nil {
		items = []Item{}
	}
	return &Response{Items: items, Subtotal: sub.String(), ItemCount: count}
}
