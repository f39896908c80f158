// Package client aggregates product lookups into price totals.
package client

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/xenking/product-lookup/internal/domain/product"
)

// Client sums the prices of looked-up products.
type Client struct {
	lookup product.Lookup
}

// New returns a Client that queries l.
func New(l product.Lookup) *Client {
	return &Client{lookup: l}
}

// GetTotalPrice returns the total price of the products whose code starts
// with exactly letterCount letters. The boolean is false when the lookup
// failed for any reason; the error itself is discarded.
func (c *Client) GetTotalPrice(ctx context.Context, letterCount int) (decimal.Decimal, bool) {
	entries, err := c.lookup.GetEntries(ctx, letterCount)
	if err != nil {
		return decimal.Zero, false
	}

	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Price)
	}
	return total, true
}
