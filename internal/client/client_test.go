package client

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/xenking/product-lookup/internal/domain/product"
	"github.com/xenking/product-lookup/internal/lookup"
)

// --- Mock implementations ---

type mockLookup struct {
	entries []product.Product
	err     error
	calls   []int
}

func (m *mockLookup) GetEntries(_ context.Context, letterCount int) ([]product.Product, error) {
	m.calls = append(m.calls, letterCount)
	return m.entries, m.err
}

// --- Helpers ---

func p(code, price string) product.Product {
	return product.Product{Code: code, Price: decimal.RequireFromString(price)}
}

func implementations(products []product.Product) map[string]product.Lookup {
	return map[string]product.Lookup{
		"scan":    lookup.NewScanService(products, lookup.Config{}),
		"indexed": lookup.NewIndexedService(products, lookup.Config{}),
	}
}

// --- Tests ---

func TestGetTotalPrice_NormalExecution(t *testing.T) {
	products := []product.Product{p("PP234", "2"), p("PP235", "3")}

	for name, l := range implementations(products) {
		t.Run(name, func(t *testing.T) {
			total, ok := New(l).GetTotalPrice(context.Background(), 2)

			assert.True(t, ok)
			assert.True(t, decimal.NewFromInt(5).Equal(total), "got %s", total)
		})
	}
}

func TestGetTotalPrice_ExactDecimalSum(t *testing.T) {
	products := []product.Product{p("AB1", "0.1"), p("AB2", "0.2"), p("ABC3", "100")}

	for name, l := range implementations(products) {
		t.Run(name, func(t *testing.T) {
			total, ok := New(l).GetTotalPrice(context.Background(), 2)

			assert.True(t, ok)
			assert.True(t, decimal.RequireFromString("0.3").Equal(total), "got %s", total)
		})
	}
}

func TestGetTotalPrice_LookupFailures(t *testing.T) {
	noFourLetter := []product.Product{p("PS15", "4"), p("PP636", "3.5"), p("FS235", "5")}
	tooMany := []product.Product{
		p("PS12", "1"), p("PP234", "2"), p("PS235", "5"), p("PD245", "9"),
		p("OK23", "1.5"), p("KP235", "6"), p("PW25", "2.5"), p("ZZ111", "4"),
	}

	tests := []struct {
		name        string
		products    []product.Product
		letterCount int
	}{
		{name: "no products found", products: noFourLetter, letterCount: 4},
		{name: "too many products found", products: tooMany, letterCount: 2},
		{name: "invalid letter count", products: noFourLetter, letterCount: 0},
	}

	for _, tt := range tests {
		for name, l := range implementations(tt.products) {
			t.Run(tt.name+"/"+name, func(t *testing.T) {
				total, ok := New(l).GetTotalPrice(context.Background(), tt.letterCount)

				assert.False(t, ok)
				assert.True(t, total.IsZero())
			})
		}
	}
}

func TestGetTotalPrice_SwallowsAnyError(t *testing.T) {
	m := &mockLookup{err: errors.New("unexpected")}

	total, ok := New(m).GetTotalPrice(context.Background(), 3)

	assert.False(t, ok)
	assert.True(t, total.IsZero())
	assert.Equal(t, []int{3}, m.calls)
}

func TestGetTotalPrice_ZeroPricedMatch(t *testing.T) {
	m := &mockLookup{entries: []product.Product{p("FREE1", "0")}}

	total, ok := New(m).GetTotalPrice(context.Background(), 4)

	// A valid zero total is distinguishable from a failed lookup.
	assert.True(t, ok)
	assert.True(t, total.IsZero())
}
