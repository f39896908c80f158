// Package lookup implements product.Lookup over an in-memory catalog
// snapshot, either by scanning the whole catalog on every call or through an
// index built once per snapshot.
package lookup

import (
	"slices"

	"github.com/xenking/product-lookup/internal/domain/product"
)

// DefaultMaxResults is the largest number of products a lookup returns when
// Config.MaxResults is not set.
const DefaultMaxResults = 3

// Config controls lookup behaviour shared by all implementations.
type Config struct {
	// MaxResults bounds the number of products returned by one call.
	// Values below one select DefaultMaxResults.
	MaxResults int
	// LazyIndex defers building the index until the first query.
	// Only IndexedService uses it.
	LazyIndex bool
}

func (c Config) maxResults() int {
	if c.MaxResults < 1 {
		return DefaultMaxResults
	}
	return c.MaxResults
}

// checkLetterCount rejects arguments no product can match.
func checkLetterCount(letterCount int) error {
	if letterCount < 1 {
		return product.ErrInvalidLetterCount
	}
	return nil
}

// checkResultSize applies the result-size policy to a match count.
func checkResultSize(letterCount, found, limit int) error {
	switch {
	case found == 0:
		return &product.NoProductsFoundError{LetterCount: letterCount}
	case found > limit:
		return &product.TooManyProductsFoundError{
			LetterCount: letterCount,
			Found:       found,
			Max:         limit,
		}
	default:
		return nil
	}
}

// sortByPrice orders products by ascending price. Equal prices keep their
// catalog order so every implementation returns the same sequence.
func sortByPrice(products []product.Product) {
	slices.SortStableFunc(products, func(a, b product.Product) int {
		return a.Price.Cmp(b.Price)
	})
}
