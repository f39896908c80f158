package lookup

import (
	"context"
	"slices"

	"github.com/xenking/product-lookup/internal/domain/product"
)

var _ product.Lookup = (*ScanService)(nil)

// ScanService answers every query with a full pass over the catalog.
// Construction is free; each call costs O(catalog size).
type ScanService struct {
	products []product.Product
	limit    int
}

// NewScanService returns a ScanService over a copy of products.
func NewScanService(products []product.Product, cfg Config) *ScanService {
	return &ScanService{
		products: slices.Clone(products),
		limit:    cfg.maxResults(),
	}
}

// GetEntries returns the products whose code starts with exactly
// letterCount letters, cheapest first.
func (s *ScanService) GetEntries(_ context.Context, letterCount int) ([]product.Product, error) {
	if err := checkLetterCount(letterCount); err != nil {
		return nil, err
	}

	var matched []product.Product
	for _, p := range s.products {
		if p.LetterPrefixLength() == letterCount {
			matched = append(matched, p)
		}
	}

	if err := checkResultSize(letterCount, len(matched), s.limit); err != nil {
		return nil, err
	}
	sortByPrice(matched)
	return matched, nil
}
