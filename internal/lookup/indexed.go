package lookup

import (
	"context"
	"slices"
	"sync"

	"github.com/xenking/product-lookup/internal/domain/product"
)

var _ product.Lookup = (*IndexedService)(nil)

// IndexedService groups the catalog by letter prefix length once and answers
// queries from the pre-sorted groups.
//
// The index is built in NewIndexedService, or on the first query when
// Config.LazyIndex is set. In both cases it is built exactly once and never
// modified afterwards, so concurrent queries need no locking.
type IndexedService struct {
	products []product.Product
	limit    int

	once    sync.Once
	buckets map[int][]product.Product
}

// NewIndexedService returns an IndexedService over a copy of products.
func NewIndexedService(products []product.Product, cfg Config) *IndexedService {
	s := &IndexedService{
		products: slices.Clone(products),
		limit:    cfg.maxResults(),
	}
	if !cfg.LazyIndex {
		s.once.Do(s.build)
	}
	return s
}

// build groups products by prefix length in one pass and sorts each group.
func (s *IndexedService) build() {
	buckets := make(map[int][]product.Product)
	for _, p := range s.products {
		n := p.LetterPrefixLength()
		buckets[n] = append(buckets[n], p)
	}
	for _, bucket := range buckets {
		sortByPrice(bucket)
	}
	s.buckets = buckets
	// The catalog is no longer needed once indexed.
	s.products = nil
}

func (s *IndexedService) index() map[int][]product.Product {
	s.once.Do(s.build)
	return s.buckets
}

// GetEntries returns the products whose code starts with exactly
// letterCount letters, cheapest first. The returned slice is a copy.
func (s *IndexedService) GetEntries(_ context.Context, letterCount int) ([]product.Product, error) {
	if err := checkLetterCount(letterCount); err != nil {
		return nil, err
	}

	bucket := s.index()[letterCount]
	if err := checkResultSize(letterCount, len(bucket), s.limit); err != nil {
		return nil, err
	}
	return slices.Clone(bucket), nil
}

// Buckets reports how many products share each prefix length.
func (s *IndexedService) Buckets() map[int]int {
	idx := s.index()
	sizes := make(map[int]int, len(idx))
	for n, bucket := range idx {
		sizes[n] = len(bucket)
	}
	return sizes
}
