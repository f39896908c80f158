package catalog

import (
	"context"
	"slices"
	"time"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/xenking/product-lookup/internal/domain/product"
)

const bloomFPR = 0.001

// Snapshot is one immutable catalog as read from a repository.
type Snapshot struct {
	ID       uuid.UUID
	Products []product.Product
	LoadedAt time.Time
	// Duplicates lists codes that occur more than once. Duplicates are legal
	// but usually point at a data problem upstream.
	Duplicates []string
}

// Load reads a snapshot from repo and validates every product.
func Load(ctx context.Context, repo product.Repository) (*Snapshot, error) {
	products, err := repo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	for i, p := range products {
		if err := p.Validate(); err != nil {
			return nil, errors.Wrapf(err, "product %d", i)
		}
	}

	return &Snapshot{
		ID:         uuid.New(),
		Products:   products,
		LoadedAt:   time.Now(),
		Duplicates: DuplicateCodes(products),
	}, nil
}

// DuplicateCodes returns, sorted, the codes shared by more than one product.
//
// A bloom filter finds candidate codes in the first pass; the second pass
// counts candidates exactly, so only codes that may repeat are tracked.
func DuplicateCodes(products []product.Product) []string {
	if len(products) < 2 {
		return nil
	}

	filter := bloom.NewWithEstimates(uint(len(products)), bloomFPR)
	candidates := make(map[string]int)
	for _, p := range products {
		if filter.TestAndAddString(p.Code) {
			candidates[p.Code] = 0
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	for _, p := range products {
		if _, ok := candidates[p.Code]; ok {
			candidates[p.Code]++
		}
	}

	var dups []string
	for code, n := range candidates {
		if n > 1 {
			dups = append(dups, code)
		}
	}
	slices.Sort(dups)
	return dups
}
