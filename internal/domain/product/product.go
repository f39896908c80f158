package product

import (
	"context"
	"unicode"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Validation errors for catalog entries.
var (
	ErrEmptyCode     = errors.New("product code is empty")
	ErrNegativePrice = errors.New("product price is negative")
)

// Product is an immutable catalog entry identified by its code.
type Product struct {
	Code  string
	Price decimal.Decimal
}

// New returns a validated Product.
func New(code string, price decimal.Decimal) (Product, error) {
	p := Product{Code: code, Price: price}
	if err := p.Validate(); err != nil {
		return Product{}, err
	}
	return p, nil
}

// Validate reports whether p may be part of a catalog.
func (p Product) Validate() error {
	if p.Code == "" {
		return ErrEmptyCode
	}
	if p.Price.IsNegative() {
		return errors.Wrapf(ErrNegativePrice, "product %s", p.Code)
	}
	return nil
}

// Equal reports whether both products have the same code and a numerically
// equal price, so 2 and 2.00 compare equal.
func (p Product) Equal(other Product) bool {
	return p.Code == other.Code && p.Price.Equal(other.Price)
}

// LetterPrefixLength returns the number of letters in the leading run of
// letters of the code. It is the grouping key used by lookups.
func (p Product) LetterPrefixLength() int {
	n := 0
	for _, r := range p.Code {
		if !unicode.IsLetter(r) {
			break
		}
		n++
	}
	return n
}

// Repository is a read-only source of catalog snapshots.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
}
