package product

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
)

// Lookup finds the products whose code starts with exactly letterCount
// letters. Results are sorted by ascending price.
//
// Implementations return *NoProductsFoundError when nothing matches and
// *TooManyProductsFoundError when the match count exceeds their result
// limit. Both satisfy errors.Is(err, ErrLookupFailed).
type Lookup interface {
	GetEntries(ctx context.Context, letterCount int) ([]Product, error)
}

var (
	// ErrLookupFailed is the family of result-size violations. It never wraps
	// a transient fault: retrying with the same argument fails the same way.
	ErrLookupFailed = errors.New("product lookup failed")
	// ErrInvalidLetterCount is returned for a letter count below one.
	ErrInvalidLetterCount = errors.New("letter count must be positive")
)

// NoProductsFoundError indicates that no product has the requested prefix length.
type NoProductsFoundError struct {
	LetterCount int
}

func (e *NoProductsFoundError) Error() string {
	return fmt.Sprintf("no products found with %d-letter prefix", e.LetterCount)
}

// Is makes the error match ErrLookupFailed.
func (e *NoProductsFoundError) Is(target error) bool {
	return target == ErrLookupFailed
}

// TooManyProductsFoundError indicates that more products matched than a
// single lookup may return.
type TooManyProductsFoundError struct {
	LetterCount int
	Found       int
	Max         int
}

func (e *TooManyProductsFoundError) Error() string {
	return fmt.Sprintf("found %d products with %d-letter prefix, at most %d allowed",
		e.Found, e.LetterCount, e.Max)
}

// Is makes the error match ErrLookupFailed.
func (e *TooManyProductsFoundError) Is(target error) bool {
	return target == ErrLookupFailed
}

// Failure kinds reported by FailureKind.
const (
	KindNoProducts         = "no_products"
	KindTooManyProducts    = "too_many_products"
	KindInvalidLetterCount = "invalid_letter_count"
)

// FailureKind returns a short label for a lookup error, or an empty string
// for nil and unrelated errors.
func FailureKind(err error) string {
	var (
		noProducts *NoProductsFoundError
		tooMany    *TooManyProductsFoundError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &noProducts):
		return KindNoProducts
	case errors.As(err, &tooMany):
		return KindTooManyProducts
	case errors.Is(err, ErrInvalidLetterCount):
		return KindInvalidLetterCount
	default:
		return ""
	}
}
