// Package catalog loads product catalog snapshots from JSON files.
//
// A catalog file holds a JSON array of objects:
//
//	[{"code": "PP234", "price": 2.5}, {"code": "PP235", "price": "1.00"}]
//
// Prices may be JSON numbers or numeric strings. Unknown fields are ignored.
// Files with a .gz extension are gzip-compressed.
package catalog

import (
	"context"
	"io"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/xenking/product-lookup/internal/domain/product"
)

const readBufferSize = 64 * 1024

// ErrMissingPrice is returned for catalog entries without a price field.
var ErrMissingPrice = errors.New("price is missing")

// Decode reads a catalog from r. Every entry is validated; the first invalid
// entry aborts decoding.
func Decode(ctx context.Context, r io.Reader) ([]product.Product, error) {
	var products []product.Product

	d := jx.Decode(r, readBufferSize)
	err := d.Arr(func(d *jx.Decoder) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		p, err := decodeProduct(d)
		if err != nil {
			return errors.Wrapf(err, "entry %d", len(products))
		}
		if err := p.Validate(); err != nil {
			return errors.Wrapf(err, "entry %d", len(products))
		}
		products = append(products, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

func decodeProduct(d *jx.Decoder) (product.Product, error) {
	var (
		p        product.Product
		hasPrice bool
	)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "code":
			code, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "code")
			}
			p.Code = code
		case "price":
			price, err := decodePrice(d)
			if err != nil {
				return errors.Wrap(err, "price")
			}
			p.Price = price
			hasPrice = true
		default:
			return d.Skip()
		}
		return nil
	})
	if err != nil {
		return product.Product{}, err
	}
	if !hasPrice {
		return product.Product{}, errors.Wrapf(ErrMissingPrice, "product %q", p.Code)
	}
	return p, nil
}

func decodePrice(d *jx.Decoder) (decimal.Decimal, error) {
	var raw string
	switch d.Next() {
	case jx.String:
		s, err := d.Str()
		if err != nil {
			return decimal.Decimal{}, err
		}
		raw = s
	case jx.Number:
		n, err := d.Num()
		if err != nil {
			return decimal.Decimal{}, err
		}
		raw = n.String()
	default:
		return decimal.Decimal{}, errors.Errorf("unexpected type %s", d.Next())
	}
	return decimal.NewFromString(raw)
}
