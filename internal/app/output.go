package app

import (
	"context"
	"io"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/product-lookup/internal/client"
	"github.com/xenking/product-lookup/internal/domain/product"
)

// writeEntries writes the matching products, or the lookup failure, as a
// single JSON document. Result-size failures are an answer, not an error.
func writeEntries(ctx context.Context, out io.Writer, l product.Lookup, letters int) error {
	entries, err := l.GetEntries(ctx, letters)
	if err != nil && !errors.Is(err, product.ErrLookupFailed) {
		return errors.Wrap(err, "get entries")
	}

	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("letters")
	e.Int(letters)
	if err != nil {
		zctx.From(ctx).Warn("Lookup failed",
			zap.Int("letters", letters),
			zap.String("kind", product.FailureKind(err)),
			zap.Error(err),
		)
		e.FieldStart("error")
		e.ObjStart()
		e.FieldStart("kind")
		e.Str(product.FailureKind(err))
		e.FieldStart("message")
		e.Str(err.Error())
		e.ObjEnd()
	} else {
		e.FieldStart("entries")
		e.ArrStart()
		for _, p := range entries {
			e.ObjStart()
			e.FieldStart("code")
			e.Str(p.Code)
			e.FieldStart("price")
			e.Str(p.Price.String())
			e.ObjEnd()
		}
		e.ArrEnd()
	}
	e.ObjEnd()

	return write(out, &e)
}

// writeTotal writes the client total; a failed lookup yields a null total.
func writeTotal(ctx context.Context, out io.Writer, l product.Lookup, letters int) error {
	total, ok := client.New(l).GetTotalPrice(ctx, letters)

	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("letters")
	e.Int(letters)
	e.FieldStart("total")
	if ok {
		e.Str(total.String())
	} else {
		e.Null()
	}
	e.ObjEnd()

	return write(out, &e)
}

func write(out io.Writer, e *jx.Encoder) error {
	buf := append(e.Bytes(), '\n')
	if _, err := out.Write(buf); err != nil {
		return errors.Wrap(err, "write output")
	}
	return nil
}
