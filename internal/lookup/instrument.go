package lookup

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/xenking/product-lookup/internal/domain/product"
)

const instrumentationName = "github.com/xenking/product-lookup/internal/lookup"

const outcomeOK = "ok"

var _ product.Lookup = (*Instrumented)(nil)

// Instrumented records traces and metrics around another product.Lookup.
// Results and errors are passed through untouched.
type Instrumented struct {
	next     product.Lookup
	impl     string
	tracer   trace.Tracer
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

// Instrument wraps l. The impl name is attached to every span and data point.
func Instrument(l product.Lookup, impl string, mp metric.MeterProvider, tp trace.TracerProvider) (*Instrumented, error) {
	meter := mp.Meter(instrumentationName)

	requests, err := meter.Int64Counter("lookup.requests",
		metric.WithDescription("Number of product lookups by outcome"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create requests counter")
	}
	duration, err := meter.Float64Histogram("lookup.duration",
		metric.WithDescription("Product lookup latency"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create duration histogram")
	}

	return &Instrumented{
		next:     l,
		impl:     impl,
		tracer:   tp.Tracer(instrumentationName),
		requests: requests,
		duration: duration,
	}, nil
}

// GetEntries calls the wrapped lookup inside a span.
func (i *Instrumented) GetEntries(ctx context.Context, letterCount int) ([]product.Product, error) {
	ctx, span := i.tracer.Start(ctx, "lookup.GetEntries",
		trace.WithAttributes(
			attribute.String("lookup.impl", i.impl),
			attribute.Int("lookup.letter_count", letterCount),
		),
	)
	defer span.End()

	start := time.Now()
	entries, err := i.next.GetEntries(ctx, letterCount)
	elapsed := time.Since(start)

	outcome := outcomeOK
	if err != nil {
		outcome = product.FailureKind(err)
		if outcome == "" {
			outcome = "error"
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Int("lookup.results", len(entries)))
	}

	attrs := metric.WithAttributes(
		attribute.String("impl", i.impl),
		attribute.String("outcome", outcome),
	)
	i.requests.Add(ctx, 1, attrs)
	i.duration.Record(ctx, elapsed.Seconds(), attrs)

	return entries, err
}
