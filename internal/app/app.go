package app

import (
	"context"
	"io"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/xenking/product-lookup/internal/catalog"
	"github.com/xenking/product-lookup/internal/domain/product"
	"github.com/xenking/product-lookup/internal/lookup"
	"github.com/xenking/product-lookup/internal/storage/postgres"
)

// Telemetry provides the OpenTelemetry providers used for instrumentation.
type Telemetry interface {
	MeterProvider() metric.MeterProvider
	TracerProvider() trace.TracerProvider
}

// Run loads the catalog snapshot, builds the configured lookup and writes the
// answer for cfg.Letters to out. It is the single wiring point for the
// application.
func Run(ctx context.Context, lg *zap.Logger, m Telemetry, cfg *Config, out io.Writer) error {
	ctx = zctx.Base(ctx, lg)
	lg.Info("Initializing",
		zap.String("impl", cfg.Implementation),
		zap.String("mode", cfg.Mode),
		zap.Int("letters", cfg.Letters),
		zap.Int("max_results", cfg.MaxResults),
	)

	repo, closeRepo, err := openRepository(ctx, cfg.Catalog)
	if err != nil {
		return errors.Wrap(err, "open catalog")
	}
	defer closeRepo()

	snap, err := catalog.Load(ctx, repo)
	if err != nil {
		return errors.Wrap(err, "load catalog")
	}
	lg.Info("Catalog loaded",
		zap.Stringer("snapshot", snap.ID),
		zap.Int("products", len(snap.Products)),
	)
	if len(snap.Duplicates) > 0 {
		lg.Warn("Duplicate product codes in catalog",
			zap.Stringer("snapshot", snap.ID),
			zap.Strings("codes", snap.Duplicates),
		)
	}

	svc, err := lookup.Instrument(newLookup(lg, cfg, snap.Products), cfg.Implementation,
		m.MeterProvider(), m.TracerProvider(),
	)
	if err != nil {
		return errors.Wrap(err, "instrument lookup")
	}

	switch cfg.Mode {
	case ModeTotal:
		return writeTotal(ctx, out, svc, cfg.Letters)
	default:
		return writeEntries(ctx, out, svc, cfg.Letters)
	}
}

// openRepository returns the configured catalog source and a function
// releasing its resources.
func openRepository(ctx context.Context, cfg CatalogConfig) (product.Repository, func(), error) {
	if len(cfg.Files) > 0 {
		return catalog.NewFileRepository(cfg.Files...), func() {}, nil
	}

	pool, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open database")
	}
	return postgres.NewProductRepository(pool), pool.Close, nil
}

func newLookup(lg *zap.Logger, cfg *Config, products []product.Product) product.Lookup {
	lcfg := lookup.Config{
		MaxResults: cfg.MaxResults,
		LazyIndex:  cfg.LazyIndex,
	}
	if cfg.Implementation == ImplScan {
		return lookup.NewScanService(products, lcfg)
	}

	svc := lookup.NewIndexedService(products, lcfg)
	if !cfg.LazyIndex {
		lg.Debug("Index built", zap.Any("buckets", svc.Buckets()))
	}
	return svc
}
