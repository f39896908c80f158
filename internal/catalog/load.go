package catalog

import (
	"context"
	"os"
	"path/filepath"
	"slices"

	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/product-lookup/internal/domain/product"
)

var _ product.Repository = (*FileRepository)(nil)

// FileRepository implements product.Repository over a fixed list of
// catalog files.
type FileRepository struct {
	paths []string
}

// NewFileRepository returns a FileRepository reading the given paths.
func NewFileRepository(paths ...string) *FileRepository {
	return &FileRepository{paths: slices.Clone(paths)}
}

// List loads every file and returns their products in path order.
func (r *FileRepository) List(ctx context.Context) ([]product.Product, error) {
	return LoadFiles(ctx, r.paths...)
}

// LoadFiles decodes the files concurrently and concatenates their products
// in argument order, so the resulting catalog order is deterministic.
func LoadFiles(ctx context.Context, paths ...string) ([]product.Product, error) {
	if len(paths) == 0 {
		return nil, errors.New("no catalog files given")
	}

	results := make([][]product.Product, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			products, err := loadFile(ctx, path)
			if err != nil {
				return errors.Wrapf(err, "load catalog file %s", path)
			}
			results[i] = products
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return slices.Concat(results...), nil
}

// loadFile opens path, transparently decompressing .gz files.
func loadFile(ctx context.Context, path string) ([]product.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open")
	}
	defer func() { _ = f.Close() }()

	if filepath.Ext(path) != ".gz" {
		return Decode(ctx, f)
	}

	gz, err := pgzip.NewReader(f)
	if err != nil {
		return nil, errors.Wrap(err, "create gzip reader")
	}
	defer func() { _ = gz.Close() }()

	return Decode(ctx, gz)
}
