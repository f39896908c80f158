//go:build integration

package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/xenking/product-lookup/internal/client"
	"github.com/xenking/product-lookup/internal/domain/product"
	"github.com/xenking/product-lookup/internal/lookup"
)

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:17-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "lookup",
				"POSTGRES_PASSWORD": "lookup",
				"POSTGRES_DB":       "lookup",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://lookup:lookup@%s:%s/lookup?sslmode=disable", host, port.Port())
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	pool, err := Open(ctx, startPostgres(t))
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	got, err := NewProductRepository(pool).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = Open(ctx, "postgres://lookup:lookup@%zz/lookup")
	require.Error(t, err)
}

func TestProductRepository_List(t *testing.T) {
	ctx := context.Background()

	pool, err := NewPool(ctx, startPostgres(t))
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, RunMigrations(ctx, pool))
	// Migrations are idempotent.
	require.NoError(t, RunMigrations(ctx, pool))

	repo := NewProductRepository(pool)

	got, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = pool.Exec(ctx, `INSERT INTO products (code, price) VALUES
		('PS15', 4), ('PP636', 3.50), ('FS235', 5), ('ABCD1', 0.99)`)
	require.NoError(t, err)

	got, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, "PS15", got[0].Code)
	assert.True(t, decimal.RequireFromString("3.5").Equal(got[1].Price))

	for _, svc := range []product.Lookup{
		lookup.NewScanService(got, lookup.Config{}),
		lookup.NewIndexedService(got, lookup.Config{}),
	} {
		entries, err := svc.GetEntries(ctx, 2)
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, "PP636", entries[0].Code)

		total, ok := client.New(svc).GetTotalPrice(ctx, 2)
		require.True(t, ok)
		assert.True(t, decimal.RequireFromString("12.5").Equal(total), "got %s", total)

		_, ok = client.New(svc).GetTotalPrice(ctx, 3)
		assert.False(t, ok)
	}
}
