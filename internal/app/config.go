package app

import (
	"os"
	"slices"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Output modes.
const (
	ModeEntries = "entries"
	ModeTotal   = "total"
)

// Lookup implementations.
const (
	ImplScan    = "scan"
	ImplIndexed = "indexed"
)

// Config holds the complete application configuration, loadable from
// environment variables (LOOKUP_ prefix), flags, or YAML config files.
type Config struct {
	Letters        int    `default:"2" usage:"Number of leading letters a product code must have" flag:"letters"`
	Mode           string `default:"entries" usage:"Output mode: entries or total" flag:"mode"`
	Implementation string `default:"indexed" usage:"Lookup implementation: scan or indexed" flag:"impl"`
	MaxResults     int    `default:"3" usage:"Maximum number of products a single lookup may return" flag:"max-results"`
	LazyIndex      bool   `default:"false" usage:"Build the lookup index on the first query" flag:"lazy-index"`
	Catalog        CatalogConfig
}

// CatalogConfig selects where the catalog snapshot is read from. Exactly one
// source must be set.
type CatalogConfig struct {
	Files       []string `usage:"Catalog JSON files, optionally gzip-compressed (.gz)" flag:"catalog-files"`
	DatabaseURL string   `usage:"PostgreSQL connection URL (LOOKUP_CATALOG_DATABASE_URL or DATABASE_URL)" flag:"database-url"`
}

// LoadConfig loads configuration from environment variables, YAML config
// files and flags, then validates it.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "LOOKUP",
		Files:     []string{"lookup.yaml", "/etc/product-lookup/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if err := cfg.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &cfg, nil
}

// applyPlatformDefaults falls back to the conventional DATABASE_URL variable
// when no catalog source was configured explicitly.
func (c *Config) applyPlatformDefaults() {
	if c.Catalog.DatabaseURL == "" && len(c.Catalog.Files) == 0 {
		if v := os.Getenv("DATABASE_URL"); v != "" {
			c.Catalog.DatabaseURL = v
		}
	}
}

func (c *Config) validate() error {
	if c.Letters < 1 {
		return errors.Errorf("letters must be positive, got %d", c.Letters)
	}
	if !slices.Contains([]string{ModeEntries, ModeTotal}, c.Mode) {
		return errors.Errorf("unknown mode %q", c.Mode)
	}
	if !slices.Contains([]string{ImplScan, ImplIndexed}, c.Implementation) {
		return errors.Errorf("unknown implementation %q", c.Implementation)
	}
	if c.MaxResults < 1 {
		return errors.Errorf("max results must be positive, got %d", c.MaxResults)
	}

	hasFiles := len(c.Catalog.Files) > 0
	hasDB := c.Catalog.DatabaseURL != ""
	switch {
	case !hasFiles && !hasDB:
		return errors.New("catalog source is required: set catalog files or a database URL")
	case hasFiles && hasDB:
		return errors.New("catalog files and database URL are mutually exclusive")
	}
	return nil
}
