package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/codezworl/spamshield/internal/catalog"
	"github.com/codezworl/spamshield/internal/config"
)

// CatalogFactory creates rule catalogs based on configuration
type CatalogFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewCatalogFactory creates a new catalog factory
func NewCatalogFactory(cfg *config.Config, logger *zap.Logger) *CatalogFactory {
	return &CatalogFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateCatalog loads the catalog from the configured path, or falls
// back to the built-in rule set when no path is set. A catalog that
// fails to load is fatal; the service must not start with a partial
// rule set.
func (f *CatalogFactory) CreateCatalog() (*catalog.Catalog, error) {
	path := f.cfg.GetString("catalog.path")
	if path == "" {
		cat := catalog.Builtin()
		f.logger.Info("Using built-in rule catalog",
			zap.String("version", cat.Version()),
			zap.Int("rules", cat.Len()))
		return cat, nil
	}

	cat, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load rule catalog: %w", err)
	}
	f.logger.Info("Loaded rule catalog",
		zap.String("path", path),
		zap.String("version", cat.Version()),
		zap.Int("rules", cat.Len()))
	return cat, nil
}
