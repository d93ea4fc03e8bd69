// Package di wires the application together behind a dig container.
package di

import (
	"fmt"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/codezworl/spamshield/internal/catalog"
	"github.com/codezworl/spamshield/internal/config"
	"github.com/codezworl/spamshield/internal/core"
	"github.com/codezworl/spamshield/internal/engine"
	"github.com/codezworl/spamshield/internal/factory"
	"github.com/codezworl/spamshield/internal/logging"
	"github.com/codezworl/spamshield/internal/textutil"
	"github.com/codezworl/spamshield/internal/whitelist"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewCatalogFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewEngineFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewFrontendFactory); err != nil {
		return nil, err
	}

	// Register rule catalog
	if err := container.Provide(func(f *factory.CatalogFactory) (*catalog.Catalog, error) {
		return f.CreateCatalog()
	}); err != nil {
		return nil, err
	}

	// Register scoring engine and bind it to the analyzer port
	if err := container.Provide(func(f *factory.EngineFactory, cat *catalog.Catalog) (*engine.Engine, error) {
		return f.CreateEngine(cat)
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(e *engine.Engine) core.TextAnalyzer {
		return e
	}); err != nil {
		return nil, err
	}

	// Register verdict cache
	if err := container.Provide(func(f *factory.CacheFactory) (core.VerdictCache, error) {
		return f.CreateVerdictCache()
	}); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *textutil.Processor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register whitelist checker
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) *whitelist.Checker {
		return whitelist.NewChecker(cfg.GetSMTP().WhitelistedDomains, logger)
	}); err != nil {
		return nil, err
	}

	// Register checker service
	if err := container.Provide(func(
		cfg *config.Config,
		logger *zap.Logger,
		analyzer core.TextAnalyzer,
		cache core.VerdictCache,
		cf *factory.CacheFactory,
	) (*core.CheckerService, error) {
		ttl, err := cf.GetCacheTTL()
		if err != nil {
			return nil, fmt.Errorf("invalid cache TTL: %w", err)
		}
		apiCfg := cfg.GetHTTP()
		return core.NewCheckerService(
			analyzer,
			cache,
			logger,
			cf.IsCacheEnabled(),
			ttl,
			apiCfg.MinTextLength,
			apiCfg.MaxTextLength,
		), nil
	}); err != nil {
		return nil, err
	}

	// Register frontend
	if err := container.Provide(func(f *factory.FrontendFactory) (core.Frontend, error) {
		return f.CreateFrontend()
	}); err != nil {
		return nil, err
	}

	return container, nil
}
