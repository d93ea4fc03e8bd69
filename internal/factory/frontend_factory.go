package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/codezworl/spamshield/internal/adapters/httpapi"
	"github.com/codezworl/spamshield/internal/adapters/smtpproxy"
	"github.com/codezworl/spamshield/internal/catalog"
	"github.com/codezworl/spamshield/internal/config"
	"github.com/codezworl/spamshield/internal/core"
	"github.com/codezworl/spamshield/internal/textutil"
	"github.com/codezworl/spamshield/internal/whitelist"
)

// FrontendFactory creates serving frontends based on configuration
type FrontendFactory struct {
	cfg      *config.Config
	logger   *zap.Logger
	checker  *core.CheckerService
	catalog  *catalog.Catalog
	wl       *whitelist.Checker
	textproc *textutil.Processor
}

// NewFrontendFactory creates a new frontend factory
func NewFrontendFactory(
	cfg *config.Config,
	logger *zap.Logger,
	checker *core.CheckerService,
	cat *catalog.Catalog,
	wl *whitelist.Checker,
	textproc *textutil.Processor,
) *FrontendFactory {
	return &FrontendFactory{
		cfg:      cfg,
		logger:   logger,
		checker:  checker,
		catalog:  cat,
		wl:       wl,
		textproc: textproc,
	}
}

// CreateFrontend creates a frontend based on the configured server mode
func (f *FrontendFactory) CreateFrontend() (core.Frontend, error) {
	mode := f.cfg.GetString("server.mode")

	switch mode {
	case "http":
		return httpapi.NewServer(f.cfg.GetHTTP(), f.checker, f.catalog, f.logger), nil
	case "smtp":
		return smtpproxy.NewProxy(f.checker, f.wl, f.textproc, f.logger, f.cfg.GetSMTP()), nil
	default:
		return nil, fmt.Errorf("unsupported server mode: %s", mode)
	}
}
