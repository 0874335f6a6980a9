// Package lexend is the entry point for embedding the onboarding wizards:
// it re-exports the wizard types and assembles the HTTP handler the lexend
// command serves.
package lexend

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/Ayflow350/lexend-jobs/internal/config"
	"github.com/Ayflow350/lexend-jobs/internal/server"
	"github.com/Ayflow350/lexend-jobs/internal/session"
	"github.com/Ayflow350/lexend-jobs/pkg/catalog"
	"github.com/Ayflow350/lexend-jobs/pkg/flow"
)

// Wizard is the surface shared by the freelancer and company controllers.
type Wizard = flow.Wizard

// Kind names a wizard.
type Kind = flow.Kind

// Receipt acknowledges a submission.
type Receipt = flow.Receipt

// Option configures a wizard controller.
type Option = flow.Option

// Config aliases the server configuration so embedders can start from
// DefaultConfig or LoadConfig.
type Config = config.Config

const (
	KindFreelancer = flow.KindFreelancer
	KindCompany    = flow.KindCompany
)

// NewWizard builds the controller for kind.
func NewWizard(kind Kind, opts ...Option) (Wizard, error) {
	return flow.New(kind, opts...)
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return config.Default()
}

// LoadConfig reads settings from path, a .env file and LEXEND_* variables.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}

// Handler assembles the wizard API and pages on top of an in-memory session
// registry using the embedded catalog. The returned close func stops session
// expiry and must be called once the handler is no longer served.
func Handler(cfg *Config, logger *zap.Logger) (http.Handler, func() error, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	cat, err := catalog.Default()
	if err != nil {
		return nil, nil, fmt.Errorf("lexend: catalog: %w", err)
	}

	registry := session.NewRegistry(
		session.FlowFactory(flow.WithLogger(logger), flow.WithDefaultCategory(cat.DefaultCategory())),
		session.WithTTL(cfg.Sessions.TTL.Std()),
		session.WithSweepInterval(cfg.Sessions.Sweep.Std()),
		session.WithLogger(logger),
	)
	srv, err := server.New(cfg.Server, registry, server.WithLogger(logger), server.WithCatalog(cat))
	if err != nil {
		_ = registry.Close()
		return nil, nil, err
	}
	return srv.Handler(), registry.Close, nil
}
