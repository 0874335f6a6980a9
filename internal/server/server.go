// Package server exposes the onboarding wizards as a JSON API with chi,
// alongside the reference data lookups, the marketing pages and the
// OpenAPI document.
package server

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/Ayflow350/lexend-jobs/components/lookups"
	"github.com/Ayflow350/lexend-jobs/internal/apidoc"
	"github.com/Ayflow350/lexend-jobs/internal/config"
	"github.com/Ayflow350/lexend-jobs/internal/session"
	"github.com/Ayflow350/lexend-jobs/internal/site"
	"github.com/Ayflow350/lexend-jobs/pkg/catalog"
)

const serviceName = "lexend"

// Server holds the collaborators behind the HTTP routes.
type Server struct {
	cfg      config.ServerConfig
	registry *session.Registry
	site     *site.Site
	catalog  *catalog.Catalog
	lookups  *lookups.Component
	logger   *zap.Logger
	document []byte
	router   chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSite replaces the page renderer.
func WithSite(pages *site.Site) Option {
	return func(s *Server) {
		if pages != nil {
			s.site = pages
		}
	}
}

// WithCatalog sets the reference data served by the lookups component and
// used to check specialty selections.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(s *Server) {
		if cat != nil {
			s.catalog = cat
		}
	}
}

// New wires the router. The registry stays owned by the caller.
func New(cfg config.ServerConfig, registry *session.Registry, opts ...Option) (*Server, error) {
	if registry == nil {
		return nil, fmt.Errorf("server: missing session registry")
	}
	s := &Server{
		cfg:      cfg,
		registry: registry,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.catalog == nil {
		cat, err := catalog.Default()
		if err != nil {
			return nil, err
		}
		s.catalog = cat
	}
	s.lookups = lookups.New(lookups.WithCatalog(s.catalog))
	if s.site == nil {
		pages, err := site.New(site.WithWizardPath(apidoc.WizardsPath))
		if err != nil {
			return nil, err
		}
		s.site = pages
	}

	doc, err := apidoc.Build()
	if err != nil {
		return nil, err
	}
	if s.document, err = apidoc.JSON(doc); err != nil {
		return nil, err
	}

	if err := s.routes(); err != nil {
		return nil, err
	}
	return s, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// HTTPServer builds an *http.Server for the configured address and timeouts.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout.Std(),
		WriteTimeout: s.cfg.WriteTimeout.Std(),
		ErrorLog:     zap.NewStdLog(s.logger),
	}
}

func (s *Server) routes() error {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Location"},
		MaxAge:         300,
	}))
	r.Use(limitBody(s.cfg.MaxBodyBytes))

	r.Get(apidoc.HealthPath, s.health)
	r.Get(apidoc.DocumentPath, s.openAPI)
	r.Get("/", s.landing)
	r.Get("/onboarding", s.onboarding)

	if _, err := s.lookups.RegisterRoutes(r, ""); err != nil {
		return err
	}

	r.Route(apidoc.WizardsPath, func(r chi.Router) {
		r.Post("/{kind}", s.create)
		r.Get("/{id}", s.state)
		r.Delete("/{id}", s.discard)

		r.Patch("/{id}/fields", s.mutate(setField))
		r.Post("/{id}/method", s.mutate(freelancerOnly(selectMethod)))
		r.Post("/{id}/advance", s.mutate(advance))
		r.Post("/{id}/skip", s.mutate(skip))
		r.Post("/{id}/back", s.mutate(retreat))
		r.Post("/{id}/jump/{step}", s.mutate(jump))
		r.Post("/{id}/submit", s.mutate(submit))
		r.Post("/{id}/validate", s.validate)
		r.Get("/{id}/review", s.review)
		r.Get("/{id}/sources", s.sources)

		r.Post("/{id}/specialties/toggle", s.mutate(freelancerOnly(s.toggleSpecialty)))
		r.Post("/{id}/specialties/clear", s.mutate(freelancerOnly(clearSpecialties)))
		r.Post("/{id}/skills", s.mutate(addSkill))
		r.Delete("/{id}/skills/{skill}", s.mutate(removeSkill))

		r.Post("/{id}/budget/payment-type", s.mutate(companyOnly(setPaymentType)))
		r.Post("/{id}/budget/clear-fixed", s.mutate(companyOnly(clearFixedBudget)))
		r.Post("/{id}/attachments", s.mutate(companyOnly(addAttachments)))
		r.Delete("/{id}/attachments/{index}", s.mutate(companyOnly(removeAttachment)))

		r.Post("/{id}/lists/{list}/open", s.mutate(openEditor))
		r.Patch("/{id}/lists/{list}/draft", s.mutate(setDraftField))
		r.Post("/{id}/lists/{list}/save", s.mutate(saveEditor))
		r.Post("/{id}/lists/{list}/cancel", s.mutate(cancelEditor))
		r.Delete("/{id}/lists/{list}/{index}", s.mutate(deleteEntry))
	})

	s.router = r
	return nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, apidoc.Health{
		Status:   "ok",
		Service:  serviceName,
		Sessions: s.registry.Len(),
	})
}

func (s *Server) openAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(s.document)
}

func (s *Server) landing(w http.ResponseWriter, r *http.Request) {
	if err := site.Serve(w, s.site.Landing); err != nil {
		s.fail(w, r, err)
	}
}

func (s *Server) onboarding(w http.ResponseWriter, r *http.Request) {
	if err := site.Serve(w, s.site.Onboarding); err != nil {
		s.fail(w, r, err)
	}
}
