// Package site renders the server-side HTML pages: the marketing landing
// page, the role choice page and the read-only wizard review pages.
package site

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Ayflow350/lexend-jobs/pkg/flow"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed content.yaml
var contentYAML []byte

// Content is the copy shown on the landing and role choice pages.
type Content struct {
	Hero struct {
		Title   string `yaml:"title" json:"title"`
		CTA     string `yaml:"cta" json:"cta"`
		CTAHref string `yaml:"ctaHref" json:"ctaHref"`
	} `yaml:"hero" json:"hero"`
	Features []struct {
		Title       string `yaml:"title" json:"title"`
		Description string `yaml:"description" json:"description"`
	} `yaml:"features" json:"features"`
	Companies    []string `yaml:"companies" json:"companies"`
	Integrations struct {
		Title    string `yaml:"title" json:"title"`
		Subtitle string `yaml:"subtitle" json:"subtitle"`
		Items    []struct {
			Company     string `yaml:"company" json:"company"`
			Role        string `yaml:"role" json:"role"`
			Description string `yaml:"description" json:"description"`
		} `yaml:"items" json:"items"`
	} `yaml:"integrations" json:"integrations"`
	Testimonials struct {
		Subtitle string `yaml:"subtitle" json:"subtitle"`
		Items    []struct {
			Name  string `yaml:"name" json:"name"`
			Role  string `yaml:"role" json:"role"`
			Quote string `yaml:"quote" json:"quote"`
		} `yaml:"items" json:"items"`
	} `yaml:"testimonials" json:"testimonials"`
	FAQs []struct {
		Question string `yaml:"question" json:"question"`
		Answer   string `yaml:"answer" json:"answer"`
	} `yaml:"faqs" json:"faqs"`
	Roles []struct {
		Key         string `yaml:"key" json:"key"`
		Title       string `yaml:"title" json:"title"`
		Description string `yaml:"description" json:"description"`
	} `yaml:"roles" json:"roles"`
}

// TemplatesFS returns the embedded page templates rooted at their directory,
// for callers that want to extend them and pass them back via WithTemplates.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return templateFS
	}
	return sub
}

// Option configures a Site.
type Option func(*config)

type config struct {
	name       string
	wizardPath string
	now        func() time.Time
	templates  fs.FS
}

// WithName sets the brand shown in page chrome.
func WithName(name string) Option {
	return func(c *config) {
		if name != "" {
			c.name = name
		}
	}
}

// WithWizardPath sets the API prefix forms post to.
func WithWizardPath(path string) Option {
	return func(c *config) {
		if path != "" {
			c.wizardPath = path
		}
	}
}

// WithClock overrides the time source used for the footer year.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

// WithTemplates replaces the embedded templates.
func WithTemplates(files fs.FS) Option {
	return func(c *config) {
		if files != nil {
			c.templates = files
		}
	}
}

// Site renders pages.
type Site struct {
	cfg     config
	engine  *engine
	content Content
}

// New parses the embedded content and prepares the template set.
func New(opts ...Option) (*Site, error) {
	cfg := config{
		name:       "Lexend",
		wizardPath: "/api/wizards",
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templates == nil {
		cfg.templates = TemplatesFS()
	}

	var content Content
	if err := yaml.Unmarshal(contentYAML, &content); err != nil {
		return nil, fmt.Errorf("site: parse content: %w", err)
	}

	eng, err := newEngine(cfg.templates, map[string]any{
		"site_name":   cfg.name,
		"wizard_path": cfg.wizardPath,
	})
	if err != nil {
		return nil, err
	}
	return &Site{cfg: cfg, engine: eng, content: content}, nil
}

// Content returns the page copy.
func (s *Site) Content() Content { return s.content }

// Landing renders the marketing page.
func (s *Site) Landing(w io.Writer) error {
	return s.render(w, "landing", s.content)
}

// Onboarding renders the client/freelancer role choice.
func (s *Site) Onboarding(w io.Writer) error {
	return s.render(w, "onboarding", s.content)
}

// ReviewPage is the data behind a wizard review page.
type ReviewPage struct {
	SessionID string        `json:"session_id"`
	Review    flow.Review   `json:"review"`
	Submitted bool          `json:"submitted"`
	Receipt   *flow.Receipt `json:"receipt,omitempty"`
}

// Review renders a wizard's review projection.
func (s *Site) Review(w io.Writer, page ReviewPage) error {
	return s.render(w, "review", page)
}

func (s *Site) render(w io.Writer, name string, data any) error {
	ctx, err := toContext(data)
	if err != nil {
		return fmt.Errorf("site: %s data: %w", name, err)
	}
	ctx["year"] = s.cfg.now().Year()
	return s.engine.render(w, name, ctx)
}

// Serve renders a page with fn and writes it as an HTML response.
func Serve(w http.ResponseWriter, fn func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err := buf.WriteTo(w)
	return err
}
