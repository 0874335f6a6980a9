package tui

import (
	"time"

	"go.uber.org/zap"

	"github.com/Ayflow350/lexend-jobs/pkg/catalog"
)

// Theme captures optional formatting hints the driver can apply when printing
// messages. Keep minimal to avoid coupling runner logic to ANSI specifics.
type Theme struct {
	StepPrefix  string
	InfoPrefix  string
	ErrorPrefix string
}

// DefaultTheme is used when no theme is configured.
var DefaultTheme = Theme{
	StepPrefix:  "==",
	InfoPrefix:  "",
	ErrorPrefix: "!",
}

// Option configures the Runner.
type Option func(*Runner)

// WithPromptDriver overrides the prompt driver used by the runner.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Runner) {
		r.theme = theme
	}
}

// WithCatalog sets the reference data behind category, skill, language,
// country and phone-code choices.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(r *Runner) {
		if cat != nil {
			r.catalog = cat
		}
	}
}

// WithClock overrides the time source for the year pickers.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// WithLogger sets the logger for runner diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}
