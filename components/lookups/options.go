package lookups

import (
	"net/http"

	"github.com/Ayflow350/lexend-jobs/pkg/catalog"
)

// Kind names one lookup list.
type Kind string

const (
	KindCategories  Kind = "categories"
	KindSpecialties Kind = "specialties"
	KindSkills      Kind = "skills"
	KindLanguages   Kind = "languages"
	KindCountries   Kind = "countries"
	KindPhoneCodes  Kind = "phone-codes"
)

// Kinds lists every lookup the handler serves.
func Kinds() []Kind {
	return []Kind{KindCategories, KindSpecialties, KindSkills, KindLanguages, KindCountries, KindPhoneCodes}
}

// Scoped reports whether the kind needs a category parameter.
func (k Kind) Scoped() bool {
	return k == KindSpecialties || k == KindSkills
}

// EmptySearchMode decides what an empty query returns.
type EmptySearchMode string

const (
	EmptySearchNone EmptySearchMode = "none"
	EmptySearchTop  EmptySearchMode = "top"
)

type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath       string
	SearchParam     string
	LimitParam      string
	CategoryParam   string
	DefaultLimit    int
	MaxLimit        int
	EmptySearchMode EmptySearchMode
	Guard           GuardFunc

	Catalog *catalog.Catalog
}

type OptionFn func(*Options)

const (
	defaultRoutePath    = "/api/lookups"
	defaultDefaultLimit = 50
	defaultMaxLimit     = 250
)

func DefaultOptions() Options {
	return Options{
		RoutePath:       defaultRoutePath,
		SearchParam:     "q",
		LimitParam:      "limit",
		CategoryParam:   "category",
		DefaultLimit:    defaultDefaultLimit,
		MaxLimit:        defaultMaxLimit,
		EmptySearchMode: EmptySearchTop,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = defaultDefaultLimit
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = defaultMaxLimit
	}
	if opts.EmptySearchMode == "" {
		opts.EmptySearchMode = EmptySearchTop
	}
	if opts.RoutePath == "" {
		opts.RoutePath = defaultRoutePath
	}
	if opts.SearchParam == "" {
		opts.SearchParam = "q"
	}
	if opts.LimitParam == "" {
		opts.LimitParam = "limit"
	}
	if opts.CategoryParam == "" {
		opts.CategoryParam = "category"
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithSearchParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SearchParam = name
	}
}

func WithLimitParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LimitParam = name
	}
}

func WithCategoryParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.CategoryParam = name
	}
}

func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultLimit = limit
	}
}

func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxLimit = limit
	}
}

func WithEmptySearchMode(mode EmptySearchMode) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.EmptySearchMode = mode
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

// WithCatalog serves cat instead of the embedded catalog.
func WithCatalog(cat *catalog.Catalog) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Catalog = cat
	}
}

func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}
