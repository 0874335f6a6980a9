package lookups

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Ayflow350/lexend-jobs/pkg/catalog"
)

// Query describes one lookup request.
type Query struct {
	Kind     Kind
	Category string
	Search   string
	Limit    int
}

// Lookup resolves a query against cat. Unknown kinds fail with a 404
// StatusError and scoped kinds without a category with a 400.
func Lookup(cat *catalog.Catalog, q Query, opts Options) ([]catalog.Option, error) {
	source, err := optionsFor(cat, q)
	if err != nil {
		return nil, err
	}

	limit := clampLimit(q.Limit, opts)
	if limit == 0 {
		return nil, nil
	}
	if strings.TrimSpace(q.Search) == "" && opts.EmptySearchMode != EmptySearchTop {
		return nil, nil
	}
	return catalog.Search(source, q.Search, limit), nil
}

func optionsFor(cat *catalog.Catalog, q Query) ([]catalog.Option, error) {
	category := strings.TrimSpace(q.Category)
	if q.Kind.Scoped() && category == "" {
		return nil, StatusError{
			Code: http.StatusBadRequest,
			Err:  fmt.Errorf("lookups: %s requires a category", q.Kind),
		}
	}

	switch q.Kind {
	case KindCategories:
		return cat.CategoryOptions(), nil
	case KindSpecialties:
		return cat.Specialties(category), nil
	case KindSkills:
		return cat.SkillOptions(category), nil
	case KindLanguages:
		return cat.LanguageOptions(), nil
	case KindCountries:
		return cat.CountryOptions(), nil
	case KindPhoneCodes:
		return cat.PhoneCodeOptions(), nil
	default:
		return nil, StatusError{
			Code: http.StatusNotFound,
			Err:  fmt.Errorf("lookups: unknown kind %q", q.Kind),
		}
	}
}
