package lookups

import "strconv"

// Endpoint tells a client where a field's options come from.
//
// The URL points at <basePath><RoutePath>/<kind>; results live under "data"
// with value/label mapping. DynamicParams maps query parameters to form
// values: "{{self}}" is the text typed into the field and any other
// "{{path}}" is the current value at that form path.
type Endpoint struct {
	Field         string            `json:"field"`
	URL           string            `json:"url"`
	Method        string            `json:"method"`
	ResultsPath   string            `json:"resultsPath"`
	Params        map[string]string `json:"params,omitempty"`
	DynamicParams map[string]string `json:"dynamicParams,omitempty"`
	ValueKey      string            `json:"valueKey"`
	LabelKey      string            `json:"labelKey"`
}

// Source binds a form field path to a lookup kind.
type Source struct {
	Field string
	Kind  Kind
	// CategoryField is the form path holding the category for scoped kinds.
	CategoryField string
}

// FreelancerSources lists the freelancer profile fields backed by lookups.
func FreelancerSources() []Source {
	return []Source{
		{Field: "mainCategory", Kind: KindCategories},
		{Field: "specialties", Kind: KindSpecialties, CategoryField: "mainCategory"},
		{Field: "skills", Kind: KindSkills, CategoryField: "mainCategory"},
		{Field: "otherLanguages.*.language", Kind: KindLanguages},
		{Field: "country", Kind: KindCountries},
		{Field: "employmentHistory.*.country", Kind: KindCountries},
		{Field: "phone.countryCode", Kind: KindPhoneCodes},
	}
}

// EndpointFor describes how a client fetches options for src.
func EndpointFor(src Source, basePath string, fns ...OptionFn) Endpoint {
	opts := NewOptions(fns...)
	params := map[string]string{
		opts.LimitParam: strconv.Itoa(opts.DefaultLimit),
	}
	dynamic := map[string]string{
		opts.SearchParam: "{{self}}",
	}
	if src.Kind.Scoped() && src.CategoryField != "" {
		dynamic[opts.CategoryParam] = "{{" + src.CategoryField + "}}"
	}

	return Endpoint{
		Field:         src.Field,
		URL:           mountPath(basePath, opts.RoutePath) + "/" + string(src.Kind),
		Method:        "GET",
		ResultsPath:   "data",
		Params:        params,
		DynamicParams: dynamic,
		ValueKey:      "value",
		LabelKey:      "label",
	}
}

// Endpoints describes every source under basePath.
func Endpoints(sources []Source, basePath string, fns ...OptionFn) []Endpoint {
	out := make([]Endpoint, 0, len(sources))
	for _, src := range sources {
		out = append(out, EndpointFor(src, basePath, fns...))
	}
	return out
}
