package catalog

import (
	"embed"
	"fmt"
	"io"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var dataFS embed.FS

const defaultDataPath = "data/catalog.yaml"

// Option is a value/label pair rendered by selects and comboboxes.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Category is a main work category with the specialties offered under it.
type Category struct {
	Value       string   `yaml:"value"`
	Label       string   `yaml:"label"`
	Specialties []Option `yaml:"specialties"`
}

// Country is an ISO country entry.
type Country struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

// PhoneCode is an international dial prefix.
type PhoneCode struct {
	Code string `yaml:"code"`
	Dial string `yaml:"dial"`
	Name string `yaml:"name"`
}

// Catalog holds the reference data behind category, skill, language,
// country and phone-code pickers.
type Catalog struct {
	Categories []Category          `yaml:"categories"`
	Skills     map[string][]string `yaml:"skills"`
	Languages  []string            `yaml:"languages"`
	Countries  []Country           `yaml:"countries"`
	PhoneCodes []PhoneCode         `yaml:"phoneCodes"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the embedded catalog, parsed once per process.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultDataPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()

		cat, err := Load(f)
		if err != nil {
			defaultErr = err
			return
		}
		defaultCatalog = cat
	})
	return defaultCatalog, defaultErr
}

// Load parses a YAML catalog. Blank entries are dropped and duplicates keep
// their first occurrence.
func Load(r io.Reader) (*Catalog, error) {
	if r == nil {
		return nil, fmt.Errorf("catalog: missing reader")
	}
	var cat Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cat); err != nil {
		if err == io.EOF {
			return &Catalog{Skills: map[string][]string{}}, nil
		}
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	cat.normalize()
	if err := cat.check(); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *Catalog) normalize() {
	categories := c.Categories[:0]
	seen := map[string]struct{}{}
	for _, category := range c.Categories {
		category.Value = strings.TrimSpace(category.Value)
		category.Label = strings.TrimSpace(category.Label)
		if category.Value == "" {
			continue
		}
		if _, ok := seen[category.Value]; ok {
			continue
		}
		seen[category.Value] = struct{}{}
		if category.Label == "" {
			category.Label = category.Value
		}
		category.Specialties = dedupeOptions(category.Specialties)
		categories = append(categories, category)
	}
	c.Categories = categories

	skills := make(map[string][]string, len(c.Skills))
	for key, list := range c.Skills {
		skills[strings.TrimSpace(key)] = dedupeStrings(list)
	}
	c.Skills = skills
	c.Languages = dedupeStrings(c.Languages)
}

func (c *Catalog) check() error {
	for key := range c.Skills {
		if _, ok := c.Category(key); !ok {
			return fmt.Errorf("catalog: skills listed for unknown category %q", key)
		}
	}
	for _, country := range c.Countries {
		if strings.TrimSpace(country.Code) == "" || strings.TrimSpace(country.Name) == "" {
			return fmt.Errorf("catalog: country entry needs code and name")
		}
	}
	for _, code := range c.PhoneCodes {
		if !strings.HasPrefix(code.Dial, "+") {
			return fmt.Errorf("catalog: dial code %q for %s must start with +", code.Dial, code.Code)
		}
	}
	return nil
}

func dedupeOptions(in []Option) []Option {
	out := make([]Option, 0, len(in))
	seen := map[string]struct{}{}
	for _, opt := range in {
		opt.Value = strings.TrimSpace(opt.Value)
		if opt.Value == "" {
			continue
		}
		if _, ok := seen[opt.Value]; ok {
			continue
		}
		seen[opt.Value] = struct{}{}
		if strings.TrimSpace(opt.Label) == "" {
			opt.Label = opt.Value
		}
		out = append(out, opt)
	}
	return out
}

func dedupeStrings(in []string) []string {
	out := make([]string, 0, len(in))
	seen := map[string]struct{}{}
	for _, item := range in {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		key := strings.ToLower(item)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

// DefaultCategory is the first category value, or "" for an empty catalog.
func (c *Catalog) DefaultCategory() string {
	if c == nil || len(c.Categories) == 0 {
		return ""
	}
	return c.Categories[0].Value
}

// Category looks a category up by value.
func (c *Catalog) Category(value string) (Category, bool) {
	if c == nil {
		return Category{}, false
	}
	for _, category := range c.Categories {
		if category.Value == value {
			return category, true
		}
	}
	return Category{}, false
}

// Specialties lists the specialties of a category.
func (c *Catalog) Specialties(category string) []Option {
	found, ok := c.Category(category)
	if !ok {
		return nil
	}
	return append([]Option(nil), found.Specialties...)
}

// SkillSuggestions lists the suggested skills for a category.
func (c *Catalog) SkillSuggestions(category string) []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.Skills[category]...)
}

// HasLanguage reports whether name is a known language, ignoring case.
func (c *Catalog) HasLanguage(name string) bool {
	if c == nil {
		return false
	}
	name = strings.TrimSpace(name)
	for _, lang := range c.Languages {
		if strings.EqualFold(lang, name) {
			return true
		}
	}
	return false
}

// Country looks a country up by ISO code, ignoring case.
func (c *Catalog) Country(code string) (Country, bool) {
	if c == nil {
		return Country{}, false
	}
	code = strings.TrimSpace(code)
	for _, country := range c.Countries {
		if strings.EqualFold(country.Code, code) {
			return country, true
		}
	}
	return Country{}, false
}

// CategoryOptions renders the categories as options.
func (c *Catalog) CategoryOptions() []Option {
	if c == nil {
		return nil
	}
	out := make([]Option, 0, len(c.Categories))
	for _, category := range c.Categories {
		out = append(out, Option{Value: category.Value, Label: category.Label})
	}
	return out
}

// SkillOptions renders a category's skill suggestions as options.
func (c *Catalog) SkillOptions(category string) []Option {
	return stringOptions(c.SkillSuggestions(category))
}

// LanguageOptions renders the languages as options.
func (c *Catalog) LanguageOptions() []Option {
	if c == nil {
		return nil
	}
	return stringOptions(c.Languages)
}

// CountryOptions renders countries with the name as value, which is what a
// profile stores.
func (c *Catalog) CountryOptions() []Option {
	if c == nil {
		return nil
	}
	out := make([]Option, 0, len(c.Countries))
	for _, country := range c.Countries {
		out = append(out, Option{Value: country.Name, Label: country.Name})
	}
	return out
}

// PhoneCodeOptions renders dial codes; labels carry the country so that
// shared prefixes like +1 stay distinguishable.
func (c *Catalog) PhoneCodeOptions() []Option {
	if c == nil {
		return nil
	}
	out := make([]Option, 0, len(c.PhoneCodes))
	for _, code := range c.PhoneCodes {
		out = append(out, Option{Value: code.Dial, Label: code.Name + " (" + code.Dial + ")"})
	}
	return out
}

func stringOptions(values []string) []Option {
	out := make([]Option, 0, len(values))
	for _, value := range values {
		out = append(out, Option{Value: value, Label: value})
	}
	return out
}
