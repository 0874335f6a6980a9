package site

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// engine renders pongo2 templates from an fs.FS and caches parsed templates.
type engine struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
	ext       string
}

func newEngine(files fs.FS, globals map[string]any) (*engine, error) {
	if files == nil {
		return nil, errors.New("site: templates fs is required")
	}
	set := pongo2.NewSet("lexend", pongo2.NewFSLoader(files))
	set.Globals = make(pongo2.Context, len(globals))
	for key, value := range globals {
		set.Globals[strings.TrimSpace(key)] = value
	}
	registerFilters()
	return &engine{
		set:       set,
		templates: make(map[string]*pongo2.Template),
		ext:       ".html",
	}, nil
}

// render executes the named template into w. The whole page is rendered
// before anything is written so a template error never leaves half a page.
func (e *engine) render(w io.Writer, name string, data any) error {
	path := name
	if !strings.HasSuffix(path, e.ext) {
		path += e.ext
	}
	tmpl, err := e.template(path)
	if err != nil {
		return err
	}
	ctx, err := toContext(data)
	if err != nil {
		return fmt.Errorf("site: convert data for %q: %w", path, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(ctx, &buf); err != nil {
		return fmt.Errorf("site: execute template %q: %w", path, err)
	}
	_, err = buf.WriteTo(w)
	return err
}

func (e *engine) template(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[path]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("site: load template %q: %w", path, err)
	}
	e.templates[path] = tmpl
	return tmpl, nil
}

// toContext projects data through JSON so templates address fields by their
// JSON names.
func toContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return v, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	out := map[string]any{}
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return pongo2.Context(normalizeNumbers(out).(map[string]any)), nil
}

// normalizeNumbers turns decoded json.Number values into int64 where they
// are whole, so templates print steps and counts without a fraction.
func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, item := range t {
			t[k] = normalizeNumbers(item)
		}
		return t
	case []any:
		for i, item := range t {
			t[i] = normalizeNumbers(item)
		}
		return t
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	default:
		return v
	}
}

var filtersOnce sync.Once

func registerFilters() {
	filtersOnce.Do(func() {
		if !pongo2.FilterExists("trim") {
			_ = pongo2.RegisterFilter("trim", filterTrim)
		}
		if !pongo2.FilterExists("initials") {
			_ = pongo2.RegisterFilter("initials", filterInitials)
		}
	})
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterInitials turns "Sophia Ramirez" into "SR" for avatar placeholders.
func filterInitials(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	var letters []rune
	for _, word := range strings.Fields(in.String()) {
		letters = append(letters, []rune(word)[0])
		if len(letters) == 2 {
			break
		}
	}
	return pongo2.AsValue(strings.ToUpper(string(letters))), nil
}
