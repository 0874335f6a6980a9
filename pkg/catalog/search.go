package catalog

import (
	"sort"
	"strings"
)

// Search filters options whose label or value contains query, ignoring case.
// Prefix matches sort ahead of the rest, then labels alphabetically. An empty
// query keeps the catalog order. A limit of zero or less means no limit.
func Search(options []Option, query string, limit int) []Option {
	query = strings.TrimSpace(query)
	if query == "" {
		return truncate(append([]Option(nil), options...), limit)
	}

	q := strings.ToLower(query)
	matches := make([]matchedOption, 0, 16)
	for _, opt := range options {
		label := strings.ToLower(opt.Label)
		value := strings.ToLower(opt.Value)
		if !strings.Contains(label, q) && !strings.Contains(value, q) {
			continue
		}
		matches = append(matches, matchedOption{
			option:   opt,
			isPrefix: strings.HasPrefix(label, q) || strings.HasPrefix(value, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].option.Label < matches[j].option.Label
	})

	out := make([]Option, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.option)
	}
	return truncate(out, limit)
}

func truncate(options []Option, limit int) []Option {
	if limit > 0 && len(options) > limit {
		return options[:limit]
	}
	return options
}

type matchedOption struct {
	option   Option
	isPrefix bool
}
