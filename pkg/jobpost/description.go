package jobpost

import (
	"html"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

const (
	minDescription = 50
	maxDescription = 50000
)

var (
	descriptionPolicyOnce sync.Once
	descriptionPolicy     *bluemonday.Policy

	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// SanitizeDescription cleans editor HTML down to the formatting the rich-text
// editor can produce.
func SanitizeDescription(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(descriptionSanitizer().Sanitize(trimmed))
}

// DescriptionText returns the visible text of a description with tags
// stripped and entities decoded. Length rules apply to this text.
func DescriptionText(raw string) string {
	if raw == "" {
		return ""
	}
	stripped := textSanitizer().Sanitize(strings.ReplaceAll(raw, "<", " <"))
	return strings.Join(strings.Fields(html.UnescapeString(stripped)), " ")
}

// DescriptionLength counts the characters of the description text.
func DescriptionLength(raw string) int {
	return utf8.RuneCountInString(DescriptionText(raw))
}

func descriptionSanitizer() *bluemonday.Policy {
	descriptionPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements(
			"p", "br", "strong", "b", "em", "i", "u", "s", "strike",
			"ul", "ol", "li", "h1", "h2", "h3", "blockquote", "code", "pre", "hr",
		)
		policy.AllowStandardURLs()
		policy.AllowAttrs("href").OnElements("a")
		policy.RequireNoFollowOnLinks(true)
		policy.AddTargetBlankToFullyQualifiedLinks(true)
		descriptionPolicy = policy
	})
	return descriptionPolicy
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
