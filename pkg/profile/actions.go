package profile

import (
	"slices"
	"strings"
	"unicode"
)

const (
	// MaxSpecialties caps the specialties selected under the main category.
	MaxSpecialties = 3
	// MaxSkills caps the skills list.
	MaxSkills = 15
)

// ToggleSpecialty applies a click on a specialty shown under activeCategory.
// Selecting a specialty of a category other than the current main category
// switches the main category and restarts the selection with that specialty.
// Adding beyond MaxSpecialties is rejected. It reports whether p changed.
func ToggleSpecialty(p *Profile, activeCategory, specialty string) bool {
	specialty = strings.TrimSpace(specialty)
	if specialty == "" {
		return false
	}
	adding := !slices.Contains(p.Specialties, specialty)
	if adding && len(p.Specialties) >= MaxSpecialties {
		return false
	}
	if adding && activeCategory != p.MainCategory {
		p.MainCategory = activeCategory
		p.Specialties = []string{specialty}
		return true
	}

	next := make([]string, 0, len(p.Specialties)+1)
	if adding {
		next = append(append(next, p.Specialties...), specialty)
	} else {
		for _, s := range p.Specialties {
			if s != specialty {
				next = append(next, s)
			}
		}
	}
	p.Specialties = next
	return true
}

// ClearSelections resets the main category to defaultCategory and empties the
// specialties.
func ClearSelections(p *Profile, defaultCategory string) bool {
	p.MainCategory = defaultCategory
	p.Specialties = []string{}
	return true
}

// AddSkill capitalises each word of the trimmed input and appends it unless it
// is empty, already present (ignoring case) or the list is full.
func AddSkill(p *Profile, raw string) bool {
	skill := CapitalizeWords(strings.TrimSpace(raw))
	if skill == "" || len(p.Skills) >= MaxSkills {
		return false
	}
	for _, existing := range p.Skills {
		if strings.EqualFold(existing, skill) {
			return false
		}
	}
	p.Skills = append(slices.Clone(p.Skills), skill)
	return true
}

// RemoveSkill drops every exact occurrence of skill.
func RemoveSkill(p *Profile, skill string) bool {
	if !slices.Contains(p.Skills, skill) {
		return false
	}
	next := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		if s != skill {
			next = append(next, s)
		}
	}
	p.Skills = next
	return true
}

// CapitalizeWords upper-cases every word character that starts a word.
func CapitalizeWords(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevWord := false
	for _, r := range s {
		word := isWordRune(r)
		if word && !prevWord {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
		prevWord = word
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return r == '_' || (r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)))
}
