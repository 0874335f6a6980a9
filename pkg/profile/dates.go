package profile

import (
	"strconv"
	"time"
)

const (
	employmentYearSpan = 50
	educationYearSpan  = 60
	educationYearAhead = 5
)

// Months lists the month names offered by the employment date selects.
func Months() []string {
	out := make([]string, 0, 12)
	for m := time.January; m <= time.December; m++ {
		out = append(out, m.String())
	}
	return out
}

// EmploymentYears lists the selectable employment years, newest first,
// reaching back 50 years from now.
func EmploymentYears(now time.Time) []string {
	return years(now.Year(), employmentYearSpan)
}

// EducationYears lists the selectable education years, newest first, starting
// five years ahead of now so expected graduation years can be picked.
func EducationYears(now time.Time) []string {
	return years(now.Year()+educationYearAhead, educationYearSpan)
}

func years(from, span int) []string {
	out := make([]string, 0, span)
	for i := 0; i < span; i++ {
		out = append(out, strconv.Itoa(from-i))
	}
	return out
}
