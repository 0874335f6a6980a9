package flow

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Ayflow350/lexend-jobs/pkg/jobpost"
	"github.com/Ayflow350/lexend-jobs/pkg/profile"
)

const notSpecified = "Not specified"

// Review is the read-only projection shown on the review step.
type Review struct {
	Kind     Kind            `json:"kind"`
	Heading  string          `json:"heading"`
	Sections []ReviewSection `json:"sections"`
}

// ReviewSection groups related values. EditStep is the step its edit control
// jumps to.
type ReviewSection struct {
	Key      string       `json:"key"`
	Title    string       `json:"title"`
	EditStep int          `json:"editStep"`
	Items    []ReviewItem `json:"items"`
	Empty    string       `json:"empty,omitempty"`
}

// ReviewItem is one labelled value. HTML marks values that are sanitised
// markup.
type ReviewItem struct {
	Label string `json:"label,omitempty"`
	Value string `json:"value"`
	Note  string `json:"note,omitempty"`
	HTML  bool   `json:"html,omitempty"`
}

// Review builds the freelancer profile preview.
func (f *Freelancer) Review() Review {
	p := f.store.Values()
	r := Review{Kind: KindFreelancer, Heading: "Preview Profile"}

	r.Sections = append(r.Sections,
		ReviewSection{Key: "personal", Title: "Personal info", EditStep: StepPersonal, Items: []ReviewItem{
			{Label: "Location", Value: joinNonEmpty(", ", p.City, p.Country)},
			{Label: "Address", Value: joinNonEmpty(", ", p.StreetAddress, p.AptSuite, p.StateProvince, p.ZipCode)},
			{Label: "Phone", Value: joinNonEmpty(" ", p.Phone.CountryCode, p.Phone.PhoneNumber)},
			{Label: "Date of birth", Value: orNotSpecified(p.DateOfBirth)},
		}},
		ReviewSection{Key: "title", Title: "Professional title", EditStep: StepTitle, Items: []ReviewItem{
			{Value: orNotSpecified(p.ProfessionalTitle), Note: p.ProfessionalOverview},
		}},
		ReviewSection{Key: "rate", Title: "Hourly rate", EditStep: StepRate, Items: []ReviewItem{
			{Label: "Hourly rate", Value: formatMoney(p.HourlyRate)},
		}},
	)

	work := ReviewSection{Key: "employment", Title: "Work history", EditStep: StepEmployment}
	for _, job := range p.EmploymentHistory {
		end := "Present"
		if !job.IsCurrentRole {
			end = formatMonthYear(job.EndDate)
		}
		work.Items = append(work.Items, ReviewItem{
			Label: job.Title,
			Value: job.Company,
			Note:  formatMonthYear(job.StartDate) + " - " + end,
		})
	}
	r.Sections = append(r.Sections, withEmpty(work))

	edu := ReviewSection{Key: "education", Title: "Education", EditStep: StepEducation}
	for _, school := range p.EducationHistory {
		edu.Items = append(edu.Items, ReviewItem{
			Label: school.School,
			Value: joinNonEmpty(", ", school.Degree, school.FieldOfStudy),
			Note:  joinNonEmpty(" - ", school.DatesAttended.From, school.DatesAttended.To),
		})
	}
	r.Sections = append(r.Sections, withEmpty(edu))

	langs := ReviewSection{Key: "languages", Title: "Languages", EditStep: StepLanguages, Items: []ReviewItem{
		{Label: "English", Value: p.EnglishProficiency.Label()},
	}}
	for _, l := range p.OtherLanguages {
		langs.Items = append(langs.Items, ReviewItem{Label: l.Language, Value: l.Proficiency.Label()})
	}
	r.Sections = append(r.Sections, langs)

	r.Sections = append(r.Sections, ReviewSection{Key: "skills", Title: "Skills", EditStep: StepSkills, Items: []ReviewItem{
		{Value: orNotSpecified(strings.Join(p.Skills, ", "))},
	}})
	return r
}

// Review builds the job post summary.
func (c *Company) Review() Review {
	j := c.store.Values()
	r := Review{Kind: KindCompany, Heading: "Review your Job Post"}

	r.Sections = append(r.Sections,
		ReviewSection{Key: "details", Title: "Job Details Summary", EditStep: StepJobTitle, Items: []ReviewItem{
			{Label: "Job Title", Value: orNotSpecified(j.JobTitle)},
			{Label: "Skills", Value: orNotSpecified(strings.Join(j.Skills, ", "))},
		}},
		ReviewSection{Key: "scope", Title: "Scope", EditStep: StepScope, Items: []ReviewItem{
			{Label: "Project Size", Value: orNotSpecified(string(j.ProjectSize))},
			{Label: "Project Duration", Value: orNotSpecified(spaceCamel(string(j.ProjectDuration)))},
			{Label: "Experience Level", Value: orNotSpecified(string(j.ExperienceLevel))},
		}},
		ReviewSection{Key: "budget", Title: "Budget", EditStep: StepBudget, Items: []ReviewItem{
			{Label: "Budget", Value: formatBudget(j.Budget)},
		}},
		ReviewSection{Key: "description", Title: "Job Description", EditStep: StepDescription, Items: []ReviewItem{
			{Value: orNotSpecified(j.JobDescription), HTML: j.JobDescription != ""},
		}},
	)

	if len(j.Attachments) > 0 {
		files := ReviewSection{Key: "attachments", Title: "Attachments", EditStep: StepDescription}
		for _, a := range j.Attachments {
			files.Items = append(files.Items, ReviewItem{Value: a.Name, Note: formatSize(a.Size)})
		}
		r.Sections = append(r.Sections, files)
	}
	return r
}

func withEmpty(s ReviewSection) ReviewSection {
	if len(s.Items) == 0 {
		s.Empty = "No items to display."
	}
	return s
}

func orNotSpecified(v string) string {
	if strings.TrimSpace(v) == "" {
		return notSpecified
	}
	return v
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return orNotSpecified(strings.Join(kept, sep))
}

func formatMoney(v *float64) string {
	if v == nil {
		return notSpecified
	}
	return "$" + strconv.FormatFloat(*v, 'f', 2, 64)
}

func formatMonthYear(m profile.MonthYear) string {
	if m.IsZero() {
		return notSpecified
	}
	month := m.Month
	if len(month) > 3 {
		month = month[:3]
	}
	return strings.TrimSpace(month + " " + m.Year)
}

func formatBudget(b jobpost.Budget) string {
	orNA := func(v *float64) string {
		if v == nil || *v == 0 {
			return "N/A"
		}
		return strconv.FormatFloat(*v, 'f', -1, 64)
	}
	switch v := b.(type) {
	case jobpost.HourlyBudget:
		return fmt.Sprintf("Hourly: $%s - $%s /hr", orNA(v.From), orNA(v.To))
	case jobpost.FixedBudget:
		return "Fixed: $" + orNA(v.Amount)
	default:
		return notSpecified
	}
}

// spaceCamel turns `moreThan6Months` into `more Than6 Months`.
func spaceCamel(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func formatSize(size int64) string {
	const mb = 1024 * 1024
	if size >= mb {
		return strconv.FormatFloat(float64(size)/mb, 'f', 1, 64) + " MB"
	}
	return strconv.FormatFloat(float64(size)/1024, 'f', 1, 64) + " KB"
}
