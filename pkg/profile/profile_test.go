package profile_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/Ayflow350/lexend-jobs/pkg/profile"
	"github.com/Ayflow350/lexend-jobs/pkg/schema"
)

func completeProfile() profile.Profile {
	rate := 45.0
	p := profile.Defaults()
	p.MainCategory = "development-it"
	p.Specialties = []string{"Web Development"}
	p.Skills = []string{"Go", "PostgreSQL"}
	p.ProfessionalTitle = "Senior Backend Engineer"
	p.EmploymentHistory = []profile.Employment{{
		Title:         "Engineer",
		Company:       "Acme",
		IsCurrentRole: true,
		StartDate:     profile.MonthYear{Month: "March", Year: "2019"},
	}}
	p.EducationHistory = []profile.Education{{School: "State University"}}
	p.ProfessionalOverview = strings.Repeat("I build reliable services. ", 5)
	p.HourlyRate = &rate
	p.ProfilePhoto = "avatar.png"
	p.DateOfBirth = "1990-04-12"
	p.Country = "US"
	p.StreetAddress = "1 Main St"
	p.City = "Springfield"
	p.StateProvince = "IL"
	p.ZipCode = "62701"
	p.Phone.PhoneNumber = "5550100"
	return p
}

func TestValidate_CompleteProfileIsValid(t *testing.T) {
	if issues := profile.Validate(completeProfile()); !issues.Valid() {
		t.Fatalf("expected valid profile, got %#v", issues)
	}
}

func TestValidate_DefaultsReportStepMessages(t *testing.T) {
	issues := profile.Validate(profile.Defaults())
	checks := map[string]string{
		"mainCategory":         "Please select a main category.",
		"specialties":          "Please select at least one specialty.",
		"skills":               "Please add at least one skill.",
		"professionalTitle":    "Your title must be at least 10 characters.",
		"employmentHistory":    "Add at least one item",
		"educationHistory":     "Add at least one education entry to proceed.",
		"professionalOverview": "Your bio must be at least 100 characters.",
		"hourlyRate":           "An hourly rate is required.",
		"profilePhoto":         "A profile photo is required.",
		"phone.phoneNumber":    "A valid phone number is required.",
	}
	for path, want := range checks {
		if diff := cmp.Diff([]string{want}, issues.For(path)); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", path, diff)
		}
	}
	if issues.Has("englishProficiency") || issues.Has("phone.countryCode") {
		t.Fatalf("defaults must satisfy englishProficiency and phone code")
	}
}

func TestValidate_RateBounds(t *testing.T) {
	p := completeProfile()
	low, high := 2.5, 1000.0
	p.HourlyRate = &low
	if got := profile.Validate(p).For("hourlyRate"); len(got) != 1 || got[0] != "The minimum hourly rate is $3.00." {
		t.Fatalf("unexpected low rate issues %v", got)
	}
	p.HourlyRate = &high
	if got := profile.Validate(p).For("hourlyRate"); len(got) != 1 || got[0] != "The maximum hourly rate is $999.00." {
		t.Fatalf("unexpected high rate issues %v", got)
	}
}

func TestEmploymentDates_EndDateFollowsCurrentRole(t *testing.T) {
	past := profile.Employment{
		Title:     "Engineer",
		Company:   "Acme",
		StartDate: profile.MonthYear{Month: "May", Year: "2018"},
	}
	want := schema.Issues{{Path: "endDate.year", Message: "End date is required for past roles."}}
	if diff := cmp.Diff(want, profile.ValidateEmployment(past)); diff != "" {
		t.Fatalf("past role issues mismatch (-want +got):\n%s", diff)
	}

	past.EndDate = profile.MonthYear{Month: "June"}
	if !profile.ValidateEmployment(past).Has("endDate.year") {
		t.Fatalf("a month without a year is still missing the end date")
	}

	current := past
	current.EndDate = profile.MonthYear{}
	current.IsCurrentRole = true
	if issues := profile.ValidateEmployment(current); !issues.Valid() {
		t.Fatalf("current role must not need an end date, got %#v", issues)
	}
}

func TestValidate_EmploymentEntriesAreReRooted(t *testing.T) {
	p := completeProfile()
	p.EmploymentHistory = append(p.EmploymentHistory, profile.Employment{
		StartDate: profile.MonthYear{Month: "May", Year: "2018"},
	})
	issues := profile.Validate(p).Under("employmentHistory")
	want := []string{
		"employmentHistory.1.title",
		"employmentHistory.1.company",
		"employmentHistory.1.endDate.year",
	}
	if diff := cmp.Diff(want, issues.Paths()); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestEntryValidators(t *testing.T) {
	if got := profile.ValidateEducation(profile.NewEducation()).For("school"); len(got) != 1 || got[0] != "School name is required." {
		t.Fatalf("unexpected education issues %v", got)
	}
	lang := profile.NewLanguage()
	if got := profile.ValidateLanguage(lang).For("language"); len(got) != 1 || got[0] != "Language name is required." {
		t.Fatalf("unexpected language issues %v", got)
	}
	lang.Language = "Spanish"
	lang.Proficiency = "expert"
	if got := profile.ValidateLanguage(lang).For("proficiency"); len(got) != 1 || got[0] != "Please select your proficiency level." {
		t.Fatalf("unexpected proficiency issues %v", got)
	}
}

func TestToggleSpecialty(t *testing.T) {
	p := profile.Defaults()
	p.MainCategory = "design"

	if !profile.ToggleSpecialty(&p, "design", "Logo Design") {
		t.Fatalf("first specialty must be accepted")
	}
	profile.ToggleSpecialty(&p, "design", "Branding")
	profile.ToggleSpecialty(&p, "design", "UX Design")

	before := p.Clone()
	if profile.ToggleSpecialty(&p, "design", "Illustration") {
		t.Fatalf("fourth specialty must be rejected")
	}
	if diff := cmp.Diff(before, p); diff != "" {
		t.Fatalf("rejected toggle changed the profile (-want +got):\n%s", diff)
	}

	if !profile.ToggleSpecialty(&p, "design", "Branding") {
		t.Fatalf("deselect must be accepted")
	}
	if diff := cmp.Diff([]string{"Logo Design", "UX Design"}, p.Specialties); diff != "" {
		t.Fatalf("specialties mismatch (-want +got):\n%s", diff)
	}

	profile.ToggleSpecialty(&p, "writing", "Copywriting")
	if p.MainCategory != "writing" || len(p.Specialties) != 1 || p.Specialties[0] != "Copywriting" {
		t.Fatalf("switching category must restart the selection, got %q %v", p.MainCategory, p.Specialties)
	}

	profile.ClearSelections(&p, "development-it")
	if p.MainCategory != "development-it" || len(p.Specialties) != 0 {
		t.Fatalf("clear must reset category and specialties")
	}
}

func TestAddSkill(t *testing.T) {
	p := profile.Defaults()
	if !profile.AddSkill(&p, "  react native ") {
		t.Fatalf("skill must be added")
	}
	if profile.AddSkill(&p, "REACT NATIVE") || profile.AddSkill(&p, "   ") {
		t.Fatalf("duplicates and blanks must be rejected")
	}
	if diff := cmp.Diff([]string{"React Native"}, p.Skills); diff != "" {
		t.Fatalf("skills mismatch (-want +got):\n%s", diff)
	}
	for i := 0; len(p.Skills) < profile.MaxSkills; i++ {
		profile.AddSkill(&p, "skill"+string(rune('a'+i)))
	}
	if profile.AddSkill(&p, "one too many") {
		t.Fatalf("sixteenth skill must be rejected")
	}
	if !profile.RemoveSkill(&p, "React Native") || profile.RemoveSkill(&p, "React Native") {
		t.Fatalf("remove must succeed once")
	}
}

func TestCapitalizeWords(t *testing.T) {
	cases := map[string]string{
		"node.js":          "Node.Js",
		"machine learning": "Machine Learning",
		"c++ dev":          "C++ Dev",
	}
	for in, want := range cases {
		if got := profile.CapitalizeWords(in); got != want {
			t.Errorf("CapitalizeWords(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestYearOptions(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	emp := profile.EmploymentYears(now)
	if len(emp) != 50 || emp[0] != "2026" || emp[49] != "1977" {
		t.Fatalf("unexpected employment years %v..%v", emp[0], emp[len(emp)-1])
	}
	edu := profile.EducationYears(now)
	if len(edu) != 60 || edu[0] != "2031" || edu[59] != "1972" {
		t.Fatalf("unexpected education years %v..%v", edu[0], edu[len(edu)-1])
	}
	if months := profile.Months(); len(months) != 12 || months[0] != "January" {
		t.Fatalf("unexpected months %v", months)
	}
}
