package profile

import (
	"strconv"
	"strings"

	"github.com/Ayflow350/lexend-jobs/pkg/form"
	"github.com/Ayflow350/lexend-jobs/pkg/schema"
)

// Messages holds the user-facing message of every profile rule.
var Messages = schema.Messages{
	"mainCategory.required": "Please select a main category.",
	"specialties.min":       "Please select at least one specialty.",
	"specialties.max":       "You can select a maximum of 3 specialties.",
	"skills.min":            "Please add at least one skill.",
	"skills.max":            "You can add a maximum of 15 skills.",
	"skills.*.min":          "Skill cannot be empty.",
	"skills.*.max":          "Skill is too long.",
	"professionalTitle.min": "Your title must be at least 10 characters.",
	"professionalTitle.max": "Your title cannot exceed 70 characters.",

	"employmentHistory.min":                 "Add at least one item",
	"employmentHistory.*.title.required":    "Title is required.",
	"employmentHistory.*.company.required":  "Company is required.",
	"employmentHistory.*.description.max":   "Description cannot exceed 2000 characters.",
	"educationHistory.min":                  "Add at least one education entry to proceed.",
	"educationHistory.*.school.required":    "School name is required.",
	"educationHistory.*.description.max":    "Description cannot exceed 2000 characters.",
	"englishProficiency.required":           "Please select your proficiency level.",
	"englishProficiency.oneof":              "Please select your proficiency level.",
	"otherLanguages.*.language.required":    "Language name is required.",
	"otherLanguages.*.proficiency.required": "Please select your proficiency level.",
	"otherLanguages.*.proficiency.oneof":    "Please select your proficiency level.",
	"professionalOverview.min":              "Your bio must be at least 100 characters.",
	"professionalOverview.max":              "Your bio cannot exceed 5000 characters.",
	"hourlyRate.required":                   "An hourly rate is required.",
	"hourlyRate.min":                        "The minimum hourly rate is $3.00.",
	"hourlyRate.max":                        "The maximum hourly rate is $999.00.",

	"profilePhoto.required":      "A profile photo is required.",
	"dateOfBirth.required":       "Date of birth is required.",
	"dateOfBirth.datetime":       "Date of birth must be a valid date (YYYY-MM-DD).",
	"country.required":           "Country is required.",
	"streetAddress.required":     "Street address is required.",
	"city.required":              "City is required.",
	"stateProvince.required":     "State/Province is required.",
	"zipCode.required":           "ZIP/Postal code is required.",
	"phone.countryCode.required": "Code is required.",
	"phone.phoneNumber.min":      "A valid phone number is required.",
}

const (
	msgStartMonth = "Start month is required."
	msgStartYear  = "Start year is required."
	msgEndDate    = "End date is required for past roles."
)

var (
	profileRules    = schema.NewValidator(Messages)
	employmentRules = schema.NewValidator(entryMessages("employmentHistory"))
	educationRules  = schema.NewValidator(entryMessages("educationHistory"))
	languageRules   = schema.NewValidator(entryMessages("otherLanguages"))
)

// entryMessages re-roots the messages of list entries at the entry itself so
// an editor draft reports `title` instead of `employmentHistory.2.title`.
func entryMessages(list string) schema.Messages {
	prefix := list + ".*."
	out := schema.Messages{}
	for key, msg := range Messages {
		if rest, ok := strings.CutPrefix(key, prefix); ok {
			out[rest] = msg
		}
	}
	return out
}

// Validate runs every profile rule, struct rules first and the employment
// date rules after them.
func Validate(p Profile) schema.Issues {
	issues := profileRules.Struct(p)
	for i, entry := range p.EmploymentHistory {
		issues = issues.Merge(EmploymentDates(entry).Prefix("employmentHistory." + strconv.Itoa(i))...)
	}
	return issues
}

// Validator returns the profile validator used by the form store.
func Validator() form.Validator[Profile] {
	return form.ValidatorFunc[Profile](Validate)
}

// EmploymentDates checks the date rules of an employment entry: the start
// month and year are always required, and the end date becomes required
// exactly when the entry is not the current role. A missing end date is
// reported on `endDate.year`.
func EmploymentDates(e Employment) schema.Issues {
	var issues schema.Issues
	if strings.TrimSpace(e.StartDate.Month) == "" {
		issues = append(issues, schema.Issue{Path: "startDate.month", Message: msgStartMonth})
	}
	if strings.TrimSpace(e.StartDate.Year) == "" {
		issues = append(issues, schema.Issue{Path: "startDate.year", Message: msgStartYear})
	}
	if !e.IsCurrentRole {
		if strings.TrimSpace(e.EndDate.Month) == "" || strings.TrimSpace(e.EndDate.Year) == "" {
			issues = append(issues, schema.Issue{Path: "endDate.year", Message: msgEndDate})
		}
	}
	return issues
}

// ValidateEmployment validates one employment entry on its own.
func ValidateEmployment(e Employment) schema.Issues {
	return employmentRules.Struct(e).Merge(EmploymentDates(e)...)
}

// ValidateEducation validates one education entry on its own.
func ValidateEducation(e Education) schema.Issues {
	return educationRules.Struct(e)
}

// ValidateLanguage validates one additional language entry on its own.
func ValidateLanguage(l Language) schema.Issues {
	return languageRules.Struct(l)
}
