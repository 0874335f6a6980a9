package jobpost

import (
	"strings"

	"github.com/Ayflow350/lexend-jobs/pkg/form"
	"github.com/Ayflow350/lexend-jobs/pkg/schema"
)

// Messages holds the user-facing message of every struct rule.
var Messages = schema.Messages{
	"jobTitle.required":           "Job title is required.",
	"jobTitle.min":                "Job title must be at least 5 characters.",
	"jobTitle.max":                "Job title cannot exceed 100 characters.",
	"skills.min":                  "Please add at least one skill.",
	"skills.max":                  "You can add a maximum of 15 skills.",
	"skills.*.min":                "Skill cannot be empty.",
	"skills.*.max":                "Skill is too long.",
	"projectSize.required":        "Please select a project size.",
	"projectSize.oneof":           "Invalid project size selected.",
	"projectDuration.required":    "Please select the project duration.",
	"projectDuration.oneof":       "Invalid project duration selected.",
	"experienceLevel.required":    "Please select the required experience level.",
	"experienceLevel.oneof":       "Invalid experience level selected.",
	"attachments.max":             "You can upload a maximum of 5 files.",
	"attachments.*.name.required": "Invalid file provided.",
	"attachments.*.size.min":      "Invalid file provided.",
	"attachments.*.size.max":      "File size should be less than 100MB.",
	"attachments.*.type.oneof":    "Unsupported file type.",
}

const (
	msgDescriptionRequired = "Job description is required."
	msgDescriptionShort    = "Description must be at least 50 characters."
	msgDescriptionLong     = "Description cannot exceed 50,000 characters."
)

var postRules = schema.NewValidator(Messages)

// Validate runs every job post rule: struct rules, the budget variant rules
// under `budget` and the description length rule.
func Validate(j JobPost) schema.Issues {
	issues := postRules.Struct(j)
	issues = issues.Merge(ValidateBudget(j.Budget).Prefix("budget")...)
	issues = issues.Merge(ValidateDescription(j.JobDescription).Prefix("jobDescription")...)
	return issues
}

// Validator returns the job post validator used by the form store.
func Validator() form.Validator[JobPost] {
	return form.ValidatorFunc[JobPost](Validate)
}

// ValidateDescription checks the text length of a description.
func ValidateDescription(raw string) schema.Issues {
	if strings.TrimSpace(DescriptionText(raw)) == "" {
		return schema.Issues{{Message: msgDescriptionRequired}}
	}
	switch n := DescriptionLength(raw); {
	case n < minDescription:
		return schema.Issues{{Message: msgDescriptionShort}}
	case n > maxDescription:
		return schema.Issues{{Message: msgDescriptionLong}}
	}
	return nil
}
