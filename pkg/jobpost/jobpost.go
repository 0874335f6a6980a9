// Package jobpost defines the job post record collected by the company
// onboarding wizard: job title, skills, scope, a tagged budget, the rich-text
// description and attachments.
package jobpost

import (
	"encoding/json"
	"errors"
)

var (
	// ErrUnknownPaymentType is returned for a payment type other than hourly
	// or fixed.
	ErrUnknownPaymentType = errors.New("jobpost: unknown payment type")
	// ErrPaymentTypeUnset is returned when budget amounts are written before
	// a payment type is selected.
	ErrPaymentTypeUnset = errors.New("jobpost: select a payment type before setting budget amounts")
)

type ProjectSize string

const (
	SizeLarge  ProjectSize = "large"
	SizeMedium ProjectSize = "medium"
	SizeSmall  ProjectSize = "small"
)

type ProjectDuration string

const (
	DurationMoreThan6Months ProjectDuration = "moreThan6Months"
	Duration3To6Months      ProjectDuration = "3to6Months"
	Duration1To3Months      ProjectDuration = "1to3Months"
)

type ExperienceLevel string

const (
	ExperienceEntry        ExperienceLevel = "entry"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceExpert       ExperienceLevel = "expert"
)

// Attachment describes an uploaded file. Only metadata is kept; file
// contents are never stored.
type Attachment struct {
	Name string `json:"name" validate:"required"`
	Size int64  `json:"size" validate:"min=0,max=104857600"`
	Type string `json:"type" validate:"oneof=application/pdf application/msword application/vnd.openxmlformats-officedocument.wordprocessingml.document text/plain image/jpeg image/png application/zip"`
}

// JobPost is the complete company onboarding record.
type JobPost struct {
	JobTitle        string          `json:"jobTitle" validate:"required,min=5,max=100"`
	Skills          []string        `json:"skills" validate:"min=1,max=15,dive,min=1,max=50"`
	ProjectSize     ProjectSize     `json:"projectSize,omitempty" validate:"required,oneof=large medium small"`
	ProjectDuration ProjectDuration `json:"projectDuration,omitempty" validate:"required,oneof=moreThan6Months 3to6Months 1to3Months"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel,omitempty" validate:"required,oneof=entry intermediate expert"`
	Budget          Budget          `json:"-" validate:"-"`
	JobDescription  string          `json:"jobDescription"`
	Attachments     []Attachment    `json:"attachments" validate:"max=5,dive"`
}

// Defaults returns the record a new company wizard starts from.
func Defaults() JobPost {
	return JobPost{
		Skills:      []string{},
		Attachments: []Attachment{},
	}
}

// Clone returns a deep copy of j.
func (j JobPost) Clone() JobPost {
	if j.Skills != nil {
		j.Skills = append(make([]string, 0, len(j.Skills)), j.Skills...)
	}
	if j.Attachments != nil {
		j.Attachments = append(make([]Attachment, 0, len(j.Attachments)), j.Attachments...)
	}
	j.Budget = cloneBudget(j.Budget)
	return j
}

type jobPostAlias JobPost

type jobPostWire struct {
	jobPostAlias
	Budget *budgetPayload `json:"budget"`
}

// MarshalJSON flattens the budget variant under `budget`.
func (j JobPost) MarshalJSON() ([]byte, error) {
	return json.Marshal(jobPostWire{jobPostAlias: jobPostAlias(j), Budget: encodeBudget(j.Budget)})
}

// UnmarshalJSON decodes the flat budget into its variant. Amounts that do not
// belong to the selected payment type are dropped.
func (j *JobPost) UnmarshalJSON(data []byte) error {
	var wire jobPostWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	budget, err := wire.Budget.decode()
	if err != nil {
		return err
	}
	*j = JobPost(wire.jobPostAlias)
	j.Budget = budget
	return nil
}
