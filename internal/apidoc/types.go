package apidoc

import (
	"github.com/Ayflow350/lexend-jobs/components/lookups"
	"github.com/Ayflow350/lexend-jobs/pkg/catalog"
	"github.com/Ayflow350/lexend-jobs/pkg/flow"
	"github.com/Ayflow350/lexend-jobs/pkg/jobpost"
	"github.com/Ayflow350/lexend-jobs/pkg/schema"
)

// ErrorBody is the JSON error envelope. Issues is set for validation
// failures.
type ErrorBody struct {
	Error  string        `json:"error"`
	Issues schema.Issues `json:"issues,omitempty"`
}

// State is returned by every wizard operation.
type State struct {
	ID string `json:"id"`
	// Moved reports whether a navigation request changed the step.
	Moved *bool     `json:"moved,omitempty"`
	View  flow.View `json:"view"`
}

// FieldRequest writes one form value.
type FieldRequest struct {
	Path  string `json:"path"`
	Value any    `json:"value"`
}

// MethodRequest picks how a freelancer builds their profile.
type MethodRequest struct {
	Method string `json:"method"`
}

// OpenEditorRequest opens a list editor; a missing index opens a new entry.
type OpenEditorRequest struct {
	Index *int `json:"index,omitempty"`
}

// SpecialtyRequest toggles a specialty under the active category. An empty
// category means the current main category.
type SpecialtyRequest struct {
	Category  string `json:"category"`
	Specialty string `json:"specialty"`
}

// SkillRequest adds a skill.
type SkillRequest struct {
	Skill string `json:"skill"`
}

// PaymentTypeRequest switches the job budget variant.
type PaymentTypeRequest struct {
	PaymentType string `json:"paymentType"`
}

// AttachmentsRequest adds attachment metadata to a job post.
type AttachmentsRequest struct {
	Files []jobpost.Attachment `json:"files"`
}

// ValidateResponse reports the outcome of a validate-all request.
type ValidateResponse struct {
	Valid  bool          `json:"valid"`
	Issues schema.Issues `json:"issues"`
	View   flow.View     `json:"view"`
}

// Health is the liveness payload.
type Health struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Sessions int    `json:"sessions"`
}

// OptionList is the lookup response envelope.
type OptionList struct {
	Data []catalog.Option `json:"data"`
}

// SourceList tells a client which lookup backs each option field.
type SourceList struct {
	Data []lookups.Endpoint `json:"data"`
}
