package jobpost

import (
	"fmt"
	"slices"
	"strings"
)

const (
	// MaxSkills caps the skills list.
	MaxSkills = 15
	// MaxAttachments caps the attachments list.
	MaxAttachments = 5
	// MaxAttachmentSize is the largest accepted file, in bytes.
	MaxAttachmentSize = 100 * 1024 * 1024
)

// AcceptedFileTypes lists the MIME types attachments may have.
var AcceptedFileTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"text/plain",
	"image/jpeg",
	"image/png",
	"application/zip",
}

var popularSkills = []string{
	"WordPress",
	"WooCommerce",
	"Web Development",
	"PHP",
	"CSS",
	"Web Design",
	"JavaScript",
	"HTML5",
	"WordPress Plugin",
	"Ecommerce Website",
	"CSS3",
	"MySQL",
	"jQuery",
	"Website Customization",
	"Website",
	"Stripe",
	"API",
	"Ecommerce Website Development",
}

// PopularSkills returns the one-click skill suggestions.
func PopularSkills() []string {
	return slices.Clone(popularSkills)
}

// AddSkill trims the input, drops one trailing comma and appends it unless it
// is empty, already present or the list is full.
func AddSkill(j *JobPost, raw string) bool {
	skill := strings.TrimSuffix(strings.TrimSpace(raw), ",")
	if skill == "" || len(j.Skills) >= MaxSkills || slices.Contains(j.Skills, skill) {
		return false
	}
	j.Skills = append(slices.Clone(j.Skills), skill)
	return true
}

// RemoveSkill drops every exact occurrence of skill.
func RemoveSkill(j *JobPost, skill string) bool {
	if !slices.Contains(j.Skills, skill) {
		return false
	}
	j.Skills = slices.DeleteFunc(slices.Clone(j.Skills), func(s string) bool { return s == skill })
	return true
}

// SetPaymentType switches the budget variant. Amounts of the previous variant
// are cleared; selecting the current type again keeps the budget as is.
func SetPaymentType(j *JobPost, pt PaymentType) (bool, error) {
	if j.Budget != nil && j.Budget.PaymentType() == pt {
		return false, nil
	}
	budget, err := NewBudget(pt)
	if err != nil {
		return false, err
	}
	if j.Budget == nil && budget == nil {
		return false, nil
	}
	j.Budget = budget
	return true, nil
}

// ClearFixedBudget implements "not ready to set a budget": the fixed amount is
// cleared when the fixed variant is selected.
func ClearFixedBudget(j *JobPost) bool {
	fixed, ok := j.Budget.(FixedBudget)
	if !ok || fixed.Amount == nil {
		return false
	}
	j.Budget = FixedBudget{}
	return true
}

// AddAttachments appends files, keeping only the first MaxAttachments overall.
// It reports how many of the new files were kept.
func AddAttachments(j *JobPost, files ...Attachment) int {
	room := MaxAttachments - len(j.Attachments)
	if room <= 0 || len(files) == 0 {
		return 0
	}
	if len(files) > room {
		files = files[:room]
	}
	next := make([]Attachment, 0, len(j.Attachments)+len(files))
	next = append(next, j.Attachments...)
	j.Attachments = append(next, files...)
	return len(files)
}

// RemoveAttachment deletes attachment i.
func RemoveAttachment(j *JobPost, i int) error {
	if i < 0 || i >= len(j.Attachments) {
		return fmt.Errorf("jobpost: attachment %d out of range", i)
	}
	j.Attachments = slices.Delete(slices.Clone(j.Attachments), i, i+1)
	return nil
}

// SetDescription stores the sanitised form of raw editor HTML.
func SetDescription(j *JobPost, raw string) bool {
	clean := SanitizeDescription(raw)
	if clean == j.JobDescription {
		return false
	}
	j.JobDescription = clean
	return true
}
