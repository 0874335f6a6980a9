package flow

import (
	"context"
	"fmt"

	"github.com/Ayflow350/lexend-jobs/pkg/form"
	"github.com/Ayflow350/lexend-jobs/pkg/jobpost"
)

// Company drives the company job post wizard: six linear steps ending in a
// review step that publishes.
type Company struct {
	core[jobpost.JobPost]
}

var _ Wizard = (*Company)(nil)

// NewCompany creates a company wizard on the job title step.
func NewCompany(opts ...Option) *Company {
	o := buildOptions(opts)
	return &Company{core: core[jobpost.JobPost]{
		kind:      KindCompany,
		steps:     companySteps,
		step:      StepJobTitle,
		store:     form.NewStore(jobpost.Defaults(), jobpost.Validator()),
		submitter: o.jobSubmitter,
		logger:    o.logger.Named("company"),
	}}
}

// Advance validates the current step's fields and moves on; on the review
// step it publishes.
func (c *Company) Advance(ctx context.Context) (bool, error) {
	if c.submitting {
		return false, ErrSubmitting
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if c.step == StepJobReview {
		_, err := c.Submit(ctx)
		return false, err
	}
	return c.tryAdvance(nil), nil
}

// Skip is not offered by the company wizard.
func (c *Company) Skip() error {
	return ErrSkipNotAllowed
}

// Retreat moves one step back, stopping at the first step.
func (c *Company) Retreat() (bool, error) {
	if c.submitting {
		return false, ErrSubmitting
	}
	if c.step <= StepJobTitle {
		return false, nil
	}
	c.moveTo(c.step - 1)
	return true, nil
}

// JumpToStep moves to any step before the review step.
func (c *Company) JumpToStep(n int) bool {
	if c.submitting || n < StepJobTitle || n >= StepJobReview {
		return false
	}
	c.moveTo(n)
	return true
}

// CanAdvance reports whether the Next/Publish control is enabled: the review
// step needs the whole post to be valid, other steps need their fields clear
// of errors.
func (c *Company) CanAdvance() bool {
	if c.submitting {
		return false
	}
	if c.step == StepJobReview {
		return c.store.IsValid()
	}
	return c.fieldsClear(c.Current())
}

// CanSkip is always false.
func (c *Company) CanSkip() bool { return false }

// CanRetreat reports whether Back is enabled.
func (c *Company) CanRetreat() bool {
	return !c.submitting && c.step > StepJobTitle
}

// StepLabel returns the caption above the progress bar.
func (c *Company) StepLabel() string {
	if c.step == StepJobReview {
		return "Review & Publish"
	}
	return fmt.Sprintf("Job post • Step %d of %d", c.step, companyStepCount)
}

// Progress returns the progress bar value in percent.
func (c *Company) Progress() float64 {
	return float64(c.step) * 100 / companyStepCount
}

// NextLabel returns the caption of the Next/Publish control.
func (c *Company) NextLabel() string {
	switch c.step {
	case StepJobTitle:
		return "Next: Skills"
	case StepJobSkills:
		return "Next: Scope"
	case StepScope:
		return "Next: Budget"
	case StepBudget:
		return "Next: Description"
	case StepDescription:
		return "Next: Review"
	default:
		return "Publish Job Post"
	}
}

// AddSkill adds a typed or suggested skill.
func (c *Company) AddSkill(raw string) bool {
	if c.submitting {
		return false
	}
	return c.store.Update(func(j *jobpost.JobPost) bool { return jobpost.AddSkill(j, raw) }, "skills")
}

// RemoveSkill removes a skill.
func (c *Company) RemoveSkill(skill string) bool {
	if c.submitting {
		return false
	}
	return c.store.Update(func(j *jobpost.JobPost) bool { return jobpost.RemoveSkill(j, skill) }, "skills")
}

// SetPaymentType switches the budget variant, clearing the amounts of the
// other one.
func (c *Company) SetPaymentType(pt jobpost.PaymentType) (bool, error) {
	if c.submitting {
		return false, ErrSubmitting
	}
	var err error
	changed := c.store.Update(func(j *jobpost.JobPost) bool {
		var ok bool
		ok, err = jobpost.SetPaymentType(j, pt)
		return ok
	}, "budget")
	return changed, err
}

// ClearFixedBudget handles "not ready to set a budget".
func (c *Company) ClearFixedBudget() bool {
	if c.submitting {
		return false
	}
	return c.store.Update(jobpost.ClearFixedBudget, "budget")
}

// AddAttachments appends files, keeping the first five overall.
func (c *Company) AddAttachments(files ...jobpost.Attachment) int {
	if c.submitting {
		return 0
	}
	var kept int
	c.store.Update(func(j *jobpost.JobPost) bool {
		kept = jobpost.AddAttachments(j, files...)
		return kept > 0
	}, "attachments")
	return kept
}

// RemoveAttachment deletes attachment i.
func (c *Company) RemoveAttachment(i int) error {
	if c.submitting {
		return ErrSubmitting
	}
	var err error
	c.store.Update(func(j *jobpost.JobPost) bool {
		err = jobpost.RemoveAttachment(j, i)
		return err == nil
	}, "attachments")
	return err
}

// SetDescription stores sanitised description HTML and refreshes the
// description errors. It reports whether the stored HTML changed.
func (c *Company) SetDescription(raw string) bool {
	if c.submitting {
		return false
	}
	var changed bool
	c.store.Update(func(j *jobpost.JobPost) bool {
		changed = jobpost.SetDescription(j, raw)
		return true
	}, "jobDescription")
	return changed
}

// SetField writes one field. The description is sanitised on the way in.
func (c *Company) SetField(path string, value any) error {
	if path != "jobDescription" {
		return c.core.SetField(path, value)
	}
	if c.submitting {
		return ErrSubmitting
	}
	raw, ok := value.(string)
	if !ok {
		return fmt.Errorf("flow: jobDescription must be a string, got %T", value)
	}
	c.SetDescription(raw)
	return nil
}

// View returns a snapshot for transports.
func (c *Company) View() View {
	v := c.baseView()
	v.StepLabel = c.StepLabel()
	v.TotalSteps = companyStepCount
	v.Progress = c.Progress()
	v.CanAdvance = c.CanAdvance()
	v.CanSkip = false
	v.CanRetreat = c.CanRetreat()
	v.NextLabel = c.NextLabel()
	return v
}
