package flow

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Ayflow350/lexend-jobs/pkg/form"
	"github.com/Ayflow350/lexend-jobs/pkg/listedit"
	"github.com/Ayflow350/lexend-jobs/pkg/profile"
)

// Method is a way of creating a freelancer profile.
type Method string

const (
	MethodLinkedIn Method = "linkedin"
	MethodResume   Method = "resume"
	MethodManual   Method = "manual"
)

// ParseMethod validates a creation method.
func ParseMethod(raw string) (Method, error) {
	switch m := Method(strings.ToLower(strings.TrimSpace(raw))); m {
	case MethodLinkedIn, MethodResume, MethodManual:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, raw)
	}
}

// Title returns the method name with its first letter upper-cased.
func (m Method) Title() string {
	if m == "" {
		return ""
	}
	return strings.ToUpper(string(m[:1])) + string(m[1:])
}

// Editor names of the freelancer list fields.
const (
	ListEmployment = "employmentHistory"
	ListEducation  = "educationHistory"
	ListLanguages  = "otherLanguages"
)

// Freelancer drives the freelancer profile wizard: a method choice, ten
// numbered steps and a review step.
type Freelancer struct {
	core[profile.Profile]

	manual          bool
	defaultCategory string

	employment *listedit.Editor[profile.Employment]
	education  *listedit.Editor[profile.Education]
	languages  *listedit.Editor[profile.Language]
}

var _ Wizard = (*Freelancer)(nil)

// NewFreelancer creates a freelancer wizard on the method choice step.
func NewFreelancer(opts ...Option) *Freelancer {
	o := buildOptions(opts)
	store := form.NewStore(profile.Defaults(), profile.Validator())
	f := &Freelancer{
		core: core[profile.Profile]{
			kind:      KindFreelancer,
			steps:     freelancerSteps,
			step:      StepMethod,
			store:     store,
			submitter: o.profileSubmitter,
			logger:    o.logger.Named("freelancer"),
		},
		defaultCategory: o.defaultCategory,
	}

	f.employment = listedit.New[profile.Employment](ListEmployment,
		form.NewSliceField(store, ListEmployment, func(p *profile.Profile) *[]profile.Employment { return &p.EmploymentHistory }),
		profile.NewEmployment,
		form.ValidatorFunc[profile.Employment](profile.ValidateEmployment),
	)
	f.education = listedit.New[profile.Education](ListEducation,
		form.NewSliceField(store, ListEducation, func(p *profile.Profile) *[]profile.Education { return &p.EducationHistory }),
		profile.NewEducation,
		form.ValidatorFunc[profile.Education](profile.ValidateEducation),
	)
	f.languages = listedit.New[profile.Language](ListLanguages,
		form.NewSliceField(store, ListLanguages, func(p *profile.Profile) *[]profile.Language { return &p.OtherLanguages }),
		profile.NewLanguage,
		form.ValidatorFunc[profile.Language](profile.ValidateLanguage),
	)
	f.editors = []listedit.Handle{f.employment, f.education, f.languages}
	return f
}

// Manual reports whether the manual flow has started.
func (f *Freelancer) Manual() bool { return f.manual }

// DefaultCategory returns the category the category step starts on.
func (f *Freelancer) DefaultCategory() string { return f.defaultCategory }

// Employment returns the employment history editor.
func (f *Freelancer) Employment() *listedit.Editor[profile.Employment] { return f.employment }

// Education returns the education history editor.
func (f *Freelancer) Education() *listedit.Editor[profile.Education] { return f.education }

// Languages returns the additional languages editor.
func (f *Freelancer) Languages() *listedit.Editor[profile.Language] { return f.languages }

// SelectMethod starts the manual flow. LinkedIn and resume imports are not
// available and return an *ImportError.
func (f *Freelancer) SelectMethod(m Method) error {
	if f.submitting {
		return ErrSubmitting
	}
	switch m {
	case MethodManual:
		f.manual = true
		if f.defaultCategory != "" {
			f.store.Update(func(p *profile.Profile) bool {
				if p.MainCategory != "" {
					return false
				}
				p.MainCategory = f.defaultCategory
				return true
			})
		}
		f.moveTo(manualStartStep)
		return nil
	case MethodLinkedIn, MethodResume:
		f.logger.Debug("import method selected", zap.String("method", string(m)))
		return &ImportError{Method: m}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMethod, m)
	}
}

// Advance validates the current step's fields and moves to the next step.
// On the review step it submits instead. A blocked advance returns false
// with a nil error; the failing fields carry the errors.
func (f *Freelancer) Advance(ctx context.Context) (bool, error) {
	if f.submitting {
		return false, ErrSubmitting
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if !f.manual {
		return false, ErrMethodNotSelected
	}
	if f.step == StepReview {
		_, err := f.Submit(ctx)
		return false, err
	}
	return f.tryAdvance(f.listGate), nil
}

// listGate holds back the employment and education steps until an entry
// exists.
func (f *Freelancer) listGate(step int) bool {
	values := f.store.Values()
	switch step {
	case StepEmployment:
		return len(values.EmploymentHistory) > 0
	case StepEducation:
		return len(values.EducationHistory) > 0
	default:
		return true
	}
}

// Skip moves past the optional employment, education and languages steps
// without validation.
func (f *Freelancer) Skip() error {
	if f.submitting {
		return ErrSubmitting
	}
	if !f.skippable() {
		return ErrSkipNotAllowed
	}
	f.moveTo(f.step + 1)
	return nil
}

func (f *Freelancer) skippable() bool {
	return f.manual && f.step >= StepEmployment && f.step <= StepLanguages
}

// Retreat moves one step back. From the first manual step it returns to the
// method choice and leaves the manual flow.
func (f *Freelancer) Retreat() (bool, error) {
	if f.submitting {
		return false, ErrSubmitting
	}
	if !f.manual {
		return false, nil
	}
	if f.step > manualStartStep {
		f.moveTo(f.step - 1)
		return true, nil
	}
	f.manual = false
	f.moveTo(StepMethod)
	return true, nil
}

// JumpToStep moves to step n when it lies in the numbered range before the
// review step. Other requests are ignored.
func (f *Freelancer) JumpToStep(n int) bool {
	if f.submitting || !f.manual || n < manualStartStep || n >= StepReview {
		return false
	}
	f.moveTo(n)
	return true
}

// CanAdvance reports whether the Next control is enabled.
func (f *Freelancer) CanAdvance() bool {
	if f.submitting || !f.manual {
		return false
	}
	values := f.store.Values()
	switch f.step {
	case StepReview:
		return f.store.IsValid()
	case StepEmployment:
		return len(values.EmploymentHistory) > 0
	case StepEducation:
		return len(values.EducationHistory) > 0
	case StepLanguages:
		return values.EnglishProficiency != ""
	default:
		return f.fieldsClear(f.Current())
	}
}

// CanSkip reports whether the current step offers Skip.
func (f *Freelancer) CanSkip() bool {
	return !f.submitting && f.skippable()
}

// CanRetreat reports whether Back is enabled.
func (f *Freelancer) CanRetreat() bool {
	return !f.submitting && f.manual
}

// StepLabel returns the "Step N of 10" caption of the numbered steps.
func (f *Freelancer) StepLabel() string {
	if !f.manual || f.step >= StepReview {
		return ""
	}
	return fmt.Sprintf("Step %d of %d", f.step-1, numberedStepCount)
}

// Progress returns the progress bar value in percent.
func (f *Freelancer) Progress() float64 {
	if f.step > numberedStepCount {
		return 100
	}
	return float64(f.step-1) * 100 / numberedStepCount
}

// NextLabel returns the caption of the Next control.
func (f *Freelancer) NextLabel() string {
	switch f.step {
	case StepPersonal:
		return "Review Profile"
	case StepReview:
		return "Submit Profile"
	default:
		return "Next"
	}
}

// ToggleSpecialty applies a specialty click on the category step.
func (f *Freelancer) ToggleSpecialty(activeCategory, specialty string) bool {
	if f.submitting {
		return false
	}
	return f.store.Update(func(p *profile.Profile) bool {
		return profile.ToggleSpecialty(p, activeCategory, specialty)
	}, "mainCategory", "specialties")
}

// ClearSelections resets the category step.
func (f *Freelancer) ClearSelections() bool {
	if f.submitting {
		return false
	}
	return f.store.Update(func(p *profile.Profile) bool {
		return profile.ClearSelections(p, f.defaultCategory)
	}, "mainCategory", "specialties")
}

// AddSkill adds a skill typed on the skills step.
func (f *Freelancer) AddSkill(raw string) bool {
	if f.submitting {
		return false
	}
	return f.store.Update(func(p *profile.Profile) bool { return profile.AddSkill(p, raw) }, "skills")
}

// RemoveSkill removes a skill.
func (f *Freelancer) RemoveSkill(skill string) bool {
	if f.submitting {
		return false
	}
	return f.store.Update(func(p *profile.Profile) bool { return profile.RemoveSkill(p, skill) }, "skills")
}

// View returns a snapshot for transports.
func (f *Freelancer) View() View {
	v := f.baseView()
	v.StepLabel = f.StepLabel()
	v.TotalSteps = numberedStepCount
	v.Progress = f.Progress()
	v.Manual = f.manual
	v.CanAdvance = f.CanAdvance()
	v.CanSkip = f.CanSkip()
	v.CanRetreat = f.CanRetreat()
	v.NextLabel = f.NextLabel()
	return v
}
