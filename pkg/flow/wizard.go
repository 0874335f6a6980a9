package flow

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Ayflow350/lexend-jobs/pkg/form"
	"github.com/Ayflow350/lexend-jobs/pkg/listedit"
	"github.com/Ayflow350/lexend-jobs/pkg/schema"
)

// ErrNotAtReview is returned by Submit before the review step is reached.
var ErrNotAtReview = errors.New("flow: submit is only available on the review step")

// Wizard is the surface shared by both controllers. Transports drive a
// wizard through it and reach kind-specific step helpers with a type switch
// on *Freelancer or *Company.
type Wizard interface {
	Kind() Kind
	Step() int
	Steps() []Step
	Current() Step
	CanAdvance() bool
	CanSkip() bool
	CanRetreat() bool
	Advance(ctx context.Context) (bool, error)
	Skip() error
	Retreat() (bool, error)
	JumpToStep(n int) bool
	Submit(ctx context.Context) (Receipt, error)
	Receipt() (Receipt, bool)
	SetField(path string, value any) error
	Field(path string) (any, bool)
	Validate() schema.Issues
	Errors() schema.Issues
	Editor(name string) (listedit.Handle, bool)
	OpenEditor(name string, index int) (listedit.Handle, error)
	Record() any
	View() View
	Review() Review
}

// New builds the controller for kind.
func New(kind Kind, opts ...Option) (Wizard, error) {
	switch kind {
	case KindFreelancer:
		return NewFreelancer(opts...), nil
	case KindCompany:
		return NewCompany(opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// View is a snapshot of a wizard for transports.
type View struct {
	Kind       Kind          `json:"kind"`
	Step       int           `json:"step"`
	StepKey    string        `json:"stepKey"`
	StepTitle  string        `json:"stepTitle"`
	StepLabel  string        `json:"stepLabel,omitempty"`
	TotalSteps int           `json:"totalSteps"`
	Progress   float64       `json:"progress"`
	Manual     bool          `json:"manual"`
	CanAdvance bool          `json:"canAdvance"`
	CanSkip    bool          `json:"canSkip"`
	CanRetreat bool          `json:"canRetreat"`
	NextLabel  string        `json:"nextLabel,omitempty"`
	Values     any           `json:"values"`
	Errors     schema.Issues `json:"errors"`
	Editor     *EditorView   `json:"editor,omitempty"`
	Submitted  bool          `json:"submitted"`
	Receipt    *Receipt      `json:"receipt,omitempty"`
}

// EditorView describes the open list editor.
type EditorView struct {
	List   string        `json:"list"`
	Index  *int          `json:"index,omitempty"`
	Draft  any           `json:"draft"`
	Errors schema.Issues `json:"errors,omitempty"`
}

// core holds what both controllers share: the step pointer, the form store,
// the list editors and the submission state.
type core[T any] struct {
	kind       Kind
	steps      []Step
	step       int
	store      *form.Store[T]
	submitter  Submitter[T]
	logger     *zap.Logger
	editors    []listedit.Handle
	submitting bool
	receipt    *Receipt
}

func (c *core[T]) Kind() Kind { return c.kind }

// Step returns the current step number.
func (c *core[T]) Step() int { return c.step }

// Steps returns the step table.
func (c *core[T]) Steps() []Step { return cloneSteps(c.steps) }

// Current returns the current step.
func (c *core[T]) Current() Step { return stepAt(c.steps, c.step) }

// Store exposes the form store backing the wizard.
func (c *core[T]) Store() *form.Store[T] { return c.store }

// Values returns a copy of the record.
func (c *core[T]) Values() T { return c.store.Values() }

// Record returns a copy of the record as an untyped value.
func (c *core[T]) Record() any { return c.store.Values() }

// SetField writes one field and refreshes its errors.
func (c *core[T]) SetField(path string, value any) error {
	if c.submitting {
		return ErrSubmitting
	}
	return c.store.SetField(path, value)
}

// Field reads one field.
func (c *core[T]) Field(path string) (any, bool) {
	return c.store.Field(path)
}

// Validate validates the whole record and surfaces every issue.
func (c *core[T]) Validate() schema.Issues {
	return c.store.Validate()
}

// Errors returns the surfaced errors.
func (c *core[T]) Errors() schema.Issues {
	return c.store.Errors()
}

// Receipt returns the acknowledgement of the last successful submission.
func (c *core[T]) Receipt() (Receipt, bool) {
	if c.receipt == nil {
		return Receipt{}, false
	}
	return *c.receipt, true
}

// Editor looks up a list editor by its list field name.
func (c *core[T]) Editor(name string) (listedit.Handle, bool) {
	for _, ed := range c.editors {
		if ed.Name() == name {
			return ed, true
		}
	}
	return nil, false
}

// OpenEditor opens the named editor on entry index, or on a blank draft when
// index is negative. Any other open editor is cancelled first.
func (c *core[T]) OpenEditor(name string, index int) (listedit.Handle, error) {
	if c.submitting {
		return nil, ErrSubmitting
	}
	ed, ok := c.Editor(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEditor, name)
	}
	for _, other := range c.editors {
		if other != ed && other.IsOpen() {
			other.Cancel()
		}
	}
	if index < 0 {
		ed.OpenNew()
		return ed, nil
	}
	if err := ed.OpenEdit(index); err != nil {
		return nil, err
	}
	return ed, nil
}

func (c *core[T]) openEditor() listedit.Handle {
	for _, ed := range c.editors {
		if ed.IsOpen() {
			return ed
		}
	}
	return nil
}

func (c *core[T]) reviewStep() int {
	return c.steps[len(c.steps)-1].Number
}

// Submit validates the whole record and hands it to the submitter. It is
// only available on the review step.
func (c *core[T]) Submit(ctx context.Context) (Receipt, error) {
	if c.submitting {
		return Receipt{}, ErrSubmitting
	}
	if err := ctx.Err(); err != nil {
		return Receipt{}, err
	}
	if c.step != c.reviewStep() {
		return Receipt{}, ErrNotAtReview
	}
	if issues := c.store.Validate(); !issues.Valid() {
		c.logger.Debug("submit blocked", zap.String("wizard", string(c.kind)), zap.Strings("fields", issues.Paths()))
		return Receipt{}, issues.Err()
	}

	c.submitting = true
	defer func() { c.submitting = false }()

	receipt, err := c.submitter.Submit(ctx, c.store.Values())
	if err != nil {
		c.logger.Warn("submit failed", zap.String("wizard", string(c.kind)), zap.Error(err))
		return Receipt{}, fmt.Errorf("flow: submit %s: %w", c.kind, err)
	}
	c.receipt = &receipt
	c.logger.Info("wizard submitted", zap.String("wizard", string(c.kind)))
	return receipt, nil
}

// tryAdvance validates the current step's fields and moves forward when they
// pass. gate adds a step-specific readiness check on top of the field rules.
func (c *core[T]) tryAdvance(gate func(step int) bool) bool {
	current := c.Current()
	ok := len(current.Fields) == 0 || c.store.Trigger(current.Fields...)
	if ok && gate != nil {
		ok = gate(c.step)
	}
	if !ok {
		c.logger.Debug("advance blocked",
			zap.String("wizard", string(c.kind)),
			zap.Int("step", c.step),
			zap.Strings("fields", c.store.Errors().Under(current.Fields...).Paths()),
		)
		return false
	}
	c.moveTo(c.step + 1)
	return true
}

func (c *core[T]) moveTo(step int) {
	c.logger.Debug("step changed", zap.String("wizard", string(c.kind)), zap.Int("from", c.step), zap.Int("to", step))
	c.step = step
}

// fieldsClear reports whether no surfaced error sits under the step's fields.
func (c *core[T]) fieldsClear(step Step) bool {
	return len(step.Fields) == 0 || !c.store.HasErrors(step.Fields...)
}

func (c *core[T]) baseView() View {
	current := c.Current()
	v := View{
		Kind:      c.kind,
		Step:      c.step,
		StepKey:   current.Key,
		StepTitle: current.Title,
		Values:    c.store.Values(),
		Errors:    c.store.Errors(),
		Submitted: c.receipt != nil,
	}
	if v.Errors == nil {
		v.Errors = schema.Issues{}
	}
	if c.receipt != nil {
		receipt := *c.receipt
		v.Receipt = &receipt
	}
	if ed := c.openEditor(); ed != nil {
		ev := &EditorView{List: ed.Name(), Draft: ed.DraftValue(), Errors: ed.Errors()}
		if idx, ok := ed.EditingIndex(); ok {
			ev.Index = &idx
		}
		v.Editor = ev
	}
	return v
}
