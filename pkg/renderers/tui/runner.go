// Package tui drives the onboarding wizards from a terminal. A Runner walks a
// flow.Wizard step by step through a PromptDriver, which is backed by survey
// by default and can be swapped for tests.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Ayflow350/lexend-jobs/pkg/catalog"
	"github.com/Ayflow350/lexend-jobs/pkg/flow"
	"github.com/Ayflow350/lexend-jobs/pkg/jobpost"
	"github.com/Ayflow350/lexend-jobs/pkg/schema"
)

// Runner prompts for each wizard step until the record is submitted.
type Runner struct {
	driver  PromptDriver
	theme   Theme
	catalog *catalog.Catalog
	now     func() time.Time
	logger  *zap.Logger
}

// New constructs a Runner. The survey driver and the embedded catalog are
// used unless overridden.
func New(opts ...Option) (*Runner, error) {
	r := &Runner{
		theme:  DefaultTheme,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	if r.catalog == nil {
		cat, err := catalog.Default()
		if err != nil {
			return nil, fmt.Errorf("tui: catalog: %w", err)
		}
		r.catalog = cat
	}
	return r, nil
}

type action int

const (
	actionNext action = iota
	actionEdit
	actionBack
	actionSkip
	actionQuit
)

// Run drives wiz until it is submitted and returns the receipt. Choosing
// Quit, or interrupting a prompt, returns ErrAborted.
func (r *Runner) Run(ctx context.Context, wiz flow.Wizard) (flow.Receipt, error) {
	if wiz == nil {
		return flow.Receipt{}, fmt.Errorf("tui: missing wizard")
	}
	for {
		if err := ctx.Err(); err != nil {
			return flow.Receipt{}, err
		}
		if receipt, ok := wiz.Receipt(); ok {
			return receipt, nil
		}

		view := wiz.View()
		if err := r.header(ctx, view); err != nil {
			return flow.Receipt{}, err
		}

		if view.StepKey == "review" {
			done, err := r.review(ctx, wiz)
			if err != nil {
				return flow.Receipt{}, err
			}
			if done {
				receipt, _ := wiz.Receipt()
				return receipt, nil
			}
			continue
		}

		prompt, err := r.stepPrompt(wiz)
		if err != nil {
			return flow.Receipt{}, err
		}
		if err := prompt(ctx, wiz); err != nil {
			if errors.Is(err, errRestartStep) {
				continue
			}
			return flow.Receipt{}, err
		}
		if err := r.navigate(ctx, wiz); err != nil {
			return flow.Receipt{}, err
		}
	}
}

func (r *Runner) header(ctx context.Context, view flow.View) error {
	title := view.StepTitle
	if view.StepLabel != "" {
		title = view.StepLabel + ": " + title
	}
	return r.driver.Info(ctx, strings.TrimSpace(r.theme.StepPrefix+" "+title))
}

// navigate offers the step's controls and applies the chosen one.
func (r *Runner) navigate(ctx context.Context, wiz flow.Wizard) error {
	view := wiz.View()
	next := view.NextLabel
	if next == "" {
		next = "Next"
	}
	labels := []string{next, "Edit this step"}
	actions := []action{actionNext, actionEdit}
	if view.CanSkip {
		labels = append(labels, "Skip")
		actions = append(actions, actionSkip)
	}
	if view.CanRetreat {
		labels = append(labels, "Back")
		actions = append(actions, actionBack)
	}
	labels = append(labels, "Quit")
	actions = append(actions, actionQuit)

	idx, err := r.driver.Select(ctx, SelectConfig{Message: "What next?", Options: labels})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(actions) {
		return nil
	}

	switch actions[idx] {
	case actionNext:
		moved, err := wiz.Advance(ctx)
		if err != nil {
			return r.softError(ctx, err)
		}
		if !moved {
			return r.issues(ctx, wiz.Errors().Under(wiz.Current().Fields...))
		}
	case actionSkip:
		if err := wiz.Skip(); err != nil {
			return r.softError(ctx, err)
		}
	case actionBack:
		if _, err := wiz.Retreat(); err != nil {
			return r.softError(ctx, err)
		}
	case actionQuit:
		return ErrAborted
	}
	return nil
}

// review prints the review projection and offers submit, edit jumps, back
// and quit. It reports whether the record was submitted.
func (r *Runner) review(ctx context.Context, wiz flow.Wizard) (bool, error) {
	rev := wiz.Review()
	for _, section := range rev.Sections {
		if err := r.driver.Info(ctx, formatSection(section)); err != nil {
			return false, err
		}
	}

	view := wiz.View()
	submit := view.NextLabel
	if submit == "" {
		submit = "Submit"
	}
	labels := []string{submit}
	for _, section := range rev.Sections {
		labels = append(labels, "Edit "+section.Title)
	}
	labels = append(labels, "Back", "Quit")

	idx, err := r.driver.Select(ctx, SelectConfig{Message: rev.Heading, Options: labels})
	if err != nil {
		return false, err
	}
	switch {
	case idx == 0:
		receipt, err := wiz.Submit(ctx)
		if err != nil {
			var validation *schema.ValidationError
			if errors.As(err, &validation) {
				return false, r.issues(ctx, validation.Issues)
			}
			return false, r.softError(ctx, err)
		}
		return true, r.driver.Info(ctx, r.theme.InfoPrefix+receipt.Message)
	case idx > 0 && idx <= len(rev.Sections):
		wiz.JumpToStep(rev.Sections[idx-1].EditStep)
	case idx == len(rev.Sections)+1:
		if _, err := wiz.Retreat(); err != nil {
			return false, r.softError(ctx, err)
		}
	case idx == len(rev.Sections)+2:
		return false, ErrAborted
	}
	return false, nil
}

func formatSection(section flow.ReviewSection) string {
	var b strings.Builder
	b.WriteString(section.Title)
	if len(section.Items) == 0 {
		b.WriteString("\n  " + section.Empty)
		return b.String()
	}
	for _, item := range section.Items {
		b.WriteString("\n  ")
		if item.Label != "" {
			b.WriteString(item.Label + ": ")
		}
		value := item.Value
		if item.HTML {
			value = jobpost.DescriptionText(value)
		}
		b.WriteString(value)
		if item.Note != "" {
			b.WriteString(" (" + item.Note + ")")
		}
	}
	return b.String()
}

// issues prints validation messages.
func (r *Runner) issues(ctx context.Context, issues schema.Issues) error {
	for _, issue := range issues {
		msg := issue.Message
		if issue.Path != "" {
			msg = issue.Path + ": " + msg
		}
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+" "+msg); err != nil {
			return err
		}
	}
	return nil
}

// softError reports a refused operation and lets the user carry on. Aborts
// and cancellations still end the run.
func (r *Runner) softError(ctx context.Context, err error) error {
	if errors.Is(err, ErrAborted) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	r.logger.Debug("operation refused", zap.Error(err))
	return r.driver.Info(ctx, r.theme.ErrorPrefix+" "+err.Error())
}
