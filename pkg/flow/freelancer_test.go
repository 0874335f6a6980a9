package flow_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Ayflow350/lexend-jobs/pkg/flow"
	"github.com/Ayflow350/lexend-jobs/pkg/profile"
	"github.com/Ayflow350/lexend-jobs/pkg/schema"
)

func manualFreelancer(t *testing.T, opts ...flow.Option) *flow.Freelancer {
	t.Helper()
	opts = append([]flow.Option{flow.WithDefaultCategory("development-it")}, opts...)
	f := flow.NewFreelancer(opts...)
	if err := f.SelectMethod(flow.MethodManual); err != nil {
		t.Fatalf("select manual: %v", err)
	}
	return f
}

func mustSet(t *testing.T, w flow.Wizard, path string, value any) {
	t.Helper()
	if err := w.SetField(path, value); err != nil {
		t.Fatalf("set %s: %v", path, err)
	}
}

func mustAdvance(t *testing.T, w flow.Wizard) {
	t.Helper()
	before := w.Step()
	ok, err := w.Advance(context.Background())
	if err != nil || !ok {
		t.Fatalf("advance from step %d: ok=%v err=%v errors=%v", before, ok, err, w.Errors())
	}
}

// fillFreelancer walks the manual flow to the review step with valid data.
func fillFreelancer(t *testing.T, f *flow.Freelancer) {
	t.Helper()
	f.ToggleSpecialty("development-it", "Web Development")
	mustAdvance(t, f)

	f.AddSkill("go")
	mustAdvance(t, f)

	mustSet(t, f, "professionalTitle", "Senior Backend Engineer")
	mustAdvance(t, f)

	if _, err := f.OpenEditor(flow.ListEmployment, -1); err != nil {
		t.Fatalf("open employment: %v", err)
	}
	err := f.Employment().UpdateDraft(func(e *profile.Employment) {
		e.Title = "Engineer"
		e.Company = "Acme"
		e.IsCurrentRole = true
		e.StartDate = profile.MonthYear{Month: "March", Year: "2019"}
	})
	if err != nil {
		t.Fatalf("update employment draft: %v", err)
	}
	if err := f.Employment().Save(); err != nil {
		t.Fatalf("save employment: %v", err)
	}
	mustAdvance(t, f)

	f.Education().OpenNew()
	if err := f.Education().SetDraftField("school", "State University"); err != nil {
		t.Fatalf("set school: %v", err)
	}
	if err := f.Education().Save(); err != nil {
		t.Fatalf("save education: %v", err)
	}
	mustAdvance(t, f)

	mustAdvance(t, f)

	mustSet(t, f, "professionalOverview", strings.Repeat("I build reliable services. ", 5))
	mustAdvance(t, f)

	mustSet(t, f, "hourlyRate", 45)
	mustAdvance(t, f)

	for path, value := range map[string]any{
		"profilePhoto":      "avatar.png",
		"dateOfBirth":       "1990-04-12",
		"country":           "US",
		"streetAddress":     "1 Main St",
		"city":              "Springfield",
		"stateProvince":     "IL",
		"zipCode":           "62701",
		"phone.phoneNumber": "5550100",
	} {
		mustSet(t, f, path, value)
	}
	mustAdvance(t, f)
	if f.Step() != flow.StepReview {
		t.Fatalf("expected review step, got %d", f.Step())
	}
}

func TestFreelancer_MethodSelection(t *testing.T) {
	f := flow.NewFreelancer(flow.WithDefaultCategory("development-it"))
	if f.Step() != flow.StepMethod || f.Manual() {
		t.Fatalf("wizard must start on the method choice")
	}
	if _, err := f.Advance(context.Background()); !errors.Is(err, flow.ErrMethodNotSelected) {
		t.Fatalf("expected ErrMethodNotSelected, got %v", err)
	}

	err := f.SelectMethod(flow.MethodLinkedIn)
	var importErr *flow.ImportError
	if !errors.As(err, &importErr) || !errors.Is(err, flow.ErrImportUnavailable) {
		t.Fatalf("expected import error, got %v", err)
	}
	if err.Error() != "Linkedin import flow would start here." {
		t.Fatalf("unexpected import message %q", err.Error())
	}
	if f.Step() != flow.StepMethod {
		t.Fatalf("import must not move the wizard")
	}

	if err := f.SelectMethod(flow.MethodManual); err != nil {
		t.Fatalf("select manual: %v", err)
	}
	if f.Step() != flow.StepCategory || !f.Manual() {
		t.Fatalf("manual must start at step 2")
	}
	if got, _ := f.Field("mainCategory"); got != "development-it" {
		t.Fatalf("main category must default to the first category, got %v", got)
	}
	if _, err := flow.ParseMethod("fax"); !errors.Is(err, flow.ErrUnknownMethod) {
		t.Fatalf("expected ErrUnknownMethod, got %v", err)
	}
}

func TestFreelancer_AdvanceGatesOnDeclaredFields(t *testing.T) {
	f := manualFreelancer(t)
	f.ToggleSpecialty("development-it", "Web Development")
	mustAdvance(t, f)

	ok, err := f.Advance(context.Background())
	if err != nil || ok {
		t.Fatalf("empty skills must block: ok=%v err=%v", ok, err)
	}
	if f.Step() != flow.StepSkills {
		t.Fatalf("step must not change, got %d", f.Step())
	}
	want := schema.Issues{{Path: "skills", Message: "Please add at least one skill."}}
	if diff := cmp.Diff(want, f.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if f.CanAdvance() {
		t.Fatalf("Next must be disabled while skills has errors")
	}

	f.AddSkill("go")
	if !f.CanAdvance() {
		t.Fatalf("adding a skill must clear the skills error")
	}
	mustAdvance(t, f)
	if f.Step() != flow.StepTitle {
		t.Fatalf("expected title step, got %d", f.Step())
	}

	mustSet(t, f, "professionalTitle", "Too short")
	if ok, _ := f.Advance(context.Background()); ok {
		t.Fatalf("short title must block")
	}
	if got := f.Errors().For("professionalTitle"); len(got) != 1 || got[0] != "Your title must be at least 10 characters." {
		t.Fatalf("unexpected title errors %v", got)
	}
}

func TestFreelancer_SkipOnlyOnOptionalSteps(t *testing.T) {
	f := manualFreelancer(t)
	if err := f.Skip(); !errors.Is(err, flow.ErrSkipNotAllowed) {
		t.Fatalf("skip on step 2 must be refused, got %v", err)
	}
	if f.Step() != flow.StepCategory {
		t.Fatalf("refused skip must not move")
	}

	for _, n := range []int{flow.StepEmployment, flow.StepEducation, flow.StepLanguages} {
		if !f.JumpToStep(n) {
			t.Fatalf("jump to %d refused", n)
		}
		if !f.CanSkip() {
			t.Fatalf("step %d must offer skip", n)
		}
		if err := f.Skip(); err != nil {
			t.Fatalf("skip on %d: %v", n, err)
		}
		if f.Step() != n+1 {
			t.Fatalf("skip on %d landed on %d", n, f.Step())
		}
	}

	if err := f.Skip(); !errors.Is(err, flow.ErrSkipNotAllowed) {
		t.Fatalf("skip on step 8 must be refused, got %v", err)
	}
}

func TestFreelancer_ListStepsGateOnEntries(t *testing.T) {
	f := manualFreelancer(t)
	f.JumpToStep(flow.StepEmployment)
	if f.CanAdvance() {
		t.Fatalf("employment step needs an entry")
	}
	if ok, _ := f.Advance(context.Background()); ok {
		t.Fatalf("advance must be blocked on an empty employment list")
	}

	f.JumpToStep(flow.StepLanguages)
	if !f.CanAdvance() {
		t.Fatalf("languages step only needs english proficiency, which defaults to basic")
	}
	mustSet(t, f, "englishProficiency", "")
	if f.CanAdvance() {
		t.Fatalf("missing english proficiency must disable Next")
	}
}

func TestFreelancer_RetreatAndJump(t *testing.T) {
	f := manualFreelancer(t)
	f.JumpToStep(flow.StepTitle)
	if ok, err := f.Retreat(); !ok || err != nil || f.Step() != flow.StepSkills {
		t.Fatalf("retreat from 4 must land on 3, got %d", f.Step())
	}
	f.Retreat()
	if f.Step() != flow.StepCategory || !f.Manual() {
		t.Fatalf("expected step 2 in manual flow")
	}
	f.Retreat()
	if f.Step() != flow.StepMethod || f.Manual() {
		t.Fatalf("retreat from 2 must reset to the method choice")
	}
	if ok, _ := f.Retreat(); ok {
		t.Fatalf("retreat on the method choice is a no-op")
	}

	f.SelectMethod(flow.MethodManual)
	for _, n := range []int{0, 1, flow.StepReview, 42} {
		if f.JumpToStep(n) {
			t.Fatalf("jump to %d must be ignored", n)
		}
	}
	if f.Step() != flow.StepCategory {
		t.Fatalf("ignored jumps must not move the wizard")
	}
}

func TestFreelancer_LabelsAndProgress(t *testing.T) {
	f := manualFreelancer(t)
	if got := f.View(); got.StepLabel != "Step 1 of 10" || got.Progress != 10 || got.NextLabel != "Next" {
		t.Fatalf("unexpected view labels %+v", got)
	}
	f.JumpToStep(flow.StepPersonal)
	if got := f.View(); got.StepLabel != "Step 9 of 10" || got.Progress != 90 || got.NextLabel != "Review Profile" {
		t.Fatalf("unexpected view labels %+v", got)
	}
}

func TestFreelancer_SubmitFromReview(t *testing.T) {
	var got profile.Profile
	calls := 0
	submitter := flow.SubmitterFunc[profile.Profile](func(_ context.Context, p profile.Profile) (flow.Receipt, error) {
		calls++
		got = p
		return flow.Receipt{Message: "ok"}, nil
	})
	f := manualFreelancer(t, flow.WithProfileSubmitter(submitter))

	if _, err := f.Submit(context.Background()); !errors.Is(err, flow.ErrNotAtReview) {
		t.Fatalf("expected ErrNotAtReview, got %v", err)
	}

	fillFreelancer(t, f)
	if !f.CanAdvance() {
		t.Fatalf("complete profile must enable submit, errors=%v", f.Validate())
	}
	if ok, err := f.Advance(context.Background()); ok || err != nil {
		t.Fatalf("advance on review submits without moving: ok=%v err=%v", ok, err)
	}
	if calls != 1 || got.ProfessionalTitle != "Senior Backend Engineer" || got.Skills[0] != "Go" {
		t.Fatalf("submitter did not receive the profile: calls=%d %+v", calls, got)
	}
	receipt, ok := f.Receipt()
	if !ok || receipt.Message != "ok" || !f.View().Submitted {
		t.Fatalf("receipt not recorded")
	}
}

func TestFreelancer_SubmitRejectsInvalidProfile(t *testing.T) {
	f := manualFreelancer(t)
	fillFreelancer(t, f)
	mustSet(t, f, "hourlyRate", 1)

	_, err := f.Submit(context.Background())
	var verr *schema.ValidationError
	if !errors.As(err, &verr) || !verr.Issues.Has("hourlyRate") {
		t.Fatalf("expected hourlyRate validation error, got %v", err)
	}
	if _, ok := f.Receipt(); ok {
		t.Fatalf("invalid profile must not be submitted")
	}
}

func TestFreelancer_NavigationRefusedWhileSubmitting(t *testing.T) {
	var inner error
	var f *flow.Freelancer
	submitter := flow.SubmitterFunc[profile.Profile](func(ctx context.Context, _ profile.Profile) (flow.Receipt, error) {
		_, inner = f.Advance(ctx)
		if f.CanAdvance() || f.CanRetreat() || f.JumpToStep(flow.StepSkills) {
			t.Errorf("navigation must be disabled during submit")
		}
		return flow.Receipt{}, nil
	})
	f = manualFreelancer(t, flow.WithProfileSubmitter(submitter))
	fillFreelancer(t, f)
	if _, err := f.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !errors.Is(inner, flow.ErrSubmitting) {
		t.Fatalf("expected ErrSubmitting from re-entrant advance, got %v", inner)
	}
}

func TestFreelancer_OpenEditorCancelsOthers(t *testing.T) {
	f := manualFreelancer(t)
	if _, err := f.OpenEditor(flow.ListEducation, -1); err != nil {
		t.Fatalf("open education: %v", err)
	}
	if _, err := f.OpenEditor(flow.ListLanguages, -1); err != nil {
		t.Fatalf("open languages: %v", err)
	}
	if f.Education().IsOpen() {
		t.Fatalf("opening a second editor must cancel the first")
	}
	view := f.View()
	if view.Editor == nil || view.Editor.List != flow.ListLanguages || view.Editor.Index != nil {
		t.Fatalf("unexpected editor view %+v", view.Editor)
	}
	if _, err := f.OpenEditor("hobbies", -1); !errors.Is(err, flow.ErrUnknownEditor) {
		t.Fatalf("expected ErrUnknownEditor, got %v", err)
	}
}

func TestFreelancer_Review(t *testing.T) {
	f := manualFreelancer(t)
	fillFreelancer(t, f)
	review := f.Review()

	steps := map[string]int{}
	for _, s := range review.Sections {
		steps[s.Key] = s.EditStep
	}
	want := map[string]int{
		"personal":   10,
		"title":      4,
		"rate":       9,
		"employment": 5,
		"education":  6,
		"languages":  7,
		"skills":     3,
	}
	if diff := cmp.Diff(want, steps); diff != "" {
		t.Fatalf("edit targets mismatch (-want +got):\n%s", diff)
	}
	for _, s := range review.Sections {
		if s.Key == "rate" && s.Items[0].Value != "$45.00" {
			t.Fatalf("unexpected rate %q", s.Items[0].Value)
		}
		if s.Key == "employment" && s.Items[0].Note != "Mar 2019 - Present" {
			t.Fatalf("unexpected employment dates %q", s.Items[0].Note)
		}
	}
}
