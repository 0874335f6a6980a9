package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/Ayflow350/lexend-jobs/pkg/flow"
	"github.com/Ayflow350/lexend-jobs/pkg/jobpost"
	"github.com/Ayflow350/lexend-jobs/pkg/profile"
)

// stubDriver answers prompts from scripts. Selects are scripted by option
// label so tests do not depend on menu positions.
type stubDriver struct {
	inputs       []string
	selects      []string
	multi        [][]string
	confirm      []bool
	textAreas    []string
	infoMessages []string
	inputPos     int
	selectPos    int
	multiPos     int
	confirmPos   int
	textPos      int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", fmt.Errorf("no input scripted for %q", cfg.Message)
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, fmt.Errorf("no confirm scripted for %q", cfg.Message)
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if s.selectPos >= len(s.selects) {
		return -1, fmt.Errorf("no select scripted for %q", cfg.Message)
	}
	label := s.selects[s.selectPos]
	s.selectPos++
	idx := indexOf(cfg.Options, label)
	if idx < 0 {
		return -1, fmt.Errorf("select %q: no option %q in %v", cfg.Message, label, cfg.Options)
	}
	return idx, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	if s.multiPos >= len(s.multi) {
		return nil, fmt.Errorf("no multiselect scripted for %q", cfg.Message)
	}
	labels := s.multi[s.multiPos]
	s.multiPos++
	return indicesOf(cfg.Options, labels), nil
}

func (s *stubDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", fmt.Errorf("no textarea scripted for %q", cfg.Message)
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func (s *stubDriver) said(substr string) bool {
	return slices.ContainsFunc(s.infoMessages, func(msg string) bool {
		return strings.Contains(msg, substr)
	})
}

func fixedClock() time.Time {
	return time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
}

func newRunner(t *testing.T, driver *stubDriver) *Runner {
	t.Helper()
	r, err := New(WithPromptDriver(driver), WithClock(fixedClock))
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	return r
}

const description = "We need a small online store with a product catalog, a cart and Stripe checkout."

func TestRunCompanyWizard(t *testing.T) {
	driver := &stubDriver{
		inputs: []string{
			"Build an online store",
			"",
			"20", "40",
			"",
		},
		selects: []string{
			"Next: Skills",
			"Next: Scope",
			"Large: longer term or complex initiatives", "3 to 6 months", "Expert", "Next: Budget",
			"Hourly rate", "Next: Description",
			"Next: Review",
			"Publish Job Post",
		},
		multi:     [][]string{{"WordPress", "PHP"}},
		textAreas: []string{description},
	}
	r := newRunner(t, driver)
	wiz := flow.NewCompany(flow.WithClock(fixedClock))

	receipt, err := r.Run(context.Background(), wiz)
	if err != nil {
		t.Fatalf("run: %v (info: %v)", err, driver.infoMessages)
	}
	if receipt.Message != "Job Post Submitted (Simulated)" {
		t.Fatalf("unexpected receipt %q", receipt.Message)
	}
	if !driver.said(receipt.Message) {
		t.Fatalf("receipt was not printed: %v", driver.infoMessages)
	}

	got := wiz.Values()
	if got.JobTitle != "Build an online store" {
		t.Fatalf("job title %q", got.JobTitle)
	}
	if diff := cmp.Diff([]string{"WordPress", "PHP"}, got.Skills); diff != "" {
		t.Fatalf("skills mismatch (-want +got):\n%s", diff)
	}
	if got.ProjectSize != jobpost.SizeLarge || got.ProjectDuration != jobpost.Duration3To6Months || got.ExperienceLevel != jobpost.ExperienceExpert {
		t.Fatalf("scope %q %q %q", got.ProjectSize, got.ProjectDuration, got.ExperienceLevel)
	}
	hourly, ok := got.Budget.(jobpost.HourlyBudget)
	if !ok || hourly.From == nil || *hourly.From != 20 || hourly.To == nil || *hourly.To != 40 {
		t.Fatalf("unexpected budget %#v", got.Budget)
	}
}

func TestRunCompanyBlockedAdvancePrintsIssues(t *testing.T) {
	driver := &stubDriver{
		inputs:  []string{"Web", "Web shop redesign", ""},
		selects: []string{"Next: Skills", "Next: Skills", "Quit"},
		multi:   [][]string{{}},
	}
	r := newRunner(t, driver)
	wiz := flow.NewCompany()

	_, err := r.Run(context.Background(), wiz)
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if !driver.said("Job title must be at least 5 characters.") {
		t.Fatalf("expected title error, got %v", driver.infoMessages)
	}
	if wiz.Step() != flow.StepJobSkills {
		t.Fatalf("expected skills step, got %d", wiz.Step())
	}
}

func TestRunFreelancerImportThenManual(t *testing.T) {
	driver := &stubDriver{
		selects: []string{
			"Import from LinkedIn",
			"Fill out manually (15 min)",
			"Development & IT",
			"Quit",
		},
		multi: [][]string{{"Web Development", "DevOps & Solution Architecture"}},
	}
	r := newRunner(t, driver)
	wiz := flow.NewFreelancer(flow.WithDefaultCategory("development-it"))

	_, err := r.Run(context.Background(), wiz)
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if !driver.said("Linkedin import flow would start here.") {
		t.Fatalf("expected import message, got %v", driver.infoMessages)
	}
	if !wiz.Manual() || wiz.Step() != flow.StepCategory {
		t.Fatalf("expected manual category step, got manual=%v step=%d", wiz.Manual(), wiz.Step())
	}
	got := wiz.Values()
	if got.MainCategory != "development-it" {
		t.Fatalf("main category %q", got.MainCategory)
	}
	if diff := cmp.Diff([]string{"web-development", "devops"}, got.Specialties); diff != "" {
		t.Fatalf("specialties mismatch (-want +got):\n%s", diff)
	}
}

func TestListEditorAddsEmployment(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"", "Acme", "Remote"},
		selects:   []string{"Add employment", "(none)", "January", "2020", "(none)", "January", "2020", "Done"},
		confirm:   []bool{true, true, true},
		textAreas: []string{"", ""},
	}
	// The first draft misses its title, is rejected and fixed on retry.
	driver.inputs = append(driver.inputs, "Engineer", "Acme", "Remote")
	r := newRunner(t, driver)
	wiz := flow.NewFreelancer(flow.WithClock(fixedClock))
	if err := wiz.SelectMethod(flow.MethodManual); err != nil {
		t.Fatalf("select method: %v", err)
	}

	if err := r.list(r.employmentList())(context.Background(), wiz); err != nil {
		t.Fatalf("list: %v (info: %v)", err, driver.infoMessages)
	}
	want := []profile.Employment{{
		Title:         "Engineer",
		Company:       "Acme",
		Location:      "Remote",
		IsCurrentRole: true,
		StartDate:     profile.MonthYear{Month: "January", Year: "2020"},
	}}
	if diff := cmp.Diff(want, wiz.Values().EmploymentHistory); diff != "" {
		t.Fatalf("employment mismatch (-want +got):\n%s", diff)
	}
	if wiz.Employment().IsOpen() {
		t.Fatalf("editor should be closed after save")
	}
}

func TestListEditorDeletesEntry(t *testing.T) {
	driver := &stubDriver{
		selects: []string{"Delete French (Fluent)", "Done"},
	}
	r := newRunner(t, driver)
	wiz := flow.NewFreelancer()
	ed, err := wiz.OpenEditor(flow.ListLanguages, -1)
	if err != nil {
		t.Fatalf("open editor: %v", err)
	}
	if err := ed.SetDraftField("language", "French"); err != nil {
		t.Fatalf("set language: %v", err)
	}
	if err := ed.SetDraftField("proficiency", "fluent"); err != nil {
		t.Fatalf("set proficiency: %v", err)
	}
	if err := ed.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := r.list(r.languageList())(context.Background(), wiz); err != nil {
		t.Fatalf("list: %v", err)
	}
	if n := len(wiz.Values().OtherLanguages); n != 0 {
		t.Fatalf("expected languages to be empty, got %d", n)
	}
}

func TestRunReviewEditJump(t *testing.T) {
	wiz := flow.NewCompany()
	wiz.SetField("jobTitle", "Build an online store")
	wiz.AddSkill("PHP")
	wiz.SetField("projectSize", "small")
	wiz.SetField("projectDuration", "1to3Months")
	wiz.SetField("experienceLevel", "entry")
	if _, err := wiz.SetPaymentType(jobpost.PaymentFixed); err != nil {
		t.Fatalf("payment type: %v", err)
	}
	wiz.SetField("budget.fixedPriceBudget", 500.0)
	wiz.SetField("jobDescription", description)
	for step := flow.StepJobTitle; step < flow.StepJobReview; step++ {
		if ok, err := wiz.Advance(context.Background()); err != nil || !ok {
			t.Fatalf("advance from %d: ok=%v err=%v issues=%v", step, ok, err, wiz.Errors())
		}
	}

	section := wiz.Review().Sections[0]
	driver := &stubDriver{
		selects: []string{"Edit " + section.Title, "Quit"},
		inputs:  []string{"Build an online store"},
	}
	r := newRunner(t, driver)
	_, err := r.Run(context.Background(), wiz)
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if wiz.Step() != section.EditStep {
		t.Fatalf("expected jump to %d, got %d", section.EditStep, wiz.Step())
	}
}

func TestDescribeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brief.txt")
	if err := os.WriteFile(path, []byte("project brief\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := describeFile(path)
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	want := jobpost.Attachment{Name: "brief.txt", Size: 14, Type: "text/plain"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("attachment mismatch (-want +got):\n%s", diff)
	}

	if _, err := describeFile(filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestFormatSection_DecodesDescriptionText(t *testing.T) {
	section := flow.ReviewSection{
		Title: "Job Description",
		Items: []flow.ReviewItem{{
			Value: jobpost.SanitizeDescription(`<p>Tom's team & "partners" need a <strong>Go</strong> API</p>`),
			HTML:  true,
		}},
	}
	got := formatSection(section)
	want := "Job Description\n  Tom's team & \"partners\" need a Go API"
	if got != want {
		t.Fatalf("unexpected section text:\n got %q\nwant %q", got, want)
	}
}
