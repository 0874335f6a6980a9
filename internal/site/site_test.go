package site_test

import (
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/Ayflow350/lexend-jobs/internal/site"
	"github.com/Ayflow350/lexend-jobs/pkg/flow"
)

func fixedClock() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) }

func newSite(t *testing.T, opts ...site.Option) *site.Site {
	t.Helper()
	s, err := site.New(append([]site.Option{site.WithClock(fixedClock)}, opts...)...)
	if err != nil {
		t.Fatalf("new site: %v", err)
	}
	return s
}

func TestLanding_RendersContentSections(t *testing.T) {
	s := newSite(t)
	var out strings.Builder
	if err := s.Landing(&out); err != nil {
		t.Fatalf("render landing: %v", err)
	}
	html := out.String()
	for _, want := range []string{
		"Connect talent to roles of any expertise",
		"Resume Builder",
		"Boost your efficiency with integrations",
		"Stripe",
		"How do I get started?",
		`<span class="avatar">SR</span>`,
		"&copy; 2025 Lexend",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("landing page is missing %q", want)
		}
	}
	if !strings.Contains(html, "We&#39;re looking for people") {
		t.Errorf("expected testimonial text to be escaped")
	}
}

func TestOnboarding_PostsToWizardPath(t *testing.T) {
	s := newSite(t, site.WithWizardPath("/v1/wizards"), site.WithName("Lexend Jobs"))
	var out strings.Builder
	if err := s.Onboarding(&out); err != nil {
		t.Fatalf("render onboarding: %v", err)
	}
	html := out.String()
	for _, want := range []string{
		`action="/v1/wizards/freelancer"`,
		`action="/v1/wizards/company"`,
		"I&#39;m a Company",
		"Join as a client or freelancer | Lexend Jobs",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("onboarding page is missing %q", want)
		}
	}
}

func TestReview_EscapesTextAndKeepsSanitisedHTML(t *testing.T) {
	s := newSite(t)
	page := site.ReviewPage{
		SessionID: "abc",
		Review: flow.Review{
			Kind:    flow.KindCompany,
			Heading: "Review your job post",
			Sections: []flow.ReviewSection{
				{
					Key:      "details",
					Title:    "Job details",
					EditStep: 1,
					Items:    []flow.ReviewItem{{Label: "Title", Value: "<b>Senior</b> Go dev"}},
				},
				{
					Key:      "description",
					Title:    "Description",
					EditStep: 5,
					Items:    []flow.ReviewItem{{Value: "<p>Build <strong>APIs</strong></p>", HTML: true}},
				},
				{
					Key:      "attachments",
					Title:    "Attachments",
					EditStep: 5,
					Empty:    "No items to display.",
				},
			},
		},
		Submitted: true,
		Receipt:   &flow.Receipt{Message: "Job Post Submitted (Simulated)"},
	}

	var out strings.Builder
	if err := s.Review(&out, page); err != nil {
		t.Fatalf("render review: %v", err)
	}
	html := out.String()
	for _, want := range []string{
		"&lt;b&gt;Senior&lt;/b&gt; Go dev",
		"<p>Build <strong>APIs</strong></p>",
		`action="/api/wizards/abc/jump/5"`,
		"No items to display.",
		"Job Post Submitted (Simulated)",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("review page is missing %q", want)
		}
	}
}

func TestWithTemplates_ReportsTemplateErrors(t *testing.T) {
	files := fstest.MapFS{
		"landing.html": {Data: []byte("{% if %}")},
	}
	s := newSite(t, site.WithTemplates(files))
	var out strings.Builder
	if err := s.Landing(&out); err == nil {
		t.Fatalf("expected a template error")
	}
	if out.Len() != 0 {
		t.Fatalf("expected nothing written on failure, got %q", out.String())
	}
}
