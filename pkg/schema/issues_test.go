package schema_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Ayflow350/lexend-jobs/pkg/schema"
)

func TestIssues_UnderAndWithout(t *testing.T) {
	issues := schema.Issues{
		{Path: "budget.hourlyRateTo", Message: "Maximum rate cannot be less than minimum rate."},
		{Path: "budgetNotes", Message: "unrelated"},
		{Path: "jobTitle", Message: "Job title must be at least 5 characters."},
	}

	under := issues.Under("budget")
	want := schema.Issues{{Path: "budget.hourlyRateTo", Message: "Maximum rate cannot be less than minimum rate."}}
	if diff := cmp.Diff(want, under); diff != "" {
		t.Fatalf("under mismatch (-want +got):\n%s", diff)
	}

	rest := issues.Without("budget")
	if len(rest) != 2 || rest[0].Path != "budgetNotes" {
		t.Fatalf("unexpected remainder: %#v", rest)
	}

	if !issues.Has("budget") || issues.Has("skills") {
		t.Fatalf("Has reported the wrong coverage")
	}
}

func TestIssues_PrefixMergeAndErr(t *testing.T) {
	entry := schema.Issues{{Path: "endDate.year", Message: "End date is required for past roles."}}
	nested := entry.Prefix("employmentHistory.2")
	if nested[0].Path != "employmentHistory.2.endDate.year" {
		t.Fatalf("unexpected prefixed path %q", nested[0].Path)
	}

	merged := nested.Merge(nested[0], schema.Issue{Path: "x", Message: "  "})
	if len(merged) != 1 {
		t.Fatalf("expected duplicates and blanks dropped, got %#v", merged)
	}

	if (schema.Issues{}).Err() != nil {
		t.Fatalf("empty issues must not produce an error")
	}
	var verr *schema.ValidationError
	if err := merged.Err(); !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if got := verr.Error(); got != "validation failed: employmentHistory.2.endDate.year: End date is required for past roles." {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestIssues_Fields(t *testing.T) {
	issues := schema.Issues{
		{Path: "skills", Message: "Please add at least one skill."},
		{Path: "phone.phoneNumber", Message: "A valid phone number is required."},
		{Path: "skills", Message: "second"},
	}
	want := map[string][]string{
		"skills":            {"Please add at least one skill.", "second"},
		"phone.phoneNumber": {"A valid phone number is required."},
	}
	if diff := cmp.Diff(want, issues.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"skills", "phone.phoneNumber"}, issues.Paths()); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestCovers(t *testing.T) {
	cases := []struct {
		parent, child string
		want          bool
	}{
		{"", "anything", true},
		{"budget", "budget", true},
		{"budget", "budget.paymentType", true},
		{"budget", "budgetary", false},
		{"phone.countryCode", "phone", false},
	}
	for _, tc := range cases {
		if got := schema.Covers(tc.parent, tc.child); got != tc.want {
			t.Errorf("Covers(%q, %q) = %v, want %v", tc.parent, tc.child, got, tc.want)
		}
	}
}
