package schema_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Ayflow350/lexend-jobs/pkg/schema"
)

type sampleEntry struct {
	Name string `json:"name" validate:"required"`
}

type sampleRecord struct {
	Title   string        `json:"title" validate:"min=5"`
	Tags    []string      `json:"tags" validate:"min=1,max=2,dive,max=3"`
	Entries []sampleEntry `json:"entries" validate:"dive"`
	Rate    *float64      `json:"rate" validate:"required,min=3"`
	Hidden  string        `json:"-"`
}

func TestValidator_TranslatesPathsAndMessages(t *testing.T) {
	v := schema.NewValidator(schema.Messages{
		"title.min":               "Title must be at least 5 characters.",
		"tags.*.max":              "Tag is too long.",
		"entries.*.name.required": "Name is required.",
		"rate.required":           "A rate is required.",
	})

	issues := v.Struct(sampleRecord{
		Title:   "abc",
		Tags:    []string{"ok", "toolong"},
		Entries: []sampleEntry{{Name: "a"}, {}},
	})

	want := schema.Issues{
		{Path: "title", Message: "Title must be at least 5 characters."},
		{Path: "tags.1", Message: "Tag is too long."},
		{Path: "entries.1.name", Message: "Name is required."},
		{Path: "rate", Message: "A rate is required."},
	}
	if diff := cmp.Diff(want, issues); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestValidator_DefaultMessages(t *testing.T) {
	rate := 1.0
	issues := schema.NewValidator(nil).Struct(sampleRecord{
		Title: "long enough",
		Tags:  []string{"a"},
		Rate:  &rate,
	})
	want := schema.Issues{{Path: "rate", Message: "Must be at least 3."}}
	if diff := cmp.Diff(want, issues); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestPattern(t *testing.T) {
	if got := schema.Pattern("employmentHistory.12.endDate.year"); got != "employmentHistory.*.endDate.year" {
		t.Fatalf("unexpected pattern %q", got)
	}
}
