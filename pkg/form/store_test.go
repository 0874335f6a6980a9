package form_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Ayflow350/lexend-jobs/pkg/form"
	"github.com/Ayflow350/lexend-jobs/pkg/schema"
)

type phone struct {
	CountryCode string `json:"countryCode"`
	Number      string `json:"phoneNumber"`
}

type record struct {
	Title  string   `json:"title"`
	Skills []string `json:"skills"`
	Phone  phone    `json:"phone"`
	Rate   *float64 `json:"rate,omitempty"`
}

func (r record) Clone() record {
	r.Skills = append([]string(nil), r.Skills...)
	return r
}

func validateRecord(r record) schema.Issues {
	var issues schema.Issues
	if len(r.Title) < 5 {
		issues = append(issues, schema.Issue{Path: "title", Message: "Title too short."})
	}
	if len(r.Skills) == 0 {
		issues = append(issues, schema.Issue{Path: "skills", Message: "Add a skill."})
	}
	if r.Phone.Number == "" {
		issues = append(issues, schema.Issue{Path: "phone.phoneNumber", Message: "Phone required."})
	}
	return issues
}

func newStore() *form.Store[record] {
	return form.NewStore(record{Phone: phone{CountryCode: "+1"}}, form.ValidatorFunc[record](validateRecord))
}

func TestStore_SetFieldRefreshesOnlyThatPath(t *testing.T) {
	s := newStore()
	if err := s.SetField("title", "abc"); err != nil {
		t.Fatalf("set title: %v", err)
	}
	want := schema.Issues{{Path: "title", Message: "Title too short."}}
	if diff := cmp.Diff(want, s.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	if err := s.SetField("title", "Senior Engineer"); err != nil {
		t.Fatalf("set title: %v", err)
	}
	if len(s.Errors()) != 0 {
		t.Fatalf("expected title error cleared, got %#v", s.Errors())
	}
	if got, _ := s.Field("title"); got != "Senior Engineer" {
		t.Fatalf("unexpected title %v", got)
	}
}

func TestStore_SetNestedFieldAndRead(t *testing.T) {
	s := newStore()
	if err := s.SetField("phone.phoneNumber", "5550100"); err != nil {
		t.Fatalf("set phone: %v", err)
	}
	if err := s.SetField("skills.1", "Go"); err != nil {
		t.Fatalf("set skills.1: %v", err)
	}
	got := s.Values()
	want := record{Skills: []string{"", "Go"}, Phone: phone{CountryCode: "+1", Number: "5550100"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	v, ok := s.Field("phone.countryCode")
	if !ok || v != "+1" {
		t.Fatalf("Field(phone.countryCode) = %v, %v", v, ok)
	}
	if _, ok := s.Field("phone.extension"); ok {
		t.Fatalf("expected missing path to report false")
	}
}

func TestStore_SetFieldRejectsMalformedPath(t *testing.T) {
	s := newStore()
	if err := s.SetField("phone..x", "1"); err == nil {
		t.Fatalf("expected malformed path error")
	}
	if err := s.SetField("title.0", "x"); err == nil {
		t.Fatalf("expected error writing below a string")
	}
}

func TestStore_TriggerAndValidate(t *testing.T) {
	s := newStore()
	if s.Trigger("title", "skills") {
		t.Fatalf("trigger must fail on an empty record")
	}
	if diff := cmp.Diff([]string{"title", "skills"}, s.Errors().Paths()); diff != "" {
		t.Fatalf("trigger surfaced wrong paths (-want +got):\n%s", diff)
	}
	if s.HasErrors("phone") {
		t.Fatalf("phone was not triggered and must not show errors")
	}
	if s.IsValid() {
		t.Fatalf("record must be invalid")
	}
	if s.HasErrors("phone") {
		t.Fatalf("IsValid must not surface errors")
	}

	all := s.Validate()
	if len(all) != 3 || !s.HasErrors("phone") {
		t.Fatalf("validate must surface everything, got %#v", all)
	}
	if !s.Trigger() {
		t.Fatalf("trigger with no paths passes")
	}
}

func TestStore_UpdateRejectedChangeKeepsState(t *testing.T) {
	s := newStore()
	changed := s.Update(func(r *record) bool { return false }, "skills")
	if changed || len(s.Values().Skills) != 0 || len(s.Errors()) != 0 {
		t.Fatalf("rejected update must be a no-op")
	}

	s.Update(func(r *record) bool {
		r.Skills = append(r.Skills, "Go")
		return true
	}, "skills")
	values := s.Values()
	values.Skills[0] = "mutated"
	if s.Values().Skills[0] != "Go" {
		t.Fatalf("Values must not alias store state")
	}
	if s.Values().Phone.CountryCode != "+1" {
		t.Fatalf("defaults must survive updates, got %#v", s.Values())
	}
}

func TestSliceField(t *testing.T) {
	s := newStore()
	skills := form.NewSliceField(s, "skills", func(r *record) *[]string { return &r.Skills })

	skills.Append("Go")
	skills.Append("SQL")
	if err := skills.Set(1, "PostgreSQL"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := skills.Set(5, "x"); err == nil {
		t.Fatalf("expected out of range error")
	}
	if diff := cmp.Diff([]string{"Go", "PostgreSQL"}, skills.Items()); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
	if err := skills.Remove(0); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got, ok := skills.At(0); !ok || got != "PostgreSQL" || skills.Len() != 1 {
		t.Fatalf("unexpected list after remove: %v", skills.Items())
	}
	if _, ok := skills.At(3); ok {
		t.Fatalf("At out of range must report false")
	}
}
