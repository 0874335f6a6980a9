package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/Ayflow350/lexend-jobs/pkg/catalog"
	"github.com/Ayflow350/lexend-jobs/pkg/flow"
	"github.com/Ayflow350/lexend-jobs/pkg/form"
	"github.com/Ayflow350/lexend-jobs/pkg/jobpost"
	"github.com/Ayflow350/lexend-jobs/pkg/listedit"
	"github.com/Ayflow350/lexend-jobs/pkg/profile"
	"github.com/Ayflow350/lexend-jobs/pkg/schema"
)

// stepFunc collects the input of one step.
type stepFunc func(ctx context.Context, wiz flow.Wizard) error

// errRestartStep tells Run the step moved on its own and navigation is not
// offered.
var errRestartStep = errors.New("tui: restart step")

func (r *Runner) stepPrompt(wiz flow.Wizard) (stepFunc, error) {
	key := wiz.Current().Key
	switch w := wiz.(type) {
	case *flow.Freelancer:
		switch key {
		case "method":
			return func(ctx context.Context, _ flow.Wizard) error { return r.method(ctx, w) }, nil
		case "category":
			return func(ctx context.Context, _ flow.Wizard) error { return r.category(ctx, w) }, nil
		case "skills":
			return func(ctx context.Context, _ flow.Wizard) error {
				category, _ := w.Field("mainCategory")
				return r.skills(ctx, w, r.catalog.SkillSuggestions(text(category)))
			}, nil
		case "title":
			return r.fields(field{path: "professionalTitle", label: "Professional title"}), nil
		case "employment":
			return r.list(r.employmentList()), nil
		case "education":
			return r.list(r.educationList()), nil
		case "languages":
			return func(ctx context.Context, wiz flow.Wizard) error {
				if err := r.ask(ctx, wiz, field{path: "englishProficiency", label: "English proficiency", kind: choiceField, choices: proficiencyOptions}); err != nil {
					return err
				}
				return r.list(r.languageList())(ctx, wiz)
			}, nil
		case "overview":
			return r.fields(field{path: "professionalOverview", label: "Professional overview", kind: longTextField}), nil
		case "rate":
			return r.fields(field{path: "hourlyRate", label: "Hourly rate (USD)", kind: numberField}), nil
		case "personal":
			return r.fields(r.personalFields()...), nil
		}
	case *flow.Company:
		switch key {
		case "title":
			return r.fields(field{path: "jobTitle", label: "Job title"}), nil
		case "skills":
			return func(ctx context.Context, _ flow.Wizard) error {
				return r.skills(ctx, w, jobpost.PopularSkills())
			}, nil
		case "scope":
			return r.fields(scopeFields()...), nil
		case "budget":
			return func(ctx context.Context, _ flow.Wizard) error { return r.budget(ctx, w) }, nil
		case "description":
			return func(ctx context.Context, _ flow.Wizard) error { return r.description(ctx, w) }, nil
		}
	}
	return nil, fmt.Errorf("%w: %s step %q", ErrNoStepPrompt, wiz.Kind(), key)
}

type fieldKind int

const (
	textField fieldKind = iota
	numberField
	choiceField
	longTextField
	flagField
)

type field struct {
	path     string
	label    string
	help     string
	kind     fieldKind
	optional bool
	choices  func() []catalog.Option
	when     func(t fieldTarget) bool
}

// fieldTarget is a record prompts read from and write to: the wizard itself
// or the draft of an open list editor.
type fieldTarget interface {
	Field(path string) (any, bool)
	SetField(path string, value any) error
}

type draftTarget struct {
	handle listedit.Handle
}

func (d draftTarget) Field(path string) (any, bool) {
	return form.GetPath(d.handle.DraftValue(), path)
}

func (d draftTarget) SetField(path string, value any) error {
	return d.handle.SetDraftField(path, value)
}

func (r *Runner) fields(fields ...field) stepFunc {
	return func(ctx context.Context, wiz flow.Wizard) error {
		return r.ask(ctx, wiz, fields...)
	}
}

// ask prompts each field in order and writes the answer back. Field errors
// of a wizard target are printed as soon as they are known.
func (r *Runner) ask(ctx context.Context, target fieldTarget, fields ...field) error {
	for _, f := range fields {
		if f.when != nil && !f.when(target) {
			continue
		}
		current, _ := target.Field(f.path)
		value, err := r.answer(ctx, f, current)
		if err != nil {
			return err
		}
		if err := target.SetField(f.path, value); err != nil {
			if err := r.softError(ctx, err); err != nil {
				return err
			}
			continue
		}
		if wiz, ok := target.(flow.Wizard); ok {
			if err := r.issues(ctx, wiz.Errors().Under(f.path)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Runner) answer(ctx context.Context, f field, current any) (any, error) {
	switch f.kind {
	case numberField:
		raw, err := r.driver.Input(ctx, InputConfig{
			Message:   f.label,
			Default:   number(current),
			Help:      f.help,
			Validator: validNumber,
		})
		if err != nil {
			return nil, err
		}
		return parseNumber(raw), nil
	case choiceField:
		options := f.choices()
		if f.optional {
			options = append([]catalog.Option{{Label: "(none)"}}, options...)
		}
		labels := make([]string, len(options))
		selected := 0
		for i, option := range options {
			labels[i] = option.Label
			if option.Value == text(current) {
				selected = i
			}
		}
		idx, err := r.driver.Select(ctx, SelectConfig{Message: f.label, Options: labels, DefaultIndex: selected, Help: f.help})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(options) {
			return text(current), nil
		}
		return options[idx].Value, nil
	case longTextField:
		raw, err := r.driver.TextArea(ctx, TextAreaConfig{Message: f.label, Default: text(current), Help: f.help})
		if err != nil {
			return nil, err
		}
		return strings.TrimSpace(raw), nil
	case flagField:
		on, _ := current.(bool)
		answer, err := r.driver.Confirm(ctx, ConfirmConfig{Message: f.label, Default: on, Help: f.help})
		if err != nil {
			return nil, err
		}
		return answer, nil
	default:
		raw, err := r.driver.Input(ctx, InputConfig{Message: f.label, Default: text(current), Help: f.help})
		if err != nil {
			return nil, err
		}
		return strings.TrimSpace(raw), nil
	}
}

func (r *Runner) method(ctx context.Context, f *flow.Freelancer) error {
	methods := []flow.Method{flow.MethodManual, flow.MethodLinkedIn, flow.MethodResume}
	labels := []string{"Fill out manually (15 min)", "Import from LinkedIn", "Upload your resume"}
	idx, err := r.driver.Select(ctx, SelectConfig{Message: "Choose how to build your profile", Options: labels})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(methods) {
		return errRestartStep
	}
	if err := f.SelectMethod(methods[idx]); err != nil {
		var imp *flow.ImportError
		if !errors.As(err, &imp) {
			return err
		}
		if err := r.driver.Info(ctx, r.theme.InfoPrefix+imp.Error()); err != nil {
			return err
		}
	}
	return errRestartStep
}

// category picks the main category, then up to three of its specialties.
func (r *Runner) category(ctx context.Context, f *flow.Freelancer) error {
	values := f.Values()
	current := values.MainCategory
	if current == "" {
		current = f.DefaultCategory()
	}
	chosen, err := r.answer(ctx, field{label: "Main category", kind: choiceField, choices: r.catalog.CategoryOptions}, current)
	if err != nil {
		return err
	}
	category := text(chosen)

	specialties := r.catalog.Specialties(category)
	labels := make([]string, len(specialties))
	var defaults []int
	for i, option := range specialties {
		labels[i] = option.Label
		if category == values.MainCategory && slices.Contains(values.Specialties, option.Value) {
			defaults = append(defaults, i)
		}
	}
	picked, err := r.driver.MultiSelect(ctx, SelectConfig{
		Message:  fmt.Sprintf("Specialties (up to %d)", profile.MaxSpecialties),
		Options:  labels,
		Defaults: defaults,
	})
	if err != nil {
		return err
	}

	f.ClearSelections()
	if err := f.SetField("mainCategory", category); err != nil {
		return r.softError(ctx, err)
	}
	for _, idx := range picked {
		if idx >= 0 && idx < len(specialties) {
			f.ToggleSpecialty(category, specialties[idx].Value)
		}
	}
	return r.issues(ctx, f.Errors().Under("mainCategory", "specialties"))
}

type skillEditor interface {
	flow.Wizard
	AddSkill(raw string) bool
	RemoveSkill(skill string) bool
}

// skills offers the current skills plus suggestions as a checklist, then
// free-form additions.
func (r *Runner) skills(ctx context.Context, wiz skillEditor, suggestions []string) error {
	raw, _ := wiz.Field("skills")
	current := texts(raw)
	options := slices.Clone(current)
	for _, s := range suggestions {
		if !containsFold(options, s) {
			options = append(options, s)
		}
	}
	defaults := make([]int, len(current))
	for i := range current {
		defaults[i] = i
	}
	picked, err := r.driver.MultiSelect(ctx, SelectConfig{Message: "Skills", Options: options, Defaults: defaults, PageSize: 10})
	if err != nil {
		return err
	}
	keep := make(map[string]bool, len(picked))
	for _, idx := range picked {
		if idx >= 0 && idx < len(options) {
			keep[options[idx]] = true
		}
	}
	for _, s := range current {
		if !keep[s] {
			wiz.RemoveSkill(s)
		}
	}
	for _, s := range options[len(current):] {
		if keep[s] {
			wiz.AddSkill(s)
		}
	}

	extra, err := r.driver.Input(ctx, InputConfig{Message: "Other skills", Help: "Comma separated, leave blank to continue"})
	if err != nil {
		return err
	}
	for _, s := range splitList(extra) {
		wiz.AddSkill(s)
	}
	return r.issues(ctx, wiz.Errors().Under("skills"))
}

type listSpec struct {
	name     string
	noun     string
	fields   []field
	describe func(entry map[string]any) string
}

// list runs the add/edit/delete loop of a list step until Done is chosen.
func (r *Runner) list(def listSpec) stepFunc {
	return func(ctx context.Context, wiz flow.Wizard) error {
		for {
			raw, _ := wiz.Field(def.name)
			entries, _ := raw.([]any)

			labels := []string{"Add " + def.noun}
			for _, entry := range entries {
				labels = append(labels, "Edit "+def.describe(object(entry)))
			}
			for _, entry := range entries {
				labels = append(labels, "Delete "+def.describe(object(entry)))
			}
			labels = append(labels, "Done")

			idx, err := r.driver.Select(ctx, SelectConfig{Message: strings.ToUpper(def.noun[:1]) + def.noun[1:] + " entries", Options: labels})
			if err != nil {
				return err
			}
			n := len(entries)
			switch {
			case idx == 0:
				err = r.editEntry(ctx, wiz, def, -1)
			case idx >= 1 && idx <= n:
				err = r.editEntry(ctx, wiz, def, idx-1)
			case idx > n && idx <= 2*n:
				ed, ok := wiz.Editor(def.name)
				if !ok {
					return fmt.Errorf("%w: %q", flow.ErrUnknownEditor, def.name)
				}
				if derr := ed.Delete(idx - n - 1); derr != nil {
					err = r.softError(ctx, derr)
				}
			default:
				return nil
			}
			if err != nil {
				return err
			}
		}
	}
}

func (r *Runner) editEntry(ctx context.Context, wiz flow.Wizard, def listSpec, index int) error {
	ed, err := wiz.OpenEditor(def.name, index)
	if err != nil {
		return r.softError(ctx, err)
	}
	for {
		if err := r.ask(ctx, draftTarget{handle: ed}, def.fields...); err != nil {
			ed.Cancel()
			return err
		}
		err := ed.Save()
		if err == nil {
			return nil
		}
		var validation *schema.ValidationError
		if !errors.As(err, &validation) {
			ed.Cancel()
			return r.softError(ctx, err)
		}
		if err := r.issues(ctx, validation.Issues); err != nil {
			return err
		}
		retry, err := r.driver.Confirm(ctx, ConfirmConfig{Message: "Fix this " + def.noun + "?", Default: true})
		if err != nil {
			return err
		}
		if !retry {
			ed.Cancel()
			return nil
		}
	}
}

func (r *Runner) employmentList() listSpec {
	months := func() []catalog.Option { return plainOptions(profile.Months()) }
	years := func() []catalog.Option { return plainOptions(profile.EmploymentYears(r.now())) }
	notCurrent := func(t fieldTarget) bool {
		v, _ := t.Field("isCurrentRole")
		current, _ := v.(bool)
		return !current
	}
	return listSpec{
		name: flow.ListEmployment,
		noun: "employment",
		fields: []field{
			{path: "title", label: "Title"},
			{path: "company", label: "Company"},
			{path: "location", label: "Location"},
			{path: "country", label: "Country", kind: choiceField, optional: true, choices: r.catalog.CountryOptions},
			{path: "isCurrentRole", label: "I am currently working in this role", kind: flagField},
			{path: "startDate.month", label: "Start month", kind: choiceField, choices: months},
			{path: "startDate.year", label: "Start year", kind: choiceField, choices: years},
			{path: "endDate.month", label: "End month", kind: choiceField, choices: months, when: notCurrent},
			{path: "endDate.year", label: "End year", kind: choiceField, choices: years, when: notCurrent},
			{path: "description", label: "Description", kind: longTextField},
		},
		describe: func(entry map[string]any) string {
			return text(entry["title"]) + " at " + text(entry["company"])
		},
	}
}

func (r *Runner) educationList() listSpec {
	years := func() []catalog.Option { return plainOptions(profile.EducationYears(r.now())) }
	return listSpec{
		name: flow.ListEducation,
		noun: "education",
		fields: []field{
			{path: "school", label: "School"},
			{path: "degree", label: "Degree"},
			{path: "fieldOfStudy", label: "Field of study"},
			{path: "datesAttended.from", label: "From", kind: choiceField, optional: true, choices: years},
			{path: "datesAttended.to", label: "To (or expected graduation year)", kind: choiceField, optional: true, choices: years},
			{path: "description", label: "Description", kind: longTextField},
		},
		describe: func(entry map[string]any) string {
			return text(entry["school"])
		},
	}
}

func (r *Runner) languageList() listSpec {
	return listSpec{
		name: flow.ListLanguages,
		noun: "language",
		fields: []field{
			{path: "language", label: "Language", kind: choiceField, choices: r.catalog.LanguageOptions},
			{path: "proficiency", label: "Proficiency", kind: choiceField, choices: proficiencyOptions},
		},
		describe: func(entry map[string]any) string {
			return text(entry["language"]) + " (" + profile.Proficiency(text(entry["proficiency"])).Label() + ")"
		},
	}
}

func (r *Runner) personalFields() []field {
	return []field{
		{path: "profilePhoto", label: "Profile photo", help: "Path or URL of the photo"},
		{path: "dateOfBirth", label: "Date of birth", help: "YYYY-MM-DD"},
		{path: "country", label: "Country", kind: choiceField, choices: r.catalog.CountryOptions},
		{path: "streetAddress", label: "Street address"},
		{path: "aptSuite", label: "Apt/Suite"},
		{path: "city", label: "City"},
		{path: "stateProvince", label: "State/Province"},
		{path: "zipCode", label: "ZIP/Postal code"},
		{path: "phone.countryCode", label: "Phone country code", kind: choiceField, choices: r.catalog.PhoneCodeOptions},
		{path: "phone.phoneNumber", label: "Phone number"},
	}
}

func proficiencyOptions() []catalog.Option {
	out := make([]catalog.Option, len(profile.Proficiencies))
	for i, p := range profile.Proficiencies {
		out[i] = catalog.Option{Value: string(p), Label: p.Label()}
	}
	return out
}

func scopeFields() []field {
	return []field{
		{path: "projectSize", label: "Project size", kind: choiceField, choices: func() []catalog.Option {
			return []catalog.Option{
				{Value: string(jobpost.SizeLarge), Label: "Large: longer term or complex initiatives"},
				{Value: string(jobpost.SizeMedium), Label: "Medium: well-defined projects"},
				{Value: string(jobpost.SizeSmall), Label: "Small: quick and straightforward tasks"},
			}
		}},
		{path: "projectDuration", label: "How long will your work take?", kind: choiceField, choices: func() []catalog.Option {
			return []catalog.Option{
				{Value: string(jobpost.DurationMoreThan6Months), Label: "More than 6 months"},
				{Value: string(jobpost.Duration3To6Months), Label: "3 to 6 months"},
				{Value: string(jobpost.Duration1To3Months), Label: "1 to 3 months"},
			}
		}},
		{path: "experienceLevel", label: "What level of experience will it need?", kind: choiceField, choices: func() []catalog.Option {
			return []catalog.Option{
				{Value: string(jobpost.ExperienceEntry), Label: "Entry"},
				{Value: string(jobpost.ExperienceIntermediate), Label: "Intermediate"},
				{Value: string(jobpost.ExperienceExpert), Label: "Expert"},
			}
		}},
	}
}

func (r *Runner) budget(ctx context.Context, c *flow.Company) error {
	current, _ := c.Field("budget.paymentType")
	chosen, err := r.answer(ctx, field{label: "Payment type", kind: choiceField, choices: func() []catalog.Option {
		return []catalog.Option{
			{Value: string(jobpost.PaymentHourly), Label: "Hourly rate"},
			{Value: string(jobpost.PaymentFixed), Label: "Fixed price"},
		}
	}}, current)
	if err != nil {
		return err
	}
	if _, err := c.SetPaymentType(jobpost.PaymentType(text(chosen))); err != nil {
		return r.softError(ctx, err)
	}

	if jobpost.PaymentType(text(chosen)) == jobpost.PaymentHourly {
		return r.ask(ctx, c,
			field{path: "budget.hourlyRateFrom", label: "From (USD/hour)", kind: numberField},
			field{path: "budget.hourlyRateTo", label: "To (USD/hour)", kind: numberField},
		)
	}
	ready, err := r.driver.Confirm(ctx, ConfirmConfig{Message: "Do you want to set a maximum project budget now?", Default: true})
	if err != nil {
		return err
	}
	if !ready {
		c.ClearFixedBudget()
		return r.issues(ctx, c.Errors().Under("budget"))
	}
	return r.ask(ctx, c, field{path: "budget.fixedPriceBudget", label: "Maximum project budget (USD)", kind: numberField})
}

// description takes the description text, then attachment paths.
func (r *Runner) description(ctx context.Context, c *flow.Company) error {
	current, _ := c.Field("jobDescription")
	raw, err := r.driver.TextArea(ctx, TextAreaConfig{Message: "Job description", Default: jobpost.DescriptionText(text(current))})
	if err != nil {
		return err
	}
	if err := c.SetField("jobDescription", raw); err != nil {
		return r.softError(ctx, err)
	}
	if err := r.issues(ctx, c.Errors().Under("jobDescription")); err != nil {
		return err
	}

	if attached := c.Values().Attachments; len(attached) > 0 {
		labels := make([]string, len(attached))
		keep := make([]int, len(attached))
		for i, a := range attached {
			labels[i] = a.Name
			keep[i] = i
		}
		picked, err := r.driver.MultiSelect(ctx, SelectConfig{Message: "Attached files", Options: labels, Defaults: keep})
		if err != nil {
			return err
		}
		for i := len(attached) - 1; i >= 0; i-- {
			if !slices.Contains(picked, i) {
				if err := c.RemoveAttachment(i); err != nil {
					return r.softError(ctx, err)
				}
			}
		}
	}

	paths, err := r.driver.Input(ctx, InputConfig{Message: "Attach files", Help: "Comma separated paths, leave blank to continue"})
	if err != nil {
		return err
	}
	var files []jobpost.Attachment
	for _, path := range splitList(paths) {
		file, err := describeFile(path)
		if err != nil {
			if err := r.softError(ctx, err); err != nil {
				return err
			}
			continue
		}
		files = append(files, file)
	}
	if len(files) > 0 {
		if kept := c.AddAttachments(files...); kept < len(files) {
			msg := fmt.Sprintf("Only %d files can be attached.", jobpost.MaxAttachments)
			if err := r.driver.Info(ctx, r.theme.ErrorPrefix+" "+msg); err != nil {
				return err
			}
		}
	}
	return r.issues(ctx, c.Errors().Under("attachments"))
}

// describeFile builds attachment metadata from a local file. The type is
// the first accepted type found walking up the detected MIME hierarchy.
func describeFile(path string) (jobpost.Attachment, error) {
	info, err := os.Stat(path)
	if err != nil {
		return jobpost.Attachment{}, fmt.Errorf("attach %s: %w", path, err)
	}
	if info.IsDir() {
		return jobpost.Attachment{}, fmt.Errorf("attach %s: is a directory", path)
	}
	detected, err := mimetype.DetectFile(path)
	if err != nil {
		return jobpost.Attachment{}, fmt.Errorf("attach %s: %w", path, err)
	}
	kind, _, _ := strings.Cut(detected.String(), ";")
	for m := detected; m != nil; m = m.Parent() {
		if accepted := slices.IndexFunc(jobpost.AcceptedFileTypes, m.Is); accepted >= 0 {
			kind = jobpost.AcceptedFileTypes[accepted]
			break
		}
	}
	return jobpost.Attachment{Name: filepath.Base(path), Size: info.Size(), Type: strings.TrimSpace(kind)}, nil
}

func plainOptions(values []string) []catalog.Option {
	out := make([]catalog.Option, len(values))
	for i, v := range values {
		out[i] = catalog.Option{Value: v, Label: v}
	}
	return out
}

func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func texts(v any) []string {
	items, _ := v.([]any)
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, text(item))
	}
	return out
}

func object(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func number(v any) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}

func validNumber(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err != nil {
		return errors.New("enter a number")
	}
	return nil
}

// parseNumber returns nil for blank or unparsable input so the field is
// cleared rather than zeroed.
func parseNumber(raw string) any {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil
	}
	return f
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func containsFold(values []string, v string) bool {
	return slices.ContainsFunc(values, func(s string) bool { return strings.EqualFold(s, v) })
}
