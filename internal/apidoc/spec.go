// Package apidoc describes the wizard HTTP API as an OpenAPI 3 document and
// owns the JSON types shared by the server and its clients.
package apidoc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"

	"github.com/Ayflow350/lexend-jobs/components/lookups"
	"github.com/Ayflow350/lexend-jobs/pkg/flow"
	"github.com/Ayflow350/lexend-jobs/pkg/jobpost"
	"github.com/Ayflow350/lexend-jobs/pkg/profile"
)

const (
	// WizardsPath is where the wizard routes are mounted.
	WizardsPath = "/api/wizards"
	// LookupsPath is where the reference data component is mounted.
	LookupsPath = "/api/lookups"
	// DocumentPath serves the generated document.
	DocumentPath = "/openapi.json"
	// HealthPath serves the liveness payload.
	HealthPath = "/health"
)

// Route is one operation of the API. Request and Response name component
// schemas; an empty Response means the operation has no JSON body.
type Route struct {
	Method      string
	Path        string
	OperationID string
	Summary     string
	Tag         string
	Request     string
	Response    string
	Status      int
	HTML        bool
	Errors      []int
}

var (
	navigationErrors = []int{http.StatusNotFound, http.StatusConflict}
	inputErrors      = []int{http.StatusBadRequest, http.StatusNotFound, http.StatusConflict}
)

// Routes lists every operation the server registers.
func Routes() []Route {
	w := WizardsPath
	return []Route{
		{Method: http.MethodPost, Path: w + "/{kind}", OperationID: "createWizard", Summary: "Start a freelancer or company wizard", Tag: "wizards", Response: "State", Status: http.StatusCreated, Errors: []int{http.StatusBadRequest}},
		{Method: http.MethodGet, Path: w + "/{id}", OperationID: "getWizard", Summary: "Current wizard state", Tag: "wizards", Response: "State", Status: http.StatusOK, Errors: []int{http.StatusNotFound}},
		{Method: http.MethodDelete, Path: w + "/{id}", OperationID: "deleteWizard", Summary: "Discard a wizard", Tag: "wizards", Status: http.StatusNoContent, Errors: []int{http.StatusNotFound}},
		{Method: http.MethodPatch, Path: w + "/{id}/fields", OperationID: "setField", Summary: "Write one form value", Tag: "wizards", Request: "FieldRequest", Response: "State", Status: http.StatusOK, Errors: inputErrors},
		{Method: http.MethodPost, Path: w + "/{id}/method", OperationID: "selectMethod", Summary: "Choose how the profile is created", Tag: "freelancer", Request: "MethodRequest", Response: "State", Status: http.StatusOK, Errors: inputErrors},
		{Method: http.MethodPost, Path: w + "/{id}/advance", OperationID: "advance", Summary: "Validate the step and move forward", Tag: "navigation", Response: "State", Status: http.StatusOK, Errors: navigationErrors},
		{Method: http.MethodPost, Path: w + "/{id}/skip", OperationID: "skip", Summary: "Skip an optional step", Tag: "navigation", Response: "State", Status: http.StatusOK, Errors: navigationErrors},
		{Method: http.MethodPost, Path: w + "/{id}/back", OperationID: "retreat", Summary: "Move back one step", Tag: "navigation", Response: "State", Status: http.StatusOK, Errors: navigationErrors},
		{Method: http.MethodPost, Path: w + "/{id}/jump/{step}", OperationID: "jumpToStep", Summary: "Jump to a step from the review", Tag: "navigation", Response: "State", Status: http.StatusOK, Errors: []int{http.StatusBadRequest, http.StatusNotFound}},
		{Method: http.MethodPost, Path: w + "/{id}/submit", OperationID: "submit", Summary: "Submit the record from the review step", Tag: "navigation", Response: "State", Status: http.StatusOK, Errors: []int{http.StatusNotFound, http.StatusConflict, http.StatusUnprocessableEntity}},
		{Method: http.MethodPost, Path: w + "/{id}/validate", OperationID: "validate", Summary: "Validate every field", Tag: "wizards", Response: "ValidateResponse", Status: http.StatusOK, Errors: []int{http.StatusNotFound}},
		{Method: http.MethodGet, Path: w + "/{id}/review", OperationID: "reviewPage", Summary: "Review page", Tag: "wizards", Status: http.StatusOK, HTML: true, Errors: []int{http.StatusNotFound}},
		{Method: http.MethodGet, Path: w + "/{id}/sources", OperationID: "optionSources", Summary: "Lookup endpoints behind option fields", Tag: "wizards", Response: "SourceList", Status: http.StatusOK, Errors: []int{http.StatusNotFound}},
		{Method: http.MethodPost, Path: w + "/{id}/specialties/toggle", OperationID: "toggleSpecialty", Summary: "Select or deselect a specialty", Tag: "freelancer", Request: "SpecialtyRequest", Response: "State", Status: http.StatusOK, Errors: inputErrors},
		{Method: http.MethodPost, Path: w + "/{id}/specialties/clear", OperationID: "clearSpecialties", Summary: "Clear the selected specialties", Tag: "freelancer", Response: "State", Status: http.StatusOK, Errors: inputErrors},
		{Method: http.MethodPost, Path: w + "/{id}/skills", OperationID: "addSkill", Summary: "Add a skill", Tag: "skills", Request: "SkillRequest", Response: "State", Status: http.StatusOK, Errors: inputErrors},
		{Method: http.MethodDelete, Path: w + "/{id}/skills/{skill}", OperationID: "removeSkill", Summary: "Remove a skill", Tag: "skills", Response: "State", Status: http.StatusOK, Errors: inputErrors},
		{Method: http.MethodPost, Path: w + "/{id}/budget/payment-type", OperationID: "setPaymentType", Summary: "Switch the budget variant", Tag: "company", Request: "PaymentTypeRequest", Response: "State", Status: http.StatusOK, Errors: inputErrors},
		{Method: http.MethodPost, Path: w + "/{id}/budget/clear-fixed", OperationID: "clearFixedBudget", Summary: "Clear the fixed price", Tag: "company", Response: "State", Status: http.StatusOK, Errors: inputErrors},
		{Method: http.MethodPost, Path: w + "/{id}/attachments", OperationID: "addAttachments", Summary: "Attach files", Tag: "company", Request: "AttachmentsRequest", Response: "State", Status: http.StatusOK, Errors: inputErrors},
		{Method: http.MethodDelete, Path: w + "/{id}/attachments/{index}", OperationID: "removeAttachment", Summary: "Remove an attachment", Tag: "company", Response: "State", Status: http.StatusOK, Errors: inputErrors},
		{Method: http.MethodPost, Path: w + "/{id}/lists/{list}/open", OperationID: "openEditor", Summary: "Open a list editor", Tag: "lists", Request: "OpenEditorRequest", Response: "State", Status: http.StatusOK, Errors: inputErrors},
		{Method: http.MethodPatch, Path: w + "/{id}/lists/{list}/draft", OperationID: "setDraftField", Summary: "Write one draft value", Tag: "lists", Request: "FieldRequest", Response: "State", Status: http.StatusOK, Errors: inputErrors},
		{Method: http.MethodPost, Path: w + "/{id}/lists/{list}/save", OperationID: "saveEditor", Summary: "Save the draft into the list", Tag: "lists", Response: "State", Status: http.StatusOK, Errors: inputErrors},
		{Method: http.MethodPost, Path: w + "/{id}/lists/{list}/cancel", OperationID: "cancelEditor", Summary: "Discard the draft", Tag: "lists", Response: "State", Status: http.StatusOK, Errors: inputErrors},
		{Method: http.MethodDelete, Path: w + "/{id}/lists/{list}/{index}", OperationID: "deleteEntry", Summary: "Delete a list entry", Tag: "lists", Response: "State", Status: http.StatusOK, Errors: inputErrors},
		{Method: http.MethodGet, Path: LookupsPath + "/{kind}", OperationID: "lookup", Summary: "Search reference data", Tag: "lookups", Response: "OptionList", Status: http.StatusOK, Errors: []int{http.StatusBadRequest, http.StatusNotFound}},
		{Method: http.MethodGet, Path: HealthPath, OperationID: "health", Summary: "Liveness", Tag: "meta", Response: "Health", Status: http.StatusOK},
		{Method: http.MethodGet, Path: DocumentPath, OperationID: "openapi", Summary: "This document", Tag: "meta", Status: http.StatusOK},
		{Method: http.MethodGet, Path: "/", OperationID: "landingPage", Summary: "Landing page", Tag: "site", Status: http.StatusOK, HTML: true},
		{Method: http.MethodGet, Path: "/onboarding", OperationID: "onboardingPage", Summary: "Role choice page", Tag: "site", Status: http.StatusOK, HTML: true},
	}
}

type buildOptions struct {
	title     string
	version   string
	serverURL string
}

// Option configures Build.
type Option func(*buildOptions)

// WithVersion sets info.version.
func WithVersion(version string) Option {
	return func(o *buildOptions) {
		if strings.TrimSpace(version) != "" {
			o.version = version
		}
	}
}

// WithServerURL adds a server entry.
func WithServerURL(url string) Option {
	return func(o *buildOptions) {
		o.serverURL = strings.TrimSpace(url)
	}
}

// Build assembles and validates the document.
func Build(opts ...Option) (*openapi3.T, error) {
	o := buildOptions{title: "Lexend onboarding API", version: "1.0.0"}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	schemas, err := componentSchemas()
	if err != nil {
		return nil, err
	}

	doc := &openapi3.T{
		OpenAPI:    "3.0.3",
		Info:       &openapi3.Info{Title: o.title, Version: o.version},
		Paths:      openapi3.NewPaths(),
		Components: &openapi3.Components{Schemas: schemas},
	}
	if o.serverURL != "" {
		doc.Servers = openapi3.Servers{{URL: o.serverURL}}
	}

	for _, route := range Routes() {
		doc.AddOperation(route.Path, route.Method, operation(route, schemas))
	}

	if err := doc.Validate(context.Background(), openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("apidoc: invalid document: %w", err)
	}
	return doc, nil
}

// JSON renders the document with indentation.
func JSON(doc *openapi3.T) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("apidoc: missing document")
	}
	return json.MarshalIndent(doc, "", "  ")
}

func operation(route Route, schemas openapi3.Schemas) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = route.OperationID
	op.Summary = route.Summary
	if route.Tag != "" {
		op.Tags = []string{route.Tag}
	}

	for _, name := range pathParams(route.Path) {
		param := openapi3.NewPathParameter(name).WithSchema(paramSchema(name))
		if name == "kind" && strings.HasPrefix(route.Path, LookupsPath) {
			param.Schema.Value.Enum = lookupKinds()
		} else if name == "kind" {
			param.Schema.Value.Enum = []any{string(flow.KindFreelancer), string(flow.KindCompany)}
		}
		op.AddParameter(param)
	}
	if strings.HasPrefix(route.Path, LookupsPath) {
		op.AddParameter(openapi3.NewQueryParameter("q").WithSchema(openapi3.NewStringSchema()))
		op.AddParameter(openapi3.NewQueryParameter("limit").WithSchema(openapi3.NewIntegerSchema()))
		op.AddParameter(openapi3.NewQueryParameter("category").WithSchema(openapi3.NewStringSchema()))
	}

	if route.Request != "" {
		body := openapi3.NewRequestBody().WithRequired(true).WithJSONSchemaRef(schemaRef(route.Request, schemas))
		op.RequestBody = &openapi3.RequestBodyRef{Value: body}
	}

	resp := openapi3.NewResponse().WithDescription(route.Summary)
	switch {
	case route.HTML:
		resp.Content = openapi3.NewContentWithSchema(openapi3.NewStringSchema(), []string{"text/html"})
	case route.Response != "":
		resp.Content = openapi3.NewContentWithJSONSchemaRef(schemaRef(route.Response, schemas))
	case route.Path == DocumentPath:
		resp.Content = openapi3.NewContentWithJSONSchema(openapi3.NewObjectSchema())
	}
	op.Responses = openapi3.NewResponsesWithCapacity(len(route.Errors) + 1)
	op.AddResponse(route.Status, resp)

	for _, status := range route.Errors {
		errResp := openapi3.NewResponse().
			WithDescription(http.StatusText(status)).
			WithJSONSchemaRef(schemaRef("ErrorBody", schemas))
		op.AddResponse(status, errResp)
	}
	return op
}

// pathParams returns the {name} segments of path in order.
func pathParams(path string) []string {
	var names []string
	for _, segment := range strings.Split(path, "/") {
		if strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
			names = append(names, segment[1:len(segment)-1])
		}
	}
	return names
}

func paramSchema(name string) *openapi3.Schema {
	switch name {
	case "step", "index":
		return openapi3.NewIntegerSchema().WithMin(0)
	default:
		return openapi3.NewStringSchema()
	}
}

func lookupKinds() []any {
	kinds := lookups.Kinds()
	out := make([]any, 0, len(kinds))
	for _, kind := range kinds {
		out = append(out, string(kind))
	}
	return out
}

func schemaRef(name string, schemas openapi3.Schemas) *openapi3.SchemaRef {
	var value *openapi3.Schema
	if ref := schemas[name]; ref != nil {
		value = ref.Value
	}
	return openapi3.NewSchemaRef("#/components/schemas/"+name, value)
}

// componentSchemas generates a schema for every named wire type.
func componentSchemas() (openapi3.Schemas, error) {
	values := []struct {
		name  string
		value any
	}{
		{"State", State{}},
		{"ErrorBody", ErrorBody{}},
		{"FieldRequest", FieldRequest{}},
		{"MethodRequest", MethodRequest{}},
		{"OpenEditorRequest", OpenEditorRequest{}},
		{"SpecialtyRequest", SpecialtyRequest{}},
		{"SkillRequest", SkillRequest{}},
		{"PaymentTypeRequest", PaymentTypeRequest{}},
		{"AttachmentsRequest", AttachmentsRequest{}},
		{"ValidateResponse", ValidateResponse{}},
		{"Health", Health{}},
		{"OptionList", OptionList{}},
		{"SourceList", SourceList{}},
		{"Review", flow.Review{}},
		{"Profile", profile.Profile{}},
		{"JobPost", jobpost.JobPost{}},
	}

	schemas := openapi3.Schemas{}
	for _, entry := range values {
		ref, err := openapi3gen.NewSchemaRefForValue(entry.value, schemas, openapi3gen.SchemaCustomizer(enumFromValidateTag))
		if err != nil {
			return nil, fmt.Errorf("apidoc: schema %s: %w", entry.name, err)
		}
		schemas[entry.name] = openapi3.NewSchemaRef("", ref.Value)
	}

	if job := schemas["JobPost"].Value; job != nil {
		job.WithProperty("budget", budgetSchema())
	}
	if method := schemas["MethodRequest"].Value; method != nil {
		if prop := method.Properties["method"]; prop != nil && prop.Value != nil {
			prop.Value.Enum = []any{string(flow.MethodManual), string(flow.MethodLinkedIn), string(flow.MethodResume)}
		}
	}
	if payment := schemas["PaymentTypeRequest"].Value; payment != nil {
		if prop := payment.Properties["paymentType"]; prop != nil && prop.Value != nil {
			prop.Value.Enum = []any{string(jobpost.PaymentHourly), string(jobpost.PaymentFixed)}
		}
	}

	records := openapi3.NewOneOfSchema().WithNullable()
	records.OneOf = openapi3.SchemaRefs{
		schemaRef("Profile", schemas),
		schemaRef("JobPost", schemas),
	}
	for _, name := range []string{"State", "ValidateResponse"} {
		view := schemas[name].Value.Properties["view"]
		if view != nil && view.Value != nil {
			view.Value.Properties["values"] = openapi3.NewSchemaRef("", records)
		}
	}
	return schemas, nil
}

// budgetSchema describes the flat budget shape a JobPost marshals to.
func budgetSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithNullable().
		WithProperty("paymentType", openapi3.NewStringSchema().WithEnum(string(jobpost.PaymentHourly), string(jobpost.PaymentFixed))).
		WithProperty("hourlyRateFrom", openapi3.NewFloat64Schema().WithNullable()).
		WithProperty("hourlyRateTo", openapi3.NewFloat64Schema().WithNullable()).
		WithProperty("fixedPriceBudget", openapi3.NewFloat64Schema().WithNullable())
}

// enumFromValidateTag turns a `oneof` validation rule on a string field into
// an enum. Rules after `dive` apply to slice elements.
func enumFromValidateTag(_ string, t reflect.Type, tag reflect.StructTag, schema *openapi3.Schema) error {
	if t.Kind() != reflect.String {
		return nil
	}
	rules := tag.Get("validate")
	if idx := strings.Index(rules, "dive"); idx >= 0 {
		rules = rules[idx+len("dive"):]
	}
	for _, rule := range strings.Split(rules, ",") {
		values, ok := strings.CutPrefix(strings.TrimSpace(rule), "oneof=")
		if !ok {
			continue
		}
		for _, value := range strings.Fields(values) {
			schema.Enum = append(schema.Enum, value)
		}
	}
	return nil
}
