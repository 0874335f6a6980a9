// Package schema holds the validation vocabulary shared by both onboarding
// wizards. Validation outcomes are expressed as Issues: an ordered list of
// field-path scoped messages using dotted paths (`budget.hourlyRateTo`,
// `employmentHistory.0.endDate.year`). Declarative per-field rules are
// expressed as go-playground/validator struct tags and translated into Issues
// by Validator; cross-field rules are plain functions returning Issues so the
// two can be merged without a monolithic schema object.
package schema
