// Package flow implements the step controllers of the two onboarding wizards.
//
// A controller owns the current step pointer and the wizard's form store. It
// gates forward navigation on the validity of the fields declared for the
// current step, supports back/skip/jump navigation and hands the assembled
// record to a Submitter from the review step. Controllers are not safe for
// concurrent use; callers serialise access (see internal/session).
package flow
