package flow

import "errors"

var (
	// ErrSkipNotAllowed is returned by Skip outside the optional steps.
	ErrSkipNotAllowed = errors.New("flow: skip not allowed on this step")
	// ErrSubmitting is returned by navigation while a submit is in flight.
	ErrSubmitting = errors.New("flow: submit in progress")
	// ErrImportUnavailable is returned when a profile import method is
	// selected. Import flows are placeholders.
	ErrImportUnavailable = errors.New("flow: import unavailable")
	// ErrMethodNotSelected is returned by freelancer operations that need
	// the manual flow to have started.
	ErrMethodNotSelected = errors.New("flow: creation method not selected")
	// ErrUnknownMethod is returned for an unrecognised creation method.
	ErrUnknownMethod = errors.New("flow: unknown creation method")
	// ErrUnknownEditor is returned when a list editor name does not exist.
	ErrUnknownEditor = errors.New("flow: unknown list editor")
	// ErrUnknownKind is returned by New for a kind other than freelancer or company.
	ErrUnknownKind = errors.New("flow: unknown wizard kind")
)

// ImportError carries the placeholder message shown for an import method.
type ImportError struct {
	Method Method
}

func (e *ImportError) Error() string {
	return e.Method.Title() + " import flow would start here."
}

func (e *ImportError) Unwrap() error {
	return ErrImportUnavailable
}
