package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/Ayflow350/lexend-jobs/internal/apidoc"
	"github.com/Ayflow350/lexend-jobs/internal/session"
	"github.com/Ayflow350/lexend-jobs/pkg/flow"
	"github.com/Ayflow350/lexend-jobs/pkg/jobpost"
	"github.com/Ayflow350/lexend-jobs/pkg/listedit"
	"github.com/Ayflow350/lexend-jobs/pkg/schema"
)

// errWrongKind is returned when a step helper is called on the other wizard.
var errWrongKind = errors.New("server: operation not available for this wizard")

// inputError marks a request the client has to correct.
type inputError struct {
	err error
}

func (e *inputError) Error() string { return e.err.Error() }

func (e *inputError) Unwrap() error { return e.err }

func badRequest(format string, args ...any) error {
	return &inputError{err: fmt.Errorf(format, args...)}
}

// asInput marks err as a client error unless it already maps to a status.
func asInput(err error) error {
	if err == nil || statusFor(err) != http.StatusInternalServerError {
		return err
	}
	return &inputError{err: err}
}

func statusFor(err error) int {
	var (
		validation *schema.ValidationError
		input      *inputError
		tooLarge   *http.MaxBytesError
	)
	switch {
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrClosed):
		return http.StatusServiceUnavailable
	case errors.As(err, &validation):
		return http.StatusUnprocessableEntity
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, flow.ErrSkipNotAllowed),
		errors.Is(err, flow.ErrSubmitting),
		errors.Is(err, flow.ErrNotAtReview),
		errors.Is(err, flow.ErrMethodNotSelected),
		errors.Is(err, flow.ErrImportUnavailable),
		errors.Is(err, listedit.ErrNotOpen),
		errors.Is(err, jobpost.ErrPaymentTypeUnset):
		return http.StatusConflict
	case errors.As(err, &input),
		errors.Is(err, errWrongKind),
		errors.Is(err, flow.ErrUnknownKind),
		errors.Is(err, flow.ErrUnknownMethod),
		errors.Is(err, flow.ErrUnknownEditor),
		errors.Is(err, listedit.ErrIndexOutOfRange),
		errors.Is(err, jobpost.ErrUnknownPaymentType):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// fail writes the error envelope. Server errors are logged and their
// message is not echoed.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	body := apidoc.ErrorBody{Error: err.Error()}

	var validation *schema.ValidationError
	if errors.As(err, &validation) {
		body.Error = "validation failed"
		body.Issues = validation.Issues
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		body.Error = http.StatusText(status)
	}
	writeJSON(w, status, body)
}

// decode reads a JSON body into dst. An empty body leaves dst untouched when
// optional is set.
func decode(r *http.Request, dst any, optional bool) error {
	if r.Body == nil {
		if optional {
			return nil
		}
		return badRequest("request body required")
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return err
		case errors.Is(err, io.EOF) && optional:
			return nil
		case errors.Is(err, io.EOF):
			return badRequest("request body required")
		default:
			return badRequest("invalid JSON body: %v", err)
		}
	}
	return nil
}

func intParam(raw, name string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, badRequest("%s must be a non-negative integer, got %q", name, raw)
	}
	return n, nil
}
