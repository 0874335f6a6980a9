package form

import (
	"github.com/Ayflow350/lexend-jobs/pkg/schema"
)

// Validator validates a whole record. Implementations must be pure: the same
// record always yields the same issues.
type Validator[T any] interface {
	Validate(T) schema.Issues
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc[T any] func(T) schema.Issues

// Validate calls fn.
func (fn ValidatorFunc[T]) Validate(value T) schema.Issues {
	if fn == nil {
		return nil
	}
	return fn(value)
}

// Cloner is implemented by records that hold slices or pointers so Values can
// hand out copies that do not alias store state.
type Cloner[T any] interface {
	Clone() T
}

// Store owns one wizard's form record. It is the only mutation point for the
// record: callers read copies through Values/Field and write through Update
// or SetField. Surfaced errors follow change-driven semantics: a path's
// errors are refreshed when that path is changed or triggered, and the full
// set is surfaced by Validate.
//
// A Store is not safe for concurrent use; the owning session serialises
// access.
type Store[T any] struct {
	values    T
	validator Validator[T]
	errors    schema.Issues
}

// NewStore creates a store seeded with defaults.
func NewStore[T any](defaults T, validator Validator[T]) *Store[T] {
	return &Store[T]{values: clone(defaults), validator: validator}
}

func clone[T any](value T) T {
	if c, ok := any(value).(Cloner[T]); ok {
		return c.Clone()
	}
	return value
}

// Values returns a copy of the current record.
func (s *Store[T]) Values() T {
	return clone(s.values)
}

// Field resolves a dotted path against the current record.
func (s *Store[T]) Field(path string) (any, bool) {
	return GetPath(s.values, path)
}

// Update applies fn to the record. fn reports whether it changed anything;
// when it did, the errors under the given paths are refreshed.
// A rejected change (fn returns false) must leave the record untouched.
func (s *Store[T]) Update(fn func(*T) bool, paths ...string) bool {
	if fn == nil || !fn(&s.values) {
		return false
	}
	s.refresh(paths...)
	return true
}

// SetField writes a JSON-compatible value at path and refreshes that path's
// errors.
func (s *Store[T]) SetField(path string, value any) error {
	next := s.values
	if err := SetPath(&next, path, value); err != nil {
		return err
	}
	s.values = next
	s.refresh(path)
	return nil
}

// Trigger validates exactly the given paths, surfaces their errors and
// reports whether all of them passed.
func (s *Store[T]) Trigger(paths ...string) bool {
	if len(paths) == 0 {
		return true
	}
	return s.refresh(paths...).Valid()
}

// Validate runs the whole schema, surfaces every issue and returns them.
func (s *Store[T]) Validate() schema.Issues {
	issues := s.check()
	s.errors = issues
	return issues
}

// IsValid reports overall validity without changing surfaced errors.
func (s *Store[T]) IsValid() bool {
	return s.check().Valid()
}

// Errors returns the surfaced errors.
func (s *Store[T]) Errors() schema.Issues {
	return append(schema.Issues(nil), s.errors...)
}

// HasErrors reports whether any surfaced error sits at or below one of the
// paths.
func (s *Store[T]) HasErrors(paths ...string) bool {
	for _, path := range paths {
		if s.errors.Has(path) {
			return true
		}
	}
	return false
}

func (s *Store[T]) check() schema.Issues {
	if s.validator == nil {
		return nil
	}
	return s.validator.Validate(s.values)
}

// refresh replaces the surfaced errors under paths with the current ones and
// returns the current issues under those paths.
func (s *Store[T]) refresh(paths ...string) schema.Issues {
	if len(paths) == 0 {
		return nil
	}
	current := s.check().Under(paths...)
	s.errors = s.errors.Without(paths...).Merge(current...)
	return current
}
