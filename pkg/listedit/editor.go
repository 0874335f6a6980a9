// Package listedit implements the modal "add / edit entry" flow shared by the
// list fields of both wizards: a draft is opened blank or as a copy of an
// existing entry, validated on save against the entry schema and only then
// written back to the owning list.
package listedit

import (
	"errors"
	"fmt"

	"github.com/Ayflow350/lexend-jobs/pkg/form"
	"github.com/Ayflow350/lexend-jobs/pkg/schema"
)

var (
	// ErrNotOpen is returned by draft operations while the editor is closed.
	ErrNotOpen = errors.New("listedit: editor is not open")
	// ErrIndexOutOfRange is returned when an entry index does not exist.
	ErrIndexOutOfRange = errors.New("listedit: index out of range")
)

// List is the owning list an editor writes to.
type List[E any] interface {
	Len() int
	At(i int) (E, bool)
	Set(i int, entry E) error
	Append(entry E)
	Remove(i int) error
}

// Handle is the type-erased view of an editor used by transports that only
// need to drive it with JSON values.
type Handle interface {
	Name() string
	OpenNew()
	OpenEdit(i int) error
	IsOpen() bool
	EditingIndex() (int, bool)
	DraftValue() any
	SetDraftField(path string, value any) error
	Errors() schema.Issues
	Save() error
	Cancel()
	Delete(i int) error
	Len() int
}

// Editor is the modal editor for one list field.
type Editor[E any] struct {
	name      string
	list      List[E]
	blank     func() E
	validator form.Validator[E]

	open   bool
	index  int
	draft  E
	errors schema.Issues
}

// New creates a closed editor. blank produces the entry a new draft starts
// from; validator checks a draft on save.
func New[E any](name string, list List[E], blank func() E, validator form.Validator[E]) *Editor[E] {
	if blank == nil {
		blank = func() E {
			var zero E
			return zero
		}
	}
	return &Editor[E]{name: name, list: list, blank: blank, validator: validator, index: -1}
}

// Name returns the list name the editor is bound to.
func (e *Editor[E]) Name() string {
	return e.name
}

// Len returns the length of the owning list.
func (e *Editor[E]) Len() int {
	return e.list.Len()
}

// OpenNew opens the editor on a blank draft that will be appended on save.
func (e *Editor[E]) OpenNew() {
	e.open = true
	e.index = -1
	e.draft = e.blank()
	e.errors = nil
}

// OpenEdit opens the editor on a copy of entry i.
func (e *Editor[E]) OpenEdit(i int) error {
	entry, ok := e.list.At(i)
	if !ok {
		return fmt.Errorf("%w: %s[%d]", ErrIndexOutOfRange, e.name, i)
	}
	e.open = true
	e.index = i
	e.draft = copyEntry(entry)
	e.errors = nil
	return nil
}

// IsOpen reports whether a draft is being edited.
func (e *Editor[E]) IsOpen() bool {
	return e.open
}

// EditingIndex returns the entry being edited; ok is false for a new draft
// or a closed editor.
func (e *Editor[E]) EditingIndex() (int, bool) {
	if !e.open || e.index < 0 {
		return -1, false
	}
	return e.index, true
}

// Draft returns a copy of the current draft.
func (e *Editor[E]) Draft() (E, bool) {
	if !e.open {
		var zero E
		return zero, false
	}
	return copyEntry(e.draft), true
}

// DraftValue returns the draft as an untyped value, nil when closed.
func (e *Editor[E]) DraftValue() any {
	if !e.open {
		return nil
	}
	return copyEntry(e.draft)
}

// UpdateDraft applies fn to the draft.
func (e *Editor[E]) UpdateDraft(fn func(*E)) error {
	if !e.open {
		return ErrNotOpen
	}
	fn(&e.draft)
	return nil
}

// SetDraftField writes a JSON-compatible value at a dotted path of the draft.
func (e *Editor[E]) SetDraftField(path string, value any) error {
	if !e.open {
		return ErrNotOpen
	}
	return form.SetPath(&e.draft, path, value)
}

// Errors returns the issues reported by the last failed save.
func (e *Editor[E]) Errors() schema.Issues {
	return append(schema.Issues(nil), e.errors...)
}

// Save validates the draft. Valid drafts replace the edited entry or are
// appended, and the editor closes. Invalid drafts keep the editor open and
// return a *schema.ValidationError; the list is not touched. Saving over an
// entry removed since the editor opened returns ErrIndexOutOfRange.
func (e *Editor[E]) Save() error {
	if !e.open {
		return ErrNotOpen
	}
	if e.validator != nil {
		if issues := e.validator.Validate(e.draft); !issues.Valid() {
			e.errors = issues
			return issues.Err()
		}
	}
	if e.index >= 0 {
		if err := e.list.Set(e.index, e.draft); err != nil {
			if errors.Is(err, form.ErrOutOfRange) {
				return fmt.Errorf("%w: %s[%d]", ErrIndexOutOfRange, e.name, e.index)
			}
			return err
		}
	} else {
		e.list.Append(e.draft)
	}
	e.close()
	return nil
}

// Cancel discards the draft.
func (e *Editor[E]) Cancel() {
	e.close()
}

// Delete removes entry i from the owning list. Deleting the entry currently
// being edited closes the editor; deleting an earlier entry shifts the
// edited index.
func (e *Editor[E]) Delete(i int) error {
	if i < 0 || i >= e.list.Len() {
		return fmt.Errorf("%w: %s[%d]", ErrIndexOutOfRange, e.name, i)
	}
	if err := e.list.Remove(i); err != nil {
		return err
	}
	if e.open && e.index >= 0 {
		switch {
		case e.index == i:
			e.close()
		case e.index > i:
			e.index--
		}
	}
	return nil
}

func (e *Editor[E]) close() {
	var zero E
	e.open = false
	e.index = -1
	e.draft = zero
	e.errors = nil
}

func copyEntry[E any](entry E) E {
	if c, ok := any(entry).(form.Cloner[E]); ok {
		return c.Clone()
	}
	return entry
}
