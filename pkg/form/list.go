package form

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when a list index does not exist.
var ErrOutOfRange = errors.New("form: index out of range")

// SliceField exposes one list field of a store's record (employment history,
// languages, attachments) as an indexable list. Every write goes through the
// store so the list path's errors are refreshed.
type SliceField[T, E any] struct {
	store    *Store[T]
	path     string
	accessor func(*T) *[]E
}

// NewSliceField binds the list at path, reached through accessor, to store.
func NewSliceField[T, E any](store *Store[T], path string, accessor func(*T) *[]E) *SliceField[T, E] {
	return &SliceField[T, E]{store: store, path: path, accessor: accessor}
}

// Path returns the list's field path.
func (f *SliceField[T, E]) Path() string {
	return f.path
}

// Len returns the current number of entries.
func (f *SliceField[T, E]) Len() int {
	return len(*f.accessor(&f.store.values))
}

// At returns entry i.
func (f *SliceField[T, E]) At(i int) (E, bool) {
	items := *f.accessor(&f.store.values)
	var zero E
	if i < 0 || i >= len(items) {
		return zero, false
	}
	return items[i], true
}

// Items returns a copy of the entries.
func (f *SliceField[T, E]) Items() []E {
	items := *f.accessor(&f.store.values)
	return append([]E(nil), items...)
}

// Set replaces entry i.
func (f *SliceField[T, E]) Set(i int, entry E) error {
	if i < 0 || i >= f.Len() {
		return fmt.Errorf("%w: %s[%d]", ErrOutOfRange, f.path, i)
	}
	f.store.Update(func(rec *T) bool {
		items := f.accessor(rec)
		next := append([]E(nil), (*items)...)
		next[i] = entry
		*items = next
		return true
	}, f.path)
	return nil
}

// Append adds entry at the end.
func (f *SliceField[T, E]) Append(entry E) {
	f.store.Update(func(rec *T) bool {
		items := f.accessor(rec)
		next := make([]E, 0, len(*items)+1)
		next = append(next, (*items)...)
		*items = append(next, entry)
		return true
	}, f.path)
}

// Remove deletes entry i.
func (f *SliceField[T, E]) Remove(i int) error {
	if i < 0 || i >= f.Len() {
		return fmt.Errorf("%w: %s[%d]", ErrOutOfRange, f.path, i)
	}
	f.store.Update(func(rec *T) bool {
		items := f.accessor(rec)
		next := make([]E, 0, len(*items)-1)
		next = append(next, (*items)[:i]...)
		*items = append(next, (*items)[i+1:]...)
		return true
	}, f.path)
	return nil
}
