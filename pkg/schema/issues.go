package schema

import (
	"fmt"
	"strings"
)

// Issue is a single validation failure attached to a dotted field path. An
// empty path marks a form-level failure.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Issues is an ordered validation error set.
type Issues []Issue

// Valid reports whether the set is empty.
func (is Issues) Valid() bool {
	return len(is) == 0
}

// Has reports whether any issue sits at path or below it.
func (is Issues) Has(path string) bool {
	for _, issue := range is {
		if Covers(path, issue.Path) {
			return true
		}
	}
	return false
}

// For returns the messages attached exactly to path.
func (is Issues) For(path string) []string {
	var out []string
	for _, issue := range is {
		if issue.Path == path {
			out = append(out, issue.Message)
		}
	}
	return out
}

// Under keeps the issues located at or below any of the given paths.
func (is Issues) Under(paths ...string) Issues {
	var out Issues
	for _, issue := range is {
		for _, path := range paths {
			if Covers(path, issue.Path) {
				out = append(out, issue)
				break
			}
		}
	}
	return out
}

// Without drops the issues located at or below any of the given paths.
func (is Issues) Without(paths ...string) Issues {
	var out Issues
	for _, issue := range is {
		keep := true
		for _, path := range paths {
			if Covers(path, issue.Path) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, issue)
		}
	}
	return out
}

// Prefix re-roots every issue under parent, which is how sub-record issues
// (an employment entry) become issues of the parent record.
func (is Issues) Prefix(parent string) Issues {
	if len(is) == 0 {
		return nil
	}
	out := make(Issues, 0, len(is))
	for _, issue := range is {
		out = append(out, Issue{Path: JoinPath(parent, issue.Path), Message: issue.Message})
	}
	return out
}

// Merge appends other to the set, skipping exact duplicates.
func (is Issues) Merge(other ...Issue) Issues {
	out := make(Issues, 0, len(is)+len(other))
	seen := make(map[Issue]struct{}, len(is)+len(other))
	for _, group := range [][]Issue{is, other} {
		for _, issue := range group {
			issue.Message = strings.TrimSpace(issue.Message)
			if issue.Message == "" {
				continue
			}
			if _, ok := seen[issue]; ok {
				continue
			}
			seen[issue] = struct{}{}
			out = append(out, issue)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Fields groups messages by path, preserving first-seen order per path.
func (is Issues) Fields() map[string][]string {
	if len(is) == 0 {
		return nil
	}
	out := make(map[string][]string, len(is))
	for _, issue := range is {
		out[issue.Path] = append(out[issue.Path], issue.Message)
	}
	return out
}

// Paths lists the distinct paths in first-seen order.
func (is Issues) Paths() []string {
	var out []string
	seen := make(map[string]struct{}, len(is))
	for _, issue := range is {
		if _, ok := seen[issue.Path]; ok {
			continue
		}
		seen[issue.Path] = struct{}{}
		out = append(out, issue.Path)
	}
	return out
}

// Err returns nil for an empty set and a *ValidationError otherwise.
func (is Issues) Err() error {
	if is.Valid() {
		return nil
	}
	return &ValidationError{Issues: is}
}

// ValidationError carries a non-empty issue set through error returns.
type ValidationError struct {
	Issues Issues
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return "validation failed"
	}
	first := e.Issues[0]
	msg := first.Message
	if first.Path != "" {
		msg = first.Path + ": " + msg
	}
	if extra := len(e.Issues) - 1; extra > 0 {
		return fmt.Sprintf("validation failed: %s (and %d more)", msg, extra)
	}
	return "validation failed: " + msg
}

// Covers reports whether child equals parent or is nested below it. An empty
// parent covers everything.
func Covers(parent, child string) bool {
	parent = strings.TrimSpace(parent)
	if parent == "" {
		return true
	}
	if child == parent {
		return true
	}
	return strings.HasPrefix(child, parent+".")
}

// JoinPath joins two dotted path fragments, ignoring empty sides.
func JoinPath(parent, child string) string {
	parent = strings.TrimSpace(parent)
	child = strings.TrimSpace(child)
	if parent == "" {
		return child
	}
	if child == "" {
		return parent
	}
	return parent + "." + child
}
