package form

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// GetPath resolves a dotted path (`phone.countryCode`, `skills.0`) against the
// JSON projection of value.
func GetPath(value any, path string) (any, bool) {
	root, err := toTree(value)
	if err != nil {
		return nil, false
	}
	if strings.TrimSpace(path) == "" {
		return root, true
	}
	return getPath(root, path)
}

// SetPath writes a JSON-compatible value at a dotted path of target by
// round-tripping target through its JSON form. Intermediate objects and list
// slots are created as needed; the record's own UnmarshalJSON (if any) decides
// how the result is interpreted.
func SetPath[T any](target *T, path string, value any) error {
	if target == nil {
		return fmt.Errorf("form: nil target")
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("form: empty path")
	}

	root, err := toTree(*target)
	if err != nil {
		return err
	}
	obj, ok := root.(map[string]any)
	if !ok {
		return fmt.Errorf("form: %T is not an object", *target)
	}
	if err := setPath(obj, path, value); err != nil {
		return err
	}

	raw, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("form: encode %s: %w", path, err)
	}
	var next T
	if err := json.Unmarshal(raw, &next); err != nil {
		return fmt.Errorf("form: decode %s: %w", path, err)
	}
	*target = next
	return nil
}

func toTree(value any) (any, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("form: encode: %w", err)
	}
	var tree any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("form: decode: %w", err)
	}
	return tree, nil
}

func getPath(root any, path string) (any, bool) {
	current := root
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// setPath walks the tree with a stack of containers so slices that grow can
// be written back into their parent.
func setPath(root map[string]any, path string, value any) error {
	segments := strings.Split(path, ".")
	for _, segment := range segments {
		if segment == "" {
			return fmt.Errorf("form: malformed path %q", path)
		}
	}
	updated, err := assign(root, segments, value, path)
	if err != nil {
		return err
	}
	if _, ok := updated.(map[string]any); !ok {
		return fmt.Errorf("form: path %q replaced the root object", path)
	}
	return nil
}

func assign(node any, segments []string, value any, path string) (any, error) {
	if len(segments) == 0 {
		return value, nil
	}
	segment := segments[0]
	rest := segments[1:]

	idx, numErr := strconv.Atoi(segment)
	switch typed := node.(type) {
	case map[string]any:
		child, err := assign(typed[segment], rest, value, path)
		if err != nil {
			return nil, err
		}
		typed[segment] = child
		return typed, nil
	case []any:
		if numErr != nil {
			return nil, fmt.Errorf("form: expected numeric segment, got %q in %q", segment, path)
		}
		if idx < 0 {
			return nil, fmt.Errorf("form: negative index in path %q", path)
		}
		if idx >= len(typed) {
			typed = append(typed, make([]any, idx+1-len(typed))...)
		}
		child, err := assign(typed[idx], rest, value, path)
		if err != nil {
			return nil, err
		}
		typed[idx] = child
		return typed, nil
	case nil:
		if numErr == nil && idx >= 0 {
			return assign(make([]any, 0, idx+1), segments, value, path)
		}
		return assign(make(map[string]any), segments, value, path)
	default:
		return nil, fmt.Errorf("form: unexpected container for segment %q in %q", segment, path)
	}
}
