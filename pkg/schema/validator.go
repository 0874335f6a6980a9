package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Messages maps a rule key to the message shown to the user. Keys are the
// dotted field path with list indices replaced by `*`, followed by the
// validator tag: `skills.*.max`, `professionalTitle.min`.
type Messages map[string]string

var (
	engineOnce sync.Once
	engine     *validator.Validate
)

// Engine returns the process wide validator instance. It caches struct
// metadata, so sharing it across records is intended.
func Engine() *validator.Validate {
	engineOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonFieldName)
		engine = v
	})
	return engine
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	default:
		return name
	}
}

// Validator runs struct tag rules and translates failures into Issues using
// a message table.
type Validator struct {
	messages Messages
}

// NewValidator builds a Validator around the provided message table.
func NewValidator(messages Messages) *Validator {
	clone := make(Messages, len(messages))
	for key, msg := range messages {
		clone[strings.TrimSpace(key)] = msg
	}
	return &Validator{messages: clone}
}

// Struct validates value (a struct or pointer to struct) and returns the
// resulting issues in field declaration order.
func (v *Validator) Struct(value any) Issues {
	err := Engine().Struct(value)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Issues{{Message: err.Error()}}
	}

	out := make(Issues, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		path := namespacePath(fe.Namespace())
		out = append(out, Issue{
			Path:    path,
			Message: v.message(path, fe.Tag(), fe.Param()),
		})
	}
	return out.Merge()
}

func (v *Validator) message(path, tag, param string) string {
	if v != nil {
		if msg, ok := v.messages[Pattern(path)+"."+tag]; ok {
			return msg
		}
	}
	return defaultMessage(tag, param)
}

func defaultMessage(tag, param string) string {
	switch tag {
	case "required":
		return "This field is required."
	case "min":
		return fmt.Sprintf("Must be at least %s.", param)
	case "max":
		return fmt.Sprintf("Must be at most %s.", param)
	case "oneof":
		return fmt.Sprintf("Must be one of: %s.", strings.Join(strings.Fields(param), ", "))
	default:
		return "Invalid value."
	}
}

// namespacePath converts a validator namespace (`Profile.skills[2]`) into a
// dotted field path (`skills.2`) by dropping the root type name.
func namespacePath(namespace string) string {
	idx := strings.IndexByte(namespace, '.')
	if idx < 0 {
		return ""
	}
	clean := strings.NewReplacer("[", ".", "]", "").Replace(namespace[idx+1:])
	parts := strings.FieldsFunc(clean, func(r rune) bool { return r == '.' })
	return strings.Join(parts, ".")
}

// Pattern replaces numeric path segments with `*` so list entries share one
// message key.
func Pattern(path string) string {
	if path == "" {
		return ""
	}
	segments := strings.Split(path, ".")
	for i, segment := range segments {
		if _, err := strconv.Atoi(segment); err == nil {
			segments[i] = "*"
		}
	}
	return strings.Join(segments, ".")
}
