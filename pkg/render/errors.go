package render

import (
	"strings"

	"github.com/goliatone/go-formrelay/pkg/model"
)

// ErrorMapping splits error messages into field-level and form-level
// messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors concatenates and normalises multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrors assigns messages to the form's fields. Keys that do not name a
// visible field of form, including hidden inputs, become form-level
// messages so nothing is lost.
func MapErrors(form model.FormModel, errs map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}
	for key, messages := range errs {
		messages = normalizeMessages(messages)
		if len(messages) == 0 {
			continue
		}
		field, ok := form.Field(key)
		if !ok || field.Type == model.FieldTypeHidden {
			mapping.Form = MergeFormErrors(mapping.Form, messages...)
			continue
		}
		mapping.Fields[field.Name] = append(mapping.Fields[field.Name], messages...)
	}
	return mapping
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(messages))
	out := make([]string, 0, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
