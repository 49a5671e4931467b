package validation

import "fmt"

// Rule identifiers carried by ValidationError.
const (
	RuleCJKLimit  = "cjkLimit"
	RulePattern   = "pattern"
	RuleRequired  = "required"
	RuleDateMin   = "dateMin"
	RuleDateOrder = "dateOrder"
	RuleDate      = "date"
)

// ValidationError reports the first rule a FormState failed. MessageID and
// Data let callers localize the message; Message is the default rendering.
type ValidationError struct {
	Rule      string         `json:"rule"`
	Field     string         `json:"field"`
	MessageID string         `json:"messageId"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "validation: <nil>"
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

// FieldErrors maps the error onto the field it concerns, the shape renderers
// use for inline feedback.
func (e *ValidationError) FieldErrors() map[string][]string {
	if e == nil || e.Field == "" {
		return nil
	}
	return map[string][]string{e.Field: {e.Message}}
}
