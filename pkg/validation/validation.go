// Package validation runs the synchronous submit-time checks over a
// FormState. Rules are evaluated in order and the first failure wins; there is
// no accumulation of multiple errors.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/goliatone/go-formrelay/pkg/masking"
	"github.com/goliatone/go-formrelay/pkg/model"
)

// DateLayout is the wire format of date inputs.
const DateLayout = "2006-01-02"

// Rule checks one constraint. A nil result means the state passes.
type Rule interface {
	Check(state model.FormState) *ValidationError
}

// RuleFunc adapts a function into a Rule.
type RuleFunc func(state model.FormState) *ValidationError

// Check delegates to the underlying function.
func (fn RuleFunc) Check(state model.FormState) *ValidationError {
	return fn(state)
}

// Validator is an ordered, short-circuiting rule chain.
type Validator struct {
	rules []Rule
}

// New builds a validator from rules, skipping nil entries.
func New(rules ...Rule) *Validator {
	v := &Validator{}
	for _, rule := range rules {
		if rule != nil {
			v.rules = append(v.rules, rule)
		}
	}
	return v
}

// Validate returns the first failing rule as a *ValidationError, or nil.
func (v *Validator) Validate(state model.FormState) error {
	if v == nil {
		return nil
	}
	for _, rule := range v.rules {
		if err := rule.Check(state); err != nil {
			return err
		}
	}
	return nil
}

// Len reports the number of rules in the chain.
func (v *Validator) Len() int {
	if v == nil {
		return 0
	}
	return len(v.rules)
}

// MaxCJK fails when field holds more than limit characters in the
// U+4E00..U+9FA5 range.
func MaxCJK(field string, limit int, messageID, message string) Rule {
	return RuleFunc(func(state model.FormState) *ValidationError {
		if masking.CountCJK(state.Get(field)) <= limit {
			return nil
		}
		return &ValidationError{
			Rule:      RuleCJKLimit,
			Field:     field,
			MessageID: messageID,
			Message:   message,
			Data:      map[string]any{"Limit": limit},
		}
	})
}

// Pattern fails when field does not match re. A missing value is checked as
// the empty string.
func Pattern(field string, re *regexp.Regexp, messageID, message string) Rule {
	return RuleFunc(func(state model.FormState) *ValidationError {
		if re.MatchString(state.Get(field)) {
			return nil
		}
		return &ValidationError{
			Rule:      RulePattern,
			Field:     field,
			MessageID: messageID,
			Message:   message,
		}
	})
}

// RequiredField names a field that must be non-blank and the label used in
// the message.
type RequiredField struct {
	Name  string
	Label string
}

// RequiredMessageID is the message id used by Required.
const RequiredMessageID = "validation.required"

// Required fails on the first listed field that is missing or blank after
// trimming.
func Required(fields ...RequiredField) Rule {
	return RuleFunc(func(state model.FormState) *ValidationError {
		for _, field := range fields {
			if !state.Blank(field.Name) {
				continue
			}
			label := field.Label
			if label == "" {
				label = field.Name
			}
			return &ValidationError{
				Rule:      RuleRequired,
				Field:     field.Name,
				MessageID: RequiredMessageID,
				Message:   fmt.Sprintf("請填寫%s欄位", label),
				Data:      map[string]any{"Label": label},
			}
		}
		return nil
	})
}

// DateMessageIDs groups the message ids of the date rules.
const (
	DateInvalidMessageID = "validation.date.invalid"
	DateMinMessageID     = "validation.date.min"
	DateOrderMessageID   = "validation.date.order"
)

// DateNotBefore fails when field holds a date earlier than min(). Blank
// values pass; pair it with Required when the date is mandatory.
func DateNotBefore(field, label string, min func() time.Time) Rule {
	return RuleFunc(func(state model.FormState) *ValidationError {
		raw := strings.TrimSpace(state.Get(field))
		if raw == "" {
			return nil
		}
		value, err := time.Parse(DateLayout, raw)
		if err != nil {
			return invalidDate(field, label)
		}
		floor := min()
		floor = time.Date(floor.Year(), floor.Month(), floor.Day(), 0, 0, 0, 0, time.UTC)
		if !value.Before(floor) {
			return nil
		}
		minText := floor.Format(DateLayout)
		return &ValidationError{
			Rule:      RuleDateMin,
			Field:     field,
			MessageID: DateMinMessageID,
			Message:   fmt.Sprintf("%s不可早於%s", label, minText),
			Data:      map[string]any{"Label": label, "Min": minText},
		}
	})
}

// DateOrder fails when later holds a date before earlier. Either side blank
// passes.
func DateOrder(earlier, later, earlierLabel, laterLabel string) Rule {
	return RuleFunc(func(state model.FormState) *ValidationError {
		first := strings.TrimSpace(state.Get(earlier))
		second := strings.TrimSpace(state.Get(later))
		if first == "" || second == "" {
			return nil
		}
		start, err := time.Parse(DateLayout, first)
		if err != nil {
			return invalidDate(earlier, earlierLabel)
		}
		end, err := time.Parse(DateLayout, second)
		if err != nil {
			return invalidDate(later, laterLabel)
		}
		if !end.Before(start) {
			return nil
		}
		return &ValidationError{
			Rule:      RuleDateOrder,
			Field:     later,
			MessageID: DateOrderMessageID,
			Message:   fmt.Sprintf("%s不可早於%s", laterLabel, earlierLabel),
			Data:      map[string]any{"Label": laterLabel, "Earlier": earlierLabel},
		}
	})
}

func invalidDate(field, label string) *ValidationError {
	return &ValidationError{
		Rule:      RuleDate,
		Field:     field,
		MessageID: DateInvalidMessageID,
		Message:   fmt.Sprintf("%s日期格式不正確", label),
		Data:      map[string]any{"Label": label},
	}
}
