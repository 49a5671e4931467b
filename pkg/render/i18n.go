package render

import (
	"errors"
	"strings"

	"github.com/goliatone/go-formrelay/pkg/model"
)

// ErrMissingTranslator is passed to MissingTranslationHandler when no
// Translator was configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves a message key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler decides what to show for a key that could not be
// translated. args carries a {"default": fallback} map when one exists.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

func missingTranslationDefault(_ string, key string, args []any, _ error) string {
	for _, arg := range args {
		if values, ok := arg.(map[string]any); ok {
			if fallback, ok := values["default"].(string); ok && strings.TrimSpace(fallback) != "" {
				return fallback
			}
		}
	}
	return key
}

// Translation keys are derived from the form id and field name:
//
//	forms.<formID>.title
//	forms.<formID>.submit
//	forms.<formID>.fields.<name>.label
//	forms.<formID>.fields.<name>.placeholder
//	forms.<formID>.fields.<name>.description
//	forms.<formID>.fields.<name>.options.<value>
//
// A missing key keeps the text declared on the model.

// LocalizeFormModel translates the titles, labels and option labels of form
// in place. It is best-effort: failures go through opts.OnMissing.
func LocalizeFormModel(form *model.FormModel, opts RenderOptions) {
	if form == nil || opts.Translator == nil {
		return
	}

	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	prefix := "forms." + form.ID

	form.Title = translate(opts.Locale, prefix+".title", form.Title, opts.Translator, onMissing)
	form.SubmitLabel = translate(opts.Locale, prefix+".submit", form.SubmitLabel, opts.Translator, onMissing)

	fields := make([]model.Field, len(form.Fields))
	copy(fields, form.Fields)
	for i := range fields {
		localizeField(&fields[i], prefix+".fields."+fields[i].Name, opts.Locale, opts.Translator, onMissing)
	}
	form.Fields = fields
}

func localizeField(field *model.Field, prefix, locale string, t Translator, onMissing MissingTranslationHandler) {
	if field.Label != "" {
		field.Label = translate(locale, prefix+".label", field.Label, t, onMissing)
	}
	if field.Placeholder != "" {
		field.Placeholder = translate(locale, prefix+".placeholder", field.Placeholder, t, onMissing)
	}
	if field.Description != "" {
		field.Description = translate(locale, prefix+".description", field.Description, t, onMissing)
	}
	if len(field.Options) == 0 {
		return
	}
	options := make([]model.Option, len(field.Options))
	for i, opt := range field.Options {
		opt.Label = translate(locale, prefix+".options."+opt.Value, opt.Label, t, onMissing)
		options[i] = opt
	}
	field.Options = options
}

func translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}

	defaults := []any{map[string]any{"default": fallback}}
	if t == nil {
		return onMissing(locale, key, defaults, ErrMissingTranslator)
	}

	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	return onMissing(locale, key, defaults, err)
}
