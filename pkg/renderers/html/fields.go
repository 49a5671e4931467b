package html

import (
	"strings"

	"github.com/goliatone/go-formrelay/pkg/model"
	"github.com/goliatone/go-formrelay/pkg/render"
)

type optionView struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

type fieldView struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Type        string       `json:"type"`
	InputType   string       `json:"inputType"`
	Label       string       `json:"label"`
	Placeholder string       `json:"placeholder"`
	Description string       `json:"description"`
	Required    bool         `json:"required"`
	ReadOnly    bool         `json:"readonly"`
	Value       string       `json:"value"`
	Options     []optionView `json:"options"`
	Errors      []string     `json:"errors"`
	Mask        string       `json:"mask"`
	MaxLength   string       `json:"maxlength"`
	Suffix      string       `json:"suffix"`
	Min         string       `json:"min"`
}

// buildFieldViews turns the visible fields into template rows. Hidden fields
// are emitted separately.
func buildFieldViews(form model.FormModel, opts render.RenderOptions) []fieldView {
	views := make([]fieldView, 0, len(form.Fields))
	for _, field := range form.Fields {
		if field.Type == model.FieldTypeHidden {
			continue
		}
		value := opts.State.Get(field.Name)
		view := fieldView{
			ID:          controlID(field.Name),
			Name:        field.Name,
			Type:        string(field.Type),
			InputType:   inputType(field.Type),
			Label:       field.Label,
			Placeholder: field.Placeholder,
			Description: field.Description,
			Required:    field.Required,
			ReadOnly:    field.ReadOnly,
			Value:       value,
			Errors:      opts.Errors[field.Name],
			Mask:        field.Metadata["mask"],
			MaxLength:   field.Metadata["maxlength"],
			Suffix:      field.Metadata["suffix"],
		}
		if field.Type == model.FieldTypeDate {
			view.Min = dateMin(field, opts)
		}
		if field.Type == model.FieldTypeSelect {
			view.Options = selectOptions(field, value)
		}
		views = append(views, view)
	}
	return views
}

func selectOptions(field model.Field, value string) []optionView {
	out := make([]optionView, 0, len(field.Options)+1)
	out = append(out, optionView{Value: "", Label: field.Placeholder, Selected: value == ""})
	for _, opt := range field.Options {
		out = append(out, optionView{Value: opt.Value, Label: opt.Label, Selected: opt.Value == value})
	}
	return out
}

// dateMin keeps a dependent date at or after the date it requires, the way
// the page script does after a change.
func dateMin(field model.Field, opts render.RenderOptions) string {
	if dep := field.Metadata["requires"]; dep != "" {
		if prior := strings.TrimSpace(opts.State.Get(dep)); prior != "" && prior > opts.MinDate {
			return prior
		}
	}
	return opts.MinDate
}

func inputType(t model.FieldType) string {
	switch t {
	case model.FieldTypeEmail, model.FieldTypeTel, model.FieldTypeDate:
		return string(t)
	default:
		return "text"
	}
}

func controlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "fr-" + trimmed
}
