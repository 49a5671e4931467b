package model

import "strings"

// FieldType is the simplified enum for the input widgets the renderers know
// how to emit.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypeTel      FieldType = "tel"
	FieldTypeDate     FieldType = "date"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeSelect   FieldType = "select"
	FieldTypeHidden   FieldType = "hidden"
	// FieldTypeSpecs marks the slot owned by the dynamic specs controller. The
	// renderer asks the controller for the widget set instead of drawing the
	// field itself.
	FieldTypeSpecs FieldType = "specs"
)

// Option is a value/label pair used by select and checkbox widgets.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field models an individual input inside a form. Struct fields are annotated
// so renderers can serialise them directly when needed.
type Field struct {
	Name        string            `json:"name"`
	Type        FieldType         `json:"type"`
	Label       string            `json:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Description string            `json:"description,omitempty"`
	Required    bool              `json:"required"`
	ReadOnly    bool              `json:"readonly,omitempty"`
	Options     []Option          `json:"options,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// FormModel is the top-level representation renderers consume.
type FormModel struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Action      string            `json:"action"`
	Method      string            `json:"method"`
	SubmitLabel string            `json:"submitLabel,omitempty"`
	Fields      []Field           `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Field returns the field with the given name.
func (f FormModel) Field(name string) (Field, bool) {
	name = strings.TrimSpace(name)
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// RequiredFields lists the names flagged as required, in declaration order.
func (f FormModel) RequiredFields() []string {
	var out []string
	for _, field := range f.Fields {
		if field.Required {
			out = append(out, field.Name)
		}
	}
	return out
}

// OptionValues returns the option values in order.
func OptionValues(options []Option) []string {
	if len(options) == 0 {
		return nil
	}
	out := make([]string, 0, len(options))
	for _, opt := range options {
		out = append(out, opt.Value)
	}
	return out
}
