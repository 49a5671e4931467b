package specs

import (
	"strings"

	"github.com/goliatone/go-formrelay/pkg/model"
)

// Mode tells the renderer which control family to draw.
type Mode string

const (
	ModeCheckboxes Mode = "checkboxes"
	ModeDropdown   Mode = "dropdown"
)

// Checkbox is one rendered digital size.
type Checkbox struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Value   string `json:"value"`
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

// SelectOption is one rendered dropdown entry.
type SelectOption struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// WidgetSet is the complete markup description of the specs slot for one
// variant. It is rebuilt from scratch on every call.
type WidgetSet struct {
	Kind          Kind           `json:"kind"`
	Mode          Mode           `json:"mode"`
	Checkboxes    []Checkbox     `json:"checkboxes,omitempty"`
	Options       []SelectOption `json:"options,omitempty"`
	CustomVisible bool           `json:"customVisible"`
	CustomValue   string         `json:"customValue,omitempty"`
}

// Render builds the widget set for v, marking the selections recorded in
// state. Rendering the same variant against the same state always yields the
// same set.
func Render(v Variant, state model.FormState) WidgetSet {
	switch variant := v.(type) {
	case Digital:
		checked := make(map[string]struct{})
		for _, value := range state.Values(DigitalField) {
			checked[value] = struct{}{}
		}
		boxes := make([]Checkbox, 0, len(variant.Sizes))
		for _, size := range variant.Sizes {
			_, on := checked[size.Value]
			boxes = append(boxes, Checkbox{
				ID:      CheckboxID(size.Value),
				Name:    DigitalField,
				Value:   size.Value,
				Label:   size.Label,
				Checked: on,
			})
		}
		return WidgetSet{Kind: KindDigital, Mode: ModeCheckboxes, Checkboxes: boxes}
	case Periodical:
		current := state.Get(SpecsField)
		options := make([]SelectOption, 0, len(variant.Sizes)+2)
		options = append(options, SelectOption{Value: "", Label: PlaceholderLabel, Selected: current == ""})
		for _, size := range variant.Sizes {
			options = append(options, SelectOption{Value: size.Value, Label: size.Label, Selected: current == size.Value})
		}
		options = append(options, SelectOption{Value: CustomValue, Label: CustomLabel, Selected: current == CustomValue})

		set := WidgetSet{Kind: KindPeriodical, Mode: ModeDropdown, Options: options}
		if current == CustomValue {
			set.CustomVisible = true
			set.CustomValue = state.Get(CustomField)
		}
		return set
	default:
		return WidgetSet{
			Kind:    KindDefault,
			Mode:    ModeDropdown,
			Options: []SelectOption{{Value: "", Label: PlaceholderLabel, Selected: true}},
		}
	}
}

// CheckboxID derives a stable element id from a size value by keeping ASCII
// letters and digits only.
func CheckboxID(value string) string {
	var b strings.Builder
	b.WriteString("spec-")
	for _, r := range value {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
