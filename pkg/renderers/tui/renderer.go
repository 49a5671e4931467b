package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-formrelay/pkg/masking"
	"github.com/goliatone/go-formrelay/pkg/model"
	"github.com/goliatone/go-formrelay/pkg/render"
	"github.com/goliatone/go-formrelay/pkg/specs"
)

// Renderer walks a form in the terminal, one prompt per visible field, and
// either returns the collected state (Collect) or serialises it (Render).
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	masks        bool
	theme        Theme
	controller   *specs.Controller
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output,
// masks on).
func New(options ...Option) *Renderer {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		masks:        true,
		controller:   specs.NewController(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts for every field and serialises the answers.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	state, err := r.Collect(ctx, form, opts)
	if err != nil {
		return nil, err
	}
	return r.serialize(state)
}

// Collect prompts for every visible field, starting from opts.State, and
// returns the resulting state. Hidden fields are carried over untouched.
func (r *Renderer) Collect(ctx context.Context, form model.FormModel, opts render.RenderOptions) (model.FormState, error) {
	if ctx == nil {
		return model.FormState{}, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return model.FormState{}, err
	}
	if r.driver == nil {
		return model.FormState{}, errors.New("tui: prompt driver is nil")
	}

	state := opts.State
	if opts.Message != nil {
		if err := r.info(ctx, opts.Message.Kind, opts.Message.Text); err != nil {
			return state, err
		}
	}

	for _, field := range form.Fields {
		next, err := r.promptField(ctx, field, state, opts.Errors[field.Name])
		if err != nil {
			return state, fmt.Errorf("tui: field %q: %w", field.Name, err)
		}
		state = next
	}
	return state, nil
}

func (r *Renderer) promptField(ctx context.Context, field model.Field, state model.FormState, errs []string) (model.FormState, error) {
	for _, msg := range errs {
		if err := r.info(ctx, render.MessageError, displayLabel(field)+": "+msg); err != nil {
			return state, err
		}
	}

	switch {
	case field.Type == model.FieldTypeHidden:
		return state, nil
	case field.ReadOnly:
		return state, r.driver.Info(ctx, fmt.Sprintf("%s: %s", displayLabel(field), state.Get(field.Name)))
	}

	switch field.Type {
	case model.FieldTypeSelect:
		return r.promptSelect(ctx, field, state)
	case model.FieldTypeTextarea:
		value, err := r.driver.TextArea(ctx, TextAreaConfig{
			Message: displayLabel(field),
			Default: state.Get(field.Name),
			Help:    field.Description,
		})
		if err != nil {
			return state, err
		}
		return state.With(field.Name, value), nil
	case model.FieldTypeSpecs:
		return r.promptSpecs(ctx, field, state)
	default:
		return r.promptInput(ctx, field, state)
	}
}

func (r *Renderer) promptInput(ctx context.Context, field model.Field, state model.FormState) (model.FormState, error) {
	message := displayLabel(field)
	if suffix := field.Metadata["suffix"]; suffix != "" {
		message = fmt.Sprintf("%s (%s)", message, suffix)
	}
	help := field.Description
	if help == "" {
		help = field.Placeholder
	}

	value, err := r.driver.Input(ctx, InputConfig{
		Message: message,
		Default: state.Get(field.Name),
		Help:    help,
	})
	if err != nil {
		return state, err
	}
	if r.masks {
		if mask := masking.ForField(field.Metadata["mask"]); mask != nil {
			value = mask(value)
		}
	}
	return state.With(field.Name, value), nil
}

func (r *Renderer) promptSelect(ctx context.Context, field model.Field, state model.FormState) (model.FormState, error) {
	if len(field.Options) == 0 {
		return state, ErrNoOptions
	}
	labels := make([]string, 0, len(field.Options))
	for _, opt := range field.Options {
		labels = append(labels, opt.Label)
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      displayLabel(field),
		Options:      labels,
		DefaultIndex: optionIndex(field.Options, state.Get(field.Name)),
		Help:         field.Description,
	})
	if err != nil {
		return state, err
	}
	if idx < 0 || idx >= len(field.Options) {
		return state, fmt.Errorf("selection %d out of range", idx)
	}

	value := field.Options[idx].Value
	if field.Name == specs.TypeField && value != state.Get(specs.TypeField) {
		next, _ := r.controller.Switch(state, value)
		return next, nil
	}
	return state.With(field.Name, value), nil
}

// promptSpecs asks for the inputs of whichever variant the type selector
// picked.
func (r *Renderer) promptSpecs(ctx context.Context, field model.Field, state model.FormState) (model.FormState, error) {
	widgets := r.controller.Initial(state)
	label := displayLabel(field)

	switch widgets.Mode {
	case specs.ModeCheckboxes:
		labels := make([]string, 0, len(widgets.Checkboxes))
		var defaults []int
		for i, box := range widgets.Checkboxes {
			labels = append(labels, box.Label)
			if box.Checked {
				defaults = append(defaults, i)
			}
		}
		picked, err := r.driver.MultiSelect(ctx, SelectConfig{Message: label, Options: labels, Defaults: defaults})
		if err != nil {
			return state, err
		}
		values := make([]string, 0, len(picked))
		for _, idx := range picked {
			if idx >= 0 && idx < len(widgets.Checkboxes) {
				values = append(values, widgets.Checkboxes[idx].Value)
			}
		}
		state = state.Without(specs.DigitalField)
		if len(values) > 0 {
			state = state.With(specs.DigitalField, values...)
		}
		return state, nil
	}

	if widgets.Kind != specs.KindPeriodical {
		// only the placeholder is on offer
		return state, nil
	}

	options := make([]model.Option, 0, len(widgets.Options))
	for _, opt := range widgets.Options {
		if opt.Value == "" {
			continue
		}
		options = append(options, model.Option{Value: opt.Value, Label: opt.Label})
	}
	next, err := r.promptSelect(ctx, model.Field{Name: specs.SpecsField, Label: label, Options: options}, state)
	if err != nil {
		return state, err
	}
	if next.Get(specs.SpecsField) != specs.CustomValue {
		return next.Without(specs.CustomField), nil
	}
	return r.promptInput(ctx, model.Field{Name: specs.CustomField, Label: specs.CustomLabel}, next)
}

func (r *Renderer) info(ctx context.Context, kind render.MessageKind, text string) error {
	prefix := r.theme.InfoPrefix
	if kind == render.MessageError {
		prefix = r.theme.ErrorPrefix
	}
	return r.driver.Info(ctx, prefix+text)
}

func (r *Renderer) serialize(state model.FormState) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(state.Encode().Encode()), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(state)), nil
	default:
		out, err := json.MarshalIndent(state.Flatten(), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("tui: encode json: %w", err)
		}
		return out, nil
	}
}

func prettyPrint(state model.FormState) string {
	names := state.Names()
	sort.Strings(names)
	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%s: %s\n", name, strings.Join(state.Values(name), ", "))
	}
	return b.String()
}

func displayLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

func optionIndex(options []model.Option, value string) int {
	for i, opt := range options {
		if opt.Value == value {
			return i
		}
	}
	return -1
}
