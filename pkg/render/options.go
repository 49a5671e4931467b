package render

import (
	"time"

	"github.com/goliatone/go-formrelay/pkg/model"
	"github.com/goliatone/go-formrelay/pkg/specs"
)

// MessageKind tells renderers how to style a flash message.
type MessageKind string

const (
	MessageSuccess MessageKind = "success"
	MessageError   MessageKind = "error"
)

// Message is the single user-visible outcome of the last submission.
type Message struct {
	Kind MessageKind `json:"kind"`
	Text string      `json:"text"`
}

// Redirect asks the page to navigate away after Delay.
type Redirect struct {
	URL   string        `json:"url"`
	Delay time.Duration `json:"delay"`
}

// RenderOptions carry per-request data renderers use without touching the
// form model itself.
type RenderOptions struct {
	// State pre-populates controls. Hidden and read-only identity fields are
	// expected to be hydrated already.
	State model.FormState
	// Specs is the widget set of the dynamic specs slot, when the form has
	// one.
	Specs *specs.WidgetSet
	// Errors surfaces server-side validation feedback keyed by field name.
	Errors map[string][]string
	// FormErrors holds messages not tied to a field.
	FormErrors []string
	// Message is the outcome of the previous submission, if any.
	Message *Message
	Redirect *Redirect
	// Hidden adds hidden inputs not declared by the form, e.g. the identity
	// query carried on the action URL.
	Hidden map[string]string
	// MinDate is the earliest selectable date for date inputs.
	MinDate string

	Locale     string
	Translator Translator
	OnMissing  MissingTranslationHandler
}
