package forms

import (
	"fmt"
	"time"

	"github.com/goliatone/go-formrelay/pkg/hydrate"
	"github.com/goliatone/go-formrelay/pkg/model"
	"github.com/goliatone/go-formrelay/pkg/payload"
	"github.com/goliatone/go-formrelay/pkg/validation"
)

// Form names, also used as route segments and metric labels.
const (
	NameDesign   = "design"
	NameRegister = "register"
)

// Builder turns a hydrated, validated state into the body posted upstream.
type Builder func(state model.FormState, timestamp string) any

// Messages holds the ids and zh-TW default texts of the user-facing strings
// of one form. Default texts use fmt verbs; localized catalogs use the ids.
type Messages struct {
	SuccessID string
	Success   string

	// FailureID wraps any transport failure: "%s" receives the reason.
	FailureID string
	Failure   string

	// HTTPErrorID renders a non-2xx response: status then message.
	HTTPErrorID string
	HTTPError   string

	// UnknownID is the fallback when a failed response has no message.
	UnknownID string
	Unknown   string
}

// FailureText renders the default failure message for reason.
func (m Messages) FailureText(reason string) string {
	return fmt.Sprintf(m.Failure, reason)
}

// HTTPErrorText renders the default non-2xx reason.
func (m Messages) HTTPErrorText(status int, message string) string {
	return fmt.Sprintf(m.HTTPError, status, message)
}

// Definition describes one form end to end.
type Definition struct {
	Name     string
	Model    model.FormModel
	Hydrator hydrate.Hydrator

	Validator *validation.Validator
	Build     Builder
	// Schema names the payload schema checked before posting. Empty skips
	// the check.
	Schema string
	// Allowed lists the state fields copied into the payload. Fields not in
	// the model are never forwarded.
	Allowed []string

	Endpoint      string
	RedirectURL   string
	RedirectDelay time.Duration
	Messages      Messages

	// ResetFields are cleared after a successful submission.
	ResetFields []string

	clock payload.Clock
}

// Now reads the definition's clock.
func (d Definition) Now() time.Time {
	if d.clock == nil {
		return payload.SystemClock()
	}
	return d.clock()
}

// Timestamp synthesises the payload timestamp from the definition's clock.
func (d Definition) Timestamp() string {
	return payload.Timestamp(d.Now())
}

// Redirects reports whether a successful submission navigates away.
func (d Definition) Redirects() bool {
	return d.RedirectURL != ""
}

// Option customises a Definition.
type Option func(*Definition)

// WithEndpoint overrides the upstream URL.
func WithEndpoint(endpoint string) Option {
	return func(d *Definition) {
		if endpoint != "" {
			d.Endpoint = endpoint
		}
	}
}

// WithClock replaces the clock used for timestamps and date rules.
func WithClock(clock payload.Clock) Option {
	return func(d *Definition) {
		if clock != nil {
			d.clock = clock
		}
	}
}

// WithRedirect sets the post-success redirect. An empty url disables it.
func WithRedirect(url string, delay time.Duration) Option {
	return func(d *Definition) {
		d.RedirectURL = url
		d.RedirectDelay = delay
	}
}

func apply(d Definition, opts []Option) Definition {
	for _, opt := range opts {
		if opt != nil {
			opt(&d)
		}
	}
	return d
}

func fieldNames(fields []model.Field) []string {
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		out = append(out, field.Name)
	}
	return out
}
