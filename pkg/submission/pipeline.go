package submission

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/goliatone/go-formrelay/pkg/forms"
	"github.com/goliatone/go-formrelay/pkg/hydrate"
	"github.com/goliatone/go-formrelay/pkg/model"
	"github.com/goliatone/go-formrelay/pkg/payload"
	"github.com/goliatone/go-formrelay/pkg/validation"
	"github.com/goliatone/go-formrelay/pkg/webhook"
)

// ErrInFlight is returned in reject mode when an identical submission is
// still waiting for the upstream response.
var ErrInFlight = errors.New("submission: identical submission already in flight")

// Outcome labels reported to observers.
const (
	OutcomeSuccess   = "success"
	OutcomeInvalid   = "invalid"
	OutcomeTransport = "transport_error"
	OutcomeSchema    = "schema_error"
	OutcomeDuplicate = "duplicate"
)

// Poster sends one payload upstream.
type Poster interface {
	Post(ctx context.Context, body any) (webhook.Response, error)
}

// Observer receives one call per finished submission.
type Observer interface {
	ObserveSubmission(form, outcome string, elapsed time.Duration)
}

// Request is one submission attempt.
type Request struct {
	State    model.FormState
	Identity hydrate.Identity
	// Translator localizes the result message. Nil uses the form's zh-TW
	// defaults.
	Translator Translator
}

// Result is what the user sees after an attempt. State is the form state to
// render next: reset and re-hydrated after success, untouched after failure.
type Result struct {
	OK            bool
	Message       string
	RedirectURL   string
	RedirectDelay time.Duration
	State         model.FormState
	Payload       any
	Response      webhook.Response
	// Shared is set when the result came from a collapsed duplicate.
	Shared bool
}

// Option customises a Pipeline.
type Option func(*Pipeline)

// WithLogger attaches a logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithSchemas overrides the payload schemas.
func WithSchemas(schemas *payload.Schemas) Option {
	return func(p *Pipeline) {
		if schemas != nil {
			p.schemas = schemas
		}
	}
}

// WithObserver registers a submission observer.
func WithObserver(observer Observer) Option {
	return func(p *Pipeline) {
		if observer != nil {
			p.observer = observer
		}
	}
}

// WithRejectDuplicates makes identical concurrent submissions fail with
// ErrInFlight instead of sharing the running request's result.
func WithRejectDuplicates() Option {
	return func(p *Pipeline) {
		p.rejectDuplicates = true
	}
}

// Pipeline submits one form.
type Pipeline struct {
	def    forms.Definition
	poster Poster

	schemas  *payload.Schemas
	logger   logrus.FieldLogger
	observer Observer

	rejectDuplicates bool
	group            singleflight.Group
	inflight         sync.Map
}

// New builds a pipeline for def posting through poster.
func New(def forms.Definition, poster Poster, opts ...Option) (*Pipeline, error) {
	if def.Name == "" {
		return nil, errors.New("submission: form definition is required")
	}
	if def.Build == nil {
		return nil, fmt.Errorf("submission: form %q has no payload builder", def.Name)
	}
	if poster == nil {
		return nil, fmt.Errorf("submission: form %q has no poster", def.Name)
	}

	p := &Pipeline{
		def:    def,
		poster: poster,
		logger: discardLogger(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	if p.schemas == nil && def.Schema != "" {
		schemas, err := payload.DefaultSchemas()
		if err != nil {
			return nil, fmt.Errorf("submission: %w", err)
		}
		p.schemas = schemas
	}
	return p, nil
}

// Definition returns the form the pipeline submits.
func (p *Pipeline) Definition() forms.Definition {
	return p.def
}

// Submit runs one attempt. The returned error is a *validation.ValidationError,
// a *payload.SchemaError, a *webhook.TransportError or ErrInFlight; Result
// always carries the message to show.
func (p *Pipeline) Submit(ctx context.Context, req Request) (Result, error) {
	started := time.Now()
	tr := req.Translator
	if tr == nil {
		tr = defaultTranslator{}
	}
	logger := p.logger.WithFields(logrus.Fields{
		"form":    p.def.Name,
		"user_id": req.Identity.UserID,
	})

	state := p.def.Hydrator.Apply(req.State, req.Identity)

	if err := p.def.Validator.Validate(state); err != nil {
		var verr *validation.ValidationError
		message := err.Error()
		if errors.As(err, &verr) {
			message = tr.Translate(verr.MessageID, verr.Data, verr.Message)
		}
		logger.WithField("field", fieldOf(err)).Info("submission rejected by validation")
		p.observe(OutcomeInvalid, started)
		return Result{Message: message, State: state}, err
	}

	key := p.key(req.Identity, state)
	if p.rejectDuplicates {
		if _, busy := p.inflight.LoadOrStore(key, struct{}{}); busy {
			logger.Info("duplicate submission rejected")
			p.observe(OutcomeDuplicate, started)
			return Result{Message: p.failure(tr, ErrInFlight), State: state}, ErrInFlight
		}
		defer p.inflight.Delete(key)
	}

	// sharers must not inherit the first caller's cancellation
	sendCtx := context.WithoutCancel(ctx)
	value, err, shared := p.group.Do(key, func() (any, error) {
		d, err := p.send(sendCtx, logger, req.Identity, state)
		return d, err
	})
	d, _ := value.(delivery)
	result := p.result(tr, req.Identity, d, err)
	result.Shared = shared

	switch {
	case err == nil:
		logger.WithField("shared", shared).Info("submission forwarded")
		p.observe(OutcomeSuccess, started)
	case isSchemaError(err):
		p.observe(OutcomeSchema, started)
	default:
		p.observe(OutcomeTransport, started)
	}
	return result, err
}

// delivery is the outcome of one upstream send, shared by every collapsed
// duplicate. Messages are localized per caller afterwards.
type delivery struct {
	state model.FormState
	body  any
	resp  webhook.Response
}

func (p *Pipeline) send(ctx context.Context, logger logrus.FieldLogger, identity hydrate.Identity, state model.FormState) (delivery, error) {
	timestamp := p.def.Timestamp()
	state = state.With(payload.TimestampField, timestamp)
	// identity is written again right before the payload is built
	state = p.def.Hydrator.Apply(state, identity)

	d := delivery{state: state, body: p.def.Build(state, timestamp)}

	if p.schemas != nil && p.def.Schema != "" {
		if err := p.schemas.Check(p.def.Schema, d.body); err != nil {
			logger.WithError(err).Error("payload failed schema check")
			return d, err
		}
	}

	resp, err := p.poster.Post(ctx, d.body)
	if err != nil {
		logger.WithError(err).Warn("submission failed upstream")
		return d, err
	}
	d.resp = resp
	return d, nil
}

func (p *Pipeline) result(tr Translator, identity hydrate.Identity, d delivery, err error) Result {
	if err != nil {
		return Result{Message: p.failure(tr, err), State: d.state, Payload: d.body}
	}
	msgs := p.def.Messages
	return Result{
		OK:            true,
		Message:       tr.Translate(msgs.SuccessID, nil, msgs.Success),
		RedirectURL:   p.def.RedirectURL,
		RedirectDelay: p.def.RedirectDelay,
		State:         p.reset(d.state, identity),
		Payload:       d.body,
		Response:      d.resp,
	}
}

// reset clears the user-entered fields and re-applies the identity, the
// state a freshly loaded page would have.
func (p *Pipeline) reset(state model.FormState, identity hydrate.Identity) model.FormState {
	state = state.Without(p.def.ResetFields...)
	return p.def.Hydrator.Apply(state, identity)
}

func (p *Pipeline) failure(tr Translator, err error) string {
	msgs := p.def.Messages
	reason := err.Error()

	var terr *webhook.TransportError
	if errors.As(err, &terr) {
		reason = terr.Message
		if terr.Message == "" || terr.Message == webhook.UnknownMessage || terr.Message == msgs.Unknown {
			reason = tr.Translate(msgs.UnknownID, nil, msgs.Unknown)
		}
		if terr.HasStatus() {
			data := map[string]any{"Status": terr.StatusCode, "Message": reason}
			reason = tr.Translate(msgs.HTTPErrorID, data, msgs.HTTPErrorText(terr.StatusCode, reason))
		}
	}

	return tr.Translate(msgs.FailureID, map[string]any{"Reason": reason}, msgs.FailureText(reason))
}

func (p *Pipeline) key(identity hydrate.Identity, state model.FormState) string {
	values := state.Without(payload.TimestampField).Encode()
	return strings.Join([]string{p.def.Name, identity.UserID, identity.UserName, values.Encode()}, "|")
}

func (p *Pipeline) observe(outcome string, started time.Time) {
	if p.observer == nil {
		return
	}
	p.observer.ObserveSubmission(p.def.Name, outcome, time.Since(started))
}

// IsValidation reports whether err is a local validation failure, the only
// kind of failure a caller may fix and resubmit without a new attempt
// reaching upstream.
func IsValidation(err error) bool {
	var verr *validation.ValidationError
	return errors.As(err, &verr)
}

func isSchemaError(err error) bool {
	var serr *payload.SchemaError
	return errors.As(err, &serr)
}

func fieldOf(err error) string {
	var verr *validation.ValidationError
	if errors.As(err, &verr) {
		return verr.Field
	}
	return ""
}

func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
