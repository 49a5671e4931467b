package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-formrelay/pkg/forms"
	"github.com/goliatone/go-formrelay/pkg/hydrate"
	"github.com/goliatone/go-formrelay/pkg/model"
	"github.com/goliatone/go-formrelay/pkg/payload"
	"github.com/goliatone/go-formrelay/pkg/render"
	"github.com/goliatone/go-formrelay/pkg/specs"
	"github.com/goliatone/go-formrelay/pkg/submission"
	"github.com/goliatone/go-formrelay/pkg/validation"
	"github.com/goliatone/go-formrelay/pkg/webhook"
)

// SubmitResponse is the JSON answer to a submission.
type SubmitResponse struct {
	OK              bool                `json:"ok"`
	Message         string              `json:"message"`
	RedirectURL     string              `json:"redirect_url,omitempty"`
	RedirectDelayMS int64               `json:"redirect_delay_ms,omitempty"`
	Errors          map[string][]string `json:"errors,omitempty"`
}

// StatusFor maps a submission error to the HTTP status sent to the client.
func StatusFor(err error) int {
	var (
		verr *validation.ValidationError
		serr *payload.SchemaError
		terr *webhook.TransportError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &verr), errors.As(err, &serr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, submission.ErrInFlight):
		return http.StatusConflict
	case errors.As(err, &terr):
		return http.StatusBadGateway
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) page(route *formRoute) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := hydrate.FromQuery(r.URL.Query())
		state := route.def.Hydrator.Apply(model.NewState(nil), identity)
		s.renderPage(w, r, route, http.StatusOK, identity, state, nil, nil)
	})
}

func (s *Server) submit(route *formRoute) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := LoggerFrom(r.Context(), s.logger).WithField("form", route.def.Name)

		r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
		if err := r.ParseForm(); err != nil {
			logger.WithError(err).Info("unreadable form body")
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		// identity comes from the page URL, never from the body
		identity := hydrate.FromQuery(r.URL.Query())
		hydrator := route.def.Hydrator
		state := model.NewState(r.PostForm).Without(
			hydrate.UserIDParam, hydrate.UserNameParam, hydrator.IDField, hydrator.DisplayField,
		)

		localizer := s.localizer(r)
		req := submission.Request{State: state, Identity: identity}
		if localizer != nil {
			req.Translator = localizer
		}

		result, err := route.pipeline.Submit(r.Context(), req)
		status := StatusFor(err)
		logger.WithFields(logrus.Fields{"status": status, "ok": result.OK}).Info("submission handled")

		if wantsJSON(r) {
			resp := SubmitResponse{OK: result.OK, Message: result.Message, Errors: fieldErrors(err, result.Message)}
			if result.OK && result.RedirectURL != "" {
				resp.RedirectURL = result.RedirectURL
				resp.RedirectDelayMS = result.RedirectDelay.Milliseconds()
			}
			writeJSON(w, status, resp)
			return
		}

		kind := render.MessageError
		if result.OK {
			kind = render.MessageSuccess
		}
		msg := &render.Message{Kind: kind, Text: result.Message}

		var redirect *render.Redirect
		if result.OK && result.RedirectURL != "" {
			redirect = &render.Redirect{URL: result.RedirectURL, Delay: result.RedirectDelay}
		}

		next := result.State
		if next.Len() == 0 {
			next = route.def.Hydrator.Apply(state, identity)
		}
		s.renderPage(w, r, route, status, identity, next, msg, redirect, fieldErrors(err, result.Message))
	})
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, route *formRoute, status int, identity hydrate.Identity, state model.FormState, msg *render.Message, redirect *render.Redirect, fieldErrs ...map[string][]string) {
	form := route.def.Model
	if query := identity.Query(); len(query) > 0 {
		form.Action = form.Action + "?" + query.Encode()
	}

	opts := render.RenderOptions{
		State:    state,
		Message:  msg,
		Redirect: redirect,
		MinDate:  forms.MinDate(route.def.Now()),
	}
	if len(fieldErrs) > 0 && fieldErrs[0] != nil {
		opts.Errors = fieldErrs[0]
	}
	if hasSpecs(form) {
		widgets := specs.NewController().Initial(state)
		opts.Specs = &widgets
	}
	if localizer := s.localizer(r); localizer != nil {
		opts.Locale = localizer.Lang()
		opts.Translator = s.translations
	}

	renderer, err := s.renderers.Negotiate(r.Header.Get("Accept"))
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	body, err := renderer.Render(r.Context(), form, opts)
	if err != nil {
		LoggerFrom(r.Context(), s.logger).WithError(err).Error("render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (s *Server) localizer(r *http.Request) langTranslator {
	if s.translations == nil {
		return nil
	}
	return s.translations.For(r.Header.Get("Accept-Language"))
}

type langTranslator interface {
	submission.Translator
	Lang() string
}

// fieldErrors attaches the already localized message to the failing field.
func fieldErrors(err error, message string) map[string][]string {
	var verr *validation.ValidationError
	if !errors.As(err, &verr) || verr.Field == "" {
		return nil
	}
	if message == "" {
		message = verr.Message
	}
	return map[string][]string{verr.Field: {message}}
}

func hasSpecs(form model.FormModel) bool {
	for _, field := range form.Fields {
		if field.Type == model.FieldTypeSpecs {
			return true
		}
	}
	return false
}

func wantsJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(v)
}
