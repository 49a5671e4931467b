package html

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-formrelay/pkg/model"
	"github.com/goliatone/go-formrelay/pkg/render"
	rendertemplate "github.com/goliatone/go-formrelay/pkg/render/template"
	"github.com/goliatone/go-formrelay/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formrelay/pkg/specs"
)

const (
	pageTemplate  = "templates/page.tmpl"
	specsTemplate = "templates/specs.tmpl"
)

// Option customises the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	translator       render.Translator
	stylesheet       string
	script           string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTranslator exposes translate() to the templates.
func WithTranslator(t render.Translator) Option {
	return func(cfg *config) {
		cfg.translator = t
	}
}

// WithStylesheet replaces the inline stylesheet.
func WithStylesheet(css string) Option {
	return func(cfg *config) {
		cfg.stylesheet = css
	}
}

// Renderer draws complete form pages and the specs fragment.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	stylesheet string
	script     string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		stylesheet: readAsset(StylesheetName),
		script:     readAsset(ScriptName),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
			gotemplate.WithTemplateFunc(render.TemplateI18nFuncs(cfg.translator, render.TemplateI18nConfig{})),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, stylesheet: cfg.stylesheet, script: cfg.script}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render draws the full page for form.
func (r *Renderer) Render(_ context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	render.LocalizeFormModel(&form, opts)

	hidden := render.MergeHiddenFields(opts.Hidden, render.ModelHiddenFields(form, opts.State)...)
	mapped := render.MapErrors(form, opts.Errors)
	opts.Errors = mapped.Fields

	clientConfig, err := r.clientConfig(form, opts)
	if err != nil {
		return nil, err
	}

	data := map[string]any{
		"form":       form,
		"locale":     localeOrDefault(opts.Locale),
		"fields":     buildFieldViews(form, opts),
		"hidden":     render.SortedHiddenFields(hidden),
		"formErrors": render.MergeFormErrors(opts.FormErrors, mapped.Form...),
		"message":    opts.Message,
		"redirect":   opts.Redirect,
		"specs":      widgetsOrNil(opts.Specs),
		"classes":    defaultClasses(),
		"stylesheet": r.stylesheet,
		"script":     r.script,
		"config":     clientConfig,
	}

	result, err := r.templates.RenderTemplate(pageTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("html renderer: render page: %w", err)
	}
	return []byte(result), nil
}

// RenderSpecs draws only the specs slot, the fragment swapped in when the
// type selector changes.
func (r *Renderer) RenderSpecs(_ context.Context, widgets specs.WidgetSet) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}
	result, err := r.templates.RenderTemplate(specsTemplate, map[string]any{
		"specs":   widgets,
		"classes": defaultClasses(),
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render specs: %w", err)
	}
	return []byte(result), nil
}

type clientConfig struct {
	Form         string            `json:"form"`
	SpecsURL     string            `json:"specsURL,omitempty"`
	CustomValue  string            `json:"customValue"`
	MinDate      string            `json:"minDate,omitempty"`
	RedirectURL  string            `json:"redirectURL,omitempty"`
	RedirectWait int64             `json:"redirectDelayMs,omitempty"`
	Messages     map[string]string `json:"messages"`
}

func (r *Renderer) clientConfig(form model.FormModel, opts render.RenderOptions) (string, error) {
	locale := localeOrDefault(opts.Locale)
	cfg := clientConfig{
		Form:        form.ID,
		SpecsURL:    form.Metadata["specsEndpoint"],
		CustomValue: specs.CustomValue,
		MinDate:     opts.MinDate,
		Messages: map[string]string{
			"colorDraftFirst": translateUI(opts, locale, "ui.colorDraftFirst", "請先填寫色稿時間"),
			"sending":         translateUI(opts, locale, "ui.sending", "送出中..."),
			"networkError":    translateUI(opts, locale, "ui.networkError", "網路錯誤，請稍後再試"),
		},
	}
	if opts.Redirect != nil {
		cfg.RedirectURL = opts.Redirect.URL
		cfg.RedirectWait = opts.Redirect.Delay.Milliseconds()
	}
	raw, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("html renderer: encode client config: %w", err)
	}
	return string(raw), nil
}

func translateUI(opts render.RenderOptions, locale, key, fallback string) string {
	if opts.Translator == nil {
		return fallback
	}
	msg, err := opts.Translator.Translate(locale, key)
	if err != nil || msg == "" {
		return fallback
	}
	return msg
}

func widgetsOrNil(ws *specs.WidgetSet) any {
	if ws == nil {
		return nil
	}
	return *ws
}

func localeOrDefault(locale string) string {
	if locale == "" {
		return "zh-TW"
	}
	return locale
}
