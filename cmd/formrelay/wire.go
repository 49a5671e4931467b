package main

import (
	"fmt"
	"net/http"

	"github.com/goliatone/go-formrelay/internal/i18n"
	"github.com/goliatone/go-formrelay/pkg/forms"
	"github.com/goliatone/go-formrelay/pkg/renderers/html"
	"github.com/goliatone/go-formrelay/pkg/submission"
	"github.com/goliatone/go-formrelay/pkg/webhook"
)

func (cli *cliRoot) catalog() (*forms.Catalog, error) {
	cfg := cli.cfg
	return forms.NewCatalog(
		forms.Design(
			forms.WithEndpoint(cfg.Design.Endpoint),
			forms.WithRedirect(cfg.Design.RedirectURL, cfg.Design.RedirectDelay()),
		),
		forms.Registration(
			forms.WithEndpoint(cfg.Register.Endpoint),
			forms.WithRedirect(cfg.Register.RedirectURL, cfg.Register.RedirectDelay()),
		),
	)
}

func (cli *cliRoot) newPoster(def forms.Definition) (submission.Poster, error) {
	if cli.poster != nil {
		return cli.poster(def.Endpoint)
	}
	client, err := webhook.New(def.Endpoint,
		webhook.WithHTTPClient(&http.Client{Timeout: cli.cfg.WebhookTimeout()}),
		webhook.WithLogger(cli.logger.WithField("form", def.Name)),
		webhook.WithUserAgent(cli.cfg.Webhook.UserAgent),
		webhook.WithUnknownMessage(def.Messages.Unknown),
	)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (cli *cliRoot) pipeline(def forms.Definition, observer submission.Observer) (*submission.Pipeline, error) {
	poster, err := cli.newPoster(def)
	if err != nil {
		return nil, fmt.Errorf("form %s: %w", def.Name, err)
	}
	opts := []submission.Option{
		submission.WithLogger(cli.logger.WithField("component", "submission")),
		submission.WithObserver(observer),
	}
	if cli.cfg.RejectDuplicates() {
		opts = append(opts, submission.WithRejectDuplicates())
	}
	return submission.New(def, poster, opts...)
}

func (cli *cliRoot) translations() (*i18n.Translations, error) {
	tr, err := i18n.NewTranslations(cli.cfg.Locale)
	if err != nil {
		return nil, err
	}
	if err := tr.LoadDir(cli.cfg.Template.LocalesDir); err != nil {
		return nil, err
	}
	return tr, nil
}

func (cli *cliRoot) pages(tr *i18n.Translations) (*html.Renderer, error) {
	opts := []html.Option{html.WithTranslator(tr)}
	if cli.cfg.Template.Dir != "" {
		opts = append(opts, html.WithTemplatesDir(cli.cfg.Template.Dir))
	}
	return html.New(opts...)
}
