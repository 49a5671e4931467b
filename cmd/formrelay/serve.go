package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formrelay/internal/metrics"
	"github.com/goliatone/go-formrelay/internal/server"
	"github.com/goliatone/go-formrelay/pkg/submission"
)

func (cli *cliRoot) newServeCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:               "serve",
		Short:             "Run the HTTP server",
		Args:              cobra.NoArgs,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if listen != "" {
				cli.cfg.Server.Listen = listen
			}
			srv, err := cli.server()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx, cli.cfg.Server.Listen, cli.cfg.ReadTimeout(), cli.cfg.WriteTimeout())
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (overrides server.listen)")

	return cmd
}

func (cli *cliRoot) server() (*server.Server, error) {
	tr, err := cli.translations()
	if err != nil {
		return nil, err
	}
	pages, err := cli.pages(tr)
	if err != nil {
		return nil, err
	}
	catalog, err := cli.catalog()
	if err != nil {
		return nil, err
	}

	opts := []server.Option{
		server.WithTranslations(tr),
		server.WithLogger(cli.logger),
	}

	var observer submission.Observer
	if cli.cfg.Metrics.Enabled {
		m := metrics.New()
		observer = m
		opts = append(opts, server.WithMetrics(m, cli.cfg.Metrics.Path))
	}

	for _, name := range catalog.Names() {
		def, err := catalog.Get(name)
		if err != nil {
			return nil, err
		}
		pipeline, err := cli.pipeline(def, observer)
		if err != nil {
			return nil, err
		}
		opts = append(opts, server.WithForm(pipeline))
	}

	return server.New(pages, opts...)
}
