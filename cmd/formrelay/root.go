package main

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formrelay/internal/config"
	"github.com/goliatone/go-formrelay/internal/logging"
	"github.com/goliatone/go-formrelay/pkg/renderers/tui"
	"github.com/goliatone/go-formrelay/pkg/submission"
)

type cliRoot struct {
	cfgPath  string
	logLevel string

	cfg    *config.Config
	logger *logrus.Logger
	closer io.Closer

	// overridden in tests
	driver tui.PromptDriver
	poster func(endpoint string) (submission.Poster, error)
}

func newRoot() *cliRoot {
	return &cliRoot{}
}

func (cli *cliRoot) NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "formrelay",
		Short:             "Serve and submit the design request and registration forms",
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return cli.setup(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if cli.closer != nil {
				return cli.closer.Close()
			}
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&cli.cfgPath, "config", "c", "", "path to a YAML configuration file")
	flags.StringVar(&cli.logLevel, "log-level", "", "override the configured log level")

	cmd.AddCommand(cli.newServeCmd())
	cmd.AddCommand(cli.newRenderCmd())
	cmd.AddCommand(cli.newSubmitCmd())

	return cmd
}

func (cli *cliRoot) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(cli.cfgPath)
	if err != nil {
		return err
	}
	if cli.logLevel != "" {
		cfg.Logging.Level = cli.logLevel
	}

	logger, closer, err := logging.New(cfg.Logging, logging.WithStdout(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}

	cli.cfg = cfg
	cli.logger = logger
	cli.closer = closer
	return nil
}
