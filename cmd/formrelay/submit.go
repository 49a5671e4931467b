package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formrelay/pkg/forms"
	"github.com/goliatone/go-formrelay/pkg/hydrate"
	"github.com/goliatone/go-formrelay/pkg/model"
	"github.com/goliatone/go-formrelay/pkg/render"
	"github.com/goliatone/go-formrelay/pkg/renderers/tui"
	"github.com/goliatone/go-formrelay/pkg/submission"
)

func (cli *cliRoot) newSubmitCmd() *cobra.Command {
	var (
		locale   string
		identity hydrate.Identity
	)

	cmd := &cobra.Command{
		Use:               "submit <design|register>",
		Short:             "Fill in a form in the terminal and submit it",
		Args:              cobra.ExactArgs(1),
		ValidArgs:         []string{forms.NameDesign, forms.NameRegister},
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := cli.catalog()
			if err != nil {
				return err
			}
			def, err := catalog.Get(args[0])
			if err != nil {
				return err
			}
			tr, err := cli.translations()
			if err != nil {
				return err
			}
			pipeline, err := cli.pipeline(def, nil)
			if err != nil {
				return err
			}

			driver := cli.driver
			if driver == nil {
				driver = tui.NewSurveyDriver(cmd.ErrOrStderr())
			}
			prompter := tui.New(tui.WithPromptDriver(driver))
			localizer := tr.For(locale)

			state := def.Hydrator.Apply(model.NewState(nil), identity)
			var last *render.Message
			for {
				collected, err := prompter.Collect(cmd.Context(), def.Model, render.RenderOptions{
					State:   state,
					Message: last,
				})
				if err != nil {
					return err
				}

				result, err := pipeline.Submit(cmd.Context(), submission.Request{
					State:      collected,
					Identity:   identity,
					Translator: localizer,
				})
				if err == nil {
					fmt.Fprintln(cmd.OutOrStdout(), result.Message)
					if result.RedirectURL != "" {
						fmt.Fprintf(cmd.OutOrStdout(), "Continue at %s\n", result.RedirectURL)
					}
					return nil
				}
				if !submission.IsValidation(err) {
					return errors.New(result.Message)
				}
				// validation failures are retried with the answers kept
				state = result.State
				last = &render.Message{Kind: render.MessageError, Text: result.Message}
			}
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&locale, "locale", "", "message language (defaults to the configured locale)")
	flags.StringVar(&identity.UserID, "user-id", "", "value of the userId query parameter")
	flags.StringVar(&identity.UserName, "user-name", "", "value of the userName query parameter")

	return cmd
}
