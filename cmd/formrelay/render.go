package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formrelay/pkg/forms"
	"github.com/goliatone/go-formrelay/pkg/hydrate"
	"github.com/goliatone/go-formrelay/pkg/model"
	"github.com/goliatone/go-formrelay/pkg/render"
	"github.com/goliatone/go-formrelay/pkg/specs"
)

func (cli *cliRoot) newRenderCmd() *cobra.Command {
	var (
		output   string
		locale   string
		identity hydrate.Identity
	)

	cmd := &cobra.Command{
		Use:               "render <design|register>",
		Short:             "Render a form page as HTML",
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
			pages, err := cli.pages(tr)
			if err != nil {
				return err
			}

			form := def.Model
			if query := identity.Query(); len(query) > 0 {
				form.Action = form.Action + "?" + query.Encode()
			}
			state := def.Hydrator.Apply(model.NewState(nil), identity)
			opts := render.RenderOptions{
				State:      state,
				MinDate:    forms.MinDate(def.Now()),
				Locale:     tr.Match(locale),
				Translator: tr,
			}
			if _, ok := form.Field(specs.SpecsField); ok {
				widgets := specs.NewController().Initial(state)
				opts.Specs = &widgets
			}

			page, err := pages.Render(cmd.Context(), form, opts)
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(page)
				return err
			}
			if err := os.WriteFile(output, page, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Form written to %s\n", output)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	flags.StringVar(&locale, "locale", "", "page language (defaults to the configured locale)")
	flags.StringVar(&identity.UserID, "user-id", "", "value of the userId query parameter")
	flags.StringVar(&identity.UserName, "user-name", "", "value of the userName query parameter")

	return cmd
}
