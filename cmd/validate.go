package cmd

import (
	"fmt"

	"github.com/foomo/errorpages/pkg/locales"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

func NewValidateCommand() *cobra.Command {
	v := newViper()

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the locale bundles against schema.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l := zap.L()

			strs, store, err := openStore(cmd.Context(), l, v)
			if err != nil {
				return err
			}
			defer strs.Close()

			out := cmd.OutOrStdout()
			err = store.Validate(cmd.Context(), localesFlag(v)...)
			problems := multierr.Errors(err)
			if len(problems) == 0 {
				_, _ = fmt.Fprintln(out, "String validation passed for all locales.")
				return nil
			}

			var problem *locales.Problem
			if len(problems) == 1 && !errors.As(problems[0], &problem) {
				return err
			}

			_, _ = fmt.Fprintln(out, "String validation failed:")
			for _, p := range problems {
				_, _ = fmt.Fprintf(out, "- %s\n", p)
			}
			return errors.Errorf("%d validation problems", len(problems))
		},
	}

	flags := cmd.Flags()
	addStringsFlags(flags, v)
	addLocalesFlag(flags, v, "Locales to validate", locales.RequiredLocales)

	return cmd
}
