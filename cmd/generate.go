package cmd

import (
	"fmt"

	"github.com/foomo/errorpages/pkg/errorpage"
	"github.com/foomo/errorpages/pkg/generate"
	"github.com/foomo/errorpages/pkg/storage"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewGenerateCommand() *cobra.Command {
	v := newViper()

	cmd := &cobra.Command{
		Use:   "generate <dir|bucket-url>",
		Short: "Write static error pages into a directory or bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := zap.L()

			strs, store, err := openStore(ctx, l, v)
			if err != nil {
				return err
			}
			defer strs.Close()

			renderer, err := newRenderer(l, v, store)
			if err != nil {
				return err
			}

			out, err := storage.Open(ctx, l.Named("output"), args[0], outputPrefixFlag(v))
			if err != nil {
				return errors.Wrap(err, "failed to open output storage")
			}
			defer out.Close()

			var codes []errorpage.StatusCode
			for _, code := range codesFlag(v) {
				codes = append(codes, errorpage.StatusCode(code))
			}

			keys, err := generate.NewGenerator(l, renderer, out,
				generate.WithCodes(codes...),
				generate.WithLocales(localesFlag(v)...),
				generate.WithConcurrency(concurrencyFlag(v)),
				generate.WithPrune(pruneFlag(v)),
			).Run(ctx)
			if err != nil {
				return err
			}

			for _, key := range keys {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), key)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	addRendererFlags(flags, v)
	addOutputPrefixFlag(flags, v)
	addCodesFlag(flags, v)
	addLocalesFlag(flags, v, "Generate one page set per locale into <locale>/", nil)
	addConcurrencyFlag(flags, v)
	addPruneFlag(flags, v)

	return cmd
}
