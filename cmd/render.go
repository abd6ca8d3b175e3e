package cmd

import (
	"github.com/foomo/errorpages/pkg/errorpage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewRenderCommand() *cobra.Command {
	v := newViper()

	cmd := &cobra.Command{
		Use:   "render <code>",
		Short: "Render a single error page to stdout",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			var comps []string
			for _, code := range errorpage.KnownCodes() {
				comps = append(comps, string(code))
			}
			return comps, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			l := zap.L()
			ctx := errorpage.ContextWithAcceptLanguage(cmd.Context(), acceptLanguageFlag(v))

			strs, store, err := openStore(ctx, l, v)
			if err != nil {
				return err
			}
			defer strs.Close()

			renderer, err := newRenderer(l, v, store)
			if err != nil {
				return err
			}

			res, err := renderer.Write(ctx, cmd.OutOrStdout(), errorpage.StatusCode(args[0]))
			if err != nil {
				return err
			}
			if res.Err != nil {
				l.Warn("rendered fallback page", zap.String("code", args[0]), zap.Error(res.Err))
			}
			return nil
		},
	}

	flags := cmd.Flags()
	addRendererFlags(flags, v)
	addAcceptLanguageFlag(flags, v)

	return cmd
}
