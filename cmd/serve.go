package cmd

import (
	"context"

	"github.com/foomo/errorpages/pkg/handler"
	"github.com/foomo/errorpages/pkg/locales"
	"github.com/foomo/keel"
	"github.com/foomo/keel/healthz"
	"github.com/foomo/keel/net/http/middleware"
	"github.com/foomo/keel/service"
	"github.com/spf13/cobra"
)

func NewServeCommand() *cobra.Command {
	v := newViper()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the error pages and their string bundles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svr := keel.NewServer(
				keel.WithHTTPPrometheusService(servicePrometheusEnabledFlag(v)),
				keel.WithHTTPHealthzService(serviceHealthzEnabledFlag(v)),
				keel.WithPrometheusMeter(servicePrometheusEnabledFlag(v)),
				keel.WithOTLPGRPCTracer(otelEnabledFlag(v)),
			)

			l := svr.Logger()

			strs, store, err := openStore(cmd.Context(), l.Named("inst.strings"), v)
			if err != nil {
				return err
			}

			renderer, err := newRenderer(l.Named("inst.renderer"), v, store)
			if err != nil {
				_ = strs.Close()
				return err
			}

			hasLocalesHealthzerFn := healthz.NewHealthzerFn(func(ctx context.Context) error {
				list, err := store.Locales(ctx)
				if err != nil {
					return err
				} else if len(list) == 0 {
					return locales.ErrNoLocales
				}
				return nil
			})
			svr.AddStartupHealthzers(hasLocalesHealthzerFn)
			svr.AddReadinessHealthzers(hasLocalesHealthzerFn)

			svr.AddClosers(func(ctx context.Context) error {
				return strs.Close()
			})

			svr.AddServices(
				service.NewHTTP(l.Named("svc.http"), "http", addressFlag(v),
					handler.NewHTTP(l.Named("inst.handler"), renderer, store, handler.WithBasePath(basePathFlag(v))),
					middleware.Telemetry(),
					middleware.Logger(),
					middleware.GZip(middleware.GZipWithLevel(gzipLevelFlag(v))),
					middleware.Recover(),
				),
			)

			svr.Run()
			return nil
		},
	}

	flags := cmd.Flags()
	addAddressFlag(flags, v)
	addBasePathFlag(flags, v)
	addRendererFlags(flags, v)
	addGzipLevelFlag(flags, v)
	addOtelEnabledFlag(flags, v)
	addServiceHealthzEnabledFlag(flags, v)
	addServicePrometheusEnabledFlag(flags, v)

	return cmd
}
