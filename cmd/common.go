package cmd

import (
	"context"

	"github.com/foomo/errorpages/pkg/errorpage"
	"github.com/foomo/errorpages/pkg/locales"
	"github.com/foomo/errorpages/pkg/storage"
	"github.com/foomo/errorpages/pkg/utils"
	keelhttp "github.com/foomo/keel/net/http"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func addStringsFlags(flags *pflag.FlagSet, v *viper.Viper) {
	addStringsTargetFlag(flags, v)
	addStringsPrefixFlag(flags, v)
	addDefaultLocaleFlag(flags, v)
}

func addRendererFlags(flags *pflag.FlagSet, v *viper.Viper) {
	addStringsFlags(flags, v)
	addStringsURLFlag(flags, v)
	addStringsTimeoutFlag(flags, v)
	addTemplateFlag(flags, v)
}

// openStore opens the strings storage. The caller must close it.
func openStore(ctx context.Context, l *zap.Logger, v *viper.Viper) (storage.Storage, *locales.Store, error) {
	s, err := storage.Open(ctx, l.Named("strings"), stringsTargetFlag(v), stringsPrefixFlag(v))
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open strings storage")
	}
	return s, locales.NewStore(l, s, locales.StoreWithDefaultLocale(defaultLocaleFlag(v))), nil
}

// newRenderer renders with the remote bundle if configured, else with store
func newRenderer(l *zap.Logger, v *viper.Viper, store *locales.Store) (*errorpage.Renderer, error) {
	var opts []errorpage.Option
	if filename := templateFlag(v); filename != "" {
		tpl, err := errorpage.LoadTemplate(filename)
		if err != nil {
			return nil, err
		}
		opts = append(opts, errorpage.WithTemplate(tpl))
	}

	var fetcher errorpage.Fetcher = store
	if u := stringsURLFlag(v); u != "" {
		if !utils.IsValidURL(u) {
			return nil, errors.Errorf("invalid strings url %q, expected an absolute http(s) URL", u)
		}
		l.Info("using remote strings", zap.String("url", u))
		fetcher = errorpage.NewHTTPFetcher(u,
			errorpage.HTTPFetcherWithHTTPClient(
				keelhttp.NewHTTPClient(
					keelhttp.HTTPClientWithTimeout(stringsTimeoutFlag(v)),
					keelhttp.HTTPClientWithTelemetry(),
				),
			),
		)
	}

	return errorpage.NewRenderer(l, fetcher, opts...), nil
}
