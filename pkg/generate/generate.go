package generate

import (
	"bytes"
	"context"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/foomo/errorpages/pkg/errorpage"
	"github.com/foomo/errorpages/pkg/metrics"
	"github.com/foomo/errorpages/pkg/storage"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	pageSuffix = ".html"

	resultWritten = "written"
	resultPruned  = "pruned"
	resultError   = "error"
)

type (
	// Generator writes static pages for a fixed set of codes
	Generator struct {
		l           *zap.Logger
		renderer    *errorpage.Renderer
		storage     storage.Storage
		codes       []errorpage.StatusCode
		locales     []string
		concurrency int
		prune       bool
	}
	Option func(*Generator)
)

// ------------------------------------------------------------------------------------------------
// ~ Constructor
// ------------------------------------------------------------------------------------------------

func NewGenerator(l *zap.Logger, renderer *errorpage.Renderer, s storage.Storage, opts ...Option) *Generator {
	inst := &Generator{
		l:           l.Named("generator"),
		renderer:    renderer,
		storage:     s,
		codes:       errorpage.KnownCodes(),
		concurrency: 4,
	}

	for _, opt := range opts {
		opt(inst)
	}

	return inst
}

// ------------------------------------------------------------------------------------------------
// ~ Options
// ------------------------------------------------------------------------------------------------

func WithCodes(v ...errorpage.StatusCode) Option {
	return func(o *Generator) {
		if len(v) > 0 {
			o.codes = v
		}
	}
}

// WithLocales writes one page set per locale into <locale>/
func WithLocales(v ...string) Option {
	return func(o *Generator) {
		o.locales = v
	}
}

func WithConcurrency(v int) Option {
	return func(o *Generator) {
		if v > 0 {
			o.concurrency = v
		}
	}
}

// WithPrune deletes pages that were not written by this run
func WithPrune(v bool) Option {
	return func(o *Generator) {
		o.prune = v
	}
}

// ------------------------------------------------------------------------------------------------
// ~ Public methods
// ------------------------------------------------------------------------------------------------

// Run renders every page and returns the written keys in ascending order
func (g *Generator) Run(ctx context.Context) ([]string, error) {
	var (
		mu   sync.Mutex
		keys []string
	)

	group, gCtx := errgroup.WithContext(ctx)
	group.SetLimit(g.concurrency)

	for _, job := range g.jobs() {
		group.Go(func() error {
			key, err := g.write(gCtx, job.locale, job.code)
			if err != nil {
				metrics.GeneratedPagesCounter.WithLabelValues(resultError).Inc()
				return err
			}
			metrics.GeneratedPagesCounter.WithLabelValues(resultWritten).Inc()

			mu.Lock()
			keys = append(keys, key)
			mu.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	sort.Strings(keys)

	if g.prune {
		if err := g.pruneStale(ctx, keys); err != nil {
			return keys, err
		}
	}

	g.l.Info("generated error pages", zap.Int("count", len(keys)))
	return keys, nil
}

// Key returns the storage key of a generated page
func Key(locale string, code errorpage.StatusCode) string {
	return path.Join(locale, string(code)+pageSuffix)
}

// ------------------------------------------------------------------------------------------------
// ~ Private methods
// ------------------------------------------------------------------------------------------------

type job struct {
	locale string
	code   errorpage.StatusCode
}

func (g *Generator) jobs() []job {
	locales := g.locales
	if len(locales) == 0 {
		locales = []string{""}
	}
	ret := make([]job, 0, len(locales)*len(g.codes))
	for _, locale := range locales {
		for _, code := range g.codes {
			ret = append(ret, job{locale: locale, code: code})
		}
	}
	return ret
}

func (g *Generator) write(ctx context.Context, locale string, code errorpage.StatusCode) (string, error) {
	key := Key(locale, code)
	if locale != "" {
		ctx = errorpage.ContextWithAcceptLanguage(ctx, locale)
	}

	var buf bytes.Buffer
	res, err := g.renderer.Write(ctx, &buf, code)
	if err != nil {
		return "", errors.Wrapf(err, "failed to render %s", key)
	}
	if res.Err != nil {
		g.l.Warn("page uses the fallback title", zap.String("key", key), zap.Error(res.Err))
	}

	if err := g.storage.Write(ctx, key, buf.Bytes()); err != nil {
		return "", errors.Wrapf(err, "failed to write %s", key)
	}
	g.l.Debug("wrote page", zap.String("key", key), zap.Bool("localized", res.Localized))
	return key, nil
}

func (g *Generator) pruneStale(ctx context.Context, keep []string) error {
	existing, err := g.storage.List(ctx, "")
	if err != nil {
		return errors.Wrap(err, "failed to list pages")
	}

	written := make(map[string]struct{}, len(keep))
	for _, key := range keep {
		written[key] = struct{}{}
	}

	for _, key := range existing {
		if _, ok := written[key]; ok || !strings.HasSuffix(key, pageSuffix) {
			continue
		}
		if err := g.storage.Delete(ctx, key); err != nil {
			return errors.Wrapf(err, "failed to prune %s", key)
		}
		metrics.GeneratedPagesCounter.WithLabelValues(resultPruned).Inc()
		g.l.Info("pruned stale page", zap.String("key", key))
	}
	return nil
}
