package errorpage

import (
	"context"
	"io"
	"time"

	"github.com/foomo/errorpages/pkg/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	resultLocalized = "localized"
	resultFallback  = "fallback"
	statusSuccess   = "success"
	statusError     = "error"
	codeOther       = "other"
)

type (
	Renderer struct {
		l        *zap.Logger
		fetcher  Fetcher
		template *Template
	}
	Option func(*Renderer)
)

// ------------------------------------------------------------------------------------------------
// ~ Constructor
// ------------------------------------------------------------------------------------------------

// NewRenderer returns a renderer using fetcher for its bundles. A nil fetcher
// renders fallbacks only.
func NewRenderer(l *zap.Logger, fetcher Fetcher, opts ...Option) *Renderer {
	inst := &Renderer{
		l:        l.Named("renderer"),
		template: DefaultTemplate(),
	}
	if fetcher != nil {
		inst.fetcher = instrument(fetcher)
	}

	for _, opt := range opts {
		opt(inst)
	}

	return inst
}

// ------------------------------------------------------------------------------------------------
// ~ Options
// ------------------------------------------------------------------------------------------------

func WithTemplate(v *Template) Option {
	return func(o *Renderer) {
		if v != nil {
			o.template = v
		}
	}
}

// ------------------------------------------------------------------------------------------------
// ~ Public methods
// ------------------------------------------------------------------------------------------------

// RenderDocument renders into doc using the code stored on the document
func (r *Renderer) RenderDocument(ctx context.Context, doc Document) Result {
	code := doc.StatusCode()
	l := r.l.With(
		zap.String("render_id", uuid.New().String()),
		zap.String("code", string(code)),
	)

	res := Render(ctx, code, doc, r.fetcher)

	result := resultFallback
	if res.Localized {
		result = resultLocalized
		l.Debug("rendered localized page", zap.String("key", res.Key), zap.String("title", res.Title))
	} else {
		l.Debug("rendered fallback page", zap.String("key", res.Key), zap.Error(res.Err))
	}
	metrics.RenderCounter.WithLabelValues(codeLabel(code), result).Inc()

	return res
}

// RenderCode renders the template for code
func (r *Renderer) RenderCode(ctx context.Context, code StatusCode) (*HTMLDocument, Result, error) {
	doc, err := r.template.Document(code)
	if err != nil {
		return nil, Result{}, err
	}
	return doc, r.RenderDocument(ctx, doc), nil
}

// Write renders the template for code and serializes it to w
func (r *Renderer) Write(ctx context.Context, w io.Writer, code StatusCode) (Result, error) {
	doc, res, err := r.RenderCode(ctx, code)
	if err != nil {
		return res, err
	}
	return res, doc.Render(w)
}

// ------------------------------------------------------------------------------------------------
// ~ Private methods
// ------------------------------------------------------------------------------------------------

func instrument(f Fetcher) Fetcher {
	return FetcherFunc(func(ctx context.Context) (Bundle, error) {
		start := time.Now()
		bundle, err := f.Fetch(ctx)
		status := statusSuccess
		if err != nil {
			status = statusError
		}
		metrics.BundleFetchCounter.WithLabelValues(status).Inc()
		metrics.BundleFetchDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
		return bundle, err
	})
}

// codeLabel keeps the metric cardinality bounded
func codeLabel(code StatusCode) string {
	if code.Known() {
		return string(code)
	}
	return codeOther
}
