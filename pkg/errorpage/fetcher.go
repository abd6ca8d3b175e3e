package errorpage

import (
	"context"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// DefaultBundleURL is where the page expects its strings
const DefaultBundleURL = "/strings/auto.json"

// maxBundleSize caps the bytes read from a bundle response
const maxBundleSize = 1 << 20

var ErrUnexpectedStatus = errors.New("unexpected bundle response status")

type (
	// Fetcher loads the localization bundle for a render
	Fetcher interface {
		Fetch(ctx context.Context) (Bundle, error)
	}
	// FetcherFunc adapts a function to Fetcher
	FetcherFunc func(ctx context.Context) (Bundle, error)

	HTTPFetcher struct {
		url        string
		httpClient *http.Client
	}
	HTTPFetcherOption func(*HTTPFetcher)

	acceptLanguageKey struct{}
)

func (f FetcherFunc) Fetch(ctx context.Context) (Bundle, error) {
	return f(ctx)
}

// ContextWithAcceptLanguage stores the visitor's Accept-Language header so
// fetchers can negotiate the bundle locale
func ContextWithAcceptLanguage(ctx context.Context, v string) context.Context {
	return context.WithValue(ctx, acceptLanguageKey{}, v)
}

// AcceptLanguageFromContext returns the stored header or an empty string
func AcceptLanguageFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(acceptLanguageKey{}).(string); ok {
		return v
	}
	return ""
}

// ------------------------------------------------------------------------------------------------
// ~ Constructor
// ------------------------------------------------------------------------------------------------

// NewHTTPFetcher fetches the bundle from url with a plain GET
func NewHTTPFetcher(url string, opts ...HTTPFetcherOption) *HTTPFetcher {
	inst := &HTTPFetcher{
		url:        url,
		httpClient: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(inst)
	}

	return inst
}

// ------------------------------------------------------------------------------------------------
// ~ Options
// ------------------------------------------------------------------------------------------------

func HTTPFetcherWithHTTPClient(v *http.Client) HTTPFetcherOption {
	return func(o *HTTPFetcher) {
		o.httpClient = v
	}
}

// ------------------------------------------------------------------------------------------------
// ~ Public methods
// ------------------------------------------------------------------------------------------------

func (f *HTTPFetcher) URL() string {
	return f.url
}

// Fetch always bypasses caches between here and the bundle origin
func (f *HTTPFetcher) Fetch(ctx context.Context) (Bundle, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create bundle request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache, no-store")
	req.Header.Set("Pragma", "no-cache")
	if lang := AcceptLanguageFromContext(ctx); lang != "" {
		req.Header.Set("Accept-Language", lang)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch bundle")
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, errors.Wrapf(ErrUnexpectedStatus, "%s from %s", resp.Status, f.url)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBundleSize))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read bundle")
	}
	return DecodeBundle(data)
}
