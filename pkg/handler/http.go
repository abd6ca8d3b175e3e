package handler

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"github.com/foomo/errorpages/pkg/errorpage"
	"github.com/foomo/errorpages/pkg/locales"
	"github.com/foomo/errorpages/pkg/metrics"
	httputils "github.com/foomo/keel/utils/net/http"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type (
	HTTP struct {
		l        *zap.Logger
		basePath string
		renderer *errorpage.Renderer
		store    *locales.Store
	}
	HTTPOption func(*HTTP)
)

// ------------------------------------------------------------------------------------------------
// ~ Constructor
// ------------------------------------------------------------------------------------------------

// NewHTTP returns a handler serving the pages and, if store is set, the
// string bundles they load
func NewHTTP(l *zap.Logger, renderer *errorpage.Renderer, store *locales.Store, opts ...HTTPOption) http.Handler {
	inst := &HTTP{
		l:        l.Named("http"),
		basePath: "/",
		renderer: renderer,
		store:    store,
	}

	for _, opt := range opts {
		opt(inst)
	}

	return inst
}

// ------------------------------------------------------------------------------------------------
// ~ Options
// ------------------------------------------------------------------------------------------------

func WithBasePath(v string) HTTPOption {
	return func(o *HTTP) {
		o.basePath = "/" + strings.Trim(v, "/")
		if o.basePath != "/" {
			o.basePath += "/"
		}
	}
}

// ------------------------------------------------------------------------------------------------
// ~ Public methods
// ------------------------------------------------------------------------------------------------

func (h *HTTP) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		httputils.ServerError(h.l, w, r, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}

	var (
		route  Route
		status int
	)
	if r.URL.Path+"/" == h.basePath {
		route, status = RouteDefaultBackend, h.servePage(w, r, h.headerCode(r))
	} else if name, ok := strings.CutPrefix(r.URL.Path, h.basePath); !ok {
		route, status = RoutePage, h.servePage(w, r, DefaultCode)
	} else if locale, ok := bundleName(name); ok {
		if locale == autoBundle {
			route, status = RouteStringsAuto, h.serveAuto(w, r)
		} else {
			route, status = RouteStringsLocale, h.serveLocale(w, r, locale)
		}
	} else if name == "" {
		route, status = RouteDefaultBackend, h.servePage(w, r, h.headerCode(r))
	} else if code := strings.TrimSuffix(name, pageSuffix); !strings.Contains(code, "/") {
		route, status = RoutePage, h.servePage(w, r, errorpage.StatusCode(code))
	} else {
		route, status = RoutePage, h.servePage(w, r, DefaultCode)
	}

	metrics.RequestCounter.WithLabelValues(string(route), strconv.Itoa(status)).Inc()
}

// ------------------------------------------------------------------------------------------------
// ~ Private methods
// ------------------------------------------------------------------------------------------------

func (h *HTTP) headerCode(r *http.Request) errorpage.StatusCode {
	if v := strings.TrimSpace(r.Header.Get(HeaderCode)); v != "" {
		return errorpage.StatusCode(v)
	}
	return DefaultCode
}

func (h *HTTP) servePage(w http.ResponseWriter, r *http.Request, code errorpage.StatusCode) int {
	ctx := errorpage.ContextWithAcceptLanguage(r.Context(), r.Header.Get("Accept-Language"))

	var buf bytes.Buffer
	res, err := h.renderer.Write(ctx, &buf, code)
	if err != nil {
		httputils.ServerError(h.l, w, r, http.StatusInternalServerError, errors.Wrap(err, "failed to render page"))
		return http.StatusInternalServerError
	}
	if res.Err != nil {
		h.l.Debug("serving fallback page", zap.String("code", string(code)), zap.Error(res.Err))
	}

	status := code.HTTPStatus()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Vary", "Accept-Language")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
	return status
}

func (h *HTTP) serveAuto(w http.ResponseWriter, r *http.Request) int {
	if h.store == nil {
		return h.notFound(w, r, errors.New("no strings configured"))
	}
	locale, data, err := h.store.Auto(r.Context(), r.Header.Get("Accept-Language"))
	if err != nil {
		return h.bundleError(w, r, err)
	}
	w.Header().Set("Vary", "Accept-Language")
	return h.writeBundle(w, locale, data)
}

func (h *HTTP) serveLocale(w http.ResponseWriter, r *http.Request, locale string) int {
	if h.store == nil {
		return h.notFound(w, r, errors.New("no strings configured"))
	}
	data, err := h.store.Bundle(r.Context(), locale)
	if err != nil {
		return h.bundleError(w, r, err)
	}
	return h.writeBundle(w, locale, data)
}

func (h *HTTP) writeBundle(w http.ResponseWriter, locale string, data []byte) int {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Language", locale)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
	return http.StatusOK
}

func (h *HTTP) bundleError(w http.ResponseWriter, r *http.Request, err error) int {
	if errors.Is(err, locales.ErrLocaleNotFound) || errors.Is(err, locales.ErrInvalidLocale) || errors.Is(err, locales.ErrNoLocales) {
		return h.notFound(w, r, err)
	}
	httputils.ServerError(h.l, w, r, http.StatusInternalServerError, err)
	return http.StatusInternalServerError
}

func (h *HTTP) notFound(w http.ResponseWriter, r *http.Request, err error) int {
	httputils.ServerError(h.l, w, r, http.StatusNotFound, err)
	return http.StatusNotFound
}

// bundleName returns the locale of a strings/<locale>.json path
func bundleName(name string) (string, bool) {
	locale, ok := strings.CutPrefix(name, stringsPrefix)
	if !ok {
		return "", false
	}
	locale, ok = strings.CutSuffix(locale, bundleSuffix)
	return locale, ok
}
