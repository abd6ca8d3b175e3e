package locales

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/foomo/errorpages/pkg/errorpage"
	"github.com/foomo/errorpages/pkg/metrics"
	"github.com/foomo/errorpages/pkg/storage"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

const (
	// BundleSuffix is the file extension of every locale bundle
	BundleSuffix = ".json"
	// SchemaKey is the bundle schema stored next to the locales
	SchemaKey = "schema" + BundleSuffix
	// DefaultLocale is served when nothing better matches
	DefaultLocale = "en"
)

// RequiredLocales must all be present and valid
var RequiredLocales = []string{"en", "ru", "be", "nl", "uk", "pl", "de", "ro"}

var (
	ErrNoLocales      = errors.New("no locale bundles available")
	ErrInvalidLocale  = errors.New("invalid locale")
	ErrLocaleNotFound = errors.New("locale not found")
	ErrSchemaNotFound = errors.New("schema not found")
)

type (
	// Store reads locale bundles from storage on every call
	Store struct {
		l             *zap.Logger
		storage       storage.Storage
		defaultLocale string
	}
	StoreOption func(*Store)
)

// ------------------------------------------------------------------------------------------------
// ~ Constructor
// ------------------------------------------------------------------------------------------------

func NewStore(l *zap.Logger, s storage.Storage, opts ...StoreOption) *Store {
	inst := &Store{
		l:             l.Named("locales"),
		storage:       s,
		defaultLocale: DefaultLocale,
	}

	for _, opt := range opts {
		opt(inst)
	}

	return inst
}

// ------------------------------------------------------------------------------------------------
// ~ Options
// ------------------------------------------------------------------------------------------------

func StoreWithDefaultLocale(v string) StoreOption {
	return func(o *Store) {
		if v != "" {
			o.defaultLocale = v
		}
	}
}

// ------------------------------------------------------------------------------------------------
// ~ Getter
// ------------------------------------------------------------------------------------------------

func (s *Store) DefaultLocale() string {
	return s.defaultLocale
}

// ------------------------------------------------------------------------------------------------
// ~ Public methods
// ------------------------------------------------------------------------------------------------

// Locales lists the available locales, the default locale first and the
// rest in ascending order
func (s *Store) Locales(ctx context.Context) ([]string, error) {
	keys, err := s.storage.List(ctx, "")
	if err != nil {
		return nil, errors.Wrap(err, "failed to list locale bundles")
	}

	var (
		locales    []string
		hasDefault bool
	)
	for _, key := range keys {
		if key == SchemaKey || !strings.HasSuffix(key, BundleSuffix) || strings.Contains(key, "/") {
			continue
		}
		locale := strings.TrimSuffix(key, BundleSuffix)
		if _, err := language.Parse(locale); err != nil {
			s.l.Debug("skipping bundle with invalid locale name", zap.String("key", key))
			continue
		}
		if locale == s.defaultLocale {
			hasDefault = true
			continue
		}
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	if hasDefault {
		locales = append([]string{s.defaultLocale}, locales...)
	}
	return locales, nil
}

// Match picks the best available locale for an Accept-Language header
func (s *Store) Match(ctx context.Context, acceptLanguage string) (string, error) {
	locales, err := s.Locales(ctx)
	if err != nil {
		return "", err
	}
	if len(locales) == 0 {
		return "", ErrNoLocales
	}

	tags := make([]language.Tag, len(locales))
	for i, locale := range locales {
		tags[i] = language.Make(locale)
	}

	desired, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil {
		s.l.Debug("invalid accept-language header", zap.String("header", acceptLanguage), zap.Error(err))
		return locales[0], nil
	}

	_, index, confidence := language.NewMatcher(tags).Match(desired...)
	if confidence == language.No {
		return locales[0], nil
	}
	return locales[index], nil
}

// Bundle returns the raw bundle of a locale
func (s *Store) Bundle(ctx context.Context, locale string) ([]byte, error) {
	if !validLocaleName(locale) {
		return nil, errors.Wrapf(ErrInvalidLocale, "%q", locale)
	}
	data, err := s.storage.Read(ctx, locale+BundleSuffix)
	if errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrapf(ErrLocaleNotFound, "%q", locale)
	} else if err != nil {
		return nil, errors.Wrapf(err, "failed to read bundle %q", locale)
	}
	metrics.StringsRequestCounter.WithLabelValues(locale).Inc()
	return data, nil
}

// Auto negotiates the locale and returns its bundle
func (s *Store) Auto(ctx context.Context, acceptLanguage string) (locale string, data []byte, err error) {
	locale, err = s.Match(ctx, acceptLanguage)
	if err != nil {
		return "", nil, err
	}
	data, err = s.Bundle(ctx, locale)
	return locale, data, err
}

// Fetch implements errorpage.Fetcher with the Accept-Language header stored
// in ctx
func (s *Store) Fetch(ctx context.Context) (errorpage.Bundle, error) {
	_, data, err := s.Auto(ctx, errorpage.AcceptLanguageFromContext(ctx))
	if err != nil {
		return nil, err
	}
	return errorpage.DecodeBundle(data)
}

// ------------------------------------------------------------------------------------------------
// ~ Private methods
// ------------------------------------------------------------------------------------------------

func validLocaleName(locale string) bool {
	if locale == "" || strings.ContainsAny(locale, "/\\.") {
		return false
	}
	_, err := language.Parse(locale)
	return err == nil
}
