package locales_test

import (
	"context"
	"testing"

	"github.com/foomo/errorpages/pkg/errorpage"
	"github.com/foomo/errorpages/pkg/locales"
	"github.com/foomo/errorpages/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gocloud.dev/blob/memblob"
)

const stringsDir = "../../strings"

func newStore(t *testing.T, opts ...locales.StoreOption) *locales.Store {
	t.Helper()
	s, err := storage.NewFilesystemStorage(stringsDir)
	require.NoError(t, err)
	return locales.NewStore(zaptest.NewLogger(t), s, opts...)
}

func newMemoryStore(t *testing.T, files map[string]string) *locales.Store {
	t.Helper()
	bucket := memblob.OpenBucket(nil)
	s := storage.NewBlobStorageFromBucket(bucket, "")
	t.Cleanup(func() { _ = s.Close() })
	for key, value := range files {
		require.NoError(t, s.Write(context.Background(), key, []byte(value)))
	}
	return locales.NewStore(zaptest.NewLogger(t), s)
}

func TestStore_Locales(t *testing.T) {
	list, err := newStore(t).Locales(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "be", "de", "nl", "pl", "ro", "ru", "uk"}, list)
}

func TestStore_Locales_DefaultLocale(t *testing.T) {
	list, err := newStore(t, locales.StoreWithDefaultLocale("de")).Locales(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "de", list[0])
	assert.Len(t, list, len(locales.RequiredLocales))
}

func TestStore_Locales_SkipsForeignKeys(t *testing.T) {
	store := newMemoryStore(t, map[string]string{
		"schema.json":      `{}`,
		"de.json":          `{}`,
		"readme.txt":       "",
		"nested/fr.json":   `{}`,
		"not a tag!!.json": `{}`,
	})
	list, err := store.Locales(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"de"}, list)
}

func TestStore_Match(t *testing.T) {
	store := newStore(t)
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"empty", "", "en"},
		{"exact", "de", "de"},
		{"region", "nl-BE,nl;q=0.9", "nl"},
		{"weighted", "fr;q=0.9,uk;q=0.8", "uk"},
		{"quality order", "en;q=0.1,ru;q=0.9", "ru"},
		{"unsupported", "ja", "en"},
		{"invalid", "!!!", "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Match(context.Background(), tt.header)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStore_Match_NoLocales(t *testing.T) {
	_, err := newMemoryStore(t, nil).Match(context.Background(), "en")
	assert.ErrorIs(t, err, locales.ErrNoLocales)
}

func TestStore_Bundle(t *testing.T) {
	store := newStore(t)

	data, err := store.Bundle(context.Background(), "pl")
	require.NoError(t, err)
	assert.Contains(t, string(data), "Nie znaleziono strony")

	_, err = store.Bundle(context.Background(), "fr")
	assert.ErrorIs(t, err, locales.ErrLocaleNotFound)

	for _, locale := range []string{"", "../en", "schema.json", "en/de"} {
		_, err = store.Bundle(context.Background(), locale)
		assert.ErrorIs(t, err, locales.ErrInvalidLocale, locale)
	}
}

func TestStore_Auto(t *testing.T) {
	locale, data, err := newStore(t).Auto(context.Background(), "ro-RO")
	require.NoError(t, err)
	assert.Equal(t, "ro", locale)

	bundle, err := errorpage.DecodeBundle(data)
	require.NoError(t, err)
	title, ok := bundle.Lookup("errors.service_unavailable")
	require.True(t, ok)
	assert.Equal(t, "Serviciu temporar indisponibil", title)
}

func TestStore_Fetch(t *testing.T) {
	store := newStore(t)
	doc, err := errorpage.DefaultTemplate().Document("404")
	require.NoError(t, err)

	ctx := errorpage.ContextWithAcceptLanguage(context.Background(), "de-CH,de;q=0.9")
	res := errorpage.Render(ctx, "404", doc, store)
	require.NoError(t, res.Err)
	assert.True(t, res.Localized)
	assert.Equal(t, "Seite nicht gefunden", doc.Text(errorpage.ElementTitle))
	assert.Equal(t, "404 Seite nicht gefunden", doc.Title())
}

func TestStore_Fetch_DefaultLocale(t *testing.T) {
	bundle, err := newStore(t).Fetch(context.Background())
	require.NoError(t, err)
	title, ok := bundle.Lookup("errors.forbidden")
	require.True(t, ok)
	assert.Equal(t, "Forbidden", title)
}
