package generate_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/foomo/errorpages/pkg/errorpage"
	"github.com/foomo/errorpages/pkg/errorpage/mock"
	"github.com/foomo/errorpages/pkg/generate"
	"github.com/foomo/errorpages/pkg/locales"
	"github.com/foomo/errorpages/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gocloud.dev/blob/memblob"
)

func newStorage(t *testing.T) storage.Storage {
	t.Helper()
	s := storage.NewBlobStorageFromBucket(memblob.OpenBucket(nil), "pages")
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func readTitle(t *testing.T, s storage.Storage, key string) string {
	t.Helper()
	data, err := s.Read(context.Background(), key)
	require.NoError(t, err)
	doc, err := errorpage.NewHTMLDocument(bytes.NewReader(data))
	require.NoError(t, err)
	return doc.Title()
}

func TestGenerator_Fallback(t *testing.T) {
	l := zaptest.NewLogger(t)
	s := newStorage(t)

	keys, err := generate.NewGenerator(l, errorpage.NewRenderer(l, nil), s).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"403.html", "404.html", "500.html", "502.html", "503.html", "504.html"}, keys)
	assert.Equal(t, "503 Service Temporarily Unavailable", readTitle(t, s, "503.html"))
}

func TestGenerator_Localized(t *testing.T) {
	l := zaptest.NewLogger(t)
	svr := mock.GetMockServer(t)
	s := newStorage(t)
	renderer := errorpage.NewRenderer(l, errorpage.NewHTTPFetcher(svr.URL+mock.StringsOK))

	keys, err := generate.NewGenerator(l, renderer, s,
		generate.WithCodes("404", "502"),
		generate.WithConcurrency(1),
	).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"404.html", "502.html"}, keys)
	assert.Equal(t, "404 Page Missing", readTitle(t, s, "404.html"))
	assert.Equal(t, "502 Upstream Said No", readTitle(t, s, "502.html"))
}

func TestGenerator_Locales(t *testing.T) {
	l := zaptest.NewLogger(t)
	strs, err := storage.NewFilesystemStorage("../../strings")
	require.NoError(t, err)
	store := locales.NewStore(l, strs)
	s := newStorage(t)

	keys, err := generate.NewGenerator(l, errorpage.NewRenderer(l, store), s,
		generate.WithCodes("403"),
		generate.WithLocales("en", "nl", "ru"),
	).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"en/403.html", "nl/403.html", "ru/403.html"}, keys)
	assert.Equal(t, "403 Forbidden", readTitle(t, s, "en/403.html"))
	assert.Equal(t, "403 Toegang geweigerd", readTitle(t, s, "nl/403.html"))
	assert.Equal(t, "403 Доступ запрещён", readTitle(t, s, "ru/403.html"))
}

func TestGenerator_Prune(t *testing.T) {
	ctx := context.Background()
	l := zaptest.NewLogger(t)
	s := newStorage(t)
	require.NoError(t, s.Write(ctx, "418.html", []byte("stale")))
	require.NoError(t, s.Write(ctx, "robots.txt", []byte("keep")))

	_, err := generate.NewGenerator(l, errorpage.NewRenderer(l, nil), s,
		generate.WithCodes("500"),
		generate.WithPrune(true),
	).Run(ctx)
	require.NoError(t, err)

	list, err := s.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"500.html", "robots.txt"}, list)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "404.html", generate.Key("", "404"))
	assert.Equal(t, "de/404.html", generate.Key("de", "404"))
}
