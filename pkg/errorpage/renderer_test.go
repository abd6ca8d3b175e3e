package errorpage_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/foomo/errorpages/pkg/errorpage"
	"github.com/foomo/errorpages/pkg/errorpage/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newRenderer(t *testing.T, path string) (*errorpage.Renderer, *mock.Server) {
	t.Helper()
	server := mock.GetMockServer(t)
	r := errorpage.NewRenderer(zaptest.NewLogger(t), errorpage.NewHTTPFetcher(server.URL+path))
	return r, server
}

func TestRendererLocalizesEveryKnownCode(t *testing.T) {
	r, _ := newRenderer(t, mock.StringsOK)
	want := map[errorpage.StatusCode]string{
		"403": "Access Denied",
		"404": "Page Missing",
		"500": "Something Broke",
		"502": "Upstream Said No",
		"503": "Back Soon",
		"504": "Upstream Too Slow",
	}
	for _, code := range errorpage.KnownCodes() {
		doc, res, err := r.RenderCode(t.Context(), code)
		require.NoError(t, err)
		assert.True(t, res.Localized, code)
		assert.Equal(t, want[code], doc.Text(errorpage.ElementTitle))
		assert.Equal(t, string(code)+" "+want[code], doc.Title())
		assert.Equal(t, string(code), doc.Text(errorpage.ElementCode))
	}
}

func TestRendererFallbacks(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"missing bundle", mock.StringsMissing},
		{"failing bundle server", mock.StringsFailing},
		{"broken json", mock.StringsBroken},
		{"array bundle", mock.StringsArray},
		{"intermediate string", mock.StringsShallow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, server := newRenderer(t, tt.path)

			doc, res, err := r.RenderCode(t.Context(), "404")
			require.NoError(t, err)

			assert.False(t, res.Localized)
			assert.Error(t, res.Err)
			assert.Equal(t, "Not Found", doc.Text(errorpage.ElementTitle))
			assert.Equal(t, "404 Not Found", doc.Title())
			assert.Equal(t, int64(1), server.Hits())
		})
	}
}

func TestRendererNonStringLeaves(t *testing.T) {
	r, _ := newRenderer(t, mock.StringsNumber)

	doc, res, err := r.RenderCode(t.Context(), "404")
	require.NoError(t, err)
	assert.ErrorIs(t, res.Err, errorpage.ErrNotString)
	assert.Equal(t, "Not Found", doc.Text(errorpage.ElementTitle))

	doc, res, err = r.RenderCode(t.Context(), "500")
	require.NoError(t, err)
	assert.ErrorIs(t, res.Err, errorpage.ErrNotString)
	assert.Equal(t, "Internal Server Error", doc.Text(errorpage.ElementTitle))
	assert.Equal(t, "500 Internal Server Error", doc.Title())
}

func TestRendererWithoutFetcher(t *testing.T) {
	r := errorpage.NewRenderer(zaptest.NewLogger(t), nil)

	var buf bytes.Buffer
	res, err := r.Write(t.Context(), &buf, "502")
	require.NoError(t, err)

	assert.ErrorIs(t, res.Err, errorpage.ErrNoFetcher)
	assert.Contains(t, buf.String(), `data-code="502"`)
	assert.Contains(t, buf.String(), "<title>502 Bad Gateway</title>")
	assert.Contains(t, buf.String(), `<p id="title">Bad Gateway</p>`)
}

func TestRendererRenderDocumentUsesPageCode(t *testing.T) {
	r, _ := newRenderer(t, mock.StringsOK)

	doc, err := errorpage.NewHTMLDocument(strings.NewReader(
		`<!DOCTYPE html><html data-code="403"><head><title></title></head><body><span id="code"></span><span id="title"></span></body></html>`,
	))
	require.NoError(t, err)

	res := r.RenderDocument(t.Context(), doc)
	assert.Equal(t, errorpage.StatusCode("403"), res.Code)
	assert.Equal(t, "Access Denied", doc.Text(errorpage.ElementTitle))
	assert.Equal(t, "403 Access Denied", doc.Title())
}

func TestRendererWithTemplate(t *testing.T) {
	tpl, err := errorpage.NewTemplate([]byte(`<html data-code="404"><head></head><body><div id="title"></div></body></html>`))
	require.NoError(t, err)
	r := errorpage.NewRenderer(zaptest.NewLogger(t), nil, errorpage.WithTemplate(tpl))

	doc, _, err := r.RenderCode(t.Context(), "")
	require.NoError(t, err)
	assert.Equal(t, "Not Found", doc.Text(errorpage.ElementTitle))
	assert.Equal(t, "404 Not Found", doc.Title())
}
