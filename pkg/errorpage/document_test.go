package errorpage

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMLDocumentStatusCode(t *testing.T) {
	doc, err := NewHTMLDocument(strings.NewReader(`<html data-code="502"><head></head><body></body></html>`))
	require.NoError(t, err)
	assert.Equal(t, StatusCode("502"), doc.StatusCode())

	doc, err = NewHTMLDocument(strings.NewReader(`<html><body></body></html>`))
	require.NoError(t, err)
	assert.Equal(t, StatusCode(""), doc.StatusCode())

	doc.SetStatusCode("404")
	assert.Equal(t, StatusCode("404"), doc.StatusCode())
}

func TestHTMLDocumentSetText(t *testing.T) {
	doc, err := NewHTMLDocument(strings.NewReader(`<html><body><h1 id="code">old</h1><p id="title"><b>old</b></p></body></html>`))
	require.NoError(t, err)

	doc.SetText(ElementCode, "404")
	doc.SetText(ElementTitle, "<script>alert(1)</script>")
	doc.SetText("missing", "ignored")

	assert.Equal(t, "404", doc.Text(ElementCode))
	assert.Equal(t, "<script>alert(1)</script>", doc.Text(ElementTitle))
	assert.Equal(t, "", doc.Text("missing"))

	var buf bytes.Buffer
	require.NoError(t, doc.Render(&buf))
	assert.Contains(t, buf.String(), "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.NotContains(t, buf.String(), "<b>old</b>")
}

func TestHTMLDocumentSetTitle(t *testing.T) {
	doc, err := NewHTMLDocument(strings.NewReader(`<html><head><title>Old</title></head><body></body></html>`))
	require.NoError(t, err)
	doc.SetTitle("404 Not Found")
	assert.Equal(t, "404 Not Found", doc.Title())

	doc, err = NewHTMLDocument(strings.NewReader(`<p>no head at all</p>`))
	require.NoError(t, err)
	doc.SetTitle("500 Internal Server Error")
	assert.Equal(t, "500 Internal Server Error", doc.Title())
}

func TestHTMLDocumentIgnoresSVGTitles(t *testing.T) {
	doc, err := NewHTMLDocument(strings.NewReader(`<html><head><title>Page</title></head><body><svg><title>Icon</title></svg></body></html>`))
	require.NoError(t, err)

	doc.SetTitle("404 Not Found")

	assert.Equal(t, "404 Not Found", doc.Title())
	var buf bytes.Buffer
	require.NoError(t, doc.Render(&buf))
	assert.Contains(t, buf.String(), "<title>Icon</title>")
}

func TestDefaultTemplate(t *testing.T) {
	doc, err := DefaultTemplate().Document("")
	require.NoError(t, err)
	assert.Equal(t, StatusCode(""), doc.StatusCode())

	doc, err = DefaultTemplate().Document("503")
	require.NoError(t, err)
	assert.Equal(t, StatusCode("503"), doc.StatusCode())

	// each document is independent
	doc.SetText(ElementTitle, "changed")
	other, err := DefaultTemplate().Document("503")
	require.NoError(t, err)
	assert.Equal(t, "", other.Text(ElementTitle))
}

func TestLoadTemplate(t *testing.T) {
	_, err := LoadTemplate("does-not-exist.html")
	require.Error(t, err)

	tpl, err := LoadTemplate("template.html")
	require.NoError(t, err)
	doc, err := tpl.Document("404")
	require.NoError(t, err)
	assert.Equal(t, StatusCode("404"), doc.StatusCode())
}
