package errorpage

import (
	"bytes"
	_ "embed"
	"os"

	"github.com/pkg/errors"
)

//go:embed template.html
var defaultTemplate []byte

// Template is the raw page every rendering starts from
type Template struct {
	data []byte
}

// DefaultTemplate returns the built-in page
func DefaultTemplate() *Template {
	return &Template{data: defaultTemplate}
}

// NewTemplate validates data by parsing it once
func NewTemplate(data []byte) (*Template, error) {
	if _, err := NewHTMLDocument(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return &Template{data: data}, nil
}

// LoadTemplate reads a template from the filesystem
func LoadTemplate(filename string) (*Template, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read template %q", filename)
	}
	return NewTemplate(data)
}

// Document returns a fresh document. A non-empty code overrides the one
// stored in the template.
func (t *Template) Document(code StatusCode) (*HTMLDocument, error) {
	doc, err := NewHTMLDocument(bytes.NewReader(t.data))
	if err != nil {
		return nil, err
	}
	if code != "" {
		doc.SetStatusCode(code)
	}
	return doc, nil
}
