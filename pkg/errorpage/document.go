package errorpage

import (
	"io"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	// AttrCode holds the status code on the root element
	AttrCode = "data-code"
	// ElementCode receives the bare status code
	ElementCode = "code"
	// ElementTitle receives the resolved title
	ElementTitle = "title"
)

// Document is the page the renderer writes into.
// Writes to elements that do not exist are ignored.
type Document interface {
	StatusCode() StatusCode
	SetText(id, value string)
	SetTitle(value string)
}

// HTMLDocument implements Document on a parsed html page
type HTMLDocument struct {
	doc *goquery.Document
}

// ------------------------------------------------------------------------------------------------
// ~ Constructor
// ------------------------------------------------------------------------------------------------

func NewHTMLDocument(r io.Reader) (*HTMLDocument, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse html document")
	}
	return &HTMLDocument{doc: doc}, nil
}

// ------------------------------------------------------------------------------------------------
// ~ Public methods
// ------------------------------------------------------------------------------------------------

// StatusCode reads the code attribute of the root element, empty if missing
func (d *HTMLDocument) StatusCode() StatusCode {
	v, _ := d.root().Attr(AttrCode)
	return StatusCode(v)
}

// SetStatusCode writes the code attribute of the root element
func (d *HTMLDocument) SetStatusCode(code StatusCode) {
	d.root().SetAttr(AttrCode, string(code))
}

func (d *HTMLDocument) SetText(id, value string) {
	sel := d.element(id)
	if sel.Length() == 0 {
		return
	}
	sel.SetText(value)
}

// Text returns the text of the element with the given id
func (d *HTMLDocument) Text(id string) string {
	return d.element(id).Text()
}

func (d *HTMLDocument) SetTitle(value string) {
	title := d.doc.Find("head title").First()
	if title.Length() == 0 {
		head := d.doc.Find("head").First()
		if head.Length() == 0 {
			return
		}
		head.AppendNodes(&html.Node{Type: html.ElementNode, DataAtom: atom.Title, Data: atom.Title.String()})
		title = head.Find("title").First()
	}
	title.SetText(value)
}

// Title returns the document title
func (d *HTMLDocument) Title() string {
	return d.doc.Find("head title").First().Text()
}

// Render serializes the whole document
func (d *HTMLDocument) Render(w io.Writer) error {
	if len(d.doc.Nodes) == 0 {
		return errors.New("empty document")
	}
	return html.Render(w, d.doc.Nodes[0])
}

// ------------------------------------------------------------------------------------------------
// ~ Private methods
// ------------------------------------------------------------------------------------------------

func (d *HTMLDocument) root() *goquery.Selection {
	return d.doc.Find("html").First()
}

func (d *HTMLDocument) element(id string) *goquery.Selection {
	return d.doc.FindMatcher(goquery.Single("[id=\"" + id + "\"]"))
}
