package errorpage

import (
	"context"

	"github.com/pkg/errors"
)

var ErrNoFetcher = errors.New("no bundle fetcher configured")

// Result describes what ended up on the page
type Result struct {
	Code     StatusCode
	Key      string
	Fallback string
	// Title is the text written into the title element
	Title     string
	Localized bool
	// Err explains why the fallback was kept. It is informational only.
	Err error
}

// Render writes the fallback for code into doc and then, if the bundle
// resolves the code's key to a string, replaces it with the localized text.
//
// Render never fails. Every failure leaves the fallback in place and is
// reported through Result.Err.
func Render(ctx context.Context, code StatusCode, doc Document, fetcher Fetcher) Result {
	m := Lookup(code)
	res := Result{
		Code:     code,
		Key:      m.Key,
		Fallback: m.Title,
		Title:    m.Title,
	}

	doc.SetText(ElementCode, string(code))
	applyTitle(doc, code, m.Title)

	if fetcher == nil {
		res.Err = ErrNoFetcher
		return res
	}

	bundle, err := fetcher.Fetch(ctx)
	if err != nil {
		res.Err = err
		return res
	}

	value, ok := bundle.Resolve(m.Key)
	if !ok {
		res.Err = ErrKeyNotFound
		return res
	}
	title, ok := value.(string)
	if !ok {
		res.Err = ErrNotString
		return res
	}

	applyTitle(doc, code, title)
	res.Title = title
	res.Localized = true
	return res
}

func applyTitle(doc Document, code StatusCode, title string) {
	doc.SetText(ElementTitle, title)
	doc.SetTitle(DocumentTitle(code, title))
}
