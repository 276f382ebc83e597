package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Page holds the plain text extracted from a single PDF page.
type Page struct {
	Number int
	Text   string
}

// Extractor pulls plain text out of PDF documents page by page.
type Extractor struct {
	separator string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithSeparator sets the string written between the text of consecutive pages.
// The default is no separator: the last character of one page runs into the
// first character of the next.
func WithSeparator(sep string) Option {
	return func(e *Extractor) { e.separator = sep }
}

// New returns an Extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// PDF extracts the text of every page of data and concatenates it in page order.
// Pages that yield no text contribute nothing.
func PDF(data []byte) (string, error) {
	return New().Text(data)
}

// Text extracts the text of every page of data and joins it with the configured separator.
func (e *Extractor) Text(data []byte) (string, error) {
	pages, err := e.Pages(data)
	if err != nil {
		return "", err
	}
	var out strings.Builder
	for i, page := range pages {
		if i > 0 {
			out.WriteString(e.separator)
		}
		out.WriteString(page.Text)
	}
	return out.String(), nil
}

// Pages returns the pages of data that produced text, in document order.
// A buffer that is not a parseable PDF returns an error; a page whose text
// cannot be extracted is skipped.
func (e *Extractor) Pages(data []byte) (pages []Page, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("extract: read pdf: %v", r)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("extract: open pdf: %w", err)
	}
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil || text == "" {
			continue
		}
		pages = append(pages, Page{Number: i, Text: text})
	}
	return pages, nil
}
