// Package modelcards turns a model documentation page into a list of model
// identifiers. The page layout is owned by a third party and changes without
// notice, so callers depend only on the Extractor interface.
package modelcards

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	DefaultContainerSelector = "div.rdmd-table-inner"
	DefaultCellSelector      = "td"
	DefaultCodeSelector      = `code[tabindex="0"]`
)

var ErrContainerNotFound = errors.New("model table container not found")

type Extractor interface {
	Extract(r io.Reader) ([]string, error)
}

// TableExtractor reads the first cell of every row inside the first matching
// container and takes the text of the inline code element in it.
type TableExtractor struct {
	ContainerSelector string
	CellSelector      string
	CodeSelector      string
}

func NewTableExtractor() *TableExtractor {
	return &TableExtractor{
		ContainerSelector: DefaultContainerSelector,
		CellSelector:      DefaultCellSelector,
		CodeSelector:      DefaultCodeSelector,
	}
}

func (e *TableExtractor) Extract(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}
	container := doc.Find(e.ContainerSelector).First()
	if container.Length() == 0 {
		return nil, ErrContainerNotFound
	}

	models := make([]string, 0)
	container.Find("tr").Each(
		func(_ int, row *goquery.Selection) {
			cell := row.Find(e.CellSelector).First()
			if cell.Length() == 0 {
				return
			}
			code := cell.Find(e.CodeSelector).First()
			if code.Length() == 0 {
				return
			}
			if name := strings.TrimSpace(code.Text()); name != "" {
				models = append(models, name)
			}
		},
	)
	return models, nil
}
