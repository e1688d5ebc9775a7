package extract

import (
	"fmt"
	"log"

	"github.com/veldtlabs/docstudy/internal/element"
)

// BuildDocument classifies a partitioned element sequence into an extracted
// document. Element ids are derived from the element's position in the input
// sequence, so they stay stable regardless of how many elements are dropped
// along the way. Elements of unknown kinds are counted but otherwise ignored.
func BuildDocument(filename string, elements []element.RawElement) *Document {
	doc := &Document{
		Tables:       []TableRecord{},
		TextSections: []TextSection{},
		Charts:       []ChartRecord{},
		Metadata: Metadata{
			Filename:      filename,
			TotalElements: len(elements),
		},
	}

	for i, el := range elements {
		classifyElement(doc, i, el)
	}

	return doc
}

// classifyElement dispatches one element. A failure here is contained: it is
// logged and the element is skipped, never aborting the whole pass.
func classifyElement(doc *Document, i int, el element.RawElement) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("warning: skipping element %d of %s: %v", i, doc.Metadata.Filename, r)
		}
	}()

	switch el.Kind {
	case element.KindTable:
		rows := ReconstructTable(el.Text)
		if len(rows) == 0 {
			return
		}
		doc.Tables = append(doc.Tables, TableRecord{
			ID:   fmt.Sprintf("table_%d", i),
			Rows: rows,
			Page: el.PageOrDefault(),
		})

	case element.KindText, element.KindTitle, element.KindListItem:
		content := Normalize(el.Text)
		if content == "" {
			return
		}
		doc.TextSections = append(doc.TextSections, TextSection{
			ID:      fmt.Sprintf("text_%d", i),
			Content: content,
			Type:    string(el.Kind),
			Page:    el.PageOrDefault(),
		})

	default:
		// Unrecognized element kinds are not an error; they still count
		// toward TotalElements.
	}
}
