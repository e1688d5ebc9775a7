// Package partition is the upstream document parser: it turns a file into
// the ordered element sequence the extraction pipeline consumes. PDF text
// comes from ledongthuc/pdf, with pdfcpu providing structural validation up
// front; plain-text files are segmented directly. Element tagging is layout
// heuristics over extracted text, best-effort by design.
package partition

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/veldtlabs/docstudy/internal/element"
)

const (
	maxTitleLength = 80
	maxTitleWords  = 12
)

// Partitioner reads supported document files and emits raw elements.
type Partitioner struct {
	maxFileSize int64
}

// NewPartitioner creates a partitioner with the given file size limit.
func NewPartitioner(maxFileSize int64) *Partitioner {
	return &Partitioner{maxFileSize: maxFileSize}
}

// Partition parses one file into its ordered element sequence. Supported
// extensions are .pdf and .txt; anything else is an error, as is a file that
// fails validation or yields no readable content.
func (p *Partitioner) Partition(path string) ([]element.RawElement, error) {
	if err := p.validateFile(path); err != nil {
		return nil, err
	}

	switch {
	case strings.HasSuffix(strings.ToLower(path), ".pdf"):
		return p.partitionPDF(path)
	case strings.HasSuffix(strings.ToLower(path), ".txt"):
		return p.partitionText(path)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", path)
	}
}

// validateFile performs the basic checks shared by all file types.
func (p *Partitioner) validateFile(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if fileInfo.Size() == 0 {
		return fmt.Errorf("file is empty: %s", path)
	}
	if fileInfo.Size() > p.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)", fileInfo.Size(), p.maxFileSize)
	}

	return nil
}

// partitionPDF validates the document structure with pdfcpu, then extracts
// per-page text and segments each page into elements.
func (p *Partitioner) partitionPDF(path string) ([]element.RawElement, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if err := api.ValidateFile(path, conf); err != nil {
		return nil, fmt.Errorf("invalid PDF file: %w", err)
	}

	f, pdfReader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var elements []element.RawElement
	for pageNum := 1; pageNum <= pdfReader.NumPage(); pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page does not fail the document.
			continue
		}
		elements = append(elements, Segment(content, pageNum)...)
	}

	if len(elements) == 0 {
		return nil, fmt.Errorf("no readable content in PDF: %s", path)
	}

	return elements, nil
}

func (p *Partitioner) partitionText(path string) ([]element.RawElement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read text file: %w", err)
	}

	elements := Segment(string(data), 1)
	if len(elements) == 0 {
		return nil, fmt.Errorf("no readable content in file: %s", path)
	}

	return elements, nil
}

// Segment splits a page of text into tagged elements. Consecutive
// pipe-delimited lines become one Table element; bullet or enumerated lines
// become individual ListItem elements; short terminal-free lines become
// Titles; everything else groups into Text blocks separated by blank lines.
func Segment(text string, page int) []element.RawElement {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	var elements []element.RawElement
	var block []string
	var tableBlock []string

	flushText := func() {
		if len(block) == 0 {
			return
		}
		content := strings.Join(block, "\n")
		block = block[:0]
		if strings.TrimSpace(content) == "" {
			return
		}
		kind := element.KindText
		if isTitle(content) {
			kind = element.KindTitle
		}
		elements = append(elements, element.RawElement{Kind: kind, Text: content, Page: page})
	}
	flushTable := func() {
		if len(tableBlock) == 0 {
			return
		}
		elements = append(elements, element.RawElement{
			Kind: element.KindTable,
			Text: strings.Join(tableBlock, "\n"),
			Page: page,
		})
		tableBlock = tableBlock[:0]
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			flushTable()
			flushText()
		case strings.Contains(trimmed, "|"):
			flushText()
			tableBlock = append(tableBlock, trimmed)
		case isListItem(trimmed):
			flushTable()
			flushText()
			elements = append(elements, element.RawElement{
				Kind: element.KindListItem,
				Text: trimmed,
				Page: page,
			})
		default:
			flushTable()
			block = append(block, trimmed)
		}
	}
	flushTable()
	flushText()

	return elements
}

// isTitle holds for a single short line without a sentence terminator.
func isTitle(content string) bool {
	if strings.Contains(content, "\n") {
		return false
	}
	trimmed := strings.TrimSpace(content)
	if len(trimmed) == 0 || len(trimmed) > maxTitleLength {
		return false
	}
	if strings.ContainsAny(string(trimmed[len(trimmed)-1]), ".!?,;:") {
		return false
	}
	return len(strings.Fields(trimmed)) <= maxTitleWords
}

// isListItem matches bullet markers and simple enumerations like "1." or
// "2)".
func isListItem(line string) bool {
	switch {
	case strings.HasPrefix(line, "- "),
		strings.HasPrefix(line, "* "),
		strings.HasPrefix(line, "• "):
		return true
	}

	i := 0
	for i < len(line) && unicode.IsDigit(rune(line[i])) {
		i++
	}
	if i == 0 || i >= len(line) {
		return false
	}
	return (line[i] == '.' || line[i] == ')') && i+1 < len(line) && line[i+1] == ' '
}
