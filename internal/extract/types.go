package extract

// TableRecord is one reconstructed table. Rows is never empty: reconstruction
// that yields no usable rows produces no record at all.
type TableRecord struct {
	ID   string     `json:"id"`
	Rows [][]string `json:"data"`
	Page int        `json:"page"`
}

// TextSection is one normalized block of free text. Content is always
// non-empty after trimming.
type TextSection struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Type    string `json:"type"`
	Page    int    `json:"page"`
}

// ChartRecord is a reserved extension point for OCR-based chart extraction.
// Nothing populates it yet; it exists so the document shape and the exported
// spreadsheet layout stay stable once chart support lands upstream.
type ChartRecord struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Page int    `json:"page"`
}

// Metadata describes the source of an extracted document.
type Metadata struct {
	Filename      string `json:"filename"`
	TotalElements int    `json:"total_elements"`
}

// Document is the result of one extraction pass. It is constructed once and
// treated as immutable by every consumer; Tables and TextSections preserve
// the order of appearance in the source.
type Document struct {
	Tables       []TableRecord `json:"tables"`
	TextSections []TextSection `json:"text_sections"`
	Charts       []ChartRecord `json:"charts"`
	Metadata     Metadata      `json:"metadata"`
}
