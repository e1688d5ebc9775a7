// Package element defines the typed document elements produced by the
// upstream partitioner and consumed by the extraction pipeline.
package element

// Kind identifies the structural role of a raw element. The set is closed:
// the extraction classifier switches exhaustively over these values and
// ignores anything else.
type Kind string

const (
	KindTable    Kind = "Table"
	KindText     Kind = "Text"
	KindTitle    Kind = "Title"
	KindListItem Kind = "ListItem"
)

// RawElement is one unit of upstream-parsed document content. It is owned by
// the partitioner; the extraction pipeline borrows it for a single pass and
// never mutates it.
type RawElement struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
	// Page is the 1-based page number the element came from. Zero means the
	// partitioner could not determine it; consumers default to page 1.
	Page int `json:"page,omitempty"`
}

// PageOrDefault returns the element's page number, defaulting to 1 when the
// partitioner left it unset.
func (e RawElement) PageOrDefault() int {
	if e.Page < 1 {
		return 1
	}
	return e.Page
}
