package partition

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/veldtlabs/docstudy/internal/element"
)

func kinds(elements []element.RawElement) []element.Kind {
	out := make([]element.Kind, len(elements))
	for i, el := range elements {
		out[i] = el.Kind
	}
	return out
}

func TestSegmentTagging(t *testing.T) {
	text := strings.Join([]string{
		"Quarterly Results",
		"",
		"Revenue grew by ten percent compared to the previous quarter. Margins held steady.",
		"",
		"Item | Qty | Price",
		"Widget A | 5 | 10.00",
		"",
		"- improve onboarding",
		"2) expand coverage",
	}, "\n")

	elements := Segment(text, 3)

	want := []element.Kind{
		element.KindTitle,
		element.KindText,
		element.KindTable,
		element.KindListItem,
		element.KindListItem,
	}
	got := kinds(elements)
	if len(got) != len(want) {
		t.Fatalf("got %d elements (%v), want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("element %d kind = %s, want %s", i, got[i], want[i])
		}
	}

	for i, el := range elements {
		if el.Page != 3 {
			t.Errorf("element %d page = %d, want 3", i, el.Page)
		}
	}

	if !strings.Contains(elements[2].Text, "Widget A | 5 | 10.00") {
		t.Errorf("table element lost its rows: %q", elements[2].Text)
	}
}

func TestSegmentConsecutivePipeLinesFormOneTable(t *testing.T) {
	text := "a|b\nc|d\ne|f"

	elements := Segment(text, 1)

	if len(elements) != 1 || elements[0].Kind != element.KindTable {
		t.Fatalf("expected a single table element, got %v", kinds(elements))
	}
	if lines := strings.Count(elements[0].Text, "\n"); lines != 2 {
		t.Errorf("table text should keep 3 rows, got %q", elements[0].Text)
	}
}

func TestSegmentLongLineIsText(t *testing.T) {
	line := strings.Repeat("word ", 30)

	elements := Segment(line, 1)

	if len(elements) != 1 || elements[0].Kind != element.KindText {
		t.Errorf("long line should be Text, got %v", kinds(elements))
	}
}

func TestSegmentSentenceIsNotTitle(t *testing.T) {
	elements := Segment("This reads like a sentence.", 1)

	if len(elements) != 1 || elements[0].Kind != element.KindText {
		t.Errorf("terminated line should be Text, got %v", kinds(elements))
	}
}

func TestSegmentEmptyInput(t *testing.T) {
	if elements := Segment("   \n\n  ", 1); len(elements) != 0 {
		t.Errorf("expected no elements, got %v", kinds(elements))
	}
}

func TestPartitionTextFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	content := "Project Notes\n\nThe pilot phase finished on schedule and within budget.\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	p := NewPartitioner(1024 * 1024)
	elements, err := p.Partition(path)
	if err != nil {
		t.Fatalf("Partition() unexpected error: %v", err)
	}

	if len(elements) != 2 {
		t.Fatalf("expected 2 elements, got %v", kinds(elements))
	}
	if elements[0].Kind != element.KindTitle || elements[1].Kind != element.KindText {
		t.Errorf("kinds = %v, want [Title Text]", kinds(elements))
	}
}

func TestPartitionValidation(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(empty, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	big := filepath.Join(dir, "big.txt")
	if err := os.WriteFile(big, []byte(strings.Repeat("a", 100)), 0o600); err != nil {
		t.Fatal(err)
	}
	other := filepath.Join(dir, "doc.docx")
	if err := os.WriteFile(other, []byte("content"), 0o600); err != nil {
		t.Fatal(err)
	}

	p := NewPartitioner(50)

	tests := []struct {
		name string
		path string
	}{
		{name: "empty_path", path: ""},
		{name: "missing_file", path: filepath.Join(dir, "missing.pdf")},
		{name: "directory", path: dir},
		{name: "empty_file", path: empty},
		{name: "too_large", path: big},
		{name: "unsupported_type", path: other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := p.Partition(tt.path); err == nil {
				t.Errorf("Partition(%q) expected error, got nil", tt.path)
			}
		})
	}
}
