package extract

import "strings"

// ReconstructTable recovers a cell grid from the flattened text of one table
// element. The upstream partitioner renders tables as pipe-delimited
// pseudo-text, one line per row; this is a best-effort recovery of that
// rendering, not a general table parser. Lines without pipes degrade to a
// single unsegmented cell rather than failing.
//
// Blank lines and all-empty rows are dropped. Returns nil when no row
// survives, in which case the caller must not emit a table record.
func ReconstructTable(raw string) [][]string {
	lines := strings.Split(strings.TrimSpace(raw), "\n")

	var rows [][]string
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		var cells []string
		for _, cell := range strings.Split(line, "|") {
			cell = strings.TrimSpace(cell)
			if cell != "" {
				cells = append(cells, cell)
			}
		}
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	}

	return rows
}
