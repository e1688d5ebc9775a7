// Package export serializes extracted documents into multi-sheet
// spreadsheets.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/veldtlabs/docstudy/internal/extract"
)

const (
	// maxContentLength caps cell content on the text-sections sheet.
	maxContentLength = 500
	ellipsis         = "..."

	textSheetName = "Text_Sections"
	metaSheetName = "Metadata"
)

// Excel writes the document to an .xlsx workbook at outputPath: one sheet per
// table (the first reconstructed row becomes the column headers), a sheet
// summarizing all text sections, and a metadata sheet, in that fixed order.
//
// The workbook is written to a temporary file and renamed into place, so a
// failed export never leaves a partial file at outputPath. Any failure is
// returned as an *extract.ExportError.
func Excel(doc *extract.Document, outputPath string) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := buildWorkbook(f, doc); err != nil {
		return "", &extract.ExportError{Path: outputPath, Err: err}
	}

	// The temporary name keeps the .xlsx extension: SaveAs rejects other
	// workbook extensions.
	base := filepath.Base(outputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	tmp := filepath.Join(filepath.Dir(outputPath), "."+stem+".tmp.xlsx")
	if err := f.SaveAs(tmp); err != nil {
		return "", &extract.ExportError{Path: outputPath, Err: err}
	}
	if err := os.Rename(tmp, outputPath); err != nil {
		os.Remove(tmp)
		return "", &extract.ExportError{Path: outputPath, Err: err}
	}

	return outputPath, nil
}

func buildWorkbook(f *excelize.File, doc *extract.Document) error {
	// Table sheets are named by 1-based position among the kept tables,
	// independent of each record's own id.
	for k, table := range doc.Tables {
		sheet := fmt.Sprintf("Table_%d", k+1)
		if err := addSheet(f, sheet, k == 0); err != nil {
			return err
		}
		for r, row := range table.Rows {
			for c, cell := range row {
				if err := setCell(f, sheet, c+1, r+1, cell); err != nil {
					return err
				}
			}
		}
	}

	if err := addSheet(f, textSheetName, len(doc.Tables) == 0); err != nil {
		return err
	}
	headers := []string{"ID", "Type", "Page", "Content"}
	for c, h := range headers {
		if err := setCell(f, textSheetName, c+1, 1, h); err != nil {
			return err
		}
	}
	for r, section := range doc.TextSections {
		values := []any{section.ID, section.Type, section.Page, truncate(section.Content)}
		for c, v := range values {
			if err := setCell(f, textSheetName, c+1, r+2, v); err != nil {
				return err
			}
		}
	}

	if err := addSheet(f, metaSheetName, false); err != nil {
		return err
	}
	meta := [][]any{
		{"filename", doc.Metadata.Filename},
		{"total_elements", doc.Metadata.TotalElements},
	}
	for c, pair := range meta {
		if err := setCell(f, metaSheetName, c+1, 1, pair[0]); err != nil {
			return err
		}
		if err := setCell(f, metaSheetName, c+1, 2, pair[1]); err != nil {
			return err
		}
	}

	return nil
}

// addSheet creates the named sheet, reusing the workbook's default sheet for
// the first one so no empty "Sheet1" is left behind.
func addSheet(f *excelize.File, name string, first bool) error {
	if first {
		return f.SetSheetName("Sheet1", name)
	}
	_, err := f.NewSheet(name)
	return err
}

func setCell(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}

// truncate caps content at maxContentLength characters, never splitting a
// multi-byte rune.
func truncate(content string) string {
	runes := []rune(content)
	if len(runes) > maxContentLength {
		return string(runes[:maxContentLength]) + ellipsis
	}
	return content
}
