// Package study orchestrates the document pipeline: partition → classify →
// export, and corpus assembly → meta-study. It owns no state between calls;
// every method is request-scoped.
package study

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/veldtlabs/docstudy/internal/export"
	"github.com/veldtlabs/docstudy/internal/extract"
	"github.com/veldtlabs/docstudy/internal/metastudy"
	"github.com/veldtlabs/docstudy/internal/partition"
	"github.com/veldtlabs/docstudy/internal/security"
	"github.com/veldtlabs/docstudy/internal/summarize"
)

// Service wires the pipeline components together for the server surfaces.
type Service struct {
	maxFileSize   int64
	partitioner   *partition.Partitioner
	pathValidator *security.PathValidator
	summarizer    summarize.Summarizer
}

// NewService creates a service confined to the given document root.
func NewService(maxFileSize int64, rootDir string) (*Service, error) {
	pathValidator, err := security.NewPathValidator(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}

	return &Service{
		maxFileSize:   maxFileSize,
		partitioner:   partition.NewPartitioner(maxFileSize),
		pathValidator: pathValidator,
		summarizer:    summarize.NewHeuristic(),
	}, nil
}

// MaxFileSize returns the file size limit in bytes.
func (s *Service) MaxFileSize() int64 {
	return s.maxFileSize
}

// Root returns the configured document root directory.
func (s *Service) Root() string {
	return s.pathValidator.Root()
}

// ExtractFile parses one file and classifies its elements into a document.
// An upstream parse failure is fatal and carries the file path; no partial
// document accompanies it.
func (s *Service) ExtractFile(path string) (*extract.Document, error) {
	if err := s.pathValidator.ValidatePath(path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	elements, err := s.partitioner.Partition(path)
	if err != nil {
		return nil, &extract.ExtractionError{Path: path, Err: err}
	}

	return extract.BuildDocument(baseName(path), elements), nil
}

// ExportSummary counts what one extract-and-export run produced.
type ExportSummary struct {
	TablesFound       int `json:"tables_found"`
	TextSectionsFound int `json:"text_sections_found"`
	ChartsFound       int `json:"charts_found"`
}

// ExportResult is the outcome of ExtractToExcel.
type ExportResult struct {
	ExcelFile string            `json:"excel_file"`
	Document  *extract.Document `json:"extracted_data"`
	Summary   ExportSummary     `json:"summary"`
}

// ExtractToExcel runs the complete extraction pipeline for one file and
// writes the spreadsheet to outputPath.
func (s *Service) ExtractToExcel(path, outputPath string) (*ExportResult, error) {
	doc, err := s.ExtractFile(path)
	if err != nil {
		return nil, err
	}

	excelPath, err := export.Excel(doc, outputPath)
	if err != nil {
		return nil, err
	}

	return &ExportResult{
		ExcelFile: excelPath,
		Document:  doc,
		Summary: ExportSummary{
			TablesFound:       len(doc.Tables),
			TextSectionsFound: len(doc.TextSections),
			ChartsFound:       len(doc.Charts),
		},
	}, nil
}

// ValidateResult reports whether a file is a readable document.
type ValidateResult struct {
	Path    string `json:"path"`
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// ValidateFile checks that the file can be partitioned without running the
// full extraction. Validation failure is a result, not an error.
func (s *Service) ValidateFile(path string) *ValidateResult {
	result := &ValidateResult{Path: path}

	if err := s.pathValidator.ValidatePath(path); err != nil {
		result.Message = err.Error()
		return result
	}
	if _, err := s.partitioner.Partition(path); err != nil {
		result.Message = err.Error()
		return result
	}

	result.Valid = true
	return result
}

// BuildCorpus extracts the full text of each file and populates one corpus
// record per file through the summarizer collaborator. Files that fail to
// parse are reported; the caller decides whether a partial corpus is
// acceptable.
func (s *Service) BuildCorpus(paths []string) ([]metastudy.CorpusRecord, error) {
	corpus := make([]metastudy.CorpusRecord, 0, len(paths))
	for _, path := range paths {
		doc, err := s.ExtractFile(path)
		if err != nil {
			return nil, err
		}
		corpus = append(corpus, summarize.Record(s.summarizer, doc.Metadata.Filename, documentText(doc)))
	}
	return corpus, nil
}

// MetaStudy clusters a fully-materialized corpus. The corpus for one call is
// the unit clustered together; records are never clustered across calls.
func (s *Service) MetaStudy(corpus []metastudy.CorpusRecord, clusters int, seed int64) *metastudy.Result {
	return metastudy.Run(corpus, clusters, seed)
}

// documentText flattens a document into one string: every text section in
// order, then every table row, so table cell content stays part of the
// corpus text.
func documentText(doc *extract.Document) string {
	parts := make([]string, 0, len(doc.TextSections)+len(doc.Tables))
	for _, section := range doc.TextSections {
		parts = append(parts, section.Content)
	}
	for _, table := range doc.Tables {
		for _, row := range table.Rows {
			parts = append(parts, strings.Join(row, " "))
		}
	}
	return strings.Join(parts, " ")
}

func baseName(path string) string {
	return filepath.Base(path)
}
