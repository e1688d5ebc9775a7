package study

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileInfo describes one document file found by SearchDirectory.
type FileInfo struct {
	Name         string `json:"name"`
	Path         string `json:"path"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}

// SearchResult lists the document files in a directory.
type SearchResult struct {
	Directory  string     `json:"directory"`
	Query      string     `json:"query,omitempty"`
	Files      []FileInfo `json:"files"`
	TotalCount int        `json:"total_count"`
}

// documentExtensions are the file types the partitioner can consume.
var documentExtensions = map[string]bool{
	".pdf": true,
	".txt": true,
}

// SearchDirectory walks the directory tree for document files, optionally
// filtering names by a case-insensitive substring query. Unreadable entries
// and oversized files are skipped, not errors.
func (s *Service) SearchDirectory(directory, query string) (*SearchResult, error) {
	if directory == "" {
		directory = s.pathValidator.Root()
	}
	if err := s.pathValidator.ValidateDirectory(directory); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	if _, err := os.Stat(directory); os.IsNotExist(err) {
		return nil, fmt.Errorf("directory does not exist: %s", directory)
	}

	absDirectory, err := filepath.Abs(directory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory path: %w", err)
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	var files []FileInfo

	err = filepath.Walk(absDirectory, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil //nolint:nilerr // continue past unreadable entries
		}
		if info.IsDir() {
			return nil
		}
		if !documentExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		if info.Size() == 0 || info.Size() > s.maxFileSize {
			return nil
		}
		if needle != "" && !strings.Contains(strings.ToLower(info.Name()), needle) {
			return nil
		}
		files = append(files, FileInfo{
			Name:         info.Name(),
			Path:         path,
			Size:         info.Size(),
			ModifiedTime: info.ModTime().Format("2006-01-02 15:04:05"),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	return &SearchResult{
		Directory:  absDirectory,
		Query:      query,
		Files:      files,
		TotalCount: len(files),
	}, nil
}

// DocumentPaths returns the paths of every document file in the directory,
// in walk order. It is the corpus input for directory-driven meta-studies.
func (s *Service) DocumentPaths(directory string) ([]string, error) {
	result, err := s.SearchDirectory(directory, "")
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(result.Files))
	for i, f := range result.Files {
		paths[i] = f.Path
	}
	return paths, nil
}
