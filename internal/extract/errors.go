package extract

import "fmt"

// ExtractionError is a fatal failure of the upstream parse for one file.
// No partial Document accompanies it; callers must not infer partial
// completion.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// ExportError is a fatal spreadsheet write failure. When it is returned no
// output file exists at the requested path.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export failed for %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
