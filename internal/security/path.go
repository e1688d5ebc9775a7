// Package security confines file access to the server's configured document
// root.
package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathValidator rejects paths that escape the configured root directory,
// including escapes through .. segments and symlinks.
type PathValidator struct {
	root string
}

// NewPathValidator creates a validator rooted at the given directory. The
// directory does not have to exist yet; validation is skipped until it does.
func NewPathValidator(root string) (*PathValidator, error) {
	if root == "" {
		return nil, fmt.Errorf("root directory cannot be empty")
	}
	return &PathValidator{root: root}, nil
}

// Root returns the configured root directory.
func (v *PathValidator) Root() string {
	return v.root
}

// ValidatePath checks that the path stays inside the root directory.
func (v *PathValidator) ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	if _, err := os.Stat(v.root); os.IsNotExist(err) {
		return nil
	}

	within, err := v.isWithinRoot(path)
	if err != nil {
		return fmt.Errorf("path validation failed: %w", err)
	}
	if !within {
		return fmt.Errorf("path is outside configured directory: %s", path)
	}

	return nil
}

// ValidateDirectory checks that the directory stays inside the root. A
// directory that does not exist yet passes; a non-directory file does not.
func (v *PathValidator) ValidateDirectory(dir string) error {
	if err := v.ValidatePath(dir); err != nil {
		return err
	}

	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", dir)
	}

	return nil
}

func (v *PathValidator) isWithinRoot(path string) (bool, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("failed to resolve path: %w", err)
	}
	absRoot, err := filepath.Abs(v.root)
	if err != nil {
		return false, fmt.Errorf("failed to resolve root: %w", err)
	}

	// Resolve symlinks where the filesystem allows it; a path that does not
	// exist yet is judged by its lexical form.
	realPath := absPath
	if resolved, err := filepath.EvalSymlinks(absPath); err == nil {
		realPath = resolved
	}
	realRoot := absRoot
	if resolved, err := filepath.EvalSymlinks(absRoot); err == nil {
		realRoot = resolved
	}

	return hasPathPrefix(realPath, realRoot) || hasPathPrefix(absPath, absRoot), nil
}

func hasPathPrefix(path, dir string) bool {
	path = filepath.Clean(path)
	dir = filepath.Clean(dir)
	if path == dir {
		return true
	}
	return strings.HasPrefix(path, dir+string(filepath.Separator))
}
