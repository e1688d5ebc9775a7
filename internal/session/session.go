// Package session tracks uploaded files and their produced outputs for one
// server instance. The registry is an explicit value owned by its server
// (never a process-wide map) and takes its clock and id generator by
// injection so tests stay deterministic.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Upload is one tracked file. OutputPath is empty until processing stores a
// result for it.
type Upload struct {
	ID          string
	Filename    string
	Path        string
	OutputPath  string
	UploadedAt  time.Time
	ProcessedAt time.Time
}

// Processed reports whether an output has been recorded for the upload.
func (u Upload) Processed() bool {
	return u.OutputPath != ""
}

// Registry is a concurrency-safe upload/output store scoped to one server.
type Registry struct {
	mu      sync.Mutex
	now     func() time.Time
	newID   func() string
	uploads map[string]Upload
}

// Option configures a Registry.
type Option func(*Registry)

// WithClock injects the time source.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// WithIDGenerator injects the upload id source.
func WithIDGenerator(newID func() string) Option {
	return func(r *Registry) { r.newID = newID }
}

// NewRegistry returns an empty registry. By default ids are UUIDs and the
// clock is time.Now.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		now:     time.Now,
		newID:   uuid.NewString,
		uploads: make(map[string]Upload),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add registers an uploaded file and returns its tracking record.
func (r *Registry) Add(filename, path string) Upload {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := Upload{
		ID:         r.newID(),
		Filename:   filename,
		Path:       path,
		UploadedAt: r.now(),
	}
	r.uploads[u.ID] = u
	return u
}

// Get returns the upload for the given id.
func (r *Registry) Get(id string) (Upload, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.uploads[id]
	return u, ok
}

// SetOutput records the produced output file for an upload.
func (r *Registry) SetOutput(id, outputPath string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.uploads[id]
	if !ok {
		return fmt.Errorf("unknown upload id: %s", id)
	}
	u.OutputPath = outputPath
	u.ProcessedAt = r.now()
	r.uploads[id] = u
	return nil
}

// Len returns the number of tracked uploads.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.uploads)
}
