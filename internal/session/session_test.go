package session

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry() (*Registry, *int) {
	counter := 0
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r := NewRegistry(
		WithClock(func() time.Time { return fixed }),
		WithIDGenerator(func() string {
			counter++
			return fmt.Sprintf("extract_%d", counter)
		}),
	)
	return r, &counter
}

func TestRegistryAddAndGet(t *testing.T) {
	r, _ := testRegistry()

	u := r.Add("report.pdf", "/tmp/uploads/report.pdf")

	assert.Equal(t, "extract_1", u.ID)
	assert.Equal(t, "report.pdf", u.Filename)
	assert.False(t, u.Processed())

	got, ok := r.Get(u.ID)
	require.True(t, ok)
	assert.Equal(t, u, got)

	_, ok = r.Get("nope")
	assert.False(t, ok)
}

func TestRegistrySetOutput(t *testing.T) {
	r, _ := testRegistry()
	u := r.Add("report.pdf", "/tmp/uploads/report.pdf")

	require.NoError(t, r.SetOutput(u.ID, "/tmp/out/report.xlsx"))

	got, ok := r.Get(u.ID)
	require.True(t, ok)
	assert.True(t, got.Processed())
	assert.Equal(t, "/tmp/out/report.xlsx", got.OutputPath)
	assert.False(t, got.ProcessedAt.IsZero())

	assert.Error(t, r.SetOutput("missing", "/tmp/out/x.xlsx"))
}

func TestRegistryIDsAreDistinct(t *testing.T) {
	r, _ := testRegistry()

	a := r.Add("a.pdf", "/tmp/a.pdf")
	b := r.Add("b.pdf", "/tmp/b.pdf")

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, r.Len())
}

func TestRegistryDefaultIDsAreUUIDs(t *testing.T) {
	r := NewRegistry()

	u := r.Add("a.pdf", "/tmp/a.pdf")

	assert.Len(t, u.ID, 36)
}
