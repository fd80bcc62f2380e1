package github

import (
	"context"
	"fmt"
	"sync"

	"github.com/AndreJorgeSenaiBA/Repox/internal/tree"
)

// InMem is an in-memory tree.Lister for unit tests.
type InMem struct {
	mu       sync.Mutex
	dirs     map[string][]tree.Entry
	failures map[string]error
	calls    []string
}

// NewInMem creates an InMem whose root directory is empty.
func NewInMem() *InMem {
	return &InMem{
		dirs:     map[string][]tree.Entry{"": {}},
		failures: make(map[string]error),
	}
}

// SetDir seeds the listing for a directory path.
func (m *InMem) SetDir(path string, entries ...tree.Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[path] = entries
}

// FailWith makes every listing of path return err.
func (m *InMem) FailWith(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[path] = err
}

// Calls returns the listed paths in call order.
func (m *InMem) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// List returns the seeded entries for path. Unseeded paths answer 404.
func (m *InMem) List(_ context.Context, path string) ([]tree.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, path)

	if err, ok := m.failures[path]; ok {
		return nil, err
	}
	entries, ok := m.dirs[path]
	if !ok {
		return nil, &tree.RemoteListingError{
			Path:       path,
			StatusCode: 404,
			Status:     "Not Found",
			Message:    fmt.Sprintf("no directory %q", path),
		}
	}
	out := make([]tree.Entry, len(entries))
	copy(out, entries)
	return out, nil
}
