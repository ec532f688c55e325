package archive

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/roach88/crease/internal/innings"
)

// ErrNotFound is returned by Get for an unknown summary id.
var ErrNotFound = errors.New("summary not found")

// Archive receives summaries produced by innings.Engine.Finalize.
type Archive interface {
	// Save stores s. Saving an id that already exists is a no-op.
	Save(ctx context.Context, s innings.Summary) error

	// Get returns the summary with the given id or ErrNotFound.
	Get(ctx context.Context, id string) (innings.Summary, error)

	// List returns up to limit summaries, newest first. A non-positive
	// limit returns all of them.
	List(ctx context.Context, limit int) ([]innings.Summary, error)

	// Close releases the underlying storage.
	Close() error
}

// Memory is an in-process Archive. It is safe for concurrent use.
type Memory struct {
	mu        sync.RWMutex
	summaries []innings.Summary
}

// NewMemory returns an empty in-memory archive.
func NewMemory() *Memory {
	return &Memory{}
}

// Save appends s unless a summary with the same id is already held.
func (m *Memory) Save(_ context.Context, s innings.Summary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.summaries {
		if existing.ID == s.ID {
			return nil
		}
	}
	m.summaries = append(m.summaries, s)
	return nil
}

// Get returns the summary with the given id or ErrNotFound.
func (m *Memory) Get(_ context.Context, id string) (innings.Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.summaries {
		if s.ID == id {
			return s, nil
		}
	}
	return innings.Summary{}, ErrNotFound
}

// List returns a copy of up to limit summaries, newest first. A
// non-positive limit returns all of them.
func (m *Memory) List(_ context.Context, limit int) ([]innings.Summary, error) {
	m.mu.RLock()
	out := make([]innings.Summary, len(m.summaries))
	copy(out, m.summaries)
	m.mu.RUnlock()

	sortNewestFirst(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Close is a no-op; there is nothing to release.
func (m *Memory) Close() error { return nil }

// sortNewestFirst orders by completion time descending, then id descending,
// matching the SQL ordering of Store.List.
func sortNewestFirst(ss []innings.Summary) {
	sort.SliceStable(ss, func(i, j int) bool {
		if !ss[i].CompletedAt.Equal(ss[j].CompletedAt) {
			return ss[i].CompletedAt.After(ss[j].CompletedAt)
		}
		return ss[i].ID > ss[j].ID
	})
}

var (
	_ Archive = (*Memory)(nil)
	_ Archive = (*Store)(nil)
)
