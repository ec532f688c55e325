package archive

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/roach88/crease/internal/innings"
)

// createTestStore opens a fresh archive in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "archive.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func createTestSummary(id string, minute int) innings.Summary {
	at := time.Date(2026, 10, 18, 15, minute, 0, 0, time.UTC)
	return innings.Summary{
		ID:          id,
		TeamAName:   "Tigers",
		TeamBName:   "Lions",
		ScoreA:      "51/2 (4.3)",
		ScoreB:      "Target: 50",
		Result:      "Tigers won by 8 wickets",
		Timestamp:   at.Format(innings.TimestampLayout),
		CompletedAt: at,
	}
}
