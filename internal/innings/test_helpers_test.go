package innings

import (
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 18, 15, 4, 0, 0, time.UTC)

// seqIDs mints "b1", "b2", ... without a fixed upper bound.
type seqIDs struct{ n int }

func (g *seqIDs) Generate() string {
	g.n++
	return fmt.Sprintf("b%d", g.n)
}

func target(n int) *int { return &n }

func testConfig() Config {
	return Config{
		BattingTeam:       Team{ID: "tigers", Name: "Tigers"},
		BowlingTeam:       Team{ID: "lions", Name: "Lions"},
		OversLimit:        5,
		OpeningStriker:    "s1",
		OpeningNonStriker: "s2",
		OpeningBowler:     "bw1",
		BattingLineup:     []string{"s1", "s2", "s3", "s4", "s5", "s6", "s7", "s8", "s9", "s10", "s11"},
	}
}

func newTestEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	e, err := New(cfg,
		WithIDGenerator(&seqIDs{}),
		WithClock(func() time.Time { return fixedNow }),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)
	return e
}

func record(t *testing.T, e *Engine, runs int, extra ExtraKind) {
	t.Helper()
	_, err := e.RecordDelivery(runs, extra)
	require.NoError(t, err)
}
