package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/crease/internal/innings"
)

func intp(v int) *int    { return &v }
func boolp(v bool) *bool { return &v }

func TestCheckExpectation_NilMatchesAnything(t *testing.T) {
	assert.Empty(t, CheckExpectation("x", nil, observed{errCode: "LOCKED"}))
}

func TestCheckExpectation_SubsetMatch(t *testing.T) {
	got := observed{
		stats: innings.Stats{
			TotalRuns:    12,
			TotalWickets: 1,
			LegalBalls:   7,
			CurrentOver:  1,
			BallInOver:   1,
			Striker:      "s3",
			Decided:      true,
		},
		deliveries: 8,
	}
	want := &Expectation{Runs: intp(12), Overs: "1.1", Striker: "s3", Decided: boolp(true)}
	assert.Empty(t, CheckExpectation("flow[0].expect", want, got))

	want = &Expectation{Runs: intp(11), Deliveries: intp(7), Complete: boolp(true)}
	errs := CheckExpectation("flow[0].expect", want, got)
	require.Len(t, errs, 3)
	assert.Equal(t, "flow[0].expect.runs: expected 11, got 12", errs[0].Error())
	assert.Equal(t, "deliveries", errs[1].Field)
	assert.Equal(t, "complete", errs[2].Field)
}

func TestCheckExpectation_ErrorBothWays(t *testing.T) {
	errs := CheckExpectation("e", &Expectation{Error: "LOCKED"}, observed{})
	require.Len(t, errs, 1)
	assert.Equal(t, "error", errs[0].Field)

	errs = CheckExpectation("e", &Expectation{Runs: intp(0)}, observed{errCode: "NOT_FOUND"})
	require.Len(t, errs, 1)
	assert.Equal(t, "NOT_FOUND", errs[0].Actual)
}

func TestCheckExpectation_ResultNeedsSummary(t *testing.T) {
	errs := CheckExpectation("e", &Expectation{Result: "Innings completed"}, observed{})
	require.Len(t, errs, 1)
	assert.Equal(t, "<not finalized>", errs[0].Actual)

	sum := &innings.Summary{Result: "Innings completed", ScoreA: "6/0 (0.1)"}
	assert.Empty(t, CheckExpectation("e", &Expectation{Result: "Innings completed", ScoreA: "6/0 (0.1)"}, observed{summary: sum}))
}
