package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/crease/internal/innings"
	"github.com/roach88/crease/internal/scoreboard"
)

// TraceEvent records one flow step and the state it left behind.
type TraceEvent struct {
	Step       int    `json:"step"`
	Action     string `json:"action"`
	Outcome    string `json:"outcome"`
	Score      string `json:"score"`
	Striker    string `json:"striker"`
	NonStriker string `json:"non_striker"`
	Bowler     string `json:"bowler"`
}

// String renders the event as one trace line. An empty crease slot shows
// as "-".
func (e TraceEvent) String() string {
	return fmt.Sprintf("%d. %s => %s | %s | %s* %s | %s",
		e.Step, e.Action, e.Outcome, e.Score, scoreboard.Slot(e.Striker), scoreboard.Slot(e.NonStriker), e.Bowler)
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expectation matched.
	Pass bool `json:"pass"`

	Trace []TraceEvent `json:"trace"`

	// Errors holds expectation mismatches. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Summary is set when the flow finalized the innings.
	Summary *innings.Summary `json:"summary,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Golden renders the trace for golden-file comparison.
func (r *Result) Golden(name string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario: %s\n", name)
	for _, ev := range r.Trace {
		b.WriteString(ev.String())
		b.WriteString("\n")
	}
	if r.Summary != nil {
		fmt.Fprintf(&b, "summary: %s %s v %s, %s | %s | %s\n",
			r.Summary.TeamAName, r.Summary.ScoreA, r.Summary.TeamBName, r.Summary.ScoreB,
			r.Summary.Result, r.Summary.Timestamp)
	}
	return []byte(b.String())
}
