package innings

import (
	"fmt"

	"github.com/roach88/crease/internal/ledger"
)

// Stats is the full set of derived figures at one moment.
type Stats struct {
	TotalRuns    int `json:"total_runs"`
	TotalWickets int `json:"total_wickets"`
	LegalBalls   int `json:"legal_balls"`
	Extras       int `json:"extras"`

	CurrentOver int `json:"current_over"`
	BallInOver  int `json:"ball_in_over"`

	// BallsRemaining is floored at 0.
	BallsRemaining int     `json:"balls_remaining"`
	CurrentRunRate float64 `json:"current_run_rate"`

	Chasing    bool `json:"chasing"`
	Target     int  `json:"target,omitempty"`
	RunsNeeded int  `json:"runs_needed,omitempty"`

	// RequiredRunRate is meaningful only when RequiredRateDefined is true.
	RequiredRunRate     float64 `json:"required_run_rate,omitempty"`
	RequiredRateDefined bool    `json:"required_rate_defined"`

	Striker    string `json:"striker"`
	NonStriker string `json:"non_striker"`
	Bowler     string `json:"bowler"`

	Decided        bool `json:"decided"`
	Complete       bool `json:"complete"`
	NeedsNewBowler bool `json:"needs_new_bowler"`
}

// Overs formats the position as "over.ball".
func (s Stats) Overs() string {
	return fmt.Sprintf("%d.%d", s.CurrentOver, s.BallInOver)
}

// Scoreline formats "runs/wickets (over.ball)".
func (s Stats) Scoreline() string {
	return fmt.Sprintf("%d/%d (%s)", s.TotalRuns, s.TotalWickets, s.Overs())
}

// totals are the aggregates folded over the log.
type totals struct {
	runs    int
	wickets int
	legal   int
	extras  int
}

func tally(ds []ledger.Delivery) totals {
	var t totals
	for _, d := range ds {
		t.runs += d.Runs
		if d.Wicket {
			t.wickets++
		}
		if d.Legal() {
			t.legal++
		} else {
			t.extras++
		}
	}
	return t
}

// decided is the completion predicate over raw aggregates.
func decided(cfg Config, t totals, complete bool) bool {
	switch {
	case complete:
		return true
	case cfg.Chasing() && t.runs >= *cfg.Target:
		return true
	case cfg.MaxBalls()-t.legal <= 0:
		return true
	case t.wickets >= cfg.AllOutWickets():
		return true
	}
	return false
}

func runRate(runs, balls int) float64 {
	if balls <= 0 {
		return 0
	}
	return float64(runs) / (float64(balls) / BallsPerOver)
}
