package harness

import (
	"fmt"

	"github.com/roach88/crease/internal/innings"
)

// AssertionError describes one expectation that did not hold.
type AssertionError struct {
	Where    string
	Field    string
	Expected any
	Actual   any
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s.%s: expected %v, got %v", e.Where, e.Field, e.Expected, e.Actual)
}

// observed is the state an Expectation is checked against.
type observed struct {
	stats      innings.Stats
	deliveries int
	summary    *innings.Summary
	errCode    string
	commentary string
}

// CheckExpectation returns one AssertionError per mismatched field.
func CheckExpectation(where string, want *Expectation, got observed) []*AssertionError {
	if want == nil {
		return nil
	}
	var errs []*AssertionError
	check := func(field string, expected, actual any) {
		if expected != actual {
			errs = append(errs, &AssertionError{Where: where, Field: field, Expected: expected, Actual: actual})
		}
	}
	checkInt := func(field string, expected *int, actual int) {
		if expected != nil {
			check(field, *expected, actual)
		}
	}
	checkBool := func(field string, expected *bool, actual bool) {
		if expected != nil {
			check(field, *expected, actual)
		}
	}
	checkString := func(field, expected, actual string) {
		if expected != "" {
			check(field, expected, actual)
		}
	}

	s := got.stats
	checkInt("runs", want.Runs, s.TotalRuns)
	checkInt("wickets", want.Wickets, s.TotalWickets)
	checkInt("legal_balls", want.LegalBalls, s.LegalBalls)
	checkInt("deliveries", want.Deliveries, got.deliveries)
	checkString("overs", want.Overs, s.Overs())
	checkString("striker", want.Striker, s.Striker)
	checkString("non_striker", want.NonStriker, s.NonStriker)
	checkString("bowler", want.Bowler, s.Bowler)
	checkInt("balls_remaining", want.BallsRemaining, s.BallsRemaining)
	checkInt("runs_needed", want.RunsNeeded, s.RunsNeeded)
	checkBool("decided", want.Decided, s.Decided)
	checkBool("complete", want.Complete, s.Complete)
	checkString("commentary", want.Commentary, got.commentary)

	if want.Result != "" || want.ScoreA != "" {
		if got.summary == nil {
			errs = append(errs, &AssertionError{Where: where, Field: "result", Expected: want.Result, Actual: "<not finalized>"})
		} else {
			checkString("result", want.Result, got.summary.Result)
			checkString("score_a", want.ScoreA, got.summary.ScoreA)
		}
	}

	// Error is checked both ways: an unexpected error is a mismatch too.
	check("error", want.Error, got.errCode)
	return errs
}
