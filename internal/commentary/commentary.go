// Package commentary produces short advisory commentary on a live innings.
//
// Commentary is advisory only. Nothing it returns feeds back into match
// state, and a failing or slow provider degrades to FallbackMessage
// instead of surfacing an error to the scorer.
package commentary

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/crease/internal/innings"
)

// FallbackMessage is returned whenever the provider fails.
const FallbackMessage = "Keep your eye on the ball, focus on the yorkers!"

// Snapshot is the match state sent to the provider.
type Snapshot struct {
	Runs            int     `json:"runs"`
	Wickets         int     `json:"wickets"`
	Overs           string  `json:"overs"`
	Striker         string  `json:"striker"`
	Bowler          string  `json:"bowler"`
	Target          *int    `json:"target,omitempty"`
	RequiredRunRate float64 `json:"requiredRunRate,omitempty"`
}

// SnapshotOf captures the advisory view of s.
func SnapshotOf(s innings.Stats) Snapshot {
	snap := Snapshot{
		Runs:    s.TotalRuns,
		Wickets: s.TotalWickets,
		Overs:   s.Overs(),
		Striker: s.Striker,
		Bowler:  s.Bowler,
	}
	if s.Chasing {
		t := s.Target
		snap.Target = &t
		if s.RequiredRateDefined {
			snap.RequiredRunRate = s.RequiredRunRate
		}
	}
	return snap
}

// Advisor turns a snapshot into free-text commentary.
type Advisor interface {
	Advise(ctx context.Context, snap Snapshot) (string, error)
}

// AdvisorFunc adapts a function to the Advisor interface.
type AdvisorFunc func(ctx context.Context, snap Snapshot) (string, error)

// Advise calls f.
func (f AdvisorFunc) Advise(ctx context.Context, snap Snapshot) (string, error) {
	return f(ctx, snap)
}

// Static always returns the same message. Used when no provider is
// configured.
type Static struct {
	Message string
}

// Advise returns the configured message, or a stock line when empty.
func (s Static) Advise(context.Context, Snapshot) (string, error) {
	if strings.TrimSpace(s.Message) == "" {
		return "Keep the pressure on, skip!", nil
	}
	return s.Message, nil
}

// Prompt renders the instruction sent to a text model.
func Prompt(snap Snapshot) string {
	var b strings.Builder
	b.WriteString("Act as a gully cricket analyst. ")
	fmt.Fprintf(&b, "Score %d/%d after %s overs. ", snap.Runs, snap.Wickets, snap.Overs)
	if snap.Striker != "" {
		fmt.Fprintf(&b, "%s is on strike against %s. ", snap.Striker, snap.Bowler)
	}
	if snap.Target != nil {
		fmt.Fprintf(&b, "Chasing %d at a required rate of %.2f. ", *snap.Target, snap.RequiredRunRate)
	}
	b.WriteString("In two short sentences, say who has the upper hand and give the bowling side one tip.")
	return b.String()
}
