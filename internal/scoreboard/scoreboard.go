// Package scoreboard renders the live state of an innings as text.
package scoreboard

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/roach88/crease/internal/innings"
	"github.com/roach88/crease/internal/ledger"
)

// Status is the lifecycle label shown on the board.
type Status string

const (
	StatusLive     Status = "LIVE"
	StatusDecided  Status = "DECIDED"
	StatusFinished Status = "FINISHED"
)

// View is everything the board shows, detached from the engine.
type View struct {
	BattingTeam string
	BowlingTeam string
	Stats       innings.Stats
	ThisOver    []ledger.Delivery
	Status      Status
	Result      string
}

// FromEngine captures a View of e.
func FromEngine(e *innings.Engine) View {
	cfg := e.Config()
	v := View{
		BattingTeam: cfg.BattingTeamName(),
		BowlingTeam: cfg.BowlingTeamName(),
		Stats:       e.Stats(),
		ThisOver:    e.ThisOver(),
		Status:      StatusLive,
	}
	switch {
	case v.Stats.Complete:
		v.Status = StatusFinished
		if sum, ok := e.Summary(); ok {
			v.Result = sum.Result
		}
	case v.Stats.Decided:
		v.Status = StatusDecided
	}
	return v
}

// Render writes the board. Numbers are formatted for English.
func Render(w io.Writer, v View) error {
	p := message.NewPrinter(language.English)
	s := v.Stats

	var b strings.Builder
	p.Fprintf(&b, "%s %d/%d (%s ov) v %s\n", v.BattingTeam, s.TotalRuns, s.TotalWickets, s.Overs(), v.BowlingTeam)
	p.Fprintf(&b, "CRR %.2f", s.CurrentRunRate)
	if s.Chasing {
		p.Fprintf(&b, "  Target %d", s.Target)
		if s.RunsNeeded > 0 {
			p.Fprintf(&b, "  Need %d from %d", s.RunsNeeded, s.BallsRemaining)
		}
		if s.RequiredRateDefined && s.RunsNeeded > 0 {
			p.Fprintf(&b, "  RRR %.2f", s.RequiredRunRate)
		}
	}
	p.Fprintf(&b, "  Extras %d\n", s.Extras)
	fmt.Fprintf(&b, "Batting: %s*  %s\n", Slot(s.Striker), Slot(s.NonStriker))
	fmt.Fprintf(&b, "Bowling: %s", s.Bowler)
	if s.NeedsNewBowler {
		b.WriteString("  (over complete, change bowler)")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "This over: %s\n", OverString(v.ThisOver))

	switch v.Status {
	case StatusFinished:
		fmt.Fprintf(&b, "Status: %s - %s\n", v.Status, v.Result)
	case StatusDecided:
		fmt.Fprintf(&b, "Status: %s (finish to save)\n", v.Status)
	default:
		fmt.Fprintf(&b, "Status: %s\n", v.Status)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Slot shows a crease position, "-" when nobody is in it.
func Slot(id string) string {
	if id == "" {
		return "-"
	}
	return id
}

// BallLabel is the short form of one delivery: "W", "wd", "nb", "4nb" etc.
func BallLabel(d ledger.Delivery) string {
	off := d.RunsOffBat()
	var label string
	switch {
	case d.Wicket:
		label = "W"
	case d.Wide:
		label = "wd"
	case d.NoBall:
		label = "nb"
	default:
		return fmt.Sprintf("%d", d.Runs)
	}
	if off > 0 {
		return fmt.Sprintf("%d%s", off, label)
	}
	return label
}

// OverString joins the labels of ds, or "-" when empty.
func OverString(ds []ledger.Delivery) string {
	if len(ds) == 0 {
		return "-"
	}
	labels := make([]string, len(ds))
	for i, d := range ds {
		labels[i] = BallLabel(d)
	}
	return strings.Join(labels, " ")
}
