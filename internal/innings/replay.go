package innings

import (
	"fmt"

	"github.com/roach88/crease/internal/ledger"
)

// Crease is the state of the batting side derived from a replay of the log.
type Crease struct {
	Striker    string
	NonStriker string

	// Batted lists every batter who has come to the crease, in order.
	Batted []string

	// Dismissed lists dismissed batters in the order they fell.
	Dismissed []string
}

// Replay derives the crease by applying every delivery in ds, in order,
// to the opening pair.
//
// A wicket that decides the innings leaves the dismissed batter's slot
// empty.
//
// Replay is pure: the same config and log always yield the same crease.
// The striker recorded on each delivery is not consulted; after a
// correction the replayed striker is authoritative.
func Replay(cfg Config, ds []ledger.Delivery) Crease {
	c := Crease{
		Striker:    cfg.OpeningStriker,
		NonStriker: cfg.OpeningNonStriker,
		Batted:     []string{cfg.OpeningStriker, cfg.OpeningNonStriker},
		Dismissed:  []string{},
	}
	lineup := newLineupCursor(cfg)

	var t totals
	for _, d := range ds {
		facing := c.Striker
		t.runs += d.Runs

		if d.RunsOffBat()%2 == 1 {
			c.Striker, c.NonStriker = c.NonStriker, c.Striker
		}
		if d.Legal() {
			t.legal++
			if t.legal%BallsPerOver == 0 {
				c.Striker, c.NonStriker = c.NonStriker, c.Striker
			}
		}
		if !d.Wicket {
			continue
		}
		t.wickets++
		c.Dismissed = append(c.Dismissed, facing)

		// No one comes in after a wicket that decides the innings.
		next := ""
		if !decided(cfg, t, false) {
			next = lineup.next(c.Batted)
			c.Batted = append(c.Batted, next)
		}
		if c.Striker == facing {
			c.Striker = next
		} else {
			c.NonStriker = next
		}
	}
	return c
}

// lineupCursor walks the batting order, skipping anyone already batted.
type lineupCursor struct {
	teamID string
	order  []string
	pos    int
}

func newLineupCursor(cfg Config) *lineupCursor {
	return &lineupCursor{teamID: cfg.BattingTeam.ID, order: cfg.BattingLineup}
}

func (lc *lineupCursor) next(batted []string) string {
	for lc.pos < len(lc.order) {
		id := lc.order[lc.pos]
		lc.pos++
		if !contains(batted, id) {
			return id
		}
	}
	// No lineup, or it ran out: a placeholder named by batting position.
	return fmt.Sprintf("%s#%d", lc.teamID, len(batted)+1)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
