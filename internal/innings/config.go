package innings

import (
	"fmt"
	"strings"
)

const (
	// MinOvers and MaxOvers bound the overs limit of an innings.
	MinOvers = 1
	MaxOvers = 20

	// BallsPerOver is the number of legal deliveries in an over.
	BallsPerOver = 6

	// FullSideWickets ends an innings of an eleven-player side.
	FullSideWickets = 10
)

// Team identifies one side.
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Config is the match setup consumed when an innings starts.
type Config struct {
	BattingTeam Team `json:"batting_team"`
	BowlingTeam Team `json:"bowling_team"`

	// Target is set when this innings is a chase.
	Target *int `json:"target,omitempty"`

	OversLimit int `json:"overs_limit"`

	// BattingLineup is the batting order. Openers may or may not appear in
	// it; batters already at the crease are skipped when a wicket falls.
	BattingLineup []string `json:"batting_lineup,omitempty"`

	OpeningStriker    string `json:"opening_striker"`
	OpeningNonStriker string `json:"opening_non_striker"`
	OpeningBowler     string `json:"opening_bowler"`
}

// Validate checks the config before an innings can start.
func (c Config) Validate() error {
	var problems []string
	if c.BattingTeam.ID == "" {
		problems = append(problems, "batting team id is required")
	}
	if c.BowlingTeam.ID == "" {
		problems = append(problems, "bowling team id is required")
	}
	if c.BattingTeam.ID != "" && c.BattingTeam.ID == c.BowlingTeam.ID {
		problems = append(problems, "batting and bowling team must differ")
	}
	if c.OversLimit < MinOvers || c.OversLimit > MaxOvers {
		problems = append(problems, fmt.Sprintf("overs limit %d outside %d-%d", c.OversLimit, MinOvers, MaxOvers))
	}
	if c.Target != nil && *c.Target < 1 {
		problems = append(problems, fmt.Sprintf("target %d must be positive", *c.Target))
	}
	if c.OpeningStriker == "" || c.OpeningNonStriker == "" {
		problems = append(problems, "both opening batters are required")
	} else if c.OpeningStriker == c.OpeningNonStriker {
		problems = append(problems, "opening striker and non-striker must differ")
	}
	if c.OpeningBowler == "" {
		problems = append(problems, "opening bowler is required")
	}
	seen := make(map[string]bool, len(c.BattingLineup))
	for _, id := range c.BattingLineup {
		if id == "" {
			problems = append(problems, "batting lineup contains an empty id")
			continue
		}
		if seen[id] {
			problems = append(problems, fmt.Sprintf("batter %q appears twice in lineup", id))
		}
		seen[id] = true
	}

	if len(problems) > 0 {
		return &Error{Code: ErrCodeInvalidConfig, Message: strings.Join(problems, "; ")}
	}
	return nil
}

// Chasing reports whether the innings has a target.
func (c Config) Chasing() bool {
	return c.Target != nil
}

// MaxBalls is the number of legal deliveries allowed in the innings.
func (c Config) MaxBalls() int {
	return c.OversLimit * BallsPerOver
}

// BattingTeamName falls back to the team id when no name is set.
func (c Config) BattingTeamName() string {
	if c.BattingTeam.Name != "" {
		return c.BattingTeam.Name
	}
	return c.BattingTeam.ID
}

// BowlingTeamName falls back to the team id when no name is set.
func (c Config) BowlingTeamName() string {
	if c.BowlingTeam.Name != "" {
		return c.BowlingTeam.Name
	}
	return c.BowlingTeam.ID
}

// AllOutWickets is the number of wickets that ends the innings. It is
// always a full side's 10; a short lineup is padded with placeholders.
func (c Config) AllOutWickets() int {
	return FullSideWickets
}
