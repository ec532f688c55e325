package innings

import (
	"fmt"
	"time"
)

// TimestampLayout renders the completion time as a US-style local date
// followed by a 2-digit hour and minute.
const TimestampLayout = "1/2/2006 03:04 PM"

// ResultInningsCompleted is the result sentence of an innings with no target.
const ResultInningsCompleted = "Innings completed"

// Summary is the finalized record handed to the archive. It is produced
// once by Finalize and never changed.
type Summary struct {
	ID          string    `json:"id"`
	TeamAName   string    `json:"teamAName"`
	TeamBName   string    `json:"teamBName"`
	ScoreA      string    `json:"scoreA"`
	ScoreB      string    `json:"scoreB"`
	Result      string    `json:"result"`
	Timestamp   string    `json:"timestamp"`
	CompletedAt time.Time `json:"completedAt"`
}

func buildSummary(id string, cfg Config, s Stats, at time.Time) Summary {
	scoreB := "First Innings"
	if s.Chasing {
		scoreB = fmt.Sprintf("Target: %d", s.Target)
	}
	return Summary{
		ID:          id,
		TeamAName:   cfg.BattingTeamName(),
		TeamBName:   cfg.BowlingTeamName(),
		ScoreA:      s.Scoreline(),
		ScoreB:      scoreB,
		Result:      resultSentence(cfg, s),
		Timestamp:   at.Format(TimestampLayout),
		CompletedAt: at,
	}
}

func resultSentence(cfg Config, s Stats) string {
	if !s.Chasing {
		return ResultInningsCompleted
	}
	if s.TotalRuns >= s.Target {
		margin := cfg.AllOutWickets() - s.TotalWickets
		return fmt.Sprintf("%s won by %d %s", cfg.BattingTeamName(), margin, plural(margin, "wicket"))
	}
	margin := s.Target - s.TotalRuns
	return fmt.Sprintf("%s won by %d %s", cfg.BowlingTeamName(), margin, plural(margin, "run"))
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
