package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/crease/internal/ledger"
	"github.com/roach88/crease/internal/setup"
)

// Scenario is one scripted innings.
type Scenario struct {
	// Name identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Setup is the match setup, in the same shape as a setup file.
	Setup setup.File `yaml:"setup"`

	// Clock is the RFC 3339 completion time; defaults to DefaultClock.
	Clock string `yaml:"clock,omitempty"`

	Flow []FlowStep `yaml:"flow"`

	// Expect is checked after the last flow step.
	Expect *Expectation `yaml:"expect,omitempty"`
}

// FlowStep is one scoring action.
type FlowStep struct {
	Ball     *int         `yaml:"ball,omitempty"`
	Extra    string       `yaml:"extra,omitempty"`
	Wicket   string       `yaml:"wicket,omitempty"`
	Undo     bool         `yaml:"undo,omitempty"`
	Amend    *AmendStep   `yaml:"amend,omitempty"`
	Delete   int          `yaml:"delete,omitempty"`
	Bowler   string       `yaml:"bowler,omitempty"`
	Finalize bool         `yaml:"finalize,omitempty"`
	Advise   bool         `yaml:"advise,omitempty"`
	Expect   *Expectation `yaml:"expect,omitempty"`
}

// AmendStep patches the delivery at a 1-based log position.
type AmendStep struct {
	Ball         int `yaml:"ball"`
	ledger.Patch `yaml:",inline"`
}

// Expectation is a subset match: only fields that are set are checked.
type Expectation struct {
	Runs           *int   `yaml:"runs,omitempty"`
	Wickets        *int   `yaml:"wickets,omitempty"`
	LegalBalls     *int   `yaml:"legal_balls,omitempty"`
	Deliveries     *int   `yaml:"deliveries,omitempty"`
	Overs          string `yaml:"overs,omitempty"`
	Striker        string `yaml:"striker,omitempty"`
	NonStriker     string `yaml:"non_striker,omitempty"`
	Bowler         string `yaml:"bowler,omitempty"`
	BallsRemaining *int   `yaml:"balls_remaining,omitempty"`
	RunsNeeded     *int   `yaml:"runs_needed,omitempty"`
	Decided        *bool  `yaml:"decided,omitempty"`
	Complete       *bool  `yaml:"complete,omitempty"`
	Result         string `yaml:"result,omitempty"`
	ScoreA         string `yaml:"score_a,omitempty"`
	Commentary     string `yaml:"commentary,omitempty"`

	// Error is the expected error code (LOCKED, NOT_FOUND, INVALID_DELIVERY).
	Error string `yaml:"error,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Unknown fields are rejected so typos surface as load errors.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Flow) == 0 {
		return fmt.Errorf("flow list is required and must be non-empty")
	}
	for i, step := range s.Flow {
		if n := step.actionCount(); n != 1 {
			return fmt.Errorf("flow[%d]: exactly one action is required, found %d", i, n)
		}
		if step.Extra != "" && step.Ball == nil {
			return fmt.Errorf("flow[%d]: extra requires ball", i)
		}
		if step.Amend != nil && step.Amend.Ball < 1 {
			return fmt.Errorf("flow[%d]: amend.ball must be a 1-based position", i)
		}
		if step.Delete < 0 {
			return fmt.Errorf("flow[%d]: delete must be a 1-based position", i)
		}
	}
	return nil
}

// actionCount counts the actions set on a step. A wicket step may also
// set ball (runs scored on the dismissal ball), which counts once.
func (f FlowStep) actionCount() int {
	n := 0
	if f.Ball != nil || f.Wicket != "" {
		n++
	}
	for _, set := range []bool{f.Undo, f.Amend != nil, f.Delete > 0, f.Bowler != "", f.Finalize, f.Advise} {
		if set {
			n++
		}
	}
	return n
}
