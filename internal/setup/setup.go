// Package setup loads and validates the match setup file.
//
// A setup file is YAML. It is decoded strictly (unknown keys are errors),
// normalized, and then checked against the embedded CUE #Setup schema
// before being turned into an innings.Config.
package setup

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/roach88/crease/internal/innings"
)

//go:embed setup.cue
var schemaCUE string

// Team is one side in the setup file.
type Team struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
}

// File mirrors the setup YAML. JSON tags drive the CUE encoding.
type File struct {
	BattingTeam       Team     `yaml:"batting_team" json:"batting_team"`
	BowlingTeam       Team     `yaml:"bowling_team" json:"bowling_team"`
	Overs             int      `yaml:"overs" json:"overs"`
	Target            *int     `yaml:"target,omitempty" json:"target,omitempty"`
	BattingLineup     []string `yaml:"batting_lineup,omitempty" json:"batting_lineup,omitempty"`
	OpeningStriker    string   `yaml:"opening_striker" json:"opening_striker"`
	OpeningNonStriker string   `yaml:"opening_non_striker" json:"opening_non_striker"`
	OpeningBowler     string   `yaml:"opening_bowler" json:"opening_bowler"`
	IsComplete        *bool    `yaml:"is_complete,omitempty" json:"is_complete,omitempty"`
}

// ValidationError is one schema violation.
type ValidationError struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// ValidationErrors collects every violation found in a file.
type ValidationErrors []*ValidationError

func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return "invalid setup: " + strings.Join(msgs, "; ")
}

// Load reads, validates and converts the setup file at path.
func Load(path string) (innings.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return innings.Config{}, fmt.Errorf("read setup file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return innings.Config{}, err
	}
	if err := Validate(f); err != nil {
		return innings.Config{}, err
	}
	return f.Config(), nil
}

// Parse decodes and normalizes setup YAML without validating it.
func Parse(data []byte) (File, error) {
	var f File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return File{}, fmt.Errorf("parse setup YAML: %w", err)
	}
	return Normalize(f), nil
}

// Normalize trims every id and name and puts them in Unicode NFC, so
// the same player typed on two devices compares equal.
func Normalize(f File) File {
	clean := func(s string) string {
		return norm.NFC.String(strings.TrimSpace(s))
	}
	f.BattingTeam = Team{ID: clean(f.BattingTeam.ID), Name: clean(f.BattingTeam.Name)}
	f.BowlingTeam = Team{ID: clean(f.BowlingTeam.ID), Name: clean(f.BowlingTeam.Name)}
	f.OpeningStriker = clean(f.OpeningStriker)
	f.OpeningNonStriker = clean(f.OpeningNonStriker)
	f.OpeningBowler = clean(f.OpeningBowler)
	if f.BattingLineup != nil {
		lineup := make([]string, len(f.BattingLineup))
		for i, id := range f.BattingLineup {
			lineup[i] = clean(id)
		}
		f.BattingLineup = lineup
	}
	return f
}

// Validate checks f against the #Setup schema and the innings rules the
// schema cannot express (such as a duplicated lineup entry).
// It returns ValidationErrors listing every problem.
func Validate(f File) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("setup.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile setup schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Setup"))

	value := def.Unify(ctx.Encode(f))
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return toValidationErrors(err)
	}

	if err := f.Config().Validate(); err != nil {
		return ValidationErrors{{Message: err.Error()}}
	}
	return nil
}

// Config converts a validated file into an innings config.
func (f File) Config() innings.Config {
	cfg := innings.Config{
		BattingTeam:       innings.Team{ID: f.BattingTeam.ID, Name: f.BattingTeam.Name},
		BowlingTeam:       innings.Team{ID: f.BowlingTeam.ID, Name: f.BowlingTeam.Name},
		OversLimit:        f.Overs,
		OpeningStriker:    f.OpeningStriker,
		OpeningNonStriker: f.OpeningNonStriker,
		OpeningBowler:     f.OpeningBowler,
	}
	if f.Target != nil {
		t := *f.Target
		cfg.Target = &t
	}
	if len(f.BattingLineup) > 0 {
		cfg.BattingLineup = append([]string(nil), f.BattingLineup...)
	}
	return cfg
}

func toValidationErrors(err error) error {
	var out ValidationErrors
	for _, e := range cueerrors.Errors(err) {
		format, args := e.Msg()
		out = append(out, &ValidationError{
			Path:    strings.Join(e.Path(), "."),
			Message: fmt.Sprintf(format, args...),
		})
	}
	if len(out) == 0 {
		return ValidationErrors{{Message: err.Error()}}
	}
	return out
}
