package innings

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/roach88/crease/internal/ledger"
)

// ExtraKind classifies what happened on a delivery besides runs off the bat.
type ExtraKind string

const (
	ExtraNone   ExtraKind = "none"
	ExtraWide   ExtraKind = "wide"
	ExtraNoBall ExtraKind = "noball"
	ExtraWicket ExtraKind = "wicket"
)

// Valid reports whether k is a known extra kind.
func (k ExtraKind) Valid() bool {
	switch k {
	case ExtraNone, ExtraWide, ExtraNoBall, ExtraWicket:
		return true
	}
	return false
}

// Engine scores one innings.
//
// Engine is not safe for concurrent use. All methods run synchronously
// and return once derived state is consistent with the log.
type Engine struct {
	cfg    Config
	ledger *ledger.Ledger
	ids    ledger.IDGenerator
	now    func() time.Time
	logger *slog.Logger

	bowler string
	crease Crease

	complete bool
	summary  Summary
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithClock sets the wall clock used for the completion timestamp.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithIDGenerator sets the generator for delivery and summary ids.
func WithIDGenerator(g ledger.IDGenerator) Option {
	return func(e *Engine) {
		if g != nil {
			e.ids = g
		}
	}
}

// New starts an innings from cfg.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:    cfg,
		ids:    ledger.UUIDv7Generator{},
		now:    time.Now,
		logger: slog.Default(),
		bowler: cfg.OpeningBowler,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.ledger = ledger.New(ledger.WithIDGenerator(e.ids))
	e.crease = Replay(cfg, nil)

	e.logger.Debug("innings started",
		"batting", cfg.BattingTeam.ID,
		"bowling", cfg.BowlingTeam.ID,
		"overs", cfg.OversLimit,
		"chasing", cfg.Chasing())
	return e, nil
}

// Config returns the setup the innings was started with.
func (e *Engine) Config() Config {
	return e.cfg
}

// RecordDelivery scores one ball. runsOffBat excludes the penalty run,
// which is added for a wide or no-ball. A wicket is recorded as Bowled;
// use RecordWicket for another kind.
func (e *Engine) RecordDelivery(runsOffBat int, extra ExtraKind) (ledger.Delivery, error) {
	kind := ledger.WicketKind("")
	if extra == ExtraWicket {
		kind = ledger.WicketBowled
	}
	return e.record(runsOffBat, extra, kind)
}

// RecordWicket scores a wicket of the given kind. An empty kind means Bowled.
func (e *Engine) RecordWicket(runsOffBat int, kind ledger.WicketKind) (ledger.Delivery, error) {
	if kind == "" {
		kind = ledger.WicketBowled
	}
	if !kind.Valid() {
		return ledger.Delivery{}, &Error{Code: ErrCodeInvalidDelivery, Message: fmt.Sprintf("unknown wicket kind %q", kind)}
	}
	return e.record(runsOffBat, ExtraWicket, kind)
}

func (e *Engine) record(runsOffBat int, extra ExtraKind, kind ledger.WicketKind) (ledger.Delivery, error) {
	if e.complete {
		e.logger.Warn("delivery rejected", "reason", "locked")
		return ledger.Delivery{}, lockedError("record delivery")
	}
	if extra == "" {
		extra = ExtraNone
	}
	if !extra.Valid() {
		return ledger.Delivery{}, &Error{Code: ErrCodeInvalidDelivery, Message: fmt.Sprintf("unknown extra %q", extra)}
	}
	if runsOffBat < 0 {
		return ledger.Delivery{}, &Error{Code: ErrCodeInvalidDelivery, Message: fmt.Sprintf("negative runs %d", runsOffBat)}
	}

	d := ledger.Delivery{
		Runs:       runsOffBat,
		Wide:       extra == ExtraWide,
		NoBall:     extra == ExtraNoBall,
		Wicket:     extra == ExtraWicket,
		WicketKind: kind,
		StrikerID:  e.crease.Striker,
		BowlerID:   e.bowler,
	}
	d.Runs += d.Penalty()

	stored, err := e.ledger.Append(d)
	if err != nil {
		return ledger.Delivery{}, fmt.Errorf("record delivery: %w", err)
	}
	e.recompute()

	e.logger.Debug("delivery recorded",
		"id", stored.ID,
		"position", fmt.Sprintf("%d.%d", stored.Over, stored.BallInOver+1),
		"runs", stored.Runs,
		"extra", string(extra),
		"striker", stored.StrikerID)
	return stored, nil
}

// UndoLastBall removes the most recent delivery. It is a no-op on an
// empty log and reports whether anything was removed.
func (e *Engine) UndoLastBall() (bool, error) {
	if e.complete {
		return false, lockedError("undo")
	}
	removed, ok, err := e.ledger.DeleteLast()
	if err != nil {
		return false, fmt.Errorf("undo: %w", err)
	}
	if ok {
		e.recompute()
		e.logger.Debug("delivery undone", "id", removed.ID)
	}
	return ok, nil
}

// UpdateBall amends a historical delivery. An unknown id is reported as a
// not-found error and changes nothing.
func (e *Engine) UpdateBall(id string, p ledger.Patch) (ledger.Delivery, error) {
	if e.complete {
		return ledger.Delivery{}, lockedError("update ball")
	}
	if p.Runs != nil && *p.Runs < 0 {
		return ledger.Delivery{}, &Error{Code: ErrCodeInvalidDelivery, Message: fmt.Sprintf("negative runs %d", *p.Runs)}
	}
	if p.WicketKind != nil && *p.WicketKind != "" && !p.WicketKind.Valid() {
		return ledger.Delivery{}, &Error{Code: ErrCodeInvalidDelivery, Message: fmt.Sprintf("unknown wicket kind %q", *p.WicketKind)}
	}
	d, err := e.ledger.Amend(id, p)
	if err != nil {
		e.logger.Warn("update rejected", "id", id, "error", err)
		return ledger.Delivery{}, fmt.Errorf("update ball: %w", err)
	}
	e.recompute()
	return d, nil
}

// DeleteBall removes a delivery from any position.
func (e *Engine) DeleteBall(id string) error {
	if e.complete {
		return lockedError("delete ball")
	}
	if _, err := e.ledger.Delete(id); err != nil {
		e.logger.Warn("delete rejected", "id", id, "error", err)
		return fmt.Errorf("delete ball: %w", err)
	}
	e.recompute()
	return nil
}

// SetBowler changes the bowler for subsequent deliveries.
func (e *Engine) SetBowler(id string) error {
	if e.complete {
		return lockedError("set bowler")
	}
	if id == "" {
		return &Error{Code: ErrCodeInvalidDelivery, Message: "bowler id is required"}
	}
	e.bowler = id
	return nil
}

// Deliveries returns a copy of the log.
func (e *Engine) Deliveries() []ledger.Delivery {
	return e.ledger.Deliveries()
}

// DeliveryAt returns the delivery at 1-based log position n.
func (e *Engine) DeliveryAt(n int) (ledger.Delivery, bool) {
	return e.ledger.At(n - 1)
}

// ThisOver returns the deliveries of the over in progress, extras
// included. After the sixth legal ball it returns the completed over
// until the next delivery is bowled.
func (e *Engine) ThisOver() []ledger.Delivery {
	ds := e.ledger.Deliveries()
	positions := e.ledger.Positions()
	if len(ds) == 0 {
		return ds
	}
	// The over of the last delivery, as the log stands now.
	over := positions[len(ds)-1].Over
	out := []ledger.Delivery{}
	for i, d := range ds {
		if positions[i].Over == over {
			out = append(out, d)
		}
	}
	return out
}

// Crease returns the batters as derived from the current log.
func (e *Engine) Crease() Crease {
	return e.crease
}

// Stats recomputes every derived figure from the log.
func (e *Engine) Stats() Stats {
	ds := e.ledger.Deliveries()
	t := tally(ds)

	remaining := e.cfg.MaxBalls() - t.legal
	s := Stats{
		TotalRuns:      t.runs,
		TotalWickets:   t.wickets,
		LegalBalls:     t.legal,
		Extras:         t.extras,
		CurrentOver:    t.legal / BallsPerOver,
		BallInOver:     t.legal % BallsPerOver,
		BallsRemaining: max(remaining, 0),
		CurrentRunRate: runRate(t.runs, t.legal),
		Striker:        e.crease.Striker,
		NonStriker:     e.crease.NonStriker,
		Bowler:         e.bowler,
		Decided:        decided(e.cfg, t, e.complete),
		Complete:       e.complete,
	}
	if e.cfg.Chasing() {
		s.Chasing = true
		s.Target = *e.cfg.Target
		s.RunsNeeded = s.Target - t.runs
		if remaining > 0 {
			s.RequiredRunRate = runRate(s.RunsNeeded, remaining)
			s.RequiredRateDefined = true
		}
	}
	s.NeedsNewBowler = !s.Decided && t.legal > 0 && s.BallInOver == 0 && e.lastLegalBowler(ds) == e.bowler
	return s
}

// Decided reports the completion predicate. It does not freeze state.
func (e *Engine) Decided() bool {
	return decided(e.cfg, tally(e.ledger.Deliveries()), e.complete)
}

// Complete reports whether Finalize has run.
func (e *Engine) Complete() bool {
	return e.complete
}

// Summary returns the summary produced by Finalize.
func (e *Engine) Summary() (Summary, bool) {
	return e.summary, e.complete
}

// Finalize ends the innings, locks the log and returns the summary.
// It may be called before the completion predicate holds (explicit
// finalization is itself a completion condition). A second call returns
// a locked error.
func (e *Engine) Finalize() (Summary, error) {
	if e.complete {
		return Summary{}, lockedError("finalize")
	}
	stats := e.Stats()
	completedAt := e.now()

	e.complete = true
	e.ledger.Lock()
	e.summary = buildSummary(e.ids.Generate(), e.cfg, stats, completedAt)

	e.logger.Info("innings finalized",
		"summary", e.summary.ID,
		"score", e.summary.ScoreA,
		"result", e.summary.Result)
	return e.summary, nil
}

func (e *Engine) recompute() {
	e.crease = Replay(e.cfg, e.ledger.Deliveries())
}

func (e *Engine) lastLegalBowler(ds []ledger.Delivery) string {
	for i := len(ds) - 1; i >= 0; i-- {
		if ds[i].Legal() {
			return ds[i].BowlerID
		}
	}
	return ""
}
