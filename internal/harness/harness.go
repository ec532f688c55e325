package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/roach88/crease/internal/archive"
	"github.com/roach88/crease/internal/commentary"
	"github.com/roach88/crease/internal/innings"
	"github.com/roach88/crease/internal/ledger"
	"github.com/roach88/crease/internal/setup"
	"github.com/roach88/crease/internal/testutil"
)

// DefaultClock is the completion time used when a scenario sets none.
const DefaultClock = "2026-10-18T15:04:00Z"

// Harness executes one scenario.
type Harness struct {
	engine  *innings.Engine
	archive archive.Archive
	advisor *commentary.Fallback
}

// Option configures a run.
type Option func(*runConfig)

type runConfig struct {
	advisor commentary.Advisor
	logger  *slog.Logger
}

// WithAdvisor sets the commentary provider used by advise steps.
// Defaults to commentary.Static{}.
func WithAdvisor(a commentary.Advisor) Option {
	return func(c *runConfig) { c.advisor = a }
}

// WithLogger routes engine logs; by default they are discarded.
func WithLogger(l *slog.Logger) Option {
	return func(c *runConfig) { c.logger = l }
}

// Run executes a scenario and returns the result.
//
// Execution flow:
// 1. Validate the setup and start an engine with deterministic ids and clock
// 2. Apply each flow step, recording a trace event and checking its expect
// 3. Archive the summary (in memory) if the flow finalized
// 4. Check the scenario-level expect
//
// Expectation mismatches are reported in Result.Errors. An error return
// means the scenario could not be executed at all.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	rc := runConfig{
		advisor: commentary.Static{},
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&rc)
	}

	file := setup.Normalize(scenario.Setup)
	if err := setup.Validate(file); err != nil {
		return nil, fmt.Errorf("scenario setup: %w", err)
	}

	clockValue := scenario.Clock
	if clockValue == "" {
		clockValue = DefaultClock
	}
	at, err := time.Parse(time.RFC3339, clockValue)
	if err != nil {
		return nil, fmt.Errorf("scenario clock: %w", err)
	}
	clock := testutil.NewDeterministicClock(at, 0)

	eng, err := innings.New(file.Config(),
		innings.WithIDGenerator(testutil.NewSequenceGenerator("id")),
		innings.WithClock(clock.Now),
		innings.WithLogger(rc.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("start innings: %w", err)
	}

	h := &Harness{
		engine:  eng,
		archive: archive.NewMemory(),
		advisor: commentary.NewFallback(rc.advisor, time.Second, rc.logger),
	}
	defer h.archive.Close()

	ctx := context.Background()
	result := NewResult()
	for i, step := range scenario.Flow {
		h.executeStep(ctx, i, step, result)
	}

	final := observed{
		stats:      eng.Stats(),
		deliveries: len(eng.Deliveries()),
		summary:    result.Summary,
	}
	for _, ae := range CheckExpectation("expect", scenario.Expect, final) {
		result.AddError(ae.Error())
	}
	return result, nil
}

func (h *Harness) executeStep(ctx context.Context, i int, step FlowStep, result *Result) {
	var (
		action  string
		outcome = "ok"
		stepErr error
		advice  string
	)

	switch {
	case step.Wicket != "":
		runs := 0
		if step.Ball != nil {
			runs = *step.Ball
		}
		action = "wicket " + step.Wicket
		if runs > 0 {
			action += fmt.Sprintf(" +%d", runs)
		}
		_, stepErr = h.engine.RecordWicket(runs, ledger.WicketKind(step.Wicket))

	case step.Ball != nil:
		extra := innings.ExtraNone
		action = fmt.Sprintf("ball %d", *step.Ball)
		if step.Extra != "" {
			extra = innings.ExtraKind(step.Extra)
			action += " " + step.Extra
		}
		_, stepErr = h.engine.RecordDelivery(*step.Ball, extra)

	case step.Undo:
		action = "undo"
		var removed bool
		removed, stepErr = h.engine.UndoLastBall()
		if stepErr == nil && !removed {
			outcome = "noop"
		}

	case step.Amend != nil:
		action = fmt.Sprintf("amend #%d%s", step.Amend.Ball, describePatch(step.Amend.Patch))
		_, stepErr = h.engine.UpdateBall(h.idAt(step.Amend.Ball), step.Amend.Patch)

	case step.Delete > 0:
		action = fmt.Sprintf("delete #%d", step.Delete)
		stepErr = h.engine.DeleteBall(h.idAt(step.Delete))

	case step.Bowler != "":
		action = "bowler " + step.Bowler
		stepErr = h.engine.SetBowler(step.Bowler)

	case step.Finalize:
		action = "finalize"
		var sum innings.Summary
		sum, stepErr = h.engine.Finalize()
		if stepErr == nil {
			result.Summary = &sum
			h.archiveSummary(ctx, sum, result)
		}

	case step.Advise:
		action = "advise"
		advice, _ = h.advisor.Advise(ctx, commentary.SnapshotOf(h.engine.Stats()))
	}

	code := ""
	if stepErr != nil {
		code = errorCode(stepErr)
		outcome = code
		if step.Expect == nil || step.Expect.Error == "" {
			result.AddError(fmt.Sprintf("flow[%d] %s: unexpected error: %v", i, action, stepErr))
		}
	}

	stats := h.engine.Stats()
	result.Trace = append(result.Trace, TraceEvent{
		Step:       i + 1,
		Action:     action,
		Outcome:    outcome,
		Score:      stats.Scoreline(),
		Striker:    stats.Striker,
		NonStriker: stats.NonStriker,
		Bowler:     stats.Bowler,
	})

	got := observed{
		stats:      stats,
		deliveries: len(h.engine.Deliveries()),
		summary:    result.Summary,
		errCode:    code,
		commentary: advice,
	}
	for _, ae := range CheckExpectation(fmt.Sprintf("flow[%d].expect", i), step.Expect, got) {
		result.AddError(ae.Error())
	}
}

// idAt resolves a 1-based log position to a delivery id. Out-of-range
// positions map to an id no delivery has, so the engine reports NOT_FOUND.
func (h *Harness) idAt(pos int) string {
	if d, ok := h.engine.DeliveryAt(pos); ok {
		return d.ID
	}
	return fmt.Sprintf("missing-%d", pos)
}

func (h *Harness) archiveSummary(ctx context.Context, sum innings.Summary, result *Result) {
	if err := h.archive.Save(ctx, sum); err != nil {
		result.AddError(fmt.Sprintf("archive save: %v", err))
		return
	}
	stored, err := h.archive.Get(ctx, sum.ID)
	if err != nil {
		result.AddError(fmt.Sprintf("archive get: %v", err))
		return
	}
	if stored != sum {
		result.AddError(fmt.Sprintf("archive round trip changed summary %s", sum.ID))
	}
}

func errorCode(err error) string {
	var ie *innings.Error
	if errors.As(err, &ie) {
		return string(ie.Code)
	}
	var le *ledger.Error
	if errors.As(err, &le) {
		return string(le.Code)
	}
	return "ERROR"
}

func describePatch(p ledger.Patch) string {
	var parts []string
	if p.Runs != nil {
		parts = append(parts, fmt.Sprintf("runs=%d", *p.Runs))
	}
	if p.Wide != nil {
		parts = append(parts, fmt.Sprintf("wide=%t", *p.Wide))
	}
	if p.NoBall != nil {
		parts = append(parts, fmt.Sprintf("no_ball=%t", *p.NoBall))
	}
	if p.Bye != nil {
		parts = append(parts, fmt.Sprintf("bye=%t", *p.Bye))
	}
	if p.LegBye != nil {
		parts = append(parts, fmt.Sprintf("leg_bye=%t", *p.LegBye))
	}
	if p.Wicket != nil {
		parts = append(parts, fmt.Sprintf("wicket=%t", *p.Wicket))
	}
	if p.WicketKind != nil {
		parts = append(parts, fmt.Sprintf("wicket_kind=%s", *p.WicketKind))
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, " ")
}
