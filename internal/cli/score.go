package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/crease/internal/archive"
	"github.com/roach88/crease/internal/commentary"
	"github.com/roach88/crease/internal/innings"
	"github.com/roach88/crease/internal/ledger"
	"github.com/roach88/crease/internal/scoreboard"
	"github.com/roach88/crease/internal/session"
	"github.com/roach88/crease/internal/setup"
)

// ScoreOptions holds flags for the score command.
type ScoreOptions struct {
	*RootOptions
	Archive string        // SQLite archive path; empty keeps summaries in memory
	User    string        // scorer signing in
	TTL     time.Duration // session lifetime

	// Now is the wall clock. Defaults to time.Now.
	Now func() time.Time

	// Advisor replaces the commentary provider configured from the environment.
	Advisor commentary.Advisor
}

// NewScoreCommand creates the score command.
func NewScoreCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ScoreOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "score <setup.yaml>",
		Short: "Score an innings interactively",
		Long: `Score an innings ball by ball, reading one command per line from stdin.

Commands:
  0-6                 runs off the bat from a legal delivery
  wd [n]              wide, plus n runs
  nb [n]              no-ball, plus n runs off the bat
  w [kind] [n]        wicket (Bowled, Caught, Run-out, LBW, Stumped), n runs
  undo                remove the last delivery
  edit <pos> k=v...   amend delivery <pos> (runs, wide, nb, bye, lb, wicket, kind)
  del <pos>           delete delivery <pos>
  bowler <id>         change the bowler
  tip                 ask for advice for the bowling side
  show                print the scoreboard
  log                 list every delivery
  finish              finalize and archive the innings
  quit                stop without finalizing

Examples:
  crease score match.yaml --user asha
  crease score match.yaml --archive scores.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Archive, "archive", "", "path to the SQLite archive")
	cmd.Flags().StringVar(&opts.User, "user", "scorer", "name of the scorer signing in")
	cmd.Flags().DurationVar(&opts.TTL, "ttl", session.DefaultTTL, "session lifetime")

	return cmd
}

func runScore(opts *ScoreOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	cfg, err := setup.Load(path)
	if err != nil {
		var verrs setup.ValidationErrors
		if errors.As(err, &verrs) {
			return outputValidationErrors(formatter, cmd, path, verrs)
		}
		return WrapExitError(ExitCommandError, "load setup", err)
	}

	sess, err := session.New(opts.User, now(), opts.TTL)
	if err != nil {
		return WrapExitError(ExitCommandError, "sign in", err)
	}
	formatter.VerboseLog("Session %s for %s expires %s", sess.ID, sess.User, sess.ExpiresAt.Format(time.RFC3339))

	var arch archive.Archive = archive.NewMemory()
	if opts.Archive != "" {
		store, err := archive.Open(opts.Archive)
		if err != nil {
			return WrapExitError(ExitCommandError, "open archive", err)
		}
		arch = store
	}
	defer arch.Close()

	eng, err := innings.New(cfg, innings.WithLogger(logger), innings.WithClock(now))
	if err != nil {
		return WrapExitError(ExitFailure, "start innings", err)
	}

	out := &lockedWriter{w: cmd.OutOrStdout()}
	formatter.Writer = out
	s := &scorer{
		engine:    eng,
		archive:   arch,
		advisor:   newAdvisor(opts, logger),
		session:   sess,
		now:       now,
		logger:    logger,
		format:    opts.Format,
		formatter: formatter,
		out:       out,
	}
	return s.run(cmd.Context(), cmd.InOrStdin())
}

func newAdvisor(opts *ScoreOptions, logger *slog.Logger) *commentary.Fallback {
	if opts.Advisor != nil {
		return commentary.NewFallback(opts.Advisor, 0, logger)
	}
	cfg, err := commentary.LoadConfig()
	if err != nil {
		logger.Warn("commentary config ignored", "error", err)
		return commentary.NewFallback(commentary.Static{}, 0, logger)
	}
	return commentary.FromConfig(cfg, logger)
}

// lockedWriter serializes writes from the scoring loop and tip goroutines.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// scorer runs one interactive scoring session.
type scorer struct {
	engine    *innings.Engine
	archive   archive.Archive
	advisor   *commentary.Fallback
	session   session.Session
	now       func() time.Time
	logger    *slog.Logger
	format    string
	formatter *OutputFormatter
	out       *lockedWriter

	tips      sync.WaitGroup
	announced bool // decided notice printed
}

func (s *scorer) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *scorer) run(ctx context.Context, in io.Reader) error {
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.tips.Wait()

	cfg := s.engine.Config()
	s.printf("%s v %s, %d overs. Signed in as %s. Session ends in %s. Type help for commands.\n",
		cfg.BattingTeamName(), cfg.BowlingTeamName(), cfg.OversLimit, s.session.User,
		s.session.Remaining(s.now()).Round(time.Minute))

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := s.session.Check(s.now()); err != nil {
			details := map[string]string{
				"session":    s.session.ID,
				"expired_at": s.session.ExpiresAt.Format(time.RFC3339),
			}
			if ferr := s.formatter.Error(ErrCodeSessionExpired, fmt.Sprintf("%v, sign in again", err), details); ferr != nil {
				return ferr
			}
			return WrapExitError(ExitFailure, "session", err)
		}

		done, err := s.execute(ctx, line)
		if err != nil {
			s.printf("error: %v\n", err)
			continue
		}
		if done {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return WrapExitError(ExitCommandError, "read input", err)
	}
	s.warnUnfinished()
	return nil
}

// execute applies one command line and reports whether the session is over.
func (s *scorer) execute(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	verb, args := strings.ToLower(fields[0]), fields[1:]

	switch verb {
	case "help", "?":
		s.printf("commands: 0-6, wd [n], nb [n], w [kind] [n], undo, edit <pos> k=v..., del <pos>, bowler <id>, tip, show, log, finish, quit\n")
		return false, nil

	case "wd", "nb":
		runs, err := optionalRuns(args)
		if err != nil {
			return false, err
		}
		extra := innings.ExtraWide
		if verb == "nb" {
			extra = innings.ExtraNoBall
		}
		return false, s.record(s.engine.RecordDelivery(runs, extra))

	case "w":
		kind, runs, err := parseWicket(args)
		if err != nil {
			return false, err
		}
		return false, s.record(s.engine.RecordWicket(runs, kind))

	case "undo":
		removed, err := s.engine.UndoLastBall()
		if err != nil {
			return false, err
		}
		if !removed {
			s.printf("nothing to undo\n")
			return false, nil
		}
		s.status()
		return false, nil

	case "edit":
		if len(args) < 2 {
			return false, fmt.Errorf("usage: edit <pos> key=value...")
		}
		id, err := s.idAt(args[0])
		if err != nil {
			return false, err
		}
		patch, err := parsePatch(args[1:])
		if err != nil {
			return false, err
		}
		if _, err := s.engine.UpdateBall(id, patch); err != nil {
			return false, err
		}
		s.status()
		return false, nil

	case "del":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: del <pos>")
		}
		id, err := s.idAt(args[0])
		if err != nil {
			return false, err
		}
		if err := s.engine.DeleteBall(id); err != nil {
			return false, err
		}
		s.status()
		return false, nil

	case "bowler":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: bowler <id>")
		}
		if err := s.engine.SetBowler(args[0]); err != nil {
			return false, err
		}
		s.printf("bowling: %s\n", args[0])
		return false, nil

	case "tip":
		s.tip(ctx)
		return false, nil

	case "show":
		return false, scoreboard.Render(s.out, scoreboard.FromEngine(s.engine))

	case "log":
		s.log()
		return false, nil

	case "finish":
		return s.finish(ctx)

	case "quit", "exit":
		s.warnUnfinished()
		return true, nil
	}

	runs, err := strconv.Atoi(verb)
	if err != nil {
		return false, fmt.Errorf("unknown command %q (type help)", fields[0])
	}
	return false, s.record(s.engine.RecordDelivery(runs, innings.ExtraNone))
}

func (s *scorer) record(_ ledger.Delivery, err error) error {
	if err != nil {
		return err
	}
	s.status()
	return nil
}

// status prints the scoreline and any prompt the scorer has to act on.
func (s *scorer) status() {
	st := s.engine.Stats()
	s.printf("%s  this over: %s\n", st.Scoreline(), scoreboard.OverString(s.engine.ThisOver()))
	if st.NeedsNewBowler {
		s.printf("over complete: change bowler with 'bowler <id>'\n")
	}
	switch {
	case st.Decided && !s.announced:
		s.announced = true
		s.printf("innings decided: type finish to save\n")
	case !st.Decided:
		s.announced = false
	}
}

func (s *scorer) idAt(arg string) (string, error) {
	pos, err := strconv.Atoi(arg)
	if err != nil {
		return "", fmt.Errorf("position %q is not a number", arg)
	}
	d, ok := s.engine.DeliveryAt(pos)
	if !ok {
		return "", fmt.Errorf("no delivery at position %d", pos)
	}
	return d.ID, nil
}

func (s *scorer) tip(ctx context.Context) {
	ch := s.advisor.AdviseAsync(ctx, commentary.SnapshotOf(s.engine.Stats()))
	s.tips.Add(1)
	go func() {
		defer s.tips.Done()
		if msg, ok := <-ch; ok {
			s.printf("tip: %s\n", msg)
		}
	}()
}

func (s *scorer) log() {
	ds := s.engine.Deliveries()
	if len(ds) == 0 {
		s.printf("no deliveries\n")
		return
	}
	for i, d := range ds {
		s.printf("%d. %-4s striker=%s bowler=%s\n", i+1, scoreboard.BallLabel(d), d.StrikerID, d.BowlerID)
	}
}

func (s *scorer) finish(ctx context.Context) (bool, error) {
	sum, err := s.engine.Finalize()
	if err != nil {
		return false, err
	}
	if err := s.archive.Save(ctx, sum); err != nil {
		// The innings is locked either way; report and stop.
		s.logger.Error("archive save failed", "summary", sum.ID, "error", err)
		return true, WrapExitError(ExitCommandError, "archive summary", err)
	}

	if s.format == "json" {
		return true, json.NewEncoder(s.out).Encode(CLIResponse{
			Status:  "ok",
			Data:    sum,
			TraceID: s.session.ID,
		})
	}
	s.printf("%s %s v %s, %s\n%s (%s)\n", sum.TeamAName, sum.ScoreA, sum.TeamBName, sum.ScoreB, sum.Result, sum.Timestamp)
	return true, nil
}

func (s *scorer) warnUnfinished() {
	if !s.engine.Complete() && len(s.engine.Deliveries()) > 0 {
		s.printf("innings not finalized; nothing archived\n")
	}
}

func optionalRuns(args []string) (int, error) {
	switch len(args) {
	case 0:
		return 0, nil
	case 1:
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return 0, fmt.Errorf("runs %q is not a number", args[0])
		}
		return n, nil
	default:
		return 0, fmt.Errorf("expected at most one run count, got %d arguments", len(args))
	}
}

// parseWicket reads "[kind] [n]" in either order. Kind defaults to Bowled.
func parseWicket(args []string) (ledger.WicketKind, int, error) {
	kind := ledger.WicketBowled
	runs := 0
	for _, a := range args {
		if n, err := strconv.Atoi(a); err == nil {
			runs = n
			continue
		}
		k, err := parseKind(a)
		if err != nil {
			return "", 0, err
		}
		kind = k
	}
	return kind, runs, nil
}

func parseKind(s string) (ledger.WicketKind, error) {
	for _, k := range ledger.WicketKinds {
		if strings.EqualFold(string(k), s) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown wicket kind %q", s)
}

// parsePatch reads key=value pairs into a ledger patch.
func parsePatch(pairs []string) (ledger.Patch, error) {
	var p ledger.Patch
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return ledger.Patch{}, fmt.Errorf("expected key=value, got %q", pair)
		}
		key = strings.ToLower(key)

		if key == "runs" {
			n, err := strconv.Atoi(value)
			if err != nil {
				return ledger.Patch{}, fmt.Errorf("runs %q is not a number", value)
			}
			p.Runs = &n
			continue
		}
		if key == "kind" || key == "wicket_kind" {
			k, err := parseKind(value)
			if err != nil {
				return ledger.Patch{}, err
			}
			p.WicketKind = &k
			continue
		}

		b, err := strconv.ParseBool(value)
		if err != nil {
			return ledger.Patch{}, fmt.Errorf("%s: %q is not true or false", key, value)
		}
		switch key {
		case "wide", "wd":
			p.Wide = &b
		case "nb", "noball", "no_ball":
			p.NoBall = &b
		case "bye":
			p.Bye = &b
		case "lb", "legbye", "leg_bye":
			p.LegBye = &b
		case "wicket", "w":
			p.Wicket = &b
		default:
			return ledger.Patch{}, fmt.Errorf("unknown field %q", key)
		}
	}
	return p, nil
}
