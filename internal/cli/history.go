package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/crease/internal/archive"
	"github.com/roach88/crease/internal/innings"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Archive string
	Limit   int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived innings, newest first",
		Long: `List finalized innings from a SQLite archive, newest first.

Examples:
  crease history --archive scores.db
  crease history --archive scores.db --limit 5 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Archive, "archive", "", "path to the SQLite archive (required)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of innings to list (0 for all)")
	_ = cmd.MarkFlagRequired("archive")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	store, err := archive.Open(opts.Archive)
	if err != nil {
		return WrapExitError(ExitCommandError, "open archive", err)
	}
	defer store.Close()

	summaries, err := store.List(cmd.Context(), opts.Limit)
	if err != nil {
		if ferr := formatter.Error(ErrCodeArchive, "list archive", err.Error()); ferr != nil {
			return ferr
		}
		return WrapExitError(ExitCommandError, "list archive", err)
	}
	formatter.VerboseLog("Loaded %d summaries from %s", len(summaries), opts.Archive)

	if opts.Format == "json" {
		if summaries == nil {
			summaries = []innings.Summary{}
		}
		return formatter.Success(summaries)
	}

	w := cmd.OutOrStdout()
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No archived innings.")
		return nil
	}
	for _, s := range summaries {
		fmt.Fprintln(w, historyLine(s))
	}
	return nil
}

func historyLine(s innings.Summary) string {
	return fmt.Sprintf("%s  %s %s v %s (%s)  %s", s.Timestamp, s.TeamAName, s.ScoreA, s.TeamBName, s.ScoreB, s.Result)
}
