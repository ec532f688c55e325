package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/crease/internal/setup"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                     `json:"valid"`
	Errors []*setup.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <setup.yaml>",
		Short: "Validate a match setup file",
		Long: `Validate a match setup file against the setup schema without scoring.

Reports every problem at once: overs out of range, a blank or repeated
player id, the same team on both sides, and so on.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if ferr := formatter.Error(ErrCodeSetupRead, fmt.Sprintf("cannot read %s", path), err.Error()); ferr != nil {
			return ferr
		}
		return WrapExitError(ExitCommandError, "read setup file", err)
	}
	formatter.VerboseLog("Read %d bytes from %s", len(data), path)

	f, err := setup.Parse(data)
	if err == nil {
		err = setup.Validate(f)
	}
	if err == nil {
		if opts.Format == "json" {
			return formatter.Success(ValidationResult{Valid: true})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid (%s v %s, %d overs)\n",
			path, f.Config().BattingTeamName(), f.Config().BowlingTeamName(), f.Overs)
		return nil
	}

	var verrs setup.ValidationErrors
	if !errors.As(err, &verrs) {
		verrs = setup.ValidationErrors{{Message: err.Error()}}
	}
	return outputValidationErrors(formatter, cmd, path, verrs)
}

func outputValidationErrors(formatter *OutputFormatter, cmd *cobra.Command, path string, verrs setup.ValidationErrors) error {
	msg := fmt.Sprintf("%d problem(s) in %s", len(verrs), path)
	if formatter.Format == "json" {
		if err := formatter.Error(ErrCodeSetupInvalid, msg, ValidationResult{Errors: verrs}); err != nil {
			return err
		}
		return NewExitError(ExitFailure, msg)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "✗ %s\n", msg)
	for _, e := range verrs {
		fmt.Fprintf(w, "  %s\n", e.Error())
	}
	return NewExitError(ExitFailure, msg)
}
