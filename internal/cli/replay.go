package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/draftwell/sectiondiff/internal/replay"
	"github.com/draftwell/sectiondiff/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
	DraftID  int64
}

// ReplayCommandResult holds the replay outcome.
type ReplayCommandResult struct {
	DraftID       int64  `json:"draft_id"`
	ChangeCount   int    `json:"change_count"`
	Deterministic bool   `json:"deterministic"`
	Document      string `json:"document,omitempty"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay <base.md>",
		Short: "Replay recorded changes onto a base document",
		Long: `Apply a draft's recorded change history onto a base document and print
the reconstructed result.

The history is applied twice and the results compared, verifying that
replay is deterministic.

Exit codes:
  0 - History applied cleanly
  1 - Replay failed or produced non-deterministic output
  2 - Command error (database not found, etc.)

Examples:
  sectiondiff replay old.md --db ./changes.db --draft 1
  sectiondiff replay old.md --db ./changes.db --draft 1 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().Int64Var(&opts.DraftID, "draft", 0, "draft identifier (required)")
	_ = cmd.MarkFlagRequired("draft")

	return cmd
}

func runReplay(opts *ReplayOptions, basePath string, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	base, err := readDocument(basePath)
	if err != nil {
		_ = formatter.Error(ErrCodeReadFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read base document", err)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	records, err := st.ListChangesForDraft(ctx, opts.DraftID)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read history", err)
	}

	formatter.VerboseLog("Applying %d change(s) to %s", len(records), basePath)

	first, err := replay.Apply(base, records)
	if err != nil {
		_ = formatter.Error(ErrCodeReplayFailed, err.Error(), nil)
		return WrapExitError(ExitFailure, "replay failed", err)
	}

	// Apply a second time and compare, mirroring the determinism guarantee
	// callers rely on.
	second, err := replay.Apply(base, records)
	if err != nil {
		_ = formatter.Error(ErrCodeReplayFailed, err.Error(), nil)
		return WrapExitError(ExitFailure, "replay failed on second application", err)
	}

	result := ReplayCommandResult{
		DraftID:       opts.DraftID,
		ChangeCount:   len(records),
		Deterministic: first == second,
		Document:      first,
	}

	if !result.Deterministic {
		_ = formatter.Error(ErrCodeReplayFailed, "replay produced differing output across applications", nil)
		return NewExitError(ExitFailure, "non-deterministic replay")
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return formatter.Success(first)
}
