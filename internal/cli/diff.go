package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/draftwell/sectiondiff/internal/diff"
	"github.com/draftwell/sectiondiff/internal/store"
)

// DiffOptions holds flags for the diff command.
type DiffOptions struct {
	*RootOptions
	Database string
	DraftID  int64
	DocID    int64
}

// DiffCommandResult is the JSON payload for a diff invocation.
type DiffCommandResult struct {
	diff.DiffResult
	DraftID int64 `json:"draft_id"`
	DocID   int64 `json:"doc_id"`
}

// NewDiffCommand creates the diff command.
func NewDiffCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DiffOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "diff <old.md> <new.md>",
		Short: "Diff two document versions and record the changes",
		Long: `Compare two versions of a heading-delimited document and persist one
change record per section-level difference.

Records are created in emission order - updates, then inserts, then
deletes - and share an import token identifying this invocation.

Exit codes:
  0 - Diff completed (with or without changes)
  2 - Command error (file not found, database failure, etc.)

Examples:
  sectiondiff diff old.md new.md --db ./changes.db --draft 1 --doc 1
  sectiondiff diff old.md new.md --db ./changes.db --draft 1 --doc 1 --format json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().Int64Var(&opts.DraftID, "draft", 0, "draft identifier (required)")
	_ = cmd.MarkFlagRequired("draft")
	cmd.Flags().Int64Var(&opts.DocID, "doc", 0, "document identifier (required)")
	_ = cmd.MarkFlagRequired("doc")

	return cmd
}

func runDiff(opts *DiffOptions, oldPath, newPath string, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	oldContent, err := readDocument(oldPath)
	if err != nil {
		_ = formatter.Error(ErrCodeReadFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read old document", err)
	}
	newContent, err := readDocument(newPath)
	if err != nil {
		_ = formatter.Error(ErrCodeReadFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read new document", err)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	formatter.VerboseLog("Diffing %s -> %s (draft=%d, doc=%d)", oldPath, newPath, opts.DraftID, opts.DocID)

	result, err := diff.CreateSectionChangesFromImport(ctx, opts.DraftID, opts.DocID, oldContent, newContent, st)
	if err != nil {
		_ = formatter.Error(ErrCodePersistence, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to record changes", err)
	}

	if opts.Format == "json" {
		return formatter.Success(DiffCommandResult{
			DiffResult: result,
			DraftID:    opts.DraftID,
			DocID:      opts.DocID,
		})
	}
	return formatter.Success(result.Summary)
}

// readDocument reads a document file, rejecting directories up front so the
// error message names the real problem.
func readDocument(path string) (string, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("document not found: %s", path)
	}
	if err != nil {
		return "", fmt.Errorf("error accessing document: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("not a file: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
