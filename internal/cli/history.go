package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/draftwell/sectiondiff/internal/diff"
	"github.com/draftwell/sectiondiff/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	DraftID  int64
	Type     string // optional - filter to one change type
}

// HistoryEntry is one change record in history output.
type HistoryEntry struct {
	ID                    int64  `json:"id"`
	Seq                   int64  `json:"seq"`
	ImportToken           string `json:"import_token"`
	ChangeType            string `json:"change_type"`
	SectionTitle          string `json:"section_title"`
	ReferenceSectionTitle string `json:"reference_section_title,omitempty"`
}

// HistoryResult holds the complete history output for a draft.
type HistoryResult struct {
	DraftID int64          `json:"draft_id"`
	Entries []HistoryEntry `json:"entries"`
	Counts  diff.Counts    `json:"counts"`
	Summary string         `json:"summary"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded section changes for a draft",
		Long: `List a draft's recorded section changes in the order they were created.

Records are returned in deterministic order (seq, then id), the same
order replay applies them in.

Examples:
  sectiondiff history --db ./changes.db --draft 1
  sectiondiff history --db ./changes.db --draft 1 --type update
  sectiondiff history --db ./changes.db --draft 1 --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().Int64Var(&opts.DraftID, "draft", 0, "draft identifier (required)")
	_ = cmd.MarkFlagRequired("draft")
	cmd.Flags().StringVar(&opts.Type, "type", "", "filter by change type (update|insert-after|delete)")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if opts.Type != "" && !isValidChangeType(opts.Type) {
		msg := fmt.Sprintf("invalid change type %q: must be update, insert-after, or delete", opts.Type)
		_ = formatter.Error(ErrCodeGeneric, msg, nil)
		return NewExitError(ExitCommandError, msg)
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

	result := HistoryResult{DraftID: opts.DraftID, Entries: []HistoryEntry{}}
	for _, rec := range records {
		if opts.Type != "" && string(rec.ChangeType) != opts.Type {
			continue
		}
		result.Entries = append(result.Entries, HistoryEntry{
			ID:                    rec.ID,
			Seq:                   rec.Seq,
			ImportToken:           rec.ImportToken,
			ChangeType:            string(rec.ChangeType),
			SectionTitle:          rec.SectionTitle,
			ReferenceSectionTitle: rec.ReferenceSectionTitle,
		})
		switch rec.ChangeType {
		case diff.ChangeUpdate:
			result.Counts.Updated++
		case diff.ChangeInsertAfter:
			result.Counts.Inserted++
		case diff.ChangeDelete:
			result.Counts.Deleted++
		}
	}
	result.Summary = fmt.Sprintf("%d change(s) for draft %d", len(result.Entries), opts.DraftID)

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return formatter.Success(renderHistoryText(result))
}

func renderHistoryText(result HistoryResult) string {
	if len(result.Entries) == 0 {
		return fmt.Sprintf("No changes recorded for draft %d", result.DraftID)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "History for draft %d (%d changes):\n", result.DraftID, len(result.Entries))
	for _, e := range result.Entries {
		title := e.SectionTitle
		if title == "" {
			title = "(preamble)"
		}
		fmt.Fprintf(&b, "  %4d  %-12s  %s", e.Seq, e.ChangeType, title)
		if e.ReferenceSectionTitle != "" {
			fmt.Fprintf(&b, "  (after %s)", e.ReferenceSectionTitle)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %d updated, %d inserted, %d deleted",
		result.Counts.Updated, result.Counts.Inserted, result.Counts.Deleted)
	return b.String()
}

func isValidChangeType(t string) bool {
	switch diff.ChangeType(t) {
	case diff.ChangeUpdate, diff.ChangeInsertAfter, diff.ChangeDelete:
		return true
	}
	return false
}
