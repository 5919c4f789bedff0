package store

import (
	"context"
	"fmt"

	"github.com/draftwell/sectiondiff/internal/diff"
)

// CreateSectionChange appends a change record to the history log and returns
// it with its assigned row ID and per-draft sequence number.
//
// Implements diff.SectionChangesPersistence. The seq is allocated inside the
// insert transaction (MAX(seq)+1 for the draft), so records written by one
// diff invocation carry consecutive seq values in emission order.
func (s *Store) CreateSectionChange(ctx context.Context, record diff.ChangeRecordInput) (diff.ChangeRecordCreated, error) {
	created := diff.ChangeRecordCreated{ChangeRecordInput: record}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return created, fmt.Errorf("create section change: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var seq int64
	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(seq), 0) + 1
		FROM section_changes
		WHERE draft_id = ?
	`, record.DraftID).Scan(&seq)
	if err != nil {
		return created, fmt.Errorf("create section change: next seq: %w", err)
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO section_changes
		(import_token, draft_id, doc_id, change_type, section_title, reference_section_title, content, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		record.ImportToken,
		record.DraftID,
		record.DocID,
		string(record.ChangeType),
		record.SectionTitle,
		record.ReferenceSectionTitle,
		record.Content,
		seq,
	)
	if err != nil {
		return created, fmt.Errorf("create section change: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return created, fmt.Errorf("create section change: last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return created, fmt.Errorf("create section change: commit: %w", err)
	}

	created.ID = id
	created.Seq = seq
	return created, nil
}
