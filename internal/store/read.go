package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/draftwell/sectiondiff/internal/diff"
)

// ListChangesForDraft returns all change records for a draft.
// Results are ordered deterministically per CP-2: ORDER BY seq ASC, id ASC.
//
// Returns an empty slice (not nil) if no records exist for the draft.
func (s *Store) ListChangesForDraft(ctx context.Context, draftID int64) ([]diff.ChangeRecordCreated, error) {
	return s.listChanges(ctx, `
		SELECT id, import_token, draft_id, doc_id, change_type, section_title, reference_section_title, content, seq
		FROM section_changes
		WHERE draft_id = ?
		ORDER BY seq ASC, id ASC
	`, draftID)
}

// ListChangesForImport returns all change records created by a single diff
// invocation, identified by its import token, in deterministic order.
func (s *Store) ListChangesForImport(ctx context.Context, importToken string) ([]diff.ChangeRecordCreated, error) {
	return s.listChanges(ctx, `
		SELECT id, import_token, draft_id, doc_id, change_type, section_title, reference_section_title, content, seq
		FROM section_changes
		WHERE import_token = ?
		ORDER BY seq ASC, id ASC
	`, importToken)
}

// CountChangesByType tallies a draft's change records per change type.
func (s *Store) CountChangesByType(ctx context.Context, draftID int64) (diff.Counts, error) {
	var counts diff.Counts

	rows, err := s.db.QueryContext(ctx, `
		SELECT change_type, COUNT(*)
		FROM section_changes
		WHERE draft_id = ?
		GROUP BY change_type
	`, draftID)
	if err != nil {
		return counts, fmt.Errorf("count changes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var changeType string
		var n int
		if err := rows.Scan(&changeType, &n); err != nil {
			return counts, fmt.Errorf("scan change count: %w", err)
		}
		switch diff.ChangeType(changeType) {
		case diff.ChangeUpdate:
			counts.Updated = n
		case diff.ChangeInsertAfter:
			counts.Inserted = n
		case diff.ChangeDelete:
			counts.Deleted = n
		}
	}

	if err := rows.Err(); err != nil {
		return counts, fmt.Errorf("iterate change counts: %w", err)
	}

	return counts, nil
}

func (s *Store) listChanges(ctx context.Context, query string, arg any) ([]diff.ChangeRecordCreated, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("query section changes: %w", err)
	}
	defer rows.Close()

	var records []diff.ChangeRecordCreated
	for rows.Next() {
		rec, err := scanChange(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate section changes: %w", err)
	}

	// Return empty slice instead of nil
	if records == nil {
		records = []diff.ChangeRecordCreated{}
	}

	return records, nil
}

func scanChange(rows *sql.Rows) (diff.ChangeRecordCreated, error) {
	var rec diff.ChangeRecordCreated
	var changeType string
	err := rows.Scan(
		&rec.ID,
		&rec.ImportToken,
		&rec.DraftID,
		&rec.DocID,
		&changeType,
		&rec.SectionTitle,
		&rec.ReferenceSectionTitle,
		&rec.Content,
		&rec.Seq,
	)
	if err != nil {
		return rec, fmt.Errorf("scan section change: %w", err)
	}
	rec.ChangeType = diff.ChangeType(changeType)
	return rec, nil
}
