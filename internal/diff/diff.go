package diff

import (
	"context"

	"github.com/google/uuid"

	"github.com/draftwell/sectiondiff/internal/document"
)

// CreateSectionChangesFromImport diffs two versions of a document and
// persists one change record per section-level difference through the
// injected persistence collaborator.
//
// Records are created sequentially in emission order - updates, then
// inserts, then deletes. All records from one invocation share a generated
// import token so the history of a single import can be read back as a unit.
//
// The first persistence failure is returned wrapped in a *PersistenceError
// and aborts the remaining record creation; records already created are not
// rolled back.
func CreateSectionChangesFromImport(ctx context.Context, draftID, docID int64, oldContent, newContent string, persistence SectionChangesPersistence) (DiffResult, error) {
	if document.ContentMatches(oldContent, newContent) {
		return DiffResult{Summary: buildSummary(Counts{})}, nil
	}

	oldDoc := document.ParseSections(oldContent)
	newDoc := document.ParseSections(newContent)

	m := matchSections(oldDoc.Sections, newDoc.Sections)
	changes := classifyChanges(oldDoc.Sections, newDoc.Sections, m)

	token := uuid.NewString()
	var counts Counts

	for _, ch := range changes {
		record := ChangeRecordInput{
			ImportToken:           token,
			DraftID:               draftID,
			DocID:                 docID,
			ChangeType:            ch.changeType,
			SectionTitle:          ch.sectionTitle,
			Content:               ch.content,
			ReferenceSectionTitle: ch.referenceTitle,
		}

		if _, err := persistence.CreateSectionChange(ctx, record); err != nil {
			return DiffResult{}, &PersistenceError{Record: record, Err: err}
		}

		switch ch.changeType {
		case ChangeUpdate:
			counts.Updated++
		case ChangeInsertAfter:
			counts.Inserted++
		case ChangeDelete:
			counts.Deleted++
		}
	}

	return DiffResult{
		HasChanges:  counts.Total() > 0,
		ChangeCount: counts.Total(),
		Counts:      counts,
		Summary:     buildSummary(counts),
	}, nil
}
