package diff

import "context"

// ChangeType identifies the kind of section-level change.
type ChangeType string

const (
	// ChangeUpdate replaces the content of a section present in both versions.
	ChangeUpdate ChangeType = "update"

	// ChangeInsertAfter introduces a new section, anchored after the
	// reference section (or after the preamble when the reference is empty).
	ChangeInsertAfter ChangeType = "insert-after"

	// ChangeDelete removes a section present only in the old version.
	ChangeDelete ChangeType = "delete"
)

// ChangeRecordInput is one section-level change to persist.
//
// SectionTitle is empty for the preamble. For insert-after records,
// ReferenceSectionTitle names the anchor section; empty means the consumer
// anchors at the document start by convention. Delete records carry no
// content - the title suffices to replay them.
type ChangeRecordInput struct {
	ImportToken           string     `json:"import_token"`
	DraftID               int64      `json:"draft_id"`
	DocID                 int64      `json:"doc_id"`
	ChangeType            ChangeType `json:"change_type"`
	SectionTitle          string     `json:"section_title"`
	Content               string     `json:"content"`
	ReferenceSectionTitle string     `json:"reference_section_title,omitempty"`
}

// ChangeRecordCreated is a persisted change record with its assigned
// identity and per-draft sequence number.
type ChangeRecordCreated struct {
	ID  int64 `json:"id"`
	Seq int64 `json:"seq"`
	ChangeRecordInput
}

// SectionChangesPersistence is the collaborator the engine hands records to.
// CreateSectionChange may fail; the engine does not retry.
type SectionChangesPersistence interface {
	CreateSectionChange(ctx context.Context, record ChangeRecordInput) (ChangeRecordCreated, error)
}

// Counts tallies emitted records per change type.
type Counts struct {
	Updated  int `json:"updated"`
	Inserted int `json:"inserted"`
	Deleted  int `json:"deleted"`
}

// Total returns the number of emitted records.
func (c Counts) Total() int {
	return c.Updated + c.Inserted + c.Deleted
}

// DiffResult is returned to the caller after a diff invocation. It is not
// retained by the engine.
type DiffResult struct {
	HasChanges  bool   `json:"has_changes"`
	ChangeCount int    `json:"change_count"`
	Counts      Counts `json:"counts"`
	Summary     string `json:"summary"`
}
