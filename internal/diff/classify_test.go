package diff

import (
	"testing"

	"github.com/draftwell/sectiondiff/internal/document"
)

func classifyDocs(t *testing.T, oldText, newText string) []sectionChange {
	t.Helper()
	old := document.ParseSections(oldText).Sections
	new := document.ParseSections(newText).Sections
	return classifyChanges(old, new, matchSections(old, new))
}

func TestClassifyChanges_IdenticalContentEmitsNothing(t *testing.T) {
	changes := classifyDocs(t, "# A\n\ntext\n", "# A\n\ntext\n")
	if len(changes) != 0 {
		t.Errorf("got %d changes, want 0", len(changes))
	}
}

func TestClassifyChanges_UpdateUsesOldTitleAndNewContent(t *testing.T) {
	changes := classifyDocs(t, "# Overview\n\nold\n", "# Overviews\n\nnew\n")

	if len(changes) != 1 {
		t.Fatalf("got %d changes, want 1", len(changes))
	}
	ch := changes[0]
	if ch.changeType != ChangeUpdate {
		t.Errorf("change type = %s, want update", ch.changeType)
	}
	if ch.sectionTitle != "Overview" {
		t.Errorf("section title = %q, want old title", ch.sectionTitle)
	}
	if ch.content != "# Overviews\n\nnew\n" {
		t.Errorf("content = %q, want new raw content", ch.content)
	}
}

func TestClassifyChanges_PreambleUpdateHasEmptyTitle(t *testing.T) {
	changes := classifyDocs(t, "old preamble\n# A\n\ntext\n", "new preamble\n# A\n\ntext\n")

	if len(changes) != 1 {
		t.Fatalf("got %d changes, want 1", len(changes))
	}
	if changes[0].changeType != ChangeUpdate || changes[0].sectionTitle != "" {
		t.Errorf("change = %+v, want preamble update with empty title", changes[0])
	}
}

func TestClassifyChanges_InsertAnchoredToPrecedingMatch(t *testing.T) {
	changes := classifyDocs(t,
		"# Intro\n\ntext\n",
		"# Intro\n\ntext\n\n## Added\n\nmore\n")

	if len(changes) != 1 {
		t.Fatalf("got %d changes, want 1", len(changes))
	}
	ch := changes[0]
	if ch.changeType != ChangeInsertAfter {
		t.Fatalf("change type = %s, want insert-after", ch.changeType)
	}
	if ch.referenceTitle != "Intro" {
		t.Errorf("reference = %q, want Intro", ch.referenceTitle)
	}
}

func TestClassifyChanges_InsertSkipsUnmatchedWhenAnchoring(t *testing.T) {
	// Both new sections are inserts; the second anchors past the first,
	// landing on the matched Intro section.
	changes := classifyDocs(t,
		"# Intro\n\ntext\n",
		"# Intro\n\ntext\n\n## First New\n\na\n\n## Second New\n\nb\n")

	if len(changes) != 2 {
		t.Fatalf("got %d changes, want 2", len(changes))
	}
	if changes[1].referenceTitle != "Intro" {
		t.Errorf("second insert reference = %q, want Intro", changes[1].referenceTitle)
	}
}

func TestClassifyChanges_InsertWithPreambleAnchorGetsEmptyReference(t *testing.T) {
	// The only preceding matched section is the preamble, whose title is
	// nil - the reference stays empty.
	changes := classifyDocs(t,
		"shared preamble\n",
		"shared preamble\n# Brand New\n\ntext\n")

	if len(changes) != 1 {
		t.Fatalf("got %d changes, want 1", len(changes))
	}
	if changes[0].changeType != ChangeInsertAfter || changes[0].referenceTitle != "" {
		t.Errorf("change = %+v, want insert with empty reference", changes[0])
	}
}

func TestClassifyChanges_DeleteEmitted(t *testing.T) {
	changes := classifyDocs(t,
		"# Keep\n\ntext\n\n## Drop\n\ncontent here\n",
		"# Keep\n\ntext\n")

	if len(changes) != 1 {
		t.Fatalf("got %d changes, want 1", len(changes))
	}
	ch := changes[0]
	if ch.changeType != ChangeDelete || ch.sectionTitle != "Drop" {
		t.Errorf("change = %+v, want delete of Drop", ch)
	}
	if ch.content != "" {
		t.Errorf("delete content = %q, want empty", ch.content)
	}
}

func TestClassifyChanges_BlankSectionDeleteSuppressed(t *testing.T) {
	// The vanished section has a heading but no body - no delete record.
	changes := classifyDocs(t,
		"# Keep\n\ntext\n\n## Empty\n\n",
		"# Keep\n\ntext\n")

	if len(changes) != 0 {
		t.Errorf("got %d changes, want 0 (blank delete suppressed): %+v", len(changes), changes)
	}
}

func TestClassifyChanges_EmissionOrder(t *testing.T) {
	// One of each: update A, insert Fresh Content, delete Legacy Section.
	// The vanished and added titles are far apart so the fuzzy pass cannot
	// pair them.
	changes := classifyDocs(t,
		"# A\n\nold a\n\n## Legacy Section\n\nlegacy body\n",
		"# A\n\nnew a\n\n## Fresh Content\n\nfresh body\n")

	if len(changes) != 3 {
		t.Fatalf("got %d changes, want 3: %+v", len(changes), changes)
	}
	wantOrder := []ChangeType{ChangeUpdate, ChangeInsertAfter, ChangeDelete}
	for i, want := range wantOrder {
		if changes[i].changeType != want {
			t.Errorf("changes[%d] = %s, want %s", i, changes[i].changeType, want)
		}
	}
}
