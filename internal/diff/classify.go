package diff

import (
	"sort"

	"github.com/draftwell/sectiondiff/internal/document"
)

// sectionChange is a classified change before persistence identity is
// attached.
type sectionChange struct {
	changeType     ChangeType
	sectionTitle   string
	content        string
	referenceTitle string
}

// classifyChanges turns a matching into typed changes, in emission order:
// updates (by old section position), then inserts (by new section position),
// then deletes (by old section position).
func classifyChanges(old, new []document.Section, m matching) []sectionChange {
	var changes []sectionChange

	// Updates: matched pairs whose content differs.
	pairs := make([]matchPair, len(m.pairs))
	copy(pairs, m.pairs)
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].oldIdx < pairs[j].oldIdx })

	for _, p := range pairs {
		oldSec := old[p.oldIdx]
		newSec := new[p.newIdx]
		if document.ContentMatches(oldSec.RawContent, newSec.RawContent) {
			continue
		}
		changes = append(changes, sectionChange{
			changeType:   ChangeUpdate,
			sectionTitle: titleOf(oldSec),
			content:      newSec.RawContent,
		})
	}

	// Inserts: unmatched new sections, anchored to the nearest preceding
	// new section that has a matched old counterpart.
	for j := range new {
		if m.matchedNew[j] {
			continue
		}
		changes = append(changes, sectionChange{
			changeType:     ChangeInsertAfter,
			sectionTitle:   titleOf(new[j]),
			content:        new[j].RawContent,
			referenceTitle: insertAnchor(new, m, j),
		})
	}

	// Deletes: unmatched old sections. Sections whose body was already
	// blank are suppressed - a vanished empty preamble or stripped front
	// matter is not a deletion worth recording.
	for i := range old {
		if m.matchedOld[i] {
			continue
		}
		if document.IsBlank(old[i].Body()) {
			continue
		}
		changes = append(changes, sectionChange{
			changeType:   ChangeDelete,
			sectionTitle: titleOf(old[i]),
		})
	}

	return changes
}

// insertAnchor walks backwards from the inserted section and returns the
// title of the nearest preceding matched section. Empty when no matched
// section precedes it, or when that section is the preamble - the consumer
// anchors at the document start by convention.
func insertAnchor(new []document.Section, m matching, idx int) string {
	for j := idx - 1; j >= 0; j-- {
		if m.matchedNew[j] {
			return titleOf(new[j])
		}
	}
	return ""
}

func titleOf(s document.Section) string {
	if s.Title == nil {
		return ""
	}
	return *s.Title
}
