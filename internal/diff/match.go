package diff

import (
	"github.com/draftwell/sectiondiff/internal/document"
)

// fuzzyThreshold is the exclusive upper bound on title edit distance for a
// fuzzy pairing: distance 2 matches, distance 3 does not.
const fuzzyThreshold = 3

// matching holds the outcome of pairing two ordered section lists. Indexes
// refer into the old and new slices handed to matchSections. Each section
// appears in at most one pair.
type matching struct {
	// pairs maps old index to new index, ordered by old position.
	pairs []matchPair

	matchedOld map[int]bool
	matchedNew map[int]bool
}

type matchPair struct {
	oldIdx int
	newIdx int
}

// matchSections pairs old and new sections in two passes.
//
// The exact pass walks old sections in order and claims the earliest
// unmatched new section with an identical title; nil titles (preambles)
// match each other. The fuzzy pass then walks the remaining old sections
// with non-nil titles and claims the unmatched new section at the smallest
// Levenshtein distance strictly below the threshold, ties broken by earliest
// new order. Preambles never participate in the fuzzy pass.
func matchSections(old, new []document.Section) matching {
	m := matching{
		matchedOld: make(map[int]bool, len(old)),
		matchedNew: make(map[int]bool, len(new)),
	}

	// Exact pass.
	for i := range old {
		for j := range new {
			if m.matchedNew[j] {
				continue
			}
			if document.TitlesEqual(old[i].Title, new[j].Title) {
				m.claim(i, j)
				break
			}
		}
	}

	// Fuzzy pass. Old sections go in source order, so when two old sections
	// are equidistant from the same new section, the earlier old one wins.
	for i := range old {
		if m.matchedOld[i] || old[i].Title == nil {
			continue
		}
		oldTitle := document.NormalizeTitle(*old[i].Title)

		best := -1
		bestDist := fuzzyThreshold
		for j := range new {
			if m.matchedNew[j] || new[j].Title == nil {
				continue
			}
			d := levenshtein(oldTitle, document.NormalizeTitle(*new[j].Title))
			if d < bestDist {
				bestDist = d
				best = j
			}
		}
		if best >= 0 {
			m.claim(i, best)
		}
	}

	return m
}

func (m *matching) claim(oldIdx, newIdx int) {
	m.pairs = append(m.pairs, matchPair{oldIdx: oldIdx, newIdx: newIdx})
	m.matchedOld[oldIdx] = true
	m.matchedNew[newIdx] = true
}
