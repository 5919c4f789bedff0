package diff

import (
	"fmt"
	"strings"
)

// buildSummary renders counts into a stable human-readable string: non-zero
// counts in fixed order (updated, added, deleted), each pluralized, joined
// with ", ". Returns "No changes" when nothing changed.
func buildSummary(c Counts) string {
	if c.Total() == 0 {
		return "No changes"
	}

	var parts []string
	if c.Updated > 0 {
		parts = append(parts, countPhrase(c.Updated, "updated"))
	}
	if c.Inserted > 0 {
		parts = append(parts, countPhrase(c.Inserted, "added"))
	}
	if c.Deleted > 0 {
		parts = append(parts, countPhrase(c.Deleted, "deleted"))
	}
	return strings.Join(parts, ", ")
}

func countPhrase(n int, verb string) string {
	if n == 1 {
		return fmt.Sprintf("1 section %s", verb)
	}
	return fmt.Sprintf("%d sections %s", n, verb)
}
