// Package diff compares two versions of a heading-delimited document and
// produces a minimal, typed set of section-level changes suitable for
// persisting as edit history and replaying later.
//
// The engine runs in two matching passes over the ordered section lists:
// an exact pass pairs sections with identical titles, then a fuzzy pass
// pairs leftovers whose titles are within Levenshtein distance 2. Matched
// pairs with differing content become updates; unmatched new sections become
// insert-after records anchored to the nearest preceding matched section;
// unmatched old sections become deletes, unless their body was blank.
//
// Records are handed to an injected SectionChangesPersistence sequentially
// in emission order - updates, then inserts, then deletes. Callers may rely
// on that order for the order of created identifiers. The first persistence
// failure aborts the remaining record creation and propagates unchanged.
package diff
