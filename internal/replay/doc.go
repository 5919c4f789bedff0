// Package replay re-applies recorded section changes onto a base document.
//
// Given the change history produced by a diff invocation, Apply reconstructs
// the new document version from the old one: updates replace a titled
// section's content, insert-after records splice a new section after their
// anchor, deletes remove a section. Records must be applied in the order
// they were recorded (seq order).
package replay
