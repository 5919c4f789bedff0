// Package document parses heading-delimited text into an ordered section
// model and provides the content/title normalization used for comparison.
//
// A parsed document always contains exactly one preamble section (nil title)
// covering everything before the first heading, even when that span is empty.
// A leading front-matter block ("---" ... "---") is extracted before section
// splitting and is never represented as a section.
//
// # Critical Patterns
//
// CP-1: Parsing never fails
//   - Malformed or unterminated front matter is treated as absent
//   - Well-formed UTF-8 input always yields a ParsedDocument
//
// CP-2: Raw content is preserved byte-for-byte
//   - Section.RawContent includes the heading line and original line endings
//   - Normalization happens only at comparison time, never at parse time
//
// CP-3: Titles compare under NFC
//   - TitlesEqual normalizes both sides with unicode/norm before comparing
package document
