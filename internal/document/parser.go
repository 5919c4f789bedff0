package document

import (
	"strings"
)

// Section is a contiguous block of text starting at a heading (or at the
// start of the document) and running to the next heading of any level or to
// the end of the document.
type Section struct {
	// Title is the heading text with surrounding whitespace trimmed.
	// Nil marks the preamble - the implicit section before the first heading.
	Title *string

	// Level is the heading depth (1-6). Zero for the preamble.
	Level int

	// RawContent is the section text exactly as it appeared in the source,
	// including the heading line and original line endings.
	RawContent string

	// Order is the section's position index within the document.
	Order int
}

// IsPreamble reports whether the section is the implicit preamble.
func (s Section) IsPreamble() bool {
	return s.Title == nil
}

// Body returns the section content with the heading line (if any) stripped.
// Used to decide whether a vanished section carried any real content.
func (s Section) Body() string {
	if s.Title == nil {
		return s.RawContent
	}
	if i := strings.IndexByte(s.RawContent, '\n'); i >= 0 {
		return s.RawContent[i+1:]
	}
	return ""
}

// ParsedDocument is the ordered section model for one version of a document.
// Constructed fresh per diff call and discarded after use.
type ParsedDocument struct {
	// FrontMatter is the leading metadata block, if one was present.
	FrontMatter *FrontMatter

	// Sections holds the preamble followed by one section per heading,
	// ordered by source position.
	Sections []Section
}

// ParseSections splits raw text into an ordered section list.
//
// A leading front-matter block is stripped first; the remainder is split on
// heading lines (one to six '#' characters at the start of a line, followed
// by a space and title text). The preamble section is always present, even
// when empty, so downstream matching stays uniform.
func ParseSections(content string) ParsedDocument {
	fm, rest := splitFrontMatter(content)

	doc := ParsedDocument{FrontMatter: fm}

	lines := splitLinesKeepEndings(rest)

	var preamble strings.Builder
	var current *Section
	order := 0

	flush := func() {
		if current != nil {
			doc.Sections = append(doc.Sections, *current)
			current = nil
		}
	}

	for _, line := range lines {
		level, title, ok := parseHeading(line)
		if !ok {
			if current != nil {
				current.RawContent += line
			} else {
				preamble.WriteString(line)
			}
			continue
		}

		if len(doc.Sections) == 0 && current == nil {
			// First heading closes the preamble.
			doc.Sections = append(doc.Sections, Section{
				Title:      nil,
				Level:      0,
				RawContent: preamble.String(),
				Order:      order,
			})
			order++
		}
		flush()
		t := title
		current = &Section{
			Title:      &t,
			Level:      level,
			RawContent: line,
			Order:      order,
		}
		order++
	}

	if len(doc.Sections) == 0 && current == nil {
		// No headings at all - the whole document is the preamble.
		doc.Sections = append(doc.Sections, Section{
			Title:      nil,
			Level:      0,
			RawContent: preamble.String(),
			Order:      0,
		})
	}
	flush()

	return doc
}

// FirstHeadingTitle returns the title of the heading line that opens raw,
// if raw begins with one. Section content produced by this package always
// starts at its heading, so this recovers a section's title from its raw
// content alone.
func FirstHeadingTitle(raw string) (string, bool) {
	line := raw
	if i := strings.IndexByte(raw, '\n'); i >= 0 {
		line = raw[:i+1]
	}
	_, title, ok := parseHeading(line)
	return title, ok
}

// parseHeading reports whether line is a markdown heading and, if so,
// returns its depth and trimmed title.
func parseHeading(line string) (level int, title string, ok bool) {
	trimmed := strings.TrimRight(line, "\r\n")
	for level < len(trimmed) && trimmed[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return 0, "", false
	}
	if level >= len(trimmed) || trimmed[level] != ' ' {
		return 0, "", false
	}
	title = strings.TrimSpace(trimmed[level:])
	if title == "" {
		return 0, "", false
	}
	return level, title, true
}

// splitLinesKeepEndings splits text into lines with their terminators
// attached, so reassembling sections preserves the source byte-for-byte.
func splitLinesKeepEndings(s string) []string {
	if s == "" {
		return nil
	}
	var lines []string
	for {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			lines = append(lines, s)
			return lines
		}
		lines = append(lines, s[:i+1])
		s = s[i+1:]
		if s == "" {
			return lines
		}
	}
}
