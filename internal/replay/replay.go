package replay

import (
	"strings"

	"github.com/draftwell/sectiondiff/internal/diff"
	"github.com/draftwell/sectiondiff/internal/document"
)

// Apply replays recorded changes onto a base document and returns the
// resulting text. Changes are applied in the given order; callers should
// pass history in seq order.
//
// The base document's front matter, if any, is preserved unchanged - front
// matter never produces change records, so replay never touches it.
func Apply(base string, changes []diff.ChangeRecordCreated) (string, error) {
	doc := document.ParseSections(base)
	sections := make([]document.Section, len(doc.Sections))
	copy(sections, doc.Sections)

	// Titles spliced in by this replay, so later inserts sharing an anchor
	// can land after earlier ones instead of displacing them.
	inserted := make(map[string]bool)

	for _, ch := range changes {
		var err error
		switch ch.ChangeType {
		case diff.ChangeUpdate:
			sections, err = applyUpdate(sections, ch)
		case diff.ChangeInsertAfter:
			sections, err = applyInsert(sections, ch, inserted)
		case diff.ChangeDelete:
			sections, err = applyDelete(sections, ch)
		default:
			err = &ApplyError{
				Code:    ErrCodeUnknownChangeType,
				Message: "unrecognized change type",
				Title:   ch.SectionTitle,
				Seq:     ch.Seq,
			}
		}
		if err != nil {
			return "", err
		}
	}

	return render(doc.FrontMatter, sections), nil
}

func applyUpdate(sections []document.Section, ch diff.ChangeRecordCreated) ([]document.Section, error) {
	i := findSection(sections, ch.SectionTitle)
	if i < 0 {
		return nil, notFound(ch, "section to update not found")
	}
	sections[i].RawContent = ch.Content
	// A fuzzy-matched update can retitle the section; later records anchor
	// on the new title, so keep the model in sync with the content.
	if title, ok := document.FirstHeadingTitle(ch.Content); ok {
		sections[i].Title = &title
	}
	return sections, nil
}

func applyInsert(sections []document.Section, ch diff.ChangeRecordCreated, inserted map[string]bool) ([]document.Section, error) {
	// Empty reference anchors at the document start: right after the
	// preamble, which is always section zero.
	at := 0
	if ch.ReferenceSectionTitle != "" {
		at = findSection(sections, ch.ReferenceSectionTitle)
		if at < 0 {
			return nil, &ApplyError{
				Code:    ErrCodeReferenceNotFound,
				Message: "insert anchor not found",
				Title:   ch.ReferenceSectionTitle,
				Seq:     ch.Seq,
			}
		}
	}

	// A run of new sections anchors on the one matched section before the
	// run, so records sharing a reference must replay in recorded order.
	// Walk past sections this replay already spliced after the anchor.
	for at+1 < len(sections) {
		next := sections[at+1]
		if next.Title == nil || !inserted[document.NormalizeTitle(*next.Title)] {
			break
		}
		at++
	}

	// The blank line separating the anchor from the new heading belonged to
	// the anchor's trailing whitespace in the source document; no record
	// carries it, so restore it here.
	sections[at].RawContent = withTrailingBlankLine(sections[at].RawContent)

	title := ch.SectionTitle
	inserted[document.NormalizeTitle(title)] = true
	sec := document.Section{
		Title:      &title,
		RawContent: ch.Content,
	}

	out := make([]document.Section, 0, len(sections)+1)
	out = append(out, sections[:at+1]...)
	out = append(out, sec)
	out = append(out, sections[at+1:]...)
	return out, nil
}

// withTrailingBlankLine ensures content ends with a blank line, so a heading
// spliced after it starts a properly separated section. Empty content (the
// empty preamble) stays empty.
func withTrailingBlankLine(content string) string {
	if content == "" {
		return content
	}
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if !strings.HasSuffix(content, "\n\n") && !strings.HasSuffix(content, "\r\n\r\n") {
		content += "\n"
	}
	return content
}

func applyDelete(sections []document.Section, ch diff.ChangeRecordCreated) ([]document.Section, error) {
	i := findSection(sections, ch.SectionTitle)
	if i < 0 {
		return nil, notFound(ch, "section to delete not found")
	}
	if sections[i].IsPreamble() {
		// The preamble is structural - deleting it means blanking it.
		sections[i].RawContent = ""
		return sections, nil
	}
	return append(sections[:i], sections[i+1:]...), nil
}

// findSection locates a section by recorded title. The empty title refers to
// the preamble. Titles compare under the same NFC normalization the matcher
// uses.
func findSection(sections []document.Section, title string) int {
	for i := range sections {
		if title == "" {
			if sections[i].IsPreamble() {
				return i
			}
			continue
		}
		if sections[i].Title != nil && document.NormalizeTitle(*sections[i].Title) == document.NormalizeTitle(title) {
			return i
		}
	}
	return -1
}

// render reassembles the document from its front matter and sections.
// Sections spliced in from change records may lack a trailing newline, so a
// separator is restored whenever another section follows.
func render(fm *document.FrontMatter, sections []document.Section) string {
	var b strings.Builder
	if fm != nil {
		b.WriteString(fm.Raw)
	}
	for i, sec := range sections {
		content := sec.RawContent
		if i < len(sections)-1 && content != "" && !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		b.WriteString(content)
	}
	return b.String()
}

func notFound(ch diff.ChangeRecordCreated, msg string) error {
	return &ApplyError{
		Code:    ErrCodeSectionNotFound,
		Message: msg,
		Title:   ch.SectionTitle,
		Seq:     ch.Seq,
	}
}
