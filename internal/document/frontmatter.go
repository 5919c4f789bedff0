package document

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// FrontMatter is the leading metadata block of a document. Presence is
// explicit: a nil *FrontMatter means no block was found; a non-nil value with
// nil Fields means the block existed but did not decode as a YAML mapping.
type FrontMatter struct {
	// Raw is the block exactly as it appeared, including both "---" lines.
	Raw string

	// Fields holds the decoded YAML mapping, when the block parsed cleanly.
	Fields map[string]any
}

// Has reports whether a decoded field with the given key is present.
func (f *FrontMatter) Has(key string) bool {
	if f == nil {
		return false
	}
	_, ok := f.Fields[key]
	return ok
}

// splitFrontMatter strips a leading front-matter block delimited by a "---"
// line and a later "---" line (optionally followed by a newline). Malformed
// or unterminated front matter is treated as absent: the full input is
// returned as the document body and no error is ever produced.
func splitFrontMatter(content string) (*FrontMatter, string) {
	first, rest, found := cutLine(content)
	if !found && first == "" {
		return nil, content
	}
	if strings.TrimRight(first, "\r\n") != "---" {
		return nil, content
	}

	// Scan for the closing delimiter line.
	offset := len(first)
	remaining := rest
	for remaining != "" {
		line, after, _ := cutLine(remaining)
		offset += len(line)
		remaining = after
		if strings.TrimRight(line, "\r\n") == "---" {
			raw := content[:offset]
			fm := &FrontMatter{Raw: raw}

			body := raw[len(first) : len(raw)-len(line)]
			var fields map[string]any
			if err := yaml.Unmarshal([]byte(body), &fields); err == nil {
				fm.Fields = fields
			}
			return fm, content[offset:]
		}
	}

	// Unterminated block - treat as no front matter at all.
	return nil, content
}

// cutLine returns the first line of s with its terminator attached, the
// remainder, and whether a newline was found.
func cutLine(s string) (line, rest string, found bool) {
	i := strings.IndexByte(s, '\n')
	if i < 0 {
		return s, "", false
	}
	return s[:i+1], s[i+1:], true
}
