package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario: two versions of a document
// and the expected diff outcome.
type Scenario struct {
	// Name uniquely identifies this scenario. Also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// DraftID and DocID are the identifiers stamped on change records.
	DraftID int64 `yaml:"draft_id"`
	DocID   int64 `yaml:"doc_id"`

	// Old and New are the two document versions to diff.
	Old string `yaml:"old"`
	New string `yaml:"new"`

	// Expect holds the expected outcome. If nil, only golden comparison
	// applies.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies the expected diff outcome.
type ExpectClause struct {
	HasChanges bool         `yaml:"has_changes"`
	Counts     ExpectCounts `yaml:"counts"`
	Summary    string       `yaml:"summary"`

	// Records, when present, is matched one-to-one against the emitted
	// records in order. Content is not compared here - golden traces
	// cover it.
	Records []ExpectRecord `yaml:"records,omitempty"`
}

// ExpectCounts mirrors diff.Counts in scenario files.
type ExpectCounts struct {
	Updated  int `yaml:"updated"`
	Inserted int `yaml:"inserted"`
	Deleted  int `yaml:"deleted"`
}

// ExpectRecord specifies one expected change record.
type ExpectRecord struct {
	ChangeType            string `yaml:"change_type"`
	SectionTitle          string `yaml:"section_title"`
	ReferenceSectionTitle string `yaml:"reference_section_title,omitempty"`
}

// LoadScenario reads and parses a single scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s: missing name", path)
	}
	return &s, nil
}

// LoadScenarioDir loads every *.yaml scenario in a directory, sorted by
// filename for deterministic test order.
func LoadScenarioDir(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading scenario dir %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)

	var scenarios []*Scenario
	for _, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}
