package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/draftwell/sectiondiff/internal/diff"
)

// TraceSnapshot captures the complete change-set trace for a scenario
// execution in a stable, golden-comparable shape. Import tokens are
// generated per invocation and excluded so traces stay byte-identical
// across runs.
type TraceSnapshot struct {
	ScenarioName string           `json:"scenario_name"`
	Result       diff.DiffResult  `json:"result"`
	Records      []RecordSnapshot `json:"records"`
}

// RecordSnapshot is one change record in a trace.
type RecordSnapshot struct {
	Seq                   int64  `json:"seq"`
	ChangeType            string `json:"change_type"`
	SectionTitle          string `json:"section_title"`
	Content               string `json:"content,omitempty"`
	ReferenceSectionTitle string `json:"reference_section_title,omitempty"`
}

// RunWithGolden executes a scenario and compares its trace against a golden
// file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails. Test failure (via goldie)
// occurs if the trace doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	AssertGolden(t, scenario.Name, result)
	return nil
}

// AssertGolden compares an already-obtained result's trace against the
// golden file for scenarioName.
func AssertGolden(t *testing.T, scenarioName string, result *Result) {
	t.Helper()

	snapshot := TraceSnapshot{
		ScenarioName: scenarioName,
		Result:       result.Result,
		Records:      make([]RecordSnapshot, 0, len(result.Records)),
	}
	for _, rec := range result.Records {
		snapshot.Records = append(snapshot.Records, RecordSnapshot{
			Seq:                   rec.Seq,
			ChangeType:            string(rec.ChangeType),
			SectionTitle:          rec.SectionTitle,
			Content:               rec.Content,
			ReferenceSectionTitle: rec.ReferenceSectionTitle,
		})
	}

	traceJSON, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		t.Fatalf("marshal trace snapshot: %v", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, traceJSON)
}
