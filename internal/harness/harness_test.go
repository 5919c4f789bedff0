package harness

import (
	"testing"
)

// TestScenarios runs every scenario under testdata/scenarios, verifies its
// expectations, and compares the full change-set trace against its golden
// file.
func TestScenarios(t *testing.T) {
	scenarios, err := LoadScenarioDir("testdata/scenarios")
	if err != nil {
		t.Fatalf("LoadScenarioDir() failed: %v", err)
	}
	if len(scenarios) == 0 {
		t.Fatal("no scenarios found")
	}

	for _, scenario := range scenarios {
		t.Run(scenario.Name, func(t *testing.T) {
			result, err := Run(scenario)
			if err != nil {
				t.Fatalf("Run() failed: %v", err)
			}

			for _, verr := range Verify(scenario, result) {
				t.Error(verr)
			}

			AssertGolden(t, scenario.Name, result)
		})
	}
}

func TestRun_RecordsShareImportToken(t *testing.T) {
	scenario := &Scenario{
		Name:    "token-sharing",
		DraftID: 7,
		DocID:   9,
		Old:     "# A\n\nOld A\n\n## B\n\nOld B\n",
		New:     "# A\n\nNew A\n\n## B\n\nNew B\n",
	}

	result, err := Run(scenario)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if len(result.Records) != 2 {
		t.Fatalf("recorded %d change(s), want 2", len(result.Records))
	}

	token := result.Records[0].ImportToken
	if token == "" {
		t.Error("import token is empty")
	}
	for i, rec := range result.Records {
		if rec.ImportToken != token {
			t.Errorf("record[%d] token = %q, want %q", i, rec.ImportToken, token)
		}
		if rec.DraftID != 7 || rec.DocID != 9 {
			t.Errorf("record[%d] ids = (%d, %d), want (7, 9)", i, rec.DraftID, rec.DocID)
		}
	}
}
