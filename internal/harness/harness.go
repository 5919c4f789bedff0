package harness

import (
	"context"
	"fmt"

	"github.com/draftwell/sectiondiff/internal/diff"
	"github.com/draftwell/sectiondiff/internal/testutil"
)

// Result captures everything a scenario execution produced.
type Result struct {
	// Result is the DiffResult returned by the engine.
	Result diff.DiffResult

	// Records holds the persisted change records in creation order.
	Records []diff.ChangeRecordCreated
}

// Run executes a scenario's diff against an in-memory persistence and
// returns the outcome.
func Run(scenario *Scenario) (*Result, error) {
	persistence := testutil.NewRecordingPersistence()

	result, err := diff.CreateSectionChangesFromImport(
		context.Background(),
		scenario.DraftID,
		scenario.DocID,
		scenario.Old,
		scenario.New,
		persistence,
	)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	return &Result{
		Result:  result,
		Records: persistence.Records(),
	}, nil
}
