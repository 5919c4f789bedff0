package harness

import (
	"fmt"
)

// Verify checks a scenario's expectations against an execution result and
// returns one error per violated expectation. A nil Expect clause verifies
// nothing.
func Verify(scenario *Scenario, result *Result) []error {
	if scenario.Expect == nil {
		return nil
	}
	expect := scenario.Expect

	var errs []error

	if result.Result.HasChanges != expect.HasChanges {
		errs = append(errs, fmt.Errorf("has_changes = %v, want %v", result.Result.HasChanges, expect.HasChanges))
	}
	if got, want := result.Result.Counts.Updated, expect.Counts.Updated; got != want {
		errs = append(errs, fmt.Errorf("counts.updated = %d, want %d", got, want))
	}
	if got, want := result.Result.Counts.Inserted, expect.Counts.Inserted; got != want {
		errs = append(errs, fmt.Errorf("counts.inserted = %d, want %d", got, want))
	}
	if got, want := result.Result.Counts.Deleted, expect.Counts.Deleted; got != want {
		errs = append(errs, fmt.Errorf("counts.deleted = %d, want %d", got, want))
	}
	if expect.Summary != "" && result.Result.Summary != expect.Summary {
		errs = append(errs, fmt.Errorf("summary = %q, want %q", result.Result.Summary, expect.Summary))
	}

	if expect.Records != nil {
		errs = append(errs, verifyRecords(expect.Records, result)...)
	}

	return errs
}

// verifyRecords matches expected records one-to-one, in order, against the
// persisted records.
func verifyRecords(expected []ExpectRecord, result *Result) []error {
	var errs []error

	if len(result.Records) != len(expected) {
		errs = append(errs, fmt.Errorf("recorded %d change(s), want %d", len(result.Records), len(expected)))
		return errs
	}

	for i, want := range expected {
		got := result.Records[i]
		if string(got.ChangeType) != want.ChangeType {
			errs = append(errs, fmt.Errorf("record[%d].change_type = %q, want %q", i, got.ChangeType, want.ChangeType))
		}
		if got.SectionTitle != want.SectionTitle {
			errs = append(errs, fmt.Errorf("record[%d].section_title = %q, want %q", i, got.SectionTitle, want.SectionTitle))
		}
		if got.ReferenceSectionTitle != want.ReferenceSectionTitle {
			errs = append(errs, fmt.Errorf("record[%d].reference_section_title = %q, want %q", i, got.ReferenceSectionTitle, want.ReferenceSectionTitle))
		}
	}

	return errs
}
