package diff

import (
	"errors"
	"fmt"
)

// PersistenceError wraps a failed CreateSectionChange call with the record
// that could not be persisted. Records already created before the failure
// remain in place - the engine performs no rollback.
type PersistenceError struct {
	// Record is the change that failed to persist.
	Record ChangeRecordInput

	// Err is the collaborator's error, unchanged.
	Err error
}

// Error implements the error interface.
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s change for section %q: %v", e.Record.ChangeType, e.Record.SectionTitle, e.Err)
}

// Unwrap returns the collaborator's error so errors.Is/errors.As see it.
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsPersistenceError reports whether err is (or wraps) a PersistenceError.
func IsPersistenceError(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
