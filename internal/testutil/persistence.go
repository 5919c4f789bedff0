package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/draftwell/sectiondiff/internal/diff"
)

// RecordingPersistence is an in-memory diff.SectionChangesPersistence for
// tests. It records every change handed to it, assigns IDs and sequence
// numbers from its own monotonic counter so a given diff scenario yields
// identical values on every run, and can be told to fail at a specific call
// to exercise abort behavior.
//
// Thread-safety: all methods are safe for concurrent use, though the engine
// itself issues calls sequentially.
type RecordingPersistence struct {
	mu      sync.Mutex
	seq     int64
	records []diff.ChangeRecordCreated

	// failAt makes the nth call (1-based) return failErr. Zero disables.
	failAt  int
	failErr error
	calls   int
}

// NewRecordingPersistence creates an empty recording persistence. The first
// record gets seq 1.
func NewRecordingPersistence() *RecordingPersistence {
	return &RecordingPersistence{}
}

// FailAt arranges for the nth CreateSectionChange call (1-based) to return
// err without recording anything.
func (p *RecordingPersistence) FailAt(n int, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failAt = n
	p.failErr = err
}

// CreateSectionChange implements diff.SectionChangesPersistence.
func (p *RecordingPersistence) CreateSectionChange(_ context.Context, record diff.ChangeRecordInput) (diff.ChangeRecordCreated, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls++
	if p.failAt > 0 && p.calls == p.failAt {
		return diff.ChangeRecordCreated{}, fmt.Errorf("recording persistence: injected failure at call %d: %w", p.calls, p.failErr)
	}

	p.seq++
	created := diff.ChangeRecordCreated{
		ID:                p.seq,
		Seq:               p.seq,
		ChangeRecordInput: record,
	}
	p.records = append(p.records, created)
	return created, nil
}

// Records returns a copy of everything recorded so far, in creation order.
func (p *RecordingPersistence) Records() []diff.ChangeRecordCreated {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]diff.ChangeRecordCreated, len(p.records))
	copy(out, p.records)
	return out
}

// Calls returns how many times CreateSectionChange was invoked, including
// the failed call if one was injected.
func (p *RecordingPersistence) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}
