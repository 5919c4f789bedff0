package testutil

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftwell/sectiondiff/internal/diff"
)

func TestRecordingPersistence_AssignsSequentialIdentity(t *testing.T) {
	p := NewRecordingPersistence()
	ctx := context.Background()

	for i, title := range []string{"Alpha", "Beta"} {
		created, err := p.CreateSectionChange(ctx, diff.ChangeRecordInput{
			ChangeType:   diff.ChangeUpdate,
			SectionTitle: title,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), created.ID)
		assert.Equal(t, int64(i+1), created.Seq)
	}

	records := p.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "Alpha", records[0].SectionTitle)
	assert.Equal(t, "Beta", records[1].SectionTitle)
	assert.Equal(t, 2, p.Calls())
}

func TestRecordingPersistence_FailAt(t *testing.T) {
	p := NewRecordingPersistence()
	ctx := context.Background()
	boom := errors.New("boom")
	p.FailAt(2, boom)

	_, err := p.CreateSectionChange(ctx, diff.ChangeRecordInput{SectionTitle: "Alpha"})
	require.NoError(t, err)

	_, err = p.CreateSectionChange(ctx, diff.ChangeRecordInput{SectionTitle: "Beta"})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	// The failed call records nothing but still counts.
	assert.Len(t, p.Records(), 1)
	assert.Equal(t, 2, p.Calls())
}

func TestRecordingPersistence_ConcurrentSeqsNeverRepeat(t *testing.T) {
	p := NewRecordingPersistence()
	ctx := context.Background()
	const workers = 20
	const perWorker = 50

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				_, err := p.CreateSectionChange(ctx, diff.ChangeRecordInput{SectionTitle: "Alpha"})
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	records := p.Records()
	require.Len(t, records, workers*perWorker)
	seen := make(map[int64]bool, len(records))
	for _, rec := range records {
		require.False(t, seen[rec.Seq], "seq %d assigned twice", rec.Seq)
		seen[rec.Seq] = true
	}
}

func TestRecordingPersistence_RecordsReturnsCopy(t *testing.T) {
	p := NewRecordingPersistence()
	_, err := p.CreateSectionChange(context.Background(), diff.ChangeRecordInput{SectionTitle: "Alpha"})
	require.NoError(t, err)

	records := p.Records()
	records[0].SectionTitle = "mutated"
	assert.Equal(t, "Alpha", p.Records()[0].SectionTitle)
}
