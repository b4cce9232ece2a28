package jobs

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrackerStartsIdle(t *testing.T) {
	tracker := NewTracker()
	snapshot := tracker.Snapshot()

	assert.Equal(t, StageIdle, snapshot.Stage)
	assert.Equal(t, "Ready", snapshot.Message)
	assert.False(t, snapshot.LockHeld)
}

func TestBeginAdmitsJob(t *testing.T) {
	tracker := NewTracker()

	generationID, err := tracker.Begin("alice")
	require.NoError(t, err)
	assert.NotEmpty(t, generationID)

	snapshot := tracker.Snapshot()
	assert.Equal(t, StageStarting, snapshot.Stage)
	assert.True(t, snapshot.LockHeld)
	assert.Equal(t, "alice", snapshot.Username)
	assert.Equal(t, generationID, snapshot.GenerationID)
}

func TestBeginBlocksWhileRunning(t *testing.T) {
	tracker := NewTracker()

	_, err := tracker.Begin("alice")
	require.NoError(t, err)

	_, err = tracker.Begin("bob")
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	// The running job is untouched by the rejected attempt.
	assert.Equal(t, "alice", tracker.Snapshot().Username)
}

func TestBeginHealsStaleLockAfterCompletion(t *testing.T) {
	tracker := NewTracker()

	first, err := tracker.Begin("alice")
	require.NoError(t, err)

	// Worker finished but never released the lock.
	tracker.Complete("out.txt")

	second, err := tracker.Begin("bob")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.Equal(t, "bob", tracker.Snapshot().Username)
}

func TestBeginHealsStaleLockAfterFailure(t *testing.T) {
	tracker := NewTracker()

	_, err := tracker.Begin("alice")
	require.NoError(t, err)
	tracker.Fail(errors.New("boom"))

	_, err = tracker.Begin("bob")
	require.NoError(t, err)

	snapshot := tracker.Snapshot()
	assert.Equal(t, StageStarting, snapshot.Stage)
	assert.Empty(t, snapshot.Error)
}

func TestUpdatePreservesJobIdentity(t *testing.T) {
	tracker := NewTracker()
	generationID, err := tracker.Begin("alice")
	require.NoError(t, err)

	tracker.Update(StageFetchingPosts, 40, "Processed 40 posts...")

	snapshot := tracker.Snapshot()
	assert.Equal(t, StageFetchingPosts, snapshot.Stage)
	assert.Equal(t, 40, snapshot.Progress)
	assert.Equal(t, "Processed 40 posts...", snapshot.Message)
	assert.Equal(t, generationID, snapshot.GenerationID)
	assert.Equal(t, "alice", snapshot.Username)
	assert.True(t, snapshot.LockHeld)
}

func TestCompleteRecordsArtifact(t *testing.T) {
	tracker := NewTracker()
	_, err := tracker.Begin("alice")
	require.NoError(t, err)

	tracker.Complete("alice_persona_20250101_120000.txt")

	snapshot := tracker.Snapshot()
	assert.Equal(t, StageCompleted, snapshot.Stage)
	assert.True(t, snapshot.Completed)
	assert.Equal(t, 100, snapshot.Progress)
	assert.Equal(t, "alice_persona_20250101_120000.txt", snapshot.OutputRef)
}

func TestFailRecordsError(t *testing.T) {
	tracker := NewTracker()
	_, err := tracker.Begin("alice")
	require.NoError(t, err)

	tracker.Fail(errors.New("no data found for user 'alice'"))

	snapshot := tracker.Snapshot()
	assert.Equal(t, StageError, snapshot.Stage)
	assert.Equal(t, "no data found for user 'alice'", snapshot.Error)
	assert.Equal(t, "Error: no data found for user 'alice'", snapshot.Message)
	assert.False(t, snapshot.Completed)
}

func TestReleaseClearsLock(t *testing.T) {
	tracker := NewTracker()
	_, err := tracker.Begin("alice")
	require.NoError(t, err)

	tracker.Release()
	assert.False(t, tracker.Snapshot().LockHeld)

	_, err = tracker.Begin("bob")
	assert.NoError(t, err)
}

func TestResetReturnsToIdle(t *testing.T) {
	tracker := NewTracker()
	_, err := tracker.Begin("alice")
	require.NoError(t, err)
	tracker.Update(StageGeneratingPersona, 60, "working")

	tracker.Reset()

	snapshot := tracker.Snapshot()
	assert.Equal(t, StageIdle, snapshot.Stage)
	assert.Equal(t, "Ready (manually reset)", snapshot.Message)
	assert.False(t, snapshot.LockHeld)
	assert.Empty(t, snapshot.Username)
}

func TestStageTerminal(t *testing.T) {
	assert.True(t, StageCompleted.Terminal())
	assert.True(t, StageError.Terminal())
	assert.False(t, StageIdle.Terminal())
	assert.False(t, StageGeneratingPersona.Terminal())
}

func TestSnapshotSafeUnderConcurrentReads(t *testing.T) {
	tracker := NewTracker()
	_, err := tracker.Begin("alice")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 200 {
				snapshot := tracker.Snapshot()
				// Every read observes a complete record, never a torn one.
				assert.Equal(t, "alice", snapshot.Username)
			}
		}()
	}
	for i := range 200 {
		tracker.Update(StagePreparingData, i%100, "working")
	}
	wg.Wait()
}
