package memory

import (
	"testing"

	"tria-ai-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

func TestTryAcquireRejectsActiveTurn(t *testing.T) {
	repo := NewTurnStateRepository()

	assert.True(t, repo.TryAcquire("conv-1", "user-1", "first message"))
	assert.False(t, repo.TryAcquire("conv-1", "user-1", "second message"), "an active turn must reject new submissions")

	// A different conversation is unaffected.
	assert.True(t, repo.TryAcquire("conv-2", "user-1", "other conversation"))
}

func TestTryAcquireRecordsInitialState(t *testing.T) {
	repo := NewTurnStateRepository()

	repo.TryAcquire("conv-1", "user-1", "hello there")

	state, found := repo.Get("conv-1")
	if assert.True(t, found) {
		assert.Equal(t, "conv-1", state.ConversationID)
		assert.Equal(t, "user-1", state.UserID)
		assert.Equal(t, store.PhaseAwaitingPersonaA, state.Phase)
		assert.Equal(t, "hello there", state.LastInput)
	}
}

func TestAdvanceUpdatesPhaseOnly(t *testing.T) {
	repo := NewTurnStateRepository()
	repo.TryAcquire("conv-1", "user-1", "hello")

	repo.Advance("conv-1", store.PhaseAwaitingPersonaB)

	state, found := repo.Get("conv-1")
	if assert.True(t, found) {
		assert.Equal(t, store.PhaseAwaitingPersonaB, state.Phase)
		assert.Equal(t, "hello", state.LastInput)
	}
}

func TestAdvanceOnUnknownConversationIsNoOp(t *testing.T) {
	repo := NewTurnStateRepository()

	repo.Advance("conv-missing", store.PhaseAwaitingPersonaB)

	_, found := repo.Get("conv-missing")
	assert.False(t, found)
}

func TestReleaseAllowsReacquisition(t *testing.T) {
	repo := NewTurnStateRepository()

	assert.True(t, repo.TryAcquire("conv-1", "user-1", "first turn"))
	repo.Release("conv-1")

	_, found := repo.Get("conv-1")
	assert.False(t, found)
	assert.True(t, repo.TryAcquire("conv-1", "user-1", "second turn"))
}
