package memory

import (
	"time"

	"tria-ai-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// TurnStateRepository holds per-conversation orchestration state in memory.
// Entries expire on their own so a crashed turn can never wedge a
// conversation permanently.
type TurnStateRepository struct {
	cache *cache.Cache
}

func NewTurnStateRepository() *TurnStateRepository {
	c := cache.New(10*time.Minute, 5*time.Minute)
	return &TurnStateRepository{
		cache: c,
	}
}

func (r *TurnStateRepository) Save(state *store.TurnState) {
	r.cache.Set(state.ConversationID, state, cache.DefaultExpiration)
}

func (r *TurnStateRepository) Get(conversationID string) (*store.TurnState, bool) {
	if x, found := r.cache.Get(conversationID); found {
		return x.(*store.TurnState), true
	}
	return nil, false
}

func (r *TurnStateRepository) Delete(conversationID string) {
	r.cache.Delete(conversationID)
}

// TryAcquire flips a conversation from idle into an active turn. It returns
// false when a turn is already in flight, which callers treat as a no-op
// rejection of the new submission.
func (r *TurnStateRepository) TryAcquire(conversationID, userID, input string) bool {
	if existing, found := r.Get(conversationID); found && existing.Phase != store.PhaseIdle {
		return false
	}
	r.Save(&store.TurnState{
		ConversationID: conversationID,
		UserID:         userID,
		Phase:          store.PhaseAwaitingPersonaA,
		LastInput:      input,
	})
	return true
}

// Advance moves an active turn to the given phase, keeping the rest of the
// state intact.
func (r *TurnStateRepository) Advance(conversationID, phase string) {
	if existing, found := r.Get(conversationID); found {
		existing.Phase = phase
		r.Save(existing)
	}
}

// Release returns the conversation to idle whatever phase it was in.
func (r *TurnStateRepository) Release(conversationID string) {
	r.Delete(conversationID)
}
