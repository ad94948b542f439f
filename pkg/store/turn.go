package store

// TurnState tracks where a conversation's active turn sits in the
// user → Ram → Laxman sequence. The store is the re-entrancy guard: a new
// submission is accepted only while the conversation is idle.
type TurnState struct {
	ConversationID string `json:"conversation_id"`
	UserID         string `json:"user_id"`
	Phase          string `json:"phase"`
	LastInput      string `json:"last_input"`
}

const (
	PhaseIdle             = "IDLE"
	PhaseAwaitingPersonaA = "AWAITING_PERSONA_A"
	PhaseAwaitingPersonaB = "AWAITING_PERSONA_B"
)
