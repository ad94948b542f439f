package constant

import "time"

// Message sender tags, persisted on every message row.
const (
	SenderUser   = "user"
	SenderRam    = "ram"
	SenderLaxman = "laxman"
)

// Conversation chat types.
const (
	ChatTypeTriple = "triple"
	ChatTypeStudy  = "study"
)

// Conversation lifecycle statuses.
const (
	ConversationStatusActive   = "active"
	ConversationStatusArchived = "archived"
	ConversationStatusDeleted  = "deleted"
)

// PersonaKey is a closed enumeration. Persona identity is never derived
// from display-name strings.
type PersonaKey string

const (
	PersonaRam    PersonaKey = "ram"
	PersonaLaxman PersonaKey = "laxman"
)

// Persona is the static configuration record for one AI identity.
type Persona struct {
	Key          PersonaKey
	Label        string
	Tagline      string
	SystemPrompt string
}

var personas = map[PersonaKey]Persona{
	PersonaRam: {
		Key:          PersonaRam,
		Label:        "Ram",
		Tagline:      "Dedicated & Fun",
		SystemPrompt: "You are Ram, a dedicated AI assistant who gives perfect answers with a touch of fun and engagement. You're intelligent, helpful, and make conversations enjoyable. Keep responses conversational and friendly. When other AIs respond, acknowledge them naturally in the conversation.",
	},
	PersonaLaxman: {
		Key:          PersonaLaxman,
		Label:        "Laxman",
		Tagline:      "Funny & Perfect",
		SystemPrompt: "You are Laxman, a funny and witty AI assistant who delivers perfect answers with humor and lightness. You add entertainment value while being accurate and helpful. Keep responses conversational and add appropriate humor. When other AIs respond, engage with them naturally like friends would.",
	},
}

// PersonaFor returns the static record for a key. Unknown keys fall back to
// Ram so a corrupted state value can never select an undefined persona.
func PersonaFor(key PersonaKey) Persona {
	if p, ok := personas[key]; ok {
		return p
	}
	return personas[PersonaRam]
}

// SenderLabel maps a persisted sender tag to the speaker label used when
// serializing transcript context into prompts.
func SenderLabel(sender string) string {
	switch sender {
	case SenderRam:
		return "Ram"
	case SenderLaxman:
		return "Laxman"
	default:
		return "User"
	}
}

// Turn orchestration parameters.
const (
	// ApologyReply substitutes a persona reply whenever the completion API
	// fails; the turn continues instead of aborting.
	ApologyReply = "Sorry, I'm having trouble connecting right now. Please try again!"

	// ContextWindowSize is how many prior transcript entries accompany each
	// new user message in a persona prompt.
	ContextWindowSize = 5

	// PersonaPacingDelay separates Ram's reply becoming visible from
	// Laxman's request being issued.
	PersonaPacingDelay = 1500 * time.Millisecond
)

// Activity log actions.
const (
	ActivityUserRegistered      = "user_registered"
	ActivityUserUpdated         = "user_updated"
	ActivityMessageSent         = "message_sent"
	ActivityConversationCreated = "conversation_created"
	ActivityConversationDeleted = "conversation_deleted"
)
