package dto

import "time"

// DatabaseStatsResponse backs the dashboard header. Reads degrade to zero
// values when the store is unreachable.
type DatabaseStatsResponse struct {
	TotalUsers         int64 `json:"total_users"`
	ActiveUsers        int64 `json:"active_users"`
	PremiumUsers       int64 `json:"premium_users"`
	TotalConversations int64 `json:"total_conversations"`
	TotalMessages      int64 `json:"total_messages"`
	TotalReactions     int64 `json:"total_reactions"`

	AverageMessagesPerConversation float64 `json:"average_messages_per_conversation"`
}

type UserAnalyticsResponse struct {
	ConversationCount    int64      `json:"conversation_count"`
	MessageCount         int64      `json:"message_count"`
	AverageWordsPerReply float64    `json:"average_words_per_reply"`
	Achievements         int        `json:"achievements"`
	LoginCount           int        `json:"login_count"`
	LastLoginAt          *time.Time `json:"last_login_at,omitempty"`
	MemberSince          time.Time  `json:"member_since"`

	// Not yet computed; kept in the payload so dashboard clients need no
	// migration when the formulas land.
	FavoriteTopics  []string `json:"favorite_topics"`
	EngagementScore float64  `json:"engagement_score"`
	StreakDays      int      `json:"streak_days"`
}

type ActivityLogResponse struct {
	Action       string                 `json:"action"`
	ResourceType string                 `json:"resource_type,omitempty"`
	ResourceId   string                 `json:"resource_id,omitempty"`
	Details      map[string]interface{} `json:"details,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
}
