package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByChatType filters conversations by their chat-type discriminator.
type ByChatType struct {
	ChatType string
}

func (s ByChatType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_type = ?", s.ChatType)
}

// ByStatus filters conversations by lifecycle status.
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// FavoritesOnly keeps conversations flagged as favorite.
type FavoritesOnly struct{}

func (s FavoritesOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_favorite = ?", true)
}

// TitleSearch matches title or description case-insensitively by substring.
type TitleSearch struct {
	Term string
}

func (s TitleSearch) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Term + "%"
	return db.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
}

// ByConversationID filters child rows by their owning conversation.
type ByConversationID struct {
	ConversationID uuid.UUID
}

func (s ByConversationID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("conversation_id = ?", s.ConversationID)
}

// NotDeletedMessages filters out soft-deleted messages.
type NotDeletedMessages struct{}

func (s NotDeletedMessages) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false)
}
