package model

import (
	"time"
)

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is a value type inside a session transcript, not a row of
// its own. Timestamp is an ISO-8601 string.
// swagger:model ChatMessage
type ChatMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// ChatSession holds the full transcript of one Rafiki conversation as an
// ordered JSON array. Messages are append-only: no edits, no deletes,
// no reordering.
// swagger:model ChatSession
type ChatSession struct {
	UUIDBase
	UserID        uint          `gorm:"index;not null" json:"userId"`
	SubjectID     *uint         `gorm:"index" json:"subjectId"`
	Title         string        `gorm:"size:255" json:"title"`
	Messages      []ChatMessage `gorm:"type:json;serializer:json" json:"messages"`
	StartedAt     time.Time     `json:"startedAt"`
	LastMessageAt time.Time     `json:"lastMessageAt"`
	IsActive      bool          `gorm:"default:true" json:"isActive"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
