package repository

import (
	"time"

	"github.com/samora254/KitabuNew/internal/model"

	"gorm.io/gorm"
)

type ChatRepository struct {
	DB *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{DB: db}
}

func (r *ChatRepository) Create(session *model.ChatSession) error {
	return r.DB.Create(session).Error
}

// FindByIDAndUser scopes the lookup to the owner so another user's
// session ID behaves like a missing record.
func (r *ChatRepository) FindByIDAndUser(sessionID string, userID uint) (*model.ChatSession, error) {
	var session model.ChatSession
	err := r.DB.Where("id = ? AND user_id = ?", sessionID, userID).First(&session).Error
	return &session, err
}

func (r *ChatRepository) FindByUser(userID uint) ([]model.ChatSession, error) {
	var sessions []model.ChatSession
	err := r.DB.Where("user_id = ?", userID).Order("last_message_at DESC").Find(&sessions).Error
	return sessions, err
}

// AppendMessages adds messages to the end of the transcript. The
// transcript is append-only: nothing is ever edited, removed or
// reordered.
func (r *ChatRepository) AppendMessages(session *model.ChatSession, messages ...model.ChatMessage) error {
	session.Messages = append(session.Messages, messages...)
	session.LastMessageAt = time.Now()
	return r.DB.Model(session).
		Select("messages", "last_message_at").
		Updates(model.ChatSession{Messages: session.Messages, LastMessageAt: session.LastMessageAt}).Error
}
