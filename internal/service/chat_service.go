package service

import (
	"context"
	"errors"
	"time"

	"github.com/samora254/KitabuNew/internal/model"
	"github.com/samora254/KitabuNew/internal/repository"
	"github.com/samora254/KitabuNew/internal/util"

	"gorm.io/gorm"
)

const (
	defaultSessionTitle = "Chat with Rafiki"

	// chatContextWindow is how many trailing transcript messages are
	// replayed to the tutor on each turn.
	chatContextWindow = 6
)

// ChatService keeps the append-only Rafiki transcripts and delegates
// reply generation to the tutor collaborator.
type ChatService struct {
	ChatRepo    *repository.ChatRepository
	ContentRepo *repository.ContentRepository
	Tutor       TutorClient
}

func NewChatService(
	chatRepo *repository.ChatRepository,
	contentRepo *repository.ContentRepository,
	tutor TutorClient,
) *ChatService {
	return &ChatService{
		ChatRepo:    chatRepo,
		ContentRepo: contentRepo,
		Tutor:       tutor,
	}
}

// PostMessageResult is the per-turn payload the chat UI renders.
type PostMessageResult struct {
	UserMessage model.ChatMessage `json:"userMessage"`
	AIMessage   model.ChatMessage `json:"aiMessage"`
	Suggestions []string          `json:"suggestions"`
}

// CreateSession starts a transcript with the student's opening message
// and Rafiki's reply already appended.
func (s *ChatService) CreateSession(ctx context.Context, userID uint, subjectID *uint, title, firstMessage string) (*model.ChatSession, error) {
	if title == "" {
		title = defaultSessionTitle
	}
	session := &model.ChatSession{
		UserID:        userID,
		SubjectID:     subjectID,
		Title:         title,
		Messages:      []model.ChatMessage{},
		StartedAt:     time.Now(),
		LastMessageAt: time.Now(),
		IsActive:      true,
	}
	if err := s.ChatRepo.Create(session); err != nil {
		return nil, err
	}

	userMessage := newChatMessage(model.ChatRoleUser, firstMessage)
	if err := s.ChatRepo.AppendMessages(session, userMessage); err != nil {
		return nil, err
	}

	reply := s.Tutor.GenerateTutorResponse(ctx, firstMessage, TutorContext{
		Subject:   s.subjectName(subjectID),
		Grade:     "8",
		UserLevel: "intermediate",
	})

	aiMessage := newChatMessage(model.ChatRoleAssistant, reply.Message)
	if err := s.ChatRepo.AppendMessages(session, aiMessage); err != nil {
		return nil, err
	}

	return s.ChatRepo.FindByIDAndUser(session.ID, userID)
}

// PostMessage appends one student turn and one Rafiki turn to an
// existing session. The session must belong to the caller.
func (s *ChatService) PostMessage(ctx context.Context, userID uint, sessionID, message string) (*PostMessageResult, error) {
	session, err := s.ChatRepo.FindByIDAndUser(sessionID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrChatSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	// Context is the tail of the transcript before this turn.
	prior := session.Messages
	if len(prior) > chatContextWindow {
		prior = prior[len(prior)-chatContextWindow:]
	}

	userMessage := newChatMessage(model.ChatRoleUser, message)
	if err := s.ChatRepo.AppendMessages(session, userMessage); err != nil {
		return nil, err
	}

	reply := s.Tutor.GenerateTutorResponse(ctx, message, TutorContext{
		Subject:          s.subjectName(session.SubjectID),
		Grade:            "8",
		UserLevel:        "intermediate",
		PreviousMessages: prior,
	})

	aiMessage := newChatMessage(model.ChatRoleAssistant, reply.Message)
	if err := s.ChatRepo.AppendMessages(session, aiMessage); err != nil {
		return nil, err
	}

	return &PostMessageResult{
		UserMessage: userMessage,
		AIMessage:   aiMessage,
		Suggestions: reply.Suggestions,
	}, nil
}

func (s *ChatService) UserSessions(userID uint) ([]model.ChatSession, error) {
	return s.ChatRepo.FindByUser(userID)
}

func (s *ChatService) Session(userID uint, sessionID string) (*model.ChatSession, error) {
	session, err := s.ChatRepo.FindByIDAndUser(sessionID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrChatSessionNotFound
	}
	return session, err
}

func (s *ChatService) subjectName(subjectID *uint) string {
	if subjectID == nil {
		return ""
	}
	subject, err := s.ContentRepo.FindSubjectByID(*subjectID)
	if err != nil {
		return ""
	}
	return subject.Name
}

func newChatMessage(role, content string) model.ChatMessage {
	return model.ChatMessage{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
