package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/samora254/KitabuNew/internal/model"
	"github.com/samora254/KitabuNew/internal/repository"
	"github.com/samora254/KitabuNew/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newChatService(db *gorm.DB, tutor TutorClient) *ChatService {
	return NewChatService(
		repository.NewChatRepository(db),
		repository.NewContentRepository(db),
		tutor,
	)
}

func TestCreateSessionAppendsBothTurns(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db)
	c := createCurriculum(t, db)
	tutor := &fakeTutor{}
	svc := newChatService(db, tutor)

	session, err := svc.CreateSession(context.Background(), user.ID, &c.subject.ID, "", "Help me with fractions")
	require.NoError(t, err)

	assert.Equal(t, "Chat with Rafiki", session.Title)
	require.Len(t, session.Messages, 2)
	assert.Equal(t, model.ChatRoleUser, session.Messages[0].Role)
	assert.Equal(t, "Help me with fractions", session.Messages[0].Content)
	assert.Equal(t, model.ChatRoleAssistant, session.Messages[1].Role)
	assert.Equal(t, "reply 1", session.Messages[1].Content)

	assert.Equal(t, "Mathematics", tutor.lastContext.Subject)
	assert.Equal(t, "8", tutor.lastContext.Grade)
}

func TestPostMessageKeepsChronologicalOrder(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db)
	tutor := &fakeTutor{}
	svc := newChatService(db, tutor)

	session, err := svc.CreateSession(context.Background(), user.ID, nil, "Revision", "first")
	require.NoError(t, err)

	for i := 2; i <= 3; i++ {
		result, err := svc.PostMessage(context.Background(), user.ID, session.ID, fmt.Sprintf("question %d", i))
		require.NoError(t, err)
		assert.Equal(t, model.ChatRoleUser, result.UserMessage.Role)
		assert.Equal(t, model.ChatRoleAssistant, result.AIMessage.Role)
		assert.NotEmpty(t, result.Suggestions)
	}

	reloaded, err := svc.Session(user.ID, session.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Messages, 6)
	wantRoles := []string{
		model.ChatRoleUser, model.ChatRoleAssistant,
		model.ChatRoleUser, model.ChatRoleAssistant,
		model.ChatRoleUser, model.ChatRoleAssistant,
	}
	for i, msg := range reloaded.Messages {
		assert.Equal(t, wantRoles[i], msg.Role, "message %d", i)
	}
	assert.Equal(t, "question 3", reloaded.Messages[4].Content)
}

func TestPostMessageContextWindow(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db)
	tutor := &fakeTutor{}
	svc := newChatService(db, tutor)

	session, err := svc.CreateSession(context.Background(), user.ID, nil, "", "first")
	require.NoError(t, err)

	// Build a transcript longer than the replay window.
	for i := 0; i < 4; i++ {
		_, err := svc.PostMessage(context.Background(), user.ID, session.ID, fmt.Sprintf("turn %d", i))
		require.NoError(t, err)
	}

	// 10 messages exist; the next turn must replay only the last 6.
	_, err = svc.PostMessage(context.Background(), user.ID, session.ID, "latest")
	require.NoError(t, err)
	assert.Len(t, tutor.lastContext.PreviousMessages, 6)
	assert.Equal(t, "turn 1", tutor.lastContext.PreviousMessages[0].Content)
}

func TestSessionOwnership(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db)
	intruder := createUser(t, db)
	svc := newChatService(db, &fakeTutor{})

	session, err := svc.CreateSession(context.Background(), owner.ID, nil, "", "hello")
	require.NoError(t, err)

	_, err = svc.Session(intruder.ID, session.ID)
	assert.ErrorIs(t, err, util.ErrChatSessionNotFound)

	_, err = svc.PostMessage(context.Background(), intruder.ID, session.ID, "mine now")
	assert.ErrorIs(t, err, util.ErrChatSessionNotFound)
}

func TestUserSessionsOrderedByRecency(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db)
	svc := newChatService(db, &fakeTutor{})

	first, err := svc.CreateSession(context.Background(), user.ID, nil, "older", "a")
	require.NoError(t, err)
	second, err := svc.CreateSession(context.Background(), user.ID, nil, "newer", "b")
	require.NoError(t, err)

	// Touch the first session so it becomes the most recent.
	_, err = svc.PostMessage(context.Background(), user.ID, first.ID, "again")
	require.NoError(t, err)

	sessions, err := svc.UserSessions(user.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, first.ID, sessions[0].ID)
	assert.Equal(t, second.ID, sessions[1].ID)
}
