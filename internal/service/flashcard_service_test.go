package service

import (
	"testing"

	"github.com/samora254/KitabuNew/internal/model"
	"github.com/samora254/KitabuNew/internal/repository"
	"github.com/samora254/KitabuNew/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newFlashcardService(db *gorm.DB) *FlashcardService {
	return NewFlashcardService(
		repository.NewFlashcardRepository(db),
		repository.NewContentRepository(db),
		&fakeTutor{},
	)
}

func createFlashcards(t *testing.T, db *gorm.DB, topicID uint, count int) []model.Flashcard {
	t.Helper()
	cards := make([]model.Flashcard, count)
	for i := range cards {
		cards[i] = model.Flashcard{TopicID: topicID, Question: "q", Answer: "a", OrderIndex: i + 1}
		require.NoError(t, db.Create(&cards[i]).Error)
	}
	return cards
}

func TestMarkFlashcardKnownCountsEveryReview(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db)
	c := createCurriculum(t, db)
	svc := newFlashcardService(db)
	cards := createFlashcards(t, db, c.topics[0].ID, 1)

	require.NoError(t, svc.MarkFlashcardKnown(user.ID, cards[0].ID, true))
	require.NoError(t, svc.MarkFlashcardKnown(user.ID, cards[0].ID, false))
	require.NoError(t, svc.MarkFlashcardKnown(user.ID, cards[0].ID, true))

	var progress model.UserFlashcardProgress
	require.NoError(t, db.Where("user_id = ? AND flashcard_id = ?", user.ID, cards[0].ID).First(&progress).Error)
	assert.Equal(t, 3, progress.ReviewCount, "flipping isKnown still counts as a review")
	assert.True(t, progress.IsKnown)

	var rows int64
	require.NoError(t, db.Model(&model.UserFlashcardProgress{}).
		Where("user_id = ?", user.ID).Count(&rows).Error)
	assert.EqualValues(t, 1, rows)
}

func TestMarkFlashcardKnownUnknownCard(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db)
	svc := newFlashcardService(db)

	err := svc.MarkFlashcardKnown(user.ID, 9999, true)
	assert.ErrorIs(t, err, util.ErrFlashcardNotFound)
}

func TestTopicFlashcardsMergesProgress(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db)
	c := createCurriculum(t, db)
	svc := newFlashcardService(db)
	cards := createFlashcards(t, db, c.topics[0].ID, 3)

	require.NoError(t, svc.MarkFlashcardKnown(user.ID, cards[1].ID, true))

	merged, err := svc.TopicFlashcards(user.ID, c.topics[0].ID)
	require.NoError(t, err)
	require.Len(t, merged, 3)

	assert.False(t, merged[0].IsKnown)
	assert.Zero(t, merged[0].ReviewCount)
	assert.True(t, merged[1].IsKnown)
	assert.Equal(t, 1, merged[1].ReviewCount)
	assert.False(t, merged[2].IsKnown)
}
