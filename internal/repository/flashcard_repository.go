package repository

import (
	"time"

	"github.com/samora254/KitabuNew/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FlashcardRepository struct {
	DB *gorm.DB
}

func NewFlashcardRepository(db *gorm.DB) *FlashcardRepository {
	return &FlashcardRepository{DB: db}
}

func (r *FlashcardRepository) FindByTopic(topicID uint) ([]model.Flashcard, error) {
	var cards []model.Flashcard
	err := r.DB.Where("topic_id = ?", topicID).Order("order_index ASC").Find(&cards).Error
	return cards, err
}

func (r *FlashcardRepository) FindByID(id uint) (*model.Flashcard, error) {
	var card model.Flashcard
	err := r.DB.First(&card, id).Error
	return &card, err
}

// FindProgressByUserAndTopic returns the user's progress rows for every
// flashcard under the topic.
func (r *FlashcardRepository) FindProgressByUserAndTopic(userID, topicID uint) ([]model.UserFlashcardProgress, error) {
	var progress []model.UserFlashcardProgress
	err := r.DB.
		Joins("JOIN flashcards ON flashcards.id = user_flashcard_progress.flashcard_id").
		Where("user_flashcard_progress.user_id = ? AND flashcards.topic_id = ?", userID, topicID).
		Find(&progress).Error
	return progress, err
}

// UpsertProgress records one review. Insert starts ReviewCount at 1; a
// conflict overwrites IsKnown/LastReviewed and bumps the counter, so
// ReviewCount counts reviews rather than correct answers.
func (r *FlashcardRepository) UpsertProgress(userID, flashcardID uint, isKnown bool, reviewedAt time.Time) error {
	progress := model.UserFlashcardProgress{
		UserID:       userID,
		FlashcardID:  flashcardID,
		IsKnown:      isKnown,
		ReviewCount:  1,
		LastReviewed: reviewedAt,
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "flashcard_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"is_known":      isKnown,
			"last_reviewed": reviewedAt,
			"review_count":  gorm.Expr("review_count + 1"),
		}),
	}).Create(&progress).Error
}

func (r *FlashcardRepository) FindProgress(userID, flashcardID uint) (*model.UserFlashcardProgress, error) {
	var progress model.UserFlashcardProgress
	err := r.DB.Where("user_id = ? AND flashcard_id = ?", userID, flashcardID).First(&progress).Error
	return &progress, err
}
