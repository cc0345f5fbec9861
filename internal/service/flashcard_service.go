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

// FlashcardWithProgress is a card merged with the requesting user's
// review state.
type FlashcardWithProgress struct {
	model.Flashcard
	IsKnown     bool `json:"isKnown"`
	ReviewCount int  `json:"reviewCount"`
}

type FlashcardService struct {
	FlashcardRepo *repository.FlashcardRepository
	ContentRepo   *repository.ContentRepository
	Tutor         TutorClient
}

func NewFlashcardService(
	flashcardRepo *repository.FlashcardRepository,
	contentRepo *repository.ContentRepository,
	tutor TutorClient,
) *FlashcardService {
	return &FlashcardService{
		FlashcardRepo: flashcardRepo,
		ContentRepo:   contentRepo,
		Tutor:         tutor,
	}
}

// TopicFlashcards returns a topic's cards in order, each carrying the
// user's review state (zero values for cards never reviewed).
func (s *FlashcardService) TopicFlashcards(userID, topicID uint) ([]FlashcardWithProgress, error) {
	cards, err := s.FlashcardRepo.FindByTopic(topicID)
	if err != nil {
		return nil, err
	}

	progress, err := s.FlashcardRepo.FindProgressByUserAndTopic(userID, topicID)
	if err != nil {
		return nil, err
	}
	byCard := make(map[uint]model.UserFlashcardProgress, len(progress))
	for _, p := range progress {
		byCard[p.FlashcardID] = p
	}

	merged := make([]FlashcardWithProgress, 0, len(cards))
	for _, card := range cards {
		entry := FlashcardWithProgress{Flashcard: card}
		if p, ok := byCard[card.ID]; ok {
			entry.IsKnown = p.IsKnown
			entry.ReviewCount = p.ReviewCount
		}
		merged = append(merged, entry)
	}
	return merged, nil
}

// MarkFlashcardKnown records one review of a card. Every call counts as
// a review regardless of which way isKnown flips.
func (s *FlashcardService) MarkFlashcardKnown(userID, flashcardID uint, isKnown bool) error {
	if _, err := s.FlashcardRepo.FindByID(flashcardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrFlashcardNotFound
		}
		return err
	}
	return s.FlashcardRepo.UpsertProgress(userID, flashcardID, isKnown, time.Now())
}

// GenerateFlashcards asks the tutor collaborator for new cards on a
// topic without persisting them.
func (s *FlashcardService) GenerateFlashcards(ctx context.Context, topicID uint, count int) ([]GeneratedFlashcard, error) {
	topic, subject, err := resolveTopicSubject(s.ContentRepo, topicID)
	if err != nil {
		return nil, err
	}
	return s.Tutor.GenerateFlashcards(ctx, topic.Name, subject.Name, count)
}
