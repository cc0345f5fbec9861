package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/samora254/KitabuNew/internal/model"
	"github.com/samora254/KitabuNew/internal/repository"
	"github.com/samora254/KitabuNew/internal/util"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const (
	subjectsCacheKey = "kitabu:subjects"
	subjectsCacheTTL = 10 * time.Minute
)

// ContentService reads the curriculum hierarchy. Subjects are static
// reference data, so the full list is cached in redis.
type ContentService struct {
	ContentRepo *repository.ContentRepository
	Progress    *ProgressService
	Redis       *redis.Client
}

func NewContentService(contentRepo *repository.ContentRepository, progress *ProgressService, rdb *redis.Client) *ContentService {
	return &ContentService{
		ContentRepo: contentRepo,
		Progress:    progress,
		Redis:       rdb,
	}
}

func (s *ContentService) ListSubjects() ([]model.Subject, error) {
	if s.Redis != nil {
		if cached, err := s.Redis.Get(context.Background(), subjectsCacheKey).Result(); err == nil {
			var subjects []model.Subject
			if json.Unmarshal([]byte(cached), &subjects) == nil {
				return subjects, nil
			}
		}
	}

	subjects, err := s.ContentRepo.ListSubjects()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if encoded, err := json.Marshal(subjects); err == nil {
			s.Redis.Set(context.Background(), subjectsCacheKey, encoded, subjectsCacheTTL)
		}
	}
	return subjects, nil
}

func (s *ContentService) Subject(id uint) (*model.Subject, error) {
	subject, err := s.ContentRepo.FindSubjectByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSubjectNotFound
	}
	return subject, err
}

// StrandStatus is a strand decorated with the user's completion state
// and whether the sequential unlock rule lets them enter it.
type StrandStatus struct {
	model.Strand
	CompletedTopics int  `json:"completedTopics"`
	Unlocked        bool `json:"unlocked"`
}

// SubjectStrands returns a subject's strands in curriculum order with
// per-user unlock state.
func (s *ContentService) SubjectStrands(userID, subjectID uint) ([]StrandStatus, error) {
	if _, err := s.Subject(subjectID); err != nil {
		return nil, err
	}

	strands, err := s.ContentRepo.FindStrandsBySubject(subjectID)
	if err != nil {
		return nil, err
	}

	statuses := make([]StrandStatus, 0, len(strands))
	for i, strand := range strands {
		completed, err := s.Progress.ProgressRepo.CountCompletedByStrand(userID, strand.ID)
		if err != nil {
			return nil, err
		}
		unlocked, err := s.Progress.IsStrandUnlocked(userID, i, strands)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, StrandStatus{
			Strand:          strand,
			CompletedTopics: int(completed),
			Unlocked:        unlocked,
		})
	}
	return statuses, nil
}

func (s *ContentService) StrandTopics(strandID uint) ([]model.Topic, error) {
	if _, err := s.ContentRepo.FindStrandByID(strandID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrStrandNotFound
		}
		return nil, err
	}
	return s.ContentRepo.FindTopicsByStrand(strandID)
}
