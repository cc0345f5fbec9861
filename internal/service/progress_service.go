package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/samora254/KitabuNew/internal/model"
	"github.com/samora254/KitabuNew/internal/repository"
	"github.com/samora254/KitabuNew/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// XPPerLevel drives the level formula: level = xp/500 + 1.
	XPPerLevel = 500

	// StrandUnlockRatio of a strand's topics must be completed before
	// the next strand opens up.
	StrandUnlockRatio = 0.8

	// SubjectCompleteRatio of a subject's expected total must be
	// completed for the subject to count as done.
	SubjectCompleteRatio = 0.9

	statsCacheTTL = 5 * time.Minute
)

// LearnerStats is the aggregate progress summary shown on the dashboard.
type LearnerStats struct {
	TotalXP           int `json:"totalXp"`
	CurrentLevel      int `json:"currentLevel"`
	CompletedSubjects int `json:"completedSubjects"`
	StudyStreak       int `json:"studyStreak"`
	AverageScore      int `json:"averageScore"`
}

// LevelForXP derives the level tier from accumulated XP. Pure and
// monotonic: more XP never lowers the level.
func LevelForXP(totalXP int) int {
	if totalXP < 0 {
		totalXP = 0
	}
	return totalXP/XPPerLevel + 1
}

// ProgressService owns the per-topic completion ledger, the XP event
// ledger derived from it, and the aggregate statistics.
type ProgressService struct {
	ContentRepo  *repository.ContentRepository
	ProgressRepo *repository.ProgressRepository
	UserRepo     *repository.UserRepository
	DB           *gorm.DB
	Redis        *redis.Client
}

func NewProgressService(
	contentRepo *repository.ContentRepository,
	progressRepo *repository.ProgressRepository,
	userRepo *repository.UserRepository,
	db *gorm.DB,
	rdb *redis.Client,
) *ProgressService {
	return &ProgressService{
		ContentRepo:  contentRepo,
		ProgressRepo: progressRepo,
		UserRepo:     userRepo,
		DB:           db,
		Redis:        rdb,
	}
}

// RecordTopicCompletion upserts the user's progress row for the topic
// and, on a transition into completed, awards the topic's XP through the
// event ledger. A topic that does not resolve to a strand and subject is
// a silent no-op: the caller gets defaults, not an error.
func (s *ProgressService) RecordTopicCompletion(userID, topicID uint, isCompleted bool, score *int) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.recordTopicCompletionTx(tx, userID, topicID, isCompleted, score)
	})
}

// recordTopicCompletionTx is the transactional body, shared with quiz
// submission so the attempt insert and the progress update commit or
// roll back together.
func (s *ProgressService) recordTopicCompletionTx(tx *gorm.DB, userID, topicID uint, isCompleted bool, score *int) error {
	contentRepo := s.ContentRepo.WithTx(tx)

	topic, err := contentRepo.FindTopicByID(topicID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	strand, err := contentRepo.FindStrandByID(topic.StrandID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	now := time.Now()
	progress := model.UserProgress{
		UserID:       userID,
		SubjectID:    strand.SubjectID,
		StrandID:     topic.StrandID,
		TopicID:      topicID,
		IsCompleted:  isCompleted,
		Score:        score,
		LastAccessed: now,
	}
	if isCompleted {
		progress.CompletedAt = &now
	}

	progressRepo := s.ProgressRepo.WithTx(tx)
	if err := progressRepo.Upsert(&progress); err != nil {
		return err
	}

	if isCompleted && topic.XPReward > 0 {
		created, err := progressRepo.AppendXPEvent(&model.XPEvent{
			UserID:  userID,
			TopicID: topicID,
			Amount:  topic.XPReward,
			Reason:  model.XPReasonTopicCompleted,
		})
		if err != nil {
			return err
		}
		// A repeat completion finds its ledger entry already present
		// and awards nothing.
		if created {
			total, err := progressRepo.SumXP(userID)
			if err != nil {
				return err
			}
			if err := s.UserRepo.WithTx(tx).SetXPTotals(userID, total, LevelForXP(total)); err != nil {
				return err
			}
		}
	}

	if err := s.touchStudyStreakTx(tx, userID, now); err != nil {
		return err
	}

	s.invalidateStats(userID)
	return nil
}

// touchStudyStreakTx advances the daily study streak: same day keeps it,
// a gap of exactly one day extends it, anything longer restarts at 1.
func (s *ProgressService) touchStudyStreakTx(tx *gorm.DB, userID uint, now time.Time) error {
	userRepo := s.UserRepo.WithTx(tx)
	user, err := userRepo.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	today := now.Truncate(24 * time.Hour)
	streak := 1
	if user.LastStudyDate != nil {
		last := user.LastStudyDate.Truncate(24 * time.Hour)
		switch {
		case last.Equal(today):
			return nil
		case today.Sub(last) == 24*time.Hour:
			streak = user.StudyStreak + 1
		}
	}
	return userRepo.SetStudyStreak(userID, streak, now)
}

// ComputeStats derives the learner's aggregate statistics. Results are
// cached briefly in redis; the cache is dropped whenever progress is
// written.
func (s *ProgressService) ComputeStats(userID uint) (*LearnerStats, error) {
	cacheKey := statsCacheKey(userID)
	if s.Redis != nil {
		if cached, err := s.Redis.Get(context.Background(), cacheKey).Result(); err == nil {
			var stats LearnerStats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	user, err := s.UserRepo.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &LearnerStats{CurrentLevel: 1}, nil
	}
	if err != nil {
		return nil, err
	}

	progress, err := s.ProgressRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	scored := 0
	scoreSum := 0
	for _, p := range progress {
		if p.Score != nil {
			scored++
			scoreSum += *p.Score
		}
	}
	averageScore := 0
	if scored > 0 {
		averageScore = int(math.Round(float64(scoreSum) / float64(scored)))
	}

	completedSubjects, err := s.countCompletedSubjects(userID)
	if err != nil {
		return nil, err
	}

	stats := &LearnerStats{
		TotalXP:           user.TotalXP,
		CurrentLevel:      LevelForXP(user.TotalXP),
		CompletedSubjects: completedSubjects,
		StudyStreak:       user.StudyStreak,
		AverageScore:      averageScore,
	}

	if s.Redis != nil {
		if encoded, err := json.Marshal(stats); err == nil {
			s.Redis.Set(context.Background(), cacheKey, encoded, statsCacheTTL)
		}
	}
	return stats, nil
}

// countCompletedSubjects counts subjects where the user's completed
// topics reach 90% of the subject's expected total (floor semantics, so
// 17 of 20 does not count but 18 does).
func (s *ProgressService) countCompletedSubjects(userID uint) (int, error) {
	subjects, err := s.ContentRepo.ListSubjects()
	if err != nil {
		return 0, err
	}

	completedSubjects := 0
	for _, subject := range subjects {
		rows, err := s.ProgressRepo.FindByUserAndSubject(userID, subject.ID)
		if err != nil {
			return 0, err
		}
		completed := 0
		for _, p := range rows {
			if p.IsCompleted {
				completed++
			}
		}
		threshold := int(math.Floor(float64(subject.TotalStrands) * SubjectCompleteRatio))
		if threshold > 0 && completed >= threshold {
			completedSubjects++
		}
	}
	return completedSubjects, nil
}

// IsStrandUnlocked reports whether the strand at the given position in
// the ordered slice is open for the user. The first strand is always
// open; strand N needs ceil(80%) of strand N-1's topics completed.
func (s *ProgressService) IsStrandUnlocked(userID uint, strandIndex int, strands []model.Strand) (bool, error) {
	if strandIndex <= 0 {
		return true, nil
	}
	if strandIndex >= len(strands) {
		return false, nil
	}

	prev := strands[strandIndex-1]
	completed, err := s.ProgressRepo.CountCompletedByStrand(userID, prev.ID)
	if err != nil {
		return false, err
	}
	needed := int64(math.Ceil(float64(prev.TotalTopics) * StrandUnlockRatio))
	return completed >= needed, nil
}

func (s *ProgressService) UserProgress(userID uint) ([]model.UserProgress, error) {
	return s.ProgressRepo.FindByUser(userID)
}

func (s *ProgressService) UserSubjectProgress(userID, subjectID uint) ([]model.UserProgress, error) {
	return s.ProgressRepo.FindByUserAndSubject(userID, subjectID)
}

func (s *ProgressService) invalidateStats(userID uint) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(context.Background(), statsCacheKey(userID)).Err(); err != nil {
		logger.Log.Warn("failed to invalidate stats cache", zap.Uint("userId", userID), zap.Error(err))
	}
}

func statsCacheKey(userID uint) string {
	return fmt.Sprintf("kitabu:stats:%d", userID)
}
