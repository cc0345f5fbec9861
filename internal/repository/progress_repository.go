package repository

import (
	"errors"

	"github.com/samora254/KitabuNew/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// WithTx returns a copy bound to the given transaction.
func (r *ProgressRepository) WithTx(tx *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: tx}
}

func (r *ProgressRepository) FindByUser(userID uint) ([]model.UserProgress, error) {
	var progress []model.UserProgress
	err := r.DB.Where("user_id = ?", userID).Find(&progress).Error
	return progress, err
}

func (r *ProgressRepository) FindByUserAndSubject(userID, subjectID uint) ([]model.UserProgress, error) {
	var progress []model.UserProgress
	err := r.DB.Where("user_id = ? AND subject_id = ?", userID, subjectID).Find(&progress).Error
	return progress, err
}

// Upsert writes the row keyed by (user_id, topic_id): insert on first
// touch, overwrite completion state afterwards. Never duplicates.
func (r *ProgressRepository) Upsert(p *model.UserProgress) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "topic_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"is_completed":  p.IsCompleted,
			"score":         p.Score,
			"completed_at":  p.CompletedAt,
			"last_accessed": p.LastAccessed,
		}),
	}).Create(p).Error
}

func (r *ProgressRepository) CountCompletedByStrand(userID, strandID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserProgress{}).
		Where("user_id = ? AND strand_id = ? AND is_completed = ?", userID, strandID, true).
		Count(&count).Error
	return count, err
}

// AppendXPEvent adds a ledger entry. The unique (user, topic, reason)
// index turns a repeat award into a no-op instead of a double credit.
func (r *ProgressRepository) AppendXPEvent(event *model.XPEvent) (created bool, err error) {
	result := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "topic_id"}, {Name: "reason"}},
		DoNothing: true,
	}).Create(event)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// SumXP folds the ledger into the user's total.
func (r *ProgressRepository) SumXP(userID uint) (int, error) {
	var total *int
	err := r.DB.Model(&model.XPEvent{}).
		Where("user_id = ?", userID).
		Select("SUM(amount)").
		Scan(&total).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}
