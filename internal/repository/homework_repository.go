package repository

import (
	"encoding/json"

	"github.com/samora254/KitabuNew/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HomeworkRepository struct {
	DB *gorm.DB
}

func NewHomeworkRepository(db *gorm.DB) *HomeworkRepository {
	return &HomeworkRepository{DB: db}
}

func (r *HomeworkRepository) Create(assignment *model.HomeworkAssignment) error {
	return r.DB.Create(assignment).Error
}

func (r *HomeworkRepository) FindByID(id uint) (*model.HomeworkAssignment, error) {
	var assignment model.HomeworkAssignment
	err := r.DB.First(&assignment, id).Error
	return &assignment, err
}

func (r *HomeworkRepository) FindActiveByTopic(topicID uint) ([]model.HomeworkAssignment, error) {
	var assignments []model.HomeworkAssignment
	err := r.DB.Where("topic_id = ? AND is_active = ?", topicID, true).Find(&assignments).Error
	return assignments, err
}

func (r *HomeworkRepository) FindActive() ([]model.HomeworkAssignment, error) {
	var assignments []model.HomeworkAssignment
	err := r.DB.Where("is_active = ?", true).Order("due_date ASC").Find(&assignments).Error
	return assignments, err
}

func (r *HomeworkRepository) FindQuestions(homeworkID uint) ([]model.HomeworkQuestion, error) {
	var questions []model.HomeworkQuestion
	err := r.DB.Where("homework_id = ?", homeworkID).Order("order_index ASC").Find(&questions).Error
	return questions, err
}

func (r *HomeworkRepository) Update(assignment *model.HomeworkAssignment) error {
	return r.DB.Save(assignment).Error
}

// UpsertSubmission keeps one row per (user, homework): resubmitting
// replaces the previous answers and timestamps instead of stacking
// duplicate submissions.
func (r *HomeworkRepository) UpsertSubmission(submission *model.UserHomeworkSubmission) error {
	// The conflict assignment bypasses the field serializer, so the
	// answers map is marshalled by hand.
	answersJSON, err := json.Marshal(submission.Answers)
	if err != nil {
		return err
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "homework_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"answers":      string(answersJSON),
			"submitted_at": submission.SubmittedAt,
			"is_late":      submission.IsLate,
		}),
	}).Create(submission).Error
}

func (r *HomeworkRepository) FindSubmission(userID, homeworkID uint) (*model.UserHomeworkSubmission, error) {
	var submission model.UserHomeworkSubmission
	err := r.DB.Where("user_id = ? AND homework_id = ?", userID, homeworkID).First(&submission).Error
	return &submission, err
}

func (r *HomeworkRepository) FindSubmissionsByHomework(homeworkID uint) ([]model.UserHomeworkSubmission, error) {
	var submissions []model.UserHomeworkSubmission
	err := r.DB.Where("homework_id = ?", homeworkID).Order("submitted_at ASC").Find(&submissions).Error
	return submissions, err
}

func (r *HomeworkRepository) UpdateSubmission(submission *model.UserHomeworkSubmission) error {
	return r.DB.Save(submission).Error
}
