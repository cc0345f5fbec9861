package service

import (
	"testing"
	"time"

	"github.com/samora254/KitabuNew/internal/model"
	"github.com/samora254/KitabuNew/internal/repository"
	"github.com/samora254/KitabuNew/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newHomeworkService(db *gorm.DB) *HomeworkService {
	return NewHomeworkService(
		repository.NewHomeworkRepository(db),
		repository.NewContentRepository(db),
	)
}

func TestCreateAssignmentDefaults(t *testing.T) {
	db := newTestDB(t)
	c := createCurriculum(t, db)
	svc := newHomeworkService(db)

	assignment, err := svc.CreateAssignment(7, CreateHomeworkRequest{
		TopicID: c.topics[0].ID,
		Title:   "Fractions worksheet",
	})
	require.NoError(t, err)
	assert.Equal(t, 100, assignment.MaxScore)
	assert.True(t, assignment.IsActive)
	assert.EqualValues(t, 7, assignment.CreatedBy)

	_, err = svc.CreateAssignment(7, CreateHomeworkRequest{TopicID: 9999, Title: "x"})
	assert.ErrorIs(t, err, util.ErrTopicNotFound)
}

func TestSubmitHomeworkUpsertsSingleRow(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db)
	c := createCurriculum(t, db)
	svc := newHomeworkService(db)

	due := time.Now().Add(48 * time.Hour)
	assignment, err := svc.CreateAssignment(1, CreateHomeworkRequest{
		TopicID: c.topics[0].ID,
		Title:   "Essay",
		DueDate: &due,
	})
	require.NoError(t, err)

	first, err := svc.SubmitHomework(user.ID, assignment.ID, model.AnswerMap{"1": "draft"})
	require.NoError(t, err)
	assert.False(t, first.IsLate)
	assert.Nil(t, first.Score)

	second, err := svc.SubmitHomework(user.ID, assignment.ID, model.AnswerMap{"1": "final"})
	require.NoError(t, err)
	assert.Equal(t, "final", second.Answers["1"])

	var rows int64
	require.NoError(t, db.Model(&model.UserHomeworkSubmission{}).
		Where("user_id = ? AND homework_id = ?", user.ID, assignment.ID).
		Count(&rows).Error)
	assert.EqualValues(t, 1, rows, "resubmission replaces, never duplicates")
}

func TestSubmitHomeworkLateFlag(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db)
	c := createCurriculum(t, db)
	svc := newHomeworkService(db)

	due := time.Now().Add(-time.Hour)
	assignment, err := svc.CreateAssignment(1, CreateHomeworkRequest{
		TopicID: c.topics[0].ID,
		Title:   "Overdue",
		DueDate: &due,
	})
	require.NoError(t, err)

	submission, err := svc.SubmitHomework(user.ID, assignment.ID, model.AnswerMap{"1": "sorry"})
	require.NoError(t, err)
	assert.True(t, submission.IsLate)
}

func TestSubmitHomeworkInactive(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db)
	c := createCurriculum(t, db)
	svc := newHomeworkService(db)

	assignment, err := svc.CreateAssignment(1, CreateHomeworkRequest{
		TopicID: c.topics[0].ID,
		Title:   "Closed",
	})
	require.NoError(t, err)
	require.NoError(t, db.Model(&model.HomeworkAssignment{}).
		Where("id = ?", assignment.ID).Update("is_active", false).Error)

	_, err = svc.SubmitHomework(user.ID, assignment.ID, model.AnswerMap{})
	assert.ErrorIs(t, err, util.ErrHomeworkInactive)
}

func TestGradeSubmission(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db)
	c := createCurriculum(t, db)
	svc := newHomeworkService(db)

	assignment, err := svc.CreateAssignment(1, CreateHomeworkRequest{
		TopicID: c.topics[0].ID,
		Title:   "Essay",
	})
	require.NoError(t, err)

	_, err = svc.SubmitHomework(user.ID, assignment.ID, model.AnswerMap{"1": "answer"})
	require.NoError(t, err)

	graded, err := svc.GradeSubmission(assignment.ID, user.ID, 85, "Well argued")
	require.NoError(t, err)
	require.NotNil(t, graded.Score)
	assert.Equal(t, 85, *graded.Score)
	assert.Equal(t, "Well argued", graded.Feedback)
	assert.NotNil(t, graded.GradedAt)

	_, err = svc.GradeSubmission(assignment.ID, 9999, 50, "")
	assert.ErrorIs(t, err, util.ErrSubmissionNotFound)
}
