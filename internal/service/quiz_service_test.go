package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/samora254/KitabuNew/internal/model"
	"github.com/samora254/KitabuNew/internal/repository"
	"github.com/samora254/KitabuNew/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newQuizService(db *gorm.DB, tutor TutorClient) *QuizService {
	return NewQuizService(
		repository.NewQuizRepository(db),
		repository.NewContentRepository(db),
		newProgressService(db),
		tutor,
		db,
	)
}

func createQuiz(t *testing.T, db *gorm.DB, topicID uint, questions ...model.QuizQuestion) *model.Quiz {
	t.Helper()
	quiz := &model.Quiz{TopicID: topicID, Title: "Checkpoint", PassingScore: 70, MaxAttempts: 2}
	require.NoError(t, db.Create(quiz).Error)
	for i := range questions {
		questions[i].QuizID = quiz.ID
		questions[i].OrderIndex = i + 1
		require.NoError(t, db.Create(&questions[i]).Error)
	}
	return quiz
}

func answerKey(q model.QuizQuestion) string {
	return strconv.FormatUint(uint64(q.ID), 10)
}

func TestSubmitQuizScoring(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db)
	c := createCurriculum(t, db)
	svc := newQuizService(db, &fakeTutor{})

	quiz := createQuiz(t, db, c.topics[0].ID,
		model.QuizQuestion{Question: "2+2?", QuestionType: model.QuestionMultipleChoice, Options: []string{"3", "4"}, CorrectAnswer: "4"},
		model.QuizQuestion{Question: "3x3?", QuestionType: model.QuestionMultipleChoice, Options: []string{"6", "9"}, CorrectAnswer: "9"},
		model.QuizQuestion{Question: "5-1?", QuestionType: model.QuestionMultipleChoice, Options: []string{"4", "5"}, CorrectAnswer: "4"},
	)

	var questions []model.QuizQuestion
	require.NoError(t, db.Where("quiz_id = ?", quiz.ID).Order("order_index").Find(&questions).Error)

	answers := model.AnswerMap{
		answerKey(questions[0]): "4",
		answerKey(questions[1]): "6",
		answerKey(questions[2]): "4",
	}
	result, err := svc.SubmitQuiz(user.ID, quiz.ID, answers, 120)
	require.NoError(t, err)

	assert.Equal(t, 67, result.Score, "2 of 3 rounds to 67")
	assert.Equal(t, 2, result.CorrectAnswers)
	assert.Equal(t, 3, result.TotalQuestions)
	assert.False(t, result.Passed)
	assert.Equal(t, 120, result.Attempt.TimeSpent)

	// A failing score leaves the XP ledger untouched.
	var refreshed model.User
	require.NoError(t, db.First(&refreshed, user.ID).Error)
	assert.Zero(t, refreshed.TotalXP)
}

func TestSubmitQuizPassAwardsTopicXP(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db)
	c := createCurriculum(t, db)
	svc := newQuizService(db, &fakeTutor{})

	quiz := createQuiz(t, db, c.topics[0].ID,
		model.QuizQuestion{Question: "q1", QuestionType: model.QuestionTrueFalse, CorrectAnswer: "true"},
		model.QuizQuestion{Question: "q2", QuestionType: model.QuestionTrueFalse, CorrectAnswer: "false"},
	)

	var questions []model.QuizQuestion
	require.NoError(t, db.Where("quiz_id = ?", quiz.ID).Order("order_index").Find(&questions).Error)

	result, err := svc.SubmitQuiz(user.ID, quiz.ID, model.AnswerMap{
		answerKey(questions[0]): "true",
		answerKey(questions[1]): "false",
	}, 60)
	require.NoError(t, err)
	assert.Equal(t, 100, result.Score)
	assert.True(t, result.Passed)

	var refreshed model.User
	require.NoError(t, db.First(&refreshed, user.ID).Error)
	assert.Equal(t, 25, refreshed.TotalXP)

	var progress model.UserProgress
	require.NoError(t, db.Where("user_id = ? AND topic_id = ?", user.ID, c.topics[0].ID).First(&progress).Error)
	assert.True(t, progress.IsCompleted)
	require.NotNil(t, progress.Score)
	assert.Equal(t, 100, *progress.Score)
}

func TestSubmitQuizMaxAttempts(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db)
	c := createCurriculum(t, db)
	svc := newQuizService(db, &fakeTutor{})

	quiz := createQuiz(t, db, c.topics[0].ID,
		model.QuizQuestion{Question: "q1", QuestionType: model.QuestionTrueFalse, CorrectAnswer: "true"},
	)

	for i := 0; i < 2; i++ {
		_, err := svc.SubmitQuiz(user.ID, quiz.ID, model.AnswerMap{}, 10)
		require.NoError(t, err)
	}

	_, err := svc.SubmitQuiz(user.ID, quiz.ID, model.AnswerMap{}, 10)
	assert.ErrorIs(t, err, util.ErrMaxAttemptsReached)

	var attempts int64
	require.NoError(t, db.Model(&model.UserQuizAttempt{}).
		Where("user_id = ? AND quiz_id = ?", user.ID, quiz.ID).Count(&attempts).Error)
	assert.EqualValues(t, 2, attempts, "the rejected attempt must not be recorded")
}

func TestSubmitQuizEmptyQuiz(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db)
	c := createCurriculum(t, db)
	svc := newQuizService(db, &fakeTutor{})

	quiz := createQuiz(t, db, c.topics[0].ID)

	result, err := svc.SubmitQuiz(user.ID, quiz.ID, model.AnswerMap{}, 5)
	require.NoError(t, err)
	assert.Zero(t, result.Score)
	assert.Zero(t, result.TotalQuestions)
	assert.False(t, result.Passed)
}

func TestSubmitQuizUnknownQuiz(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db)
	svc := newQuizService(db, &fakeTutor{})

	_, err := svc.SubmitQuiz(user.ID, 9999, model.AnswerMap{}, 5)
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}

func TestGenerateQuiz(t *testing.T) {
	db := newTestDB(t)
	c := createCurriculum(t, db)
	svc := newQuizService(db, &fakeTutor{})

	questions, err := svc.GenerateQuiz(context.Background(), c.topics[0].ID, "easy", 3)
	require.NoError(t, err)
	assert.Len(t, questions, 3)

	_, err = svc.GenerateQuiz(context.Background(), 9999, "easy", 3)
	assert.ErrorIs(t, err, util.ErrTopicNotFound)
}
