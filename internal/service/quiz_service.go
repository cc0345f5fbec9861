package service

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/samora254/KitabuNew/internal/model"
	"github.com/samora254/KitabuNew/internal/repository"
	"github.com/samora254/KitabuNew/internal/util"

	"gorm.io/gorm"
)

// QuizSubmissionResult mirrors what the quiz page renders after grading.
type QuizSubmissionResult struct {
	Attempt        *model.UserQuizAttempt `json:"attempt"`
	Score          int                    `json:"score"`
	CorrectAnswers int                    `json:"correctAnswers"`
	TotalQuestions int                    `json:"totalQuestions"`
	Passed         bool                   `json:"passed"`
}

type QuizService struct {
	QuizRepo    *repository.QuizRepository
	ContentRepo *repository.ContentRepository
	Progress    *ProgressService
	Tutor       TutorClient
	DB          *gorm.DB
}

func NewQuizService(
	quizRepo *repository.QuizRepository,
	contentRepo *repository.ContentRepository,
	progress *ProgressService,
	tutor TutorClient,
	db *gorm.DB,
) *QuizService {
	return &QuizService{
		QuizRepo:    quizRepo,
		ContentRepo: contentRepo,
		Progress:    progress,
		Tutor:       tutor,
		DB:          db,
	}
}

func (s *QuizService) QuizzesByTopic(topicID uint) ([]model.Quiz, error) {
	return s.QuizRepo.FindByTopic(topicID)
}

// QuizWithQuestions loads a quiz and its ordered questions for taking.
func (s *QuizService) QuizWithQuestions(quizID uint) (*model.Quiz, []model.QuizQuestion, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	questions, err := s.QuizRepo.FindQuestions(quizID)
	if err != nil {
		return nil, nil, err
	}
	return quiz, questions, nil
}

// SubmitQuiz grades an attempt and records it. The attempt limit is
// checked here rather than trusted to the client; the attempt insert
// and the possible progress update share one transaction so a crash can
// never leave an attempt without its progress side effect.
func (s *QuizService) SubmitQuiz(userID, quizID uint, answers model.AnswerMap, timeSpentSeconds int) (*QuizSubmissionResult, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}

	if quiz.MaxAttempts > 0 {
		attempts, err := s.QuizRepo.CountAttempts(userID, quizID)
		if err != nil {
			return nil, err
		}
		if attempts >= int64(quiz.MaxAttempts) {
			return nil, util.ErrMaxAttemptsReached
		}
	}

	questions, err := s.QuizRepo.FindQuestions(quizID)
	if err != nil {
		return nil, err
	}

	correct := 0
	for _, question := range questions {
		answer, ok := answers[strconv.FormatUint(uint64(question.ID), 10)]
		if ok && GraderFor(question.QuestionType).Grade(question, answer) {
			correct++
		}
	}

	// An empty quiz grades to zero instead of dividing by zero.
	score := 0
	if len(questions) > 0 {
		score = int(math.Round(float64(correct) / float64(len(questions)) * 100))
	}

	now := time.Now()
	attempt := &model.UserQuizAttempt{
		UserID:      userID,
		QuizID:      quizID,
		Score:       score,
		Answers:     answers,
		StartedAt:   now.Add(-time.Duration(timeSpentSeconds) * time.Second),
		CompletedAt: &now,
		TimeSpent:   timeSpentSeconds,
	}

	passed := score >= quiz.PassingScore
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.QuizRepo.WithTx(tx).CreateAttempt(attempt); err != nil {
			return err
		}
		if passed {
			scoreCopy := score
			return s.Progress.recordTopicCompletionTx(tx, userID, quiz.TopicID, true, &scoreCopy)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &QuizSubmissionResult{
		Attempt:        attempt,
		Score:          score,
		CorrectAnswers: correct,
		TotalQuestions: len(questions),
		Passed:         passed,
	}, nil
}

func (s *QuizService) UserAttempts(userID, quizID uint) ([]model.UserQuizAttempt, error) {
	return s.QuizRepo.FindAttempts(userID, quizID)
}

// GenerateQuiz asks the tutor collaborator for fresh practice questions
// on a topic. Nothing is persisted; the client decides what to keep.
func (s *QuizService) GenerateQuiz(ctx context.Context, topicID uint, difficulty string, count int) ([]GeneratedQuestion, error) {
	topic, subject, err := resolveTopicSubject(s.ContentRepo, topicID)
	if err != nil {
		return nil, err
	}
	return s.Tutor.GenerateQuizQuestions(ctx, topic.Name, subject.Name, difficulty, count)
}

// resolveTopicSubject walks topic → strand → subject, mapping a broken
// chain to NotFound.
func resolveTopicSubject(contentRepo *repository.ContentRepository, topicID uint) (*model.Topic, *model.Subject, error) {
	topic, err := contentRepo.FindTopicByID(topicID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, util.ErrTopicNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	strand, err := contentRepo.FindStrandByID(topic.StrandID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, util.ErrTopicNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	subject, err := contentRepo.FindSubjectByID(strand.SubjectID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, util.ErrSubjectNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	return topic, subject, nil
}
