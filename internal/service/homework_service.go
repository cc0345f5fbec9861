package service

import (
	"errors"
	"time"

	"github.com/samora254/KitabuNew/internal/model"
	"github.com/samora254/KitabuNew/internal/repository"
	"github.com/samora254/KitabuNew/internal/util"

	"gorm.io/gorm"
)

type HomeworkService struct {
	HomeworkRepo *repository.HomeworkRepository
	ContentRepo  *repository.ContentRepository
}

func NewHomeworkService(
	homeworkRepo *repository.HomeworkRepository,
	contentRepo *repository.ContentRepository,
) *HomeworkService {
	return &HomeworkService{
		HomeworkRepo: homeworkRepo,
		ContentRepo:  contentRepo,
	}
}

type CreateHomeworkRequest struct {
	TopicID             uint       `json:"topicId" binding:"required"`
	Title               string     `json:"title" binding:"required"`
	Description         string     `json:"description"`
	DueDate             *time.Time `json:"dueDate"`
	MaxScore            int        `json:"maxScore"`
	TeacherInstructions string     `json:"teacherInstructions"`
}

// CreateAssignment lets a teacher publish homework against a topic.
func (s *HomeworkService) CreateAssignment(teacherID uint, req CreateHomeworkRequest) (*model.HomeworkAssignment, error) {
	if _, err := s.ContentRepo.FindTopicByID(req.TopicID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTopicNotFound
		}
		return nil, err
	}

	maxScore := req.MaxScore
	if maxScore == 0 {
		maxScore = 100
	}
	assignment := &model.HomeworkAssignment{
		TopicID:             req.TopicID,
		Title:               req.Title,
		Description:         req.Description,
		DueDate:             req.DueDate,
		MaxScore:            maxScore,
		TeacherInstructions: req.TeacherInstructions,
		CreatedBy:           teacherID,
		IsActive:            true,
	}
	if err := s.HomeworkRepo.Create(assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *HomeworkService) ActiveAssignments() ([]model.HomeworkAssignment, error) {
	return s.HomeworkRepo.FindActive()
}

func (s *HomeworkService) AssignmentsByTopic(topicID uint) ([]model.HomeworkAssignment, error) {
	return s.HomeworkRepo.FindActiveByTopic(topicID)
}

func (s *HomeworkService) AssignmentWithQuestions(homeworkID uint) (*model.HomeworkAssignment, []model.HomeworkQuestion, error) {
	assignment, err := s.HomeworkRepo.FindByID(homeworkID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, util.ErrHomeworkNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	questions, err := s.HomeworkRepo.FindQuestions(homeworkID)
	if err != nil {
		return nil, nil, err
	}
	return assignment, questions, nil
}

// SubmitHomework upserts the student's single submission row for the
// assignment. Lateness is judged against the due date at submission
// time; grading fields stay empty until a teacher grades it.
func (s *HomeworkService) SubmitHomework(userID, homeworkID uint, answers model.AnswerMap) (*model.UserHomeworkSubmission, error) {
	assignment, err := s.HomeworkRepo.FindByID(homeworkID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrHomeworkNotFound
	}
	if err != nil {
		return nil, err
	}
	if !assignment.IsActive {
		return nil, util.ErrHomeworkInactive
	}

	now := time.Now()
	submission := &model.UserHomeworkSubmission{
		UserID:      userID,
		HomeworkID:  homeworkID,
		Answers:     answers,
		SubmittedAt: now,
		IsLate:      assignment.DueDate != nil && now.After(*assignment.DueDate),
	}
	if err := s.HomeworkRepo.UpsertSubmission(submission); err != nil {
		return nil, err
	}
	return s.HomeworkRepo.FindSubmission(userID, homeworkID)
}

// GradeSubmission records a teacher's score and feedback.
func (s *HomeworkService) GradeSubmission(homeworkID, studentID uint, score int, feedback string) (*model.UserHomeworkSubmission, error) {
	submission, err := s.HomeworkRepo.FindSubmission(studentID, homeworkID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSubmissionNotFound
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	submission.Score = &score
	submission.Feedback = feedback
	submission.GradedAt = &now
	if err := s.HomeworkRepo.UpdateSubmission(submission); err != nil {
		return nil, err
	}
	return submission, nil
}

func (s *HomeworkService) Submissions(homeworkID uint) ([]model.UserHomeworkSubmission, error) {
	if _, err := s.HomeworkRepo.FindByID(homeworkID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrHomeworkNotFound
		}
		return nil, err
	}
	return s.HomeworkRepo.FindSubmissionsByHomework(homeworkID)
}

// AttachHomeworkFile stores the uploaded file's URL on the assignment.
func (s *HomeworkService) AttachHomeworkFile(homeworkID uint, url string) error {
	assignment, err := s.HomeworkRepo.FindByID(homeworkID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrHomeworkNotFound
	}
	if err != nil {
		return err
	}
	assignment.AttachmentURL = url
	return s.HomeworkRepo.Update(assignment)
}
