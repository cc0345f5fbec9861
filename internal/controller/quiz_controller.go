package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/samora254/KitabuNew/internal/model"
	"github.com/samora254/KitabuNew/internal/service"
	"github.com/samora254/KitabuNew/internal/util"
)

type QuizController struct {
	QuizService *service.QuizService
	Tutor       service.TutorClient
}

func NewQuizController(quizService *service.QuizService, tutor service.TutorClient) *QuizController {
	return &QuizController{QuizService: quizService, Tutor: tutor}
}

// TopicQuizzes godoc
// @Summary List a topic's quizzes
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param topicId path int true "Topic ID"
// @Success 200 {object} util.Response{data=[]model.Quiz}
// @Router /api/topics/{topicId}/quizzes [get]
func (c *QuizController) TopicQuizzes(ctx *gin.Context) {
	topicID, err := strconv.Atoi(ctx.Param("topicId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid topic ID")
		return
	}

	quizzes, err := c.QuizService.QuizzesByTopic(uint(topicID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, quizzes)
}

// GetQuiz godoc
// @Summary Get a quiz with its ordered questions
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param quizId path int true "Quiz ID"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{quizId} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	quizID, err := strconv.Atoi(ctx.Param("quizId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid quiz ID")
		return
	}

	quiz, questions, err := c.QuizService.QuizWithQuestions(uint(quizID))
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"quiz": quiz, "questions": questions})
}

// SubmitQuizRequest is a graded submission.
// swagger:model SubmitQuizRequest
type SubmitQuizRequest struct {
	Answers   model.AnswerMap `json:"answers" binding:"required"`
	TimeSpent int             `json:"timeSpent"`
}

// Submit godoc
// @Summary Submit quiz answers for grading
// @Tags quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param quizId path int true "Quiz ID"
// @Param body body SubmitQuizRequest true "Answers keyed by question ID"
// @Success 200 {object} util.Response{data=service.QuizSubmissionResult}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{quizId}/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID, err := strconv.Atoi(ctx.Param("quizId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid quiz ID")
		return
	}

	var req SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.QuizService.SubmitQuiz(user.UserID, uint(quizID), req.Answers, req.TimeSpent)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrMaxAttemptsReached):
			util.Error(ctx, http.StatusForbidden, "Maximum attempts reached for this quiz")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// Attempts godoc
// @Summary List the learner's attempts for a quiz
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param quizId path int true "Quiz ID"
// @Success 200 {object} util.Response{data=[]model.UserQuizAttempt}
// @Router /api/quizzes/{quizId}/attempts [get]
func (c *QuizController) Attempts(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID, err := strconv.Atoi(ctx.Param("quizId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid quiz ID")
		return
	}

	attempts, err := c.QuizService.UserAttempts(user.UserID, uint(quizID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

// GenerateQuizRequest controls AI question generation.
// swagger:model GenerateQuizRequest
type GenerateQuizRequest struct {
	Difficulty string `json:"difficulty"`
	Count      int    `json:"count"`
}

// Generate godoc
// @Summary Generate quiz questions for a topic with Rafiki
// @Tags quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param topicId path int true "Topic ID"
// @Param body body GenerateQuizRequest false "Options"
// @Success 200 {object} util.Response{data=[]service.GeneratedQuestion}
// @Failure 404 {object} util.Response
// @Router /api/topics/{topicId}/generate-quiz [post]
func (c *QuizController) Generate(ctx *gin.Context) {
	topicID, err := strconv.Atoi(ctx.Param("topicId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid topic ID")
		return
	}

	var req GenerateQuizRequest
	_ = ctx.ShouldBindJSON(&req)
	if req.Difficulty == "" {
		req.Difficulty = "medium"
	}
	if req.Count <= 0 {
		req.Count = 5
	}

	questions, err := c.QuizService.GenerateQuiz(ctx.Request.Context(), uint(topicID), req.Difficulty, req.Count)
	if err != nil {
		if errors.Is(err, util.ErrTopicNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, questions)
}

// EvaluateAnswerRequest asks Rafiki to judge a free-form answer.
// swagger:model EvaluateAnswerRequest
type EvaluateAnswerRequest struct {
	Question      string `json:"question" binding:"required"`
	StudentAnswer string `json:"studentAnswer" binding:"required"`
	CorrectAnswer string `json:"correctAnswer" binding:"required"`
	Subject       string `json:"subject"`
}

// EvaluateAnswer godoc
// @Summary Evaluate a student's free-form answer with Rafiki
// @Tags quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body EvaluateAnswerRequest true "Answer to evaluate"
// @Success 200 {object} util.Response{data=service.AnswerEvaluation}
// @Router /api/evaluate-answer [post]
func (c *QuizController) EvaluateAnswer(ctx *gin.Context) {
	var req EvaluateAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	eval, err := c.Tutor.EvaluateAnswer(ctx.Request.Context(), req.Question, req.StudentAnswer, req.CorrectAnswer, req.Subject)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, eval)
}
