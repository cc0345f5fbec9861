package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samora254/KitabuNew/internal/model"
	"github.com/samora254/KitabuNew/internal/service"
	"github.com/samora254/KitabuNew/internal/util"
)

type HomeworkController struct {
	HomeworkService *service.HomeworkService
	StorageService  *service.StorageService
}

func NewHomeworkController(homeworkService *service.HomeworkService, storageService *service.StorageService) *HomeworkController {
	return &HomeworkController{
		HomeworkService: homeworkService,
		StorageService:  storageService,
	}
}

// Active godoc
// @Summary List active homework assignments
// @Tags homework
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.HomeworkAssignment}
// @Router /api/homework/active [get]
func (c *HomeworkController) Active(ctx *gin.Context) {
	assignments, err := c.HomeworkService.ActiveAssignments()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, assignments)
}

// ByTopic godoc
// @Summary List homework for a topic
// @Tags homework
// @Produce json
// @Security BearerAuth
// @Param topicId path int true "Topic ID"
// @Success 200 {object} util.Response{data=[]model.HomeworkAssignment}
// @Router /api/topics/{topicId}/homework [get]
func (c *HomeworkController) ByTopic(ctx *gin.Context) {
	topicID, err := strconv.Atoi(ctx.Param("topicId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid topic ID")
		return
	}

	assignments, err := c.HomeworkService.AssignmentsByTopic(uint(topicID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, assignments)
}

// Get godoc
// @Summary Get a homework assignment with its questions
// @Tags homework
// @Produce json
// @Security BearerAuth
// @Param homeworkId path int true "Homework ID"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Router /api/homework/{homeworkId} [get]
func (c *HomeworkController) Get(ctx *gin.Context) {
	homeworkID, err := strconv.Atoi(ctx.Param("homeworkId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid homework ID")
		return
	}

	assignment, questions, err := c.HomeworkService.AssignmentWithQuestions(uint(homeworkID))
	if err != nil {
		if errors.Is(err, util.ErrHomeworkNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"homework": assignment, "questions": questions})
}

// SubmitHomeworkRequest carries the learner's answers.
// swagger:model SubmitHomeworkRequest
type SubmitHomeworkRequest struct {
	Answers model.AnswerMap `json:"answers" binding:"required"`
}

// Submit godoc
// @Summary Submit homework answers
// @Tags homework
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param homeworkId path int true "Homework ID"
// @Param body body SubmitHomeworkRequest true "Answers keyed by question ID"
// @Success 200 {object} util.Response{data=model.UserHomeworkSubmission}
// @Failure 404 {object} util.Response
// @Router /api/homework/{homeworkId}/submit [post]
func (c *HomeworkController) Submit(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	homeworkID, err := strconv.Atoi(ctx.Param("homeworkId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid homework ID")
		return
	}

	var req SubmitHomeworkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.HomeworkService.SubmitHomework(user.UserID, uint(homeworkID), req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrHomeworkNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrHomeworkInactive):
			util.Error(ctx, http.StatusForbidden, "Homework is no longer accepting submissions")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, submission)
}

// Create godoc
// @Summary Create a homework assignment
// @Tags homework
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateHomeworkRequest true "Assignment details"
// @Success 201 {object} util.Response{data=model.HomeworkAssignment}
// @Failure 404 {object} util.Response
// @Router /api/homework [post]
func (c *HomeworkController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateHomeworkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assignment, err := c.HomeworkService.CreateAssignment(user.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrTopicNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, assignment)
}

// GradeRequest records a teacher's mark for one submission.
// swagger:model GradeRequest
type GradeRequest struct {
	StudentID uint   `json:"studentId" binding:"required"`
	Score     int    `json:"score" binding:"min=0"`
	Feedback  string `json:"feedback"`
}

// Grade godoc
// @Summary Grade a student's homework submission
// @Tags homework
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param homeworkId path int true "Homework ID"
// @Param body body GradeRequest true "Score and feedback"
// @Success 200 {object} util.Response{data=model.UserHomeworkSubmission}
// @Failure 404 {object} util.Response
// @Router /api/homework/{homeworkId}/grade [post]
func (c *HomeworkController) Grade(ctx *gin.Context) {
	homeworkID, err := strconv.Atoi(ctx.Param("homeworkId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid homework ID")
		return
	}

	var req GradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.HomeworkService.GradeSubmission(uint(homeworkID), req.StudentID, req.Score, req.Feedback)
	if err != nil {
		if errors.Is(err, util.ErrSubmissionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, submission)
}

// Submissions godoc
// @Summary List submissions for a homework assignment
// @Tags homework
// @Produce json
// @Security BearerAuth
// @Param homeworkId path int true "Homework ID"
// @Success 200 {object} util.Response{data=[]model.UserHomeworkSubmission}
// @Router /api/homework/{homeworkId}/submissions [get]
func (c *HomeworkController) Submissions(ctx *gin.Context) {
	homeworkID, err := strconv.Atoi(ctx.Param("homeworkId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid homework ID")
		return
	}

	submissions, err := c.HomeworkService.Submissions(uint(homeworkID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, submissions)
}

// UploadAttachment godoc
// @Summary Attach a file to a homework assignment
// @Tags homework
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param homeworkId path int true "Homework ID"
// @Param file formData file true "Attachment"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Router /api/homework/{homeworkId}/attachment [post]
func (c *HomeworkController) UploadAttachment(ctx *gin.Context) {
	homeworkID, err := strconv.Atoi(ctx.Param("homeworkId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid homework ID")
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "Missing file")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	object := fmt.Sprintf("homework/%d/%d_%s", homeworkID, time.Now().UnixNano(), fileHeader.Filename)
	url, err := c.StorageService.Upload(ctx.Request.Context(), object, file, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if err := c.HomeworkService.AttachHomeworkFile(uint(homeworkID), url); err != nil {
		if errors.Is(err, util.ErrHomeworkNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"url": url})
}
