package controller

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/samora254/KitabuNew/internal/service"
	"github.com/samora254/KitabuNew/internal/util"
)

type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

// ListSubjects godoc
// @Summary List all subjects
// @Tags content
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Subject}
// @Router /api/subjects [get]
func (c *ContentController) ListSubjects(ctx *gin.Context) {
	subjects, err := c.ContentService.ListSubjects()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, subjects)
}

// GetSubject godoc
// @Summary Get a single subject
// @Tags content
// @Produce json
// @Security BearerAuth
// @Param subjectId path int true "Subject ID"
// @Success 200 {object} util.Response{data=model.Subject}
// @Failure 404 {object} util.Response
// @Router /api/subjects/{subjectId} [get]
func (c *ContentController) GetSubject(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("subjectId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid subject ID")
		return
	}

	subject, err := c.ContentService.Subject(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, subject)
}

// GetStrands godoc
// @Summary List a subject's strands with unlock status
// @Tags content
// @Produce json
// @Security BearerAuth
// @Param subjectId path int true "Subject ID"
// @Success 200 {object} util.Response{data=[]service.StrandStatus}
// @Failure 404 {object} util.Response
// @Router /api/subjects/{subjectId}/strands [get]
func (c *ContentController) GetStrands(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	subjectID, err := strconv.Atoi(ctx.Param("subjectId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid subject ID")
		return
	}

	strands, err := c.ContentService.SubjectStrands(user.UserID, uint(subjectID))
	if err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, strands)
}

// GetTopics godoc
// @Summary List a strand's topics in order
// @Tags content
// @Produce json
// @Security BearerAuth
// @Param strandId path int true "Strand ID"
// @Success 200 {object} util.Response{data=[]model.Topic}
// @Failure 404 {object} util.Response
// @Router /api/strands/{strandId}/topics [get]
func (c *ContentController) GetTopics(ctx *gin.Context) {
	strandID, err := strconv.Atoi(ctx.Param("strandId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid strand ID")
		return
	}

	topics, err := c.ContentService.StrandTopics(uint(strandID))
	if err != nil {
		if errors.Is(err, util.ErrStrandNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, topics)
}
