package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/samora254/KitabuNew/internal/service"
	"github.com/samora254/KitabuNew/internal/util"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// List godoc
// @Summary List the learner's topic progress with aggregate stats
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/progress [get]
func (c *ProgressController) List(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.ProgressService.UserProgress(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	stats, err := c.ProgressService.ComputeStats(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"progress": progress, "stats": stats})
}

// BySubject godoc
// @Summary List the learner's progress within one subject
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param subjectId path int true "Subject ID"
// @Success 200 {object} util.Response{data=[]model.UserProgress}
// @Router /api/progress/subjects/{subjectId} [get]
func (c *ProgressController) BySubject(ctx *gin.Context) {
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

	progress, err := c.ProgressService.UserSubjectProgress(user.UserID, uint(subjectID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// Stats godoc
// @Summary Aggregate the learner's XP, level, streak and scores
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.LearnerStats}
// @Router /api/progress/stats [get]
func (c *ProgressController) Stats(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.ProgressService.ComputeStats(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
