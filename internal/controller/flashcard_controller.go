package controller

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/samora254/KitabuNew/internal/service"
	"github.com/samora254/KitabuNew/internal/util"
)

type FlashcardController struct {
	FlashcardService *service.FlashcardService
}

func NewFlashcardController(flashcardService *service.FlashcardService) *FlashcardController {
	return &FlashcardController{FlashcardService: flashcardService}
}

// TopicFlashcards godoc
// @Summary List a topic's flashcards with the learner's progress
// @Tags flashcards
// @Produce json
// @Security BearerAuth
// @Param topicId path int true "Topic ID"
// @Success 200 {object} util.Response{data=[]service.FlashcardWithProgress}
// @Failure 404 {object} util.Response
// @Router /api/topics/{topicId}/flashcards [get]
func (c *FlashcardController) TopicFlashcards(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	topicID, err := strconv.Atoi(ctx.Param("topicId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid topic ID")
		return
	}

	cards, err := c.FlashcardService.TopicFlashcards(user.UserID, uint(topicID))
	if err != nil {
		if errors.Is(err, util.ErrTopicNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, cards)
}

// FlashcardProgressRequest marks a card known or unknown.
// swagger:model FlashcardProgressRequest
type FlashcardProgressRequest struct {
	IsKnown bool `json:"isKnown"`
}

// UpdateProgress godoc
// @Summary Record a flashcard review
// @Tags flashcards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param flashcardId path int true "Flashcard ID"
// @Param body body FlashcardProgressRequest true "Review outcome"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/flashcards/{flashcardId}/progress [post]
func (c *FlashcardController) UpdateProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	flashcardID, err := strconv.Atoi(ctx.Param("flashcardId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid flashcard ID")
		return
	}

	var req FlashcardProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.FlashcardService.MarkFlashcardKnown(user.UserID, uint(flashcardID), req.IsKnown); err != nil {
		if errors.Is(err, util.ErrFlashcardNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"updated": true})
}

// GenerateFlashcardsRequest controls AI card generation.
// swagger:model GenerateFlashcardsRequest
type GenerateFlashcardsRequest struct {
	Count int `json:"count"`
}

// Generate godoc
// @Summary Generate flashcards for a topic with Rafiki
// @Tags flashcards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param topicId path int true "Topic ID"
// @Param body body GenerateFlashcardsRequest false "Options"
// @Success 200 {object} util.Response{data=[]service.GeneratedFlashcard}
// @Failure 404 {object} util.Response
// @Router /api/topics/{topicId}/generate-flashcards [post]
func (c *FlashcardController) Generate(ctx *gin.Context) {
	topicID, err := strconv.Atoi(ctx.Param("topicId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid topic ID")
		return
	}

	var req GenerateFlashcardsRequest
	_ = ctx.ShouldBindJSON(&req)
	if req.Count <= 0 {
		req.Count = 5
	}

	cards, err := c.FlashcardService.GenerateFlashcards(ctx.Request.Context(), uint(topicID), req.Count)
	if err != nil {
		if errors.Is(err, util.ErrTopicNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, cards)
}
