package controller

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/samora254/KitabuNew/internal/service"
	"github.com/samora254/KitabuNew/internal/util"
)

type ChatController struct {
	ChatService *service.ChatService
}

func NewChatController(chatService *service.ChatService) *ChatController {
	return &ChatController{ChatService: chatService}
}

// ListSessions godoc
// @Summary List the learner's chat sessions
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.ChatSession}
// @Router /api/chat/sessions [get]
func (c *ChatController) ListSessions(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	sessions, err := c.ChatService.UserSessions(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, sessions)
}

// CreateSessionRequest opens a new Rafiki conversation.
// swagger:model CreateSessionRequest
type CreateSessionRequest struct {
	SubjectID *uint  `json:"subjectId"`
	Title     string `json:"title"`
	Message   string `json:"message" binding:"required"`
}

// CreateSession godoc
// @Summary Start a chat session with Rafiki
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateSessionRequest true "Opening message"
// @Success 201 {object} util.Response{data=model.ChatSession}
// @Router /api/chat/sessions [post]
func (c *ChatController) CreateSession(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.ChatService.CreateSession(ctx.Request.Context(), user.UserID, req.SubjectID, req.Title, req.Message)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, session)
}

// GetSession godoc
// @Summary Get one chat session with its transcript
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Success 200 {object} util.Response{data=model.ChatSession}
// @Failure 404 {object} util.Response
// @Router /api/chat/sessions/{sessionId} [get]
func (c *ChatController) GetSession(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	session, err := c.ChatService.Session(user.UserID, ctx.Param("sessionId"))
	if err != nil {
		if errors.Is(err, util.ErrChatSessionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, session)
}

// PostMessageRequest is one student turn.
// swagger:model PostMessageRequest
type PostMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// PostMessage godoc
// @Summary Send a message to Rafiki within a session
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Param body body PostMessageRequest true "Message"
// @Success 200 {object} util.Response{data=service.PostMessageResult}
// @Failure 404 {object} util.Response
// @Router /api/chat/sessions/{sessionId}/messages [post]
func (c *ChatController) PostMessage(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req PostMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ChatService.PostMessage(ctx.Request.Context(), user.UserID, ctx.Param("sessionId"), req.Message)
	if err != nil {
		if errors.Is(err, util.ErrChatSessionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}
