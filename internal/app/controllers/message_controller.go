package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/talentbridge/internal/app/models/dto"
	"github.com/yigit/talentbridge/internal/app/services"
	"github.com/yigit/talentbridge/internal/middleware"
)

// MessageController handles the inbox and direct message threads
type MessageController struct {
	messageService services.MessageService
	logger         zerolog.Logger
}

// NewMessageController creates a new MessageController
func NewMessageController(messageService services.MessageService, logger zerolog.Logger) *MessageController {
	return &MessageController{
		messageService: messageService,
		logger:         logger,
	}
}

// Inbox lists the user's conversations, latest first
func (c *MessageController) Inbox(ctx *gin.Context) {
	conversations, err := c.messageService.Conversations(ctx.Request.Context(), middleware.CurrentUser(ctx).ID)
	if err != nil {
		middleware.HandleWebError(ctx, err)
		return
	}

	middleware.Render(ctx, http.StatusOK, "inbox.html", gin.H{
		"Title":         "Messages",
		"Conversations": conversations,
	})
}

func (c *MessageController) renderThread(ctx *gin.Context, partnerID int64, sendErr error, draft string) {
	thread, err := c.messageService.Thread(ctx.Request.Context(), middleware.CurrentUser(ctx).ID, partnerID)
	if err != nil {
		middleware.HandleWebError(ctx, err)
		return
	}

	data := gin.H{
		"Title":  "Conversation with " + thread.Partner.Username,
		"Thread": thread,
		"Draft":  draft,
	}
	if sendErr != nil {
		renderForm(ctx, "thread.html", sendErr, data)
		return
	}
	middleware.Render(ctx, http.StatusOK, "thread.html", data)
}

// Thread renders the conversation with one user, oldest message first
func (c *MessageController) Thread(ctx *gin.Context) {
	partnerID, err := parseIDParam(ctx, "userID")
	if err != nil {
		middleware.HandleWebError(ctx, err)
		return
	}
	c.renderThread(ctx, partnerID, nil, "")
}

// Send posts a message to the user in the path
func (c *MessageController) Send(ctx *gin.Context) {
	partnerID, err := parseIDParam(ctx, "userID")
	if err != nil {
		middleware.HandleWebError(ctx, err)
		return
	}

	var req dto.SendMessageRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.renderThread(ctx, partnerID, middleware.BindingError(err), req.Content)
		return
	}

	msg, err := c.messageService.Send(ctx.Request.Context(), middleware.CurrentUser(ctx).ID, partnerID, req.Content)
	if err != nil {
		c.renderThread(ctx, partnerID, err, req.Content)
		return
	}

	ctx.Redirect(http.StatusFound, "/messages/"+strconv.FormatInt(partnerID, 10)+"#message-"+strconv.FormatInt(msg.ID, 10))
}
