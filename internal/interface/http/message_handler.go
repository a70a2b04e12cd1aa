package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/chirper-app/chirper/internal/application"
	"github.com/chirper-app/chirper/internal/interface/middleware"
	"github.com/chirper-app/chirper/internal/interface/ws"
	"github.com/chirper-app/chirper/pkg/response"
	"github.com/chirper-app/chirper/pkg/validation"
)

type MessageHandler struct {
	Svc    *application.MessageService
	Hub    *ws.Hub
	Logger *logrus.Logger
}

func NewMessageHandler(svc *application.MessageService, hub *ws.Hub, logger *logrus.Logger) *MessageHandler {
	return &MessageHandler{Svc: svc, Hub: hub, Logger: logger}
}

type sendMessageRequest struct {
	ReceiverID string `json:"receiverId" binding:"required"`
	Content    string `json:"content" binding:"required,min=1"`
}

func (h *MessageHandler) Send(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	msg, err := h.Svc.SendMessage(c.Request.Context(), uid, application.CreateMessageInput{
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	if h.Hub != nil {
		h.Hub.Deliver(req.ReceiverID, ws.EventReceiveMessage, msg)
	}
	response.Success(c, http.StatusCreated, msg, "message sent", nil)
}

func (h *MessageHandler) GetHistory(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	msgs, err := h.Svc.GetHistory(c.Request.Context(), uid, c.Param("userId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, msgs, "message history", nil)
}
