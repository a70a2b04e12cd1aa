package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/chirper-app/chirper/internal/application"
	"github.com/chirper-app/chirper/internal/interface/middleware"
	"github.com/chirper-app/chirper/pkg/apperror"
	"github.com/chirper-app/chirper/pkg/helpers"
)

// Event names shared with the original web client.
const (
	EventNewMessage     = "new message"
	EventMessageSent    = "message sent"
	EventReceiveMessage = "receive message"
	EventError          = "error"
)

const sendTimeout = 10 * time.Second

type newMessagePayload struct {
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
}

type errorPayload struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

// Handler upgrades authenticated clients and runs their read loop.
type Handler struct {
	Hub      *Hub
	Messages *application.MessageService
	JWT      *helpers.JWTManager
	Logger   *logrus.Logger

	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub, messages *application.MessageService, jwt *helpers.JWTManager, logger *logrus.Logger) *Handler {
	return &Handler{
		Hub:      hub,
		Messages: messages,
		JWT:      jwt,
		Logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Serve authenticates the handshake, upgrades it and pumps inbound events
// until the peer goes away. Authentication happens before the upgrade so a
// bad token is an ordinary 401, not a half-open socket.
func (h *Handler) Serve(c *gin.Context) {
	token, ok := middleware.BearerToken(c.GetHeader("Authorization"))
	if !ok {
		// Browsers cannot set headers on the WebSocket constructor, so the
		// token may also ride on the query string.
		token = c.Query("token")
	}
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "MISSING_TOKEN"})
		return
	}
	claims, err := h.JWT.ParseToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "INVALID_TOKEN"})
		return
	}
	userID := claims.UserID

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Logger.WithError(err).Warn("websocket upgrade failed")
		return
	}

	client := NewClient(conn)
	h.Hub.Register(userID, client)
	defer func() {
		h.Hub.Unregister(userID, client)
		client.Close()
	}()

	h.Logger.WithField("userId", userID).Debug("websocket connected")

	for {
		var ev Event
		if err := client.ReadEvent(&ev); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.Logger.WithError(err).WithField("userId", userID).Debug("websocket closed")
			}
			return
		}
		h.dispatch(c.Request.Context(), userID, client, ev)
	}
}

func (h *Handler) dispatch(ctx context.Context, userID string, client *Client, ev Event) {
	switch ev.Event {
	case EventNewMessage:
		h.handleNewMessage(ctx, userID, client, ev.Data)
	default:
		h.sendError(client, apperror.Validation("unknown event"))
	}
}

func (h *Handler) handleNewMessage(ctx context.Context, userID string, client *Client, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		h.sendError(client, apperror.Validation("malformed event payload"))
		return
	}
	var payload newMessagePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		h.sendError(client, apperror.Validation("malformed event payload"))
		return
	}
	if payload.ReceiverID == "" || payload.Content == "" {
		h.sendError(client, apperror.Validation("receiverId and content are required"))
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	msg, err := h.Messages.SendMessage(sendCtx, userID, application.CreateMessageInput{
		ReceiverID: payload.ReceiverID,
		Content:    payload.Content,
	})
	if err != nil {
		h.sendError(client, err)
		return
	}

	if err := client.Send(EventMessageSent, msg); err != nil {
		h.Logger.WithError(err).WithField("userId", userID).Warn("ack write failed")
	}
	if peer, ok := h.Hub.Get(payload.ReceiverID); ok {
		if err := peer.Send(EventReceiveMessage, msg); err != nil {
			h.Logger.WithError(err).WithField("userId", payload.ReceiverID).Warn("delivery write failed")
		}
	}
}

func (h *Handler) sendError(client *Client, err error) {
	payload := errorPayload{ErrorCode: "INTERNAL_ERROR", Message: "something went wrong"}
	if ae, ok := apperror.As(err); ok {
		payload.ErrorCode = ae.Code
		payload.Message = ae.Message
	}
	if werr := client.Send(EventError, payload); werr != nil {
		h.Logger.WithError(werr).Warn("error write failed")
	}
}
