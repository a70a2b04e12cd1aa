package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/chirper-app/chirper/internal/application"
	"github.com/chirper-app/chirper/internal/domain/entity"
	"github.com/chirper-app/chirper/internal/interface/middleware"
	"github.com/chirper-app/chirper/pkg/response"
)

type ReactionHandler struct {
	Svc    *application.ReactionService
	Logger *logrus.Logger
}

func NewReactionHandler(svc *application.ReactionService, logger *logrus.Logger) *ReactionHandler {
	return &ReactionHandler{Svc: svc, Logger: logger}
}

func (h *ReactionHandler) React(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	t := entity.ReactionType(c.Query("type"))
	if err := h.Svc.React(c.Request.Context(), uid, c.Param("postId"), t); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success[any](c, http.StatusCreated, map[string]any{"reacted": true}, "reaction created", nil)
}

func (h *ReactionHandler) Unreact(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	t := entity.ReactionType(c.Query("type"))
	if err := h.Svc.Unreact(c.Request.Context(), uid, c.Param("postId"), t); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"reacted": false}, "reaction removed", nil)
}

func (h *ReactionHandler) reactedBy(t entity.ReactionType) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(middleware.CtxUserIDKey)
		posts, err := h.Svc.GetReactedPosts(c.Request.Context(), uid, c.Param("userId"), t, cursorParams(c))
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.Success(c, http.StatusOK, posts, "posts", nil)
	}
}

func (h *ReactionHandler) GetLikes() gin.HandlerFunc {
	return h.reactedBy(entity.ReactionLike)
}

func (h *ReactionHandler) GetRetweets() gin.HandlerFunc {
	return h.reactedBy(entity.ReactionRetweet)
}
