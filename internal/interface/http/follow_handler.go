package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/chirper-app/chirper/internal/application"
	"github.com/chirper-app/chirper/internal/interface/middleware"
	"github.com/chirper-app/chirper/pkg/response"
)

type FollowHandler struct {
	Svc    *application.FollowService
	Logger *logrus.Logger
}

func NewFollowHandler(svc *application.FollowService, logger *logrus.Logger) *FollowHandler {
	return &FollowHandler{Svc: svc, Logger: logger}
}

func (h *FollowHandler) Follow(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.FollowUser(c.Request.Context(), uid, c.Param("userId")); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success[any](c, http.StatusCreated, map[string]any{"following": true}, "followed", nil)
}

func (h *FollowHandler) Unfollow(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.UnfollowUser(c.Request.Context(), uid, c.Param("userId")); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"following": false}, "unfollowed", nil)
}
