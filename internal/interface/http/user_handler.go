package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/chirper-app/chirper/internal/application"
	"github.com/chirper-app/chirper/internal/interface/middleware"
	"github.com/chirper-app/chirper/pkg/response"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

func (h *UserHandler) GetRecommendations(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	users, err := h.Svc.GetRecommendations(c.Request.Context(), uid, offsetParams(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, users, "recommended users", nil)
}

func (h *UserHandler) GetMe(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	view, err := h.Svc.GetLoggedUser(c.Request.Context(), uid)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, view, "profile", nil)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	view, err := h.Svc.GetUser(c.Request.Context(), uid, c.Param("userId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, view, "user", nil)
}

func (h *UserHandler) GetByUsername(c *gin.Context) {
	users, err := h.Svc.GetUsersByUsername(c.Request.Context(), c.Param("username"), cursorParams(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, users, "users", nil)
}

func (h *UserHandler) Search(c *gin.Context) {
	hits, err := h.Svc.SearchUsers(c.Request.Context(), c.Query("query"), intQuery(c, "size"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", nil)
}

func (h *UserHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.DeleteUser(c.Request.Context(), uid); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "account deleted", nil)
}

func (h *UserHandler) SetPrivate(private bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(middleware.CtxUserIDKey)
		if err := h.Svc.SetPrivate(c.Request.Context(), uid, private); err != nil {
			response.FromError(c, err)
			return
		}
		response.Success[any](c, http.StatusOK, map[string]any{"private": private}, "visibility updated", nil)
	}
}

func (h *UserHandler) UpdateProfilePicture(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	url, err := h.Svc.UpdateProfilePicture(c.Request.Context(), uid, c.Query("extension"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"uploadUrl": url}, "profile picture updated", nil)
}
