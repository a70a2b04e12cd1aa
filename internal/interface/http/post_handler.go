package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/chirper-app/chirper/internal/application"
	"github.com/chirper-app/chirper/internal/interface/middleware"
	"github.com/chirper-app/chirper/pkg/response"
	"github.com/chirper-app/chirper/pkg/validation"
)

type PostHandler struct {
	Svc    *application.PostService
	Logger *logrus.Logger
}

func NewPostHandler(svc *application.PostService, logger *logrus.Logger) *PostHandler {
	return &PostHandler{Svc: svc, Logger: logger}
}

type createPostRequest struct {
	Content string   `json:"content" binding:"required,min=1,max=240"`
	Images  []string `json:"images" binding:"omitempty,max=4,dive,required"`
}

func (h *PostHandler) Create(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	post, err := h.Svc.CreatePost(c.Request.Context(), uid, application.CreatePostInput{
		Content: req.Content,
		Images:  req.Images,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, post, "post created", nil)
}

func (h *PostHandler) GetFeed(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	posts, err := h.Svc.GetLatestPosts(c.Request.Context(), uid, cursorParams(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, posts, "feed", nil)
}

func (h *PostHandler) GetPost(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	post, err := h.Svc.GetPost(c.Request.Context(), uid, c.Param("postId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, post, "post", nil)
}

func (h *PostHandler) GetByUser(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	posts, err := h.Svc.GetPostsByAuthor(c.Request.Context(), uid, c.Param("userId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, posts, "posts", nil)
}

func (h *PostHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.DeletePost(c.Request.Context(), uid, c.Param("postId")); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "post deleted", nil)
}
