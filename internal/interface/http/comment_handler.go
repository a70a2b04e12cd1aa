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

type CommentHandler struct {
	Svc    *application.CommentService
	Logger *logrus.Logger
}

func NewCommentHandler(svc *application.CommentService, logger *logrus.Logger) *CommentHandler {
	return &CommentHandler{Svc: svc, Logger: logger}
}

func (h *CommentHandler) Create(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	comment, err := h.Svc.CommentPost(c.Request.Context(), uid, c.Param("postId"), application.CreatePostInput{
		Content: req.Content,
		Images:  req.Images,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, comment, "comment created", nil)
}

func (h *CommentHandler) GetByPost(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	comments, err := h.Svc.GetCommentsByPost(c.Request.Context(), uid, c.Param("postId"), cursorParams(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, comments, "comments", nil)
}

func (h *CommentHandler) GetByUser(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	comments, err := h.Svc.GetCommentsByUser(c.Request.Context(), uid, c.Param("userId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, comments, "comments", nil)
}
