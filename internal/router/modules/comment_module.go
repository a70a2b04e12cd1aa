package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chirper-app/chirper/internal/container"
	handlers "github.com/chirper-app/chirper/internal/interface/http"
	"github.com/chirper-app/chirper/internal/interface/middleware"
	"github.com/chirper-app/chirper/pkg/helpers"
)

type CommentModule struct {
	Handler *handlers.CommentHandler
	JWT     *helpers.JWTManager
}

func NewCommentModule(h *handlers.CommentHandler, jwt *helpers.JWTManager) *CommentModule {
	return &CommentModule{Handler: h, JWT: jwt}
}

func (m *CommentModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/comment/:postId", m.Handler.Create)
		auth.GET("/comment/by_user/:userId", m.Handler.GetByUser)
		auth.GET("/comment/:postId", m.Handler.GetByPost)
	}
}
