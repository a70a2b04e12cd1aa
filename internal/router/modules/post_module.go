package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chirper-app/chirper/internal/container"
	handlers "github.com/chirper-app/chirper/internal/interface/http"
	"github.com/chirper-app/chirper/internal/interface/middleware"
	"github.com/chirper-app/chirper/pkg/helpers"
)

type PostModule struct {
	Handler *handlers.PostHandler
	JWT     *helpers.JWTManager
}

func NewPostModule(h *handlers.PostHandler, jwt *helpers.JWTManager) *PostModule {
	return &PostModule{Handler: h, JWT: jwt}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/post", m.Handler.Create)
		auth.GET("/post", m.Handler.GetFeed)
		auth.GET("/post/by_user/:userId", m.Handler.GetByUser)
		auth.GET("/post/:postId", m.Handler.GetPost)
		auth.DELETE("/post/:postId", m.Handler.Delete)
	}
}
