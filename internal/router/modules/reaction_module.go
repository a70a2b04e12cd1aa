package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chirper-app/chirper/internal/container"
	handlers "github.com/chirper-app/chirper/internal/interface/http"
	"github.com/chirper-app/chirper/internal/interface/middleware"
	"github.com/chirper-app/chirper/pkg/helpers"
)

type ReactionModule struct {
	Handler *handlers.ReactionHandler
	JWT     *helpers.JWTManager
}

func NewReactionModule(h *handlers.ReactionHandler, jwt *helpers.JWTManager) *ReactionModule {
	return &ReactionModule{Handler: h, JWT: jwt}
}

func (m *ReactionModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/reaction/:postId", m.Handler.React)
		auth.DELETE("/reaction/:postId", m.Handler.Unreact)
		auth.GET("/reaction/likes/:userId", m.Handler.GetLikes())
		auth.GET("/reaction/retweets/:userId", m.Handler.GetRetweets())
	}
}
