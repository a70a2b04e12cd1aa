package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chirper-app/chirper/internal/container"
	handlers "github.com/chirper-app/chirper/internal/interface/http"
	"github.com/chirper-app/chirper/internal/interface/middleware"
	"github.com/chirper-app/chirper/pkg/helpers"
)

type FollowModule struct {
	Handler *handlers.FollowHandler
	JWT     *helpers.JWTManager
}

func NewFollowModule(h *handlers.FollowHandler, jwt *helpers.JWTManager) *FollowModule {
	return &FollowModule{Handler: h, JWT: jwt}
}

func (m *FollowModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/follower/follow/:userId", m.Handler.Follow)
		auth.POST("/follower/unfollow/:userId", m.Handler.Unfollow)
	}
}
