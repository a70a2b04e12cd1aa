package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chirper-app/chirper/internal/container"
	handlers "github.com/chirper-app/chirper/internal/interface/http"
	"github.com/chirper-app/chirper/internal/interface/middleware"
	"github.com/chirper-app/chirper/pkg/helpers"
)

type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/user", m.Handler.GetRecommendations)
		auth.GET("/user/me", m.Handler.GetMe)
		auth.GET("/user/search", m.Handler.Search)
		auth.GET("/user/by_username/:username", m.Handler.GetByUsername)
		auth.GET("/user/:userId", m.Handler.GetUser)
		auth.DELETE("/user", m.Handler.Delete)
		auth.PUT("/user/private", m.Handler.SetPrivate(true))
		auth.PUT("/user/unprivate", m.Handler.SetPrivate(false))
		auth.PUT("/user/profile", m.Handler.UpdateProfilePicture)
	}
}
