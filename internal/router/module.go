package router

import "github.com/gin-gonic/gin"

// Module is one feature area (auth, posts, messages, ...) registering
// its routes on the shared /api group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
