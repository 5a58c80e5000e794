package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/bratat/go-user-accounts/internal/interface/http"
	"github.com/bratat/go-user-accounts/internal/interface/middleware"
	"github.com/bratat/go-user-accounts/pkg/helpers"
)

// UserModule wires the profile routes behind the session middleware.
// All routes are registered under the given RouterGroup (usually /api).
type UserModule struct {
	Handler     *handlers.UserHandler
	JWT         *helpers.JWTManager
	TokenHeader string
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager, tokenHeader string) *UserModule {
	return &UserModule{Handler: h, JWT: jwt, TokenHeader: tokenHeader}
}

func (m *UserModule) Name() string { return "users" }

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/users")
	auth.Use(middleware.Auth(m.JWT, m.TokenHeader))
	{
		auth.GET("", m.Handler.List)
		auth.GET("/:id", m.Handler.Get)
		auth.PATCH("/:id", m.Handler.Update)
		auth.PATCH("/:id/settings", m.Handler.UpdateSettings)
		auth.DELETE("/:id", m.Handler.Delete)
	}
}
