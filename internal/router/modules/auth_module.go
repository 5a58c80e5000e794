package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/bratat/go-user-accounts/internal/interface/http"
)

// AuthModule exposes the public account routes:
// POST /user/register, POST /user/login, GET /user/confirmation/:token,
// POST /user/confirmation/resend.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Name() string { return "auth" }

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	user := rg.Group("/user")
	user.POST("/register", m.Handler.Register)
	user.POST("/login", m.Handler.Login)
	user.GET("/confirmation/:token", m.Handler.Confirm)
	user.POST("/confirmation/resend", m.Handler.ResendConfirmation)
}
