package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bratat/go-user-accounts/internal/application"
	"github.com/bratat/go-user-accounts/pkg/helpers"
	"github.com/bratat/go-user-accounts/pkg/response"
)

const (
	CtxUserIDKey    = "userID"
	CtxUserNameKey  = "userName"
	CtxUserEmailKey = "userEmail"
	CtxIdentityKey  = "identity"
)

// Auth validates the session token carried in header and sets userID,
// userName, userEmail and the *application.Identity in the Gin context.
// A missing or expired token answers 401, any other bad token 400.
func Auth(jwt *helpers.JWTManager, header string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := application.Authenticate(jwt, c.GetHeader(header))
		if err != nil {
			switch {
			case errors.Is(err, application.ErrMissingToken):
				response.Error[any](c, http.StatusUnauthorized, "Access denied", nil)
			case errors.Is(err, application.ErrExpiredToken):
				response.Error[any](c, http.StatusUnauthorized, "Token expired", nil)
			default:
				response.Error[any](c, http.StatusBadRequest, "Invalid token", nil)
			}
			return
		}

		c.Set(CtxUserIDKey, id.UserID)
		c.Set(CtxUserNameKey, id.Name)
		c.Set(CtxUserEmailKey, id.Email)
		c.Set(CtxIdentityKey, id)
		c.Next()
	}
}

// IdentityFrom returns the identity set by Auth, if any.
func IdentityFrom(c *gin.Context) (*application.Identity, bool) {
	v, ok := c.Get(CtxIdentityKey)
	if !ok {
		return nil, false
	}
	id, ok := v.(*application.Identity)
	return id, ok
}
