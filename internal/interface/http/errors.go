package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bratat/go-user-accounts/internal/application"
	"github.com/bratat/go-user-accounts/pkg/helpers"
	"github.com/bratat/go-user-accounts/pkg/response"
	"github.com/bratat/go-user-accounts/pkg/validation"
)

const msgInternal = "Something went wrong, please try again later"

// writeError maps application errors onto HTTP statuses. Anything it does
// not recognise is logged and answered with a generic 500.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	var ve *application.ValidationError
	switch {
	case errors.As(err, &ve):
		var details any
		if ve.Field != "" {
			details = map[string]string{ve.Field: ve.Message}
		}
		response.Error[any](c, http.StatusBadRequest, ve.Message, details)
	case errors.Is(err, application.ErrDuplicateUser):
		response.Error[any](c, http.StatusBadRequest, "User already exists", nil)
	case errors.Is(err, application.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, "User not found", nil)
	default:
		helpers.LogError(logger, "request failed", err, logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
		})
		response.Error[any](c, http.StatusInternalServerError, msgInternal, nil)
	}
}

func writeBindError(c *gin.Context, err error) {
	response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}
