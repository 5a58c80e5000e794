package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bratat/go-user-accounts/config"
	"github.com/bratat/go-user-accounts/internal/application"
	"github.com/bratat/go-user-accounts/pkg/helpers"
	"github.com/bratat/go-user-accounts/pkg/response"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Cfg    *config.Config
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, cfg *config.Config, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Cfg: cfg, Logger: logger}
}

// Register POST /api/user/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req application.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, toPublicUser(u))
}

// Login POST /api/user/login
// The token is returned in the body and in the configured token header.
func (h *AuthHandler) Login(c *gin.Context) {
	var req application.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Error[any](c, http.StatusBadRequest, "Email doesn't exists", nil)
		case errors.Is(err, application.ErrInvalidCredentials):
			response.Error[any](c, http.StatusBadRequest, "Invalid password", nil)
		case errors.Is(err, application.ErrUnconfirmedAccount):
			response.Error[any](c, http.StatusBadRequest, "Please confirm your email first", nil)
		default:
			writeError(c, h.Logger, err)
		}
		return
	}
	c.Header(h.Cfg.TokenHeader, res.Token)
	response.JSON(c, http.StatusOK, gin.H{"token": res.Token})
}

// Confirm GET /api/user/confirmation/:token
// Always redirects: to the success page, or to the failure page with a reason.
func (h *AuthHandler) Confirm(c *gin.Context) {
	_, err := h.Svc.ConfirmEmail(c.Request.Context(), c.Param("token"))
	if err == nil {
		c.Redirect(http.StatusFound, h.Cfg.ConfirmSuccessURL)
		return
	}

	reason := confirmFailureReason(err)
	if reason == "server_error" {
		helpers.LogError(h.Logger, "email confirmation failed", err, logrus.Fields{"request_id": c.GetString("request_id")})
	}
	c.Redirect(http.StatusFound, withQuery(h.Cfg.ConfirmFailureURL, "reason", reason))
}

func confirmFailureReason(err error) string {
	switch {
	case errors.Is(err, application.ErrMissingToken):
		return "missing_token"
	case errors.Is(err, application.ErrExpiredToken):
		return "expired_token"
	case errors.Is(err, application.ErrInvalidToken):
		return "invalid_token"
	case errors.Is(err, application.ErrUserNotFound):
		return "user_not_found"
	default:
		return "server_error"
	}
}

func withQuery(raw, key, value string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String()
}

type resendRequest struct {
	Email string `json:"email"`
}

// ResendConfirmation POST /api/user/confirmation/resend
// Answers 202 whether or not the address belongs to an unconfirmed account.
func (h *AuthHandler) ResendConfirmation(c *gin.Context) {
	var req resendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	if err := h.Svc.ResendConfirmation(c.Request.Context(), req.Email); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusAccepted, gin.H{"message": "If the account exists and is not confirmed yet, a new confirmation email is on its way"})
}
