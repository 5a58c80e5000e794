package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bratat/go-user-accounts/internal/application"
	"github.com/bratat/go-user-accounts/pkg/response"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type updateSettingsRequest struct {
	Settings struct {
		Mode string `json:"mode"`
	} `json:"settings"`
}

// Get GET /api/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, toUserView(u))
}

// List GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	out := make([]userView, 0, len(users))
	for _, u := range users {
		out = append(out, toUserView(u))
	}
	response.JSON(c, http.StatusOK, out)
}

// Update PATCH /api/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	var req application.UpdateProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, toPublicUser(u))
}

// UpdateSettings PATCH /api/users/:id/settings
// Unsupported modes are ignored; the body reports the mode actually stored.
func (h *UserHandler) UpdateSettings(c *gin.Context) {
	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	u, err := h.Svc.UpdateSettings(c.Request.Context(), c.Param("id"), req.Settings.Mode)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"settings": settingsView{Mode: u.EffectiveMode()}})
}

// Delete DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "User has been removed"})
}
