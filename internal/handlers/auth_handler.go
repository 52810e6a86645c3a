package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DormLink-2025/repair-service/internal/models"
	"github.com/DormLink-2025/repair-service/internal/services"
	"github.com/DormLink-2025/repair-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
	}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, "Login successful", resp)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	actor := CurrentActor(c)

	info, err := h.authService.GetProfile(c.Request.Context(), actor.ID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, "OK", info)
}

// ChangePassword handles POST /api/auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	actor := CurrentActor(c)
	h.LogRequest(c, "Changing password", "user_id", actor.ID)

	if err := h.authService.ChangePassword(c.Request.Context(), actor.ID, req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, "Password changed", nil)
}

// UpdateProfile handles PUT /api/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	actor := CurrentActor(c)

	info, err := h.authService.UpdateProfile(c.Request.Context(), actor.ID, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, "Profile updated", info)
}
