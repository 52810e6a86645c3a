package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DormLink-2025/repair-service/internal/models"
	"github.com/DormLink-2025/repair-service/internal/services"
	"github.com/DormLink-2025/repair-service/internal/utils"
)

type UserHandler struct {
	BaseHandler
	userService services.UserService
}

func NewUserHandler(userService services.UserService, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		userService: userService,
	}
}

// List handles GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context(), CurrentActor(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, "OK", users)
}

// Create handles POST /api/users
func (h *UserHandler) Create(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	actor := CurrentActor(c)
	h.LogRequest(c, "Creating user", "username", req.Username, "created_by", actor.ID)

	info, err := h.userService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, "User created", info)
}

// Update handles PUT /api/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	info, err := h.userService.Update(c.Request.Context(), CurrentActor(c), id, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, "User updated", info)
}

// Delete handles DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	actor := CurrentActor(c)
	h.LogRequest(c, "Deleting user", "user_id", id, "deleted_by", actor.ID)

	if err := h.userService.Delete(c.Request.Context(), actor, id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, "User deleted", nil)
}
