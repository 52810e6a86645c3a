package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/DormLink-2025/repair-service/internal/services"
	"github.com/DormLink-2025/repair-service/internal/utils"
)

// Response is the envelope every endpoint answers with. Code mirrors
// the HTTP status written so clients can branch on either.
type Response struct {
	Code  int         `json:"code"`
	Msg   string      `json:"msg"`
	Data  interface{} `json:"data,omitempty"`
	Error interface{} `json:"error,omitempty"`
}

// BaseHandler carries the pieces shared by every handler family.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c.Request.Context(), h.logger).Info(msg, args...)
}

func (h BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	utils.FromContext(c.Request.Context(), h.logger).Error(msg, append(args, "error", err)...)
}

func (h BaseHandler) respondOK(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: http.StatusOK, Msg: msg, Data: data})
}

func (h BaseHandler) respondError(c *gin.Context, status int, msg string, details interface{}) {
	c.JSON(status, Response{Code: status, Msg: msg, Error: details})
}

// parseIDParam reads a positive integer path parameter, answering 400
// itself when the value is malformed.
func (h BaseHandler) parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		h.respondError(c, http.StatusBadRequest, "Invalid "+name+" parameter", nil)
		return 0, false
	}
	return uint(id), true
}

// handleServiceError maps the service error taxonomy onto envelope
// codes. Every failure path yields a deterministic code/message pair.
func (h BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		h.respondError(c, http.StatusBadRequest, "Validation failed", validationErrors)
		return
	}

	var transitionError *services.TransitionError
	if errors.As(err, &transitionError) {
		h.respondError(c, http.StatusBadRequest, transitionError.Error(), nil)
		return
	}

	var permissionError *services.PermissionError
	if errors.As(err, &permissionError) {
		h.respondError(c, http.StatusForbidden, "Access denied", map[string]interface{}{
			"resource": permissionError.Resource,
			"action":   permissionError.Action,
			"reason":   permissionError.Reason,
		})
		return
	}

	var conflictError *services.ConflictError
	if errors.As(err, &conflictError) {
		h.respondError(c, http.StatusConflict, conflictError.Error(), nil)
		return
	}

	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		h.respondError(c, http.StatusUnauthorized, "Invalid username or password", nil)
	case errors.Is(err, services.ErrOrderNotFound):
		h.respondError(c, http.StatusNotFound, "Repair order not found", nil)
	case errors.Is(err, services.ErrUserNotFound):
		h.respondError(c, http.StatusNotFound, "User not found", nil)
	case errors.Is(err, services.ErrCategoryNotFound):
		h.respondError(c, http.StatusNotFound, "Category not found", nil)
	case errors.Is(err, services.ErrCommentNotFound):
		h.respondError(c, http.StatusNotFound, "Comment not found", nil)
	case errors.Is(err, services.ErrAnnouncementNotFound):
		h.respondError(c, http.StatusNotFound, "Announcement not found", nil)
	default:
		h.LogError(c, err, "internal error")
		h.respondError(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}
