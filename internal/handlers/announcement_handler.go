package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DormLink-2025/repair-service/internal/models"
	"github.com/DormLink-2025/repair-service/internal/services"
	"github.com/DormLink-2025/repair-service/internal/utils"
)

type AnnouncementHandler struct {
	BaseHandler
	announcementService services.AnnouncementService
}

func NewAnnouncementHandler(announcementService services.AnnouncementService, logger utils.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{
		BaseHandler:         NewBaseHandler(logger),
		announcementService: announcementService,
	}
}

// List handles GET /api/announcements
func (h *AnnouncementHandler) List(c *gin.Context) {
	announcements, err := h.announcementService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, "OK", announcements)
}

// Create handles POST /api/announcements
func (h *AnnouncementHandler) Create(c *gin.Context) {
	var req models.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	info, err := h.announcementService.Create(c.Request.Context(), CurrentActor(c), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, "Announcement created", info)
}

// Update handles PUT /api/announcements/:id
func (h *AnnouncementHandler) Update(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	info, err := h.announcementService.Update(c.Request.Context(), CurrentActor(c), id, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, "Announcement updated", info)
}

// Delete handles DELETE /api/announcements/:id
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.announcementService.Delete(c.Request.Context(), CurrentActor(c), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, "Announcement deleted", nil)
}
