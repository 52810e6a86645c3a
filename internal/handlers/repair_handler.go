package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DormLink-2025/repair-service/internal/models"
	"github.com/DormLink-2025/repair-service/internal/services"
	"github.com/DormLink-2025/repair-service/internal/utils"
)

type RepairHandler struct {
	BaseHandler
	repairService services.RepairService
	exportService services.ExportService
}

func NewRepairHandler(repairService services.RepairService, exportService services.ExportService, logger utils.Logger) *RepairHandler {
	return &RepairHandler{
		BaseHandler:   NewBaseHandler(logger),
		repairService: repairService,
		exportService: exportService,
	}
}

// Create handles POST /api/repairs
func (h *RepairHandler) Create(c *gin.Context) {
	var req models.CreateRepairOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	actor := CurrentActor(c)
	h.LogRequest(c, "Creating repair order", "student_id", actor.ID, "category", req.Category)

	resp, err := h.repairService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, "Repair order created", resp)
}

// List handles GET /api/repairs
func (h *RepairHandler) List(c *gin.Context) {
	actor := CurrentActor(c)

	orders, err := h.repairService.List(c.Request.Context(), actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, "OK", orders)
}

// ListPending handles GET /api/repairs/pending
func (h *RepairHandler) ListPending(c *gin.Context) {
	actor := CurrentActor(c)

	orders, err := h.repairService.ListPending(c.Request.Context(), actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, "OK", orders)
}

// Get handles GET /api/repairs/:id
func (h *RepairHandler) Get(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.repairService.Get(c.Request.Context(), CurrentActor(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, "OK", detail)
}

// Approve handles PUT /api/repairs/:id/approve
func (h *RepairHandler) Approve(c *gin.Context) {
	h.doTransition(c, "Approving repair order", h.repairService.Approve, "Repair order approved")
}

// Reject handles PUT /api/repairs/:id/reject
func (h *RepairHandler) Reject(c *gin.Context) {
	h.doTransition(c, "Rejecting repair order", h.repairService.Reject, "Repair order rejected")
}

// Accept handles PUT /api/repairs/:id/accept
func (h *RepairHandler) Accept(c *gin.Context) {
	h.doTransition(c, "Accepting repair order", h.repairService.Accept, "Repair order accepted")
}

// Complete handles PUT /api/repairs/:id/complete
func (h *RepairHandler) Complete(c *gin.Context) {
	h.doTransition(c, "Completing repair order", h.repairService.Complete, "Repair order completed")
}

// Export handles GET /api/repairs/export
func (h *RepairHandler) Export(c *gin.Context) {
	actor := CurrentActor(c)
	h.LogRequest(c, "Exporting repair orders", "actor_id", actor.ID)

	data, err := h.exportService.ExportOrders(c.Request.Context(), actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("repair-orders-%s.xlsx", time.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (h *RepairHandler) doTransition(c *gin.Context, logMsg string, fn func(ctx context.Context, actor services.Actor, orderID uint) error, okMsg string) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	actor := CurrentActor(c)
	h.LogRequest(c, logMsg, "order_id", id, "actor_id", actor.ID)

	if err := fn(c.Request.Context(), actor, id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, okMsg, nil)
}
