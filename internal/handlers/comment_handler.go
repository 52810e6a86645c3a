package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DormLink-2025/repair-service/internal/models"
	"github.com/DormLink-2025/repair-service/internal/services"
	"github.com/DormLink-2025/repair-service/internal/utils"
)

type CommentHandler struct {
	BaseHandler
	commentService services.CommentService
}

func NewCommentHandler(commentService services.CommentService, logger utils.Logger) *CommentHandler {
	return &CommentHandler{
		BaseHandler:    NewBaseHandler(logger),
		commentService: commentService,
	}
}

// Create handles POST /api/comments
func (h *CommentHandler) Create(c *gin.Context) {
	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	actor := CurrentActor(c)
	h.LogRequest(c, "Creating comment", "order_id", req.RepairOrderID, "student_id", actor.ID)

	info, err := h.commentService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, "Comment created", info)
}

// GetByOrder handles GET /api/comments/:repair_order_id
func (h *CommentHandler) GetByOrder(c *gin.Context) {
	orderID, ok := h.parseIDParam(c, "repair_order_id")
	if !ok {
		return
	}

	info, err := h.commentService.GetByOrderID(c.Request.Context(), CurrentActor(c), orderID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, "OK", info)
}
