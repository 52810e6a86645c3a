package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/DormLink-2025/repair-service/internal/services"
	"github.com/DormLink-2025/repair-service/internal/utils"
)

type CategoryHandler struct {
	BaseHandler
	categoryService services.CategoryService
}

func NewCategoryHandler(categoryService services.CategoryService, logger utils.Logger) *CategoryHandler {
	return &CategoryHandler{
		BaseHandler:     NewBaseHandler(logger),
		categoryService: categoryService,
	}
}

// List handles GET /api/categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, "OK", categories)
}
