package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"financetracker/internal/respond"
	"financetracker/internal/services"
)

// CategoryHandler handles category-related requests
type CategoryHandler struct {
	categoryService services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// GetAllCategories lists every category
// @Summary     List categories
// @Description Get all transaction categories ordered by id
// @Tags        categories
// @Produce     json
// @Success     200 {object} respond.Envelope{data=[]models.Category} "Categories"
// @Failure     500 {object} respond.Envelope "Server error"
// @Router      /categories [get]
func (h *CategoryHandler) GetAllCategories(c *gin.Context) {
	categories, err := h.categoryService.GetAllCategories()
	if err != nil {
		respondWithError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, categories, "")
}
