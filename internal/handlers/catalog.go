package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/taskhub/backend/internal/middleware"
	"github.com/taskhub/backend/internal/services"
	"github.com/taskhub/backend/pkg/response"
)

// LabelHandler and CategoryHandler serve the two task catalogs.

type LabelHandler struct {
	labelService *services.LabelService
}

func NewLabelHandler(labelService *services.LabelService) *LabelHandler {
	return &LabelHandler{labelService: labelService}
}

// GET /api/labels
func (h *LabelHandler) List(c *gin.Context) {
	var req services.CatalogListRequest
	if !bindQuery(c, &req) {
		return
	}
	page, err := h.labelService.List(middleware.GetActor(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "labels fetched successfully", page)
}

// GET /api/labels/:id
func (h *LabelHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id", "label")
	if !ok {
		return
	}
	label, err := h.labelService.GetByID(middleware.GetActor(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "label fetched successfully", label)
}

// POST /api/labels
func (h *LabelHandler) Create(c *gin.Context) {
	var req services.LabelRequest
	if !bindJSON(c, &req) {
		return
	}
	label, err := h.labelService.Create(middleware.GetActor(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "label created successfully", label)
}

// PUT /api/labels/:id
func (h *LabelHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "label")
	if !ok {
		return
	}
	var req services.UpdateLabelRequest
	if !bindJSON(c, &req) {
		return
	}
	label, err := h.labelService.Update(middleware.GetActor(c), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "label updated successfully", label)
}

// DELETE /api/labels/:id
func (h *LabelHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "label")
	if !ok {
		return
	}
	if err := h.labelService.Delete(middleware.GetActor(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "label deleted successfully", nil)
}

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// GET /api/categories
func (h *CategoryHandler) List(c *gin.Context) {
	var req services.CatalogListRequest
	if !bindQuery(c, &req) {
		return
	}
	page, err := h.categoryService.List(middleware.GetActor(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "categories fetched successfully", page)
}

// GET /api/categories/:id
func (h *CategoryHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id", "category")
	if !ok {
		return
	}
	category, err := h.categoryService.GetByID(middleware.GetActor(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "category fetched successfully", category)
}

// POST /api/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req services.CategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	category, err := h.categoryService.Create(middleware.GetActor(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "category created successfully", category)
}

// PUT /api/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "category")
	if !ok {
		return
	}
	var req services.UpdateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	category, err := h.categoryService.Update(middleware.GetActor(c), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "category updated successfully", category)
}

// DELETE /api/categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "category")
	if !ok {
		return
	}
	if err := h.categoryService.Delete(middleware.GetActor(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "category deleted successfully", nil)
}
