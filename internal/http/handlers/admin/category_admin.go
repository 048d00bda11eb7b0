package admin

import (
	"errors"
	"strings"

	"github.com/anta-store/anta-api/internal/http/response"
	"github.com/anta-store/anta-api/internal/models"
	"github.com/anta-store/anta-api/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryUpsertRequest creates or updates a category.
type CategoryUpsertRequest struct {
	Slug      string      `json:"slug" binding:"required"`
	Name      models.JSON `json:"name" binding:"required"`
	Icon      string      `json:"icon"`
	SortOrder int         `json:"sort_order"`
}

func (r CategoryUpsertRequest) toInput() service.CategoryUpsertInput {
	return service.CategoryUpsertInput{
		Slug:      strings.TrimSpace(r.Slug),
		Name:      r.Name,
		Icon:      strings.TrimSpace(r.Icon),
		SortOrder: r.SortOrder,
	}
}

func respondCategoryAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, response.CodeNotFound, "error.not_found", nil)
	case errors.Is(err, service.ErrSlugTaken):
		respondError(c, response.CodeConflict, "error.bad_request", nil)
	default:
		respondError(c, response.CodeInternal, "error.internal", err)
	}
}

// GetAdminCategories lists all categories.
func (h *Handler) GetAdminCategories(c *gin.Context) {
	categories, err := h.CategoryService.ListAll()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"categories": categories})
}

// CreateAdminCategory creates a category.
func (h *Handler) CreateAdminCategory(c *gin.Context) {
	var req CategoryUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category, err := h.CategoryService.Create(req.toInput())
	if err != nil {
		respondCategoryAdminError(c, err)
		return
	}
	response.Success(c, gin.H{"category": category})
}

// UpdateAdminCategory updates a category.
func (h *Handler) UpdateAdminCategory(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req CategoryUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category, err := h.CategoryService.Update(id, req.toInput())
	if err != nil {
		respondCategoryAdminError(c, err)
		return
	}
	response.Success(c, gin.H{"category": category})
}

// DeleteAdminCategory deletes a category.
func (h *Handler) DeleteAdminCategory(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.CategoryService.Delete(id); err != nil {
		respondCategoryAdminError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
