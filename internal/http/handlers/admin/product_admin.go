package admin

import (
	"errors"
	"strconv"
	"strings"

	handlershared "github.com/anta-store/anta-api/internal/http/handlers/shared"
	"github.com/anta-store/anta-api/internal/http/response"
	"github.com/anta-store/anta-api/internal/models"
	"github.com/anta-store/anta-api/internal/repository"
	"github.com/anta-store/anta-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductUpsertRequest creates or updates a product.
type ProductUpsertRequest struct {
	CategoryID  uint               `json:"category_id" binding:"required"`
	Slug        string             `json:"slug" binding:"required"`
	Name        models.JSON        `json:"name" binding:"required"`
	Description models.JSON        `json:"description"`
	Price       models.Money       `json:"price"`
	Image       string             `json:"image"`
	Images      models.StringArray `json:"images"`
	Tags        models.StringArray `json:"tags"`
	Stock       int                `json:"stock"`
	IsActive    bool               `json:"is_active"`
	SortOrder   int                `json:"sort_order"`
}

func (r ProductUpsertRequest) toInput() service.ProductUpsertInput {
	return service.ProductUpsertInput{
		CategoryID:  r.CategoryID,
		Slug:        strings.TrimSpace(r.Slug),
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Image:       strings.TrimSpace(r.Image),
		Images:      r.Images,
		Tags:        r.Tags,
		Stock:       r.Stock,
		IsActive:    r.IsActive,
		SortOrder:   r.SortOrder,
	}
}

var productAdminErrorRules = []struct {
	target error
	code   int
	key    string
}{
	{service.ErrInvalidInput, response.CodeBadRequest, "error.bad_request"},
	{service.ErrCategoryNotFound, response.CodeBadRequest, "error.not_found"},
	{service.ErrSlugTaken, response.CodeConflict, "error.bad_request"},
	{service.ErrProductNotFound, response.CodeNotFound, "error.product_not_found"},
}

func respondProductAdminError(c *gin.Context, err error) {
	for _, rule := range productAdminErrorRules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, response.CodeInternal, "error.internal", err)
}

// GetAdminProducts lists products including inactive ones.
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		Search:       strings.TrimSpace(c.Query("search")),
		WithCategory: true,
	}
	if raw := c.Query("category_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil && id > 0 {
			filter.CategoryID = uint(id)
		}
	}

	products, total, err := h.ProductService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"products": products}, response.NewPagination(page, pageSize, total))
}

// GetAdminProduct returns one product by ID.
func (h *Handler) GetAdminProduct(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	product, err := h.ProductService.GetByID(id)
	if err != nil {
		respondProductAdminError(c, err)
		return
	}
	response.Success(c, gin.H{"product": product})
}

// CreateAdminProduct creates a product.
func (h *Handler) CreateAdminProduct(c *gin.Context) {
	var req ProductUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.ProductService.Create(req.toInput())
	if err != nil {
		respondProductAdminError(c, err)
		return
	}
	response.Success(c, gin.H{"product": product})
}

// UpdateAdminProduct updates a product.
func (h *Handler) UpdateAdminProduct(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req ProductUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.ProductService.Update(id, req.toInput())
	if err != nil {
		respondProductAdminError(c, err)
		return
	}
	response.Success(c, gin.H{"product": product})
}

// DeleteAdminProduct soft deletes a product.
func (h *Handler) DeleteAdminProduct(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.ProductService.Delete(id); err != nil {
		respondProductAdminError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func paramID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(id), true
}
