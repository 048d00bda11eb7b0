package public

import (
	"strconv"
	"strings"

	"github.com/anta-store/anta-api/internal/constants"
	handlershared "github.com/anta-store/anta-api/internal/http/handlers/shared"
	"github.com/anta-store/anta-api/internal/http/response"
	"github.com/anta-store/anta-api/internal/repository"
	"github.com/anta-store/anta-api/internal/service"

	"github.com/gin-gonic/gin"
)

// GetConfig returns the static storefront configuration: currency, locales,
// the checkout city list and the shipping/payment options.
func (h *Handler) GetConfig(c *gin.Context) {
	response.Success(c, gin.H{
		"currency":  constants.SiteCurrency,
		"languages": []string{constants.LocaleArabic, constants.LocaleEnglish},
		"cities":    service.JordanCities(),
		"shipping_methods": gin.H{
			constants.ShippingMethodStandard: service.ShippingFees()[constants.ShippingMethodStandard],
			constants.ShippingMethodExpress:  service.ShippingFees()[constants.ShippingMethodExpress],
		},
		"payment_methods": []string{constants.PaymentMethodCOD, constants.PaymentMethodCliq},
	})
}

// ListProducts returns the active catalog with optional category, search
// and stock filters.
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		Search:       strings.TrimSpace(c.Query("search")),
		OnlyActive:   true,
		InStockOnly:  c.Query("in_stock") == "1" || c.Query("in_stock") == "true",
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

// GetProduct returns one active product by slug.
func (h *Handler) GetProduct(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	product, err := h.ProductService.GetBySlug(slug)
	if err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.bad_request"},
			{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
		}, response.CodeInternal, "error.internal")
		return
	}
	if !product.IsActive {
		respondError(c, response.CodeNotFound, "error.product_not_found", nil)
		return
	}
	response.Success(c, gin.H{"product": product})
}

// ListCategories returns the category tree, flat.
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.ListAll()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"categories": categories})
}
