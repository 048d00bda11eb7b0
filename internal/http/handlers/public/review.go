package public

import (
	"strconv"

	handlershared "github.com/anta-store/anta-api/internal/http/handlers/shared"
	"github.com/anta-store/anta-api/internal/http/response"
	"github.com/anta-store/anta-api/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateReviewRequest submits a product review.
type CreateReviewRequest struct {
	Rating int    `json:"rating" binding:"required"`
	Body   string `json:"body"`
}

// ListProductReviewsBySlug resolves the catalog slug first, so the public
// product page can fetch reviews without knowing the numeric ID.
func (h *Handler) ListProductReviewsBySlug(c *gin.Context) {
	product, err := h.ProductService.GetBySlug(c.Param("slug"))
	if err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.bad_request"},
			{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
		}, response.CodeInternal, "error.internal")
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	reviews, total, err := h.ReviewService.ListProductReviews(product.ID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"reviews": reviews}, response.NewPagination(page, pageSize, total))
}

// CanReview reports whether the caller may review the product.
func (h *Handler) CanReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := paramReviewProductID(c)
	if !ok {
		return
	}
	allowed, err := h.ReviewService.CanReview(uid, productID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"can_review": allowed})
}

// CreateReview writes a review. Only verified buyers get through, one
// review per product per customer.
func (h *Handler) CreateReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := paramReviewProductID(c)
	if !ok {
		return
	}
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	review, err := h.ReviewService.CreateReview(service.CreateReviewInput{
		UserID:    uid,
		ProductID: productID,
		Rating:    req.Rating,
		Body:      req.Body,
	})
	if err != nil {
		respondWithMappedError(c, err, reviewCreateErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"review": review})
}

func paramReviewProductID(c *gin.Context) (uint, bool) {
	raw := c.Param("product_id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(id), true
}
