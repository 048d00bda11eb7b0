package admin

import (
	"errors"
	"strconv"

	handlershared "github.com/anta-store/anta-api/internal/http/handlers/shared"
	"github.com/anta-store/anta-api/internal/http/response"
	"github.com/anta-store/anta-api/internal/repository"
	"github.com/anta-store/anta-api/internal/service"

	"github.com/gin-gonic/gin"
)

// SetReviewPublishedRequest publishes or hides a review.
type SetReviewPublishedRequest struct {
	Published *bool `json:"published" binding:"required"`
}

// GetAdminReviews lists reviews for moderation, including hidden ones.
func (h *Handler) GetAdminReviews(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.ReviewListFilter{
		Page:     page,
		PageSize: pageSize,
		WithUser: true,
	}
	if raw := c.Query("product_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil && id > 0 {
			filter.ProductID = uint(id)
		}
	}
	if raw := c.Query("user_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil && id > 0 {
			filter.UserID = uint(id)
		}
	}

	reviews, total, err := h.ReviewService.ListAdmin(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"reviews": reviews}, response.NewPagination(page, pageSize, total))
}

// SetAdminReviewPublished flips a review's published flag. The product's
// rating aggregate follows in the same transaction.
func (h *Handler) SetAdminReviewPublished(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req SetReviewPublishedRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Published == nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.ReviewService.SetPublished(id, *req.Published); err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			respondError(c, response.CodeNotFound, "error.review_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"updated": true})
}

// DeleteAdminReview removes a review and recomputes the aggregate.
func (h *Handler) DeleteAdminReview(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.ReviewService.DeleteReview(id); err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			respondError(c, response.CodeNotFound, "error.review_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
