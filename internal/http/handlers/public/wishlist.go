package public

import (
	"github.com/anta-store/anta-api/internal/http/response"
	"github.com/anta-store/anta-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ToggleWishlistRequest toggles a product's saved state.
type ToggleWishlistRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// GetWishlist returns the caller's saved products.
func (h *Handler) GetWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	items, err := h.WishlistService.List(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.wishlist_update_failed", err)
		return
	}
	response.Success(c, gin.H{"items": items})
}

// ToggleWishlist flips a product in or out of the wishlist and reports the
// resulting state.
func (h *Handler) ToggleWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req ToggleWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	saved, err := h.WishlistService.Toggle(uid, req.ProductID)
	if err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.bad_request"},
			{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
		}, response.CodeInternal, "error.wishlist_update_failed")
		return
	}
	response.Success(c, gin.H{"saved": saved})
}

// DeleteWishlistItem removes one product from the wishlist.
func (h *Handler) DeleteWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := paramProductID(c)
	if !ok {
		return
	}
	if err := h.WishlistService.Remove(uid, productID); err != nil {
		respondError(c, response.CodeInternal, "error.wishlist_update_failed", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
