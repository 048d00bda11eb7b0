package public

import (
	"strconv"

	"github.com/anta-store/anta-api/internal/http/response"
	"github.com/anta-store/anta-api/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest adds a product to the cart. Quantity arrives as a
// float on purpose: clients send whatever the quantity widget holds and
// the engine rounds and clamps it into the 1..99 range.
type AddCartItemRequest struct {
	ProductID uint    `json:"product_id" binding:"required"`
	Quantity  float64 `json:"quantity"`
}

// UpdateCartItemRequest sets the quantity of an existing line.
type UpdateCartItemRequest struct {
	Quantity float64 `json:"quantity"`
}

// GetCart returns the cart lines with the derived totals.
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	view, err := h.CartService.GetCart(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.cart_fetch_failed", err)
		return
	}
	response.Success(c, view)
}

// AddCartItem adds a product or merges into an existing line.
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	result, err := h.CartService.AddToCart(uid, req.ProductID, req.Quantity)
	if err != nil {
		if oos, ok := service.IsOutOfStock(err); ok {
			respondOutOfStock(c, oos)
			return
		}
		respondWithMappedError(c, err, cartMutationErrorRules, response.CodeInternal, "error.cart_update_failed")
		return
	}

	msgKey := "msg.cart_quantity_updated"
	if result.NewLine {
		msgKey = "msg.added_to_cart"
	}
	response.SuccessWithMsg(c, msgKey, result)
}

// UpdateCartItem sets the quantity of an existing cart line.
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := paramProductID(c)
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	item, err := h.CartService.UpdateQuantity(uid, productID, req.Quantity)
	if err != nil {
		if oos, ok := service.IsOutOfStock(err); ok {
			respondOutOfStock(c, oos)
			return
		}
		respondWithMappedError(c, err, cartMutationErrorRules, response.CodeInternal, "error.cart_update_failed")
		return
	}
	response.Success(c, gin.H{"item": item})
}

// DeleteCartItem removes one line. Removing an absent line succeeds.
func (h *Handler) DeleteCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := paramProductID(c)
	if !ok {
		return
	}
	if err := h.CartService.RemoveFromCart(uid, productID); err != nil {
		respondWithMappedError(c, err, cartMutationErrorRules, response.CodeInternal, "error.cart_update_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ClearCart empties the cart. Whether the pending order note goes with it
// is a service-side policy.
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.CartService.ClearCart(uid); err != nil {
		respondError(c, response.CodeInternal, "error.cart_update_failed", err)
		return
	}
	response.Success(c, gin.H{"cleared": true})
}

func paramProductID(c *gin.Context) (uint, bool) {
	raw := c.Param("product_id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(id), true
}
