package public

import (
	"github.com/anta-store/anta-api/internal/http/response"
	"github.com/anta-store/anta-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ValidateCheckoutStepRequest validates one step of the checkout form.
type ValidateCheckoutStepRequest struct {
	Step int                  `json:"step" binding:"required"`
	Form service.CheckoutForm `json:"form"`
}

// PlaceOrderRequest is the final checkout submission.
type PlaceOrderRequest struct {
	Form service.CheckoutForm `json:"form"`
}

// ValidateCheckoutStep runs server-side validation for a single step so the
// client can gate its "next" button. No state changes.
func (h *Handler) ValidateCheckoutStep(c *gin.Context) {
	if _, ok := getUserID(c); !ok {
		return
	}
	var req ValidateCheckoutStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.CheckoutService.ValidateStep(req.Step, &req.Form); err != nil {
		if verr, ok := service.AsValidationError(err); ok {
			respondValidationError(c, verr)
			return
		}
		respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"valid": true, "step": req.Step})
}

// PlaceOrder submits the checkout. On success the cart and the note draft
// are gone; on stock or submission failure both survive for a retry.
func (h *Handler) PlaceOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	order, err := h.CheckoutService.PlaceOrder(service.PlaceOrderInput{
		UserID:   uid,
		Form:     req.Form,
		ClientIP: c.ClientIP(),
	})
	if err != nil {
		if verr, ok := service.AsValidationError(err); ok {
			respondValidationError(c, verr)
			return
		}
		if oos, ok := service.IsOutOfStock(err); ok {
			respondOutOfStock(c, oos)
			return
		}
		respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "error.order_create_failed")
		return
	}
	response.SuccessWithMsg(c, "msg.order_placed", gin.H{"order": order})
}
