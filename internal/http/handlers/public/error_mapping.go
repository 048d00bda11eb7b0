package public

import (
	"errors"

	"github.com/anta-store/anta-api/internal/http/response"
	"github.com/anta-store/anta-api/internal/i18n"
	"github.com/anta-store/anta-api/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError maps a business error onto an API error response.
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

var cartMutationErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.bad_request"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, key: "error.not_found"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.bad_request"},
	{target: service.ErrEmptyCart, code: response.CodeBadRequest, key: "error.empty_cart"},
	{target: service.ErrOrderCreateFailed, code: response.CodeInternal, key: "error.order_create_failed"},
}

var userOrderErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.bad_request"},
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
	{target: service.ErrOrderNotCancelable, code: response.CodeBadRequest, key: "error.order_cancel_denied"},
	{target: service.ErrInvalidTransition, code: response.CodeBadRequest, key: "error.order_status_invalid"},
}

var reviewCreateErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.review_invalid"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrNotPurchased, code: response.CodeForbidden, key: "error.review_not_allowed"},
	{target: service.ErrReviewExists, code: response.CodeConflict, key: "error.review_exists"},
}

// respondOutOfStock writes the stock-limit error with the remaining
// headroom attached, so the client can clamp the quantity field in place.
func respondOutOfStock(c *gin.Context, oos *service.OutOfStockError) {
	locale := i18n.ResolveLocale(c)
	msg := i18n.Sprintf(locale, "error.out_of_stock", oos.MaxAllowed)
	response.ErrorWithData(c, response.CodeBadRequest, msg, gin.H{
		"product_id":  oos.ProductID,
		"max_allowed": oos.MaxAllowed,
	})
}

// respondValidationError writes the per-field checkout failures, each with
// its localized message alongside the stable key.
func respondValidationError(c *gin.Context, verr *service.ValidationError) {
	locale := i18n.ResolveLocale(c)
	fields := make([]gin.H, 0, len(verr.Fields))
	for _, field := range verr.Fields {
		fields = append(fields, gin.H{
			"field":       field.Field,
			"message_key": field.MessageKey,
			"message":     i18n.T(locale, field.MessageKey),
		})
	}
	response.ErrorWithData(c, response.CodeBadRequest, i18n.T(locale, "error.checkout_invalid"), gin.H{
		"step":   verr.Step,
		"fields": fields,
	})
}
