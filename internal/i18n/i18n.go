package i18n

import (
	"fmt"
	"strings"

	"github.com/anta-store/anta-api/internal/constants"

	"github.com/gin-gonic/gin"
)

// LocaleContextKey is where middleware stores the resolved locale.
const LocaleContextKey = "locale"

// ResolveLocale picks the request locale: explicit query param first, then
// the Accept-Language header, then the site default (Arabic).
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return constants.LocaleDefault
	}
	if value, ok := c.Get(LocaleContextKey); ok {
		if locale, ok := value.(string); ok && locale != "" {
			return locale
		}
	}
	if locale := Normalize(c.Query("lang")); locale != "" {
		return locale
	}
	if locale := Normalize(c.GetHeader("Accept-Language")); locale != "" {
		return locale
	}
	return constants.LocaleDefault
}

// Normalize maps a raw locale tag onto a supported locale, or "".
func Normalize(raw string) string {
	tag := strings.ToLower(strings.TrimSpace(raw))
	if tag == "" {
		return ""
	}
	// Accept-Language may carry a list; the first entry wins.
	if idx := strings.IndexAny(tag, ",;"); idx >= 0 {
		tag = tag[:idx]
	}
	switch {
	case strings.HasPrefix(tag, constants.LocaleArabic):
		return constants.LocaleArabic
	case strings.HasPrefix(tag, constants.LocaleEnglish):
		return constants.LocaleEnglish
	}
	return ""
}

// T returns the message for key in the given locale, falling back to the
// other locale and finally to the key itself so missing entries stay visible.
func T(locale, key string) string {
	if table, ok := messages[locale]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[constants.LocaleEnglish][key]; ok {
		return msg
	}
	return key
}

// Sprintf formats a localized message with arguments.
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

var messages = map[string]map[string]string{
	constants.LocaleEnglish: {
		"error.bad_request":            "invalid request",
		"error.internal":               "something went wrong, please try again",
		"error.not_found":              "not found",
		"error.auth_header_missing":    "authorization header missing",
		"error.auth_header_invalid":    "authorization header invalid",
		"error.token_invalid":          "session expired, please sign in again",
		"error.jwt_secret_missing":     "server auth misconfigured",
		"error.forbidden":              "you do not have permission to do that",
		"error.login_failed":           "email or password is incorrect",
		"error.login_too_many":         "too many attempts, try again in %d seconds",
		"error.rate_limited":           "too many requests, try again in %d seconds",
		"error.rate_limit_unavailable": "service busy, please retry",
		"error.captcha_required":       "captcha verification required",
		"error.captcha_invalid":        "captcha answer is incorrect",
		"error.email_taken":            "this email is already registered",
		"error.password_weak":          "password does not meet the strength policy",
		"error.user_id_invalid":        "user session invalid",
		"error.user_id_type_invalid":   "user session invalid",
		"error.admin_id_invalid":       "admin session invalid",
		"error.product_not_found":      "product not found",
		"error.product_not_available":  "this product is not available",
		"error.out_of_stock":           "not enough stock, at most %d can be added",
		"error.cart_fetch_failed":      "could not load your cart",
		"error.cart_update_failed":     "could not update your cart",
		"error.note_too_long":          "order note is limited to %d characters",
		"error.note_update_failed":     "could not save the order note",
		"error.checkout_invalid":       "please correct the highlighted fields",
		"error.order_create_failed":    "could not place the order, please retry",
		"error.order_not_found":        "order not found",
		"error.order_status_invalid":   "order cannot move to that status",
		"error.order_cancel_denied":    "this order can no longer be canceled",
		"error.review_not_allowed":     "only verified buyers can review this product",
		"error.review_invalid":         "review rating must be between 1 and 5",
		"error.review_exists":          "you already reviewed this product",
		"error.review_not_found":       "review not found",
		"error.wishlist_update_failed": "could not update your wishlist",
		"error.locale_invalid":         "unsupported language",
		"error.empty_cart":             "your cart is empty",
		"error.password_min_length":    "password must be at least %d characters",
		"error.password_require_upper": "password needs an uppercase letter",
		"error.password_require_lower": "password needs a lowercase letter",
		"error.password_require_number": "password needs a digit",
		"validation.name_too_short":         "name must be at least 5 characters",
		"validation.phone_invalid":          "enter a valid Jordanian mobile number",
		"validation.city_invalid":           "select a city from the list",
		"validation.address_too_short":      "address must be at least 8 characters",
		"validation.shipping_method_invalid": "select a shipping method",
		"validation.payment_method_invalid":  "select a payment method",
		"validation.payment_ref_invalid":     "payment reference must be 4 to 40 characters",
		"msg.added_to_cart":            "added to cart",
		"msg.cart_quantity_updated":    "cart updated",
		"msg.order_placed":             "order placed successfully",
	},
	constants.LocaleArabic: {
		"error.bad_request":            "طلب غير صالح",
		"error.internal":               "حدث خطأ ما، حاول مرة أخرى",
		"error.not_found":              "غير موجود",
		"error.auth_header_missing":    "ترويسة التفويض مفقودة",
		"error.auth_header_invalid":    "ترويسة التفويض غير صالحة",
		"error.token_invalid":          "انتهت الجلسة، سجّل الدخول مجدداً",
		"error.jwt_secret_missing":     "إعدادات الخادم غير مكتملة",
		"error.forbidden":              "ليست لديك صلاحية لهذا الإجراء",
		"error.login_failed":           "البريد الإلكتروني أو كلمة المرور غير صحيحة",
		"error.login_too_many":         "محاولات كثيرة، حاول بعد %d ثانية",
		"error.rate_limited":           "طلبات كثيرة، حاول بعد %d ثانية",
		"error.rate_limit_unavailable": "الخدمة مشغولة، أعد المحاولة",
		"error.captcha_required":       "التحقق من الكابتشا مطلوب",
		"error.captcha_invalid":        "إجابة الكابتشا غير صحيحة",
		"error.email_taken":            "هذا البريد الإلكتروني مسجل مسبقاً",
		"error.password_weak":          "كلمة المرور لا تحقق سياسة القوة",
		"error.user_id_invalid":        "جلسة المستخدم غير صالحة",
		"error.user_id_type_invalid":   "جلسة المستخدم غير صالحة",
		"error.admin_id_invalid":       "جلسة المشرف غير صالحة",
		"error.product_not_found":      "المنتج غير موجود",
		"error.product_not_available":  "هذا المنتج غير متوفر",
		"error.out_of_stock":           "الكمية غير متوفرة، يمكن إضافة %d كحد أقصى",
		"error.cart_fetch_failed":      "تعذر تحميل سلة التسوق",
		"error.cart_update_failed":     "تعذر تحديث سلة التسوق",
		"error.note_too_long":          "ملاحظة الطلب محدودة بـ %d حرفاً",
		"error.note_update_failed":     "تعذر حفظ ملاحظة الطلب",
		"error.checkout_invalid":       "يرجى تصحيح الحقول المحددة",
		"error.order_create_failed":    "تعذر إتمام الطلب، أعد المحاولة",
		"error.order_not_found":        "الطلب غير موجود",
		"error.order_status_invalid":   "لا يمكن نقل الطلب إلى هذه الحالة",
		"error.order_cancel_denied":    "لم يعد بالإمكان إلغاء هذا الطلب",
		"error.review_not_allowed":     "التقييم متاح للمشترين فقط",
		"error.review_invalid":         "التقييم يجب أن يكون بين 1 و 5",
		"error.review_exists":          "لقد قيّمت هذا المنتج مسبقاً",
		"error.review_not_found":       "التقييم غير موجود",
		"error.wishlist_update_failed": "تعذر تحديث قائمة الرغبات",
		"error.locale_invalid":         "لغة غير مدعومة",
		"error.empty_cart":             "سلة التسوق فارغة",
		"error.password_min_length":    "كلمة المرور يجب ألا تقل عن %d حرفاً",
		"error.password_require_upper": "كلمة المرور تحتاج حرفاً كبيراً",
		"error.password_require_lower": "كلمة المرور تحتاج حرفاً صغيراً",
		"error.password_require_number": "كلمة المرور تحتاج رقماً",
		"validation.name_too_short":         "الاسم يجب ألا يقل عن 5 أحرف",
		"validation.phone_invalid":          "أدخل رقم هاتف أردني صحيح",
		"validation.city_invalid":           "اختر مدينة من القائمة",
		"validation.address_too_short":      "العنوان يجب ألا يقل عن 8 أحرف",
		"validation.shipping_method_invalid": "اختر طريقة الشحن",
		"validation.payment_method_invalid":  "اختر طريقة الدفع",
		"validation.payment_ref_invalid":     "رقم مرجع الدفع يجب أن يكون بين 4 و 40 حرفاً",
		"msg.added_to_cart":            "تمت الإضافة إلى السلة",
		"msg.cart_quantity_updated":    "تم تحديث السلة",
		"msg.order_placed":             "تم إرسال الطلب بنجاح",
	},
}
