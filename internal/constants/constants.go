package constants

// Order status constants.
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCanceled   = "canceled"
)

// Cart invariants.
const (
	CartQuantityMin = 1
	CartQuantityMax = 99
)

// Bulk discount: 10% off the subtotal once the cart holds more than two items.
const (
	DiscountItemThreshold = 2
	DiscountRatePercent   = 10
)

// Order note constraints. Edits persist on a settle window so a typing
// burst produces a single write.
const (
	OrderNoteMaxLen       = 600
	NoteDebounceDefaultMS = 350
)

// Checkout field constraints.
const (
	CheckoutNameMinLen       = 5
	CheckoutAddressMinLen    = 8
	CheckoutPaymentRefMinLen = 4
	CheckoutPaymentRefMaxLen = 40
)

// Shipping method constants.
const (
	ShippingMethodStandard = "standard"
	ShippingMethodExpress  = "express"
)

// Payment method constants.
const (
	PaymentMethodCOD  = "cod"
	PaymentMethodCliq = "cliq"
)

// Site currency. Prices are JOD everywhere; no multi-currency support.
const (
	SiteCurrency = "JOD"
)

// Supported locales.
const (
	LocaleArabic  = "ar"
	LocaleEnglish = "en"
	LocaleDefault = LocaleArabic
)

// Local store keys, kept compatible with the legacy browser client.
const (
	LocalKeyCart      = "anta_cart"
	LocalKeyWishlist  = "anta_wishlist"
	LocalKeyOrderNote = "anta_order_note_v1"
	LocalKeyLanguage  = "language"
)

// Storage driver constants.
const (
	StorageDriverDB    = "db"
	StorageDriverLocal = "local"
)

// Review constraints.
const (
	ReviewRatingMin = 1
	ReviewRatingMax = 5
)

// Queue names.
const (
	QueueDefault = "default"
)

// Async task type names.
const (
	TaskOrderPlacedNotify = "order:placed_notify"
	TaskLowStockAlert     = "stock:low_alert"
)

// Admin role names used by the authz policy bootstrap.
const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
)
