package service

import (
	"regexp"
	"strings"

	"github.com/anta-store/anta-api/internal/constants"
)

// CheckoutForm is the customer input collected across the checkout steps.
type CheckoutForm struct {
	CustomerName   string `json:"customer_name"`
	Phone          string `json:"phone"`
	City           string `json:"city"`
	Address        string `json:"address"`
	ShippingMethod string `json:"shipping_method"`
	PaymentMethod  string `json:"payment_method"`
	PaymentRef     string `json:"payment_ref"`
}

// Checkout steps. Validation is per step so the client can gate "next"
// without submitting the whole form.
const (
	CheckoutStepShipping = 1
	CheckoutStepDelivery = 2
	CheckoutStepPayment  = 3
)

// jordanCities is the fixed city list offered at checkout, matching the
// twelve governorates.
var jordanCities = []string{
	"Amman",
	"Zarqa",
	"Irbid",
	"Aqaba",
	"Madaba",
	"Salt",
	"Jerash",
	"Ajloun",
	"Karak",
	"Tafilah",
	"Ma'an",
	"Mafraq",
}

// jordanMobilePattern matches local Jordanian mobile numbers: 07 followed
// by a 7/8/9 carrier digit and seven more digits.
var jordanMobilePattern = regexp.MustCompile(`^07[789]\d{7}$`)

// intlMobilePattern matches the normalized international form.
var intlMobilePattern = regexp.MustCompile(`^\+9627[789]\d{7}$`)

// ValidateCheckoutStep checks one step of the form and returns a
// ValidationError carrying every failed field, or nil when the step is
// clean. Later steps do not re-check earlier ones.
func ValidateCheckoutStep(step int, form *CheckoutForm) error {
	if form == nil {
		return ErrInvalidInput
	}
	var fields []FieldError
	switch step {
	case CheckoutStepShipping:
		fields = validateShippingStep(form)
	case CheckoutStepDelivery:
		fields = validateDeliveryStep(form)
	case CheckoutStepPayment:
		fields = validatePaymentStep(form)
	default:
		return ErrInvalidInput
	}
	if len(fields) > 0 {
		return &ValidationError{Step: step, Fields: fields}
	}
	return nil
}

// ValidateCheckoutForm checks all steps at once, for the final submit.
func ValidateCheckoutForm(form *CheckoutForm) error {
	if form == nil {
		return ErrInvalidInput
	}
	var fields []FieldError
	fields = append(fields, validateShippingStep(form)...)
	fields = append(fields, validateDeliveryStep(form)...)
	fields = append(fields, validatePaymentStep(form)...)
	if len(fields) > 0 {
		return &ValidationError{Step: 0, Fields: fields}
	}
	return nil
}

func validateShippingStep(form *CheckoutForm) []FieldError {
	var fields []FieldError

	name := strings.TrimSpace(form.CustomerName)
	if len([]rune(name)) < constants.CheckoutNameMinLen {
		fields = append(fields, FieldError{Field: "customer_name", MessageKey: "validation.name_too_short"})
	}

	if _, ok := NormalizeJordanMobile(form.Phone); !ok {
		fields = append(fields, FieldError{Field: "phone", MessageKey: "validation.phone_invalid"})
	}

	if !IsJordanCity(form.City) {
		fields = append(fields, FieldError{Field: "city", MessageKey: "validation.city_invalid"})
	}

	address := strings.TrimSpace(form.Address)
	if len([]rune(address)) < constants.CheckoutAddressMinLen {
		fields = append(fields, FieldError{Field: "address", MessageKey: "validation.address_too_short"})
	}
	return fields
}

func validateDeliveryStep(form *CheckoutForm) []FieldError {
	switch form.ShippingMethod {
	case constants.ShippingMethodStandard, constants.ShippingMethodExpress:
		return nil
	}
	return []FieldError{{Field: "shipping_method", MessageKey: "validation.shipping_method_invalid"}}
}

func validatePaymentStep(form *CheckoutForm) []FieldError {
	var fields []FieldError
	switch form.PaymentMethod {
	case constants.PaymentMethodCOD:
	case constants.PaymentMethodCliq:
		ref := strings.TrimSpace(form.PaymentRef)
		n := len([]rune(ref))
		if n < constants.CheckoutPaymentRefMinLen || n > constants.CheckoutPaymentRefMaxLen {
			fields = append(fields, FieldError{Field: "payment_ref", MessageKey: "validation.payment_ref_invalid"})
		}
	default:
		fields = append(fields, FieldError{Field: "payment_method", MessageKey: "validation.payment_method_invalid"})
	}
	return fields
}

// NormalizeJordanMobile accepts a local (07xxxxxxxx) or international
// (+9627xxxxxxxx) Jordanian mobile number and returns the international
// form. Spaces and dashes in the input are ignored.
func NormalizeJordanMobile(phone string) (string, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, strings.TrimSpace(phone))

	if jordanMobilePattern.MatchString(cleaned) {
		return "+962" + cleaned[1:], true
	}
	if intlMobilePattern.MatchString(cleaned) {
		return cleaned, true
	}
	return "", false
}

// IsJordanCity reports whether city is on the fixed checkout list. The
// match is case-insensitive.
func IsJordanCity(city string) bool {
	trimmed := strings.TrimSpace(city)
	for _, c := range jordanCities {
		if strings.EqualFold(c, trimmed) {
			return true
		}
	}
	return false
}

// JordanCities returns the selectable city list.
func JordanCities() []string {
	out := make([]string, len(jordanCities))
	copy(out, jordanCities)
	return out
}
