package service

import (
	"strings"
	"testing"
)

func validCheckoutForm() CheckoutForm {
	return CheckoutForm{
		CustomerName:   "Layla Haddad",
		Phone:          "0791234567",
		City:           "Amman",
		Address:        "12 Rainbow Street, Jabal Amman",
		ShippingMethod: "standard",
		PaymentMethod:  "cod",
	}
}

func fieldKeys(err error) map[string]bool {
	keys := map[string]bool{}
	if ve, ok := AsValidationError(err); ok {
		for _, f := range ve.Fields {
			keys[f.Field] = true
		}
	}
	return keys
}

func TestValidateShippingStepCollectsAllFieldErrors(t *testing.T) {
	form := CheckoutForm{
		CustomerName: "Ali",
		Phone:        "0612345678",
		City:         "Dubai",
		Address:      "short",
	}
	err := ValidateCheckoutStep(CheckoutStepShipping, &form)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	fields := fieldKeys(err)
	for _, want := range []string{"customer_name", "phone", "city", "address"} {
		if !fields[want] {
			t.Fatalf("missing field error for %s: %v", want, fields)
		}
	}
}

func TestValidateShippingStepPasses(t *testing.T) {
	form := validCheckoutForm()
	if err := ValidateCheckoutStep(CheckoutStepShipping, &form); err != nil {
		t.Fatalf("expected clean step, got %v", err)
	}
}

func TestNormalizeJordanMobile(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"0791234567", "+962791234567", true},
		{"078 123 4567", "+962781234567", true},
		{"07-7123-4567", "+962771234567", true},
		{"+962791234567", "+962791234567", true},
		{"0751234567", "", false},
		{"079123456", "", false},
		{"07912345678", "", false},
		{"+962061234567", "", false},
	}
	for _, tc := range cases {
		got, ok := NormalizeJordanMobile(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("normalize(%q) want (%q,%v) got (%q,%v)", tc.in, tc.want, tc.ok, got, ok)
		}
	}
}

func TestValidatePaymentStepCliqReference(t *testing.T) {
	form := validCheckoutForm()
	form.PaymentMethod = "cliq"

	form.PaymentRef = "abc"
	if err := ValidateCheckoutStep(CheckoutStepPayment, &form); err == nil {
		t.Fatalf("expected short reference to fail")
	}

	form.PaymentRef = strings.Repeat("x", 41)
	if err := ValidateCheckoutStep(CheckoutStepPayment, &form); err == nil {
		t.Fatalf("expected long reference to fail")
	}

	form.PaymentRef = "CLIQ-REF-123"
	if err := ValidateCheckoutStep(CheckoutStepPayment, &form); err != nil {
		t.Fatalf("expected valid reference, got %v", err)
	}
}

func TestValidatePaymentStepCODNeedsNoReference(t *testing.T) {
	form := validCheckoutForm()
	form.PaymentRef = ""
	if err := ValidateCheckoutStep(CheckoutStepPayment, &form); err != nil {
		t.Fatalf("cod must not require a reference, got %v", err)
	}
}

func TestIsJordanCityCaseInsensitive(t *testing.T) {
	if !IsJordanCity("aqaba") || !IsJordanCity(" Irbid ") {
		t.Fatalf("expected case-insensitive city match")
	}
	if IsJordanCity("Beirut") {
		t.Fatalf("unexpected city accepted")
	}
}
