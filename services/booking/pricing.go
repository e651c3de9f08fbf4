package booking

import "strings"

// The one active promo: a hard-coded 25%-off coupon evaluated entirely on
// our side before the amount reaches the payment gateway.
const (
	couponCode         = "IJKZYB"
	couponDiscountRate = 0.25
)

// CouponValid reports whether code is the active coupon. Input is
// case-normalized to uppercase before comparison.
func CouponValid(code string) bool {
	return strings.ToUpper(strings.TrimSpace(code)) == couponCode
}

// PaymentAmount computes the amount to charge: the service's base price
// minus the coupon discount when a valid code is applied. An empty or
// invalid code charges the full base price.
func PaymentAmount(basePrice float64, coupon string) float64 {
	if CouponValid(coupon) {
		return basePrice * (1 - couponDiscountRate)
	}
	return basePrice
}
