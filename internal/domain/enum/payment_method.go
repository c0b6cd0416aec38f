package enum

import "fmt"

// PaymentMethod represents the tender used to settle a receipt.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentMixed  PaymentMethod = "mixed"
	PaymentModern PaymentMethod = "modern"
)

// ParsePaymentMethod validates a raw method string.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentCash, PaymentCard, PaymentMixed, PaymentModern:
		return PaymentMethod(s), nil
	}
	return "", fmt.Errorf("unknown payment method %q", s)
}

// RequiresSettlement reports whether the method settles through the
// external side-channel rather than completing locally at the drawer.
func (m PaymentMethod) RequiresSettlement() bool {
	return m == PaymentCard || m == PaymentModern
}
