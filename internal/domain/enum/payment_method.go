package enum

// PaymentMethod represents how a sale was paid
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "CASH"
	PaymentMethodCard PaymentMethod = "CARD"
)

func (m PaymentMethod) String() string {
	return string(m)
}

// Valid reports whether m is a known payment method
func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCash || m == PaymentMethodCard
}

// Label returns the customer-facing label printed on receipts
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentMethodCash:
		return "Cash"
	case PaymentMethodCard:
		return "Card"
	default:
		return string(m)
	}
}
