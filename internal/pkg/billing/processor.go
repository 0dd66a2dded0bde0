package billing

import "context"

// Card carries raw card details for tokenization. Never persisted; ownership
// of the data transfers to the processor as soon as a payment method is
// created from it.
type Card struct {
	Number   string
	ExpMonth int64
	ExpYear  int64
	CVC      string
}

// BillingDetails is the cardholder contact information attached to a
// payment method.
type BillingDetails struct {
	Name  string
	Email string
	Phone string
}

// SubscriptionResult is the processor's answer to a subscription creation.
// ClientSecret is set only when the latest invoice's payment intent requires
// further client-side authentication.
type SubscriptionResult struct {
	ID           string
	Status       string
	ClientSecret string
}

// PaymentIntent is the subset of a processor payment intent the confirmation
// flow needs.
type PaymentIntent struct {
	ID              string
	Status          string
	CustomerID      string
	PaymentMethodID string
}

// Processor is the payment-subscription backend (Stripe in production).
// Implementations must propagate processor errors unchanged; callers rely on
// the error message reaching the HTTP response verbatim.
type Processor interface {
	// CreatePaymentMethod tokenizes raw card details into a payment method.
	CreatePaymentMethod(ctx context.Context, card Card, details BillingDetails) (string, error)

	// AttachPaymentMethod attaches a payment method to a customer.
	AttachPaymentMethod(ctx context.Context, paymentMethodID, customerID string) error

	// SetDefaultPaymentMethod makes the payment method the customer's
	// default for future invoices. Irreversible from this workflow.
	SetDefaultPaymentMethod(ctx context.Context, customerID, paymentMethodID string) error

	// CreateSubscription creates a subscription with exactly one price item.
	CreateSubscription(ctx context.Context, customerID, priceID, paymentMethodID string) (*SubscriptionResult, error)

	// GetPaymentIntent retrieves a payment intent by identifier.
	GetPaymentIntent(ctx context.Context, id string) (*PaymentIntent, error)
}
