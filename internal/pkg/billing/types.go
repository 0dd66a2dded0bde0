package billing

// CreateSubscriptionInput is the direct checkout path: raw card details are
// tokenized, attached to the customer, then a subscription is created for
// the given price.
type CreateSubscriptionInput struct {
	CustomerID string
	PriceID    string
	Card       Card
	Details    BillingDetails
}

// ConfirmSubscriptionInput is the confirmation path: a payment intent the
// client already confirmed is verified before the subscription is created
// and mirrored locally.
type ConfirmSubscriptionInput struct {
	PaymentIntentID string
	CustomerID      string
	PlanID          string
	CoupleID        string
}

// ConfirmSubscriptionResult is returned after a successful confirmation.
type ConfirmSubscriptionResult struct {
	SubscriptionID string
	Status         string
}

// WebhookEventInput is the normalized input for webhook event persistence.
type WebhookEventInput struct {
	Provider        string
	ProviderEventID string
	EventType       string
	PayloadJSON     string
	SignatureValid  bool
}
