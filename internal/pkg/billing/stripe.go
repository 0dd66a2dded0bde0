package billing

import (
	"context"

	"github.com/NoraWeller/VowNest/internal/pkg/env"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeProcessor implements Processor against the Stripe API.
type StripeProcessor struct {
	api *client.API
}

// NewStripeProcessor creates a processor bound to the given secret key.
func NewStripeProcessor(secretKey string) *StripeProcessor {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeProcessor{api: api}
}

// NewStripeProcessorFromEnv creates a processor from STRIPE_SECRET_KEY.
func NewStripeProcessorFromEnv() *StripeProcessor {
	return NewStripeProcessor(env.GetEnv("STRIPE_SECRET_KEY", ""))
}

func (p *StripeProcessor) CreatePaymentMethod(ctx context.Context, card Card, details BillingDetails) (string, error) {
	params := &stripe.PaymentMethodParams{
		Type: stripe.String(string(stripe.PaymentMethodTypeCard)),
		Card: &stripe.PaymentMethodCardParams{
			Number:   stripe.String(card.Number),
			ExpMonth: stripe.Int64(card.ExpMonth),
			ExpYear:  stripe.Int64(card.ExpYear),
			CVC:      stripe.String(card.CVC),
		},
	}
	if details.Name != "" || details.Email != "" || details.Phone != "" {
		bd := &stripe.PaymentMethodBillingDetailsParams{}
		if details.Name != "" {
			bd.Name = stripe.String(details.Name)
		}
		if details.Email != "" {
			bd.Email = stripe.String(details.Email)
		}
		if details.Phone != "" {
			bd.Phone = stripe.String(details.Phone)
		}
		params.BillingDetails = bd
	}
	params.Context = ctx

	pm, err := p.api.PaymentMethods.New(params)
	if err != nil {
		return "", err
	}
	return pm.ID, nil
}

func (p *StripeProcessor) AttachPaymentMethod(ctx context.Context, paymentMethodID, customerID string) error {
	params := &stripe.PaymentMethodAttachParams{
		Customer: stripe.String(customerID),
	}
	params.Context = ctx

	_, err := p.api.PaymentMethods.Attach(paymentMethodID, params)
	return err
}

func (p *StripeProcessor) SetDefaultPaymentMethod(ctx context.Context, customerID, paymentMethodID string) error {
	params := &stripe.CustomerParams{
		InvoiceSettings: &stripe.CustomerInvoiceSettingsParams{
			DefaultPaymentMethod: stripe.String(paymentMethodID),
		},
	}
	params.Context = ctx

	_, err := p.api.Customers.Update(customerID, params)
	return err
}

func (p *StripeProcessor) CreateSubscription(ctx context.Context, customerID, priceID, paymentMethodID string) (*SubscriptionResult, error) {
	// Exactly one price item per subscription; no trials, no proration.
	params := &stripe.SubscriptionParams{
		Customer: stripe.String(customerID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(priceID)},
		},
	}
	if paymentMethodID != "" {
		params.DefaultPaymentMethod = stripe.String(paymentMethodID)
	}
	params.AddExpand("latest_invoice.payment_intent")
	params.Context = ctx

	sub, err := p.api.Subscriptions.New(params)
	if err != nil {
		return nil, err
	}

	result := &SubscriptionResult{
		ID:     sub.ID,
		Status: string(sub.Status),
	}
	if sub.LatestInvoice != nil && sub.LatestInvoice.PaymentIntent != nil {
		result.ClientSecret = sub.LatestInvoice.PaymentIntent.ClientSecret
	}
	return result, nil
}

func (p *StripeProcessor) GetPaymentIntent(ctx context.Context, id string) (*PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := p.api.PaymentIntents.Get(id, params)
	if err != nil {
		return nil, err
	}

	intent := &PaymentIntent{
		ID:     pi.ID,
		Status: string(pi.Status),
	}
	if pi.Customer != nil {
		intent.CustomerID = pi.Customer.ID
	}
	if pi.PaymentMethod != nil {
		intent.PaymentMethodID = pi.PaymentMethod.ID
	}
	return intent, nil
}
