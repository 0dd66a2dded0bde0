package billing

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/NoraWeller/VowNest/app/models"
	"gorm.io/gorm"
)

// ErrPaymentNotSuccessful is returned when a payment intent's status is
// anything other than "succeeded". The message is part of the HTTP contract.
var ErrPaymentNotSuccessful = errors.New("Payment was not successful")

const paymentIntentSucceeded = "succeeded"

// Service runs the subscription provisioning workflows against the payment
// processor and mirrors the outcome into local tables.
type Service struct {
	repo      Repository
	processor Processor
}

// NewService creates a billing service from an injected repository and
// processor.
func NewService(repo Repository, processor Processor) *Service {
	return &Service{repo: repo, processor: processor}
}

// NewServiceFromDB creates a billing service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB, processor Processor) *Service {
	return NewService(NewRepository(db), processor)
}

// LookupPlanPrice resolves an internal plan identifier to its Stripe price.
// Zero matches surface as gorm.ErrRecordNotFound; there is no fallback plan.
func (s *Service) LookupPlanPrice(ctx context.Context, planID string) (string, error) {
	_ = ctx
	id := strings.TrimSpace(planID)
	if id == "" {
		return "", errors.New("plan_id is required")
	}
	plan, err := s.repo.FindActivePlan(id)
	if err != nil {
		return "", err
	}
	return plan.StripePriceID, nil
}

// CreateSubscription is the direct checkout path: tokenize the card, attach
// it to the customer as default, then create the subscription. Processor
// failures propagate unchanged; the default-payment-method mutation is not
// rolled back when a later step fails.
func (s *Service) CreateSubscription(ctx context.Context, in CreateSubscriptionInput) (*SubscriptionResult, error) {
	if strings.TrimSpace(in.CustomerID) == "" || strings.TrimSpace(in.PriceID) == "" {
		return nil, errors.New("customerId and priceId are required")
	}

	pmID, err := s.processor.CreatePaymentMethod(ctx, in.Card, in.Details)
	if err != nil {
		return nil, err
	}
	if err := s.processor.AttachPaymentMethod(ctx, pmID, in.CustomerID); err != nil {
		return nil, err
	}
	if err := s.processor.SetDefaultPaymentMethod(ctx, in.CustomerID, pmID); err != nil {
		return nil, err
	}

	return s.processor.CreateSubscription(ctx, in.CustomerID, in.PriceID, pmID)
}

// ConfirmSubscription runs the strictly sequential confirmation workflow:
// verify payment, resolve plan, create subscription, persist local record.
// There is no retry, no idempotency key, and no compensation when the local
// write fails after the subscription exists at the processor.
func (s *Service) ConfirmSubscription(ctx context.Context, in ConfirmSubscriptionInput) (*ConfirmSubscriptionResult, error) {
	if strings.TrimSpace(in.PaymentIntentID) == "" || strings.TrimSpace(in.CoupleID) == "" {
		return nil, errors.New("paymentIntentId and coupleId are required")
	}

	// Step 1: verify the payment actually went through.
	intent, err := s.processor.GetPaymentIntent(ctx, in.PaymentIntentID)
	if err != nil {
		return nil, err
	}
	if intent.Status != paymentIntentSucceeded {
		return nil, ErrPaymentNotSuccessful
	}

	// Step 2: resolve the plan's price.
	priceID, err := s.LookupPlanPrice(ctx, in.PlanID)
	if err != nil {
		return nil, err
	}

	// Step 3: create the subscription with the verified payment method.
	sub, err := s.processor.CreateSubscription(ctx, in.CustomerID, priceID, intent.PaymentMethodID)
	if err != nil {
		return nil, err
	}

	// Step 4: mirror locally. PaymentStatus is fixed to "active" here even
	// when the processor reports e.g. "incomplete"; the real status lands in
	// ProcessorStatus so the discrepancy stays observable.
	record := &models.CoupleSubscription{
		CoupleID:        in.CoupleID,
		PlanID:          in.PlanID,
		PaymentStatus:   models.PaymentStatusActive,
		ProcessorStatus: sub.Status,
		SubscriptionID:  sub.ID,
		CustomerID:      in.CustomerID,
	}
	if err := s.repo.UpsertCoupleSubscription(record); err != nil {
		return nil, err
	}

	return &ConfirmSubscriptionResult{
		SubscriptionID: sub.ID,
		Status:         sub.Status,
	}, nil
}

// GetSubscription returns the local subscription record for a couple.
func (s *Service) GetSubscription(ctx context.Context, coupleID string) (*models.CoupleSubscription, error) {
	_ = ctx
	if strings.TrimSpace(coupleID) == "" {
		return nil, errors.New("coupleId is required")
	}
	return s.repo.GetCoupleSubscription(coupleID)
}

// RecordWebhookEvent persists webhook payloads idempotently.
func (s *Service) RecordWebhookEvent(ctx context.Context, in WebhookEventInput) (bool, *models.BillingWebhookEvent, error) {
	_ = ctx
	provider := strings.ToLower(strings.TrimSpace(in.Provider))
	if provider == "" {
		return false, nil, errors.New("provider is required")
	}
	eventID := strings.TrimSpace(in.ProviderEventID)
	if eventID == "" {
		sum := sha256.Sum256([]byte(in.PayloadJSON))
		eventID = "hash:" + hex.EncodeToString(sum[:])
	}

	event := &models.BillingWebhookEvent{
		Provider:        provider,
		ProviderEventID: eventID,
		EventType:       strings.TrimSpace(in.EventType),
		PayloadJSON:     in.PayloadJSON,
		SignatureValid:  in.SignatureValid,
	}
	return s.repo.CreateWebhookEventIfNotExists(event)
}

// SyncSubscriptionStatus applies a processor-reported status to the local
// record for that subscription. A canceled subscription also flips the local
// payment status; other statuses only update the observable processor state.
func (s *Service) SyncSubscriptionStatus(ctx context.Context, subscriptionID, processorStatus string) error {
	_ = ctx
	subID := strings.TrimSpace(subscriptionID)
	status := strings.ToLower(strings.TrimSpace(processorStatus))
	if subID == "" || status == "" {
		return errors.New("subscription_id and status are required")
	}

	paymentStatus := ""
	if status == models.PaymentStatusCanceled {
		paymentStatus = models.PaymentStatusCanceled
	}
	return s.repo.UpdateStatusBySubscriptionID(subID, status, paymentStatus)
}

// MarkWebhookProcessed marks an event as processed and stores an optional error.
func (s *Service) MarkWebhookProcessed(ctx context.Context, webhookEventID uint, processingErr error) error {
	_ = ctx
	if webhookEventID == 0 {
		return errors.New("webhook_event_id is required")
	}
	errMsg := ""
	if processingErr != nil {
		errMsg = processingErr.Error()
	}
	return s.repo.MarkWebhookProcessed(webhookEventID, errMsg)
}
