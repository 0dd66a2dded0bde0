package billing

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/NoraWeller/VowNest/app/models"
	"gorm.io/gorm"
)

type fakeRepository struct {
	plans   map[string]*models.Plan
	subs    map[string]*models.CoupleSubscription
	events  map[string]*models.BillingWebhookEvent
	upserts int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		plans:  make(map[string]*models.Plan),
		subs:   make(map[string]*models.CoupleSubscription),
		events: make(map[string]*models.BillingWebhookEvent),
	}
}

func (r *fakeRepository) FindActivePlan(planID string) (*models.Plan, error) {
	plan, ok := r.plans[planID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return plan, nil
}

func (r *fakeRepository) UpsertCoupleSubscription(sub *models.CoupleSubscription) error {
	r.upserts++
	copied := *sub
	r.subs[sub.CoupleID] = &copied
	return nil
}

func (r *fakeRepository) GetCoupleSubscription(coupleID string) (*models.CoupleSubscription, error) {
	sub, ok := r.subs[coupleID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return sub, nil
}

func (r *fakeRepository) UpdateStatusBySubscriptionID(subscriptionID, processorStatus, paymentStatus string) error {
	for _, sub := range r.subs {
		if sub.SubscriptionID == subscriptionID {
			sub.ProcessorStatus = processorStatus
			if paymentStatus != "" {
				sub.PaymentStatus = paymentStatus
			}
		}
	}
	return nil
}

func (r *fakeRepository) CreateWebhookEventIfNotExists(event *models.BillingWebhookEvent) (bool, *models.BillingWebhookEvent, error) {
	key := event.Provider + "/" + event.ProviderEventID
	if stored, ok := r.events[key]; ok {
		return false, stored, nil
	}
	event.ID = uint(len(r.events) + 1)
	r.events[key] = event
	return true, event, nil
}

func (r *fakeRepository) MarkWebhookProcessed(id uint, processingError string) error {
	return nil
}

type subscriptionCall struct {
	customerID      string
	priceID         string
	paymentMethodID string
}

type fakeProcessor struct {
	intents map[string]*PaymentIntent

	createSubErr   error
	subStatus      string
	subCalls       []subscriptionCall
	createdPMs     int
	attachedPMs    []string
	defaultPMCalls []string
}

func newFakeProcessor() *fakeProcessor {
	return &fakeProcessor{
		intents:   make(map[string]*PaymentIntent),
		subStatus: "active",
	}
}

func (p *fakeProcessor) CreatePaymentMethod(ctx context.Context, card Card, details BillingDetails) (string, error) {
	p.createdPMs++
	return fmt.Sprintf("pm_fake_%d", p.createdPMs), nil
}

func (p *fakeProcessor) AttachPaymentMethod(ctx context.Context, paymentMethodID, customerID string) error {
	p.attachedPMs = append(p.attachedPMs, paymentMethodID+"@"+customerID)
	return nil
}

func (p *fakeProcessor) SetDefaultPaymentMethod(ctx context.Context, customerID, paymentMethodID string) error {
	p.defaultPMCalls = append(p.defaultPMCalls, paymentMethodID+"@"+customerID)
	return nil
}

func (p *fakeProcessor) CreateSubscription(ctx context.Context, customerID, priceID, paymentMethodID string) (*SubscriptionResult, error) {
	if p.createSubErr != nil {
		return nil, p.createSubErr
	}
	p.subCalls = append(p.subCalls, subscriptionCall{
		customerID:      customerID,
		priceID:         priceID,
		paymentMethodID: paymentMethodID,
	})
	return &SubscriptionResult{
		ID:     fmt.Sprintf("sub_fake_%d", len(p.subCalls)),
		Status: p.subStatus,
	}, nil
}

func (p *fakeProcessor) GetPaymentIntent(ctx context.Context, id string) (*PaymentIntent, error) {
	intent, ok := p.intents[id]
	if !ok {
		return nil, fmt.Errorf("No such payment_intent: '%s'", id)
	}
	return intent, nil
}

func TestLookupPlanPrice(t *testing.T) {
	repo := newFakeRepository()
	repo.plans["plan_gold"] = &models.Plan{PlanID: "plan_gold", StripePriceID: "price_abc"}
	svc := NewService(repo, newFakeProcessor())

	price, err := svc.LookupPlanPrice(context.Background(), "plan_gold")
	if err != nil {
		t.Fatalf("LookupPlanPrice failed: %v", err)
	}
	if price != "price_abc" {
		t.Fatalf("LookupPlanPrice = %q, want %q", price, "price_abc")
	}

	if _, err := svc.LookupPlanPrice(context.Background(), "plan_missing"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound for unknown plan, got %v", err)
	}
}

func TestConfirmSubscription_Golden(t *testing.T) {
	repo := newFakeRepository()
	repo.plans["plan_gold"] = &models.Plan{PlanID: "plan_gold", StripePriceID: "price_abc"}

	proc := newFakeProcessor()
	proc.intents["pi_1"] = &PaymentIntent{
		ID:              "pi_1",
		Status:          "succeeded",
		CustomerID:      "cus_1",
		PaymentMethodID: "pm_1",
	}

	svc := NewService(repo, proc)
	result, err := svc.ConfirmSubscription(context.Background(), ConfirmSubscriptionInput{
		PaymentIntentID: "pi_1",
		CustomerID:      "cus_1",
		PlanID:          "plan_gold",
		CoupleID:        "couple_1",
	})
	if err != nil {
		t.Fatalf("ConfirmSubscription failed: %v", err)
	}

	if len(proc.subCalls) != 1 {
		t.Fatalf("expected 1 subscription creation, got %d", len(proc.subCalls))
	}
	call := proc.subCalls[0]
	if call.customerID != "cus_1" || call.priceID != "price_abc" || call.paymentMethodID != "pm_1" {
		t.Fatalf("unexpected subscription call: %+v", call)
	}

	sub, err := repo.GetCoupleSubscription("couple_1")
	if err != nil {
		t.Fatalf("expected local record for couple_1: %v", err)
	}
	if sub.PlanID != "plan_gold" || sub.PaymentStatus != "active" ||
		sub.SubscriptionID != result.SubscriptionID || sub.CustomerID != "cus_1" {
		t.Fatalf("unexpected local record: %+v", sub)
	}
}

func TestConfirmSubscription_RequiresSucceededIntent(t *testing.T) {
	for _, status := range []string{"requires_action", "canceled", "processing", "requires_payment_method"} {
		repo := newFakeRepository()
		repo.plans["plan_gold"] = &models.Plan{PlanID: "plan_gold", StripePriceID: "price_abc"}

		proc := newFakeProcessor()
		proc.intents["pi_1"] = &PaymentIntent{ID: "pi_1", Status: status, PaymentMethodID: "pm_1"}

		svc := NewService(repo, proc)
		_, err := svc.ConfirmSubscription(context.Background(), ConfirmSubscriptionInput{
			PaymentIntentID: "pi_1",
			CustomerID:      "cus_1",
			PlanID:          "plan_gold",
			CoupleID:        "couple_1",
		})
		if !errors.Is(err, ErrPaymentNotSuccessful) {
			t.Fatalf("status %q: expected ErrPaymentNotSuccessful, got %v", status, err)
		}
		if len(proc.subCalls) != 0 {
			t.Fatalf("status %q: no subscription must be created, got %d calls", status, len(proc.subCalls))
		}
		if repo.upserts != 0 {
			t.Fatalf("status %q: no local record must be written, got %d upserts", status, repo.upserts)
		}
	}
}

func TestConfirmSubscription_PlanLookupFailureIsTerminal(t *testing.T) {
	repo := newFakeRepository()
	proc := newFakeProcessor()
	proc.intents["pi_1"] = &PaymentIntent{ID: "pi_1", Status: "succeeded", PaymentMethodID: "pm_1"}

	svc := NewService(repo, proc)
	_, err := svc.ConfirmSubscription(context.Background(), ConfirmSubscriptionInput{
		PaymentIntentID: "pi_1",
		CustomerID:      "cus_1",
		PlanID:          "plan_missing",
		CoupleID:        "couple_1",
	})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected plan lookup failure, got %v", err)
	}
	if len(proc.subCalls) != 0 {
		t.Fatalf("no subscription must be created after plan lookup failure")
	}
}

func TestConfirmSubscription_ProcessorErrorPropagatesVerbatim(t *testing.T) {
	repo := newFakeRepository()
	repo.plans["plan_gold"] = &models.Plan{PlanID: "plan_gold", StripePriceID: "price_abc"}

	proc := newFakeProcessor()
	proc.intents["pi_1"] = &PaymentIntent{ID: "pi_1", Status: "succeeded", PaymentMethodID: "pm_1"}
	proc.createSubErr = errors.New("Your card was declined.")

	svc := NewService(repo, proc)
	_, err := svc.ConfirmSubscription(context.Background(), ConfirmSubscriptionInput{
		PaymentIntentID: "pi_1",
		CustomerID:      "cus_1",
		PlanID:          "plan_gold",
		CoupleID:        "couple_1",
	})
	if err == nil || err.Error() != "Your card was declined." {
		t.Fatalf("expected processor error verbatim, got %v", err)
	}
	if repo.upserts != 0 {
		t.Fatalf("no local record must be written when subscription creation fails")
	}
}

// Confirming twice with the same payment intent is documented behavior: two
// processor subscriptions exist afterwards and the second upsert wins.
func TestConfirmSubscription_NotIdempotent(t *testing.T) {
	repo := newFakeRepository()
	repo.plans["plan_gold"] = &models.Plan{PlanID: "plan_gold", StripePriceID: "price_abc"}

	proc := newFakeProcessor()
	proc.intents["pi_1"] = &PaymentIntent{ID: "pi_1", Status: "succeeded", CustomerID: "cus_1", PaymentMethodID: "pm_1"}

	svc := NewService(repo, proc)
	in := ConfirmSubscriptionInput{
		PaymentIntentID: "pi_1",
		CustomerID:      "cus_1",
		PlanID:          "plan_gold",
		CoupleID:        "couple_1",
	}

	first, err := svc.ConfirmSubscription(context.Background(), in)
	if err != nil {
		t.Fatalf("first confirm failed: %v", err)
	}
	second, err := svc.ConfirmSubscription(context.Background(), in)
	if err != nil {
		t.Fatalf("second confirm failed: %v", err)
	}

	if len(proc.subCalls) != 2 {
		t.Fatalf("expected two distinct processor subscriptions, got %d", len(proc.subCalls))
	}
	if first.SubscriptionID == second.SubscriptionID {
		t.Fatalf("expected distinct subscription ids, both %q", first.SubscriptionID)
	}
	if repo.upserts != 2 {
		t.Fatalf("expected two upserts, got %d", repo.upserts)
	}
	sub, err := repo.GetCoupleSubscription("couple_1")
	if err != nil {
		t.Fatalf("expected local record: %v", err)
	}
	if sub.SubscriptionID != second.SubscriptionID {
		t.Fatalf("second upsert must win: have %q, want %q", sub.SubscriptionID, second.SubscriptionID)
	}
}

func TestConfirmSubscription_HardcodesActiveStatus(t *testing.T) {
	repo := newFakeRepository()
	repo.plans["plan_gold"] = &models.Plan{PlanID: "plan_gold", StripePriceID: "price_abc"}

	proc := newFakeProcessor()
	proc.subStatus = "incomplete"
	proc.intents["pi_1"] = &PaymentIntent{ID: "pi_1", Status: "succeeded", PaymentMethodID: "pm_1"}

	svc := NewService(repo, proc)
	result, err := svc.ConfirmSubscription(context.Background(), ConfirmSubscriptionInput{
		PaymentIntentID: "pi_1",
		CustomerID:      "cus_1",
		PlanID:          "plan_gold",
		CoupleID:        "couple_1",
	})
	if err != nil {
		t.Fatalf("ConfirmSubscription failed: %v", err)
	}
	if result.Status != "incomplete" {
		t.Fatalf("response must carry the processor status, got %q", result.Status)
	}

	sub, _ := repo.GetCoupleSubscription("couple_1")
	if sub.PaymentStatus != "active" {
		t.Fatalf("local payment_status must stay hardcoded to active, got %q", sub.PaymentStatus)
	}
	if sub.ProcessorStatus != "incomplete" {
		t.Fatalf("processor_status must record the real status, got %q", sub.ProcessorStatus)
	}
}

func TestCreateSubscription_ProvisionsPaymentMethod(t *testing.T) {
	repo := newFakeRepository()
	proc := newFakeProcessor()
	svc := NewService(repo, proc)

	result, err := svc.CreateSubscription(context.Background(), CreateSubscriptionInput{
		CustomerID: "cus_9",
		PriceID:    "price_xyz",
		Card:       Card{Number: "4242424242424242", ExpMonth: 12, ExpYear: 2030, CVC: "123"},
	})
	if err != nil {
		t.Fatalf("CreateSubscription failed: %v", err)
	}
	if result.ID == "" {
		t.Fatalf("expected subscription id")
	}

	if proc.createdPMs != 1 {
		t.Fatalf("expected exactly one payment method, got %d", proc.createdPMs)
	}
	if len(proc.attachedPMs) != 1 || proc.attachedPMs[0] != "pm_fake_1@cus_9" {
		t.Fatalf("unexpected attach calls: %v", proc.attachedPMs)
	}
	if len(proc.defaultPMCalls) != 1 || proc.defaultPMCalls[0] != "pm_fake_1@cus_9" {
		t.Fatalf("unexpected default-pm calls: %v", proc.defaultPMCalls)
	}
	if len(proc.subCalls) != 1 || proc.subCalls[0].priceID != "price_xyz" {
		t.Fatalf("unexpected subscription calls: %+v", proc.subCalls)
	}
}

func TestRecordWebhookEvent_Deduplicates(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, newFakeProcessor())

	in := WebhookEventInput{
		Provider:        "stripe",
		ProviderEventID: "evt_1",
		EventType:       "customer.subscription.updated",
		PayloadJSON:     `{"id":"evt_1"}`,
		SignatureValid:  true,
	}

	created, _, err := svc.RecordWebhookEvent(context.Background(), in)
	if err != nil {
		t.Fatalf("RecordWebhookEvent failed: %v", err)
	}
	if !created {
		t.Fatalf("first delivery must create the event")
	}

	created, _, err = svc.RecordWebhookEvent(context.Background(), in)
	if err != nil {
		t.Fatalf("redelivery failed: %v", err)
	}
	if created {
		t.Fatalf("redelivery must not create a second event")
	}
}

func TestSyncSubscriptionStatus(t *testing.T) {
	repo := newFakeRepository()
	repo.subs["couple_1"] = &models.CoupleSubscription{
		CoupleID:       "couple_1",
		PaymentStatus:  "active",
		SubscriptionID: "sub_1",
	}
	svc := NewService(repo, newFakeProcessor())

	if err := svc.SyncSubscriptionStatus(context.Background(), "sub_1", "past_due"); err != nil {
		t.Fatalf("SyncSubscriptionStatus failed: %v", err)
	}
	sub := repo.subs["couple_1"]
	if sub.ProcessorStatus != "past_due" || sub.PaymentStatus != "active" {
		t.Fatalf("past_due must only touch processor_status: %+v", sub)
	}

	if err := svc.SyncSubscriptionStatus(context.Background(), "sub_1", "canceled"); err != nil {
		t.Fatalf("SyncSubscriptionStatus failed: %v", err)
	}
	if sub.PaymentStatus != "canceled" {
		t.Fatalf("canceled must flip payment_status, got %q", sub.PaymentStatus)
	}
}
