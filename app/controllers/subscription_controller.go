package controllers

import (
	"encoding/json"
	"log"

	"github.com/NoraWeller/VowNest/app/models"
	"github.com/NoraWeller/VowNest/internal/pkg/billing"
	"github.com/NoraWeller/VowNest/internal/pkg/database"
	"github.com/NoraWeller/VowNest/internal/pkg/env"
	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v76/webhook"
)

var subscriptionService *billing.Service

// InitializeSubscriptionController injects the billing service. Called once
// at router install; tests use it to swap in a fake processor. Handlers
// never write the package variable, so concurrent requests only read it.
func InitializeSubscriptionController(svc *billing.Service) {
	subscriptionService = svc
}

// InitializeSubscriptionControllerFromEnv wires the production Stripe
// processor over the global DB handle.
func InitializeSubscriptionControllerFromEnv() {
	InitializeSubscriptionController(billing.NewServiceFromDB(database.GetDB(), billing.NewStripeProcessorFromEnv()))
}

func getSubscriptionService() *billing.Service {
	return subscriptionService
}

type createSubscriptionRequest struct {
	PlanID        string `json:"planId"`
	CustomerID    string `json:"customerId"`
	PriceID       string `json:"priceId"`
	PaymentMethod struct {
		Card struct {
			Number   string `json:"number"`
			ExpMonth int64  `json:"exp_month"`
			ExpYear  int64  `json:"exp_year"`
			CVC      string `json:"cvc"`
		} `json:"card"`
		BillingDetails struct {
			Name  string `json:"name"`
			Email string `json:"email"`
			Phone string `json:"phone"`
		} `json:"billing_details"`
	} `json:"paymentMethod"`
}

type createSubscriptionResponse struct {
	SubscriptionID string `json:"subscriptionId"`
	Status         string `json:"status"`
	ClientSecret   string `json:"clientSecret,omitempty"`
}

type confirmSubscriptionRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
	CustomerID      string `json:"customerId"`
	PlanID          string `json:"planId"`
	CoupleID        string `json:"coupleId"`
}

// HandleCreateCoupleSubscription tokenizes the submitted card, attaches it
// to the customer and creates the subscription. All failures come back as
// 400 with the underlying error message unchanged.
func HandleCreateCoupleSubscription(c *fiber.Ctx) error {
	var req createSubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("create-couple-subscription: %v", err)
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	priceID := req.PriceID
	if priceID == "" {
		var err error
		priceID, err = getSubscriptionService().LookupPlanPrice(c.Context(), req.PlanID)
		if err != nil {
			log.Printf("create-couple-subscription: %v", err)
			return jsonError(c, fiber.StatusBadRequest, err.Error())
		}
	}

	result, err := getSubscriptionService().CreateSubscription(c.Context(), billing.CreateSubscriptionInput{
		CustomerID: req.CustomerID,
		PriceID:    priceID,
		Card: billing.Card{
			Number:   req.PaymentMethod.Card.Number,
			ExpMonth: req.PaymentMethod.Card.ExpMonth,
			ExpYear:  req.PaymentMethod.Card.ExpYear,
			CVC:      req.PaymentMethod.Card.CVC,
		},
		Details: billing.BillingDetails{
			Name:  req.PaymentMethod.BillingDetails.Name,
			Email: req.PaymentMethod.BillingDetails.Email,
			Phone: req.PaymentMethod.BillingDetails.Phone,
		},
	})
	if err != nil {
		log.Printf("create-couple-subscription: %v", err)
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(createSubscriptionResponse{
		SubscriptionID: result.ID,
		Status:         result.Status,
		ClientSecret:   result.ClientSecret,
	})
}

// HandleConfirmSubscription verifies a confirmed payment intent, creates
// the subscription and mirrors it locally.
func HandleConfirmSubscription(c *fiber.Ctx) error {
	var req confirmSubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("confirm-subscription: %v", err)
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := getSubscriptionService().ConfirmSubscription(c.Context(), billing.ConfirmSubscriptionInput{
		PaymentIntentID: req.PaymentIntentID,
		CustomerID:      req.CustomerID,
		PlanID:          req.PlanID,
		CoupleID:        req.CoupleID,
	})
	if err != nil {
		log.Printf("confirm-subscription: %v", err)
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"subscriptionId": result.SubscriptionID,
		"status":         result.Status,
		"success":        true,
	})
}

// HandleGetCoupleSubscription returns the local subscription mirror for a
// couple. Both the confirm-time payment status and the processor's last
// reported status are included.
func HandleGetCoupleSubscription(c *fiber.Ctx) error {
	sub, err := getSubscriptionService().GetSubscription(c.Context(), c.Params("coupleId"))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "subscription not found")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"coupleId":        sub.CoupleID,
		"planId":          sub.PlanID,
		"subscriptionId":  sub.SubscriptionID,
		"paymentStatus":   sub.PaymentStatus,
		"processorStatus": sub.ProcessorStatus,
	})
}

// HandleStripeWebhook verifies and records Stripe events, then applies
// subscription status changes to the local mirror. Redelivered events are
// recorded once and not reprocessed.
func HandleStripeWebhook(c *fiber.Ctx) error {
	rawBody := append([]byte(nil), c.BodyRaw()...)
	signature := c.Get("Stripe-Signature")
	secret := env.GetEnv("STRIPE_WEBHOOK_SECRET", "")

	event, err := webhook.ConstructEvent(rawBody, signature, secret)
	if err != nil {
		log.Printf("stripe webhook: signature verification failed: %v", err)
		return jsonError(c, fiber.StatusBadRequest, "invalid webhook signature")
	}

	svc := getSubscriptionService()
	created, stored, err := svc.RecordWebhookEvent(c.Context(), billing.WebhookEventInput{
		Provider:        models.BillingProviderStripe,
		ProviderEventID: event.ID,
		EventType:       string(event.Type),
		PayloadJSON:     string(rawBody),
		SignatureValid:  true,
	})
	if err != nil {
		log.Printf("stripe webhook: recording event failed: %v", err)
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if !created {
		// Redelivery of an event we already have.
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"received": true, "duplicate": true})
	}

	var processingErr error
	switch event.Type {
	case "customer.subscription.updated", "customer.subscription.deleted":
		var sub struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		}
		if processingErr = json.Unmarshal(event.Data.Raw, &sub); processingErr == nil {
			processingErr = svc.SyncSubscriptionStatus(c.Context(), sub.ID, sub.Status)
		}
	}
	if processingErr != nil {
		log.Printf("stripe webhook: processing %s failed: %v", event.ID, processingErr)
	}
	if err := svc.MarkWebhookProcessed(c.Context(), stored.ID, processingErr); err != nil {
		log.Printf("stripe webhook: marking %s processed failed: %v", event.ID, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"received": true})
}
