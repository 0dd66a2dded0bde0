package router

import (
	"github.com/NoraWeller/VowNest/app/controllers"
	"github.com/NoraWeller/VowNest/internal/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

// FunctionRouter exposes the payment endpoints at the root path. Browser
// clients call them directly, so each path also answers OPTIONS preflight.
type FunctionRouter struct {
}

func (h FunctionRouter) InstallRouter(app *fiber.App) {
	controllers.InitializeSubscriptionControllerFromEnv()

	cors := middleware.FunctionCORS()

	app.Post("/create-couple-subscription", cors, controllers.HandleCreateCoupleSubscription)
	app.Options("/create-couple-subscription", cors)

	app.Post("/confirm-subscription", cors, controllers.HandleConfirmSubscription)
	app.Options("/confirm-subscription", cors)

	// Server-to-server; Stripe signs the payload instead of using CORS.
	app.Post("/stripe-webhook", controllers.HandleStripeWebhook)
}

func NewFunctionRouter() *FunctionRouter {
	return &FunctionRouter{}
}
