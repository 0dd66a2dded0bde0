package router

import (
	"github.com/NoraWeller/VowNest/app/controllers"
	"github.com/NoraWeller/VowNest/internal/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	controllers.InitializeBookingControllerFromDB()

	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	v1 := api.Group("/v1")

	couples := v1.Group("/couples")
	couples.Post("/", controllers.HandleRegisterCouple)
	couples.Get("/:uuid", controllers.HandleGetCouple)
	couples.Get("/:coupleId/bookings", controllers.HandleListBookings)
	couples.Get("/:coupleId/conversations", controllers.HandleListCoupleConversations)
	couples.Get("/:coupleId/subscription", controllers.HandleGetCoupleSubscription)

	vendors := v1.Group("/vendors")
	vendors.Post("/", controllers.HandleRegisterVendor)
	vendors.Get("/search", controllers.HandleSearchVendors)
	vendors.Get("/:uuid", controllers.HandleGetVendor)
	vendors.Post("/:uuid/blackouts", controllers.HandleAddVendorBlackout)
	vendors.Get("/:uuid/conversations", controllers.HandleListVendorConversations)

	bookings := v1.Group("/bookings")
	bookings.Post("/drafts", controllers.HandleCreateBookingDraft)
	bookings.Patch("/drafts/:id/steps/:step", controllers.HandleUpdateBookingStep)
	bookings.Post("/drafts/:id/complete", controllers.HandleCompleteBooking)

	conversations := v1.Group("/conversations")
	conversations.Post("/", controllers.HandleStartConversation)
	conversations.Post("/:uuid/messages", controllers.HandleSendMessage)
	conversations.Get("/:uuid/messages", controllers.HandleListMessages)

	admin := v1.Group("/admin", middleware.ServiceKeyAuth())
	admin.Get("/plans", controllers.HandleAdminListPlans)
	admin.Post("/plans", controllers.HandleAdminCreatePlan)
	admin.Put("/plans/:planId", controllers.HandleAdminUpdatePlan)
	admin.Delete("/plans/:planId", controllers.HandleAdminDeactivatePlan)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
