package router

import (
	"github.com/gofiber/fiber/v2"
)

// Router installs a group of routes on the app.
type Router interface {
	InstallRouter(app *fiber.App)
}

// InstallRouter wires all route groups. The function router goes first so
// its CORS handling covers the payment endpoints before anything else runs.
func InstallRouter(app *fiber.App) {
	setup(app, NewFunctionRouter(), NewApiRouter())
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
