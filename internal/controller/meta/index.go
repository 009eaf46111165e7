package meta

import (
	"github.com/gofiber/fiber/v2"

	"mutants.dev/backend/internal/app/appconfig"
)

func RegisterIndex(app *fiber.App, conf *appconfig.Config) {
	app.Get("/api", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to the Mutant DNA API",
			"endpoints": fiber.Map{
				"classify": "POST " + conf.GlobalPrefix + "/mutant",
				"stats":    "GET " + conf.GlobalPrefix + "/mutant/stats",
				"health":   "GET /api/_/health",
			},
		})
	})
}
