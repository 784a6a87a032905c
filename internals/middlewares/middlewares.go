// internals/middlewares/middlewares.go
package middlewares

import (
	"github.com/gofiber/fiber/v2"

	loggerMw "quest4knowledge_backend/internals/middlewares/logger"
)

func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(loggerMw.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
