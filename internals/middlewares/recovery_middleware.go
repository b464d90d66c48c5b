package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"timetable_backend/internals/configs"
)

// RecoveryMiddleware menangkap panic di handler timetable (mis. render grid
// yang bentuknya rusak) lalu meneruskannya ke helper.FiberErrorHandler
// sebagai 500 berformat JSON. Stack trace dicetak kecuali APP_ENV=production.
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: configs.GetEnv("APP_ENV") != "production",
	})
}
