// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"timetable_backend/internals/features/timetable/controller"
	timetableRoute "timetable_backend/internals/features/timetable/route"
	"timetable_backend/internals/middlewares/auth"
)

var startTime time.Time

type Options struct {
	JWTSecret string
	// HealthCheck nil = health hanya melaporkan server.
	HealthCheck func() error
}

func SetupRoutes(app *fiber.App, ctl *controller.TimetableController, o Options) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, o.HealthCheck)

	// ===================== PUBLIC (read-only) =====================
	log.Println("[INFO] Setting up USER group...")
	user := app.Group("/api/u")
	timetableRoute.TimetableUserRoutes(user, ctl)

	// ===================== ADMIN =====================
	var admin fiber.Router
	if o.JWTSecret != "" {
		log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
		admin = app.Group("/api/a",
			auth.AuthJWT(auth.AuthJWTOpts{
				Secret:              o.JWTSecret,
				AllowCookieFallback: true,
			}),
			auth.RequireRoles("admin", "owner"),
		)
	} else {
		log.Println("[WARN] JWT_SECRET kosong, ADMIN group tanpa auth")
		admin = app.Group("/api/a")
	}
	timetableRoute.TimetableAdminRoutes(admin, ctl)
}
