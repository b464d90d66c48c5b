package route

import (
	"github.com/gofiber/fiber/v2"

	"timetable_backend/internals/features/timetable/controller"
	"timetable_backend/internals/middlewares"
)

// ================================
// Admin routes (manage)
// Base path: /api/a/timetable
// ================================
func TimetableAdminRoutes(admin fiber.Router, ctl *controller.TimetableController) {
	r := admin.Group("/timetable")

	r.Post("/subjects", ctl.CreateSubject)
	r.Post("/subjects/import", ctl.ImportSubjects)
	r.Patch("/subjects/:id", ctl.UpdateSubject)
	r.Delete("/subjects/:id", ctl.DeleteSubject)

	r.Post("/generate", middlewares.GenerateRateLimiter(), ctl.Generate)
	r.Post("/grid/periods", ctl.InsertPeriod)
	r.Delete("/grid/periods/:day/:index", ctl.RemovePeriod)
	r.Post("/reset", ctl.Reset)
}
