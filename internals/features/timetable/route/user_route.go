package route

import (
	"github.com/gofiber/fiber/v2"

	"timetable_backend/internals/features/timetable/controller"
)

// ================================
// User routes (read-only)
// Base path: /api/u/timetable
// ================================
func TimetableUserRoutes(user fiber.Router, ctl *controller.TimetableController) {
	r := user.Group("/timetable")

	r.Get("/calendar", ctl.GetCalendar)
	r.Get("/subjects", ctl.ListSubjects)
	r.Get("/subjects/facets", ctl.SubjectFacets)
	r.Get("/grid", ctl.GetGrid)
	r.Get("/export.csv", ctl.ExportCSV)
	r.Get("/export.html", ctl.ExportHTML)
	r.Get("/export.xlsx", ctl.ExportXLSX)
}
