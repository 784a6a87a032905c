// internals/features/gigs/reports/route/report_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	reportController "quest4knowledge_backend/internals/features/gigs/reports/controller"
	reportService "quest4knowledge_backend/internals/features/gigs/reports/service"
)

func AdminReportRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := reportController.NewReportController(reportService.NewReportService(db))

	reports := admin.Group("/reports")
	reports.Get("/dashboard", ctl.Dashboard)
	reports.Get("/gigs/:gig_id", ctl.GigReport)
}
