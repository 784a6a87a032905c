// internals/features/gigs/reports/controller/report_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	reportService "quest4knowledge_backend/internals/features/gigs/reports/service"
	helper "quest4knowledge_backend/internals/helpers"
	"quest4knowledge_backend/internals/helpers/refcode"
)

type ReportController struct {
	Service *reportService.ReportService
}

func NewReportController(svc *reportService.ReportService) *ReportController {
	return &ReportController{Service: svc}
}

// GET /api/a/reports/dashboard
func (ctl *ReportController) Dashboard(c *fiber.Ctx) error {
	report, err := ctl.Service.Dashboard(c.Context())
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to build dashboard")
	}
	return helper.Success(c, "OK", report)
}

// GET /api/a/reports/gigs/:gig_id
func (ctl *ReportController) GigReport(c *fiber.Ctx) error {
	id, err := refcode.ParseGig(c.Params("gig_id"))
	if err != nil {
		return helper.FromError(c, err)
	}
	report, err := ctl.Service.GigReport(c.Context(), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "OK", report)
}
