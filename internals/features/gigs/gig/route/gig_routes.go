// internals/features/gigs/gig/route/gig_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	gigController "quest4knowledge_backend/internals/features/gigs/gig/controller"
	notifService "quest4knowledge_backend/internals/features/notifications/service"
)

// AdminGigRoutes mounts gig CRUD and lifecycle under the admin group.
func AdminGigRoutes(admin fiber.Router, db *gorm.DB, notifier notifService.Notifier, currency string) {
	ctl := gigController.NewGigController(db, notifier, currency)

	gigs := admin.Group("/gigs")
	gigs.Post("/", ctl.CreateGig)
	gigs.Get("/", ctl.ListGigs)
	gigs.Get("/unassigned", ctl.ListUnassignedGigs)
	gigs.Post("/expire-overdue", ctl.ExpireOverdueGigs)
	gigs.Get("/:gig_id", ctl.GetGig)
	gigs.Put("/:gig_id", ctl.UpdateGig)
	gigs.Delete("/:gig_id", ctl.DeleteGig)

	gigs.Post("/:gig_id/assign", ctl.AssignGig)
	gigs.Post("/:gig_id/unassign", ctl.UnassignGig)
	gigs.Post("/:gig_id/start", ctl.StartGig)
	gigs.Post("/:gig_id/hold", ctl.HoldGig)
	gigs.Post("/:gig_id/resume", ctl.ResumeGig)
	gigs.Post("/:gig_id/complete", ctl.CompleteGig)
	gigs.Post("/:gig_id/cancel", ctl.CancelGig)
	gigs.Post("/:gig_id/adjust-hours", ctl.AdjustGigHours)
}

// TutorGigRoutes mounts the tutor's read-only view of their own gigs.
func TutorGigRoutes(tutor fiber.Router, db *gorm.DB, notifier notifService.Notifier, currency string) {
	ctl := gigController.NewGigController(db, notifier, currency)

	gigs := tutor.Group("/gigs")
	gigs.Get("/", ctl.ListMyGigs)
	gigs.Get("/:gig_id", ctl.GetMyGig)
}
