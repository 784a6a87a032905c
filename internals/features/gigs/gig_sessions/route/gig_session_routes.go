// internals/features/gigs/gig_sessions/route/gig_session_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	sessionController "quest4knowledge_backend/internals/features/gigs/gig_sessions/controller"
	sessionService "quest4knowledge_backend/internals/features/gigs/gig_sessions/service"
)

// AdminGigSessionRoutes: full session management plus verification.
func AdminGigSessionRoutes(admin fiber.Router, db *gorm.DB, svc *sessionService.VerificationService) {
	ctl := sessionController.NewGigSessionController(db, svc)

	admin.Post("/gigs/:gig_id/sessions", ctl.CreateSession)
	admin.Get("/gigs/:gig_id/sessions", ctl.ListSessions)

	sessions := admin.Group("/sessions")
	sessions.Get("/:session_id", ctl.GetSession)
	sessions.Put("/:session_id", ctl.UpdateSession)
	sessions.Delete("/:session_id", ctl.DeleteSession)
	sessions.Post("/:session_id/verify", ctl.VerifySession)
}

// TutorGigSessionRoutes: a tutor logs and edits unverified sessions on
// their own gigs; verification and deletion stay with admins.
func TutorGigSessionRoutes(tutor fiber.Router, db *gorm.DB, svc *sessionService.VerificationService) {
	ctl := sessionController.NewGigSessionController(db, svc)

	tutor.Post("/gigs/:gig_id/sessions", ctl.CreateSession)
	tutor.Get("/gigs/:gig_id/sessions", ctl.ListSessions)

	sessions := tutor.Group("/sessions")
	sessions.Get("/", ctl.ListMySessions)
	sessions.Get("/:session_id", ctl.GetSession)
	sessions.Put("/:session_id", ctl.UpdateSession)
}
