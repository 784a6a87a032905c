// internals/features/gigs/online_sessions/route/online_session_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	onlineController "quest4knowledge_backend/internals/features/gigs/online_sessions/controller"
	onlineService "quest4knowledge_backend/internals/features/gigs/online_sessions/service"
	"quest4knowledge_backend/internals/middlewares"
)

// AdminOnlineSessionRoutes: scheduling and meeting lifecycle.
func AdminOnlineSessionRoutes(admin fiber.Router, db *gorm.DB, svc *onlineService.SchedulerService) {
	ctl := onlineController.NewOnlineSessionController(db, svc)

	meetings := admin.Group("/online-sessions")
	meetings.Post("/", ctl.ScheduleMeeting)
	meetings.Get("/", ctl.ListMeetings)
	meetings.Get("/:session_id", ctl.GetMeeting)
	meetings.Post("/:session_id/extend", ctl.ExtendMeeting)
	meetings.Post("/:session_id/complete", ctl.CompleteMeeting)
	meetings.Post("/:session_id/cancel", ctl.CancelMeeting)
}

// PublicOnlineSessionRoutes: the unauthenticated join flow. The validate
// endpoint sits behind the join rate limiter to slow down pin guessing.
func PublicOnlineSessionRoutes(api fiber.Router, db *gorm.DB, svc *onlineService.SchedulerService) {
	ctl := onlineController.NewOnlineSessionController(db, svc)

	public := api.Group("/online-sessions")
	public.Post("/validate", middlewares.JoinRateLimiter(), ctl.ValidateAccess)
	public.Get("/code/:meeting_code", ctl.GetMeetingByCode)
}
