// internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"quest4knowledge_backend/internals/configs"
	gigRoute "quest4knowledge_backend/internals/features/gigs/gig/route"
	sessionRoute "quest4knowledge_backend/internals/features/gigs/gig_sessions/route"
	sessionService "quest4knowledge_backend/internals/features/gigs/gig_sessions/service"
	onlineRoute "quest4knowledge_backend/internals/features/gigs/online_sessions/route"
	onlineService "quest4knowledge_backend/internals/features/gigs/online_sessions/service"
	reportRoute "quest4knowledge_backend/internals/features/gigs/reports/route"
	notifService "quest4knowledge_backend/internals/features/notifications/service"
	tutorRoute "quest4knowledge_backend/internals/features/tutors/route"
	authMw "quest4knowledge_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, settings configs.Settings) {
	startTime = time.Now()

	notifier := notifService.NewNotifier(settings)
	provisioner := onlineService.NewRoomProvisioner(settings)
	verification := sessionService.NewVerificationService(db, notifier, settings.CurrencySymbol)
	scheduler := onlineService.NewSchedulerService(db, provisioner, notifier, settings.FrontendURL)

	BaseRoutes(app, db)

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PUBLIC join routes...")
	api := app.Group("/api")
	onlineRoute.PublicOnlineSessionRoutes(api, db, scheduler)

	// ===================== ADMIN (/api/a) =====================
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a",
		authMw.AuthMiddleware(configs.JWTSecret),
		authMw.OnlyAdmin(),
	)
	tutorRoute.AdminTutorRoutes(admin, db)
	gigRoute.AdminGigRoutes(admin, db, notifier, settings.CurrencySymbol)
	sessionRoute.AdminGigSessionRoutes(admin, db, verification)
	onlineRoute.AdminOnlineSessionRoutes(admin, db, scheduler)
	reportRoute.AdminReportRoutes(admin, db)

	// ===================== TUTOR (/api/u) =====================
	log.Println("[INFO] Setting up TUTOR group...")
	tutor := app.Group("/api/u",
		authMw.AuthMiddleware(configs.JWTSecret),
		authMw.OnlyTutor(),
	)
	gigRoute.TutorGigRoutes(tutor, db, notifier, settings.CurrencySymbol)
	sessionRoute.TutorGigSessionRoutes(tutor, db, verification)
}
