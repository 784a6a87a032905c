// internals/features/tutors/route/tutor_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	tutorController "quest4knowledge_backend/internals/features/tutors/controller"
)

// AdminTutorRoutes mounts tutor management under the admin group.
func AdminTutorRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := tutorController.NewTutorController(db)

	tutors := admin.Group("/tutors")
	tutors.Post("/", ctl.CreateTutor)
	tutors.Get("/", ctl.ListTutors)
	tutors.Get("/:tutor_id", ctl.GetTutor)
	tutors.Put("/:tutor_id", ctl.UpdateTutor)
	tutors.Post("/:tutor_id/block", ctl.BlockTutor)
	tutors.Post("/:tutor_id/unblock", ctl.UnblockTutor)
}
