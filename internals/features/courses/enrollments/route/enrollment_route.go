package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"academy_backend/internals/features/courses/enrollments/controller"
)

func EnrollmentAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewEnrollmentAdminController(db)

	g := admin.Group("/enrollments")
	g.Delete("/:id", ctl.Delete)
}
