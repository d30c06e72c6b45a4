package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	certService "academy_backend/internals/features/certificates/certificates/service"
	enrollmentRoute "academy_backend/internals/features/courses/enrollments/route"
	progressRoute "academy_backend/internals/features/progress/progress/route"
)

// CourseUserRoutes: progres lesson; 100% memicu generator sertifikat.
func CourseUserRoutes(user fiber.Router, db *gorm.DB) {
	progressRoute.UserProgressRoutes(user, db, certService.NewGenerator(db))
}

func CourseAdminRoutes(admin fiber.Router, db *gorm.DB) {
	enrollmentRoute.EnrollmentAdminRoutes(admin, db)
}
