package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	progressController "academy_backend/internals/features/progress/progress/controller"
	"academy_backend/internals/features/progress/progress/service"
)

func UserProgressRoutes(router fiber.Router, db *gorm.DB, issuer service.CertificateIssuer) {
	ctl := progressController.NewLessonProgressController(db, issuer)

	g := router.Group("/progress/lessons")
	g.Get("/:lesson_id", ctl.Get)
	g.Post("/:lesson_id", ctl.Update)
}
