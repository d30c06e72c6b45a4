package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"academy_backend/internals/features/certificates/layout"
	"academy_backend/internals/features/certificates/templates/controller"
)

func CertificateTemplateAdminRoutes(admin fiber.Router, db *gorm.DB, m layout.Measurer) {
	ctl := controller.NewCertificateTemplateController(db, nil, m)

	g := admin.Group("/certificate-templates")
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
	g.Get("/:id", ctl.GetByID)
	g.Put("/:id", ctl.Update)
	g.Patch("/:id", ctl.Patch)
	g.Delete("/:id", ctl.Delete)
	g.Get("/:id/preview", ctl.Preview)
	g.Post("/:id/fields/:field_id/transform", ctl.TransformField)
}

func CertificateTemplateUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := controller.NewCertificateTemplateController(db, nil, nil)

	g := user.Group("/certificate-templates")
	g.Get("/defaults", ctl.Defaults)
	g.Get("/course/:course_id", ctl.ForCourse)
}
