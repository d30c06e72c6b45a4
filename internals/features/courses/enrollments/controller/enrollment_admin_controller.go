package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"academy_backend/internals/features/certificates/certerr"
	"academy_backend/internals/features/courses/enrollments/service"
	helper "academy_backend/internals/helpers"
)

type EnrollmentAdminController struct {
	DB *gorm.DB
}

func NewEnrollmentAdminController(db *gorm.DB) *EnrollmentAdminController {
	return &EnrollmentAdminController{DB: db}
}

// DELETE /api/a/enrollments/:id
func (ctl *EnrollmentAdminController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return certerr.Respond(c, certerr.Validation("Invalid id", "المعرّف غير صالح"))
	}
	if err := service.DeleteEnrollment(helper.ReqCtx(c), ctl.DB, id); err != nil {
		return certerr.Respond(c, err)
	}
	return helper.JsonDeleted(c, "Enrollment deleted successfully", fiber.Map{"id": id})
}
