package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"academy_backend/internals/features/certificates/certerr"
	"academy_backend/internals/features/progress/progress/service"
	helper "academy_backend/internals/helpers"
)

type LessonProgressController struct {
	Svc      *service.ProgressService
	Validate *validator.Validate
}

func NewLessonProgressController(db *gorm.DB, issuer service.CertificateIssuer) *LessonProgressController {
	return &LessonProgressController{Svc: service.NewProgressService(db, issuer), Validate: validator.New()}
}

type UpdateLessonProgressRequest struct {
	WatchedTime *int  `json:"watched_time" validate:"omitempty,min=0"`
	IsCompleted *bool `json:"is_completed"`
}

func lessonParams(c *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	lessonID, err := uuid.Parse(strings.TrimSpace(c.Params("lesson_id")))
	if err != nil {
		return uuid.Nil, uuid.Nil, certerr.Validation("Invalid lesson_id", "معرّف الدرس غير صالح")
	}
	return userID, lessonID, nil
}

// GET /api/u/progress/lessons/:lesson_id
func (ctl *LessonProgressController) Get(c *fiber.Ctx) error {
	userID, lessonID, err := lessonParams(c)
	if err != nil {
		return certerr.Respond(c, err)
	}
	row, err := ctl.Svc.Get(helper.ReqCtx(c), userID, lessonID)
	if err != nil {
		return certerr.Respond(c, err)
	}
	return helper.JsonOK(c, "ok", row)
}

// POST /api/u/progress/lessons/:lesson_id
func (ctl *LessonProgressController) Update(c *fiber.Ctx) error {
	userID, lessonID, err := lessonParams(c)
	if err != nil {
		return certerr.Respond(c, err)
	}
	var req UpdateLessonProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	res, err := ctl.Svc.UpdateLesson(helper.ReqCtx(c), userID, lessonID, service.UpdateLessonInput{
		WatchedTime: req.WatchedTime,
		IsCompleted: req.IsCompleted,
	})
	if errors.Is(err, service.ErrNotEnrolled) {
		return helper.JsonError(c, fiber.StatusForbidden, "Not enrolled in this course")
	}
	if err != nil {
		return certerr.Respond(c, err)
	}
	return helper.JsonUpdated(c, "Lesson progress updated", res)
}
