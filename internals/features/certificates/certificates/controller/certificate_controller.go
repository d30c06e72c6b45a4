// file: internals/features/certificates/certificates/controller/certificate_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"academy_backend/internals/features/certificates/certerr"
	"academy_backend/internals/features/certificates/certificates/dto"
	"academy_backend/internals/features/certificates/certificates/model"
	"academy_backend/internals/features/certificates/certificates/service"
	"academy_backend/internals/features/certificates/layout"
	enrollmentModel "academy_backend/internals/features/courses/enrollments/model"
	helper "academy_backend/internals/helpers"
)

type CertificateController struct {
	DB        *gorm.DB
	Validate  *validator.Validate
	Generator *service.Generator
	Preparer  *service.Preparer
	Verifier  *service.Verifier
	VerifyURL func(certificateID string) string
}

func NewCertificateController(db *gorm.DB, m layout.Measurer, verifyURL func(string) string) *CertificateController {
	return &CertificateController{
		DB:        db,
		Validate:  validator.New(),
		Generator: service.NewGenerator(db),
		Preparer:  service.NewPreparer(db, m, verifyURL),
		Verifier:  service.NewVerifier(db),
		VerifyURL: verifyURL,
	}
}

/* =========================================================
   USER
   ========================================================= */

// POST /api/u/certificates/generate
func (ctl *CertificateController) Generate(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return certerr.Respond(c, err)
	}

	var req dto.GenerateCertificateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	ctx := helper.ReqCtx(c)
	var certID string
	switch {
	case req.EnrollmentID != nil:
		// pastikan enrollment milik user (admin boleh untuk siapa saja)
		var enr enrollmentModel.CourseEnrollmentModel
		err := ctl.DB.WithContext(ctx).Select("id", "user_id").First(&enr, "id = ?", *req.EnrollmentID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return certerr.Respond(c, certerr.NotFound("Enrollment not found", "التسجيل غير موجود"))
		}
		if err != nil {
			return certerr.Respond(c, err)
		}
		if enr.UserID != userID && !helper.IsAdmin(c) {
			return helper.JsonError(c, fiber.StatusForbidden, "Enrollment does not belong to this user")
		}
		certID, err = ctl.Generator.Generate(ctx, enr.ID, req.Language)
		if err != nil {
			return respondGenerate(c, err)
		}

	case req.CourseID != nil:
		certID, err = ctl.Generator.GenerateForCourse(ctx, userID, *req.CourseID, req.Language)
		if errors.Is(err, certerr.ErrNotFound) {
			return certerr.RespondWith(c, err, fiber.StatusBadRequest)
		}
		if err != nil {
			return respondGenerate(c, err)
		}

	default:
		return certerr.Respond(c, certerr.Validation(
			"enrollment_id or course_id is required",
			"يجب إرسال enrollment_id أو course_id",
		))
	}

	out := dto.GenerateCertificateResponse{
		CertificateID: certID,
		DownloadURL:   dto.DownloadPath(certID),
	}
	if ctl.VerifyURL != nil {
		out.VerifyURL = ctl.VerifyURL(certID)
	}
	return helper.JsonCreated(c, "Certificate generated", out)
}

// missing template saat generate = salah konfigurasi server, bukan salah user
func respondGenerate(c *fiber.Ctx, err error) error {
	if errors.Is(err, certerr.ErrTemplateNotFound) {
		return certerr.RespondWith(c, err, fiber.StatusInternalServerError)
	}
	return certerr.Respond(c, err)
}

/* =========================================================
   PUBLIC
   ========================================================= */

// GET /api/public/certificates/:certificate_id/download?lang=
func (ctl *CertificateController) Download(c *fiber.Ctx) error {
	lang := c.Query("lang", c.Query("language"))
	out, err := ctl.Preparer.Prepare(helper.ReqCtx(c), c.Params("certificate_id"), lang)
	if err != nil {
		return certerr.Respond(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}

// GET /api/public/certificates/verify/:certificate_id
func (ctl *CertificateController) Verify(c *fiber.Ctx) error {
	res, err := ctl.Verifier.Verify(helper.ReqCtx(c), c.Params("certificate_id"))
	if err != nil {
		return certerr.Respond(c, err)
	}
	if !res.Valid {
		return c.Status(fiber.StatusNotFound).JSON(res)
	}
	return c.JSON(res)
}

// GET /api/public/certificates/:certificate_id/qr.png?size=
func (ctl *CertificateController) QRCode(c *fiber.Ctx) error {
	certID := strings.TrimSpace(c.Params("certificate_id"))
	ok, err := ctl.Verifier.Exists(helper.ReqCtx(c), certID)
	if err != nil {
		return certerr.Respond(c, err)
	}
	if !ok {
		return certerr.Respond(c, certerr.NotFound("Certificate not found", "الشهادة غير موجودة"))
	}

	target := dto.DownloadPath(certID)
	if ctl.VerifyURL != nil {
		target = ctl.VerifyURL(certID)
	}
	png, err := service.QRCodePNG(target, c.QueryInt("size", service.DefaultQRPixels))
	if err != nil {
		return certerr.Respond(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "public, max-age=86400")
	return c.Send(png)
}

/* =========================================================
   ADMIN
   ========================================================= */

// GET /api/a/certificates
func (ctl *CertificateController) List(c *fiber.Ctx) error {
	var q dto.ListCertificatesQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query")
	}
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)
	order := p.OrderColumn(map[string]string{
		"created_at":     "created_at",
		"certificate_id": "certificate_id",
	}, "created_at") + " " + p.OrderDirection()

	tx := ctl.DB.WithContext(helper.ReqCtx(c)).Model(&model.CertificateModel{})
	if q.UserID != nil {
		tx = tx.Where("user_id = ?", *q.UserID)
	}
	if l := strings.ToLower(strings.TrimSpace(q.Language)); l != "" {
		tx = tx.Where("template_id IN (?)",
			ctl.DB.Table("certificate_templates").Select("id").Where("language = ?", l))
	}

	tx = tx.Session(&gorm.Session{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return certerr.Respond(c, err)
	}
	var rows []model.CertificateModel
	if err := tx.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return certerr.Respond(c, err)
	}

	meta := helper.BuildMeta(total, p)
	return helper.JsonList(c, "ok", dto.FromModels(rows), &meta)
}
