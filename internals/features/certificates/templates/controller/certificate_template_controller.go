// file: internals/features/certificates/templates/controller/certificate_template_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"academy_backend/internals/constants"
	"academy_backend/internals/features/certificates/certerr"
	certModel "academy_backend/internals/features/certificates/certificates/model"
	"academy_backend/internals/features/certificates/layout"
	"academy_backend/internals/features/certificates/templates/dto"
	"academy_backend/internals/features/certificates/templates/service"
	courseModel "academy_backend/internals/features/courses/courses/model"
	helper "academy_backend/internals/helpers"
)

/* =======================================================
   CONTROLLER
   ======================================================= */

type CertificateTemplateController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Svc      *service.TemplateService
	Measurer layout.Measurer
}

func NewCertificateTemplateController(db *gorm.DB, v *validator.Validate, m layout.Measurer) *CertificateTemplateController {
	if v == nil {
		v = validator.New(validator.WithRequiredStructEnabled())
	}
	if m == nil {
		m = layout.Default()
	}
	return &CertificateTemplateController{DB: db, Validate: v, Svc: service.NewTemplateService(db), Measurer: m}
}

func parseID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, certerr.Validation("Invalid "+name, "المعرّف غير صالح")
	}
	return id, nil
}

func badFields(err error) error {
	return certerr.Validation("Invalid fields: "+err.Error(), "حقول القالب غير صالحة")
}

/* =======================================================
   ADMIN
   ======================================================= */

// GET /api/a/certificate-templates
func (ctl *CertificateTemplateController) List(c *fiber.Ctx) error {
	var q dto.ListCertificateTemplatesQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query")
	}
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)

	rows, total, err := ctl.Svc.List(helper.ReqCtx(c), service.ListFilter{
		Language:  q.Language,
		IsActive:  q.IsActive,
		IsDefault: q.IsDefault,
		Limit:     p.Limit(),
		Offset:    p.Offset(),
	})
	if err != nil {
		return certerr.Respond(c, err)
	}
	meta := helper.BuildMeta(total, p)
	return helper.JsonList(c, "ok", dto.FromModels(rows), &meta)
}

// GET /api/a/certificate-templates/:id
func (ctl *CertificateTemplateController) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return certerr.Respond(c, err)
	}
	m, err := ctl.Svc.Get(helper.ReqCtx(c), id)
	if err != nil {
		return certerr.Respond(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(m))
}

// POST /api/a/certificate-templates
func (ctl *CertificateTemplateController) Create(c *fiber.Ctx) error {
	var req dto.CreateCertificateTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	in, err := req.ToInput()
	if err != nil {
		return certerr.Respond(c, badFields(err))
	}
	m, err := ctl.Svc.Create(helper.ReqCtx(c), in)
	if err != nil {
		return certerr.Respond(c, err)
	}
	return helper.JsonCreated(c, "Certificate template created", dto.FromModel(m))
}

// PUT /api/a/certificate-templates/:id
func (ctl *CertificateTemplateController) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return certerr.Respond(c, err)
	}
	var req dto.UpdateCertificateTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	in, err := req.ToInput()
	if err != nil {
		return certerr.Respond(c, badFields(err))
	}
	m, err := ctl.Svc.Update(helper.ReqCtx(c), id, in)
	if err != nil {
		return certerr.Respond(c, err)
	}
	return helper.JsonUpdated(c, "Certificate template updated", dto.FromModel(m))
}

// PATCH /api/a/certificate-templates/:id
func (ctl *CertificateTemplateController) Patch(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return certerr.Respond(c, err)
	}
	var req dto.PatchCertificateTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	in, err := req.ToInput()
	if err != nil {
		return certerr.Respond(c, badFields(err))
	}
	m, err := ctl.Svc.Patch(helper.ReqCtx(c), id, in)
	if err != nil {
		return certerr.Respond(c, err)
	}
	return helper.JsonUpdated(c, "Certificate template updated", dto.FromModel(m))
}

// DELETE /api/a/certificate-templates/:id
func (ctl *CertificateTemplateController) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return certerr.Respond(c, err)
	}
	if err := ctl.Svc.Delete(helper.ReqCtx(c), id); err != nil {
		return certerr.Respond(c, err)
	}
	return helper.JsonDeleted(c, "Certificate template deleted", fiber.Map{"id": id})
}

/* =======================================================
   USER
   ======================================================= */

// GET /api/u/certificate-templates/defaults
func (ctl *CertificateTemplateController) Defaults(c *fiber.Ctx) error {
	rows, err := ctl.Svc.Defaults(helper.ReqCtx(c))
	if err != nil {
		return certerr.Respond(c, err)
	}
	byLang := fiber.Map{}
	for _, lang := range constants.SupportedLanguages {
		byLang[lang] = nil
	}
	for i := range rows {
		byLang[rows[i].Language] = dto.FromModel(&rows[i])
	}
	return helper.JsonOK(c, "ok", byLang)
}

// GET /api/u/certificate-templates/course/:course_id
func (ctl *CertificateTemplateController) ForCourse(c *fiber.Ctx) error {
	courseID, err := parseID(c, "course_id")
	if err != nil {
		return certerr.Respond(c, err)
	}
	var course courseModel.CourseModel
	if err := ctl.DB.WithContext(helper.ReqCtx(c)).Select("id", "language").First(&course, "id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return certerr.Respond(c, certerr.NotFound("Course not found", "الدورة غير موجودة"))
		}
		return certerr.Respond(c, err)
	}

	lang := constants.NormalizeLanguage(course.Language)
	if !constants.IsSupportedLanguage(lang) {
		lang = constants.DefaultLanguage
	}
	rows, err := ctl.Svc.ForLanguage(helper.ReqCtx(c), lang)
	if err != nil {
		return certerr.Respond(c, err)
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"course_id": course.ID,
		"language":  lang,
		"templates": dto.FromModels(rows),
	})
}

/* =======================================================
   BUILDER (preview + transform)
   ======================================================= */

type PreviewResponse struct {
	Template dto.CertificateTemplateResponse `json:"template"`
	Data     certModel.CertificateData       `json:"data"`
	Layout   []layout.PlacedField            `json:"layout"`
}

// GET /api/a/certificate-templates/:id/preview?lang=
func (ctl *CertificateTemplateController) Preview(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return certerr.Respond(c, err)
	}
	m, err := ctl.Svc.Get(helper.ReqCtx(c), id)
	if err != nil {
		return certerr.Respond(c, err)
	}
	lang := constants.NormalizeLanguage(c.Query("lang", m.Language))
	if !constants.IsSupportedLanguage(lang) {
		lang = m.Language
	}
	data := SampleData(lang)
	return helper.JsonOK(c, "ok", PreviewResponse{
		Template: dto.FromModel(m),
		Data:     data,
		Layout:   layout.PlaceAll(m.Fields, data, ctl.Measurer),
	})
}

// POST /api/a/certificate-templates/:id/fields/:field_id/transform
func (ctl *CertificateTemplateController) TransformField(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return certerr.Respond(c, err)
	}
	fieldID := strings.TrimSpace(c.Params("field_id"))

	var req dto.TransformFieldRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return certerr.Respond(c, certerr.Validation("scale_x and scale_y must be greater than 0", "يجب أن يكون معامل التحجيم أكبر من 0"))
	}

	ctx := helper.ReqCtx(c)
	m, err := ctl.Svc.Get(ctx, id)
	if err != nil {
		return certerr.Respond(c, err)
	}
	field := m.FieldByID(fieldID)
	if field == nil {
		return certerr.Respond(c, certerr.NotFound("Field not found in template", "الحقل غير موجود في القالب"))
	}

	scaled, err := layout.ApplyScale(*field, req.ScaleX, req.ScaleY)
	if err != nil {
		return certerr.Respond(c, certerr.Validation(err.Error(), "الحجم الناتج أصغر من الحد الأدنى المسموح"))
	}
	updated, err := ctl.Svc.UpdateField(ctx, id, scaled)
	if err != nil {
		return certerr.Respond(c, err)
	}
	return helper.JsonUpdated(c, "Field transform applied", fiber.Map{
		"field":    scaled,
		"template": dto.FromModel(updated),
	})
}
