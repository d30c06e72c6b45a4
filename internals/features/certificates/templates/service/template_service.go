// file: internals/features/certificates/templates/service/template_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"academy_backend/internals/constants"
	"academy_backend/internals/features/certificates/certerr"
	"academy_backend/internals/features/certificates/templates/model"
	"academy_backend/internals/metrics"
)

type TemplateService struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewTemplateService(db *gorm.DB) *TemplateService {
	v := validator.New(validator.WithRequiredStructEnabled())
	model.RegisterFieldValidation(v)
	return &TemplateService{DB: db, Validate: v}
}

/* =========================
   Inputs
   ========================= */

type CreateInput struct {
	Name             string
	Language         string
	BackgroundImage  string
	BackgroundWidth  *int
	BackgroundHeight *int
	Fields           []model.Field
}

// UpdateInput is a full replace of the mutable attributes. IsActive nil keeps
// the current value; is_default is never touched here.
type UpdateInput struct {
	Name             string
	Language         string
	BackgroundImage  string
	BackgroundWidth  *int
	BackgroundHeight *int
	Fields           []model.Field
	IsActive         *bool
}

type PatchInput struct {
	Name             *string
	Language         *string
	BackgroundImage  *string
	BackgroundWidth  *int
	BackgroundHeight *int
	Fields           *[]model.Field
	IsActive         *bool
	IsDefault        *bool
}

type ListFilter struct {
	Language  *string
	IsActive  *bool
	IsDefault *bool
	Limit     int
	Offset    int
}

/* =========================
   Queries
   ========================= */

func (s *TemplateService) Get(ctx context.Context, id uuid.UUID) (*model.CertificateTemplateModel, error) {
	var m model.CertificateTemplateModel
	if err := s.DB.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &m, nil
}

func (s *TemplateService) List(ctx context.Context, f ListFilter) ([]model.CertificateTemplateModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.CertificateTemplateModel{})
	if f.Language != nil {
		q = q.Where("language = ?", constants.NormalizeLanguage(*f.Language))
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}
	if f.IsDefault != nil {
		q = q.Where("is_default = ?", *f.IsDefault)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count templates: %w", err)
	}

	var rows []model.CertificateTemplateModel
	q = q.Order("created_at DESC").Order("id DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list templates: %w", err)
	}
	return rows, total, nil
}

// Defaults returns the default active template of each supported language that has one.
func (s *TemplateService) Defaults(ctx context.Context) ([]model.CertificateTemplateModel, error) {
	var rows []model.CertificateTemplateModel
	err := s.DB.WithContext(ctx).
		Where("is_default = ? AND is_active = ? AND language IN ?", true, true, constants.SupportedLanguages).
		Order("language ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load default templates: %w", err)
	}
	return rows, nil
}

// ForLanguage: template aktif untuk satu bahasa, default di urutan pertama.
func (s *TemplateService) ForLanguage(ctx context.Context, lang string) ([]model.CertificateTemplateModel, error) {
	var rows []model.CertificateTemplateModel
	err := s.DB.WithContext(ctx).
		Where("language = ? AND is_active = ?", constants.NormalizeLanguage(lang), true).
		Order("is_default DESC").Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load templates for %s: %w", lang, err)
	}
	return rows, nil
}

// FindDefaultActive resolves the template certificates in lang are rendered with.
func FindDefaultActive(ctx context.Context, db *gorm.DB, lang string) (*model.CertificateTemplateModel, error) {
	var m model.CertificateTemplateModel
	err := db.WithContext(ctx).
		Where("language = ? AND is_default = ? AND is_active = ?", lang, true, true).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, certerr.TemplateNotFound(lang)
	}
	if err != nil {
		return nil, fmt.Errorf("load default template (%s): %w", lang, err)
	}
	return &m, nil
}

/* =========================
   Commands
   ========================= */

func (s *TemplateService) Create(ctx context.Context, in CreateInput) (*model.CertificateTemplateModel, error) {
	m := &model.CertificateTemplateModel{
		Name:             strings.TrimSpace(in.Name),
		Language:         constants.NormalizeLanguage(in.Language),
		BackgroundImage:  strings.TrimSpace(in.BackgroundImage),
		BackgroundWidth:  model.DefaultBackgroundWidth,
		BackgroundHeight: model.DefaultBackgroundHeight,
		Fields:           datatypes.JSONSlice[model.Field](in.Fields),
		IsActive:         true,
		IsDefault:        false,
	}
	if in.BackgroundWidth != nil {
		m.BackgroundWidth = *in.BackgroundWidth
	}
	if in.BackgroundHeight != nil {
		m.BackgroundHeight = *in.BackgroundHeight
	}
	if err := s.validate(m, in.Fields == nil); err != nil {
		return nil, err
	}

	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}
	log.Printf("[INFO] certificate template created id=%s language=%s", m.ID, m.Language)
	return m, nil
}

func (s *TemplateService) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*model.CertificateTemplateModel, error) {
	var out model.CertificateTemplateModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := lockTemplate(tx, id)
		if err != nil {
			return err
		}

		lang := constants.NormalizeLanguage(in.Language)
		if m.IsDefault && lang != m.Language {
			return certerr.Validation(
				"Cannot change the language of a default template; make another template the default first",
				"لا يمكن تغيير لغة القالب الافتراضي؛ اجعل قالبًا آخر افتراضيًا أولًا",
			)
		}

		m.Name = strings.TrimSpace(in.Name)
		m.Language = lang
		m.BackgroundImage = strings.TrimSpace(in.BackgroundImage)
		if in.BackgroundWidth != nil {
			m.BackgroundWidth = *in.BackgroundWidth
		}
		if in.BackgroundHeight != nil {
			m.BackgroundHeight = *in.BackgroundHeight
		}
		m.Fields = datatypes.JSONSlice[model.Field](in.Fields)
		if in.IsActive != nil {
			m.IsActive = *in.IsActive
		}
		if err := s.validate(m, in.Fields == nil); err != nil {
			return err
		}

		if err := tx.Save(m).Error; err != nil {
			return fmt.Errorf("update template: %w", err)
		}
		out = *m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Patch is the only operation that changes is_default. Promoting a template
// demotes the other default of its language in the same transaction; demoting
// the last default of a language (directly or by moving it to another
// language) is rejected and nothing is written.
func (s *TemplateService) Patch(ctx context.Context, id uuid.UUID, in PatchInput) (*model.CertificateTemplateModel, error) {
	var out model.CertificateTemplateModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := lockTemplate(tx, id)
		if err != nil {
			return err
		}
		oldLang, wasDefault := m.Language, m.IsDefault

		if in.Name != nil {
			m.Name = strings.TrimSpace(*in.Name)
		}
		if in.Language != nil {
			m.Language = constants.NormalizeLanguage(*in.Language)
		}
		if in.BackgroundImage != nil {
			m.BackgroundImage = strings.TrimSpace(*in.BackgroundImage)
		}
		if in.BackgroundWidth != nil {
			m.BackgroundWidth = *in.BackgroundWidth
		}
		if in.BackgroundHeight != nil {
			m.BackgroundHeight = *in.BackgroundHeight
		}
		if in.Fields != nil {
			m.Fields = datatypes.JSONSlice[model.Field](*in.Fields)
		}
		if in.IsActive != nil {
			m.IsActive = *in.IsActive
		}
		if err := s.validate(m, false); err != nil {
			return err
		}

		willBeDefault := wasDefault
		if in.IsDefault != nil {
			willBeDefault = *in.IsDefault
		}

		if wasDefault && (!willBeDefault || m.Language != oldLang) {
			others, err := countOtherDefaults(tx, oldLang, id)
			if err != nil {
				return err
			}
			if others == 0 {
				return lastDefaultError(oldLang)
			}
		}

		if willBeDefault && (!wasDefault || m.Language != oldLang) {
			if err := demoteDefaults(tx, m.Language, id); err != nil {
				return err
			}
			metrics.TemplateDefaultChanges.WithLabelValues(m.Language).Inc()
			log.Printf("[INFO] certificate template %s is now default for %s", id, m.Language)
		}
		m.IsDefault = willBeDefault

		if err := tx.Save(m).Error; err != nil {
			return fmt.Errorf("patch template: %w", err)
		}
		out = *m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a template. The only default of a language cannot be deleted;
// promote another template first.
func (s *TemplateService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := lockTemplate(tx, id)
		if err != nil {
			return err
		}
		if m.IsDefault {
			others, err := countOtherDefaults(tx, m.Language, id)
			if err != nil {
				return err
			}
			if others == 0 {
				return certerr.Validation(
					fmt.Sprintf("Cannot delete the only default template for %s; make another template the default first",
						constants.LanguageName(m.Language, false)),
					fmt.Sprintf("لا يمكن حذف القالب الافتراضي الوحيد للغة %s؛ اجعل قالبًا آخر افتراضيًا أولًا",
						constants.LanguageName(m.Language, true)),
				)
			}
		}
		if err := tx.Delete(&model.CertificateTemplateModel{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("delete template: %w", err)
		}
		log.Printf("[INFO] certificate template deleted id=%s", id)
		return nil
	})
}

// UpdateField replaces one field (matched by id) after validation.
func (s *TemplateService) UpdateField(ctx context.Context, id uuid.UUID, field model.Field) (*model.CertificateTemplateModel, error) {
	var out model.CertificateTemplateModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := lockTemplate(tx, id)
		if err != nil {
			return err
		}
		target := m.FieldByID(field.ID)
		if target == nil {
			return certerr.NotFound(
				fmt.Sprintf("Field %q not found in template", field.ID),
				fmt.Sprintf("الحقل %q غير موجود في القالب", field.ID),
			)
		}
		*target = field
		if err := s.validate(m, false); err != nil {
			return err
		}
		if err := tx.Model(m).Update("fields", m.Fields).Error; err != nil {
			return fmt.Errorf("update template field: %w", err)
		}
		out = *m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

/* =========================
   Helpers
   ========================= */

func lockTemplate(tx *gorm.DB, id uuid.UUID) (*model.CertificateTemplateModel, error) {
	var m model.CertificateTemplateModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&m, "id = ?", id).Error
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &m, nil
}

func countOtherDefaults(tx *gorm.DB, lang string, excludeID uuid.UUID) (int64, error) {
	var n int64
	err := tx.Model(&model.CertificateTemplateModel{}).
		Where("language = ? AND is_default = ? AND id <> ?", lang, true, excludeID).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count default templates: %w", err)
	}
	return n, nil
}

// demoteDefaults unsets every default of lang except keepID. Rows are locked
// first so concurrent promotions in the same language serialize.
func demoteDefaults(tx *gorm.DB, lang string, keepID uuid.UUID) error {
	var ids []uuid.UUID
	if err := tx.Model(&model.CertificateTemplateModel{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("language = ? AND is_default = ? AND id <> ?", lang, true, keepID).
		Pluck("id", &ids).Error; err != nil {
		return fmt.Errorf("lock default templates: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Model(&model.CertificateTemplateModel{}).
		Where("id IN ?", ids).
		Update("is_default", false).Error; err != nil {
		return fmt.Errorf("unset default templates: %w", err)
	}
	return nil
}

func lastDefaultError(lang string) error {
	return certerr.Validation(
		fmt.Sprintf("Cannot unset the only default template for %s (%s); make another template the default first",
			constants.LanguageName(lang, false), lang),
		fmt.Sprintf("لا يمكن إلغاء القالب الافتراضي الوحيد للغة %s؛ اجعل قالبًا آخر افتراضيًا أولًا",
			constants.LanguageName(lang, true)),
	)
}

func (s *TemplateService) validate(m *model.CertificateTemplateModel, fieldsMissing bool) error {
	var problems []string
	if m.Name == "" {
		problems = append(problems, "name is required")
	}
	if m.Language == "" {
		problems = append(problems, "language is required")
	} else if !constants.IsSupportedLanguage(m.Language) {
		problems = append(problems, fmt.Sprintf("language %q is not supported (ar, en)", m.Language))
	}
	if m.BackgroundImage == "" {
		problems = append(problems, "background_image is required")
	}
	if m.BackgroundWidth <= 0 || m.BackgroundHeight <= 0 {
		problems = append(problems, "background_width and background_height must be greater than 0")
	}
	if fieldsMissing {
		problems = append(problems, "fields is required")
	}
	problems = append(problems, model.ValidateFields(s.Validate, m.Fields)...)

	if len(problems) == 0 {
		return nil
	}
	return certerr.Validation(
		"Invalid certificate template: "+strings.Join(problems, "; "),
		"بيانات قالب الشهادة غير صالحة: "+strings.Join(problems, "; "),
	)
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return certerr.NotFound("Certificate template not found", "قالب الشهادة غير موجود")
	}
	return fmt.Errorf("load template: %w", err)
}
