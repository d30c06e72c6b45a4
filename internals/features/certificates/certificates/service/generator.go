// file: internals/features/certificates/certificates/service/generator.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"academy_backend/internals/features/certificates/certerr"
	"academy_backend/internals/features/certificates/certificates/model"
	tplService "academy_backend/internals/features/certificates/templates/service"
	enrollmentModel "academy_backend/internals/features/courses/enrollments/model"
	helper "academy_backend/internals/helpers"
	"academy_backend/internals/metrics"
)

// maxIDAttempts bounds retries when a fresh certificate_id collides.
const maxIDAttempts = 3

type Generator struct {
	DB    *gorm.DB
	Now   func() time.Time
	NewID func(now time.Time) string
}

func NewGenerator(db *gorm.DB) *Generator {
	return &Generator{DB: db, Now: time.Now, NewID: NewCertificateID}
}

// NewCertificateID returns "CERT-<base36 unix millis>-<8 random hex>", uppercase.
func NewCertificateID(now time.Time) string {
	ts := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	rnd := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "CERT-" + ts + "-" + rnd
}

// Generate issues the certificate of a completed enrollment and returns its
// public id. Calling it again for the same enrollment returns the same id,
// including when two calls race: the loser hits the (user_id, enrollment_id)
// unique index and reads the winner's row.
func (g *Generator) Generate(ctx context.Context, enrollmentID uuid.UUID, preferredLanguage string) (string, error) {
	db := g.DB.WithContext(ctx)

	var enr enrollmentModel.CourseEnrollmentModel
	err := db.Preload("User").Preload("Course").First(&enr, "id = ?", enrollmentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && (enr.User == nil || enr.Course == nil)) {
		metrics.CertificateGenerationFailures.WithLabelValues("not_found").Inc()
		return "", certerr.NotFound("Enrollment not found", "التسجيل غير موجود")
	}
	if err != nil {
		return "", fmt.Errorf("load enrollment: %w", err)
	}

	if !enr.IsFinished() {
		metrics.CertificateGenerationFailures.WithLabelValues("not_eligible").Inc()
		return "", certerr.NotEligible(
			"Course is not completed yet; a certificate is issued after completion",
			"لم يكتمل المقرر بعد؛ تصدر الشهادة بعد الإتمام",
		)
	}

	lang := ResolveLanguage(preferredLanguage, enr.Course.Language)
	if id, ok, err := g.existing(db, enr.UserID, enr.ID); err != nil {
		return "", err
	} else if ok {
		metrics.CertificatesGenerated.WithLabelValues(lang, "existing").Inc()
		return id, nil
	}

	tpl, err := tplService.FindDefaultActive(ctx, g.DB, lang)
	if err != nil {
		if errors.Is(err, certerr.ErrTemplateNotFound) {
			metrics.CertificateGenerationFailures.WithLabelValues("template_missing").Inc()
			log.Printf("[ERROR] no default certificate template for language=%s enrollment=%s", lang, enr.ID)
		}
		return "", err
	}

	now := g.Now()
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		certID := g.NewID(now)
		row := model.CertificateModel{
			CertificateID: certID,
			TemplateID:    &tpl.ID,
			UserID:        enr.UserID,
			EnrollmentID:  enr.ID,
			Data:          datatypes.NewJSONType(BuildData(enr.User, enr.Course, enr.CompletedAt, now, lang, certID)),
		}

		err := db.Create(&row).Error
		if err == nil {
			metrics.CertificatesGenerated.WithLabelValues(lang, "created").Inc()
			log.Printf("[INFO] certificate issued id=%s enrollment=%s language=%s", certID, enr.ID, lang)
			return certID, nil
		}
		if !helper.IsUniqueViolation(err) {
			metrics.CertificateGenerationFailures.WithLabelValues("error").Inc()
			return "", fmt.Errorf("insert certificate: %w", err)
		}

		// violation: either a concurrent insert for this enrollment won, or the id collided
		if id, ok, ferr := g.existing(db, enr.UserID, enr.ID); ferr != nil {
			return "", ferr
		} else if ok {
			metrics.CertificatesGenerated.WithLabelValues(lang, "existing").Inc()
			return id, nil
		}
		log.Printf("[WARN] certificate id collision on %s, retrying", certID)
		now = g.Now()
	}

	metrics.CertificateGenerationFailures.WithLabelValues("error").Inc()
	return "", fmt.Errorf("could not allocate a unique certificate id after %d attempts", maxIDAttempts)
}

// GenerateForCourse resolves the caller's enrollment in courseID first.
func (g *Generator) GenerateForCourse(ctx context.Context, userID, courseID uuid.UUID, preferredLanguage string) (string, error) {
	var enr enrollmentModel.CourseEnrollmentModel
	err := g.DB.WithContext(ctx).Select("id").
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&enr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", certerr.NotFound("Enrollment not found for this course", "لا يوجد تسجيل في هذا المقرر")
	}
	if err != nil {
		return "", fmt.Errorf("load enrollment: %w", err)
	}
	return g.Generate(ctx, enr.ID, preferredLanguage)
}

func (g *Generator) existing(db *gorm.DB, userID, enrollmentID uuid.UUID) (string, bool, error) {
	var row model.CertificateModel
	err := db.Select("certificate_id").
		Where("user_id = ? AND enrollment_id = ?", userID, enrollmentID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load existing certificate: %w", err)
	}
	return row.CertificateID, true, nil
}
