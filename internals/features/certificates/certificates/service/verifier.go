package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"academy_backend/internals/constants"
	"academy_backend/internals/features/certificates/certificates/model"
	tplModel "academy_backend/internals/features/certificates/templates/model"
	"academy_backend/internals/metrics"
)

// VerifiedCertificate is the public view of a certificate. It carries no
// internal ids and no contact data.
type VerifiedCertificate struct {
	CertificateID string     `json:"certificate_id"`
	IssuedAt      time.Time  `json:"issued_at"`
	StudentName   string     `json:"student_name"`
	CourseTitle   string     `json:"course_title"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	Duration      string     `json:"duration,omitempty"`
	Instructor    string     `json:"instructor,omitempty"`
	Language      string     `json:"language"`
}

type VerifyResult struct {
	Valid       bool                 `json:"valid"`
	Certificate *VerifiedCertificate `json:"certificate,omitempty"`
}

type Verifier struct {
	DB *gorm.DB
}

func NewVerifier(db *gorm.DB) *Verifier {
	return &Verifier{DB: db}
}

// Verify looks up a certificate by its public id. A miss is a normal answer
// (Valid=false), not an error.
func (v *Verifier) Verify(ctx context.Context, certificateID string) (*VerifyResult, error) {
	certificateID = strings.TrimSpace(certificateID)
	if certificateID == "" {
		metrics.CertificateVerifications.WithLabelValues("not_found").Inc()
		return &VerifyResult{Valid: false}, nil
	}

	db := v.DB.WithContext(ctx)
	var cert model.CertificateModel
	err := db.Preload("User").
		Preload("Enrollment.Course").
		Where("certificate_id = ?", certificateID).
		Take(&cert).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		metrics.CertificateVerifications.WithLabelValues("not_found").Inc()
		return &VerifyResult{Valid: false}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("verify certificate: %w", err)
	}

	snap := cert.Data.Data()
	out := &VerifiedCertificate{
		CertificateID: cert.CertificateID,
		IssuedAt:      cert.CreatedAt,
		StudentName:   snap.StudentName,
		CourseTitle:   snap.CourseTitle,
		Duration:      snap.Duration,
		Instructor:    snap.Instructor,
		Language:      v.templateLanguage(db, cert, snap.Language),
	}

	if cert.Enrollment != nil {
		out.CompletedAt = cert.Enrollment.CompletedAt
		if c := cert.Enrollment.Course; c != nil {
			lang := ResolveLanguage("", c.Language)
			out.CourseTitle = CourseTitle(c, lang)
			out.Duration = CourseDuration(c, lang)
			out.Instructor = Instructor(c, lang)
			if name := PublicStudentName(cert.User, lang); name != "" {
				out.StudentName = name
			}
		}
	}
	// snapshot name bisa berupa email (fallback terakhir saat generate)
	if cert.User != nil && strings.EqualFold(strings.TrimSpace(out.StudentName), strings.TrimSpace(cert.User.Email)) {
		out.StudentName = ""
	}

	metrics.CertificateVerifications.WithLabelValues("valid").Inc()
	return &VerifyResult{Valid: true, Certificate: out}, nil
}

// Exists reports whether certificateID was issued.
func (v *Verifier) Exists(ctx context.Context, certificateID string) (bool, error) {
	var n int64
	err := v.DB.WithContext(ctx).Model(&model.CertificateModel{}).
		Where("certificate_id = ?", strings.TrimSpace(certificateID)).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("check certificate: %w", err)
	}
	return n > 0, nil
}

func (v *Verifier) templateLanguage(db *gorm.DB, cert model.CertificateModel, fallback string) string {
	if cert.TemplateID != nil {
		var tpl tplModel.CertificateTemplateModel
		if err := db.Select("language").Take(&tpl, "id = ?", *cert.TemplateID).Error; err == nil {
			return tpl.Language
		}
	}
	if constants.IsSupportedLanguage(fallback) {
		return fallback
	}
	return constants.DefaultLanguage
}
