package dto

import (
	"time"

	"github.com/google/uuid"

	"academy_backend/internals/features/certificates/certificates/model"
)

/* =========================================================
   REQUEST
   ========================================================= */

// GenerateCertificateRequest: salah satu dari enrollment_id / course_id wajib.
type GenerateCertificateRequest struct {
	EnrollmentID *uuid.UUID `json:"enrollment_id"`
	CourseID     *uuid.UUID `json:"course_id"`
	Language     string     `json:"language" validate:"omitempty,max=10"`
}

type ListCertificatesQuery struct {
	UserID   *uuid.UUID `query:"user_id"`
	Language string     `query:"language"`
}

/* =========================================================
   RESPONSE
   ========================================================= */

type GenerateCertificateResponse struct {
	CertificateID string `json:"certificate_id"`
	DownloadURL   string `json:"download_url"`
	VerifyURL     string `json:"verify_url"`
}

// CertificateResponse: tampilan admin, termasuk id internal.
type CertificateResponse struct {
	ID            uuid.UUID             `json:"id"`
	CertificateID string                `json:"certificate_id"`
	TemplateID    *uuid.UUID            `json:"template_id,omitempty"`
	UserID        uuid.UUID             `json:"user_id"`
	EnrollmentID  uuid.UUID             `json:"enrollment_id"`
	Data          model.CertificateData `json:"data"`
	CreatedAt     time.Time             `json:"created_at"`
}

func FromModel(m model.CertificateModel) CertificateResponse {
	return CertificateResponse{
		ID:            m.ID,
		CertificateID: m.CertificateID,
		TemplateID:    m.TemplateID,
		UserID:        m.UserID,
		EnrollmentID:  m.EnrollmentID,
		Data:          m.Data.Data(),
		CreatedAt:     m.CreatedAt,
	}
}

func FromModels(rows []model.CertificateModel) []CertificateResponse {
	out := make([]CertificateResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}

// DownloadPath: path relatif endpoint download publik.
func DownloadPath(certificateID string) string {
	return "/api/public/certificates/" + certificateID + "/download"
}
