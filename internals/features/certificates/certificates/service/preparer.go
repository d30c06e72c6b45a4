package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"academy_backend/internals/constants"
	"academy_backend/internals/features/certificates/certerr"
	"academy_backend/internals/features/certificates/certificates/model"
	"academy_backend/internals/features/certificates/layout"
	tplModel "academy_backend/internals/features/certificates/templates/model"
	tplService "academy_backend/internals/features/certificates/templates/service"
)

type TemplatePayload struct {
	ID               uuid.UUID        `json:"id"`
	Name             string           `json:"name"`
	Language         string           `json:"language"`
	BackgroundImage  string           `json:"background_image"`
	BackgroundWidth  int              `json:"background_width"`
	BackgroundHeight int              `json:"background_height"`
	Fields           []tplModel.Field `json:"fields"`
}

// DownloadPayload is everything a client renderer needs to draw a certificate.
type DownloadPayload struct {
	CertificateID string                `json:"certificate_id"`
	Language      string                `json:"language"`
	Template      TemplatePayload       `json:"template"`
	Data          model.CertificateData `json:"data"`
	Layout        []layout.PlacedField  `json:"layout"`
	VerifyURL     string                `json:"verify_url,omitempty"`
}

type Preparer struct {
	DB       *gorm.DB
	Measurer layout.Measurer
	// VerifyURL builds the public verification link; nil leaves it empty.
	VerifyURL func(certificateID string) string
}

func NewPreparer(db *gorm.DB, m layout.Measurer, verifyURL func(string) string) *Preparer {
	if m == nil {
		m = layout.Default()
	}
	return &Preparer{DB: db, Measurer: m, VerifyURL: verifyURL}
}

// Prepare rebuilds the display data from the live user and course rows and
// the current default template of lang (unsupported values fall back to ar).
// The stored snapshot only supplies the certificate id.
func (p *Preparer) Prepare(ctx context.Context, certificateID, lang string) (*DownloadPayload, error) {
	lang = constants.NormalizeLanguage(lang)
	if !constants.IsSupportedLanguage(lang) {
		lang = constants.DefaultLanguage
	}

	var cert model.CertificateModel
	err := p.DB.WithContext(ctx).
		Preload("User").
		Preload("Enrollment.Course").
		Where("certificate_id = ?", strings.TrimSpace(certificateID)).
		Take(&cert).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, certerr.NotFound("Certificate not found", "الشهادة غير موجودة")
	}
	if err != nil {
		return nil, fmt.Errorf("load certificate: %w", err)
	}

	tpl, err := tplService.FindDefaultActive(ctx, p.DB, lang)
	if err != nil {
		return nil, err
	}

	var data model.CertificateData
	if cert.Enrollment != nil && cert.Enrollment.Course != nil && cert.User != nil {
		data = BuildData(cert.User, cert.Enrollment.Course, cert.Enrollment.CompletedAt, cert.CreatedAt, lang, cert.CertificateID)
	} else {
		// collaborator rows gone; fall back to the frozen snapshot
		data = cert.Data.Data()
		data.CertificateID = cert.CertificateID
		data.Language = lang
	}

	fields := []tplModel.Field(tpl.Fields)
	if fields == nil {
		fields = []tplModel.Field{}
	}
	out := &DownloadPayload{
		CertificateID: cert.CertificateID,
		Language:      lang,
		Template: TemplatePayload{
			ID:               tpl.ID,
			Name:             tpl.Name,
			Language:         tpl.Language,
			BackgroundImage:  tpl.BackgroundImage,
			BackgroundWidth:  tpl.BackgroundWidth,
			BackgroundHeight: tpl.BackgroundHeight,
			Fields:           fields,
		},
		Data:   data,
		Layout: layout.PlaceAll(fields, data, p.Measurer),
	}
	if p.VerifyURL != nil {
		out.VerifyURL = p.VerifyURL(cert.CertificateID)
	}
	return out, nil
}
