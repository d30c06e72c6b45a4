// file: internals/features/certificates/templates/dto/certificate_template_dto.go
package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"academy_backend/internals/features/certificates/templates/model"
	"academy_backend/internals/features/certificates/templates/service"
)

/* =========================
   Requests
   ========================= */

// Fields diterima dalam bentuk array atau format objek lama; parsing di ToInput.
type CreateCertificateTemplateRequest struct {
	Name             string          `json:"name"`
	Language         string          `json:"language"`
	BackgroundImage  string          `json:"background_image"`
	BackgroundWidth  *int            `json:"background_width"`
	BackgroundHeight *int            `json:"background_height"`
	Fields           json.RawMessage `json:"fields"`
}

func (r CreateCertificateTemplateRequest) ToInput() (service.CreateInput, error) {
	fields, err := model.ParseFields(r.Fields)
	if err != nil {
		return service.CreateInput{}, err
	}
	return service.CreateInput{
		Name:             r.Name,
		Language:         r.Language,
		BackgroundImage:  r.BackgroundImage,
		BackgroundWidth:  r.BackgroundWidth,
		BackgroundHeight: r.BackgroundHeight,
		Fields:           fields,
	}, nil
}

type UpdateCertificateTemplateRequest struct {
	Name             string          `json:"name"`
	Language         string          `json:"language"`
	BackgroundImage  string          `json:"background_image"`
	BackgroundWidth  *int            `json:"background_width"`
	BackgroundHeight *int            `json:"background_height"`
	Fields           json.RawMessage `json:"fields"`
	IsActive         *bool           `json:"is_active"`
}

func (r UpdateCertificateTemplateRequest) ToInput() (service.UpdateInput, error) {
	fields, err := model.ParseFields(r.Fields)
	if err != nil {
		return service.UpdateInput{}, err
	}
	return service.UpdateInput{
		Name:             r.Name,
		Language:         r.Language,
		BackgroundImage:  r.BackgroundImage,
		BackgroundWidth:  r.BackgroundWidth,
		BackgroundHeight: r.BackgroundHeight,
		Fields:           fields,
		IsActive:         r.IsActive,
	}, nil
}

type PatchCertificateTemplateRequest struct {
	Name             *string         `json:"name"`
	Language         *string         `json:"language"`
	BackgroundImage  *string         `json:"background_image"`
	BackgroundWidth  *int            `json:"background_width"`
	BackgroundHeight *int            `json:"background_height"`
	Fields           json.RawMessage `json:"fields"`
	IsActive         *bool           `json:"is_active"`
	IsDefault        *bool           `json:"is_default"`
}

func (r PatchCertificateTemplateRequest) ToInput() (service.PatchInput, error) {
	in := service.PatchInput{
		Name:             r.Name,
		Language:         r.Language,
		BackgroundImage:  r.BackgroundImage,
		BackgroundWidth:  r.BackgroundWidth,
		BackgroundHeight: r.BackgroundHeight,
		IsActive:         r.IsActive,
		IsDefault:        r.IsDefault,
	}
	fields, err := model.ParseFields(r.Fields)
	if err != nil {
		return in, err
	}
	if fields != nil {
		in.Fields = &fields
	}
	return in, nil
}

type ListCertificateTemplatesQuery struct {
	Language  *string `query:"language"`
	IsActive  *bool   `query:"is_active"`
	IsDefault *bool   `query:"is_default"`
}

type TransformFieldRequest struct {
	ScaleX float64 `json:"scale_x" validate:"required,gt=0"`
	ScaleY float64 `json:"scale_y" validate:"required,gt=0"`
}

/* =========================
   Responses
   ========================= */

type CertificateTemplateResponse struct {
	ID               uuid.UUID     `json:"id"`
	Name             string        `json:"name"`
	Language         string        `json:"language"`
	BackgroundImage  string        `json:"background_image"`
	BackgroundWidth  int           `json:"background_width"`
	BackgroundHeight int           `json:"background_height"`
	Fields           []model.Field `json:"fields"`
	IsActive         bool          `json:"is_active"`
	IsDefault        bool          `json:"is_default"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

func FromModel(m *model.CertificateTemplateModel) CertificateTemplateResponse {
	fields := []model.Field(m.Fields)
	if fields == nil {
		fields = []model.Field{}
	}
	return CertificateTemplateResponse{
		ID:               m.ID,
		Name:             m.Name,
		Language:         m.Language,
		BackgroundImage:  m.BackgroundImage,
		BackgroundWidth:  m.BackgroundWidth,
		BackgroundHeight: m.BackgroundHeight,
		Fields:           fields,
		IsActive:         m.IsActive,
		IsDefault:        m.IsDefault,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func FromModels(rows []model.CertificateTemplateModel) []CertificateTemplateResponse {
	out := make([]CertificateTemplateResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}
