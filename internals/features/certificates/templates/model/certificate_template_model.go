package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DefaultBackgroundWidth  = 2480
	DefaultBackgroundHeight = 3508
)

// CertificateTemplateModel: background + field layout untuk satu bahasa.
// Per bahasa hanya boleh ada satu is_default=true (dijaga service, partial unique index sebagai pengaman).
type CertificateTemplateModel struct {
	ID               uuid.UUID                  `gorm:"type:uuid;primaryKey" json:"id"`
	Name             string                     `gorm:"type:text;not null" json:"name"`
	Language         string                     `gorm:"type:varchar(2);not null;index:idx_certificate_templates_language;uniqueIndex:uq_certificate_templates_default_language,where:is_default = true" json:"language"`
	BackgroundImage  string                     `gorm:"type:text;not null" json:"background_image"`
	BackgroundWidth  int                        `gorm:"not null" json:"background_width"`
	BackgroundHeight int                        `gorm:"not null" json:"background_height"`
	Fields           datatypes.JSONSlice[Field] `gorm:"not null" json:"fields"`
	IsActive         bool                       `gorm:"not null" json:"is_active"`
	IsDefault        bool                       `gorm:"not null;default:false" json:"is_default"`
	CreatedAt        time.Time                  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time                  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (CertificateTemplateModel) TableName() string {
	return "certificate_templates"
}

func (m *CertificateTemplateModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.BackgroundWidth <= 0 {
		m.BackgroundWidth = DefaultBackgroundWidth
	}
	if m.BackgroundHeight <= 0 {
		m.BackgroundHeight = DefaultBackgroundHeight
	}
	if m.Fields == nil {
		m.Fields = datatypes.JSONSlice[Field]{}
	}
	return nil
}

// FieldByID: pointer ke field di slice (bisa dimodifikasi), nil kalau tidak ada.
func (m *CertificateTemplateModel) FieldByID(id string) *Field {
	for i := range m.Fields {
		if m.Fields[i].ID == id {
			return &m.Fields[i]
		}
	}
	return nil
}
