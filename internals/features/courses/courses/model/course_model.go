package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourseModel: tabel courses. CRUD course ada di layanan lain; kolom di sini
// adalah yang dibaca oleh generator sertifikat.
type CourseModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title             string    `gorm:"type:text;not null" json:"title"`
	TitleEnglish      *string   `gorm:"type:text" json:"title_english,omitempty"`
	AuthorName        *string   `gorm:"size:255" json:"author_name,omitempty"`
	AuthorNameEnglish *string   `gorm:"size:255" json:"author_name_english,omitempty"`
	Language          string    `gorm:"type:varchar(2);not null;default:'ar'" json:"language"`

	// durasi: structured (value + unit) diutamakan, Duration = teks bebas lama
	Duration      *string  `gorm:"size:100" json:"duration,omitempty"`
	DurationValue *float64 `json:"duration_value,omitempty"`
	DurationUnit  *string  `gorm:"size:20" json:"duration_unit,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (CourseModel) TableName() string {
	return "courses"
}

func (m *CourseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if strings.TrimSpace(m.Language) == "" {
		m.Language = "ar"
	}
	return nil
}
