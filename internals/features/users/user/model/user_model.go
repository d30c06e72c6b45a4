package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel merepresentasikan tabel users. Akun dibuat oleh layanan auth;
// modul sertifikat hanya membaca nama dan status aktif.
type UserModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email           string    `gorm:"size:255;unique;not null" json:"email"`
	FirstName       string    `gorm:"size:100" json:"first_name"`
	LastName        *string   `gorm:"size:100" json:"last_name,omitempty"`
	FullNameArabic  *string   `gorm:"size:255" json:"full_name_arabic,omitempty"`
	FullNameEnglish *string   `gorm:"size:255" json:"full_name_english,omitempty"`
	Role            string    `gorm:"type:varchar(20);not null;default:'user'" json:"-"`
	IsActive        bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = "user"
	}
	return nil
}

// FullName: nama lengkap sesuai bahasa (ar → full_name_arabic, lainnya → full_name_english).
func (u *UserModel) FullName(lang string) string {
	var v *string
	if lang == "ar" {
		v = u.FullNameArabic
	} else {
		v = u.FullNameEnglish
	}
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}

// GivenName: "first last", tanpa spasi ganda kalau last kosong.
func (u *UserModel) GivenName() string {
	last := ""
	if u.LastName != nil {
		last = *u.LastName
	}
	return strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(last))
}
