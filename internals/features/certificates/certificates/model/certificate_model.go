package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	enrollmentModel "academy_backend/internals/features/courses/enrollments/model"
	userModel "academy_backend/internals/features/users/user/model"
)

// CertificateData: snapshot teks yang dirender ke template saat sertifikat terbit.
type CertificateData struct {
	StudentName    string `json:"student_name"`
	CourseTitle    string `json:"course_title"`
	CompletionDate string `json:"completion_date"`
	Duration       string `json:"duration,omitempty"`
	Instructor     string `json:"instructor,omitempty"`
	CertificateID  string `json:"certificate_id"`
	Language       string `json:"language"`
}

// CertificateModel is immutable after insert. It is removed only together with
// its enrollment. (user_id, enrollment_id) is unique so concurrent generators
// for the same enrollment collapse into one row.
type CertificateModel struct {
	ID            uuid.UUID                           `gorm:"type:uuid;primaryKey" json:"-"`
	CertificateID string                              `gorm:"size:64;not null;uniqueIndex:uq_certificates_certificate_id" json:"certificate_id"`
	TemplateID    *uuid.UUID                          `gorm:"type:uuid" json:"template_id,omitempty"`
	UserID        uuid.UUID                           `gorm:"type:uuid;not null;uniqueIndex:uq_certificates_user_enrollment" json:"user_id"`
	EnrollmentID  uuid.UUID                           `gorm:"type:uuid;not null;uniqueIndex:uq_certificates_user_enrollment" json:"enrollment_id"`
	Data          datatypes.JSONType[CertificateData] `gorm:"not null" json:"data"`
	CreatedAt     time.Time                           `gorm:"autoCreateTime" json:"created_at"`

	User       *userModel.UserModel                   `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Enrollment *enrollmentModel.CourseEnrollmentModel `gorm:"foreignKey:EnrollmentID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (CertificateModel) TableName() string {
	return "certificates"
}

func (m *CertificateModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
