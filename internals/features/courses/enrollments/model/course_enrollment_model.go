package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	courseModel "academy_backend/internals/features/courses/courses/model"
	userModel "academy_backend/internals/features/users/user/model"
)

type CourseEnrollmentModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_course_enrollments_user_course" json:"user_id"`
	CourseID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_course_enrollments_user_course;index:idx_course_enrollments_course" json:"course_id"`
	Progress    float64    `gorm:"not null;default:0" json:"progress"`
	IsCompleted bool       `gorm:"not null;default:false" json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	User   *userModel.UserModel     `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Course *courseModel.CourseModel `gorm:"foreignKey:CourseID;references:ID;constraint:OnDelete:CASCADE" json:"course,omitempty"`
}

func (CourseEnrollmentModel) TableName() string {
	return "course_enrollments"
}

func (m *CourseEnrollmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// IsFinished: selesai kalau flag completed atau progress sudah 100.
func (m *CourseEnrollmentModel) IsFinished() bool {
	return m.IsCompleted || m.Progress >= 100
}
