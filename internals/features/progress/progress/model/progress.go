package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	enrollmentModel "academy_backend/internals/features/courses/enrollments/model"
)

// LessonProgressModel: progres satu lesson untuk satu user.
// Dihapus bersama enrollment-nya.
type LessonProgressModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_lesson_progress_user_lesson" json:"user_id"`
	LessonID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_lesson_progress_user_lesson" json:"lesson_id"`
	EnrollmentID  uuid.UUID  `gorm:"type:uuid;not null;index:idx_lesson_progress_enrollment" json:"enrollment_id"`
	WatchedTime   int        `gorm:"not null;default:0" json:"watched_time"`
	IsCompleted   bool       `gorm:"not null;default:false" json:"is_completed"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	LastWatchedAt time.Time  `json:"last_watched_at"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Enrollment *enrollmentModel.CourseEnrollmentModel `gorm:"foreignKey:EnrollmentID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (LessonProgressModel) TableName() string {
	return "lesson_progress"
}

func (m *LessonProgressModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.LastWatchedAt.IsZero() {
		m.LastWatchedAt = time.Now()
	}
	return nil
}
