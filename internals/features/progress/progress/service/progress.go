package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"academy_backend/internals/features/certificates/certerr"
	enrollmentModel "academy_backend/internals/features/courses/enrollments/model"
	lessonModel "academy_backend/internals/features/courses/lessons/model"
	"academy_backend/internals/features/progress/progress/model"
)

var ErrNotEnrolled = errors.New("not enrolled in this course")

// CertificateIssuer dipanggil saat enrollment mencapai 100%.
type CertificateIssuer interface {
	Generate(ctx context.Context, enrollmentID uuid.UUID, preferredLanguage string) (string, error)
}

type UpdateLessonInput struct {
	WatchedTime *int
	IsCompleted *bool
}

type LessonUpdateResult struct {
	Progress        model.LessonProgressModel `json:"progress"`
	CourseProgress  float64                   `json:"course_progress"`
	CourseCompleted bool                      `json:"course_completed"`
	CertificateID   string                    `json:"certificate_id,omitempty"`
}

type ProgressService struct {
	DB     *gorm.DB
	Issuer CertificateIssuer
	Now    func() time.Time
}

func NewProgressService(db *gorm.DB, issuer CertificateIssuer) *ProgressService {
	return &ProgressService{DB: db, Issuer: issuer, Now: time.Now}
}

// Get: nil kalau user belum pernah membuka lesson ini.
func (s *ProgressService) Get(ctx context.Context, userID, lessonID uuid.UUID) (*model.LessonProgressModel, error) {
	var row model.LessonProgressModel
	err := s.DB.WithContext(ctx).Where("user_id = ? AND lesson_id = ?", userID, lessonID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load lesson progress: %w", err)
	}
	return &row, nil
}

// UpdateLesson upserts the caller's lesson progress. Completing a lesson
// recomputes the enrollment and, at 100%, asks the issuer for a certificate.
// Issuer failures are logged only; the progress update still succeeds.
func (s *ProgressService) UpdateLesson(ctx context.Context, userID, lessonID uuid.UUID, in UpdateLessonInput) (*LessonUpdateResult, error) {
	db := s.DB.WithContext(ctx)

	var lesson lessonModel.LessonModel
	if err := db.Select("id", "course_id").Take(&lesson, "id = ?", lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, certerr.NotFound("Lesson not found", "الدرس غير موجود")
		}
		return nil, fmt.Errorf("load lesson: %w", err)
	}

	var enr enrollmentModel.CourseEnrollmentModel
	err := db.Select("id", "user_id", "course_id").
		Where("user_id = ? AND course_id = ?", userID, lesson.CourseID).
		Take(&enr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotEnrolled
	}
	if err != nil {
		return nil, fmt.Errorf("load enrollment: %w", err)
	}

	now := s.Now()
	seed := model.LessonProgressModel{UserID: userID, LessonID: lessonID, EnrollmentID: enr.ID, LastWatchedAt: now}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoNothing: true,
	}).Create(&seed).Error; err != nil {
		return nil, fmt.Errorf("insert lesson progress: %w", err)
	}
	// seed.ID bisa id baru yang tidak pernah tersimpan (conflict); baca ulang ke variabel kosong
	var row model.LessonProgressModel
	if err := db.Where("user_id = ? AND lesson_id = ?", userID, lessonID).Take(&row).Error; err != nil {
		return nil, fmt.Errorf("reload lesson progress: %w", err)
	}

	updates := map[string]any{"last_watched_at": now}
	if in.WatchedTime != nil {
		updates["watched_time"] = *in.WatchedTime
	}
	if in.IsCompleted != nil {
		updates["is_completed"] = *in.IsCompleted
		if *in.IsCompleted && row.CompletedAt == nil {
			updates["completed_at"] = now
		}
	}
	if err := db.Model(&row).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update lesson progress: %w", err)
	}
	if err := db.Take(&row, "id = ?", row.ID).Error; err != nil {
		return nil, fmt.Errorf("reload lesson progress: %w", err)
	}

	out := &LessonUpdateResult{Progress: row}
	if in.IsCompleted == nil || !*in.IsCompleted {
		return out, nil
	}

	pct, done, err := s.RecomputeEnrollment(ctx, enr.ID, lesson.CourseID)
	if err != nil {
		return nil, err
	}
	out.CourseProgress, out.CourseCompleted = pct, done
	if done && s.Issuer != nil {
		certID, err := s.Issuer.Generate(ctx, enr.ID, "")
		if err != nil {
			log.Printf("[ERROR] auto certificate enrollment=%s: %v", enr.ID, err)
		} else {
			log.Printf("[INFO] certificate %s ready for enrollment=%s", certID, enr.ID)
			out.CertificateID = certID
		}
	}
	return out, nil
}

// RecomputeEnrollment: progress = completed lessons / total lessons × 100.
func (s *ProgressService) RecomputeEnrollment(ctx context.Context, enrollmentID, courseID uuid.UUID) (float64, bool, error) {
	db := s.DB.WithContext(ctx)

	var total, completed int64
	if err := db.Model(&lessonModel.LessonModel{}).Where("course_id = ?", courseID).Count(&total).Error; err != nil {
		return 0, false, fmt.Errorf("count lessons: %w", err)
	}
	if err := db.Model(&model.LessonProgressModel{}).
		Where("enrollment_id = ? AND is_completed = ?", enrollmentID, true).
		Count(&completed).Error; err != nil {
		return 0, false, fmt.Errorf("count completed lessons: %w", err)
	}

	pct := 0.0
	if total > 0 {
		pct = math.Min(100, math.Round(float64(completed)/float64(total)*10000)/100)
	}
	done := pct >= 100

	updates := map[string]any{"progress": pct, "is_completed": done}
	if done {
		// tanggal selesai pertama dipertahankan
		updates["completed_at"] = gorm.Expr("COALESCE(completed_at, ?)", s.Now())
	}
	if err := db.Model(&enrollmentModel.CourseEnrollmentModel{}).
		Where("id = ?", enrollmentID).
		Updates(updates).Error; err != nil {
		return 0, false, fmt.Errorf("update enrollment progress: %w", err)
	}
	return pct, done, nil
}
