package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"academy_backend/internals/features/certificates/certerr"
	certModel "academy_backend/internals/features/certificates/certificates/model"
	"academy_backend/internals/features/courses/enrollments/model"
	progressModel "academy_backend/internals/features/progress/progress/model"
)

// DeleteEnrollment menghapus progres lesson, sertifikat, lalu enrollment-nya
// dalam satu transaksi. Ini satu-satunya jalur penghapusan sertifikat.
func DeleteEnrollment(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var enr model.CourseEnrollmentModel
		if err := tx.Select("id").Take(&enr, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return certerr.NotFound("Enrollment not found", "التسجيل غير موجود")
			}
			return fmt.Errorf("load enrollment: %w", err)
		}

		if err := tx.Where("enrollment_id = ?", id).Delete(&progressModel.LessonProgressModel{}).Error; err != nil {
			return fmt.Errorf("delete lesson progress: %w", err)
		}
		res := tx.Where("enrollment_id = ?", id).Delete(&certModel.CertificateModel{})
		if res.Error != nil {
			return fmt.Errorf("delete certificates: %w", res.Error)
		}
		if err := tx.Delete(&model.CourseEnrollmentModel{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("delete enrollment: %w", err)
		}
		log.Printf("[INFO] enrollment %s deleted (%d certificate(s) removed)", id, res.RowsAffected)
		return nil
	})
}
