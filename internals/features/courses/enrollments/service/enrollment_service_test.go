package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"academy_backend/internals/databases/dbtest"
	"academy_backend/internals/features/certificates/certerr"
	certModel "academy_backend/internals/features/certificates/certificates/model"
	courseModel "academy_backend/internals/features/courses/courses/model"
	"academy_backend/internals/features/courses/enrollments/model"
	lessonModel "academy_backend/internals/features/courses/lessons/model"
	progressModel "academy_backend/internals/features/progress/progress/model"
	userModel "academy_backend/internals/features/users/user/model"
)

func TestDeleteEnrollmentRemovesCertificatesAndProgress(t *testing.T) {
	db := dbtest.Open(t)
	u := &userModel.UserModel{Email: "x@example.com"}
	require.NoError(t, db.Create(u).Error)
	c := &courseModel.CourseModel{Title: "السيرة"}
	require.NoError(t, db.Create(c).Error)
	l := &lessonModel.LessonModel{CourseID: c.ID, Title: "1"}
	require.NoError(t, db.Create(l).Error)
	enr := &model.CourseEnrollmentModel{UserID: u.ID, CourseID: c.ID, IsCompleted: true, Progress: 100}
	require.NoError(t, db.Create(enr).Error)
	require.NoError(t, db.Create(&progressModel.LessonProgressModel{UserID: u.ID, LessonID: l.ID, EnrollmentID: enr.ID, IsCompleted: true}).Error)
	require.NoError(t, db.Create(&certModel.CertificateModel{
		CertificateID: "CERT-DEL-00000000",
		UserID:        u.ID,
		EnrollmentID:  enr.ID,
		Data:          datatypes.NewJSONType(certModel.CertificateData{CertificateID: "CERT-DEL-00000000"}),
	}).Error)

	require.NoError(t, DeleteEnrollment(context.Background(), db, enr.ID))

	var n int64
	require.NoError(t, db.Model(&certModel.CertificateModel{}).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Model(&progressModel.LessonProgressModel{}).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Model(&model.CourseEnrollmentModel{}).Count(&n).Error)
	assert.Zero(t, n)

	err := DeleteEnrollment(context.Background(), db, uuid.New())
	assert.ErrorIs(t, err, certerr.ErrNotFound)
}
