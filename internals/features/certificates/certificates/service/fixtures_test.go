package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"academy_backend/internals/databases/dbtest"
	tplModel "academy_backend/internals/features/certificates/templates/model"
	tplService "academy_backend/internals/features/certificates/templates/service"
	courseModel "academy_backend/internals/features/courses/courses/model"
	enrollmentModel "academy_backend/internals/features/courses/enrollments/model"
	userModel "academy_backend/internals/features/users/user/model"
)

func strp(s string) *string { return &s }

func f64p(v float64) *float64 { return &v }

type fixture struct {
	db         *gorm.DB
	user       *userModel.UserModel
	course     *courseModel.CourseModel
	enrollment *enrollmentModel.CourseEnrollmentModel
	templates  map[string]*tplModel.CertificateTemplateModel
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.Open(t)

	user := &userModel.UserModel{
		Email:           "sara@example.com",
		FirstName:       "Sara",
		LastName:        strp("Ali"),
		FullNameArabic:  strp("سارة علي"),
		FullNameEnglish: strp("Sara Ali"),
	}
	require.NoError(t, db.Create(user).Error)

	course := &courseModel.CourseModel{
		Title:         "أساسيات التجويد",
		TitleEnglish:  strp("Tajweed Basics"),
		AuthorName:    strp("الشيخ يوسف"),
		Language:      "ar",
		DurationValue: f64p(2),
		DurationUnit:  strp("hours"),
	}
	require.NoError(t, db.Create(course).Error)

	completedAt := time.Date(2025, time.September, 15, 10, 0, 0, 0, time.UTC)
	enr := &enrollmentModel.CourseEnrollmentModel{
		UserID:      user.ID,
		CourseID:    course.ID,
		Progress:    100,
		IsCompleted: true,
		CompletedAt: &completedAt,
	}
	require.NoError(t, db.Create(enr).Error)

	return &fixture{db: db, user: user, course: course, enrollment: enr, templates: map[string]*tplModel.CertificateTemplateModel{}}
}

// withDefaultTemplate creates an active default template for lang.
func (f *fixture) withDefaultTemplate(t *testing.T, lang string) *tplModel.CertificateTemplateModel {
	t.Helper()
	svc := tplService.NewTemplateService(f.db)
	ctx := context.Background()
	m, err := svc.Create(ctx, tplService.CreateInput{
		Name:            "default-" + lang,
		Language:        lang,
		BackgroundImage: "/bg-" + lang + ".png",
		Fields: []tplModel.Field{
			{ID: "name", Type: tplModel.FieldStudentName, X: 1240, Y: 1400, FontSize: 64, Color: "#000", TextAlign: tplModel.AlignCenter},
			{ID: "course", Type: tplModel.FieldCourseTitle, X: 1240, Y: 1200, FontSize: 48, Color: "#000", TextAlign: tplModel.AlignCenter},
			{ID: "id", Type: tplModel.FieldCertificateID, X: 100, Y: 3300, FontSize: 24, Color: "#999", TextAlign: tplModel.AlignLeft},
			{ID: "qr", Type: tplModel.FieldQRCode, X: 2100, Y: 3100, Width: f64p(250), Height: f64p(250)},
		},
	})
	require.NoError(t, err)
	isDefault := true
	m, err = svc.Patch(ctx, m.ID, tplService.PatchInput{IsDefault: &isDefault})
	require.NoError(t, err)
	f.templates[lang] = m
	return m
}

func (f *fixture) newEnrollment(t *testing.T, completed bool, progress float64) *enrollmentModel.CourseEnrollmentModel {
	t.Helper()
	u := &userModel.UserModel{Email: uuid.NewString() + "@example.com", FirstName: "Omar"}
	require.NoError(t, f.db.Create(u).Error)
	enr := &enrollmentModel.CourseEnrollmentModel{UserID: u.ID, CourseID: f.course.ID, Progress: progress, IsCompleted: completed}
	require.NoError(t, f.db.Create(enr).Error)
	return enr
}
