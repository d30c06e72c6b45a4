package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"academy_backend/internals/databases/dbtest"
	"academy_backend/internals/features/certificates/certerr"
	courseModel "academy_backend/internals/features/courses/courses/model"
	enrollmentModel "academy_backend/internals/features/courses/enrollments/model"
	lessonModel "academy_backend/internals/features/courses/lessons/model"
	userModel "academy_backend/internals/features/users/user/model"
)

type fakeIssuer struct {
	calls []uuid.UUID
	err   error
}

func (f *fakeIssuer) Generate(_ context.Context, enrollmentID uuid.UUID, _ string) (string, error) {
	f.calls = append(f.calls, enrollmentID)
	if f.err != nil {
		return "", f.err
	}
	return "CERT-TEST-00000001", nil
}

type world struct {
	db         *gorm.DB
	user       *userModel.UserModel
	lessons    []lessonModel.LessonModel
	enrollment *enrollmentModel.CourseEnrollmentModel
}

func newWorld(t *testing.T, lessons int) *world {
	t.Helper()
	db := dbtest.Open(t)

	u := &userModel.UserModel{Email: "student@example.com", FirstName: "Huda"}
	require.NoError(t, db.Create(u).Error)
	c := &courseModel.CourseModel{Title: "النحو"}
	require.NoError(t, db.Create(c).Error)

	w := &world{db: db, user: u}
	for i := 0; i < lessons; i++ {
		l := lessonModel.LessonModel{CourseID: c.ID, Title: "درس", Position: i}
		require.NoError(t, db.Create(&l).Error)
		w.lessons = append(w.lessons, l)
	}
	w.enrollment = &enrollmentModel.CourseEnrollmentModel{UserID: u.ID, CourseID: c.ID}
	require.NoError(t, db.Create(w.enrollment).Error)
	return w
}

func (w *world) reloadEnrollment(t *testing.T) enrollmentModel.CourseEnrollmentModel {
	t.Helper()
	var e enrollmentModel.CourseEnrollmentModel
	require.NoError(t, w.db.Take(&e, "id = ?", w.enrollment.ID).Error)
	return e
}

func boolp(b bool) *bool { return &b }

func intp(i int) *int { return &i }

func TestUpdateLessonRecomputesAndIssuesAtCompletion(t *testing.T) {
	w := newWorld(t, 2)
	issuer := &fakeIssuer{}
	svc := NewProgressService(w.db, issuer)
	fixed := time.Date(2025, time.September, 15, 9, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return fixed }
	ctx := context.Background()

	res, err := svc.UpdateLesson(ctx, w.user.ID, w.lessons[0].ID, UpdateLessonInput{WatchedTime: intp(120), IsCompleted: boolp(true)})
	require.NoError(t, err)
	assert.Equal(t, 120, res.Progress.WatchedTime)
	assert.True(t, res.Progress.IsCompleted)
	assert.InDelta(t, 50, res.CourseProgress, 0.001)
	assert.False(t, res.CourseCompleted)
	assert.Empty(t, issuer.calls)
	assert.False(t, w.reloadEnrollment(t).IsCompleted)

	res, err = svc.UpdateLesson(ctx, w.user.ID, w.lessons[1].ID, UpdateLessonInput{IsCompleted: boolp(true)})
	require.NoError(t, err)
	assert.True(t, res.CourseCompleted)
	assert.Equal(t, "CERT-TEST-00000001", res.CertificateID)
	assert.Equal(t, []uuid.UUID{w.enrollment.ID}, issuer.calls)

	e := w.reloadEnrollment(t)
	assert.True(t, e.IsCompleted)
	assert.InDelta(t, 100, e.Progress, 0.001)
	require.NotNil(t, e.CompletedAt)
	assert.True(t, e.CompletedAt.Equal(fixed))
}

func TestUpdateLessonIsUpsert(t *testing.T) {
	w := newWorld(t, 3)
	svc := NewProgressService(w.db, nil)
	ctx := context.Background()

	_, err := svc.UpdateLesson(ctx, w.user.ID, w.lessons[0].ID, UpdateLessonInput{WatchedTime: intp(10)})
	require.NoError(t, err)
	res, err := svc.UpdateLesson(ctx, w.user.ID, w.lessons[0].ID, UpdateLessonInput{WatchedTime: intp(45)})
	require.NoError(t, err)
	assert.Equal(t, 45, res.Progress.WatchedTime)
	assert.False(t, res.Progress.IsCompleted)

	got, err := svc.Get(ctx, w.user.ID, w.lessons[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, res.Progress.ID, got.ID)

	none, err := svc.Get(ctx, w.user.ID, w.lessons[1].ID)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestWatchThenCompleteSameLessonIssues(t *testing.T) {
	w := newWorld(t, 1)
	issuer := &fakeIssuer{}
	svc := NewProgressService(w.db, issuer)
	first := time.Date(2025, time.October, 1, 8, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return first }
	ctx := context.Background()

	watched, err := svc.UpdateLesson(ctx, w.user.ID, w.lessons[0].ID, UpdateLessonInput{WatchedTime: intp(30)})
	require.NoError(t, err)
	assert.Empty(t, issuer.calls)

	second := first.Add(time.Hour)
	svc.Now = func() time.Time { return second }
	res, err := svc.UpdateLesson(ctx, w.user.ID, w.lessons[0].ID, UpdateLessonInput{IsCompleted: boolp(true)})
	require.NoError(t, err)
	assert.Equal(t, watched.Progress.ID, res.Progress.ID)
	assert.Equal(t, 30, res.Progress.WatchedTime)
	assert.True(t, res.Progress.IsCompleted)
	require.NotNil(t, res.Progress.CompletedAt)
	assert.True(t, res.Progress.CompletedAt.Equal(second))
	assert.True(t, res.CourseCompleted)
	assert.Equal(t, "CERT-TEST-00000001", res.CertificateID)
	assert.Equal(t, []uuid.UUID{w.enrollment.ID}, issuer.calls)

	// completing again keeps the first completed_at
	svc.Now = func() time.Time { return second.Add(time.Hour) }
	again, err := svc.UpdateLesson(ctx, w.user.ID, w.lessons[0].ID, UpdateLessonInput{IsCompleted: boolp(true)})
	require.NoError(t, err)
	assert.True(t, again.Progress.CompletedAt.Equal(second))

	var n int64
	require.NoError(t, w.db.Table("lesson_progress").Where("user_id = ?", w.user.ID).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestIssuerFailureDoesNotFailProgress(t *testing.T) {
	w := newWorld(t, 1)
	issuer := &fakeIssuer{err: errors.New("template missing")}
	svc := NewProgressService(w.db, issuer)

	res, err := svc.UpdateLesson(context.Background(), w.user.ID, w.lessons[0].ID, UpdateLessonInput{IsCompleted: boolp(true)})
	require.NoError(t, err)
	assert.True(t, res.CourseCompleted)
	assert.Empty(t, res.CertificateID)
	assert.Len(t, issuer.calls, 1)
	assert.True(t, w.reloadEnrollment(t).IsCompleted)
}

func TestUpdateLessonErrors(t *testing.T) {
	w := newWorld(t, 1)
	svc := NewProgressService(w.db, nil)
	ctx := context.Background()

	_, err := svc.UpdateLesson(ctx, w.user.ID, uuid.New(), UpdateLessonInput{})
	assert.ErrorIs(t, err, certerr.ErrNotFound)

	other := &userModel.UserModel{Email: "other@example.com"}
	require.NoError(t, w.db.Create(other).Error)
	_, err = svc.UpdateLesson(ctx, other.ID, w.lessons[0].ID, UpdateLessonInput{IsCompleted: boolp(true)})
	assert.ErrorIs(t, err, ErrNotEnrolled)
}
