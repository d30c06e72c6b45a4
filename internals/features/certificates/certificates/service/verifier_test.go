package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyValidCertificate(t *testing.T) {
	f := newFixture(t)
	f.withDefaultTemplate(t, "ar")
	id := issue(t, f, "ar")
	v := NewVerifier(f.db)

	res, err := v.Verify(context.Background(), "  "+id+" ")
	require.NoError(t, err)
	require.True(t, res.Valid)
	c := res.Certificate
	assert.Equal(t, id, c.CertificateID)
	assert.Equal(t, "سارة علي", c.StudentName)
	assert.Equal(t, "أساسيات التجويد", c.CourseTitle)
	assert.Equal(t, "ساعتان", c.Duration)
	assert.Equal(t, "الشيخ يوسف", c.Instructor)
	assert.Equal(t, "ar", c.Language)
	require.NotNil(t, c.CompletedAt)
	assert.Equal(t, 15, c.CompletedAt.Day())
	assert.False(t, c.IssuedAt.IsZero())

	raw, err := json.Marshal(res)
	require.NoError(t, err)
	body := string(raw)
	assert.NotContains(t, body, "sara@example.com")
	assert.NotContains(t, body, f.user.ID.String())
	assert.NotContains(t, body, f.enrollment.ID.String())
	assert.NotContains(t, body, f.course.ID.String())
}

func TestVerifyReflectsLiveCourseButKeepsTemplateLanguage(t *testing.T) {
	f := newFixture(t)
	f.withDefaultTemplate(t, "ar")
	id := issue(t, f, "ar")

	require.NoError(t, f.db.Model(f.course).Update("language", "en").Error)

	res, err := NewVerifier(f.db).Verify(context.Background(), id)
	require.NoError(t, err)
	require.True(t, res.Valid)
	assert.Equal(t, "Tajweed Basics", res.Certificate.CourseTitle)
	assert.Equal(t, "Sara Ali", res.Certificate.StudentName)
	assert.Equal(t, "ar", res.Certificate.Language)
}

func TestVerifyHidesEmailOnlyNames(t *testing.T) {
	f := newFixture(t)
	f.withDefaultTemplate(t, "ar")
	require.NoError(t, f.db.Model(f.user).Updates(map[string]any{
		"first_name": "", "last_name": nil, "full_name_arabic": nil, "full_name_english": nil,
	}).Error)
	id := issue(t, f, "ar")

	res, err := NewVerifier(f.db).Verify(context.Background(), id)
	require.NoError(t, err)
	require.True(t, res.Valid)
	assert.Empty(t, res.Certificate.StudentName)
}

func TestVerifyKeepsNamesContainingAt(t *testing.T) {
	f := newFixture(t)
	f.withDefaultTemplate(t, "ar")
	require.NoError(t, f.db.Model(f.user).Update("full_name_arabic", "سارة @ أكاديمية النور").Error)
	id := issue(t, f, "ar")

	res, err := NewVerifier(f.db).Verify(context.Background(), id)
	require.NoError(t, err)
	require.True(t, res.Valid)
	assert.Equal(t, "سارة @ أكاديمية النور", res.Certificate.StudentName)
}

func TestVerifyUnknownIsNotAnError(t *testing.T) {
	f := newFixture(t)
	v := NewVerifier(f.db)

	for _, id := range []string{"", "   ", "CERT-UNKNOWN-12345678"} {
		res, err := v.Verify(context.Background(), id)
		require.NoError(t, err)
		assert.False(t, res.Valid)
		assert.Nil(t, res.Certificate)
	}
}

func TestExists(t *testing.T) {
	f := newFixture(t)
	f.withDefaultTemplate(t, "ar")
	id := issue(t, f, "ar")
	v := NewVerifier(f.db)

	ok, err := v.Exists(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = v.Exists(context.Background(), "CERT-UNKNOWN-12345678")
	require.NoError(t, err)
	assert.False(t, ok)
}
