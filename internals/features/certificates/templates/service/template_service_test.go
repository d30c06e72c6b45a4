package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"academy_backend/internals/databases/dbtest"
	"academy_backend/internals/features/certificates/certerr"
	"academy_backend/internals/features/certificates/templates/model"
)

func fptr(v float64) *float64 { return &v }
func bptr(v bool) *bool        { return &v }
func sptr(v string) *string    { return &v }

func validFields() []model.Field {
	return []model.Field{
		{ID: "name", Type: model.FieldStudentName, X: 1240, Y: 1500, FontSize: 64, Color: "#111111", TextAlign: model.AlignCenter},
		{ID: "qr", Type: model.FieldQRCode, X: 200, Y: 3100, Width: fptr(300), Height: fptr(300)},
	}
}

func newService(t *testing.T) *TemplateService {
	t.Helper()
	return NewTemplateService(dbtest.Open(t))
}

func mustCreate(t *testing.T, s *TemplateService, name, lang string) *model.CertificateTemplateModel {
	t.Helper()
	m, err := s.Create(context.Background(), CreateInput{
		Name:            name,
		Language:        lang,
		BackgroundImage: "/bg/" + name + ".png",
		Fields:          validFields(),
	})
	require.NoError(t, err)
	return m
}

func mustDefault(t *testing.T, s *TemplateService, id uuid.UUID) {
	t.Helper()
	_, err := s.Patch(context.Background(), id, PatchInput{IsDefault: bptr(true)})
	require.NoError(t, err)
}

func defaultsOf(t *testing.T, s *TemplateService, lang string) []uuid.UUID {
	t.Helper()
	var ids []uuid.UUID
	require.NoError(t, s.DB.Model(&model.CertificateTemplateModel{}).
		Where("language = ? AND is_default = ?", lang, true).Pluck("id", &ids).Error)
	return ids
}

func TestCreateAppliesDefaults(t *testing.T) {
	s := newService(t)
	m := mustCreate(t, s, "arabic", "AR")

	assert.Equal(t, "ar", m.Language)
	assert.Equal(t, model.DefaultBackgroundWidth, m.BackgroundWidth)
	assert.Equal(t, model.DefaultBackgroundHeight, m.BackgroundHeight)
	assert.True(t, m.IsActive)
	assert.False(t, m.IsDefault)

	got, err := s.Get(context.Background(), m.ID)
	require.NoError(t, err)
	require.Len(t, got.Fields, 2)
	assert.Equal(t, model.FieldQRCode, got.Fields[1].Type)
	assert.Equal(t, 300.0, *got.Fields[1].Width)
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	cases := map[string]CreateInput{
		"missing name":     {Language: "ar", BackgroundImage: "/bg.png", Fields: validFields()},
		"missing fields":   {Name: "x", Language: "ar", BackgroundImage: "/bg.png"},
		"missing image":    {Name: "x", Language: "ar", Fields: validFields()},
		"unsupported lang": {Name: "x", Language: "fr", BackgroundImage: "/bg.png", Fields: validFields()},
		"unknown type": {Name: "x", Language: "ar", BackgroundImage: "/bg.png", Fields: []model.Field{
			{ID: "a", Type: "SIGNATURE", FontSize: 10, Color: "#000", TextAlign: model.AlignLeft},
		}},
		"qr without box": {Name: "x", Language: "ar", BackgroundImage: "/bg.png", Fields: []model.Field{
			{ID: "qr", Type: model.FieldQRCode, Width: fptr(100)},
		}},
		"text without font size": {Name: "x", Language: "ar", BackgroundImage: "/bg.png", Fields: []model.Field{
			{ID: "n", Type: model.FieldStudentName, Color: "#000", TextAlign: model.AlignLeft},
		}},
		"bad alignment": {Name: "x", Language: "ar", BackgroundImage: "/bg.png", Fields: []model.Field{
			{ID: "n", Type: model.FieldStudentName, FontSize: 12, Color: "#000", TextAlign: "justify"},
		}},
		"duplicate ids": {Name: "x", Language: "ar", BackgroundImage: "/bg.png", Fields: []model.Field{
			{ID: "n", Type: model.FieldStudentName, FontSize: 12, Color: "#000", TextAlign: model.AlignLeft},
			{ID: "n", Type: model.FieldCourseTitle, FontSize: 12, Color: "#000", TextAlign: model.AlignLeft},
		}},
	}
	for name, in := range cases {
		_, err := s.Create(ctx, in)
		assert.ErrorIs(t, err, certerr.ErrValidation, name)
	}

	var n int64
	require.NoError(t, s.DB.Model(&model.CertificateTemplateModel{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestCreateAcceptsEmptyFieldList(t *testing.T) {
	s := newService(t)
	m, err := s.Create(context.Background(), CreateInput{Name: "blank", Language: "en", BackgroundImage: "/bg.png", Fields: []model.Field{}})
	require.NoError(t, err)
	assert.Empty(t, m.Fields)
}

func TestPatchDefaultIsExclusivePerLanguage(t *testing.T) {
	s := newService(t)
	ar1 := mustCreate(t, s, "ar1", "ar")
	ar2 := mustCreate(t, s, "ar2", "ar")
	en1 := mustCreate(t, s, "en1", "en")

	mustDefault(t, s, ar1.ID)
	mustDefault(t, s, en1.ID)
	assert.Equal(t, []uuid.UUID{ar1.ID}, defaultsOf(t, s, "ar"))

	mustDefault(t, s, ar2.ID)
	assert.Equal(t, []uuid.UUID{ar2.ID}, defaultsOf(t, s, "ar"))
	assert.Equal(t, []uuid.UUID{en1.ID}, defaultsOf(t, s, "en"), "other language untouched")

	// promoting the current default again is a no-op
	mustDefault(t, s, ar2.ID)
	assert.Equal(t, []uuid.UUID{ar2.ID}, defaultsOf(t, s, "ar"))
}

func TestPatchRejectsUnsettingLastDefault(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	en := mustCreate(t, s, "en", "en")
	mustDefault(t, s, en.ID)

	_, err := s.Patch(ctx, en.ID, PatchInput{IsDefault: bptr(false), Name: sptr("renamed")})
	require.ErrorIs(t, err, certerr.ErrValidation)

	var ce *certerr.Error
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Message, "English")
	assert.NotEmpty(t, ce.MessageAr)

	got, err := s.Get(ctx, en.ID)
	require.NoError(t, err)
	assert.True(t, got.IsDefault)
	assert.Equal(t, "en", got.Name, "rejected patch leaves the row unchanged")
}

func TestPatchFalseOnNonDefaultIsNoop(t *testing.T) {
	s := newService(t)
	m := mustCreate(t, s, "ar", "ar")

	got, err := s.Patch(context.Background(), m.ID, PatchInput{IsDefault: bptr(false)})
	require.NoError(t, err)
	assert.False(t, got.IsDefault)
}

func TestPatchLanguageOfDefaultNeedsReplacement(t *testing.T) {
	s := newService(t)
	ar := mustCreate(t, s, "ar", "ar")
	mustDefault(t, s, ar.ID)

	_, err := s.Patch(context.Background(), ar.ID, PatchInput{Language: sptr("en")})
	assert.ErrorIs(t, err, certerr.ErrValidation)
	assert.Equal(t, []uuid.UUID{ar.ID}, defaultsOf(t, s, "ar"))
}

func TestPatchPartialFields(t *testing.T) {
	s := newService(t)
	m := mustCreate(t, s, "ar", "ar")
	fields := []model.Field{{ID: "title", Type: model.FieldCourseTitle, X: 10, Y: 10, FontSize: 30, Color: "#333", TextAlign: model.AlignRight}}

	got, err := s.Patch(context.Background(), m.ID, PatchInput{Fields: &fields, IsActive: bptr(false)})
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	require.Len(t, got.Fields, 1)
	assert.Equal(t, "title", got.Fields[0].ID)
	assert.Equal(t, "ar", got.Name)
}

func TestUpdateReplacesButKeepsDefaultFlag(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	ar := mustCreate(t, s, "ar", "ar")
	mustDefault(t, s, ar.ID)

	w := 1000
	got, err := s.Update(ctx, ar.ID, UpdateInput{
		Name: "new", Language: "ar", BackgroundImage: "/new.png", BackgroundWidth: &w, Fields: validFields(),
	})
	require.NoError(t, err)
	assert.Equal(t, "new", got.Name)
	assert.Equal(t, 1000, got.BackgroundWidth)
	assert.Equal(t, model.DefaultBackgroundHeight, got.BackgroundHeight)
	assert.True(t, got.IsDefault)
	assert.True(t, got.IsActive)

	_, err = s.Update(ctx, ar.ID, UpdateInput{Name: "new", Language: "en", BackgroundImage: "/new.png", Fields: validFields()})
	assert.ErrorIs(t, err, certerr.ErrValidation)

	_, err = s.Update(ctx, uuid.New(), UpdateInput{Name: "x", Language: "ar", BackgroundImage: "/x.png", Fields: validFields()})
	assert.ErrorIs(t, err, certerr.ErrNotFound)
}

func TestDeleteProtectsOnlyDefault(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	ar1 := mustCreate(t, s, "ar1", "ar")
	ar2 := mustCreate(t, s, "ar2", "ar")
	mustDefault(t, s, ar1.ID)

	assert.ErrorIs(t, s.Delete(ctx, ar1.ID), certerr.ErrValidation)

	require.NoError(t, s.Delete(ctx, ar2.ID))
	_, err := s.Get(ctx, ar2.ID)
	assert.ErrorIs(t, err, certerr.ErrNotFound)

	assert.ErrorIs(t, s.Delete(ctx, uuid.New()), certerr.ErrNotFound)
}

func TestFindDefaultActive(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	_, err := FindDefaultActive(ctx, s.DB, "en")
	require.ErrorIs(t, err, certerr.ErrTemplateNotFound)
	assert.Contains(t, err.Error(), "en")
	assert.Contains(t, err.Error(), "English")

	en := mustCreate(t, s, "en", "en")
	mustDefault(t, s, en.ID)
	got, err := FindDefaultActive(ctx, s.DB, "en")
	require.NoError(t, err)
	assert.Equal(t, en.ID, got.ID)

	// inactive default does not count
	_, err = s.Patch(ctx, en.ID, PatchInput{IsActive: bptr(false)})
	require.NoError(t, err)
	_, err = FindDefaultActive(ctx, s.DB, "en")
	assert.ErrorIs(t, err, certerr.ErrTemplateNotFound)
}

func TestDefaultsAndForLanguage(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	ar1 := mustCreate(t, s, "ar1", "ar")
	ar2 := mustCreate(t, s, "ar2", "ar")
	en := mustCreate(t, s, "en", "en")
	mustDefault(t, s, ar2.ID)
	mustDefault(t, s, en.ID)

	defs, err := s.Defaults(ctx)
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, "ar", defs[0].Language)
	assert.Equal(t, ar2.ID, defs[0].ID)

	rows, err := s.ForLanguage(ctx, "ar")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, ar2.ID, rows[0].ID, "default first")
	assert.Equal(t, ar1.ID, rows[1].ID)
}

func TestListFilters(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	ar := mustCreate(t, s, "ar", "ar")
	mustCreate(t, s, "en1", "en")
	mustCreate(t, s, "en2", "en")
	mustDefault(t, s, ar.ID)

	rows, total, err := s.List(ctx, ListFilter{Language: sptr("en"), Limit: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, rows, 1)

	rows, total, err = s.List(ctx, ListFilter{IsDefault: bptr(true)})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, ar.ID, rows[0].ID)
}

func TestUpdateField(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	m := mustCreate(t, s, "ar", "ar")

	f := m.Fields[0]
	f.FontSize = 80
	got, err := s.UpdateField(ctx, m.ID, f)
	require.NoError(t, err)
	assert.Equal(t, 80.0, got.Fields[0].FontSize)

	f.FontSize = 0
	_, err = s.UpdateField(ctx, m.ID, f)
	assert.ErrorIs(t, err, certerr.ErrValidation)

	_, err = s.UpdateField(ctx, m.ID, model.Field{ID: "missing"})
	assert.ErrorIs(t, err, certerr.ErrNotFound)
}
