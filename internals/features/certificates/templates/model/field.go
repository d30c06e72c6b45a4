package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

type FieldType string

const (
	FieldStudentName    FieldType = "STUDENT_NAME"
	FieldCourseTitle    FieldType = "COURSE_TITLE"
	FieldCompletionDate FieldType = "COMPLETION_DATE"
	FieldDuration       FieldType = "DURATION"
	FieldInstructor     FieldType = "INSTRUCTOR"
	FieldCertificateID  FieldType = "CERTIFICATE_ID"
	FieldQRCode         FieldType = "QR_CODE"
)

type TextAlign string

const (
	AlignLeft   TextAlign = "left"
	AlignCenter TextAlign = "center"
	AlignRight  TextAlign = "right"
)

// IsText: semua tipe kecuali QR_CODE dirender sebagai teks.
func (t FieldType) IsText() bool {
	switch t {
	case FieldStudentName, FieldCourseTitle, FieldCompletionDate,
		FieldDuration, FieldInstructor, FieldCertificateID:
		return true
	}
	return false
}

func (t FieldType) IsKnown() bool {
	return t.IsText() || t == FieldQRCode
}

// Field is one positioned element on a template background. Coordinates are in
// the background image's pixel space. Which attributes are required depends on
// Type; see RegisterFieldValidation.
type Field struct {
	ID         string    `json:"id" yaml:"id" validate:"required,max=64"`
	Type       FieldType `json:"type" yaml:"type" validate:"required"`
	X          float64   `json:"x" yaml:"x"`
	Y          float64   `json:"y" yaml:"y"`
	FontSize   float64   `json:"font_size,omitempty" yaml:"font_size,omitempty"`
	FontFamily string    `json:"font_family,omitempty" yaml:"font_family,omitempty"`
	FontWeight string    `json:"font_weight,omitempty" yaml:"font_weight,omitempty" validate:"omitempty,oneof=normal bold"`
	Color      string    `json:"color,omitempty" yaml:"color,omitempty"`
	TextAlign  TextAlign `json:"text_align,omitempty" yaml:"text_align,omitempty"`
	Width      *float64  `json:"width,omitempty" yaml:"width,omitempty"`
	Height     *float64  `json:"height,omitempty" yaml:"height,omitempty"`
	MaxWidth   *float64  `json:"max_width,omitempty" yaml:"max_width,omitempty" validate:"omitempty,gt=0"`
	Rotation   float64   `json:"rotation,omitempty" yaml:"rotation,omitempty"`
}

func (f Field) IsBold() bool {
	return strings.EqualFold(f.FontWeight, "bold")
}

/* =========================
   Legacy object format
   ========================= */

// legacyField: bentuk lama {"studentName": {"x":..,"fontSize":..}} dari builder versi awal
type legacyField struct {
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	FontSize   float64  `json:"fontSize"`
	FontFamily string   `json:"fontFamily"`
	FontWeight string   `json:"fontWeight"`
	Color      string   `json:"color"`
	TextAlign  string   `json:"textAlign"`
	Width      *float64 `json:"width"`
	Height     *float64 `json:"height"`
	MaxWidth   *float64 `json:"maxWidth"`
	Rotation   float64  `json:"rotation"`
}

var legacyKeys = map[string]FieldType{
	"studentname":    FieldStudentName,
	"coursename":     FieldCourseTitle,
	"coursetitle":    FieldCourseTitle,
	"completiondate": FieldCompletionDate,
	"duration":       FieldDuration,
	"instructor":     FieldInstructor,
	"certificateid":  FieldCertificateID,
	"qrcode":         FieldQRCode,
}

// ParseFields decodes template fields from either the array form or the legacy
// object form keyed by field name. Legacy keys are converted in sorted order and
// get their key as id. Empty input yields nil.
func ParseFields(raw []byte) ([]Field, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	switch raw[0] {
	case '[':
		var out []Field
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("fields: %w", err)
		}
		return out, nil
	case '{':
		var legacy map[string]legacyField
		if err := json.Unmarshal(raw, &legacy); err != nil {
			return nil, fmt.Errorf("fields: %w", err)
		}
		keys := make([]string, 0, len(legacy))
		for k := range legacy {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		out := make([]Field, 0, len(keys))
		for _, k := range keys {
			t, ok := legacyKeys[strings.ToLower(k)]
			if !ok {
				return nil, fmt.Errorf("fields: unknown legacy field %q", k)
			}
			lf := legacy[k]
			out = append(out, Field{
				ID:         k,
				Type:       t,
				X:          lf.X,
				Y:          lf.Y,
				FontSize:   lf.FontSize,
				FontFamily: lf.FontFamily,
				FontWeight: lf.FontWeight,
				Color:      lf.Color,
				TextAlign:  TextAlign(strings.ToLower(lf.TextAlign)),
				Width:      lf.Width,
				Height:     lf.Height,
				MaxWidth:   lf.MaxWidth,
				Rotation:   lf.Rotation,
			})
		}
		return out, nil
	}
	return nil, fmt.Errorf("fields: expected an array or an object")
}
