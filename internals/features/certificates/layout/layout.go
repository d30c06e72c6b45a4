// Package layout turns template fields plus certificate data into positioned
// boxes. Admin preview and the download payload both go through Place with the
// same Measurer so the two cannot drift apart.
package layout

import (
	"math"

	certModel "academy_backend/internals/features/certificates/certificates/model"
	tplModel "academy_backend/internals/features/certificates/templates/model"
)

const (
	DefaultQRSize = 150.0
	MinBoxSize    = 5.0
	LineHeight    = 1.2
)

// Measurer returns the advance width in pixels of text set at fontSize.
type Measurer interface {
	MeasureText(text string, fontSize float64, bold bool) float64
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type PlacedField struct {
	FieldID   string             `json:"field_id"`
	Type      tplModel.FieldType `json:"type"`
	Text      string             `json:"text,omitempty"`
	FontSize  float64            `json:"font_size,omitempty"`
	TextAlign tplModel.TextAlign `json:"text_align,omitempty"`
	Rect      Rect               `json:"rect"`
	Anchor    Point              `json:"anchor"`
	Rotation  float64            `json:"rotation,omitempty"`
	Corners   [4]Point           `json:"corners"`
}

// ResolveText maps a field to the data value it displays. QR_CODE is not text.
func ResolveText(f tplModel.Field, d certModel.CertificateData) (string, bool) {
	switch f.Type {
	case tplModel.FieldStudentName:
		return d.StudentName, true
	case tplModel.FieldCourseTitle:
		return d.CourseTitle, true
	case tplModel.FieldCompletionDate:
		return d.CompletionDate, true
	case tplModel.FieldDuration:
		return d.Duration, true
	case tplModel.FieldInstructor:
		return d.Instructor, true
	case tplModel.FieldCertificateID:
		return d.CertificateID, true
	}
	return "", false
}

// Place computes the box of one field. Text boxes are anchored at (x, y) per
// alignment: left starts at x, center is centred on x, right ends at x. A text
// wider than max_width is shrunk to fit and the font size reported reflects it.
func Place(f tplModel.Field, d certModel.CertificateData, m Measurer) PlacedField {
	anchor := Point{X: f.X, Y: f.Y}
	pf := PlacedField{
		FieldID:  f.ID,
		Type:     f.Type,
		Anchor:   anchor,
		Rotation: f.Rotation,
	}

	text, isText := ResolveText(f, d)
	if !isText {
		w, h := DefaultQRSize, DefaultQRSize
		if f.Width != nil && *f.Width > 0 {
			w = *f.Width
		}
		if f.Height != nil && *f.Height > 0 {
			h = *f.Height
		}
		pf.Rect = Rect{X: f.X, Y: f.Y, Width: w, Height: h}
		pf.Corners = Corners(pf.Rect, anchor, f.Rotation)
		return pf
	}

	size := f.FontSize
	width := m.MeasureText(text, size, f.IsBold())
	if f.MaxWidth != nil && *f.MaxWidth > 0 && width > *f.MaxWidth {
		size = size * (*f.MaxWidth / width)
		width = *f.MaxWidth
	}

	x := f.X
	switch f.TextAlign {
	case tplModel.AlignCenter:
		x = f.X - width/2
	case tplModel.AlignRight:
		x = f.X - width
	}

	pf.Text = text
	pf.FontSize = round2(size)
	pf.TextAlign = f.TextAlign
	pf.Rect = Rect{X: round2(x), Y: f.Y, Width: round2(width), Height: round2(size * LineHeight)}
	pf.Corners = Corners(pf.Rect, anchor, f.Rotation)
	return pf
}

func PlaceAll(fields []tplModel.Field, d certModel.CertificateData, m Measurer) []PlacedField {
	out := make([]PlacedField, 0, len(fields))
	for _, f := range fields {
		out = append(out, Place(f, d, m))
	}
	return out
}

// Corners rotates the four corners of r rigidly around anchor by deg degrees
// (clockwise in image space, y grows downwards). Order: top-left, top-right,
// bottom-right, bottom-left of the unrotated box.
func Corners(r Rect, anchor Point, deg float64) [4]Point {
	pts := [4]Point{
		{r.X, r.Y},
		{r.X + r.Width, r.Y},
		{r.X + r.Width, r.Y + r.Height},
		{r.X, r.Y + r.Height},
	}
	if deg == 0 {
		return pts
	}
	rad := deg * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	for i, p := range pts {
		dx, dy := p.X-anchor.X, p.Y-anchor.Y
		pts[i] = Point{
			X: round2(anchor.X + dx*cos - dy*sin),
			Y: round2(anchor.Y + dx*sin + dy*cos),
		}
	}
	return pts
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
