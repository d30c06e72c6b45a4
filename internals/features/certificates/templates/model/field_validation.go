package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RegisterFieldValidation wires the per-type rules of Field into v:
// QR_CODE needs a positive box, text types need font size, color and alignment.
func RegisterFieldValidation(v *validator.Validate) {
	v.RegisterStructValidation(fieldStructLevel, Field{})
}

func fieldStructLevel(sl validator.StructLevel) {
	f := sl.Current().Interface().(Field)

	if !f.Type.IsKnown() {
		sl.ReportError(f.Type, "Type", "type", "field_type", string(f.Type))
		return
	}

	if f.Type == FieldQRCode {
		if f.Width == nil || *f.Width <= 0 {
			sl.ReportError(f.Width, "Width", "width", "gt", "0")
		}
		if f.Height == nil || *f.Height <= 0 {
			sl.ReportError(f.Height, "Height", "height", "gt", "0")
		}
		return
	}

	if f.FontSize <= 0 {
		sl.ReportError(f.FontSize, "FontSize", "font_size", "gt", "0")
	}
	if strings.TrimSpace(f.Color) == "" {
		sl.ReportError(f.Color, "Color", "color", "required", "")
	}
	switch f.TextAlign {
	case AlignLeft, AlignCenter, AlignRight:
	default:
		sl.ReportError(f.TextAlign, "TextAlign", "text_align", "oneof", "left center right")
	}
}

// ValidateFields returns one message per problem, empty when fields are valid.
func ValidateFields(v *validator.Validate, fields []Field) []string {
	var problems []string
	seen := make(map[string]int, len(fields))

	for i, f := range fields {
		if prev, dup := seen[f.ID]; dup && f.ID != "" {
			problems = append(problems, fmt.Sprintf("fields[%d]: id %q already used by fields[%d]", i, f.ID, prev))
		} else {
			seen[f.ID] = i
		}

		err := v.Struct(f)
		if err == nil {
			continue
		}
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			problems = append(problems, fmt.Sprintf("fields[%d]: %v", i, err))
			continue
		}
		for _, fe := range verrs {
			problems = append(problems, fmt.Sprintf("fields[%d] (%s): %s", i, f.Type, describe(fe)))
		}
	}
	return problems
}

func describe(fe validator.FieldError) string {
	name := fe.Field()
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "gt":
		return name + " must be greater than " + fe.Param()
	case "oneof":
		return name + " must be one of: " + fe.Param()
	case "max":
		return name + " must be at most " + fe.Param() + " characters"
	case "field_type":
		return fmt.Sprintf("unknown field type %q", fe.Param())
	}
	return name + " is invalid"
}
