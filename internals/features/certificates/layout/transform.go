package layout

import (
	"errors"
	"fmt"

	tplModel "academy_backend/internals/features/certificates/templates/model"
)

var (
	ErrInvalidScale = errors.New("scale factors must be greater than 0")
	ErrBoxTooSmall  = fmt.Errorf("box would be smaller than %gx%g", MinBoxSize, MinBoxSize)
)

// ApplyScale bakes an interactive resize into the stored attributes so the
// editor's scale can be reset to 1. Text fields take sy into font_size (and sx
// into max_width); boxes take sx/sy into width/height. A result below the
// minimum box is refused and f is returned unchanged.
func ApplyScale(f tplModel.Field, sx, sy float64) (tplModel.Field, error) {
	if sx <= 0 || sy <= 0 {
		return f, ErrInvalidScale
	}
	out := f

	hasBox := f.Type == tplModel.FieldQRCode || (f.Width != nil && f.Height != nil)
	if hasBox {
		w, h := DefaultQRSize, DefaultQRSize
		if f.Width != nil && *f.Width > 0 {
			w = *f.Width
		}
		if f.Height != nil && *f.Height > 0 {
			h = *f.Height
		}
		nw, nh := round2(w*sx), round2(h*sy)
		if nw < MinBoxSize || nh < MinBoxSize {
			return f, ErrBoxTooSmall
		}
		out.Width, out.Height = &nw, &nh
	}

	if f.Type.IsText() {
		size := round2(f.FontSize * sy)
		if size*LineHeight < MinBoxSize {
			return f, ErrBoxTooSmall
		}
		out.FontSize = size
		if f.MaxWidth != nil {
			mw := round2(*f.MaxWidth * sx)
			if mw < MinBoxSize {
				return f, ErrBoxTooSmall
			}
			out.MaxWidth = &mw
		}
	}
	return out, nil
}
