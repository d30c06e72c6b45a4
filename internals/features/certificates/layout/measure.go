package layout

import (
	"fmt"
	"log"
	"math"
	"os"
	"sync"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontMeasurer measures text with real OpenType metrics at 72 DPI, so one
// point equals one background pixel. Go Regular/Go Bold are embedded as
// defaults; templates with Arabic text should be configured with a TTF that
// covers Arabic (missing glyphs are measured as U+FFFD).
type FontMeasurer struct {
	regular *opentype.Font
	bold    *opentype.Font

	// font.Face dari opentype tidak aman dipakai bersamaan
	mu    sync.Mutex
	faces map[faceKey]font.Face
}

type faceKey struct {
	size int64 // size × 100
	bold bool
}

// NewFontMeasurer loads fonts from the given paths; an empty or unreadable path
// falls back to the embedded Go font of that weight.
func NewFontMeasurer(regularPath, boldPath string) (*FontMeasurer, error) {
	regular, err := loadFont(regularPath, goregular.TTF)
	if err != nil {
		return nil, err
	}
	bold, err := loadFont(boldPath, gobold.TTF)
	if err != nil {
		return nil, err
	}
	return &FontMeasurer{regular: regular, bold: bold, faces: map[faceKey]font.Face{}}, nil
}

func loadFont(path string, fallback []byte) (*opentype.Font, error) {
	data := fallback
	if path != "" {
		if custom, err := os.ReadFile(path); err != nil {
			log.Printf("[WARN] font %q unavailable, using embedded default: %v", path, err)
		} else {
			data = custom
		}
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return f, nil
}

func (m *FontMeasurer) MeasureText(text string, fontSize float64, bold bool) float64 {
	if text == "" || fontSize <= 0 {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	face, err := m.face(fontSize, bold)
	if err != nil {
		// rough estimate keeps the layout usable when a face cannot be built
		log.Printf("[WARN] measure text: %v", err)
		return float64(utf8.RuneCountInString(text)) * fontSize * 0.5
	}
	return float64(font.MeasureString(face, text)) / 64
}

func (m *FontMeasurer) face(size float64, bold bool) (font.Face, error) {
	key := faceKey{size: int64(math.Round(size * 100)), bold: bold}
	if f, ok := m.faces[key]; ok {
		return f, nil
	}
	src := m.regular
	if bold {
		src = m.bold
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    float64(key.size) / 100,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face at %.2fpx: %w", size, err)
	}
	m.faces[key] = f
	return f, nil
}

var (
	defaultOnce     sync.Once
	defaultMeasurer *FontMeasurer
	defaultErr      error
	regularFontPath string
	boldFontPath    string
)

// Configure sets the font files used by Default. Call before the first Default().
func Configure(regularPath, boldPath string) {
	regularFontPath, boldFontPath = regularPath, boldPath
}

// Default returns the process-wide measurer shared by preview and download.
func Default() *FontMeasurer {
	defaultOnce.Do(func() {
		defaultMeasurer, defaultErr = NewFontMeasurer(regularFontPath, boldFontPath)
		if defaultErr != nil {
			log.Printf("[ERROR] load configured fonts: %v, using embedded Go fonts", defaultErr)
			defaultMeasurer, defaultErr = NewFontMeasurer("", "")
		}
	})
	return defaultMeasurer
}
