// Package duration renders course durations as localised phrases in English
// and Arabic, with Arabic dual and plural agreement.
package duration

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

type Unit string

const (
	Minutes Unit = "minutes"
	Hours   Unit = "hours"
	Days    Unit = "days"
	Weeks   Unit = "weeks"
)

// Arabic number agreement:
//
//	1      → one      ("ساعة واحدة")
//	2      → dual     ("ساعتان")
//	3..10  → N + few  ("5 ساعات")
//	11+    → N + many ("12 ساعة"), also used for fractions
type phrasing struct {
	enOne, enMany string
	arOne, arDual string
	arFew, arMany string
}

var phrases = map[Unit]phrasing{
	Minutes: {"minute", "minutes", "دقيقة واحدة", "دقيقتان", "دقائق", "دقيقة"},
	Hours:   {"hour", "hours", "ساعة واحدة", "ساعتان", "ساعات", "ساعة"},
	Days:    {"day", "days", "يوم واحد", "يومان", "أيام", "يوم"},
	Weeks:   {"week", "weeks", "أسبوع واحد", "أسبوعان", "أسابيع", "أسبوع"},
}

// Keys are stored already folded and NFC-normalised, diacritics stripped.
var unitWords = map[string]Unit{
	"minute": Minutes, "minutes": Minutes, "min": Minutes, "mins": Minutes,
	"دقيقة": Minutes, "دقيقه": Minutes, "دقائق": Minutes, "دقيقتان": Minutes, "دقيقتين": Minutes,

	"hour": Hours, "hours": Hours, "hr": Hours, "hrs": Hours, "h": Hours,
	"ساعة": Hours, "ساعه": Hours, "ساعات": Hours, "ساعتان": Hours, "ساعتين": Hours,

	"day": Days, "days": Days,
	"يوم": Days, "يوما": Days, "أيام": Days, "ايام": Days, "يومان": Days, "يومين": Days,

	"week": Weeks, "weeks": Weeks, "wk": Weeks, "wks": Weeks,
	"أسبوع": Weeks, "اسبوع": Weeks, "أسبوعا": Weeks, "اسبوعا": Weeks,
	"أسابيع": Weeks, "اسابيع": Weeks, "أسبوعان": Weeks, "أسبوعين": Weeks, "اسبوعين": Weeks,
}

// ParseUnit matches an English or Arabic unit word regardless of case,
// Unicode composition or Arabic diacritics.
func ParseUnit(s string) (Unit, bool) {
	u, ok := unitWords[foldToken(s)]
	return u, ok
}

func foldToken(s string) string {
	s = cases.Fold().String(strings.TrimSpace(s))
	s = norm.NFC.String(s)
	s = strings.Map(func(r rune) rune {
		// tashkeel dan tatweel tidak mengubah makna kata
		if unicode.Is(unicode.Mn, r) || r == 'ـ' {
			return -1
		}
		return r
	}, s)
	return strings.Trim(s, ".,;:()")
}

// Format renders value in unit. An unknown unit falls back to "<value> <unit>";
// a non-positive value renders as the empty string.
func Format(value float64, unit string, isArabic bool) string {
	if value <= 0 {
		return ""
	}
	num := formatNumber(value)
	u, ok := ParseUnit(unit)
	if !ok {
		return strings.TrimSpace(num + " " + strings.TrimSpace(unit))
	}
	p := phrases[u]
	whole := value == float64(int64(value))

	if !isArabic {
		if whole && value == 1 {
			return "1 " + p.enOne
		}
		return num + " " + p.enMany
	}

	switch {
	case !whole:
		return num + " " + p.arMany
	case value == 1:
		return p.arOne
	case value == 2:
		return p.arDual
	case value <= 10:
		return num + " " + p.arFew
	default:
		return num + " " + p.arMany
	}
}

var legacyPattern = regexp.MustCompile(`^\s*([0-9]+(?:[.,][0-9]+)?)\s*(\S+)`)

// FormatLegacy parses free text such as "5 hours" or "٣ ساعات" and re-renders it
// in the target language. Text that does not parse is returned verbatim.
func FormatLegacy(text string, isArabic bool) string {
	m := legacyPattern.FindStringSubmatch(toASCIIDigits(text))
	if m == nil {
		return text
	}
	value, err := strconv.ParseFloat(strings.Replace(m[1], ",", ".", 1), 64)
	if err != nil || value <= 0 {
		return text
	}
	if _, ok := ParseUnit(m[2]); !ok {
		return text
	}
	return Format(value, m[2], isArabic)
}

// ForCourse prefers the structured value and unit, then the legacy text.
func ForCourse(value *float64, unit *string, legacy *string, isArabic bool) string {
	if value != nil && *value > 0 && unit != nil {
		if _, ok := ParseUnit(*unit); ok {
			return Format(*value, *unit, isArabic)
		}
	}
	if legacy != nil && strings.TrimSpace(*legacy) != "" {
		return FormatLegacy(strings.TrimSpace(*legacy), isArabic)
	}
	return ""
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// toASCIIDigits maps Arabic-Indic and Eastern Arabic-Indic digits (and the
// Arabic decimal separator) to ASCII.
func toASCIIDigits(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '٠' && r <= '٩':
			return '0' + (r - '٠')
		case r >= '۰' && r <= '۹':
			return '0' + (r - '۰')
		case r == '٫':
			return '.'
		}
		return r
	}, s)
}
