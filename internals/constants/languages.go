package constants

import "strings"

const (
	LanguageArabic  = "ar"
	LanguageEnglish = "en"

	// Bahasa fallback kalau course/request tidak menyebut bahasa.
	DefaultLanguage = LanguageArabic
)

var SupportedLanguages = []string{LanguageArabic, LanguageEnglish}

// Instruktur default saat course belum punya author.
const (
	DefaultInstructorArabic  = "عمر الهادي"
	DefaultInstructorEnglish = "Omar Elhadi"
)

func NormalizeLanguage(lang string) string {
	return strings.ToLower(strings.TrimSpace(lang))
}

func IsSupportedLanguage(lang string) bool {
	switch NormalizeLanguage(lang) {
	case LanguageArabic, LanguageEnglish:
		return true
	}
	return false
}

// LanguageName returns the display name of a language code, in English or Arabic.
func LanguageName(lang string, inArabic bool) string {
	switch NormalizeLanguage(lang) {
	case LanguageArabic:
		if inArabic {
			return "العربية"
		}
		return "Arabic"
	case LanguageEnglish:
		if inArabic {
			return "الإنجليزية"
		}
		return "English"
	}
	return lang
}
