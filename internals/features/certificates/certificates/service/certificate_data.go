package service

import (
	"fmt"
	"strings"
	"time"

	"academy_backend/internals/constants"
	"academy_backend/internals/features/certificates/certificates/model"
	"academy_backend/internals/features/certificates/duration"
	courseModel "academy_backend/internals/features/courses/courses/model"
	userModel "academy_backend/internals/features/users/user/model"
)

// ResolveLanguage: bahasa request > bahasa course > ar.
func ResolveLanguage(preferred, courseLanguage string) string {
	if l := constants.NormalizeLanguage(preferred); constants.IsSupportedLanguage(l) {
		return l
	}
	if l := constants.NormalizeLanguage(courseLanguage); constants.IsSupportedLanguage(l) {
		return l
	}
	return constants.DefaultLanguage
}

// StudentName: full name in lang, then "first last", then email.
func StudentName(u *userModel.UserModel, lang string) string {
	if u == nil {
		return ""
	}
	if n := u.FullName(lang); n != "" {
		return n
	}
	if n := u.GivenName(); n != "" {
		return n
	}
	return u.Email
}

// PublicStudentName never falls back to the email address.
func PublicStudentName(u *userModel.UserModel, lang string) string {
	if u == nil {
		return ""
	}
	if n := u.FullName(lang); n != "" {
		return n
	}
	if n := u.GivenName(); n != "" {
		return n
	}
	other := constants.LanguageEnglish
	if lang == constants.LanguageEnglish {
		other = constants.LanguageArabic
	}
	return u.FullName(other)
}

func CourseTitle(c *courseModel.CourseModel, lang string) string {
	if c == nil {
		return ""
	}
	if lang == constants.LanguageEnglish {
		if v := trimmed(c.TitleEnglish); v != "" {
			return v
		}
	}
	return strings.TrimSpace(c.Title)
}

func Instructor(c *courseModel.CourseModel, lang string) string {
	if lang == constants.LanguageEnglish {
		if c != nil {
			if v := trimmed(c.AuthorNameEnglish); v != "" {
				return v
			}
			if v := trimmed(c.AuthorName); v != "" {
				return v
			}
		}
		return constants.DefaultInstructorEnglish
	}
	if c != nil {
		if v := trimmed(c.AuthorName); v != "" {
			return v
		}
	}
	return constants.DefaultInstructorArabic
}

func CourseDuration(c *courseModel.CourseModel, lang string) string {
	if c == nil {
		return ""
	}
	return duration.ForCourse(c.DurationValue, c.DurationUnit, c.Duration, lang == constants.LanguageArabic)
}

var arabicMonths = [...]string{
	"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
	"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
}

// FormatCompletionDate renders a Gregorian date with Latin digits:
// "15 سبتمبر 2025" for ar, "September 15, 2025" otherwise.
func FormatCompletionDate(t time.Time, lang string) string {
	if lang == constants.LanguageArabic {
		return fmt.Sprintf("%d %s %d", t.Day(), arabicMonths[t.Month()-1], t.Year())
	}
	return t.Format("January 2, 2006")
}

// BuildData assembles the text rendered onto a template. completedAt nil
// falls back to fallbackDate.
func BuildData(u *userModel.UserModel, c *courseModel.CourseModel, completedAt *time.Time, fallbackDate time.Time, lang, certificateID string) model.CertificateData {
	date := fallbackDate
	if completedAt != nil && !completedAt.IsZero() {
		date = *completedAt
	}
	return model.CertificateData{
		StudentName:    StudentName(u, lang),
		CourseTitle:    CourseTitle(c, lang),
		CompletionDate: FormatCompletionDate(date, lang),
		Duration:       CourseDuration(c, lang),
		Instructor:     Instructor(c, lang),
		CertificateID:  certificateID,
		Language:       lang,
	}
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
