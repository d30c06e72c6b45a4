package controller

import (
	"academy_backend/internals/constants"
	certModel "academy_backend/internals/features/certificates/certificates/model"
)

// SampleData: isi contoh untuk preview builder.
func SampleData(lang string) certModel.CertificateData {
	if lang == constants.LanguageEnglish {
		return certModel.CertificateData{
			StudentName:    "Ahmad Mohammed",
			CourseTitle:    "Foundations of Tajweed",
			CompletionDate: "September 15, 2025",
			Duration:       "12 hours",
			Instructor:     constants.DefaultInstructorEnglish,
			CertificateID:  "CERT-SAMPLE-0001",
			Language:       constants.LanguageEnglish,
		}
	}
	return certModel.CertificateData{
		StudentName:    "أحمد محمد",
		CourseTitle:    "أساسيات التجويد",
		CompletionDate: "15 سبتمبر 2025",
		Duration:       "12 ساعة",
		Instructor:     constants.DefaultInstructorArabic,
		CertificateID:  "CERT-SAMPLE-0001",
		Language:       constants.LanguageArabic,
	}
}
