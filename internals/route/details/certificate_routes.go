package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"academy_backend/internals/configs"
	certRoute "academy_backend/internals/features/certificates/certificates/route"
	"academy_backend/internals/features/certificates/layout"
	templateRoute "academy_backend/internals/features/certificates/templates/route"
	rateLimiter "academy_backend/internals/middlewares"
)

func CertificatePublicRoutes(public fiber.Router, db *gorm.DB, cfg configs.AppConfig, m layout.Measurer) {
	certRoute.CertificatePublicRoutes(public, db, m, cfg.VerifyURL, rateLimiter.VerifyRateLimiter())
}

func CertificateUserRoutes(user fiber.Router, db *gorm.DB, cfg configs.AppConfig) {
	certRoute.CertificateUserRoutes(user, db, cfg.VerifyURL, rateLimiter.GenerateRateLimiter())
	templateRoute.CertificateTemplateUserRoutes(user, db)
}

func CertificateAdminRoutes(admin fiber.Router, db *gorm.DB, m layout.Measurer) {
	templateRoute.CertificateTemplateAdminRoutes(admin, db, m)
	certRoute.CertificateAdminRoutes(admin, db)
}
