package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"academy_backend/internals/features/certificates/certificates/controller"
	"academy_backend/internals/features/certificates/layout"
)

// CertificatePublicRoutes: tanpa login (verifikasi, download, QR).
// limit dipasang di endpoint yang menerima certificate_id dari luar.
func CertificatePublicRoutes(public fiber.Router, db *gorm.DB, m layout.Measurer, verifyURL func(string) string, limit fiber.Handler) {
	ctl := controller.NewCertificateController(db, m, verifyURL)

	g := public.Group("/certificates")
	g.Get("/verify/:certificate_id", limit, ctl.Verify)
	g.Get("/:certificate_id/download", limit, ctl.Download)
	g.Get("/:certificate_id/qr.png", limit, ctl.QRCode)
}

func CertificateUserRoutes(user fiber.Router, db *gorm.DB, verifyURL func(string) string, limit fiber.Handler) {
	ctl := controller.NewCertificateController(db, nil, verifyURL)

	g := user.Group("/certificates")
	g.Post("/generate", limit, ctl.Generate)
}

func CertificateAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewCertificateController(db, nil, nil)

	g := admin.Group("/certificates")
	g.Get("/", ctl.List)
}
