// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"academy_backend/internals/configs"
	"academy_backend/internals/constants"
	"academy_backend/internals/features/certificates/layout"
	rateLimiter "academy_backend/internals/middlewares"
	authMiddleware "academy_backend/internals/middlewares/auth"
	routeDetails "academy_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg configs.AppConfig, m layout.Measurer) {
	startTime = time.Now()

	BaseRoutes(app, db, cfg)

	// ===================== GROUPS =====================

	// PUBLIC → JWT opsional (limiter per user kalau login)
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public",
		authMiddleware.OptionalAuthMiddleware(db),
		rateLimiter.GlobalRateLimiter(),
	)

	log.Println("[INFO] Setting up USER group...")
	user := app.Group("/api/u",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRolesSlice(constants.RoleErrorUser("user routes"), constants.AllRoles),
		rateLimiter.GlobalRateLimiter(),
	)

	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRolesSlice(constants.RoleErrorAdmin("admin routes"), constants.AdminOnly),
	)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Certificate routes...")
	routeDetails.CertificatePublicRoutes(public, db, cfg, m)
	routeDetails.CertificateUserRoutes(user, db, cfg)
	routeDetails.CertificateAdminRoutes(admin, db, m)

	log.Println("[INFO] Mounting Course routes...")
	routeDetails.CourseUserRoutes(user, db)
	routeDetails.CourseAdminRoutes(admin, db)

	log.Println("[INFO] Mounting User routes...")
	routeDetails.UserRoutes(user, db)
}
