package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "academy_backend/internals/features/users/user/controller"
)

// UserUserRoutes: profil diri (JWT). Nama di sini yang tampil di sertifikat.
func UserUserRoutes(app fiber.Router, db *gorm.DB) {
	selfCtrl := userController.NewUserSelfController(db)

	app.Get("/users/me", selfCtrl.GetMe)
	app.Patch("/users/me", selfCtrl.UpdateMe)
}
