package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userRoute "academy_backend/internals/features/users/user/route"
)

func UserRoutes(user fiber.Router, db *gorm.DB) {
	userRoute.UserUserRoutes(user, db)
}
