package auth

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// OptionalAuthMiddleware: route publik. Token valid → user context diisi,
// selain itu lanjut sebagai anonymous.
func OptionalAuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return c.Next()
		}

		claims, err := parseClaims(tokenString)
		if err != nil {
			log.Println("[WARN] Token tidak valid, lanjut sebagai anonymous:", err)
			return c.Next()
		}
		userID, err := extractUserID(claims)
		if err != nil {
			return c.Next()
		}
		if err := ensureUserActive(db.WithContext(c.UserContext()), userID); err != nil {
			return c.Next()
		}

		c.Locals("user_id", userID.String())
		storeBasicClaimsToLocals(c, claims)
		return c.Next()
	}
}
