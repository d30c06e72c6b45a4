package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "academy_backend/internals/helpers"
)

// key: user_id kalau login, selain itu IP
func clientKey(c *fiber.Ctx) string {
	if id, ok := c.Locals("user_id").(string); ok && id != "" {
		return "u:" + id
	}
	return "ip:" + c.IP()
}

func tooMany(message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return helper.JsonError(c, fiber.StatusTooManyRequests, message)
	}
}

// Global limiter: untuk semua endpoint biasa
func GlobalRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:          100,
		Expiration:   1 * time.Minute,
		KeyGenerator: clientKey,
		LimitReached: tooMany("❌ Too many requests. Please try again later."),
	})
}

// Verifikasi & QR publik: lebih ketat, cegah enumerasi certificate_id
func VerifyRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:          30,
		Expiration:   1 * time.Minute,
		KeyGenerator: clientKey,
		LimitReached: tooMany("❌ Too many verification requests. Please try again in a minute."),
	})
}

// Generate sertifikat: cukup beberapa kali per menit per user
func GenerateRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:          10,
		Expiration:   1 * time.Minute,
		KeyGenerator: clientKey,
		LimitReached: tooMany("❌ Too many certificate requests. Please wait a moment."),
	})
}
