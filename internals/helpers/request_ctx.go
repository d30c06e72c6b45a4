package helper

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// ReqCtx: context standar dari request (membawa timeout middleware).
func ReqCtx(c *fiber.Ctx) context.Context {
	if uc := c.UserContext(); uc != nil {
		return uc
	}
	return context.Background()
}
