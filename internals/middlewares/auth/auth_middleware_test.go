package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"academy_backend/internals/configs"
	"academy_backend/internals/constants"
	"academy_backend/internals/databases/dbtest"
	userModel "academy_backend/internals/features/users/user/model"
)

const testSecret = "test-secret"

func sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return tok
}

func TestAuthMiddleware(t *testing.T) {
	configs.JWTSecret = testSecret
	db := dbtest.Open(t)

	active := &userModel.UserModel{Email: "a@example.com"}
	require.NoError(t, db.Create(active).Error)
	inactive := &userModel.UserModel{Email: "b@example.com"}
	require.NoError(t, db.Create(inactive).Error)
	require.NoError(t, db.Model(inactive).Update("is_active", false).Error)

	app := fiber.New()
	app.Get("/me", AuthMiddleware(db), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("user_id").(string) + "|" + c.Locals("userRole").(string))
	})
	app.Get("/admin", AuthMiddleware(db), OnlyRoles("admins only", constants.AdminOnly...), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	exp := time.Now().Add(time.Hour).Unix()
	call := func(path, token string) int {
		req := httptest.NewRequest("GET", path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	userTok := sign(t, jwt.MapClaims{"id": active.ID.String(), "role": "user", "exp": exp})
	adminTok := sign(t, jwt.MapClaims{"id": active.ID.String(), "role": "Admin", "exp": exp})

	assert.Equal(t, fiber.StatusOK, call("/me", userTok))
	assert.Equal(t, fiber.StatusUnauthorized, call("/me", ""))
	assert.Equal(t, fiber.StatusUnauthorized, call("/me", "garbage"))
	assert.Equal(t, fiber.StatusUnauthorized, call("/me", sign(t, jwt.MapClaims{"id": active.ID.String(), "exp": time.Now().Add(-time.Hour).Unix()})))
	assert.Equal(t, fiber.StatusUnauthorized, call("/me", sign(t, jwt.MapClaims{"id": uuid.NewString(), "exp": exp})))
	assert.Equal(t, fiber.StatusForbidden, call("/me", sign(t, jwt.MapClaims{"id": inactive.ID.String(), "exp": exp})))

	assert.Equal(t, fiber.StatusForbidden, call("/admin", userTok))
	assert.Equal(t, fiber.StatusNoContent, call("/admin", adminTok))
}

func TestCookieFallbackAndOptionalAuth(t *testing.T) {
	configs.JWTSecret = testSecret
	db := dbtest.Open(t)
	u := &userModel.UserModel{Email: "c@example.com"}
	require.NoError(t, db.Create(u).Error)
	tok := sign(t, jwt.MapClaims{"id": u.ID.String(), "role": "user", "exp": time.Now().Add(time.Hour).Unix()})

	app := fiber.New()
	app.Get("/", OptionalAuthMiddleware(db), func(c *fiber.Ctx) error {
		id, _ := c.Locals("user_id").(string)
		return c.SendString(id)
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Cookie", "access_token="+tok)
	resp, err := app.Test(req)
	require.NoError(t, err)
	body := make([]byte, 64)
	n, _ := resp.Body.Read(body)
	assert.Equal(t, u.ID.String(), string(body[:n]))

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer nope")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
