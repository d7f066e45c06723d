package middleware_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/b-himadri/bakery-backend-api/middleware"
	"github.com/b-himadri/bakery-backend-api/model"
)

const testSecret = "test-secret"

func signToken(t *testing.T, role string, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   7,
		"email": "baker@example.com",
		"role":  role,
		"exp":   exp.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func echoUser(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"user_id": c.Locals("user_id"),
		"role":    c.Locals("user_role"),
	})
}

func TestAuthRequired(t *testing.T) {
	app := fiber.New()
	app.Get("/private", middleware.AuthRequired(testSecret), echoUser)

	t.Run("MissingHeader", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/private", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/private", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		token := signToken(t, model.RoleUser, time.Now().Add(-time.Hour))
		req := httptest.NewRequest("GET", "/private", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("ValidToken", func(t *testing.T) {
		token := signToken(t, model.RoleUser, time.Now().Add(time.Hour))
		req := httptest.NewRequest("GET", "/private", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})
}

func TestOptionalAuth(t *testing.T) {
	app := fiber.New()
	app.Get("/cart", middleware.OptionalAuth(testSecret), echoUser)

	t.Run("AnonymousPassesThrough", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/cart", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("BadTokenStillPasses", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/cart", nil)
		req.Header.Set("Authorization", "Bearer junk")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})
}

func TestRoleRequired(t *testing.T) {
	app := fiber.New()
	app.Get("/admin",
		middleware.AuthRequired(testSecret),
		middleware.RoleRequired(model.RoleAdmin),
		echoUser,
	)

	t.Run("UserRoleForbidden", func(t *testing.T) {
		token := signToken(t, model.RoleUser, time.Now().Add(time.Hour))
		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 403, resp.StatusCode)
	})

	t.Run("AdminAllowed", func(t *testing.T) {
		token := signToken(t, model.RoleAdmin, time.Now().Add(time.Hour))
		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})
}
