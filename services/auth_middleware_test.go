package services

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/levelup-labs/levelup_api/shared"
)

func newAuthTestApp(t *testing.T) (*fiber.App, *JWTService) {
	t.Helper()
	jwtSvc := &JWTService{
		AccessTokenDuration: time.Hour,
		jwtSecretKey:        "test-secret",
	}
	mw := &AuthMiddleware{jwtSvc: jwtSvc}

	app := fiber.New()
	app.Get("/whoami", mw.RequiredAuth(), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(shared.UserID).(string))
	})
	return app, jwtSvc
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	app, jwtSvc := newAuthTestApp(t)

	token, _, err := jwtSvc.GenerateToken("user-123")
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "user-123", string(body))
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	app, _ := newAuthTestApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/whoami", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_GarbageToken(t *testing.T) {
	app, _ := newAuthTestApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_WrongSigningKey(t *testing.T) {
	app, _ := newAuthTestApp(t)

	other := &JWTService{AccessTokenDuration: time.Hour, jwtSecretKey: "other-secret"}
	token, _, err := other.GenerateToken("user-123")
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
