package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-shop/auth"
)

func findCookie(t *testing.T, res *http.Response, name string) *http.Cookie {
	t.Helper()
	for _, cookie := range res.Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestCarriers_Attach(t *testing.T) {
	cfg := newTestConfig()
	carriers := auth.NewCarriers(cfg)

	app := fiber.New()
	app.Get("/attach", func(c *fiber.Ctx) error {
		carriers.Attach(c, auth.TokenKindAccess, "access-value")
		carriers.Attach(c, auth.TokenKindRefresh, "refresh-value")
		return c.SendStatus(fiber.StatusOK)
	})

	res, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/attach", nil))
	require.NoError(t, err)
	defer res.Body.Close()

	t.Run("access cookie carries fixed attributes", func(t *testing.T) {
		cookie := findCookie(t, res, auth.AccessTokenCookie)
		require.NotNil(t, cookie)

		assert.Equal(t, "access-value", cookie.Value)
		assert.Equal(t, "/", cookie.Path)
		assert.True(t, cookie.HttpOnly)
		assert.False(t, cookie.Secure)
		assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
		assert.Equal(t, int(cfg.accessTTL.Seconds()), cookie.MaxAge)
	})

	t.Run("refresh cookie gets the refresh lifetime", func(t *testing.T) {
		cookie := findCookie(t, res, auth.RefreshTokenCookie)
		require.NotNil(t, cookie)

		assert.Equal(t, "refresh-value", cookie.Value)
		assert.Equal(t, int(cfg.refreshTTL.Seconds()), cookie.MaxAge)
	})
}

func TestCarriers_SecureFlag(t *testing.T) {
	cfg := newTestConfig()
	cfg.secure = true
	carriers := auth.NewCarriers(cfg)

	app := fiber.New()
	app.Get("/attach", func(c *fiber.Ctx) error {
		carriers.Attach(c, auth.TokenKindAccess, "access-value")
		return c.SendStatus(fiber.StatusOK)
	})

	res, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/attach", nil))
	require.NoError(t, err)
	defer res.Body.Close()

	cookie := findCookie(t, res, auth.AccessTokenCookie)
	require.NotNil(t, cookie)
	assert.True(t, cookie.Secure)
}

func TestCarriers_ClearAll(t *testing.T) {
	carriers := auth.NewCarriers(newTestConfig())

	app := fiber.New()
	app.Get("/clear", func(c *fiber.Ctx) error {
		carriers.ClearAll(c)
		return c.SendStatus(fiber.StatusOK)
	})

	res, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/clear", nil))
	require.NoError(t, err)
	defer res.Body.Close()

	for _, name := range []string{auth.AccessTokenCookie, auth.RefreshTokenCookie} {
		cookie := findCookie(t, res, name)
		require.NotNil(t, cookie, name)

		assert.Empty(t, cookie.Value)
		if !cookie.Expires.IsZero() {
			assert.True(t, cookie.Expires.Before(time.Now()))
		} else {
			assert.Negative(t, cookie.MaxAge)
		}
	}
}

func TestCarriers_Extract(t *testing.T) {
	carriers := auth.NewCarriers(newTestConfig())

	app := fiber.New()
	app.Get("/extract", func(c *fiber.Ctx) error {
		return c.SendString(carriers.Extract(c, auth.TokenKindAccess))
	})

	t.Run("returns the cookie value", func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodGet, "/extract", nil)
		req.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: "the-token"})

		res, err := app.Test(req)
		require.NoError(t, err)
		defer res.Body.Close()

		body := make([]byte, 32)
		n, _ := res.Body.Read(body)
		assert.Equal(t, "the-token", string(body[:n]))
	})

	t.Run("returns empty when the carrier is absent", func(t *testing.T) {
		res, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/extract", nil))
		require.NoError(t, err)
		defer res.Body.Close()

		body := make([]byte, 32)
		n, _ := res.Body.Read(body)
		assert.Empty(t, string(body[:n]))
	})
}
