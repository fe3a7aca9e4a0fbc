package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-shop/auth"
)

// testErrorHandler maps the package's typed errors to statuses so gate
// behavior is observable through app.Test.
func testErrorHandler(c *fiber.Ctx, err error) error {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr.Code >= http.StatusBadRequest {
		return c.Status(richErr.Code).JSON(fiber.Map{"message": richErr.Message})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
}

func issueAccess(t *testing.T, service auth.TokenService, userID uuid.UUID, roles []string, opts ...auth.IssueOption) string {
	t.Helper()
	token, err := service.Issue(auth.TokenKindAccess, &auth.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID.String()},
		Roles:            roles,
	}, opts...)
	require.NoError(t, err)
	return token
}

func TestAuthenticate(t *testing.T) {
	cfg := newTestConfig()
	service := auth.NewTokenService(cfg, testLogger{})
	carriers := auth.NewCarriers(cfg)
	userID := uuid.New()

	newApp := func() *fiber.App {
		app := fiber.New(fiber.Config{ErrorHandler: testErrorHandler})
		app.Get("/whoami", auth.Authenticate(service, carriers, testLogger{}), func(c *fiber.Ctx) error {
			claims, ok := auth.ClaimsFromLocals(c)
			require.True(t, ok)

			fromCtx, ok := auth.ClaimsFromContext(c.UserContext())
			require.True(t, ok)
			require.Equal(t, claims, fromCtx)

			return c.JSON(fiber.Map{"sub": claims.UserID()})
		})
		return app
	}

	t.Run("passes a valid access token", func(t *testing.T) {
		token := issueAccess(t, service, userID, []string{auth.RoleCustomer})

		req := httptest.NewRequest(fiber.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: token})

		res, err := newApp().Test(req)
		require.NoError(t, err)
		defer res.Body.Close()

		assert.Equal(t, fiber.StatusOK, res.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
		assert.Equal(t, userID.String(), body["sub"])
	})

	t.Run("rejects a missing carrier", func(t *testing.T) {
		res, err := newApp().Test(httptest.NewRequest(fiber.MethodGet, "/whoami", nil))
		require.NoError(t, err)
		defer res.Body.Close()

		assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		token := issueAccess(t, service, userID, nil, auth.WithTTL(-time.Minute))

		req := httptest.NewRequest(fiber.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: token})

		res, err := newApp().Test(req)
		require.NoError(t, err)
		defer res.Body.Close()

		assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: "garbage"})

		res, err := newApp().Test(req)
		require.NoError(t, err)
		defer res.Body.Close()

		assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	})
}

func TestRequireRole(t *testing.T) {
	cfg := newTestConfig()
	service := auth.NewTokenService(cfg, testLogger{})
	carriers := auth.NewCarriers(cfg)

	app := fiber.New(fiber.Config{ErrorHandler: testErrorHandler})
	app.Get("/admin",
		auth.Authenticate(service, carriers, testLogger{}),
		auth.RequireRole(auth.RoleAdmin),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)

	request := func(roles []string) *http.Response {
		token := issueAccess(t, service, uuid.New(), roles)
		req := httptest.NewRequest(fiber.MethodGet, "/admin", nil)
		req.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: token})

		res, err := app.Test(req)
		require.NoError(t, err)
		return res
	}

	t.Run("passes the role holder", func(t *testing.T) {
		res := request([]string{auth.RoleCustomer, auth.RoleAdmin})
		defer res.Body.Close()
		assert.Equal(t, fiber.StatusOK, res.StatusCode)
	})

	t.Run("forbids everyone else", func(t *testing.T) {
		res := request([]string{auth.RoleCustomer})
		defer res.Body.Close()
		assert.Equal(t, fiber.StatusForbidden, res.StatusCode)
	})

	t.Run("requires authentication first", func(t *testing.T) {
		res, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/admin", nil))
		require.NoError(t, err)
		defer res.Body.Close()
		assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	})
}

func TestRequireOwnerOrRole(t *testing.T) {
	cfg := newTestConfig()
	service := auth.NewTokenService(cfg, testLogger{})
	carriers := auth.NewCarriers(cfg)

	ownerID := uuid.New()
	resourceID := uuid.New()

	lookup := stubOwnership{owners: map[string]uuid.UUID{
		resourceID.String(): ownerID,
	}}

	app := fiber.New(fiber.Config{ErrorHandler: testErrorHandler})
	app.Put("/orders/:id",
		auth.Authenticate(service, carriers, testLogger{}),
		auth.RequireOwnerOrRole(lookup, auth.RoleAdmin),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)

	request := func(userID uuid.UUID, roles []string, target string) *http.Response {
		token := issueAccess(t, service, userID, roles)
		req := httptest.NewRequest(fiber.MethodPut, "/orders/"+target, nil)
		req.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: token})

		res, err := app.Test(req)
		require.NoError(t, err)
		return res
	}

	t.Run("passes the owner", func(t *testing.T) {
		res := request(ownerID, []string{auth.RoleCustomer}, resourceID.String())
		defer res.Body.Close()
		assert.Equal(t, fiber.StatusOK, res.StatusCode)
	})

	t.Run("passes an admin who does not own", func(t *testing.T) {
		res := request(uuid.New(), []string{auth.RoleAdmin}, resourceID.String())
		defer res.Body.Close()
		assert.Equal(t, fiber.StatusOK, res.StatusCode)
	})

	t.Run("forbids an unrelated customer", func(t *testing.T) {
		res := request(uuid.New(), []string{auth.RoleCustomer}, resourceID.String())
		defer res.Body.Close()
		assert.Equal(t, fiber.StatusForbidden, res.StatusCode)
	})

	t.Run("absent resource surfaces as not found", func(t *testing.T) {
		res := request(ownerID, []string{auth.RoleCustomer}, uuid.NewString())
		defer res.Body.Close()
		assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
	})
}
