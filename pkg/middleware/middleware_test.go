package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/TroHub/ListingGuard/pkg/config"
	"github.com/TroHub/ListingGuard/pkg/domain/moderation"
	"github.com/TroHub/ListingGuard/pkg/infra/jwt"
	"github.com/TroHub/ListingGuard/pkg/middleware"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type workerMock struct {
	mock.Mock
}

func (m *workerMock) Shutdown() { m.Called() }
func (m *workerMock) StartWorkers(n int) { m.Called(n) }
func (m *workerMock) Process(results []*moderation.Result, mode string, elapsed time.Duration) {
	m.Called(results, mode, elapsed)
}
func (m *workerMock) RecordRequest(method string, statusCode int) { m.Called(method, statusCode) }

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)
	return logger
}

func adminApp(t *testing.T, secret string) *fiber.App {
	t.Helper()
	manager := jwt.NewJwtManager(&config.ServerConfig{SecretKey: secret})
	app := fiber.New()
	app.Use(middleware.NewAdminAuthMiddleware(quietLogger(), manager).Middleware())
	app.Post("/api/config", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	return app
}

func TestAdminAuthMiddleware(t *testing.T) {
	secret := "admin-secret"
	manager := jwt.NewJwtManager(&config.ServerConfig{SecretKey: secret})
	valid, err := manager.CreateToken("ops")
	require.NoError(t, err)

	noRole, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, &jwt.Claims{
		RegisteredClaims: jwtlib.RegisteredClaims{IssuedAt: jwtlib.NewNumericDate(time.Now())},
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "no header", header: "", want: fiber.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", want: fiber.StatusUnauthorized},
		{name: "empty token", header: "Bearer ", want: fiber.StatusUnauthorized},
		{name: "garbage token", header: "Bearer abc.def.ghi", want: fiber.StatusUnauthorized},
		{name: "token without role", header: "Bearer " + noRole, want: fiber.StatusForbidden},
		{name: "valid token", header: "Bearer " + valid, want: fiber.StatusOK},
	}

	app := adminApp(t, secret)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/config", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestPanicRecoverMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.NewPanicRecoverMiddleware(quietLogger()).Middleware())
	app.Get("/boom", func(c *fiber.Ctx) error {
		panic("model exploded")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestCORSGlobalMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.NewCORSGlobalMiddleware(
		middleware.SplitOrigins("https://admin.trohub.vn, https://trohub.vn"),
		[]string{"GET", "POST", "OPTIONS"},
		false,
		nil,
		"600",
	).Middleware())
	app.Post("/api/moderate", func(c *fiber.Ctx) error { return c.SendString("OK") })

	req := httptest.NewRequest(http.MethodOptions, "/api/moderate", nil)
	req.Header.Set("Origin", "https://trohub.vn")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "https://trohub.vn", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, OPTIONS", resp.Header.Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "600", resp.Header.Get("Access-Control-Max-Age"))

	req = httptest.NewRequest(http.MethodPost, "/api/moderate", nil)
	req.Header.Set("Origin", "https://evil.example")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestSplitOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, middleware.SplitOrigins("*"))
	assert.Equal(t, []string{"a", "b"}, middleware.SplitOrigins(" a , ,b"))
	assert.Nil(t, middleware.SplitOrigins(""))
}

func TestMetricsMiddleware(t *testing.T) {
	worker := new(workerMock)
	worker.On("RecordRequest", http.MethodPost, fiber.StatusOK).Once()
	worker.On("RecordRequest", http.MethodGet, fiber.StatusNotFound).Once()

	app := fiber.New()
	app.Use(middleware.NewMetricsMiddleware(worker).Middleware())
	app.Post("/api/moderate", func(c *fiber.Ctx) error { return c.SendString("OK") })
	app.Get("/missing", func(c *fiber.Ctx) error { return fiber.ErrNotFound })

	_, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/moderate", nil))
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.NoError(t, err)

	worker.AssertExpectations(t)
}
