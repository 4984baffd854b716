package middlewares

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginRateLimiter(t *testing.T) {
	app := fiber.New()
	app.Get("/api/login", LoginRateLimiter(), func(c *fiber.Ctx) error { return c.SendString("ok") })

	for i := 0; i < 5; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/login", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	}
	resp, err := app.Test(httptest.NewRequest("GET", "/api/login", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	m := NewMetrics()
	app := fiber.New()
	app.Use(m.Handler())
	app.Get("/eleves/:id", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/metrics", m.Endpoint())

	_, err := app.Test(httptest.NewRequest("GET", "/eleves/123", nil))
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `schoolku_http_requests_total{method="GET",route="/eleves/:id",status="200"} 1`)
}

func TestRecoveryMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(RecoveryMiddleware())
	app.Get("/panic", func(c *fiber.Ctx) error { panic("boom") })

	resp, err := app.Test(httptest.NewRequest("GET", "/panic", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestErrorHandlerAPI(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/api/x", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusNotFound, "Élève introuvable") })

	resp, err := app.Test(httptest.NewRequest("GET", "/api/x", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Élève introuvable")
}
