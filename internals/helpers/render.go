package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Render menambahkan flash ke data view. Locals (CurrentUser, AppName, dll)
// ikut otomatis lewat PassLocalsToViews.
func Render(c *fiber.Ctx, view string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if _, ok := data["Flashes"]; !ok {
		data["Flashes"] = PopFlashes(c)
	}
	return c.Render(view, data)
}

// RenderStatus sama dengan Render dengan status HTTP tertentu.
func RenderStatus(c *fiber.Ctx, status int, view string, data fiber.Map) error {
	c.Status(status)
	return Render(c, view, data)
}

// IsAPI true untuk route JSON (/api/...).
func IsAPI(c *fiber.Ctx) bool {
	p := c.Path()
	return p == "/api" || strings.HasPrefix(p, "/api/")
}

// BackOr mengarahkan ke Referer jika ada, selain itu ke fallback.
func BackOr(c *fiber.Ctx, fallback string) string {
	if ref := c.Get(fiber.HeaderReferer); ref != "" {
		return ref
	}
	return fallback
}
