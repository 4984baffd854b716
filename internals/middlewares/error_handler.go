package middlewares

import (
	"log"

	"github.com/gofiber/fiber/v2"

	helper "schoolku_backend/internals/helpers"
)

// ErrorHandler: JSON untuk /api/*, halaman errors/404|403|500 untuk web.
func ErrorHandler(c *fiber.Ctx, err error) error {
	msg, code := helper.UserMessage(err)
	if code >= fiber.StatusInternalServerError {
		log.Printf("[ERROR] %s %s: %+v", c.Method(), c.OriginalURL(), err)
	}
	if helper.IsAPI(c) {
		return helper.FailJSON(c, err)
	}

	view := "errors/500"
	switch code {
	case fiber.StatusNotFound:
		view = "errors/404"
	case fiber.StatusForbidden:
		view = "errors/403"
	}
	if rerr := helper.RenderStatus(c, code, view, fiber.Map{"Title": "Erreur", "Message": msg, "Code": code}); rerr != nil {
		log.Printf("[ERROR] render %s: %v", view, rerr)
		return c.Status(code).SendString(msg)
	}
	return nil
}
