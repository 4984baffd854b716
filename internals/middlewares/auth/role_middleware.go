package auth

import (
	"log"

	"github.com/gofiber/fiber/v2"

	helper "schoolku_backend/internals/helpers"
)

// RoleMiddlewareWithCustomError: tamu → login; role tidak cocok → flash +
// redirect ke dashboard (web) atau 403 JSON (/api).
func RoleMiddlewareWithCustomError(allowedRoles []string, customForbiddenMessage string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := helper.CurrentUserID(c); !ok {
			return unauthenticated(c)
		}

		role := helper.CurrentRole(c)
		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}

		if customForbiddenMessage == "" {
			customForbiddenMessage = "Vous n'avez pas les droits nécessaires pour accéder à cette page."
		}
		log.Printf("[INFO] akses ditolak role=%s path=%s", role, c.Path())

		if helper.IsAPI(c) {
			return helper.JsonError(c, fiber.StatusForbidden, customForbiddenMessage)
		}
		return helper.FlashError(c, "/dashboard", customForbiddenMessage)
	}
}

// Shortcut biar lebih clean pemakaian
func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	return RoleMiddlewareWithCustomError(roles, customMessage)
}

// GuestOnly: user yang sudah login diarahkan ke dashboard (halaman login/register).
func GuestOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := helper.CurrentUserID(c); ok {
			return c.Redirect("/dashboard", fiber.StatusSeeOther)
		}
		return c.Next()
	}
}
