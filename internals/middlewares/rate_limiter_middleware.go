package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "schoolku_backend/internals/helpers"
)

func limitReached(message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if helper.IsAPI(c) || c.Method() == fiber.MethodGet {
			return helper.JsonError(c, fiber.StatusTooManyRequests, message)
		}
		return helper.FlashError(c, helper.BackOr(c, "/"), message)
	}
}

// Global limiter: untuk semua endpoint biasa
func GlobalRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        300,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return skipStatic(c.Path())
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: limitReached("Trop de requêtes. Veuillez réessayer plus tard."),
	})
}

// Rate limiter untuk login route (lebih ketat)
func LoginRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        5,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "login:" + c.IP()
		},
		LimitReached: limitReached("Trop de tentatives de connexion. Réessayez dans une minute."),
	})
}

// Formulir publik: inscription, contact, doléance, newsletter
func PublicFormRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        5,
		Expiration: 5 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "form:" + c.Path() + ":" + c.IP()
		},
		LimitReached: limitReached("Trop d'envois depuis votre adresse. Réessayez dans quelques minutes."),
	})
}

// Callback gateway pembayaran
func WebhookRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        60,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "hook:" + c.IP()
		},
		LimitReached: limitReached("Trop de notifications."),
	})
}
