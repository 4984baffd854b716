package helper

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals yang diisi middleware auth.LoadUser
const (
	LocalUserID      = "user_id"
	LocalUserRole    = "userRole"
	LocalUserName    = "userName"
	LocalCurrentUser = "CurrentUser"
)

// CurrentUserID dari Locals; ok=false untuk tamu.
func CurrentUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	s, ok := c.Locals(LocalUserID).(string)
	if !ok || s == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// CurrentUserPtr untuk kolom "created_by" nullable.
func CurrentUserPtr(c *fiber.Ctx) *uuid.UUID {
	if id, ok := CurrentUserID(c); ok {
		return &id
	}
	return nil
}

func CurrentRole(c *fiber.Ctx) string {
	r, _ := c.Locals(LocalUserRole).(string)
	return r
}

func IsRole(c *fiber.Ctx, roles ...string) bool {
	role := CurrentRole(c)
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
