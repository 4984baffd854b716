// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"log"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	userModel "schoolku_backend/internals/features/users/user/model"
	helper "schoolku_backend/internals/helpers"
)

// path statis tidak perlu lookup user
var skipPrefixes = []string{"/static/", "/media/", "/metrics", "/favicon.ico"}

func skip(path string) bool {
	for _, p := range skipPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// LoadUser membaca user dari session dan mengisi Locals. Tamu tetap lewat.
func LoadUser(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if skip(c.Path()) {
			return c.Next()
		}
		raw := helper.SessionUser(c)
		if raw == "" {
			return c.Next()
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			_ = helper.LogOut(c)
			return c.Next()
		}

		var user userModel.UserModel
		err = db.WithContext(c.UserContext()).First(&user, "id = ?", id).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			_ = helper.LogOut(c)
			return c.Next()
		case err != nil:
			log.Printf("[ERROR] LoadUser: %v", err)
			return c.Next()
		case !user.IsActive:
			log.Printf("[INFO] session user %s nonaktif, logout", user.ID)
			_ = helper.LogOut(c)
			return c.Next()
		}

		SetUser(c, &user)
		return c.Next()
	}
}

// SetUser mengisi Locals yang dibaca controller dan view.
func SetUser(c *fiber.Ctx, user *userModel.UserModel) {
	c.Locals(helper.LocalUserID, user.ID.String())
	c.Locals(helper.LocalUserRole, user.Role)
	c.Locals(helper.LocalUserName, user.FullName)
	c.Locals(helper.LocalCurrentUser, user)
}

// CurrentUser nil untuk tamu.
func CurrentUser(c *fiber.Ctx) *userModel.UserModel {
	u, _ := c.Locals(helper.LocalCurrentUser).(*userModel.UserModel)
	return u
}

// RequireLogin: web → /auth/login?next=..., API → 401.
func RequireLogin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := helper.CurrentUserID(c); ok {
			return c.Next()
		}
		return unauthenticated(c)
	}
}

func unauthenticated(c *fiber.Ctx) error {
	if helper.IsAPI(c) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Authentification requise")
	}
	next := url.QueryEscape(c.OriginalURL())
	return helper.RedirectWithFlash(c, "/auth/login?next="+next, "warning", "Veuillez vous connecter pour continuer.")
}
