package auth

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/constants"
	userModel "schoolku_backend/internals/features/users/user/model"
)

func withUser(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if role != "" {
			SetUser(c, &userModel.UserModel{ID: uuid.New(), Role: role, FullName: "Test", IsActive: true})
		}
		return c.Next()
	}
}

func newApp(role string) *fiber.App {
	app := fiber.New()
	ok := func(c *fiber.Ctx) error { return c.SendString("ok") }
	guard := OnlyRoles("réservé à la direction", constants.StaffRoles...)

	app.Get("/classes", withUser(role), guard, ok)
	app.Get("/api/classes/x/students", withUser(role), guard, ok)
	app.Get("/profil", withUser(role), RequireLogin(), ok)
	app.Get("/auth/login", withUser(role), GuestOnly(), ok)
	return app
}

func TestOnlyRoles(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		path     string
		status   int
		location string
	}{
		{"admin allowed", constants.RoleAdmin, "/classes", 200, ""},
		{"directeur allowed", constants.RoleDirector, "/classes", 200, ""},
		{"teacher redirected", constants.RoleTeacher, "/classes", 303, "/dashboard"},
		{"parent api forbidden", constants.RoleParent, "/api/classes/x/students", 403, ""},
		{"guest redirected to login", "", "/classes", 303, "/auth/login?next=%2Fclasses"},
		{"guest api unauthorized", "", "/api/classes/x/students", 401, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := newApp(tt.role).Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.location != "" {
				assert.Equal(t, tt.location, resp.Header.Get("Location"))
			}
		})
	}
}

func TestForbiddenAPIMessage(t *testing.T) {
	resp, err := newApp(constants.RoleParent).Test(httptest.NewRequest("GET", "/api/classes/x/students", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "réservé à la direction")
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireLoginAndGuestOnly(t *testing.T) {
	resp, err := newApp(constants.RoleParent).Test(httptest.NewRequest("GET", "/profil", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = newApp("").Test(httptest.NewRequest("GET", "/profil", nil))
	require.NoError(t, err)
	assert.Equal(t, 303, resp.StatusCode)

	resp, err = newApp(constants.RoleTeacher).Test(httptest.NewRequest("GET", "/auth/login", nil))
	require.NoError(t, err)
	assert.Equal(t, 303, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
}
