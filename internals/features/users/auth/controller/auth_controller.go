package controller

import (
	"log"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/users/auth/dto"
	"schoolku_backend/internals/features/users/auth/service"
	helper "schoolku_backend/internals/helpers"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// GET /auth/login
func (ac *AuthController) LoginPage(c *fiber.Ctx) error {
	return helper.Render(c, "auth/login", fiber.Map{
		"Title": "Connexion",
		"Next":  c.Query("next"),
	})
}

// POST /auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.FlashError(c, "/auth/login", "Formulaire invalide")
	}

	user, err := service.Authenticate(c.UserContext(), ac.DB, req)
	if err != nil {
		if _, ok := helper.IsValidationError(err); ok {
			log.Printf("[INFO] login gagal email=%s ip=%s", req.Email, c.IP())
		}
		return helper.FailRedirect(c, "/auth/login?next="+url.QueryEscape(req.SafeNext("")), err)
	}

	if err := helper.LogIn(c, user.ID.String(), user.Role, user.FullName, "Bienvenue, "+user.FullName+" !"); err != nil {
		return err
	}
	log.Printf("[INFO] login %s (%s)", user.Email, user.Role)
	return c.Redirect(req.SafeNext("/dashboard"), fiber.StatusSeeOther)
}

// GET /auth/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	if err := helper.LogOut(c); err != nil {
		log.Printf("[WARN] logout: %v", err)
	}
	return helper.FlashSuccess(c, "/auth/login", "Vous avez été déconnecté.")
}

// GET /auth/register
func (ac *AuthController) RegisterPage(c *fiber.Ctx) error {
	return helper.Render(c, "auth/register", fiber.Map{"Title": "Créer un compte parent"})
}

// POST /auth/register
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.FlashError(c, "/auth/register", "Formulaire invalide")
	}
	user, err := service.Register(c.UserContext(), ac.DB, req)
	if err != nil {
		return helper.FailRedirect(c, "/auth/register", err)
	}
	log.Printf("[INFO] akun parent baru %s", user.Email)
	return helper.FlashSuccess(c, "/auth/login", "Compte créé. Vous pouvez maintenant vous connecter.")
}

// GET /profil
func (ac *AuthController) Profile(c *fiber.Ctx) error {
	return helper.Render(c, "auth/profile", fiber.Map{
		"Title": "Mon profil",
		"User":  authMiddleware.CurrentUser(c),
	})
}

// POST /profil/mot-de-passe
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	user := authMiddleware.CurrentUser(c)
	if user == nil {
		return fiber.ErrUnauthorized
	}
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.FlashError(c, "/profil", "Formulaire invalide")
	}
	if err := service.ChangePassword(c.UserContext(), ac.DB, user, req); err != nil {
		return helper.FailRedirect(c, "/profil", err)
	}
	return helper.FlashSuccess(c, "/profil", "Mot de passe modifié.")
}
