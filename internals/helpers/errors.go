package helper

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const genericErrorMessage = "Une erreur est survenue, veuillez réessayer."

// NotFound → fiber 404 (ditangkap ErrorHandler / FailRedirect).
func NotFound(msg string) error {
	if msg == "" {
		msg = "Ressource introuvable"
	}
	return fiber.NewError(fiber.StatusNotFound, msg)
}

// DBError: record not found → 404, lainnya di-wrap.
func DBError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(what + " introuvable")
	}
	return errors.Wrapf(err, "db %s", what)
}

// UserMessage: pesan yang aman ditampilkan ke user.
func UserMessage(err error) (string, int) {
	if ve, ok := IsValidationError(err); ok {
		return Messages(ve), fiber.StatusUnprocessableEntity
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Message, fe.Code
	}
	return genericErrorMessage, fiber.StatusInternalServerError
}

// FailRedirect: error service → flash + redirect. Error internal di-log.
func FailRedirect(c *fiber.Ctx, to string, err error) error {
	msg, code := UserMessage(err)
	if code >= 500 {
		log.Printf("[ERROR] %s %s: %+v", c.Method(), c.Path(), err)
	}
	return FlashError(c, to, msg)
}

// FailJSON: versi API dari FailRedirect.
func FailJSON(c *fiber.Ctx, err error) error {
	if ve, ok := IsValidationError(err); ok {
		return JsonValidationError(c, ve.Map())
	}
	msg, code := UserMessage(err)
	if code >= 500 {
		log.Printf("[ERROR] %s %s: %+v", c.Method(), c.Path(), err)
	}
	return JsonError(c, code, msg)
}

// IsDuplicateKey: pelanggaran unique Postgres (SQLSTATE 23505).
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint") || strings.Contains(msg, "23505")
}
