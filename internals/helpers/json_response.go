package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// APIResponse adalah bentuk tunggal semua jawaban /api.
type APIResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	ErrorCode string            `json:"error_code,omitempty"`
	Errors    map[string]string `json:"errors,omitempty"`
	Data      any               `json:"data,omitempty"`
}

var errorCodes = map[int]string{
	fiber.StatusBadRequest:          "BAD_REQUEST",
	fiber.StatusUnauthorized:        "UNAUTHORIZED",
	fiber.StatusForbidden:           "FORBIDDEN",
	fiber.StatusNotFound:            "NOT_FOUND",
	fiber.StatusConflict:            "CONFLICT",
	fiber.StatusUnprocessableEntity: "VALIDATION_ERROR",
	fiber.StatusTooManyRequests:     "TOO_MANY_REQUESTS",
}

func errorCodeFor(status int) string {
	if code, ok := errorCodes[status]; ok {
		return code
	}
	if status >= fiber.StatusInternalServerError {
		return "INTERNAL_ERROR"
	}
	return "ERROR"
}

func orDefault(msg, def string) string {
	if strings.TrimSpace(msg) == "" {
		return def
	}
	return msg
}

// JsonError untuk error umum; status 0 dianggap 500.
func JsonError(c *fiber.Ctx, status int, message string) error {
	if status == 0 {
		status = fiber.StatusInternalServerError
	}
	return c.Status(status).JSON(APIResponse{
		Message:   orDefault(message, fiber.ErrInternalServerError.Message),
		ErrorCode: errorCodeFor(status),
	})
}

// JsonValidationError: 422 dengan pesan per champ.
func JsonValidationError(c *fiber.Ctx, fieldErrors map[string]string) error {
	if fieldErrors == nil {
		fieldErrors = map[string]string{}
	}
	return c.Status(fiber.StatusUnprocessableEntity).JSON(APIResponse{
		Message:   "Données invalides",
		ErrorCode: errorCodeFor(fiber.StatusUnprocessableEntity),
		Errors:    fieldErrors,
	})
}

func jsonSuccess(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(APIResponse{Success: true, Message: message, Data: data})
}

func JsonOK(c *fiber.Ctx, message string, data any) error {
	return jsonSuccess(c, fiber.StatusOK, orDefault(message, "ok"), data)
}

func JsonCreated(c *fiber.Ctx, message string, data any) error {
	return jsonSuccess(c, fiber.StatusCreated, orDefault(message, "créé"), data)
}

func JsonDeleted(c *fiber.Ctx, message string, data any) error {
	return jsonSuccess(c, fiber.StatusOK, orDefault(message, "supprimé"), data)
}
