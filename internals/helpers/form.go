package helper

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04"
)

// ParseUUIDPtr: "" → nil, invalid → error.
func ParseUUIDPtr(s string) (*uuid.UUID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// ParamUUID membaca :name dari path; 404 jika tidak valid.
func ParamUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusNotFound, "Ressource introuvable")
	}
	return id, nil
}

// QueryUUID: query kosong/invalid → nil.
func QueryUUID(c *fiber.Ctx, name string) *uuid.UUID {
	id, err := ParseUUIDPtr(c.Query(name))
	if err != nil {
		return nil
	}
	return id
}

func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.Local)
}

// ParseDatePtr: "" → nil.
func ParseDatePtr(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ParseDateTime menerima "2006-01-02T15:04" (input datetime-local) atau tanggal saja.
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(DateTimeLayout, s, time.Local); err == nil {
		return t, nil
	}
	return ParseDate(s)
}

// ParseDecimal menerima koma atau titik sebagai pemisah desimal.
func ParseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	s = strings.ReplaceAll(s, " ", "")
	return strconv.ParseFloat(s, 64)
}

func FormBool(c *fiber.Ctx, name string) bool {
	switch strings.ToLower(strings.TrimSpace(c.FormValue(name))) {
	case "1", "true", "on", "yes", "oui":
		return true
	}
	return false
}

func QueryInt(c *fiber.Ctx, name string, def int) int {
	return atoiDefault(c.Query(name), def)
}

func TrimPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
