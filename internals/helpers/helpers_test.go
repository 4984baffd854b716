package helper

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0,00"},
		{12.5, "12,50"},
		{1234.5, "1 234,50"},
		{1234567.891, "1 234 567,89"},
		{-1500, "-1 500,00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMoney(tt.in))
	}
}

func TestFormatDateAndFileSize(t *testing.T) {
	d := time.Date(2025, 3, 7, 9, 30, 0, 0, time.Local)
	assert.Equal(t, "07/03/2025", FormatDate(d))
	assert.Equal(t, "07/03/2025", FormatDate(&d))
	assert.Equal(t, "-", FormatDate((*time.Time)(nil)))
	assert.Equal(t, "-", FormatDate(time.Time{}))
	assert.Equal(t, "2025-03-07T09:30", InputDateTime(d))

	assert.Equal(t, "512 B", FileSize(512))
	assert.Equal(t, "1.50 KB", FileSize(1536))
	assert.Equal(t, "2.00 MB", FileSize(2*1024*1024))
	assert.Equal(t, "14.67", FormatScore(14.6666))
}

func TestIDStringSameID(t *testing.T) {
	id := uuid.New()
	same := TemplateFuncs()["sameID"].(func(a, b any) bool)
	assert.True(t, same(id, &id))
	assert.True(t, same(id, id.String()))
	assert.False(t, same(id, (*uuid.UUID)(nil)))
	assert.False(t, same(uuid.Nil, uuid.Nil))
}

func TestParseHelpers(t *testing.T) {
	v, err := ParseDecimal(" 12,5 ")
	require.NoError(t, err)
	assert.Equal(t, 12.5, v)

	_, err = ParseDecimal("abc")
	assert.Error(t, err)

	p, err := ParseUUIDPtr("")
	assert.NoError(t, err)
	assert.Nil(t, p)

	_, err = ParseUUIDPtr("not-a-uuid")
	assert.Error(t, err)

	d, err := ParseDatePtr("2025-01-31")
	require.NoError(t, err)
	assert.Equal(t, 31, d.Day())

	dt, err := ParseDateTime("2025-01-31")
	require.NoError(t, err)
	assert.Equal(t, time.January, dt.Month())
}

type sampleForm struct {
	Name  string  `form:"name" label:"nom" validate:"notblank,max=10"`
	Email string  `form:"email" validate:"omitempty,email"`
	Coef  float64 `form:"coef" validate:"gt=0"`
}

func TestValidateStruct(t *testing.T) {
	err := ValidateStruct(sampleForm{Name: "  ", Email: "bad", Coef: 0})
	ve, ok := IsValidationError(err)
	require.True(t, ok)
	m := ve.Map()
	assert.Contains(t, m, "nom")
	assert.Contains(t, m, "email")
	assert.Contains(t, m, "coef")
	assert.Contains(t, m["nom"], "vide")
	assert.NotEmpty(t, Messages(err))

	assert.NoError(t, ValidateStruct(sampleForm{Name: "Math", Coef: 2}))
}

func TestParseFiberPagination(t *testing.T) {
	app := fiber.New()
	var got Params
	var meta Meta
	app.Get("/", func(c *fiber.Ctx) error {
		got = ParseFiber(c, "created_at", "desc", Options{DefaultPerPage: 10, MaxPerPage: 50})
		meta = BuildMetaFor(c, 95, got)
		return c.SendStatus(fiber.StatusOK)
	})

	_, err := app.Test(httptest.NewRequest("GET", "/?page=3&per_page=500&order=asc&q=abc", nil))
	require.NoError(t, err)

	assert.Equal(t, 3, got.Page)
	assert.Equal(t, 50, got.PerPage)
	assert.Equal(t, "asc", got.SortOrder)
	assert.Equal(t, 100, got.Offset())
	assert.Equal(t, 2, meta.TotalPages)
	assert.False(t, meta.HasNext)
	assert.True(t, meta.HasPrev)
	assert.Equal(t, "order=asc&per_page=500&q=abc", meta.BaseQuery)
	assert.Equal(t, "?order=asc&per_page=500&q=abc&page=2", string(meta.Link(2)))

	assert.Equal(t, "s.name ASC", got.OrderClause(map[string]string{"name": "s.name"}, "name"))
}

func TestJsonError(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return JsonError(c, fiber.StatusNotFound, "introuvable") })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Fête de l'École 2025": "fete-de-l-ecole-2025",
		"  Résultats -- BAC  ": "resultats-bac",
		"???":                  "item",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in, 0), in)
	}
	assert.Equal(t, "abc", Slugify("abc-def", 4))
}
