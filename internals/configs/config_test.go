package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvDefaults(t *testing.T) {
	t.Setenv("SCHOOLKU_TEST_EMPTY", "")
	t.Setenv("SCHOOLKU_TEST_INT", "42")
	t.Setenv("SCHOOLKU_TEST_BADINT", "abc")
	t.Setenv("SCHOOLKU_TEST_BOOL", "yes")

	assert.Equal(t, "def", GetEnv("SCHOOLKU_TEST_EMPTY", "def"))
	assert.Equal(t, "def", GetEnv("SCHOOLKU_TEST_MISSING", "def"))
	assert.Equal(t, "", GetEnv("SCHOOLKU_TEST_MISSING"))
	assert.Equal(t, 42, GetEnvInt("SCHOOLKU_TEST_INT", 1))
	assert.Equal(t, 1, GetEnvInt("SCHOOLKU_TEST_BADINT", 1))
	assert.True(t, GetEnvBool("SCHOOLKU_TEST_BOOL", false))
	assert.True(t, GetEnvBool("SCHOOLKU_TEST_MISSING", true))
}

func TestDatabaseDSN(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_USER", "u")
	t.Setenv("DB_PASSWORD", "p")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_NAME", "ecole")
	t.Setenv("DB_SSLMODE", "")
	assert.Equal(t, "postgres://u:p@db:5433/ecole?sslmode=disable&application_name=schoolku", DatabaseDSN())

	t.Setenv("DATABASE_URL", "postgres://x")
	assert.Equal(t, "postgres://x", DatabaseDSN())
}

func TestLoadWhatsAppConfigFromEnv(t *testing.T) {
	t.Setenv("WHATSAPP_API_KEY", "secret")
	t.Setenv("WHATSAPP_RECIPIENTS", "+50911111111, +50922222222")
	t.Setenv("WHATSAPP_DEFAULT_COUNTRY_CODE", "+509")

	cfg := LoadWhatsAppConfig()
	assert.True(t, cfg.Enabled())
	assert.Equal(t, "509", cfg.DefaultCountryCode)
	assert.Equal(t, []string{"+50911111111", "+50922222222"}, cfg.Recipients)
	assert.Equal(t, "https://wasenderapi.com/api/send-message", cfg.APIURL)
}
