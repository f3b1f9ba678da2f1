package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("CURRENCY_COUNTRY_HEADERS", "")
	t.Setenv("UPLOAD_PROVIDER", "")
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("DB_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "imgur", cfg.Upload.Provider)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, []string{"X-Vercel-IP-Country", "CF-IPCountry"}, cfg.Currency.CountryHeaders)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.False(t, cfg.App.IsProduction())
}

func TestLoad_ProductionRequiresSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("UPLOAD_PROVIDER", "")
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("ADMIN_PASSWORD_HASH", "hash")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	t.Setenv("JWT_SECRET", "prod-secret")
	t.Setenv("ADMIN_PASSWORD_HASH", "")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_PASSWORD_HASH")
}

func TestLoad_RejectsUnknownUploadProvider(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("UPLOAD_PROVIDER", "s3")

	_, err := Load()
	assert.Error(t, err)
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("TEST_LIST", " a , ,b ")
	assert.Equal(t, []string{"a", "b"}, getEnvList("TEST_LIST", nil))

	t.Setenv("TEST_LIST", " , ")
	assert.Equal(t, []string{"x"}, getEnvList("TEST_LIST", []string{"x"}))
}
