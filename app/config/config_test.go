package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/campusdesk?sslmode=disable")
	t.Setenv("APP_ENV", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 16, cfg.MaxUploadMB)
	assert.Equal(t, 16*1024*1024, cfg.MaxUploadBytes())
	assert.Equal(t, 14, cfg.Library.LoanDays)
	assert.Equal(t, "10 0 * * *", cfg.OverdueSchedule)
	assert.False(t, cfg.IsProduction())
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestProductionRequiresSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/campusdesk")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SECRET_KEY", "")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("SECRET_KEY", "a-real-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestLocationFallsBackToUTC(t *testing.T) {
	cfg := &Config{Timezone: "Nowhere/Special"}
	assert.Equal(t, "UTC", cfg.Location().String())
}

func TestCurrentFallsBackToDefaults(t *testing.T) {
	saved := AppConfig
	AppConfig = nil
	t.Cleanup(func() { AppConfig = saved })

	cfg := Current()
	assert.Equal(t, "./static/uploads", cfg.UploadDir)
	assert.Equal(t, 1.0, cfg.Library.FinePerDay)
}
