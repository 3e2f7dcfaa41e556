package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATASET_SOURCE", "")
	t.Setenv("APP_PORT", "")
	t.Setenv("DEFAULT_HOURS", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, SourceFile, cfg.Dataset.Source)
	assert.Equal(t, 6.5, cfg.Session.DefaultHours)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
	assert.Equal(t, []string{"*"}, cfg.App.CORSAllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DEFAULT_HOURS", "8")
	t.Setenv("SESSION_SWEEP_INTERVAL", "1m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, 8.0, cfg.Session.DefaultHours)
	assert.Equal(t, time.Minute, cfg.Session.SweepInterval)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.App.CORSAllowedOrigins)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("APP_PORT", "eighty")
	_, err := Load()
	assert.ErrorContains(t, err, "APP_PORT")

	t.Setenv("APP_PORT", "8080")
	t.Setenv("SESSION_TTL", "forever")
	_, err = Load()
	assert.ErrorContains(t, err, "SESSION_TTL")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Dataset: DatasetConfig{Source: SourceFile, AssignmentsPath: "a.xlsx", ActivityPath: "b.xlsx"},
			Session: SessionConfig{DefaultHours: 6.5, TTL: time.Hour, SweepInterval: time.Minute},
		}
	}

	assert.NoError(t, valid().Validate())

	cfg := valid()
	cfg.Dataset.Source = "ftp"
	assert.ErrorContains(t, cfg.Validate(), "DATASET_SOURCE")

	cfg = valid()
	cfg.Dataset.Source = SourcePostgres
	assert.ErrorContains(t, cfg.Validate(), "DB_PASSWORD")
	cfg.Database.Password = "secret"
	assert.NoError(t, cfg.Validate())

	cfg = valid()
	cfg.Dataset.ActivityPath = ""
	assert.ErrorContains(t, cfg.Validate(), "ACTIVITY_PATH")

	cfg = valid()
	cfg.Session.TTL = 0
	assert.ErrorContains(t, cfg.Validate(), "SESSION_TTL")
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: 5433, User: "u", Password: "p", Name: "hours", SSLMode: "require",
	}}
	assert.Equal(t, "postgres://u:p@db:5433/hours?sslmode=require", cfg.DatabaseURL())
}
