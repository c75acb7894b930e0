package config_test

import (
	"testing"
	"time"

	"github.com/SscSPs/negotiation_tracker/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_SQLiteDefaults(t *testing.T) {
	t.Setenv("REPOSITORY_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/negotiations.db")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example, http://b.example,")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, config.DriverSQLite, cfg.RepositoryDriver)
	assert.Equal(t, "/tmp/negotiations.db", cfg.SQLitePath)
	assert.Equal(t, 10*time.Second, cfg.RemoteTimeout)
	assert.Equal(t, 30*time.Minute, cfg.FormSessionTTL)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "8080", cfg.Port)
}

func TestLoadConfig_PostgresRequiresURL(t *testing.T) {
	t.Setenv("REPOSITORY_DRIVER", "postgres")
	t.Setenv("PGSQL_URL", "")

	_, err := config.LoadConfig()
	assert.ErrorContains(t, err, "PGSQL_URL")
}

func TestLoadConfig_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("REPOSITORY_DRIVER", "mongo")

	_, err := config.LoadConfig()
	assert.ErrorContains(t, err, "unsupported REPOSITORY_DRIVER")
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	t.Setenv("REPOSITORY_DRIVER", "sqlite")
	t.Setenv("REMOTE_TIMEOUT", "soon")

	_, err := config.LoadConfig()
	assert.ErrorContains(t, err, "REMOTE_TIMEOUT")
}

func TestLoadConfig_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("REPOSITORY_DRIVER", "sqlite")
	t.Setenv("IS_PRODUCTION", "true")
	t.Setenv("JWT_SECRET", "")

	_, err := config.LoadConfig()
	assert.ErrorContains(t, err, "JWT_SECRET")
}
