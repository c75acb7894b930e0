package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Repository drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// Remote store
	RepositoryDriver string
	DatabaseURL      string
	SQLitePath       string
	EnableDBCheck    bool
	RunMigrations    bool
	RemoteTimeout    time.Duration

	// Auth
	JWTSecret string
	JWTIssuer string

	CORSAllowedOrigins []string

	// AI helper
	GeminiAPIKey string
	GeminiModel  string
	AIRateLimit  string
	RedisURL     string
	AICacheTTL   time.Duration

	PosthogAPIKey   string
	PosthogEndpoint string

	FormSessionTTL time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("REPOSITORY_DRIVER", DriverPostgres)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("SQLITE_PATH", "data/negotiations.db")
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("REMOTE_TIMEOUT", "10s")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "negotiation-tracker")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("AI_RATE_LIMIT", "20-M")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("AI_CACHE_TTL", "24h")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
	v.SetDefault("FORM_SESSION_TTL", "30m")

	// Actual environment variables override .env values and defaults.
	v.AutomaticEnv()

	cfg := &Config{
		Port:             v.GetString("PORT"),
		IsProduction:     v.GetBool("IS_PRODUCTION"),
		RepositoryDriver: strings.ToLower(strings.TrimSpace(v.GetString("REPOSITORY_DRIVER"))),
		DatabaseURL:      v.GetString("PGSQL_URL"),
		SQLitePath:       v.GetString("SQLITE_PATH"),
		EnableDBCheck:    v.GetBool("ENABLE_DB_CHECK"),
		RunMigrations:    v.GetBool("RUN_MIGRATIONS"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		JWTIssuer:        v.GetString("JWT_ISSUER"),
		GeminiAPIKey:     v.GetString("GEMINI_API_KEY"),
		GeminiModel:      v.GetString("GEMINI_MODEL"),
		AIRateLimit:      v.GetString("AI_RATE_LIMIT"),
		RedisURL:         v.GetString("REDIS_URL"),
		PosthogAPIKey:    v.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:  v.GetString("POSTHOG_ENDPOINT"),
	}

	var err error
	if cfg.RemoteTimeout, err = parseDuration(v, "REMOTE_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.AICacheTTL, err = parseDuration(v, "AI_CACHE_TTL"); err != nil {
		return nil, err
	}
	if cfg.FormSessionTTL, err = parseDuration(v, "FORM_SESSION_TTL"); err != nil {
		return nil, err
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	switch cfg.RepositoryDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when REPOSITORY_DRIVER is %q", DriverPostgres)
		}
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			return nil, fmt.Errorf("SQLITE_PATH is required when REPOSITORY_DRIVER is %q", DriverSQLite)
		}
	default:
		return nil, fmt.Errorf("unsupported REPOSITORY_DRIVER %q", cfg.RepositoryDriver)
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.GeminiAPIKey == "" {
		log.Println("Warning: GEMINI_API_KEY not set. AI assist will return input unchanged.")
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s (%q): %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, raw)
	}
	return d, nil
}
